package pare

import "errors"

// Codec failures. Every failure aborts the current call with the most
// specific kind available; nothing is retried and nothing is downgraded to
// a generic I/O error. Underlying I/O and decompression errors propagate
// as themselves; FASTQ source errors propagate unchanged from the fastq
// package.
var (
	// ErrIncompleteRecord means a stream ended mid-record.
	ErrIncompleteRecord = errors.New("EOF caused incomplete record")

	// ErrMissingVersion means the expected magic/version marker was
	// absent, which includes input that is not an xz stream at all.
	ErrMissingVersion = errors.New("could not find the expected version string")

	// ErrWrongModel means the artifact's declared model does not match
	// the decoder trying to read it.
	ErrWrongModel = errors.New("the wrong model was used to open the file")

	// ErrEncoding means text violated its declared encoding, or a field
	// contained a reserved framing byte. A corruption signal.
	ErrEncoding = errors.New("bad value found, file likely corrupted")

	// ErrMetadata means the archive metadata document failed to parse.
	ErrMetadata = errors.New("metadata error in parsing JSON")
)
