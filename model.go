package pare

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/pareseq/pare/fastq"
)

// Model selects which artifact layout a codec produces or consumes.
type Model int

const (
	// ModelSingle is the sentinel-framed single-stream layout: smallest
	// fixed overhead, the default for encoding.
	ModelSingle Model = iota

	// ModelMulti is the columnar archive layout: better ratio on large
	// batches.
	ModelMulti
)

func (m Model) String() string {
	switch m {
	case ModelSingle:
		return "single"
	case ModelMulti:
		return "multi"
	}
	return fmt.Sprintf("Model(%d)", int(m))
}

func ParseModel(s string) (Model, error) {
	switch s {
	case "single":
		return ModelSingle, nil
	case "multi":
		return ModelMulti, nil
	}
	return 0, fmt.Errorf("unknown model %q (expected single or multi)", s)
}

// Encoder serializes a pair stream into an artifact.
type Encoder interface {
	Compress(src fastq.PairReader) error
}

// Decoder reconstructs the pair stream from an artifact.
type Decoder interface {
	Decompress(dst fastq.PairWriter) error
}

// NewEncoder returns the encoder for the chosen model, writing to w.
func NewEncoder(w io.Writer, m Model) Encoder {
	if m == ModelMulti {
		return NewMultiWriter(w)
	}
	return NewSingleWriter(w)
}

// NewModelDecoder returns the decoder for an explicitly chosen model.
func NewModelDecoder(r io.Reader, m Model) Decoder {
	if m == ModelMulti {
		return NewMultiReader(r)
	}
	return NewSingleReader(r)
}

// NewDecoder inspects the artifact and returns the decoder matching the
// model that produced it. Callers never need to know the model up front:
// a bare xz stream is the single-container layout, anything else is
// treated as an archive container and validated against its metadata.
func NewDecoder(r io.Reader) (Decoder, error) {
	br := bufio.NewReader(r)

	prefix, err := br.Peek(len(xzHeaderMagic))
	if err != nil {
		// Too short to carry either layout's marker.
		return nil, ErrMissingVersion
	}

	if bytes.Equal(prefix, xzHeaderMagic) {
		return NewSingleReader(br), nil
	}
	return NewMultiReader(br), nil
}
