package fastq

import (
	"errors"
	"fmt"
)

// Parse failures are distinct values so callers can react to exactly what
// was wrong with the input file. They are never wrapped into a generic I/O
// error; real I/O errors pass through untouched.
var (
	ErrNoTitleLine       = errors.New("did not find title (titles should start with '@')")
	ErrFastATitleLine    = errors.New("found FASTA style title (title started with a '>'), expected FASTQ")
	ErrNoDescriptionLine = errors.New("did not find expected line starting with '+'")
	ErrInvalidQuality    = errors.New("the quality sequence has unexpected characters")
	ErrMismatchedLengths = errors.New("the nucleotide sequence and the quality sequence are different lengths")
	ErrIncompleteRecord  = errors.New("EOF caused incomplete record")
	ErrMissingPairedRead = errors.New("missing read from pair, file truncated")
)

// InvalidNucleotideError reports the offending letter.
type InvalidNucleotideError struct {
	Letter rune
}

func (e *InvalidNucleotideError) Error() string {
	return fmt.Sprintf("found nucleotide %q that is not |ATCGNatcgn|", e.Letter)
}
