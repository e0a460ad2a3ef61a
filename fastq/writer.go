package fastq

import (
	"bufio"
	"io"
)

// Writer serializes records back to textual FASTQ.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteNext emits one four-line record. Qualities must map back into the
// ASCII graphic range and match the sequence length.
func (f *Writer) WriteNext(r *Read) error {
	if len(r.Letters) != len(r.Qualities) {
		return ErrMismatchedLengths
	}

	nucleotides, err := FormatLetters(r.Letters)
	if err != nil {
		return err
	}

	qualityLetters := make([]byte, len(r.Qualities))
	for i, q := range r.Qualities {
		c := q + 32
		if c <= ' ' || c > '~' {
			return ErrInvalidQuality
		}
		qualityLetters[i] = c
	}

	if _, err := f.w.WriteString("@" + r.Title + "\n"); err != nil {
		return err
	}
	if _, err := f.w.WriteString(nucleotides + "\n"); err != nil {
		return err
	}
	if _, err := f.w.WriteString("+" + r.SubTitle + "\n"); err != nil {
		return err
	}
	if _, err := f.w.Write(qualityLetters); err != nil {
		return err
	}
	if err := f.w.WriteByte('\n'); err != nil {
		return err
	}
	return nil
}

// Flush writes any buffered records to the underlying writer.
func (f *Writer) Flush() error {
	return f.w.Flush()
}
