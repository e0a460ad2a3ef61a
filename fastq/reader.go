// Package fastq reads and writes FASTQ format files and defines the paired
// read model consumed by the compression codecs.
package fastq

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// Reader parses one four-line FASTQ record at a time.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadNext parses a single record into buf. It returns false at a clean
// end of input; an EOF anywhere inside a record is ErrIncompleteRecord.
func (f *Reader) ReadNext(buf *Read) (bool, error) {
	title, eof, err := f.readLine()
	if err != nil {
		return false, err
	}
	if eof {
		return false, nil
	}

	if !strings.HasPrefix(title, "@") {
		if strings.HasPrefix(title, ">") {
			return false, ErrFastATitleLine
		}
		return false, ErrNoTitleLine
	}
	title = strings.TrimRightFunc(title[1:], unicode.IsSpace)

	nucleotides, eof, err := f.readLine()
	if err != nil {
		return false, err
	}
	if eof {
		return false, ErrIncompleteRecord
	}
	nucleotides = strings.TrimRightFunc(nucleotides, unicode.IsSpace)

	letters, err := ParseLetters(nucleotides)
	if err != nil {
		return false, err
	}

	subTitle, eof, err := f.readLine()
	if err != nil {
		return false, err
	}
	if eof {
		return false, ErrIncompleteRecord
	}
	if !strings.HasPrefix(subTitle, "+") {
		return false, ErrNoDescriptionLine
	}
	subTitle = strings.TrimRightFunc(subTitle[1:], unicode.IsSpace)

	qualityLetters, eof, err := f.readLine()
	if err != nil {
		return false, err
	}
	if eof {
		return false, ErrIncompleteRecord
	}
	qualityLetters = strings.TrimRightFunc(qualityLetters, unicode.IsSpace)

	for i := 0; i < len(qualityLetters); i++ {
		if c := qualityLetters[i]; c <= ' ' || c > '~' {
			return false, ErrInvalidQuality
		}
	}
	if len(nucleotides) != len(qualityLetters) {
		return false, ErrMismatchedLengths
	}

	qualities := make([]byte, len(qualityLetters))
	for i := 0; i < len(qualityLetters); i++ {
		qualities[i] = qualityLetters[i] - 32
	}

	buf.Title = title
	buf.SubTitle = subTitle
	buf.Letters = letters
	buf.Qualities = qualities
	return true, nil
}

// readLine reads up to and including the next newline. eof is true only
// when no bytes at all were available.
func (f *Reader) readLine() (line string, eof bool, err error) {
	line, err = f.r.ReadString('\n')
	if err == io.EOF {
		if len(line) == 0 {
			return "", true, nil
		}
		err = nil
	}
	return line, false, err
}
