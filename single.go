package pare

import (
	"bufio"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ulikunitz/xz"

	"github.com/pareseq/pare/fastq"
)

// singleMagic opens every single-container artifact, inside the
// compression pass. The trailing byte doubles as the field sentinel.
const singleMagic = "PARE lzma_single_file v1\xff"

// sentinel terminates title and nucleotide fields. It can never occur in
// UTF-8 text or in the 0-4 nucleotide alphabet, so payload bytes need no
// escaping. Quality runs are written raw; their length is recovered from
// the paired sequence length.
const sentinel = 0xff

// SingleWriter serializes an unbounded pair stream into one xz-compressed
// byte stream.
type SingleWriter struct {
	w io.Writer
}

func NewSingleWriter(w io.Writer) *SingleWriter {
	return &SingleWriter{w: w}
}

func (e *SingleWriter) Compress(src fastq.PairReader) error {
	xw, err := newXZWriter(e.w)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(xw)
	if _, err = bw.WriteString(singleMagic); err != nil {
		return err
	}

	var r1, r2 fastq.Read

	for {
		ok, err := src.ReadNext(&r1, &r2)
		if err != nil {
			return err
		}
		if !ok {
			break
		}

		if err = writePair(bw, &r1, &r2); err != nil {
			return err
		}
	}

	if err = bw.Flush(); err != nil {
		return err
	}
	return xw.Close()
}

func writePair(bw *bufio.Writer, r1, r2 *fastq.Read) error {
	if err := writeText(bw, r1.Title); err != nil {
		return err
	}
	if err := writeText(bw, r2.Title); err != nil {
		return err
	}
	if err := writeLetters(bw, r1.Letters); err != nil {
		return err
	}
	if err := writeLetters(bw, r2.Letters); err != nil {
		return err
	}
	if _, err := bw.Write(r1.Qualities); err != nil {
		return err
	}
	_, err := bw.Write(r2.Qualities)
	return err
}

// writeText emits a sentinel-terminated text field, failing fast if the
// text could collide with the sentinel.
func writeText(bw *bufio.Writer, text string) error {
	for i := 0; i < len(text); i++ {
		if text[i] == sentinel {
			return fmt.Errorf("%w: title %q contains reserved byte 0xff", ErrEncoding, text)
		}
	}

	if _, err := bw.WriteString(text); err != nil {
		return err
	}
	return bw.WriteByte(sentinel)
}

// writeLetters emits a sentinel-terminated nucleotide field, rejecting
// codes outside the 5-symbol alphabet.
func writeLetters(bw *bufio.Writer, letters []byte) error {
	for _, n := range letters {
		if n > fastq.NucG {
			return fmt.Errorf("%w: invalid nucleotide code %d", ErrEncoding, n)
		}
	}

	if _, err := bw.Write(letters); err != nil {
		return err
	}
	return bw.WriteByte(sentinel)
}

// SingleReader decodes a single-container artifact back into pairs.
type SingleReader struct {
	r io.Reader
}

func NewSingleReader(r io.Reader) *SingleReader {
	return &SingleReader{r: r}
}

func (d *SingleReader) Decompress(dst fastq.PairWriter) error {
	xr, err := xz.NewReader(d.r)
	if err != nil {
		// Not an xz stream, so the version marker cannot exist.
		return fmt.Errorf("%w: %v", ErrMissingVersion, err)
	}

	br := bufio.NewReader(xr)
	if err = checkMagic(br); err != nil {
		return err
	}

	var r1, r2 fastq.Read

	for {
		ok, err := readPair(br, &r1, &r2)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if err = dst.WriteNext(&r1, &r2); err != nil {
			return err
		}
	}
}

func checkMagic(br *bufio.Reader) error {
	buf, err := br.ReadBytes(sentinel)
	if err != nil {
		if err == io.EOF {
			return ErrMissingVersion
		}
		return err
	}
	if string(buf) != singleMagic {
		return ErrMissingVersion
	}
	return nil
}

// readPair reads one six-field record. EOF on the very first field is a
// clean end of stream; EOF anywhere after that is ErrIncompleteRecord.
func readPair(br *bufio.Reader, r1, r2 *fastq.Read) (bool, error) {
	var ok bool
	var err error

	if r1.Title, ok, err = readText(br); err != nil || !ok {
		return false, err
	}
	if r2.Title, ok, err = readText(br); err != nil {
		return false, err
	} else if !ok {
		return false, ErrIncompleteRecord
	}

	if r1.Letters, ok, err = readDelimited(br, r1.Letters); err != nil {
		return false, err
	} else if !ok {
		return false, ErrIncompleteRecord
	}
	if r2.Letters, ok, err = readDelimited(br, r2.Letters); err != nil {
		return false, err
	} else if !ok {
		return false, ErrIncompleteRecord
	}

	if r1.Qualities, err = readRun(br, r1.Qualities, len(r1.Letters)); err != nil {
		return false, err
	}
	if r2.Qualities, err = readRun(br, r2.Qualities, len(r2.Letters)); err != nil {
		return false, err
	}

	return true, nil
}

func readText(br *bufio.Reader) (string, bool, error) {
	field, ok, err := readDelimited(br, nil)
	if err != nil || !ok {
		return "", ok, err
	}
	if !utf8.Valid(field) {
		return "", false, fmt.Errorf("%w: title is not valid UTF-8", ErrEncoding)
	}
	return string(field), true, nil
}

// readDelimited reads one sentinel-terminated field into buf. ok is false
// when the stream ended cleanly before any byte of the field; a partial
// field is ErrIncompleteRecord.
func readDelimited(br *bufio.Reader, buf []byte) ([]byte, bool, error) {
	buf = buf[:0]

	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			if len(buf) == 0 {
				return buf, false, nil
			}
			return buf, false, ErrIncompleteRecord
		}
		if err != nil {
			return buf, false, err
		}
		if b == sentinel {
			return buf, true, nil
		}
		buf = append(buf, b)
	}
}

// readRun reads an exact-length undelimited byte run.
func readRun(br *bufio.Reader, buf []byte, n int) ([]byte, error) {
	if cap(buf) < n {
		buf = make([]byte, n)
	}
	buf = buf[:n]

	if _, err := io.ReadFull(br, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return buf, ErrIncompleteRecord
		}
		return buf, err
	}
	return buf, nil
}
