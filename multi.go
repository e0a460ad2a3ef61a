package pare

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"unicode/utf8"

	"github.com/pareseq/pare/archive"
	"github.com/pareseq/pare/fastq"
	"github.com/pareseq/pare/spool"
)

// Entry names inside the archive container.
const (
	entryTitles      = "titles"
	entryNucleotides = "nucleotides"
	entryQualities   = "qualities"
)

// Spools stay in memory up to this many bytes before spilling to disk.
const spoolThreshold = 4096

// MultiWriter groups same-kind fields across all records before
// compressing: titles, nucleotides and qualities each get their own xz
// stream, since per-field-class entropy is much lower than per-record
// interleaved entropy. The container format needs each entry's exact byte
// length up front and compressed length is unknown until the compressor is
// flushed, so each field class accumulates in a spool first.
type MultiWriter struct {
	w io.Writer
}

func NewMultiWriter(w io.Writer) *MultiWriter {
	return &MultiWriter{w: w}
}

func (e *MultiWriter) Compress(src fastq.PairReader) error {
	titles := spool.New(spoolThreshold)
	defer titles.Close()
	nucleotides := spool.New(spoolThreshold)
	defer nucleotides.Close()
	qualities := spool.New(spoolThreshold)
	defer qualities.Close()

	tw, err := newXZWriter(titles)
	if err != nil {
		return err
	}
	nw, err := newXZWriter(nucleotides)
	if err != nil {
		return err
	}
	qw, err := newXZWriter(qualities)
	if err != nil {
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

		if err = writeTitleLine(tw, r1.Title); err != nil {
			return err
		}
		if err = writeTitleLine(tw, r2.Title); err != nil {
			return err
		}

		if err = writeLetterLine(nw, r1.Letters); err != nil {
			return err
		}
		if err = writeLetterLine(nw, r2.Letters); err != nil {
			return err
		}

		// Quality runs are concatenated with no delimiter; lengths are
		// recovered from the paired sequence lengths on decode.
		if _, err = qw.Write(r1.Qualities); err != nil {
			return err
		}
		if _, err = qw.Write(r2.Qualities); err != nil {
			return err
		}
	}

	if err = tw.Close(); err != nil {
		return err
	}
	if err = nw.Close(); err != nil {
		return err
	}
	if err = qw.Close(); err != nil {
		return err
	}

	enc := archive.NewWriter(e.w)

	err = enc.WriteMetadata(Metadata{Model: multiModelName, Version: formatVersion})
	if err != nil {
		return err
	}
	if err = enc.WriteStream(entryTitles, titles); err != nil {
		return err
	}
	if err = enc.WriteStream(entryNucleotides, nucleotides); err != nil {
		return err
	}
	if err = enc.WriteStream(entryQualities, qualities); err != nil {
		return err
	}

	return enc.Finish()
}

func writeTitleLine(w io.Writer, title string) error {
	for i := 0; i < len(title); i++ {
		if title[i] == '\n' || title[i] == sentinel {
			return fmt.Errorf("%w: title %q contains a reserved byte", ErrEncoding, title)
		}
	}
	_, err := io.WriteString(w, title+"\n")
	return err
}

func writeLetterLine(w io.Writer, letters []byte) error {
	// The 0-4 alphabet guarantees no embedded newline.
	for _, n := range letters {
		if n > fastq.NucG {
			return fmt.Errorf("%w: invalid nucleotide code %d", ErrEncoding, n)
		}
	}

	if _, err := w.Write(letters); err != nil {
		return err
	}
	_, err := w.Write([]byte{'\n'})
	return err
}

// MultiReader decodes a multi-stream archive back into pairs.
type MultiReader struct {
	r *bufio.Reader
}

func NewMultiReader(r io.Reader) *MultiReader {
	return &MultiReader{r: bufio.NewReader(r)}
}

func (d *MultiReader) Decompress(dst fastq.PairWriter) error {
	if prefix, err := d.r.Peek(len(xzHeaderMagic)); err == nil && bytes.Equal(prefix, xzHeaderMagic) {
		// A bare xz stream is the single-container layout.
		return ErrWrongModel
	}

	dec, err := archive.NewDecoder(d.r)
	if err != nil {
		return err
	}
	defer dec.Close()

	var meta Metadata
	if err = dec.Metadata(&meta); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrMetadata, err)
	}
	if meta.Model != multiModelName || meta.Version != formatVersion {
		return ErrWrongModel
	}

	titles, err := dec.XZStream(entryTitles)
	if err != nil {
		return err
	}
	defer titles.Close()
	nucleotides, err := dec.XZStream(entryNucleotides)
	if err != nil {
		return err
	}
	defer nucleotides.Close()
	qualities, err := dec.XZStream(entryQualities)
	if err != nil {
		return err
	}
	defer qualities.Close()

	tr := bufio.NewReader(titles)
	nr := bufio.NewReader(nucleotides)
	qr := bufio.NewReader(qualities)

	var r1, r2 fastq.Read

	for {
		ok, err := readStreams(tr, nr, qr, &r1, &r2)
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

// readStreams pulls the next pair across the three entry streams. Clean
// end-of-stream is detected solely on the title stream; any other stream
// ending early relative to its siblings is ErrIncompleteRecord.
func readStreams(tr, nr, qr *bufio.Reader, r1, r2 *fastq.Read) (bool, error) {
	var ok bool
	var err error

	if r1.Title, ok, err = readTitleLine(tr); err != nil || !ok {
		return false, err
	}
	if r2.Title, ok, err = readTitleLine(tr); err != nil {
		return false, err
	} else if !ok {
		return false, ErrIncompleteRecord
	}

	if r1.Letters, ok, err = readLetterLine(nr, r1.Letters); err != nil {
		return false, err
	} else if !ok {
		return false, ErrIncompleteRecord
	}
	if r2.Letters, ok, err = readLetterLine(nr, r2.Letters); err != nil {
		return false, err
	} else if !ok {
		return false, ErrIncompleteRecord
	}

	if r1.Qualities, err = readRun(qr, r1.Qualities, len(r1.Letters)); err != nil {
		return false, err
	}
	if r2.Qualities, err = readRun(qr, r2.Qualities, len(r2.Letters)); err != nil {
		return false, err
	}

	return true, nil
}

func readTitleLine(br *bufio.Reader) (string, bool, error) {
	line, ok, err := readLine(br, nil)
	if err != nil || !ok {
		return "", ok, err
	}
	if !utf8.Valid(line) {
		return "", false, fmt.Errorf("%w: title is not valid UTF-8", ErrEncoding)
	}
	return string(line), true, nil
}

func readLetterLine(br *bufio.Reader, buf []byte) ([]byte, bool, error) {
	return readLine(br, buf)
}

// readLine reads one newline-terminated field. ok is false when the stream
// ended cleanly before any byte; a field missing its terminator is
// ErrIncompleteRecord.
func readLine(br *bufio.Reader, buf []byte) ([]byte, bool, error) {
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
		if b == '\n' {
			return buf, true, nil
		}
		buf = append(buf, b)
	}
}
