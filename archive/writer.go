/*
Package archive is a minimal named-entry container: write N named binary
entries with correct sizes into one sequential output, then extract them
all on the way back out and hand out independent handles by name.

The on-wire format is a plain GNU tar stream, so every entry carries a
name, size, fixed owner-only permission and the standard header checksum.
Entry bodies are opaque; compressed entries are the caller's concern,
except for the XZStream convenience on the read side.
*/
package archive

import (
	"archive/tar"
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// MetadataEntry is the reserved name for the structured metadata document.
const MetadataEntry = "metadata"

// Writer appends named entries to a sequential output stream.
type Writer struct {
	tw       *tar.Writer
	finished bool
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{tw: tar.NewWriter(w)}
}

// WriteStream appends one entry. The source is seeked to the end to
// measure its exact length, rewound, and copied in full.
func (w *Writer) WriteStream(name string, src io.ReadSeeker) error {
	if w.finished {
		return errors.New("cannot write to archive. it has already been finished")
	}

	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if _, err = src.Seek(0, io.SeekStart); err != nil {
		return err
	}

	err = w.tw.WriteHeader(&tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Size:     size,
		Mode:     0600,
		Format:   tar.FormatGNU,
	})
	if err != nil {
		return err
	}

	_, err = io.Copy(w.tw, src)
	return err
}

// WriteMetadata serializes doc as JSON and writes it as the reserved
// "metadata" entry.
func (w *Writer) WriteMetadata(doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return w.WriteStream(MetadataEntry, bytes.NewReader(body))
}

// Finish flushes and closes the container. Writing after Finish is an
// error; the underlying writer is not closed.
func (w *Writer) Finish() error {
	if w.finished {
		return nil
	}
	w.finished = true
	return w.tw.Close()
}
