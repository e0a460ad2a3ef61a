package archive

import (
	"archive/tar"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// Decoder eagerly extracts an incoming container into a temporary
// directory scoped to its lifetime, then hands out independent handles by
// entry name. The sequential container format cannot seek to an arbitrary
// entry, and decoding needs several entries open concurrently advancing at
// different rates; extraction turns one sequential stream into N
// independently readable files.
//
// Close must be called on every exit path; it deletes the directory.
type Decoder struct {
	dir string
}

// NewDecoder reads the whole container from r and extracts every entry.
// On failure the temporary directory is already cleaned up.
func NewDecoder(r io.Reader) (*Decoder, error) {
	dir, err := os.MkdirTemp("", "pare")
	if err != nil {
		return nil, err
	}

	if err := extract(r, dir); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	return &Decoder{dir: dir}, nil
}

func extract(r io.Reader, dir string) error {
	tr := tar.NewReader(r)

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		name := hdr.Name
		if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
			return fmt.Errorf("archive entry has unsafe name %q", name)
		}
		if hdr.Typeflag != tar.TypeReg {
			return fmt.Errorf("archive entry %q is not a regular file", name)
		}

		f, err := os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
		if err != nil {
			return err
		}
		if _, err = io.Copy(f, tr); err != nil {
			f.Close()
			return err
		}
		if err = f.Close(); err != nil {
			return err
		}
	}
}

// Stream opens the named entry. A missing entry surfaces as the usual
// file-not-found error.
func (d *Decoder) Stream(name string) (*os.File, error) {
	return os.Open(filepath.Join(d.dir, name))
}

// XZStream opens the named entry wrapped in an xz decompressor. Closing
// the returned stream closes the underlying file.
func (d *Decoder) XZStream(name string) (io.ReadCloser, error) {
	f, err := d.Stream(name)
	if err != nil {
		return nil, err
	}

	r, err := xz.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	return &xzStream{r: r, f: f}, nil
}

// Metadata parses the reserved "metadata" entry into doc.
func (d *Decoder) Metadata(doc interface{}) error {
	body, err := os.ReadFile(filepath.Join(d.dir, MetadataEntry))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, doc)
}

// Close deletes the extraction directory. Safe to call more than once.
func (d *Decoder) Close() error {
	if d.dir == "" {
		return nil
	}
	dir := d.dir
	d.dir = ""
	return os.RemoveAll(dir)
}

type xzStream struct {
	r *xz.Reader
	f *os.File
}

func (s *xzStream) Read(p []byte) (int, error) { return s.r.Read(p) }
func (s *xzStream) Close() error               { return s.f.Close() }
