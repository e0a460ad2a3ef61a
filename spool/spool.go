/*
Package spool provides a size-unbounded write buffer whose final length must
be known before its content can be framed into a container entry.

Writes accumulate in memory until they exceed a configured threshold, at
which point the content spills to a temporary file. The spill file is
written through snappy framing, so large compressible spools cost less
temporary disk than they hold logically.

A finished spool is readable through a deliberately restricted io.ReadSeeker:
seeking is only supported to the start (rewind) and to the end (measure),
which is exactly the contract container writers need.
*/
package spool

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/golang/snappy"
)

var (
	// ErrBadSeek is returned for any seek other than offset 0 relative to
	// the start or end of the spool.
	ErrBadSeek = errors.New("spool can only seek to its start or end")

	// ErrFinished is returned when writing to a spool that is already
	// being read back.
	ErrFinished = errors.New("cannot write to spool. it has already been finalized for reading")
)

// Spool collects bytes in memory, spilling to a snappy-framed temporary
// file once the in-memory threshold is exceeded.
type Spool struct {
	threshold int
	length    int64

	buf  bytes.Buffer
	file *os.File
	sw   *snappy.Writer

	finished bool
	r        io.Reader
}

// New returns a Spool that spills to disk once more than threshold bytes
// have been written.
func New(threshold int) *Spool {
	return &Spool{threshold: threshold}
}

// Len reports the number of logical bytes written so far.
func (s *Spool) Len() int64 {
	return s.length
}

// Write implements io.Writer.
func (s *Spool) Write(p []byte) (n int, err error) {
	if s.finished {
		return 0, ErrFinished
	}

	if s.file == nil && s.buf.Len()+len(p) > s.threshold {
		if err = s.spill(); err != nil {
			return 0, err
		}
	}

	if s.file == nil {
		n, err = s.buf.Write(p)
	} else {
		n, err = s.sw.Write(p)
	}

	s.length += int64(n)
	return
}

func (s *Spool) spill() error {
	file, err := os.CreateTemp("", "spool")
	if err != nil {
		return err
	}

	s.file = file
	s.sw = snappy.NewBufferedWriter(file)

	_, err = s.sw.Write(s.buf.Bytes())
	s.buf.Reset()
	return err
}

// Seek implements the restricted seeking contract: (0, io.SeekEnd) reports
// the logical length, (0, io.SeekStart) rewinds for another sequential
// read. Anything else is ErrBadSeek. The first seek finalizes the spool;
// no further writes are accepted.
func (s *Spool) Seek(offset int64, whence int) (int64, error) {
	if err := s.finish(); err != nil {
		return 0, err
	}

	if offset != 0 {
		return 0, ErrBadSeek
	}

	switch whence {
	case io.SeekEnd:
		return s.length, nil
	case io.SeekStart:
		return 0, s.rewind()
	}

	return 0, ErrBadSeek
}

// Read implements io.Reader, yielding the logical bytes in written order.
func (s *Spool) Read(p []byte) (int, error) {
	if err := s.finish(); err != nil {
		return 0, err
	}

	if s.r == nil {
		if err := s.rewind(); err != nil {
			return 0, err
		}
	}

	return s.r.Read(p)
}

func (s *Spool) finish() error {
	if s.finished {
		return nil
	}
	s.finished = true

	if s.sw != nil {
		return s.sw.Close()
	}
	return nil
}

func (s *Spool) rewind() error {
	if s.file == nil {
		s.r = bytes.NewReader(s.buf.Bytes())
		return nil
	}

	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	s.r = snappy.NewReader(s.file)
	return nil
}

// Close releases the spill file, if any. Safe to call more than once.
func (s *Spool) Close() error {
	s.finished = true
	s.r = nil

	if s.file == nil {
		return nil
	}

	name := s.file.Name()
	err := s.file.Close()
	if rerr := os.Remove(name); err == nil {
		err = rerr
	}
	s.file = nil
	s.sw = nil
	return err
}
