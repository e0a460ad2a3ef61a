package spool

import (
	"bytes"
	"io"
	"math/rand"
	"testing"
)

func readBack(t *testing.T, s *Spool) []byte {
	t.Helper()

	size, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		t.Fatalf("Wrong response for size seek: want: <nil> got: %v", err)
	}
	if _, err = s.Seek(0, io.SeekStart); err != nil {
		t.Fatalf("Wrong response for rewind: want: <nil> got: %v", err)
	}

	got, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("Wrong response reading spool: want: <nil> got: %v", err)
	}
	if int64(len(got)) != size {
		t.Fatalf("Wrong size: reported %d, read %d", size, len(got))
	}
	return got
}

func TestInMemory(t *testing.T) {
	s := New(1024)
	defer s.Close()

	want := []byte("stays in memory")
	if n, err := s.Write(want); n != len(want) || err != nil {
		t.Fatalf("Wrong response for write: want: %d,<nil> got: %d,%v", len(want), n, err)
	}
	if s.Len() != int64(len(want)) {
		t.Errorf("Wrong length: want: %d got: %d", len(want), s.Len())
	}

	if got := readBack(t, s); !bytes.Equal(got, want) {
		t.Errorf("Wrong content: want: %q got: %q", want, got)
	}
}

func TestSpillToDisk(t *testing.T) {
	s := New(64)
	defer s.Close()

	rng := rand.New(rand.NewSource(7))
	want := make([]byte, 0, 100*1024)

	for i := 0; i < 100; i++ {
		chunk := make([]byte, 1024)
		rng.Read(chunk)
		want = append(want, chunk...)

		if n, err := s.Write(chunk); n != len(chunk) || err != nil {
			t.Fatalf("Wrong response for write %d: want: %d,<nil> got: %d,%v", i, len(chunk), n, err)
		}
	}

	if s.Len() != int64(len(want)) {
		t.Errorf("Wrong length: want: %d got: %d", len(want), s.Len())
	}
	if got := readBack(t, s); !bytes.Equal(got, want) {
		t.Errorf("Wrong spilled content: %d bytes differ", len(want))
	}

	// Rewinding allows a second full read.
	if got := readBack(t, s); !bytes.Equal(got, want) {
		t.Errorf("Wrong content on second read")
	}
}

func TestEmptySpool(t *testing.T) {
	s := New(16)
	defer s.Close()

	if got := readBack(t, s); len(got) != 0 {
		t.Errorf("Wrong content for empty spool: want: 0 bytes got: %d", len(got))
	}
}

func TestBadSeek(t *testing.T) {
	s := New(16)
	defer s.Close()
	s.Write([]byte("some data"))

	if _, err := s.Seek(3, io.SeekStart); err != ErrBadSeek {
		t.Errorf("Wrong error for offset seek: want: %v got: %v", ErrBadSeek, err)
	}
	if _, err := s.Seek(0, io.SeekCurrent); err != ErrBadSeek {
		t.Errorf("Wrong error for current seek: want: %v got: %v", ErrBadSeek, err)
	}
}

func TestWriteAfterRead(t *testing.T) {
	s := New(16)
	defer s.Close()

	s.Write([]byte("first"))
	if _, err := s.Seek(0, io.SeekEnd); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Write([]byte("late")); err != ErrFinished {
		t.Errorf("Wrong error for write after finalize: want: %v got: %v", ErrFinished, err)
	}
}

func TestCloseTwice(t *testing.T) {
	s := New(4)
	s.Write([]byte("spills past the threshold"))

	if err := s.Close(); err != nil {
		t.Fatalf("Wrong response for close: want: <nil> got: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Wrong response for repeated close: want: <nil> got: %v", err)
	}
}
