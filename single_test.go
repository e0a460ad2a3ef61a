package pare

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/pareseq/pare/fastq"
)

func TestSingleRoundTrip(t *testing.T) {
	pairs := randomPairs(50)

	buf := new(bytes.Buffer)
	if err := NewSingleWriter(buf).Compress(&pairSource{pairs: pairs}); err != nil {
		t.Fatalf("Wrong response for compress: want: <nil> got: %v", err)
	}

	sink := new(pairSink)
	if err := NewSingleReader(buf).Decompress(sink); err != nil {
		t.Fatalf("Wrong response for decompress: want: <nil> got: %v", err)
	}

	if len(sink.pairs) != len(pairs) {
		t.Fatalf("Wrong pair count: want: %d got: %d", len(pairs), len(sink.pairs))
	}
	for i := range pairs {
		if !reflect.DeepEqual(sink.pairs[i], pairs[i]) {
			t.Errorf("Wrong pair %d:\n want: %+v\n  got: %+v", i, pairs[i], sink.pairs[i])
		}
	}
}

func TestSingleEmptyInput(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := NewSingleWriter(buf).Compress(&pairSource{}); err != nil {
		t.Fatalf("Wrong response for compress: want: <nil> got: %v", err)
	}

	sink := new(pairSink)
	if err := NewSingleReader(buf).Decompress(sink); err != nil {
		t.Fatalf("Wrong response for decompress: want: <nil> got: %v", err)
	}
	if len(sink.pairs) != 0 {
		t.Errorf("Wrong pair count for empty artifact: want: 0 got: %d", len(sink.pairs))
	}
}

func TestSingleMissingVersion(t *testing.T) {
	for name, input := range map[string][]byte{
		"empty":   nil,
		"garbage": []byte("this is not an artifact"),
	} {
		err := NewSingleReader(bytes.NewReader(input)).Decompress(new(pairSink))
		if !errors.Is(err, ErrMissingVersion) {
			t.Errorf("Wrong error for %s input: want: %v got: %v", name, ErrMissingVersion, err)
		}
	}
}

// rawSingleArtifact compresses a hand-built payload the way the single
// model frames it, so tests can truncate fields precisely.
func rawSingleArtifact(t *testing.T, payload []byte) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	xw, err := newXZWriter(buf)
	if err != nil {
		t.Fatal(err)
	}
	if _, err = xw.Write([]byte(singleMagic)); err != nil {
		t.Fatal(err)
	}
	if _, err = xw.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err = xw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestSingleTruncation(t *testing.T) {
	// One full record is: title1 FF title2 FF seq1 FF seq2 FF qual1 qual2.
	fields := [][]byte{
		[]byte("r/1\xff"),
		[]byte("r/2\xff"),
		{1, 2, 3, 4, 0xff},
		{3, 4, 1, 2, 0xff},
		{10, 11, 12, 13},
		{14, 15, 16, 17},
	}

	for cut := 1; cut < len(fields); cut++ {
		payload := bytes.Join(fields[:cut], nil)

		err := NewSingleReader(bytes.NewReader(rawSingleArtifact(t, payload))).Decompress(new(pairSink))
		if !errors.Is(err, ErrIncompleteRecord) {
			t.Errorf("Wrong error with %d of %d fields: want: %v got: %v", cut, len(fields), ErrIncompleteRecord, err)
		}
	}

	// Dropping only the final byte of the last quality run must fail too.
	payload := bytes.Join(fields, nil)
	err := NewSingleReader(bytes.NewReader(rawSingleArtifact(t, payload[:len(payload)-1]))).Decompress(new(pairSink))
	if !errors.Is(err, ErrIncompleteRecord) {
		t.Errorf("Wrong error for truncated quality run: want: %v got: %v", ErrIncompleteRecord, err)
	}

	// The untruncated payload decodes cleanly.
	sink := new(pairSink)
	if err := NewSingleReader(bytes.NewReader(rawSingleArtifact(t, payload))).Decompress(sink); err != nil {
		t.Fatalf("Wrong response for full payload: want: <nil> got: %v", err)
	}
	if len(sink.pairs) != 1 {
		t.Fatalf("Wrong pair count: want: 1 got: %d", len(sink.pairs))
	}
}

func TestSingleSentinelPrecondition(t *testing.T) {
	pairs := [][2]fastq.Read{{
		{Title: "bad\xfftitle", Letters: []byte{1}, Qualities: []byte{40}},
		{Title: "r/2", Letters: []byte{1}, Qualities: []byte{40}},
	}}

	err := NewSingleWriter(new(bytes.Buffer)).Compress(&pairSource{pairs: pairs})
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("Wrong error for sentinel in title: want: %v got: %v", ErrEncoding, err)
	}

	pairs = [][2]fastq.Read{{
		{Title: "r/1", Letters: []byte{9}, Qualities: []byte{40}},
		{Title: "r/2", Letters: []byte{1}, Qualities: []byte{40}},
	}}

	err = NewSingleWriter(new(bytes.Buffer)).Compress(&pairSource{pairs: pairs})
	if !errors.Is(err, ErrEncoding) {
		t.Errorf("Wrong error for out-of-alphabet letter: want: %v got: %v", ErrEncoding, err)
	}
}

func TestSourceErrorPropagates(t *testing.T) {
	boom := errors.New("invalid fastq file")

	err := NewSingleWriter(new(bytes.Buffer)).Compress(&errSource{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("Wrong error from failing source: want: %v got: %v", boom, err)
	}
}
