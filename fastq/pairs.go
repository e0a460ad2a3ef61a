package fastq

// RecordReader yields one read at a time. False means clean end of input.
type RecordReader interface {
	ReadNext(buf *Read) (bool, error)
}

// RecordWriter accepts one read at a time.
type RecordWriter interface {
	WriteNext(r *Read) error
}

// PairReader is the source collaborator for the compression codecs: it
// fills both halves of a pair, returning false only at a clean end of
// input. A present r1 with a missing r2 is ErrMissingPairedRead.
type PairReader interface {
	ReadNext(r1, r2 *Read) (bool, error)
}

// PairWriter is the sink collaborator: called once per decoded pair, in
// original order.
type PairWriter interface {
	WriteNext(r1, r2 *Read) error
}

// PairedFiles reads r1 and r2 from two parallel streams.
type PairedFiles struct {
	r1, r2    RecordReader
	reverseR2 bool
}

// NewPairedFiles pairs two record streams. If reverseR2 is set, read 2 of
// every pair is reverse-complemented on the way in.
func NewPairedFiles(r1, r2 RecordReader, reverseR2 bool) *PairedFiles {
	return &PairedFiles{r1: r1, r2: r2, reverseR2: reverseR2}
}

func (p *PairedFiles) ReadNext(r1, r2 *Read) (bool, error) {
	ok, err := p.r1.ReadNext(r1)
	if err != nil || !ok {
		return false, err
	}

	if ok, err = p.r2.ReadNext(r2); err != nil {
		return false, err
	} else if !ok {
		return false, ErrMissingPairedRead
	}

	if p.reverseR2 {
		r2.ReverseComplement()
	}
	return true, nil
}

// InterleavedFile reads pairs from a single alternating r1,r2 stream.
type InterleavedFile struct {
	r         RecordReader
	reverseR2 bool
}

func NewInterleavedFile(r RecordReader, reverseR2 bool) *InterleavedFile {
	return &InterleavedFile{r: r, reverseR2: reverseR2}
}

func (p *InterleavedFile) ReadNext(r1, r2 *Read) (bool, error) {
	ok, err := p.r.ReadNext(r1)
	if err != nil || !ok {
		return false, err
	}

	if ok, err = p.r.ReadNext(r2); err != nil {
		return false, err
	} else if !ok {
		return false, ErrMissingPairedRead
	}

	if p.reverseR2 {
		r2.ReverseComplement()
	}
	return true, nil
}

// PairedFilesWriter writes r1 and r2 to two parallel streams, undoing the
// ingestion-time reverse complement when reverseR2 is set.
type PairedFilesWriter struct {
	w1, w2    RecordWriter
	reverseR2 bool
}

func NewPairedFilesWriter(w1, w2 RecordWriter, reverseR2 bool) *PairedFilesWriter {
	return &PairedFilesWriter{w1: w1, w2: w2, reverseR2: reverseR2}
}

func (p *PairedFilesWriter) WriteNext(r1, r2 *Read) error {
	if p.reverseR2 {
		r2.ReverseComplement()
	}
	if err := p.w1.WriteNext(r1); err != nil {
		return err
	}
	return p.w2.WriteNext(r2)
}

// InterleavedFileWriter writes pairs to a single alternating stream.
type InterleavedFileWriter struct {
	w         RecordWriter
	reverseR2 bool
}

func NewInterleavedFileWriter(w RecordWriter, reverseR2 bool) *InterleavedFileWriter {
	return &InterleavedFileWriter{w: w, reverseR2: reverseR2}
}

func (p *InterleavedFileWriter) WriteNext(r1, r2 *Read) error {
	if p.reverseR2 {
		r2.ReverseComplement()
	}
	if err := p.w.WriteNext(r1); err != nil {
		return err
	}
	return p.w.WriteNext(r2)
}
