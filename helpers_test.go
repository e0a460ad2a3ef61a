package pare

import (
	"math/rand"

	"github.com/Pallinder/go-randomdata"

	"github.com/pareseq/pare/fastq"
)

// pairSource feeds a fixed list of pairs to an encoder.
type pairSource struct {
	pairs [][2]fastq.Read
	i     int
}

func (s *pairSource) ReadNext(r1, r2 *fastq.Read) (bool, error) {
	if s.i >= len(s.pairs) {
		return false, nil
	}

	*r1 = cloneRead(s.pairs[s.i][0])
	*r2 = cloneRead(s.pairs[s.i][1])
	s.i++
	return true, nil
}

// pairSink collects decoded pairs. The decoder owns its buffers, so the
// sink copies everything it is handed.
type pairSink struct {
	pairs [][2]fastq.Read
}

func (s *pairSink) WriteNext(r1, r2 *fastq.Read) error {
	s.pairs = append(s.pairs, [2]fastq.Read{cloneRead(*r1), cloneRead(*r2)})
	return nil
}

// errSource fails on the first read, standing in for a rejected upstream
// FASTQ file.
type errSource struct {
	err error
}

func (s *errSource) ReadNext(r1, r2 *fastq.Read) (bool, error) {
	return false, s.err
}

func cloneRead(r fastq.Read) fastq.Read {
	return fastq.Read{
		Title:     r.Title,
		SubTitle:  r.SubTitle,
		Letters:   append([]byte(nil), r.Letters...),
		Qualities: append([]byte(nil), r.Qualities...),
	}
}

func randomRead(rng *rand.Rand, suffix string) fastq.Read {
	n := 20 + rng.Intn(130)

	letters := make([]byte, n)
	qualities := make([]byte, n)
	for i := range letters {
		letters[i] = byte(rng.Intn(5))
		qualities[i] = byte(1 + rng.Intn(94))
	}

	return fastq.Read{
		Title:     randomdata.SillyName() + suffix,
		Letters:   letters,
		Qualities: qualities,
	}
}

func randomPairs(n int) [][2]fastq.Read {
	rng := rand.New(rand.NewSource(42))

	pairs := make([][2]fastq.Read, n)
	for i := range pairs {
		pairs[i] = [2]fastq.Read{randomRead(rng, "/1"), randomRead(rng, "/2")}
	}
	return pairs
}
