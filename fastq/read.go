package fastq

import "fmt"

// Nucleotide codes used everywhere downstream of the parser. One byte per
// base, and deliberately a 5-symbol alphabet so reserved framing bytes
// (0xFF, '\n') can never collide with sequence data.
const (
	NucN byte = 0
	NucA byte = 1
	NucT byte = 2
	NucC byte = 3
	NucG byte = 4
)

// Read is a single sequencing read: title, optional description-line text,
// nucleotides as small-integer codes, and per-base quality values.
// Invariant: len(Letters) == len(Qualities).
type Read struct {
	Title     string
	SubTitle  string
	Letters   []byte
	Qualities []byte
}

var complement = [5]byte{NucN, NucT, NucA, NucG, NucC}

// ReverseComplement reverses the base order in place and substitutes each
// base with its complement: A<->T, C<->G, N<->N.
func (r *Read) ReverseComplement() {
	letters := r.Letters
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	for i, n := range letters {
		letters[i] = complement[n]
	}
}

// ParseLetters converts a textual nucleotide sequence to codes, case-folding
// on the way in. Anything outside |ATCGNatcgn| is an InvalidNucleotideError.
func ParseLetters(s string) ([]byte, error) {
	letters := make([]byte, 0, len(s))
	for _, c := range []byte(s) {
		switch c {
		case 'n', 'N':
			letters = append(letters, NucN)
		case 'a', 'A':
			letters = append(letters, NucA)
		case 't', 'T':
			letters = append(letters, NucT)
		case 'c', 'C':
			letters = append(letters, NucC)
		case 'g', 'G':
			letters = append(letters, NucG)
		default:
			return nil, &InvalidNucleotideError{Letter: rune(c)}
		}
	}
	return letters, nil
}

var letterText = [5]byte{'N', 'A', 'T', 'C', 'G'}

// FormatLetters converts nucleotide codes back to their textual form.
func FormatLetters(letters []byte) (string, error) {
	out := make([]byte, len(letters))
	for i, n := range letters {
		if n > NucG {
			return "", fmt.Errorf("invalid nucleotide code %d", n)
		}
		out[i] = letterText[n]
	}
	return string(out), nil
}
