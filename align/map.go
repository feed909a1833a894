package align

import (
	"errors"
	"fmt"
	"sort"

	"github.com/TuftsBCB/seq"
)

var (
	// ErrNotInSequence is returned by Lookup for residue numbers that do
	// not occur in the first sequence at all.
	ErrNotInSequence = errors.New("residue number does not occur in the sequence")

	// ErrAlignedToGap is returned by Lookup when the residue exists but is
	// aligned to a gap in the second sequence.
	ErrAlignedToGap = errors.New("residue is aligned to a gap")

	// ErrAmbiguous is returned by Lookup when the residue number occurs
	// more than once in the first sequence (e.g., several chains numbered
	// from 1), so no single correspondence exists.
	ErrAmbiguous = errors.New("residue number occurs more than once in the sequence")
)

// Map is a correspondence from residue numbers of the first sequence of an
// alignment to residue numbers of the second. It only contains columns where
// neither sequence has a gap. A Map is read only after construction.
type Map struct {
	pairs     map[int]int
	known     map[int]int // occurrences of each number in the first sequence
	ambiguous bool
}

// NewMap walks the aligned columns of aln with one cursor into each list of
// residue numbers. A cursor advances only when its sequence has a residue
// (not a gap) in the current column. Whenever both sequences have a residue
// in a column, the pair of current residue numbers is recorded.
//
// An error is returned if the number of residues in either side of the
// alignment is not equal to the length of the corresponding number list.
func NewMap(aln Alignment, numsA, numsB []int) (*Map, error) {
	if len(aln.A) != len(aln.B) {
		return nil, fmt.Errorf("Aligned sequences have different lengths "+
			"(%d != %d).", len(aln.A), len(aln.B))
	}
	if n := ungapped(aln.A); n != len(numsA) {
		return nil, fmt.Errorf("First aligned sequence has %d residues, but "+
			"%d residue numbers were given.", n, len(numsA))
	}
	if n := ungapped(aln.B); n != len(numsB) {
		return nil, fmt.Errorf("Second aligned sequence has %d residues, but "+
			"%d residue numbers were given.", n, len(numsB))
	}

	m := &Map{
		pairs: make(map[int]int, len(numsA)),
		known: make(map[int]int, len(numsA)),
	}
	for _, n := range numsA {
		m.known[n]++
		if m.known[n] > 1 {
			m.ambiguous = true
		}
	}

	ai, bi := 0, 0
	for col := range aln.A {
		a, b := aln.A[col], aln.B[col]
		if a != Gap && b != Gap {
			m.pairs[numsA[ai]] = numsB[bi]
		}
		if a != Gap {
			ai++
		}
		if b != Gap {
			bi++
		}
	}
	return m, nil
}

// Lookup returns the residue number of the second sequence corresponding
// to residue number n of the first sequence.
func (m *Map) Lookup(n int) (int, error) {
	switch count := m.known[n]; {
	case count == 0:
		return 0, ErrNotInSequence
	case count > 1:
		return 0, ErrAmbiguous
	}
	to, ok := m.pairs[n]
	if !ok {
		return 0, ErrAlignedToGap
	}
	return to, nil
}

// Len returns the number of mapped residues. Numbers that occur more than
// once in the first sequence are counted once.
func (m *Map) Len() int {
	return len(m.pairs)
}

// Ambiguous returns true if any residue number occurs more than once in
// the first sequence.
func (m *Map) Ambiguous() bool {
	return m.ambiguous
}

// Pair is a single entry of a Map.
type Pair struct {
	From, To int
}

// Pairs returns every unambiguous correspondence, sorted by From.
func (m *Map) Pairs() []Pair {
	pairs := make([]Pair, 0, len(m.pairs))
	for from, to := range m.pairs {
		if m.known[from] > 1 {
			continue
		}
		pairs = append(pairs, Pair{from, to})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].From < pairs[j].From })
	return pairs
}

func ungapped(rs []seq.Residue) int {
	n := 0
	for _, r := range rs {
		if r != Gap {
			n++
		}
	}
	return n
}
