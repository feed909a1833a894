package pdb

import (
	"github.com/TuftsBCB/seq"
)

// ResidueSequence is the one letter sequence of a structure's residues in
// file order, paired with each residue's sequence number.
// Both slices always have the same length.
type ResidueSequence struct {
	Residues []seq.Residue
	Numbers  []int
}

// Sequence returns the residue sequence of every residue in the entry,
// including residues that aren't amino acids (which are 'X').
func (e *Entry) Sequence() ResidueSequence {
	s := ResidueSequence{
		Residues: make([]seq.Residue, len(e.Residues)),
		Numbers:  make([]int, len(e.Residues)),
	}
	for i, r := range e.Residues {
		s.Residues[i] = r.Letter
		s.Numbers[i] = r.SequenceNum
	}
	return s
}

// Len returns the number of residues in the sequence.
func (s ResidueSequence) Len() int {
	return len(s.Residues)
}

// Seq returns the residues as a named sequence.
func (s ResidueSequence) Seq(name string) seq.Sequence {
	return seq.Sequence{Name: name, Residues: s.Residues}
}

// Duplicates returns every residue number that occurs more than once.
func (s ResidueSequence) Duplicates() []int {
	seen := make(map[int]int, len(s.Numbers))
	var dups []int
	for _, n := range s.Numbers {
		seen[n]++
		if seen[n] == 2 {
			dups = append(dups, n)
		}
	}
	return dups
}

// Increasing returns true if residue numbers strictly increase.
func (s ResidueSequence) Increasing() bool {
	for i := 1; i < len(s.Numbers); i++ {
		if s.Numbers[i] <= s.Numbers[i-1] {
			return false
		}
	}
	return true
}
