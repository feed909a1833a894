package smr

import (
	"github.com/TuftsBCB/microenv/align"
	"github.com/TuftsBCB/microenv/pdb"
	"github.com/TuftsBCB/structure"
)

// Correspondence aligns the residue sequences of the designed and natural
// structures and returns the alignment along with the residue number map
// it induces.
func Correspondence(
	design, natural *pdb.Entry,
	sc align.Scoring,
) (align.Alignment, *align.Map, error) {
	dseq, nseq := design.Sequence(), natural.Sequence()
	aln := align.Global(dseq.Residues, nseq.Residues, sc)
	m, err := align.NewMap(aln, dseq.Numbers, nseq.Numbers)
	if err != nil {
		return align.Alignment{}, nil, err
	}
	return aln, m, nil
}

// MapResidue returns the residue number in natural corresponding to
// residue number n in design. If there is none, an
// *UnmappableResidueError is returned.
func MapResidue(design, natural *pdb.Entry, n int, sc align.Scoring) (int, error) {
	_, m, err := Correspondence(design, natural, sc)
	if err != nil {
		return 0, err
	}
	to, err := m.Lookup(n)
	if err != nil {
		return 0, &UnmappableResidueError{Residue: n, Reason: err}
	}
	return to, nil
}

// CaPosition returns the position of the first CA atom (in file order)
// belonging to a residue numbered n.
func CaPosition(e *pdb.Entry, n int) (structure.Coords, error) {
	for _, res := range e.Residues {
		if res.SequenceNum != n {
			continue
		}
		if ca := res.Ca(); ca != nil {
			return *ca, nil
		}
	}
	return structure.Coords{}, &MissingReferenceAtomError{Residue: n, Path: e.Path}
}

// Microenvironment returns every atom of e no further than radius from
// center, in file order. A negative radius selects nothing.
func Microenvironment(e *pdb.Entry, center structure.Coords, radius float64) pdb.Atoms {
	env, err := e.Select(pdb.Filter{
		Within: &pdb.Sphere{Center: center, Radius: radius},
	})
	if err != nil {
		return nil
	}
	return env
}
