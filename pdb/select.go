package pdb

import (
	"fmt"
	"path"

	"github.com/TuftsBCB/structure"
	"gonum.org/v1/gonum/spatial/r3"
)

// Filter describes a set of atoms. Every non-zero field restricts the
// selection further; the zero Filter selects every atom.
type Filter struct {
	// Residue names (e.g., "ARG") an atom's residue must have.
	ResidueNames []string

	// Residue names to exclude.
	ExcludeResidueNames []string

	// Atom name patterns. An atom matches if any pattern matches its name.
	// Patterns use path.Match syntax, so "NH*", "OD?" and "[1-9]H*" work.
	AtomNames []string

	// Atom names to exclude (exact matches).
	ExcludeAtomNames []string

	// When set, only atoms in amino acid residues are selected.
	AminoOnly bool

	// When set, only atoms not in solvent residues are selected.
	NoSolvent bool

	// An inclusive range of residue sequence numbers.
	Residues *Range

	// A sphere the atom must be inside of (or on the surface of).
	Within *Sphere
}

// Range is an inclusive range of residue sequence numbers.
type Range struct {
	Start, End int
}

// Sphere is a ball around a point.
type Sphere struct {
	Center structure.Coords
	Radius float64
}

// Contains returns true if c is no further than Radius from the center.
func (s Sphere) Contains(c structure.Coords) bool {
	return r3.Norm2(r3.Sub(Vec(c), Vec(s.Center))) <= s.Radius*s.Radius
}

// Validate returns an error if any atom name pattern is malformed.
func (f Filter) Validate() error {
	for _, pat := range f.AtomNames {
		if _, err := path.Match(pat, ""); err != nil {
			return fmt.Errorf("Bad atom name pattern '%s': %s", pat, err)
		}
	}
	if f.Within != nil && f.Within.Radius < 0 {
		return fmt.Errorf("Negative sphere radius %f.", f.Within.Radius)
	}
	return nil
}

// Match returns true if the atom satisfies the filter. Match assumes the
// filter is valid. (See Validate.)
func (f Filter) Match(a *Atom) bool {
	res := a.Residue
	if len(f.ResidueNames) > 0 && (res == nil || !in(res.Name, f.ResidueNames)) {
		return false
	}
	if res != nil && in(res.Name, f.ExcludeResidueNames) {
		return false
	}
	if f.AminoOnly && (res == nil || !res.IsAmino()) {
		return false
	}
	if f.NoSolvent && res != nil && IsSolvent(res.Name) {
		return false
	}
	if f.Residues != nil {
		if res == nil ||
			res.SequenceNum < f.Residues.Start ||
			res.SequenceNum > f.Residues.End {
			return false
		}
	}
	if in(a.Name, f.ExcludeAtomNames) {
		return false
	}
	if len(f.AtomNames) > 0 && !matchAny(f.AtomNames, a.Name) {
		return false
	}
	if f.Within != nil && !f.Within.Contains(a.Coords) {
		return false
	}
	return true
}

// Select returns the atoms matching the filter, preserving order.
func (as Atoms) Select(f Filter) (Atoms, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	selected := make(Atoms, 0, 16)
	for _, a := range as {
		if f.Match(a) {
			selected = append(selected, a)
		}
	}
	return selected, nil
}

// Select returns the atoms in the entry matching the filter.
func (e *Entry) Select(f Filter) (Atoms, error) {
	return e.Atoms.Select(f)
}

func matchAny(patterns []string, name string) bool {
	for _, pat := range patterns {
		if ok, _ := path.Match(pat, name); ok {
			return true
		}
	}
	return false
}

func in(s string, set []string) bool {
	for _, x := range set {
		if s == x {
			return true
		}
	}
	return false
}
