package pdb

import (
	"fmt"
	"path"
	"strings"

	"github.com/TuftsBCB/seq"
	"github.com/TuftsBCB/structure"
	"gonum.org/v1/gonum/spatial/r3"
)

// Entry is a loaded structure. Residues and Atoms are both in file order.
//
// An Entry must not be modified once it is shared between goroutines.
// Reading it concurrently is safe.
type Entry struct {
	Path     string
	IdCode   string
	Residues []*Residue
	Atoms    Atoms
}

// Residue is a group of contiguous atom records with the same chain,
// residue name, sequence number and insertion code.
type Residue struct {
	Chain         byte
	Name          string
	Letter        seq.Residue
	SequenceNum   int
	InsertionCode byte
	Atoms         Atoms
}

// Atom corresponds to a single ATOM or HETATM record.
type Atom struct {
	Serial  int
	Name    string
	AltLoc  byte
	Element string
	Het     bool
	Residue *Residue
	structure.Coords
}

// Atoms names a slice of atoms.
type Atoms []*Atom

// AtomRecord is the flat form of an atom record. It is what the parser
// produces for every ATOM/HETATM line and what Entry.Add consumes.
type AtomRecord struct {
	Serial        int
	Name          string
	AltLoc        byte
	ResidueName   string
	Chain         byte
	SequenceNum   int
	InsertionCode byte
	Coords        structure.Coords
	Element       string
	Het           bool
}

// NewEntry returns an empty entry for the given path.
func NewEntry(path string) *Entry {
	return &Entry{
		Path:     path,
		Residues: make([]*Residue, 0, 100),
		Atoms:    make(Atoms, 0, 1000),
	}
}

// Add appends an atom to the entry. A new residue is started whenever the
// chain, residue name, sequence number or insertion code differs from the
// last residue added.
func (e *Entry) Add(rec AtomRecord) *Atom {
	var res *Residue
	if n := len(e.Residues); n > 0 {
		last := e.Residues[n-1]
		if last.Chain == rec.Chain && last.Name == rec.ResidueName &&
			last.SequenceNum == rec.SequenceNum &&
			last.InsertionCode == rec.InsertionCode {
			res = last
		}
	}
	if res == nil {
		res = &Residue{
			Chain:         rec.Chain,
			Name:          rec.ResidueName,
			Letter:        getAmino(rec.ResidueName),
			SequenceNum:   rec.SequenceNum,
			InsertionCode: rec.InsertionCode,
			Atoms:         make(Atoms, 0, 8),
		}
		e.Residues = append(e.Residues, res)
	}

	elem := rec.Element
	if len(elem) == 0 {
		elem = guessElement(rec.Name)
	}
	atom := &Atom{
		Serial:  rec.Serial,
		Name:    rec.Name,
		AltLoc:  rec.AltLoc,
		Element: elem,
		Het:     rec.Het,
		Residue: res,
		Coords:  rec.Coords,
	}
	res.Atoms = append(res.Atoms, atom)
	e.Atoms = append(e.Atoms, atom)
	return atom
}

// Name returns the base name of the path of this entry.
func (e *Entry) Name() string {
	return path.Base(e.Path)
}

// Residue returns the first residue (in file order) with the given
// sequence number. If no such residue exists, nil is returned.
func (e *Entry) Residue(num int) *Residue {
	for _, r := range e.Residues {
		if r.SequenceNum == num {
			return r
		}
	}
	return nil
}

// Ca returns the coordinates of the first alpha-carbon atom in this residue.
// If one does not exist, nil is returned.
func (r *Residue) Ca() *structure.Coords {
	for _, atom := range r.Atoms {
		if atom.Name == "CA" {
			coords := atom.Coords
			return &coords
		}
	}
	return nil
}

// IsAmino returns true if the residue name is a known amino acid.
func (r *Residue) IsAmino() bool {
	return IsAmino(r.Name)
}

func (r *Residue) String() string {
	if r.InsertionCode != 0 && r.InsertionCode != ' ' {
		return fmt.Sprintf("%s %c%d%c", r.Name, chainIdent(r.Chain),
			r.SequenceNum, r.InsertionCode)
	}
	return fmt.Sprintf("%s %c%d", r.Name, chainIdent(r.Chain), r.SequenceNum)
}

// Vec returns the coordinates of the atom as a vector.
func (a *Atom) Vec() r3.Vec {
	return Vec(a.Coords)
}

func (a *Atom) String() string {
	return fmt.Sprintf("(%d, %s, %s, [%0.3f %0.3f %0.3f])",
		a.Serial, a.Name, a.Residue, a.X, a.Y, a.Z)
}

// Vec converts coordinates to a vector.
func Vec(c structure.Coords) r3.Vec {
	return r3.Vec{X: c.X, Y: c.Y, Z: c.Z}
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b structure.Coords) float64 {
	return r3.Norm(r3.Sub(Vec(a), Vec(b)))
}

// Coords returns the coordinates of every atom, in order.
func (as Atoms) Coords() []structure.Coords {
	cs := make([]structure.Coords, len(as))
	for i, a := range as {
		cs[i] = a.Coords
	}
	return cs
}

// Flat returns the coordinates of every atom as one contiguous slice of
// length 3*len(as), laid out as x0, y0, z0, x1, y1, z1, ...
func (as Atoms) Flat() []float64 {
	flat := make([]float64, 3*len(as))
	for i, a := range as {
		flat[3*i], flat[3*i+1], flat[3*i+2] = a.X, a.Y, a.Z
	}
	return flat
}

func (as Atoms) String() string {
	lines := make([]string, len(as))
	for i, atom := range as {
		lines[i] = atom.String()
	}
	return strings.Join(lines, "\n")
}

// guessElement derives an element symbol from an atom name when the
// element columns are blank. Leading digits (as in "1HB") are skipped and
// the first letter is used.
func guessElement(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] >= '0' && name[i] <= '9' {
			continue
		}
		return name[i : i+1]
	}
	return ""
}

func chainIdent(c byte) byte {
	if c == 0 || c == ' ' {
		return '_'
	}
	return c
}
