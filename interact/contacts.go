package interact

import (
	"github.com/TuftsBCB/microenv/pdb"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	hydrophobicCarbons = pdb.Filter{
		AtomNames:        []string{"C*"},
		ExcludeAtomNames: []string{"CA", "CB"},
	}

	argPositives = pdb.Filter{
		ResidueNames: []string{"ARG"},
		AtomNames:    []string{"NH*"},
		NoSolvent:    true,
	}
	lysPositives = pdb.Filter{
		ResidueNames: []string{"LYS"},
		AtomNames:    []string{"NZ"},
		NoSolvent:    true,
	}
	aspNegatives = pdb.Filter{
		ResidueNames: []string{"ASP"},
		AtomNames:    []string{"OD*"},
		NoSolvent:    true,
	}
	gluNegatives = pdb.Filter{
		ResidueNames: []string{"GLU"},
		AtomNames:    []string{"OE*"},
		NoSolvent:    true,
	}
)

// HydrophobicCandidates returns the carbon atoms of env that take part in
// hydrophobic contacts: every atom whose name starts with C, except CA and
// CB.
func HydrophobicCandidates(env pdb.Atoms) pdb.Atoms {
	return selectAtoms(env, hydrophobicCarbons)
}

// Hydrophobic counts unordered pairs of hydrophobic candidates that are no
// further than HydrophobicCutoff apart. Each pair is counted once, so the
// result is at most n(n-1)/2 for n candidates.
func Hydrophobic(env pdb.Atoms, p Params) int {
	flat := HydrophobicCandidates(env).Flat()
	n := len(flat) / 3
	count := 0
	for i := 0; i < n; i++ {
		xi := flat[3*i : 3*i+3]
		for j := i + 1; j < n; j++ {
			if floats.Distance(xi, flat[3*j:3*j+3], 2) <= p.HydrophobicCutoff {
				count++
			}
		}
	}
	return count
}

// Charged returns the positively charged (ARG NH*, LYS NZ) and negatively
// charged (ASP OD*, GLU OE*) atoms of env. Solvent is never included.
func Charged(env pdb.Atoms) (positive, negative pdb.Atoms) {
	positive = selectAtoms(env, argPositives, lysPositives)
	negative = selectAtoms(env, aspNegatives, gluNegatives)
	return
}

// SaltBridges counts (positive, negative) atom pairs whose distance lies in
// the inclusive window [SaltBridgeMin, SaltBridgeMax]. If either side is
// empty, the count is 0.
func SaltBridges(env pdb.Atoms, p Params) int {
	pos, neg := Charged(env)
	if len(pos) == 0 || len(neg) == 0 {
		return 0
	}

	dists := DistanceMatrix(pos, neg)
	rows, cols := dists.Dims()
	count := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			d := dists.At(i, j)
			if d >= p.SaltBridgeMin && d <= p.SaltBridgeMax {
				count++
			}
		}
	}
	return count
}

// DistanceMatrix returns the len(as) x len(bs) matrix of Euclidean
// distances between every atom in as and every atom in bs.
// Both sets must be non-empty.
func DistanceMatrix(as, bs pdb.Atoms) *mat.Dense {
	dists := mat.NewDense(len(as), len(bs), nil)
	for i, a := range as {
		for j, b := range bs {
			dists.Set(i, j, pdb.Distance(a.Coords, b.Coords))
		}
	}
	return dists
}
