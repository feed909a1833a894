package interact

import (
	"math"

	"github.com/TuftsBCB/microenv/pdb"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	sideChainDonors = pdb.Filter{
		AtomNames: []string{"NE2", "ND1", "NH1", "NH2", "NZ"},
	}
	backboneDonors = pdb.Filter{
		AtomNames: []string{"N"},
		AminoOnly: true,
	}
	hydrogens = pdb.Filter{
		AtomNames: []string{"H*", "[1-9]H*"},
	}
	acceptors = pdb.Filter{
		AtomNames: []string{"O", "OE1", "OE2", "OD1", "OD2"},
	}
)

// HydrogenBonds counts (donor, hydrogen, acceptor) triples in env.
//
// Donors are side-chain NE2, ND1, NH1, NH2 and NZ atoms plus the backbone N
// of amino acids. A hydrogen is any atom named H* or [1-9]H* no further than
// DonorHydrogenCutoff from the donor. Acceptors are O, OE1, OE2, OD1 and
// OD2. A triple is a bond when the donor and acceptor are different atoms no
// further than DonorAcceptorCutoff apart and the angle at the hydrogen is at
// least AngleCutoff.
//
// The count is unavailable when there are no donors, hydrogens or
// acceptors (structures without explicit hydrogens are common), or when
// any of them has a coordinate that is not finite.
func HydrogenBonds(env pdb.Atoms, p Params) Count {
	donors := selectAtoms(env, sideChainDonors, backboneDonors)
	hs := selectAtoms(env, hydrogens)
	accs := selectAtoms(env, acceptors)
	switch {
	case len(donors) == 0:
		return Unavailable("no donor atoms")
	case len(hs) == 0:
		return Unavailable("no hydrogen atoms")
	case len(accs) == 0:
		return Unavailable("no acceptor atoms")
	}
	for _, group := range []pdb.Atoms{donors, hs, accs} {
		for _, a := range group {
			if !finite(a.Vec()) {
				return Unavailable("atom %s has a coordinate that is not finite", a)
			}
		}
	}

	count := 0
	for _, d := range donors {
		dv := d.Vec()
		for _, h := range hs {
			hv := h.Vec()
			if h == d || r3.Norm(r3.Sub(hv, dv)) > p.DonorHydrogenCutoff {
				continue
			}
			for _, a := range accs {
				if a == d {
					continue
				}
				av := a.Vec()
				if r3.Norm(r3.Sub(av, dv)) > p.DonorAcceptorCutoff {
					continue
				}
				if angle(dv, hv, av) >= p.AngleCutoff {
					count++
				}
			}
		}
	}
	return Counted(count)
}

// angle returns the angle a-b-c in degrees, with b at the vertex.
// If b coincides with a or c, the angle is undefined and NaN is returned.
func angle(a, b, c r3.Vec) float64 {
	ba, bc := r3.Sub(a, b), r3.Sub(c, b)
	norms := r3.Norm(ba) * r3.Norm(bc)
	if norms == 0 {
		return math.NaN()
	}
	cos := r3.Dot(ba, bc) / norms
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

func finite(v r3.Vec) bool {
	for _, x := range []float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
