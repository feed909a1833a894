// Package interact counts non-covalent interactions (hydrogen bonds,
// hydrophobic contacts and salt bridges) among a set of atoms.
//
// The counters are pure functions of their input atoms and parameters. They
// never look outside the atoms they are given, so the caller decides what
// the neighborhood is (usually a sphere around a residue's alpha-carbon).
package interact

import (
	"fmt"

	"github.com/TuftsBCB/microenv/pdb"
)

// Params holds every distance (in Angstroms) and angle (in degrees)
// threshold used by the counters.
type Params struct {
	// Maximum donor-acceptor distance of a hydrogen bond.
	DonorAcceptorCutoff float64

	// Minimum donor-hydrogen-acceptor angle of a hydrogen bond.
	AngleCutoff float64

	// Maximum distance between a donor and a hydrogen for the hydrogen to
	// be considered bonded to the donor.
	DonorHydrogenCutoff float64

	// Maximum distance between two hydrophobic carbons in contact.
	HydrophobicCutoff float64

	// Inclusive distance window of a salt bridge.
	SaltBridgeMin, SaltBridgeMax float64
}

// DefaultParams returns the standard thresholds: 3.5 Å and 120° for
// hydrogen bonds (with hydrogens bonded to donors within 1.2 Å), 4.0 Å for
// hydrophobic contacts and 2.5-4.0 Å for salt bridges.
func DefaultParams() Params {
	return Params{
		DonorAcceptorCutoff: 3.5,
		AngleCutoff:         120,
		DonorHydrogenCutoff: 1.2,
		HydrophobicCutoff:   4.0,
		SaltBridgeMin:       2.5,
		SaltBridgeMax:       4.0,
	}
}

// Validate returns an error if any threshold is nonsensical.
func (p Params) Validate() error {
	switch {
	case p.DonorAcceptorCutoff <= 0:
		return fmt.Errorf("Donor-acceptor cutoff must be positive, "+
			"but is %f.", p.DonorAcceptorCutoff)
	case p.DonorHydrogenCutoff <= 0:
		return fmt.Errorf("Donor-hydrogen cutoff must be positive, "+
			"but is %f.", p.DonorHydrogenCutoff)
	case p.AngleCutoff < 0 || p.AngleCutoff > 180:
		return fmt.Errorf("Angle cutoff must be in [0, 180], but is %f.",
			p.AngleCutoff)
	case p.HydrophobicCutoff <= 0:
		return fmt.Errorf("Hydrophobic cutoff must be positive, but is %f.",
			p.HydrophobicCutoff)
	case p.SaltBridgeMin < 0 || p.SaltBridgeMin > p.SaltBridgeMax:
		return fmt.Errorf("Bad salt bridge window [%f, %f].",
			p.SaltBridgeMin, p.SaltBridgeMax)
	}
	return nil
}

// Count is the outcome of a counter that may be unable to produce a
// number. It is either a count or unavailable with a reason.
type Count struct {
	N      int
	Reason string
}

// Counted returns an available count of n.
func Counted(n int) Count {
	return Count{N: n}
}

// Unavailable returns a count that could not be computed. It contributes 0
// to any total.
func Unavailable(format string, v ...interface{}) Count {
	return Count{Reason: fmt.Sprintf(format, v...)}
}

// Ok returns true if the count is available.
func (c Count) Ok() bool {
	return len(c.Reason) == 0
}

// Value returns the count, or 0 if it is unavailable.
func (c Count) Value() int {
	if !c.Ok() {
		return 0
	}
	return c.N
}

func (c Count) String() string {
	if !c.Ok() {
		return fmt.Sprintf("unavailable (%s)", c.Reason)
	}
	return fmt.Sprintf("%d", c.N)
}

// Counts is the interaction breakdown of one microenvironment.
type Counts struct {
	HBonds      Count
	Hydrophobic int
	SaltBridges int
}

// Total returns the sum of all interactions, with equal weights.
// An unavailable hydrogen bond count contributes 0.
func (cs Counts) Total() int {
	return cs.HBonds.Value() + cs.Hydrophobic + cs.SaltBridges
}

// CountAll runs every counter over the same atoms.
func CountAll(env pdb.Atoms, p Params) Counts {
	return Counts{
		HBonds:      HydrogenBonds(env, p),
		Hydrophobic: Hydrophobic(env, p),
		SaltBridges: SaltBridges(env, p),
	}
}

// selectAtoms returns the atoms matching each filter in turn. The filters
// of this package are checked at initialization, so selection cannot fail.
func selectAtoms(env pdb.Atoms, filters ...pdb.Filter) pdb.Atoms {
	var selected pdb.Atoms
	for _, f := range filters {
		for _, a := range env {
			if f.Match(a) {
				selected = append(selected, a)
			}
		}
	}
	return selected
}

func init() {
	all := []pdb.Filter{
		sideChainDonors, backboneDonors, hydrogens, acceptors,
		hydrophobicCarbons, argPositives, lysPositives,
		aspNegatives, gluNegatives,
	}
	for _, f := range all {
		if err := f.Validate(); err != nil {
			panic(err)
		}
	}
}
