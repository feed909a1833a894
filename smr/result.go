package smr

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/TuftsBCB/microenv/interact"
	"github.com/TuftsBCB/microenv/pdb"
)

// Result is the outcome of one evaluation. Its JSON and YAML forms share
// the same keys.
type Result struct {
	Status       string    `json:"status" yaml:"status"`
	DesignResid  int       `json:"design_resid" yaml:"design_resid"`
	NaturalResid int       `json:"natural_resid" yaml:"natural_resid"`
	Design       Breakdown `json:"design" yaml:"design"`
	Natural      Breakdown `json:"natural" yaml:"natural"`
	SMR          float64   `json:"SMR" yaml:"SMR"`
	Metadata     Metadata  `json:"metadata" yaml:"metadata"`

	designEnv, naturalEnv pdb.Atoms
}

// Breakdown is the interaction count of one microenvironment.
// HBondsUnavailable is set (and HBonds is 0) when hydrogen bonds could not
// be counted.
type Breakdown struct {
	HBonds            int    `json:"hbonds" yaml:"hbonds"`
	Hydrophobic       int    `json:"hydrophobic" yaml:"hydrophobic"`
	SaltBridges       int    `json:"salt_bridges" yaml:"salt_bridges"`
	Total             int    `json:"total" yaml:"total"`
	HBondsUnavailable string `json:"hbonds_unavailable,omitempty" yaml:"hbonds_unavailable,omitempty"`
}

// Metadata records the settings an evaluation used.
type Metadata struct {
	RadiusUsed float64 `json:"radius_used" yaml:"radius_used"`
	Units      Units   `json:"units" yaml:"units"`
}

// Units names the units of the distances and angles in a result.
type Units struct {
	Distances string `json:"distances" yaml:"distances"`
	Angles    string `json:"angles" yaml:"angles"`
}

func newBreakdown(cs interact.Counts) Breakdown {
	return Breakdown{
		HBonds:            cs.HBonds.Value(),
		Hydrophobic:       cs.Hydrophobic,
		SaltBridges:       cs.SaltBridges,
		Total:             cs.Total(),
		HBondsUnavailable: cs.HBonds.Reason,
	}
}

// DesignEnvironment returns the atoms of the designed structure's
// microenvironment.
func (r *Result) DesignEnvironment() pdb.Atoms {
	return r.designEnv
}

// NaturalEnvironment returns the atoms of the natural structure's
// microenvironment.
func (r *Result) NaturalEnvironment() pdb.Atoms {
	return r.naturalEnv
}

// WriteEnvironments writes both microenvironments as PDB files into dir,
// named design_<resid>_env.pdb and natural_<resid>_env.pdb. The paths of
// the files written are returned.
func (r *Result) WriteEnvironments(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	files := []struct {
		name  string
		atoms pdb.Atoms
	}{
		{fmt.Sprintf("design_%d_env.pdb", r.DesignResid), r.designEnv},
		{fmt.Sprintf("natural_%d_env.pdb", r.NaturalResid), r.naturalEnv},
	}
	var written []string
	for _, file := range files {
		fp := filepath.Join(dir, file.name)
		if err := writePDB(fp, file.atoms); err != nil {
			return written, err
		}
		written = append(written, fp)
	}
	return written, nil
}

func writePDB(fp string, atoms pdb.Atoms) (err error) {
	f, err := os.Create(fp)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return pdb.Write(f, atoms)
}
