package interact

import (
	"fmt"
	"math"
	"testing"

	"github.com/TuftsBCB/microenv/pdb"
	"github.com/TuftsBCB/structure"
)

type rec struct {
	res     string
	num     int
	name    string
	x, y, z float64
}

func atoms(recs ...rec) pdb.Atoms {
	entry := pdb.NewEntry("test.pdb")
	for i, r := range recs {
		entry.Add(pdb.AtomRecord{
			Serial:      i + 1,
			Name:        r.name,
			ResidueName: r.res,
			Chain:       'A',
			SequenceNum: r.num,
			Coords:      structure.Coords{X: r.x, Y: r.y, Z: r.z},
		})
	}
	return entry.Atoms
}

func TestHydrogenBonds(t *testing.T) {
	p := DefaultParams()
	donor := []rec{
		{"ALA", 1, "N", 0, 0, 0},
		{"ALA", 1, "H", 1, 0, 0},
	}
	tests := []struct {
		name     string
		acceptor rec
		want     int
	}{
		{"linear", rec{"GLY", 2, "O", 2.9, 0, 0}, 1},
		{"at cutoff", rec{"GLY", 2, "O", 3.5, 0, 0}, 1},
		{"too far", rec{"GLY", 2, "O", 3.6, 0, 0}, 0},
		{"bad angle", rec{"GLY", 2, "O", 0, 2.9, 0}, 0},
		{"side chain acceptor", rec{"ASP", 2, "OD1", 2.8, 0.3, 0}, 1},
	}
	for _, test := range tests {
		env := atoms(append(donor[:2:2], test.acceptor)...)
		got := HydrogenBonds(env, p)
		if !got.Ok() || got.N != test.want {
			t.Fatalf("%s: expected %d hydrogen bonds but got %s.",
				test.name, test.want, got)
		}
	}
}

func TestHydrogenBondsDonorHydrogenCutoff(t *testing.T) {
	env := atoms(
		rec{"LYS", 1, "NZ", 0, 0, 0},
		rec{"LYS", 1, "1HZ", 1.3, 0, 0},
		rec{"GLU", 2, "OE1", 2.9, 0, 0},
	)
	p := DefaultParams()
	if got := HydrogenBonds(env, p); !got.Ok() || got.N != 0 {
		t.Fatalf("Hydrogen too far from its donor, but got %s bonds.", got)
	}
	p.DonorHydrogenCutoff = 1.5
	if got := HydrogenBonds(env, p); !got.Ok() || got.N != 1 {
		t.Fatalf("Expected 1 hydrogen bond with a looser cutoff, got %s.", got)
	}
}

func TestHydrogenBondsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		env  pdb.Atoms
	}{
		{"empty", nil},
		{"no hydrogens", atoms(
			rec{"ALA", 1, "N", 0, 0, 0},
			rec{"GLY", 2, "O", 2.9, 0, 0},
		)},
		{"no donors", atoms(
			rec{"GLY", 2, "O", 2.9, 0, 0},
			rec{"HOH", 3, "H1", 1, 0, 0},
		)},
		{"no acceptors", atoms(
			rec{"ALA", 1, "N", 0, 0, 0},
			rec{"ALA", 1, "H", 1, 0, 0},
			rec{"SER", 2, "OG", 2.9, 0, 0},
		)},
		{"not finite", atoms(
			rec{"ALA", 1, "N", 0, 0, 0},
			rec{"ALA", 1, "H", 1, 0, 0},
			rec{"GLY", 2, "O", math.NaN(), 0, 0},
		)},
	}
	for _, test := range tests {
		got := HydrogenBonds(test.env, DefaultParams())
		if got.Ok() {
			t.Fatalf("%s: expected an unavailable count but got %s.",
				test.name, got)
		}
		if got.Value() != 0 {
			t.Fatalf("%s: unavailable count has value %d.", test.name, got.Value())
		}
	}
}

// A backbone N only donates in amino acids.
func TestHydrogenBondsBackboneDonor(t *testing.T) {
	env := atoms(
		rec{"LIG", 1, "N", 0, 0, 0},
		rec{"LIG", 1, "H", 1, 0, 0},
		rec{"GLY", 2, "O", 2.9, 0, 0},
	)
	if got := HydrogenBonds(env, DefaultParams()); got.Ok() {
		t.Fatalf("Expected no donors in a ligand, but got %s.", got)
	}
}

func TestHydrophobic(t *testing.T) {
	p := DefaultParams()
	cluster := atoms(
		rec{"LEU", 1, "CA", 0, 0, 0},
		rec{"LEU", 1, "CB", 0.5, 0, 0},
		rec{"LEU", 1, "CG", 1, 0, 0},
		rec{"LEU", 1, "CD1", 1, 1, 0},
		rec{"LEU", 1, "CD2", 1, 0, 1},
		rec{"LEU", 1, "C", 0, 1, 1},
		rec{"LEU", 1, "N", 0, 0, 1},
	)
	if n := len(HydrophobicCandidates(cluster)); n != 4 {
		t.Fatalf("Expected 4 candidates but got %d.", n)
	}
	if got := Hydrophobic(cluster, p); got != 6 {
		t.Fatalf("Expected all 6 pairs of 4 candidates but got %d.", got)
	}

	pair := func(d float64) pdb.Atoms {
		return atoms(
			rec{"VAL", 1, "CG1", 0, 0, 0},
			rec{"ILE", 2, "CD1", d, 0, 0},
		)
	}
	if got := Hydrophobic(pair(4.0), p); got != 1 {
		t.Fatalf("Contact at exactly the cutoff should count, got %d.", got)
	}
	if got := Hydrophobic(pair(4.01), p); got != 0 {
		t.Fatalf("Contact beyond the cutoff should not count, got %d.", got)
	}
	if got := Hydrophobic(nil, p); got != 0 {
		t.Fatalf("No atoms should give 0, got %d.", got)
	}
}

// Every pair is counted at most once, whatever the geometry.
func TestHydrophobicBound(t *testing.T) {
	var recs []rec
	for i := 0; i < 12; i++ {
		recs = append(recs, rec{"PHE", i, "CZ", float64(i%3) * 0.9,
			float64(i/3) * 0.9, 0})
	}
	env := atoms(recs...)
	n := len(env)
	if got := Hydrophobic(env, DefaultParams()); got > n*(n-1)/2 {
		t.Fatalf("%d contacts among %d atoms exceeds %d.", got, n, n*(n-1)/2)
	}
	p := DefaultParams()
	p.HydrophobicCutoff = 100
	if got := Hydrophobic(env, p); got != n*(n-1)/2 {
		t.Fatalf("Expected every pair (%d) but got %d.", n*(n-1)/2, got)
	}
}

func TestSaltBridges(t *testing.T) {
	p := DefaultParams()
	env := atoms(
		rec{"ARG", 1, "NH1", 0, 0, 0},
		rec{"ARG", 1, "NH2", 0, 2, 0},
		rec{"ASP", 2, "OD1", 3, 0, 0},
		rec{"GLU", 3, "OE1", 0, 0, 2},
		rec{"LYS", 4, "NZ", 20, 0, 0},
		rec{"ARG", 5, "NZ", 0, 0, 3},
		rec{"HOH", 6, "O", 3, 0, 0},
	)
	pos, neg := Charged(env)
	if len(pos) != 3 || len(neg) != 2 {
		t.Fatalf("Expected 3 positive and 2 negative atoms, got %d and %d.",
			len(pos), len(neg))
	}
	// NH1-OD1 3.0, NH2-OD1 3.61, NH1-OE1 2.0 (too close), NH2-OE1 2.83.
	if got := SaltBridges(env, p); got != 3 {
		t.Fatalf("Expected 3 salt bridges but got %d.", got)
	}

	onlyPositive := atoms(rec{"LYS", 1, "NZ", 0, 0, 0})
	if got := SaltBridges(onlyPositive, p); got != 0 {
		t.Fatalf("Expected no salt bridges without negatives, got %d.", got)
	}
	onlyNegative := atoms(rec{"GLU", 1, "OE2", 0, 0, 0})
	if got := SaltBridges(onlyNegative, p); got != 0 {
		t.Fatalf("Expected no salt bridges without positives, got %d.", got)
	}
}

func TestDistanceMatrix(t *testing.T) {
	as := atoms(rec{"GLY", 1, "CA", 0, 0, 0}, rec{"GLY", 2, "CA", 3, 4, 0})
	bs := atoms(rec{"GLY", 1, "CA", 0, 0, 0})
	d := DistanceMatrix(as, bs)
	if r, c := d.Dims(); r != 2 || c != 1 {
		t.Fatalf("Expected a 2x1 matrix but got %dx%d.", r, c)
	}
	if d.At(0, 0) != 0 || d.At(1, 0) != 5 {
		t.Fatalf("Unexpected distances %f and %f.", d.At(0, 0), d.At(1, 0))
	}
}

func TestCountAll(t *testing.T) {
	env := atoms(
		rec{"ALA", 1, "N", 0, 0, 0},
		rec{"ALA", 1, "H", 1, 0, 0},
		rec{"GLY", 2, "O", 2.9, 0, 0},
		rec{"LEU", 3, "CD1", 10, 0, 0},
		rec{"LEU", 3, "CD2", 11, 0, 0},
	)
	cs := CountAll(env, DefaultParams())
	if cs.HBonds.Value() != 1 || cs.Hydrophobic != 1 || cs.SaltBridges != 0 {
		t.Fatalf("Unexpected counts: %+v", cs)
	}
	if cs.Total() != 2 {
		t.Fatalf("Expected a total of 2 but got %d.", cs.Total())
	}

	cs.HBonds = Unavailable("no hydrogen atoms")
	if cs.Total() != 1 {
		t.Fatalf("Unavailable hydrogen bonds should contribute 0, got %d.",
			cs.Total())
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatalf("%s", err)
	}
	bad := []func(*Params){
		func(p *Params) { p.DonorAcceptorCutoff = 0 },
		func(p *Params) { p.DonorHydrogenCutoff = -1 },
		func(p *Params) { p.AngleCutoff = 181 },
		func(p *Params) { p.HydrophobicCutoff = 0 },
		func(p *Params) { p.SaltBridgeMin, p.SaltBridgeMax = 4, 2 },
	}
	for i, change := range bad {
		p := DefaultParams()
		change(&p)
		if err := p.Validate(); err == nil {
			t.Fatalf("Expected an error for bad params %d: %+v", i, p)
		}
	}
}

func ExampleSaltBridges() {
	env := atoms(
		rec{"LYS", 1, "NZ", 0, 0, 0},
		rec{"GLU", 2, "OE1", 2.8, 0, 0},
		rec{"GLU", 2, "OE2", 3.2, 1.1, 0},
	)
	fmt.Println(SaltBridges(env, DefaultParams()))

	// Output:
	// 2
}

func BenchmarkHydrophobic(b *testing.B) {
	var recs []rec
	for i := 0; i < 200; i++ {
		recs = append(recs, rec{"LEU", i / 4, "CD1", float64(i%10) * 1.5,
			float64((i/10)%10) * 1.5, float64(i/100) * 1.5})
	}
	env := atoms(recs...)
	p := DefaultParams()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Hydrophobic(env, p)
	}
}
