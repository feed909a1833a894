package pdb

import (
	"github.com/TuftsBCB/seq"
)

var aminoMap = map[string]seq.Residue{
	"ALA": 'A', "ARG": 'R', "ASN": 'N', "ASP": 'D', "CYS": 'C',
	"GLU": 'E', "GLN": 'Q', "GLY": 'G', "HIS": 'H', "ILE": 'I',
	"LEU": 'L', "LYS": 'K', "MET": 'M', "PHE": 'F', "PRO": 'P',
	"SER": 'S', "THR": 'T', "TRP": 'W', "TYR": 'Y', "VAL": 'V',
	"SEC": 'U', "PYL": 'O',

	// Protonation states and common modified residues written by
	// modelling and design tools.
	"HID": 'H', "HIE": 'H', "HIP": 'H', "HSD": 'H', "HSE": 'H', "HSP": 'H',
	"CYX": 'C', "ASH": 'D', "GLH": 'E', "LYN": 'K', "MSE": 'M',

	"UNK": 'X', "ASX": 'X', "GLX": 'X',
}

var solventMap = map[string]bool{
	"HOH": true, "WAT": true, "SOL": true, "DOD": true, "H2O": true,
	"TIP": true, "TIP3": true, "T3P": true,
}

// IsAmino returns true when the three letter residue name is an amino acid.
func IsAmino(threeAbbrev string) bool {
	v, ok := aminoMap[threeAbbrev]
	return ok && v != 'X'
}

// IsSolvent returns true when the residue name is a water model.
func IsSolvent(name string) bool {
	return solventMap[name]
}

// getAmino returns the one letter abbreviation for a residue name.
// Anything that isn't an amino acid is 'X'.
func getAmino(threeAbbrev string) seq.Residue {
	if v, ok := aminoMap[threeAbbrev]; ok {
		return v
	}
	return 'X'
}
