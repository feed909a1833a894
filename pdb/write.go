package pdb

import (
	"bufio"
	"fmt"
	"io"
)

// Write writes the atoms as PDB ATOM/HETATM records followed by an END
// record. Atom names shorter than four characters are written starting in
// column 14, as is conventional.
func Write(w io.Writer, atoms Atoms) error {
	buf := bufio.NewWriter(w)
	for i, a := range atoms {
		if _, err := buf.WriteString(a.Record(i + 1)); err != nil {
			return err
		}
		if err := buf.WriteByte('\n'); err != nil {
			return err
		}
	}
	if _, err := buf.WriteString("END\n"); err != nil {
		return err
	}
	return buf.Flush()
}

// Record formats the atom as a fixed width ATOM or HETATM line (without a
// trailing newline). When the atom has no serial number, the one given is
// used.
func (a *Atom) Record(serial int) string {
	if a.Serial > 0 {
		serial = a.Serial
	}
	record := "ATOM  "
	if a.Het {
		record = "HETATM"
	}
	name := a.Name
	if len(name) < 4 {
		name = " " + name
	}
	var (
		chain, icode, alt byte = ' ', ' ', ' '
		resName           string
		seqNum            int
	)
	if a.AltLoc != 0 {
		alt = a.AltLoc
	}
	if r := a.Residue; r != nil {
		resName, seqNum = r.Name, r.SequenceNum
		if r.Chain != 0 {
			chain = r.Chain
		}
		if r.InsertionCode != 0 {
			icode = r.InsertionCode
		}
	}
	return fmt.Sprintf("%s%5d %-4s%c%3s %c%4d%c   %8.3f%8.3f%8.3f%6.2f%6.2f"+
		"          %2s",
		record, serial%100000, name, alt, resName, chain, seqNum, icode,
		a.X, a.Y, a.Z, 1.0, 0.0, a.Element)
}
