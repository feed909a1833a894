/*
Package pdb provides minimal support for reading atomic coordinates from PDB
files. An Entry holds every ATOM and HETATM record of the first model in file
order, grouped into residues, so that the atoms near a point can be selected
with a typed Filter.

The residue sequence of an Entry (one letter per residue, paired with the
residue sequence number from the ATOM records) is available through
Entry.Sequence. Residues that aren't amino acids are represented with 'X'.

Entries can also be written back out as PDB ATOM/HETATM records, which is
mostly useful for inspecting a selection in a molecular viewer.
*/
package pdb
