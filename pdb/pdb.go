package pdb

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"

	"github.com/TuftsBCB/structure"
)

type pdbParser struct {
	entry *Entry
	line  []byte
	num   int

	// Only the first model is read. Once its ENDMDL record is seen, every
	// other coordinate record is skipped.
	sawModel, done bool
}

// ReadPDB reads a PDB entry from a file. If the file cannot be read, or
// there is an error parsing the PDB file, an error is returned.
//
// If the file name ends with ".gz", gzip decompression will be used.
func ReadPDB(fp string) (*Entry, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if path.Ext(fp) == ".gz" {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
	}
	return Read(reader, fp)
}

// Read reads a PDB entry from r. The path given is only used to label the
// entry (and to guess its id code).
func Read(r io.Reader, fp string) (*Entry, error) {
	parser := pdbParser{entry: NewEntry(fp)}

	// Note that it is imperative that we preserve the order of ATOM records
	// as we read them. Residue sequences are built from that order.
	breader := bufio.NewReader(r)
	for {
		line, err := breader.ReadBytes('\n')
		if err == io.EOF && len(line) == 0 {
			break
		} else if err != io.EOF && err != nil {
			return nil, err
		}
		parser.num++
		parser.line = bytes.TrimRight(line, "\r\n")
		if err := parser.parseLine(); err != nil {
			return nil, fmt.Errorf("Line %d of '%s': %s", parser.num, fp, err)
		}
	}

	entry := parser.entry
	if len(entry.Atoms) == 0 {
		return nil, fmt.Errorf("The file '%s' does not appear to be a valid "+
			"PDB file (no ATOM or HETATM records).", fp)
	}

	// If we couldn't find an Id code, inspect the base name of the file path.
	if len(entry.IdCode) == 0 {
		name := path.Base(fp)
		switch {
		case len(name) >= 7 && name[0:3] == "pdb":
			entry.IdCode = name[3:7]
		case len(name) == 7: // cath
			entry.IdCode = name[0:4]
		}
	}
	return entry, nil
}

func (p *pdbParser) parseLine() error {
	switch p.cols(1, 6) {
	case "HEADER":
		p.entry.IdCode = p.cols(63, 66)
	case "MODEL":
		if p.sawModel {
			p.done = true
		}
		p.sawModel = true
	case "ENDMDL":
		p.done = true
	case "ATOM":
		if !p.done {
			return p.parseAtom(false)
		}
	case "HETATM":
		if !p.done {
			return p.parseAtom(true)
		}
	}
	return nil
}

func (p *pdbParser) parseAtom(het bool) error {
	seqNum, err := p.atoi(23, 26)
	if err != nil {
		return fmt.Errorf("Bad residue sequence number: %s", err)
	}
	rec := AtomRecord{
		Name:          p.cols(13, 16),
		AltLoc:        p.at(17),
		ResidueName:   p.cols(18, 20),
		Chain:         p.at(22),
		SequenceNum:   seqNum,
		InsertionCode: p.at(27),
		Element:       p.cols(77, 78),
		Het:           het,
	}
	if rec.AltLoc == ' ' {
		rec.AltLoc = 0
	}
	if rec.InsertionCode == ' ' {
		rec.InsertionCode = 0
	}

	// The serial number is informational only. Large structures written
	// by some tools overflow it with hex or asterisks.
	if serial, err := p.atoi(7, 11); err == nil {
		rec.Serial = serial
	}

	var coords structure.Coords
	if coords.X, err = p.atof(31, 38); err != nil {
		return fmt.Errorf("Bad X coordinate: %s", err)
	}
	if coords.Y, err = p.atof(39, 46); err != nil {
		return fmt.Errorf("Bad Y coordinate: %s", err)
	}
	if coords.Z, err = p.atof(47, 54); err != nil {
		return fmt.Errorf("Bad Z coordinate: %s", err)
	}
	rec.Coords = coords

	p.entry.Add(rec)
	return nil
}

func (p *pdbParser) atoi(start, end int) (int, error) {
	return strconv.Atoi(p.cols(start, end))
}

func (p *pdbParser) atof(start, end int) (float64, error) {
	return strconv.ParseFloat(p.cols(start, end), 64)
}

// cols returns the trimmed text in the 1-indexed, inclusive column range.
func (p *pdbParser) cols(start, end int) string {
	rs, re := start-1, end
	if rs >= len(p.line) || rs < 0 {
		return ""
	}
	if re > len(p.line) {
		re = len(p.line)
	}
	if re < rs {
		return ""
	}
	return string(bytes.TrimSpace(p.line[rs:re]))
}

func (p *pdbParser) at(column int) byte {
	i := column - 1
	if i < 0 || i >= len(p.line) {
		return 0
	}
	return p.line[i]
}
