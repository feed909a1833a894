package fasta

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/TuftsBCB/seq"
)

// Format returns the FASTA string of a sequence with the residues wrapped
// at the number of columns given. There is no trailing new line.
//
// If cols is <= 0, then no wrapping is done.
func Format(s seq.Sequence, cols int) string {
	if cols <= 0 || len(s.Residues) == 0 {
		return fmt.Sprintf(">%s\n%s", s.Name, residueString(s.Residues))
	}

	wrapped := make([]string, 1+((len(s.Residues)-1)/cols))
	for i := range wrapped {
		start := cols * i
		end := start + cols
		if end > len(s.Residues) {
			end = len(s.Residues)
		}
		wrapped[i] = residueString(s.Residues[start:end])
	}
	return fmt.Sprintf(">%s\n%s", s.Name, strings.Join(wrapped, "\n"))
}

// A Writer writes sequences to a FASTA encoded file.
//
// The name of a sequence is used as its header and is never wrapped.
type Writer struct {
	// The number of columns to wrap a sequence at. By default, this
	// is set to 60. A value <= 0 will result in no wrapping.
	Columns int
	buf     *bufio.Writer
}

// NewWriter creates a new FASTA writer that can write sequences to an
// io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Columns: 60,
		buf:     bufio.NewWriter(w),
	}
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Write writes a single sequence to the underlying io.Writer.
//
// You may need to call Flush in order for the changes to be written.
func (w *Writer) Write(s seq.Sequence) error {
	_, err := w.buf.WriteString(Format(s, w.Columns) + "\n")
	return err
}

// WriteAll writes a slice of sequences to the underlying io.Writer, and
// calls Flush.
func (w *Writer) WriteAll(seqs []seq.Sequence) error {
	for _, s := range seqs {
		if err := w.Write(s); err != nil {
			return err
		}
	}
	return w.Flush()
}

func residueString(rs []seq.Residue) string {
	bs := make([]byte, len(rs))
	for i, r := range rs {
		bs[i] = byte(r)
	}
	return string(bs)
}
