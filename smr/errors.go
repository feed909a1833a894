package smr

import (
	"errors"
	"fmt"
)

// UnmappableResidueError is returned when a residue of the designed
// structure has no counterpart in the natural template. Reason is one of
// align.ErrNotInSequence, align.ErrAlignedToGap or align.ErrAmbiguous.
type UnmappableResidueError struct {
	Residue int
	Reason  error
}

func (e *UnmappableResidueError) Error() string {
	return fmt.Sprintf("Designed protein residue %d cannot be mapped to "+
		"natural template: %s", e.Residue, e.Reason)
}

func (e *UnmappableResidueError) Unwrap() error {
	return e.Reason
}

// MissingReferenceAtomError is returned when a residue has no alpha-carbon
// to center its microenvironment on.
type MissingReferenceAtomError struct {
	Residue int
	Path    string
}

func (e *MissingReferenceAtomError) Error() string {
	return fmt.Sprintf("Residue %d has no CA atom in '%s'.", e.Residue, e.Path)
}

// StructureLoadError is returned when a structure file cannot be read or
// parsed.
type StructureLoadError struct {
	Path string
	Err  error
}

func (e *StructureLoadError) Error() string {
	return fmt.Sprintf("Could not load structure '%s': %s", e.Path, e.Err)
}

func (e *StructureLoadError) Unwrap() error {
	return e.Err
}

// Error kinds reported by ErrorKind.
const (
	KindUnmappableResidue    = "unmappable_residue"
	KindMissingReferenceAtom = "missing_reference_atom"
	KindStructureLoad        = "structure_load_failure"
	KindCanceled             = "canceled"
	KindOther                = "error"
)

// ErrorKind classifies an error returned by this package. It returns the
// empty string for a nil error.
func ErrorKind(err error) string {
	var (
		unmappable *UnmappableResidueError
		missing    *MissingReferenceAtomError
		load       *StructureLoadError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unmappable):
		return KindUnmappableResidue
	case errors.As(err, &missing):
		return KindMissingReferenceAtom
	case errors.As(err, &load):
		return KindStructureLoad
	case isCanceled(err):
		return KindCanceled
	}
	return KindOther
}
