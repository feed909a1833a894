// Package align computes global pairwise alignments of residue sequences
// with affine gap penalties, and turns an alignment into a correspondence
// between residue numbers of two structures.
package align

import (
	"math"

	"github.com/TuftsBCB/seq"
)

// Gap is the residue used to mark a gap in an aligned sequence.
const Gap seq.Residue = '-'

// Scoring holds the substitution and gap scores of an alignment. A gap of
// length k scores GapOpen + (k-1)*GapExtend. Gaps at either end of a
// sequence are scored the same as internal gaps.
type Scoring struct {
	Match, Mismatch    float64
	GapOpen, GapExtend float64
}

// DefaultScoring is an identity substitution scheme (1 for a match, 0 for a
// mismatch) with a gap open score of -10 and a gap extension score of -0.5.
var DefaultScoring = Scoring{
	Match:     1,
	Mismatch:  0,
	GapOpen:   -10,
	GapExtend: -0.5,
}

func (sc Scoring) subst(a, b seq.Residue) float64 {
	if a == b {
		return sc.Match
	}
	return sc.Mismatch
}

// Alignment is a pair of equal length sequences where Gap marks an
// insertion or deletion.
type Alignment struct {
	A, B  []seq.Residue
	Score float64
}

func newAlignment(length int) Alignment {
	return Alignment{
		A: make([]seq.Residue, 0, length),
		B: make([]seq.Residue, 0, length),
	}
}

// Len returns the number of aligned columns.
func (aln Alignment) Len() int {
	return len(aln.A)
}

// Identity returns the fraction of columns where both residues are equal
// and not gaps. An empty alignment has identity 0.
func (aln Alignment) Identity() float64 {
	if len(aln.A) == 0 {
		return 0
	}
	same := 0
	for i := range aln.A {
		if aln.A[i] != Gap && aln.A[i] == aln.B[i] {
			same++
		}
	}
	return float64(same) / float64(len(aln.A))
}

// The three states of the affine gap recurrence (Gotoh). 'sub' ends with
// A[i] aligned to B[j], 'del' ends with A[i] aligned to a gap and 'ins'
// ends with a gap aligned to B[j].
const (
	sub byte = iota
	del
	ins
)

// Global computes an optimal global alignment of A and B.
//
// Only one optimal alignment is returned. When several alignments have the
// same score, the traceback (which runs from the last column to the first)
// prefers a substitution, then a gap in B, then a gap in A. This makes the
// result deterministic.
func Global(A, B []seq.Residue, sc Scoring) Alignment {
	n, m := len(A), len(B)
	negInf := math.Inf(-1)

	// Rows correspond to residues in A, columns to residues in B. Row and
	// column 0 are the empty prefixes.
	newMatrix := func() [][]float64 {
		mat := make([][]float64, n+1)
		for i := range mat {
			mat[i] = make([]float64, m+1)
		}
		return mat
	}
	newPointers := func() [][]byte {
		ptr := make([][]byte, n+1)
		for i := range ptr {
			ptr[i] = make([]byte, m+1)
		}
		return ptr
	}
	S, D, I := newMatrix(), newMatrix(), newMatrix()
	pS, pD, pI := newPointers(), newPointers(), newPointers()

	// Initialization.
	S[0][0], D[0][0], I[0][0] = 0, negInf, negInf
	for i := 1; i <= n; i++ {
		S[i][0], I[i][0] = negInf, negInf
		D[i][0] = sc.GapOpen + float64(i-1)*sc.GapExtend
		pD[i][0] = del
	}
	if n > 0 {
		pD[1][0] = sub
	}
	for j := 1; j <= m; j++ {
		S[0][j], D[0][j] = negInf, negInf
		I[0][j] = sc.GapOpen + float64(j-1)*sc.GapExtend
		pI[0][j] = ins
	}
	if m > 0 {
		pI[0][1] = sub
	}

	// Compute the matrices.
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			S[i][j], pS[i][j] = best3(S[i-1][j-1], D[i-1][j-1], I[i-1][j-1])
			S[i][j] += sc.subst(A[i-1], B[j-1])

			D[i][j], pD[i][j] = best3(
				S[i-1][j]+sc.GapOpen,
				D[i-1][j]+sc.GapExtend,
				I[i-1][j]+sc.GapOpen)

			I[i][j], pI[i][j] = best3(
				S[i][j-1]+sc.GapOpen,
				D[i][j-1]+sc.GapOpen,
				I[i][j-1]+sc.GapExtend)
		}
	}

	// Now trace an optimal path through the matrices starting at (n, m).
	score, state := best3(S[n][m], D[n][m], I[n][m])
	aligned := newAlignment(n + m)
	aligned.Score = score
	i, j := n, m
	for i > 0 || j > 0 {
		switch state {
		case sub:
			aligned.A = append(aligned.A, A[i-1])
			aligned.B = append(aligned.B, B[j-1])
			state = pS[i][j]
			i--
			j--
		case del:
			aligned.A = append(aligned.A, A[i-1])
			aligned.B = append(aligned.B, Gap)
			state = pD[i][j]
			i--
		case ins:
			aligned.A = append(aligned.A, Gap)
			aligned.B = append(aligned.B, B[j-1])
			state = pI[i][j]
			j--
		}
	}

	// Since we built the alignment in backwards, we must reverse it.
	for i, j := 0, len(aligned.A)-1; i < j; i, j = i+1, j-1 {
		aligned.A[i], aligned.A[j] = aligned.A[j], aligned.A[i]
		aligned.B[i], aligned.B[j] = aligned.B[j], aligned.B[i]
	}
	return aligned
}

// best3 returns the largest of the three scores along with the state it
// corresponds to. Ties go to the earlier argument.
func best3(s, d, i float64) (float64, byte) {
	switch {
	case s >= d && s >= i:
		return s, sub
	case d >= i:
		return d, del
	}
	return i, ins
}
