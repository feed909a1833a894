package smr

import (
	"math"

	"github.com/TuftsBCB/microenv/interact"
)

// Score computes the structural microenvironment ratio of two interaction
// breakdowns: the design total over the natural total, capped at 1. When
// the natural total is 0 the score is 0.
func Score(design, natural interact.Counts) float64 {
	n := natural.Total()
	if n <= 0 {
		return 0
	}
	return math.Min(float64(design.Total())/float64(n), 1)
}
