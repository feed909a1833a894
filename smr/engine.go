// Package smr computes the structural microenvironment ratio (SMR) of a
// residue in a designed protein relative to the corresponding residue of a
// natural template.
//
// Residues are matched by a global alignment of the two structures' residue
// sequences. Each residue's microenvironment is the set of atoms within a
// radius of its alpha-carbon, and the ratio compares the number of
// non-covalent interactions found in both microenvironments.
package smr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/TuftsBCB/microenv/align"
	"github.com/TuftsBCB/microenv/interact"
	"github.com/TuftsBCB/microenv/pdb"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultRadius is the microenvironment radius in Å used when none is
// configured.
const DefaultRadius = 8.0

// Request describes one evaluation. A nil Radius means the configured
// radius. An explicit radius of 0 selects only atoms sitting on the
// alpha-carbon.
type Request struct {
	DesignPath    string   `json:"design_pdb" yaml:"design_pdb"`
	NaturalPath   string   `json:"natural_pdb" yaml:"natural_pdb"`
	DesignResidue int      `json:"design_resid" yaml:"design_resid"`
	Radius        *float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
}

// CheckRadius returns an error unless r is a finite, non-negative distance.
func CheckRadius(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return fmt.Errorf("Radius must be a finite, non-negative distance, "+
			"but is %f.", r)
	}
	return nil
}

// Engine evaluates requests with a fixed configuration. An Engine is safe
// for concurrent use.
type Engine struct {
	cfg     Config
	scoring align.Scoring
	params  interact.Params
	log     *slog.Logger
}

// NewEngine returns an engine for the given configuration. If log is nil,
// nothing is logged.
func NewEngine(cfg Config, log *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		cfg:     cfg,
		scoring: cfg.Scoring(),
		params:  cfg.Params(),
		log:     log,
	}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Evaluate loads both structures, maps the requested design residue onto
// the natural template, counts interactions in both microenvironments and
// scores them.
//
// The residue correspondence is resolved before any geometry is computed,
// so an unmappable residue always fails with *UnmappableResidueError.
func (e *Engine) Evaluate(req Request) (*Result, error) {
	log := e.log.With(
		"request_id", uuid.NewString(),
		"design", req.DesignPath,
		"natural", req.NaturalPath,
		"design_resid", req.DesignResidue)

	radius := e.cfg.Radius
	if req.Radius != nil {
		radius = *req.Radius
	}
	if err := CheckRadius(radius); err != nil {
		return nil, err
	}

	design, err := load(req.DesignPath)
	if err != nil {
		return nil, err
	}
	natural, err := load(req.NaturalPath)
	if err != nil {
		return nil, err
	}

	naturalResid, err := MapResidue(design, natural, req.DesignResidue, e.scoring)
	if err != nil {
		return nil, err
	}
	log = log.With("natural_resid", naturalResid)

	designCenter, err := CaPosition(design, req.DesignResidue)
	if err != nil {
		return nil, err
	}
	naturalCenter, err := CaPosition(natural, naturalResid)
	if err != nil {
		return nil, err
	}

	designEnv := Microenvironment(design, designCenter, radius)
	naturalEnv := Microenvironment(natural, naturalCenter, radius)
	designCounts := interact.CountAll(designEnv, e.params)
	naturalCounts := interact.CountAll(naturalEnv, e.params)
	for _, c := range []struct {
		path  string
		count interact.Count
	}{
		{req.DesignPath, designCounts.HBonds},
		{req.NaturalPath, naturalCounts.HBonds},
	} {
		if !c.count.Ok() {
			log.Warn("hydrogen bonds unavailable, counting 0",
				"path", c.path, "reason", c.count.Reason)
		}
	}

	res := &Result{
		Status:       "success",
		DesignResid:  req.DesignResidue,
		NaturalResid: naturalResid,
		Design:       newBreakdown(designCounts),
		Natural:      newBreakdown(naturalCounts),
		SMR:          Score(designCounts, naturalCounts),
		Metadata: Metadata{
			RadiusUsed: radius,
			Units:      Units{Distances: "Å", Angles: "degrees"},
		},
		designEnv:  designEnv,
		naturalEnv: naturalEnv,
	}
	log.Debug("microenvironments",
		"design_atoms", len(designEnv), "natural_atoms", len(naturalEnv))
	log.Info("evaluated residue",
		"design_total", res.Design.Total,
		"natural_total", res.Natural.Total,
		"smr", res.SMR)
	return res, nil
}

// Evaluate scores a single residue with the default configuration and the
// given radius. Pass DefaultRadius for the usual 8 Å.
func Evaluate(designPath, naturalPath string, designResid int, radius float64) (*Result, error) {
	e, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		return nil, err
	}
	return e.Evaluate(Request{
		DesignPath:    designPath,
		NaturalPath:   naturalPath,
		DesignResidue: designResid,
		Radius:        &radius,
	})
}

// BatchItem is the outcome of one request of a batch. Exactly one of
// Result and Err is set.
type BatchItem struct {
	Request Request `json:"request" yaml:"request"`
	Result  *Result `json:"result,omitempty" yaml:"result,omitempty"`
	Err     error   `json:"-" yaml:"-"`

	// Error and Kind describe Err for serialization.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

func (item *BatchItem) fail(err error) {
	item.Err = err
	item.Error = err.Error()
	item.Kind = ErrorKind(err)
}

// Batch evaluates independent requests concurrently, with at most
// Config.Workers evaluations running at once. Items are returned in the
// order of reqs, and the failure of one request does not affect the
// others.
//
// Once ctx is done, no more requests are started and every request not yet
// started fails with the context's error.
func (e *Engine) Batch(ctx context.Context, reqs []Request) []BatchItem {
	items := make([]BatchItem, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, req := range reqs {
		items[i].Request = req
		if err := ctx.Err(); err != nil {
			items[i].fail(err)
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				items[i].fail(err)
				return nil
			}
			res, err := e.Evaluate(req)
			if err != nil {
				e.log.Warn("batch request failed",
					"index", i, "design", req.DesignPath, "error", err)
				items[i].fail(err)
				return nil
			}
			items[i].Result = res
			return nil
		})
	}
	g.Wait()
	return items
}

func load(path string) (*pdb.Entry, error) {
	entry, err := pdb.ReadPDB(path)
	if err != nil {
		return nil, &StructureLoadError{Path: path, Err: err}
	}
	return entry, nil
}

func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
