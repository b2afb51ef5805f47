// Package pipeline filters, derives and validates a session export.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/bargain-cli/internal/design"
	"github.com/sells-group/bargain-cli/internal/fetcher"
	"github.com/sells-group/bargain-cli/internal/model"
)

// Stage names, in execution order.
const (
	StageLoad     = "load"
	StageFilter   = "filter"
	StageDerive   = "derive"
	StageValidate = "validate"
)

// StageResult records how a stage went.
type StageResult struct {
	Name     string `json:"name"`
	Rows     int    `json:"rows"`
	Duration int64  `json:"duration_ms"`
	Error    string `json:"error,omitempty"`
}

// Result is the validated table plus run bookkeeping.
type Result struct {
	RunID  string        `json:"run_id"`
	Input  string        `json:"input"`
	Loaded int           `json:"loaded"`
	Table  *model.Table  `json:"-"`
	Stages []StageResult `json:"stages"`
}

// Options configures a pipeline run.
type Options struct {
	Input  string
	Table  fetcher.TableOptions
	Filter FilterOptions
	Design design.Sequence
}

// Pipeline runs Load -> Filter -> Derive -> Validate over one export.
type Pipeline struct {
	opts Options
}

// New creates a Pipeline. A zero Design means design.Default(); a design
// without a positive block size uses design.DefaultBlockSize.
func New(opts Options) *Pipeline {
	if len(opts.Design.Treatments) == 0 {
		opts.Design = design.Default()
	}
	if opts.Design.BlockSize < 1 {
		opts.Design.BlockSize = design.DefaultBlockSize
	}
	return &Pipeline{opts: opts}
}

// Run loads the input file and processes it.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	res := &Result{RunID: uuid.New().String(), Input: p.opts.Input}
	log := zap.L().With(zap.String("run_id", res.RunID), zap.String("input", p.opts.Input))
	log.Info("pipeline: starting")

	var raw *model.Table
	err := p.track(log, res, StageLoad, func() (int, error) {
		t, err := fetcher.LoadTable(ctx, p.opts.Input, p.opts.Table)
		if err != nil {
			return 0, eris.Wrap(err, "pipeline: load")
		}
		raw = t
		return t.Len(), nil
	})
	if err != nil {
		return res, err
	}
	res.Loaded = raw.Len()

	out, err := p.process(log, res, raw)
	res.Table = out
	return res, err
}

// Process runs Filter -> Derive -> Validate on an already loaded table.
func (p *Pipeline) Process(raw *model.Table) (*Result, error) {
	res := &Result{RunID: uuid.New().String(), Loaded: raw.Len()}
	log := zap.L().With(zap.String("run_id", res.RunID))
	out, err := p.process(log, res, raw)
	res.Table = out
	return res, err
}

func (p *Pipeline) process(log *zap.Logger, res *Result, raw *model.Table) (*model.Table, error) {
	for _, col := range requiredColumns {
		if !raw.HasColumn(col) {
			return nil, eris.Errorf("pipeline: input is missing column %q", col)
		}
	}

	var filtered, derived *model.Table
	_ = p.track(log, res, StageFilter, func() (int, error) {
		filtered = Filter(raw, p.opts.Filter)
		return filtered.Len(), nil
	})

	err := p.track(log, res, StageDerive, func() (int, error) {
		t, err := Derive(filtered, p.opts.Design)
		if err != nil {
			return 0, eris.Wrap(err, "pipeline: derive")
		}
		derived = t
		return t.Len(), nil
	})
	if err != nil {
		return nil, err
	}

	err = p.track(log, res, StageValidate, func() (int, error) {
		if err := Validate(derived); err != nil {
			return 0, err
		}
		return derived.Len(), nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("pipeline: data validation passed",
		zap.Int("rows", derived.Len()),
		zap.Int("columns", len(derived.Columns)+len(model.DerivedColumns)),
	)
	return derived, nil
}

// track runs one stage, logging its outcome and appending a StageResult.
func (p *Pipeline) track(log *zap.Logger, res *Result, name string, fn func() (int, error)) error {
	start := time.Now()
	rows, err := fn()
	stage := StageResult{Name: name, Rows: rows, Duration: time.Since(start).Milliseconds()}

	if err != nil {
		stage.Error = err.Error()
		log.Error("pipeline: stage failed",
			zap.String("stage", name),
			zap.Int64("duration_ms", stage.Duration),
			zap.Error(err),
		)
	} else {
		log.Info("pipeline: stage complete",
			zap.String("stage", name),
			zap.Int("rows", rows),
			zap.Int64("duration_ms", stage.Duration),
		)
	}
	res.Stages = append(res.Stages, stage)
	return err
}

// requiredColumns are the raw columns Derive and Validate read.
var requiredColumns = []string{
	model.ColPageName,
	model.ColSessionName,
	model.ColRole,
	model.ColFirstMover,
	model.ColComprehensionAttempts,
	model.ColRetailerChoice,
	model.ColSupplierChoice,
	model.ColPriceAccepted,
	model.ColClassA,
	model.ColClassB,
	model.ColClassC,
	model.ColBaseline,
	model.ColForceRetailerFirst,
	model.ColForceSupplierFirst,
}
