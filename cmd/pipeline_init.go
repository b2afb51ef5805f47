package main

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/bargain-cli/internal/design"
	"github.com/sells-group/bargain-cli/internal/fetcher"
	"github.com/sells-group/bargain-cli/internal/pipeline"
)

// loadDesign returns the configured treatment design, or the built-in
// sequence when none is set.
func loadDesign() (design.Sequence, error) {
	if cfg.Design.Path == "" {
		return design.Default(), nil
	}
	seq, err := design.Load(cfg.Design.Path)
	if err != nil {
		return design.Sequence{}, eris.Wrap(err, "load design")
	}
	return seq, nil
}

// initPipeline builds a pipeline from the loaded config.
func initPipeline() (*pipeline.Pipeline, error) {
	seq, err := loadDesign()
	if err != nil {
		return nil, err
	}
	return pipeline.New(pipeline.Options{
		Input: cfg.Input.Path,
		Table: fetcher.TableOptions{
			Charset: cfg.Input.Encoding,
			Sheet:   cfg.Input.Sheet,
		},
		Filter: pipeline.FilterOptions{
			CompletedPage:   cfg.Filter.CompletedPage,
			ExcludedSession: cfg.Filter.ExcludedSession,
		},
		Design: seq,
	}), nil
}
