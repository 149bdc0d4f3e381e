package preflight

import (
	"context"

	"wadcat/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// The index check only runs when the index is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckInputFile("Input listing", cfg.Paths.Input))
	results = append(results, CheckEncoding("Input encoding", cfg.Parse.InputEncoding))
	results = append(results, CheckCreatableDirectory("Output directory", cfg.Paths.OutputDir))

	if path := cfg.IndexPath(); path != "" {
		results = append(results, CheckIndexPath("Hash index", path))
	}

	if ctx.Err() != nil {
		results = append(results, Result{Name: "Context", Detail: ctx.Err().Error()})
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, result := range results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}
