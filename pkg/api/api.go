// Package api provides a stable, programmatic entry point over this
// module's metric and comparison engines, for callers embedding the
// analyzer rather than invoking it through a CLI.
package api

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/brandon-arrendondo/knots/internal/compare"
	"github.com/brandon-arrendondo/knots/internal/metrics"
)

// FunctionMetrics re-exports the metric engine's per-function result.
type FunctionMetrics = metrics.FunctionMetrics

// FileAnalysis re-exports a file's aggregated metrics.
type FileAnalysis = compare.FileAnalysis

// Result re-exports the comparison engine's verdict.
type Result = compare.Result

// AnalyzeFile parses path and returns its per-function metrics.
func AnalyzeFile(ctx context.Context, path string) (FileAnalysis, error) {
	return compare.AnalyzeFile(ctx, path)
}

// Comparison builds a test/subject comparison with a fluent interface:
//
//	result, err := api.NewComparison("test.c", "subject.c").
//		WithThreshold(0.75).
//		WithBoundaryThreshold(0.9).
//		Run(context.Background())
type Comparison struct {
	testPath    string
	subjectPath string
	opts        compare.Options
	log         logrus.FieldLogger
}

// NewComparison starts a Comparison builder with the engine's default
// thresholds (τ_c=0.70, τ_b=0.80, boundary checking on).
func NewComparison(testPath, subjectPath string) *Comparison {
	return &Comparison{
		testPath:    testPath,
		subjectPath: subjectPath,
		opts:        compare.DefaultOptions(),
	}
}

// WithThreshold overrides the cyclomatic-ratio pass threshold.
func (c *Comparison) WithThreshold(threshold float64) *Comparison {
	c.opts.Threshold = threshold
	return c
}

// WithBoundaryThreshold overrides the boundary-coverage pass threshold.
func (c *Comparison) WithBoundaryThreshold(threshold float64) *Comparison {
	c.opts.BoundaryThreshold = threshold
	return c
}

// WithBoundaryChecking toggles boundary-value coverage analysis.
func (c *Comparison) WithBoundaryChecking(enabled bool) *Comparison {
	c.opts.CheckBoundaries = enabled
	return c
}

// WithLogger sets the sink for non-fatal boundary-detector warnings.
func (c *Comparison) WithLogger(log logrus.FieldLogger) *Comparison {
	c.log = log
	return c
}

// Run parses both files and evaluates the comparison.
func (c *Comparison) Run(ctx context.Context) (Result, error) {
	test, err := compare.AnalyzeFile(ctx, c.testPath)
	if err != nil {
		return Result{}, err
	}
	subject, err := compare.AnalyzeFile(ctx, c.subjectPath)
	if err != nil {
		return Result{}, err
	}
	return compare.Compare(test, subject, c.opts, c.log), nil
}
