// Package compare implements the comparison engine: given a test file's and
// a subject file's aggregated metrics, it judges whether the test file
// carries enough structural complexity and boundary coverage relative to
// the subject, and produces human-readable recommendations when it doesn't.
package compare

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/brandon-arrendondo/knots/internal/boundary"
	"github.com/brandon-arrendondo/knots/internal/ctree"
	"github.com/brandon-arrendondo/knots/internal/knotserr"
	"github.com/brandon-arrendondo/knots/internal/metrics"
)

// FileAnalysis aggregates every function's metrics in one source file.
type FileAnalysis struct {
	FilePath        string
	Functions       []metrics.FunctionMetrics
	TotalCyclomatic uint32
	TotalCognitive  uint32
}

// AnalyzeFile parses path and computes the FunctionMetrics for every
// function definition it contains, in source order.
func AnalyzeFile(ctx context.Context, path string) (FileAnalysis, error) {
	p := ctree.New()
	unit, err := p.ParseFile(ctx, path)
	if err != nil {
		return FileAnalysis{}, err
	}
	defer unit.Close()

	fa := FileAnalysis{FilePath: path}
	for _, fn := range ctree.Functions(unit.Root(), unit.Source) {
		m := metrics.Analyze(fn, unit.Source)
		fa.Functions = append(fa.Functions, m)
		fa.TotalCyclomatic += m.Cyclomatic
		fa.TotalCognitive += m.Cognitive
	}
	return fa, nil
}

// Options configures one Compare invocation.
type Options struct {
	Threshold         float64 // τ_c, valid 0.0..2.0, default 0.70
	BoundaryThreshold float64 // τ_b, valid 0.0..1.0, default 0.80
	CheckBoundaries   bool
}

// DefaultOptions mirrors the CLI's default flag values.
func DefaultOptions() Options {
	return Options{Threshold: 0.70, BoundaryThreshold: 0.80, CheckBoundaries: true}
}

// Result is the outcome of comparing a test FileAnalysis against a subject
// FileAnalysis.
type Result struct {
	Passed               bool
	TestCyclomatic       uint32
	SubjectCyclomatic    uint32
	TestCognitive        uint32
	SubjectCognitive     uint32
	CyclomaticRatio      float64
	CognitiveRatio       float64
	Threshold            float64
	BoundaryThreshold    float64
	TestFunctionCount    int
	SubjectFunctionCount int
	Recommendations      []string
	TestFile             string
	SubjectFile          string
	Boundary             *boundary.Analysis
}

// Compare judges test against subject per opts and, when check_boundaries
// is set, layers in boundary coverage computed from the subject's detected
// ranges against literals found in the test file. A boundary-detector
// failure is logged and treated as "no boundary data" rather than failing
// the comparison outright.
func Compare(test, subject FileAnalysis, opts Options, log logrus.FieldLogger) Result {
	cyclomaticRatio := 1.0
	if subject.TotalCyclomatic > 0 {
		cyclomaticRatio = float64(test.TotalCyclomatic) / float64(subject.TotalCyclomatic)
	}

	cognitiveRatio := 1.0
	if subject.TotalCognitive > 0 {
		cognitiveRatio = float64(test.TotalCognitive) / float64(subject.TotalCognitive)
	}

	passed := cyclomaticRatio >= opts.Threshold

	var boundaryAnalysis *boundary.Analysis
	if opts.CheckBoundaries {
		analysis, err := analyzeBoundaries(subject.FilePath, test.FilePath)
		if err != nil {
			if log != nil {
				log.Warnf("boundary analysis failed: %v", err)
			}
		} else {
			if analysis.CoveragePercent < opts.BoundaryThreshold*100.0 {
				passed = false
			}
			boundaryAnalysis = &analysis
		}
	}

	var recommendations []string
	if !passed {
		recommendations = generateRecommendations(test, subject, opts, cyclomaticRatio, boundaryAnalysis)
	}

	return Result{
		Passed:               passed,
		TestCyclomatic:       test.TotalCyclomatic,
		SubjectCyclomatic:    subject.TotalCyclomatic,
		TestCognitive:        test.TotalCognitive,
		SubjectCognitive:     subject.TotalCognitive,
		CyclomaticRatio:      cyclomaticRatio,
		CognitiveRatio:       cognitiveRatio,
		Threshold:            opts.Threshold,
		BoundaryThreshold:    opts.BoundaryThreshold,
		TestFunctionCount:    len(test.Functions),
		SubjectFunctionCount: len(subject.Functions),
		Recommendations:      recommendations,
		TestFile:             test.FilePath,
		SubjectFile:          subject.FilePath,
		Boundary:             boundaryAnalysis,
	}
}

func analyzeBoundaries(subjectPath, testPath string) (boundary.Analysis, error) {
	required, err := boundary.Detect(subjectPath)
	if err != nil {
		return boundary.Analysis{}, knotserr.New(knotserr.KindIO, "compare.analyzeBoundaries", subjectPath, err)
	}
	return boundary.AnalyzeCoverage(testPath, required)
}

func generateRecommendations(test, subject FileAnalysis, opts Options, cyclomaticRatio float64, ba *boundary.Analysis) []string {
	var out []string

	if cyclomaticRatio < opts.Threshold {
		gapPercent := int(math.Round((opts.Threshold - cyclomaticRatio) * 100.0))

		targetCyclomatic := uint32(float64(subject.TotalCyclomatic) * opts.Threshold)
		targetCognitive := uint32(float64(subject.TotalCognitive) * opts.Threshold)
		missingCyclomatic := saturatingSub(targetCyclomatic, test.TotalCyclomatic)
		missingCognitive := saturatingSub(targetCognitive, test.TotalCognitive)
		avgMissing := (missingCyclomatic + missingCognitive) / 2

		out = append(out, fmt.Sprintf("Add ~%d more complexity points to tests (%d percentage points below threshold)", avgMissing, gapPercent))
		out = append(out, "Consider adding:")
		out = append(out, "  - Edge case tests (boundary values, overflow scenarios)")
		out = append(out, "  - Error path tests (invalid inputs, error conditions)")
		out = append(out, "  - State transition tests (different initial conditions)")
		out = append(out, "  - Parametrized tests or loops in test code")
	}

	highComplexity := make([]metrics.FunctionMetrics, 0)
	for _, fn := range subject.Functions {
		if fn.Cyclomatic > 5 {
			highComplexity = append(highComplexity, fn)
		}
	}
	sort.SliceStable(highComplexity, func(i, j int) bool {
		return highComplexity[i].Cyclomatic > highComplexity[j].Cyclomatic
	})

	if len(highComplexity) > 0 {
		out = append(out, "\nComplex functions needing thorough tests:")
		for i, fn := range highComplexity {
			if i >= 5 {
				break
			}
			out = append(out, fmt.Sprintf("  - %s() [complexity: %d] at lines %d-%d", fn.Name, fn.Cyclomatic, fn.LineStart, fn.LineEnd))
		}
	}

	if ba != nil && ba.CoveragePercent < 80.0 && len(ba.MissingLines) > 0 {
		out = append(out, "\nMissing boundary value tests:")
		for i, missing := range ba.MissingLines {
			if i >= 5 {
				break
			}
			out = append(out, fmt.Sprintf("  %d. %s", i+1, missing))
		}
		if len(ba.MissingLines) > 5 {
			out = append(out, fmt.Sprintf("  ... and %d more", len(ba.MissingLines)-5))
		}
	}

	return out
}

func saturatingSub(a, b uint32) uint32 {
	if b >= a {
		return 0
	}
	return a - b
}
