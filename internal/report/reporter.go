// Package report renders a compare.Result as colorized terminal output,
// mirroring the structure of the original analyzer's plain-text report.
package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/brandon-arrendondo/knots/internal/compare"
)

// Reporter prints compare.Result values to an io.Writer.
type Reporter struct {
	Verbose bool
	out     io.Writer
}

// New constructs a Reporter writing to out.
func New(out io.Writer, verbose bool) *Reporter {
	return &Reporter{Verbose: verbose, out: out}
}

var (
	bold   = color.New(color.Bold)
	yellow = color.New(color.FgYellow)
	green  = color.New(color.FgGreen, color.Bold)
	red    = color.New(color.FgRed, color.Bold)
	dim    = color.New(color.FgHiBlack)
)

const rule = "━"

// Print writes the full comparison report for result.
func (r *Reporter) Print(result compare.Result) {
	testName := filepath.Base(result.TestFile)
	sourceName := filepath.Base(result.SubjectFile)

	bar := strings.Repeat(rule, 70)
	fmt.Fprintln(r.out)
	dim.Fprintln(r.out, bar)
	bold.Fprintf(r.out, "Test Quality Analysis: %s\n", testName)
	dim.Fprintln(r.out, bar)
	fmt.Fprintln(r.out)

	bold.Fprintln(r.out, "Source File:")
	fmt.Fprintf(r.out, "  File: %s\n", sourceName)
	fmt.Fprintf(r.out, "  Functions: %d\n", result.SubjectFunctionCount)
	fmt.Fprintf(r.out, "  Total Cyclomatic Complexity: %d\n", result.SubjectCyclomatic)
	fmt.Fprintf(r.out, "  Total Cognitive Complexity: %d\n", result.SubjectCognitive)

	fmt.Fprintln(r.out)
	bold.Fprintln(r.out, "Test File:")
	fmt.Fprintf(r.out, "  File: %s\n", testName)
	fmt.Fprintf(r.out, "  Functions: %d\n", result.TestFunctionCount)
	fmt.Fprintf(r.out, "  Total Cyclomatic Complexity: %d\n", result.TestCyclomatic)
	fmt.Fprintf(r.out, "  Total Cognitive Complexity: %d\n", result.TestCognitive)

	fmt.Fprintln(r.out)
	bold.Fprintln(r.out, "Complexity Analysis:")
	cyclomaticPercent := int(result.CyclomaticRatio * 100.0)
	thresholdPercent := int(result.Threshold * 100.0)

	statusColor := red
	if result.Passed {
		statusColor = green
	}
	mark := "✗"
	if result.Passed {
		mark = "✓"
	}
	fmt.Fprintf(r.out, "  Test/Source Ratio: %s (threshold: %d%%)\n", statusColor.Sprintf("%d%% %s", cyclomaticPercent, mark), thresholdPercent)
	fmt.Fprintf(r.out, "  Test Cyclomatic Complexity: %d\n", result.TestCyclomatic)
	fmt.Fprintf(r.out, "  Source Cyclomatic Complexity: %d\n", result.SubjectCyclomatic)

	if r.Verbose {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "  Cognitive Complexity (informational):")
		fmt.Fprintf(r.out, "    Test: %d\n", result.TestCognitive)
		fmt.Fprintf(r.out, "    Source: %d\n", result.SubjectCognitive)
		fmt.Fprintf(r.out, "    Ratio: %.0f%%\n", result.CognitiveRatio*100.0)
	}

	if result.Boundary != nil {
		r.printBoundary(result)
	}

	if len(result.Recommendations) > 0 {
		fmt.Fprintln(r.out)
		yellow.Add(color.Bold).Fprintln(r.out, "Recommendations:")
		for _, rec := range result.Recommendations {
			yellow.Fprintln(r.out, rec)
		}
	}

	fmt.Fprintln(r.out)
	dim.Fprintln(r.out, bar)
	if result.Passed {
		green.Fprintln(r.out, "Result: ✓ PASS")
	} else {
		red.Fprintln(r.out, "Result: ✗ FAIL")
	}
	dim.Fprintln(r.out, bar)
	fmt.Fprintln(r.out)
}

func (r *Reporter) printBoundary(result compare.Result) {
	ba := result.Boundary
	fmt.Fprintln(r.out)
	bold.Fprintln(r.out, "Boundary Analysis:")

	count := len(ba.Required)
	if count == 0 {
		fmt.Fprintln(r.out, "  No boundary values detected in source (no integer type variables)")
		return
	}

	fmt.Fprintf(r.out, "  Boundary Values Detected: %d\n", count)

	boundaryThresholdPercent := int(result.BoundaryThreshold * 100.0)
	coverageColor := red
	if ba.CoveragePercent >= result.BoundaryThreshold*100.0 {
		coverageColor = green
	}
	mark := "✗"
	if ba.CoveragePercent >= result.BoundaryThreshold*100.0 {
		mark = "✓"
	}
	fmt.Fprintf(r.out, "  Boundary Test Coverage: %s (threshold: %d%%)\n", coverageColor.Sprintf("%.0f%% %s", ba.CoveragePercent, mark), boundaryThresholdPercent)
	fmt.Fprintf(r.out, "  Test Values Found: %d\n", len(ba.FoundTestValues))

	if r.Verbose && len(ba.Required) > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, "  Detected Boundaries:")
		for i, bv := range ba.Required {
			if i >= 5 {
				break
			}
			fmt.Fprintf(r.out, "    %d. %s (%s) - range: %d to %d\n", i+1, bv.VariableName, bv.TypeName, bv.Min, bv.Max)
		}
		if len(ba.Required) > 5 {
			fmt.Fprintf(r.out, "    ... and %d more\n", len(ba.Required)-5)
		}
	}
}
