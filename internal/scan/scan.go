// Package scan implements the metric-scan CLI's external collaborators:
// recursive .c/.h file enumeration, concurrent per-file metric analysis, and
// report-file writing. None of this is part of the core metric or
// comparison engines; it is the thin adapter layer the spec places outside
// the core.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/semaphore"

	"github.com/brandon-arrendondo/knots/internal/compare"
	"github.com/brandon-arrendondo/knots/internal/knotserr"
	"github.com/brandon-arrendondo/knots/internal/matrix"
	"github.com/brandon-arrendondo/knots/internal/metrics"
	"github.com/brandon-arrendondo/knots/internal/walker"
)

var sourceExtensions = map[string]bool{".c": true, ".h": true}

// Stats summarizes a recursive directory walk: how many directories
// walker.Walker visited and how deep the deepest one was. Zero when the
// scanned input was a single file rather than a directory.
type Stats struct {
	DirCount int
	MaxDepth int
}

// Collect walks root and returns every .c/.h file found, using walker.Walker
// for traversal, skipping any file whose walker-relative path matches one of
// excludes (shell-glob patterns, "**" and trailing "/" supported, per
// walker.MatchesPattern). When recursive is false, root must itself be a
// file; a directory requires recursive.
func Collect(root string, recursive bool, excludes ...string) ([]string, Stats, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, Stats{}, knotserr.New(knotserr.KindIO, "scan.Collect", root, err)
	}

	if !info.IsDir() {
		return []string{root}, Stats{}, nil
	}

	if !recursive {
		return nil, Stats{}, knotserr.New(knotserr.KindValidation, "scan.Collect", root,
			fmt.Errorf("directory input requires -r/--recursive"))
	}

	w := walker.New(root)
	if err := w.Walk(); err != nil {
		return nil, Stats{}, knotserr.New(knotserr.KindIO, "scan.Collect", root, err)
	}

	var files []string
	for _, f := range w.GetFiles() {
		if f.IsDir {
			continue
		}
		if !sourceExtensions[strings.ToLower(filepath.Ext(f.AbsPath))] {
			continue
		}
		if excluded(f.Path, excludes) {
			continue
		}
		files = append(files, f.AbsPath)
	}

	sort.Strings(files)
	stats := Stats{DirCount: len(w.GetDirs()), MaxDepth: w.GetMaxDepth()}
	return files, stats, nil
}

// excluded reports whether path matches any of the given glob patterns.
func excluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if walker.MatchesPattern(path, pattern) {
			return true
		}
	}
	return false
}

// FileResult pairs one collected file with its analysis outcome.
type FileResult struct {
	Path string
	compare.FileAnalysis
	Err error
}

// Result is the outcome of scanning a file set.
type Result struct {
	Files     []FileResult
	Functions []metrics.FunctionMetrics
}

// Jobs caps worker concurrency: at most this many files are analyzed at once.
const Jobs = 8

// Run analyzes every file in paths concurrently, bounded by a weighted
// semaphore, reporting progress on bar if non-nil. Results preserve the
// input order regardless of completion order.
func Run(ctx context.Context, paths []string, bar *progressbar.ProgressBar) Result {
	results := make([]FileResult, len(paths))

	sem := semaphore.NewWeighted(Jobs)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[idx] = FileResult{Path: p, Err: err}
				return
			}
			defer sem.Release(1)

			fa, err := compare.AnalyzeFile(ctx, p)

			mu.Lock()
			if err != nil {
				results[idx] = FileResult{Path: p, Err: err}
			} else {
				results[idx] = FileResult{Path: p, FileAnalysis: fa}
			}
			if bar != nil {
				bar.Add(1)
			}
			mu.Unlock()
		}(i, path)
	}
	wg.Wait()

	var functions []metrics.FunctionMetrics
	for _, r := range results {
		if r.Err == nil {
			functions = append(functions, r.Functions...)
		}
	}

	return Result{Files: results, Functions: functions}
}

// NewProgressBar builds the scan progress bar used by the metric-scan CLI.
func NewProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Analyzing files"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

// WriteReport writes per-function detail for every successfully analyzed
// file to w, in the order files were given.
func WriteReport(w *os.File, result Result) error {
	for _, r := range result.Files {
		if r.Err != nil {
			fmt.Fprintf(w, "# %s: error: %v\n\n", r.Path, r.Err)
			continue
		}

		fmt.Fprintf(w, "# %s\n", r.Path)
		for _, fn := range r.Functions {
			rank := fn.Cyclomatic
			if fn.Cognitive > rank {
				rank = fn.Cognitive
			}
			fmt.Fprintf(w, "  %s %s (lines %d-%d): mccabe=%d cognitive=%d nesting=%d sloc=%d abc=(%d,%d,%d) returns=%d test_score=%d (%s)\n",
				ComplexityEmoji(rank), fn.Name, fn.LineStart, fn.LineEnd, fn.Cyclomatic, fn.Cognitive, fn.Nesting, fn.SLOC,
				fn.ABC.Assignments, fn.ABC.Branches, fn.ABC.Conditions, fn.ReturnCount,
				fn.TestScore.TotalScore, fn.TestScore.Classification())
		}
		fmt.Fprintln(w)
	}
	return nil
}

// TopN returns the n functions with the highest max(mccabe, cognitive),
// sorted descending.
func TopN(functions []metrics.FunctionMetrics, n int) []metrics.FunctionMetrics {
	ranked := make([]metrics.FunctionMetrics, len(functions))
	copy(ranked, functions)

	rank := func(m metrics.FunctionMetrics) uint32 {
		if m.Cyclomatic > m.Cognitive {
			return m.Cyclomatic
		}
		return m.Cognitive
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return rank(ranked[i]) > rank(ranked[j])
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Matrix builds the testability-quadrant entries for every analyzed
// function, used by the metric-scan CLI's -m/--matrix flag.
func Matrix(functions []metrics.FunctionMetrics) []matrix.Entry {
	return matrix.CategorizeAll(functions)
}

// ComplexityEmoji reproduces the original single-file CLI's mood indicator
// for a function's worst complexity score (max of mccabe, cognitive).
func ComplexityEmoji(maxComplexity uint32) string {
	switch {
	case maxComplexity <= 10:
		return "\U0001F60A" // 😊
	case maxComplexity <= 20:
		return "\U0001F610" // 😐
	case maxComplexity <= 49:
		return "\U0001F620" // 😠
	default:
		return "\U0001F622" // 😢
	}
}
