// Package boundary implements the boundary-value detector: a purely
// text-based pass over raw C source (not the AST) that enumerates integer
// range boundaries a subject file implies, then scores how many of them a
// paired test file actually exercises.
package boundary

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/brandon-arrendondo/knots/internal/knotserr"
)

// Value is one detected integer range, identified by the variable or
// constant that implies it.
type Value struct {
	VariableName string
	TypeName     string
	Min          int64
	Max          int64
}

// RequiredValues returns the four boundary values a range implies:
// min, min-1, max, max+1, each saturated at int64 limits.
func (v Value) RequiredValues() [4]int64 {
	return [4]int64{
		v.Min,
		satSub(v.Min, 1),
		v.Max,
		satAdd(v.Max, 1),
	}
}

func satSub(v, d int64) int64 {
	if v < minInt64+d {
		return minInt64
	}
	return v - d
}

func satAdd(v, d int64) int64 {
	if v > maxInt64-d {
		return maxInt64
	}
	return v + d
}

const (
	minInt64 = -1 << 63
	maxInt64 = 1<<63 - 1
)

type typedIntRange struct {
	name     string
	min, max int64
}

var fixedWidthTypes = []typedIntRange{
	{"uint8_t", 0, 255},
	{"uint16_t", 0, 65535},
	{"uint32_t", 0, 4294967295},
	{"int8_t", -128, 127},
	{"int16_t", -32768, 32767},
	{"int32_t", -2147483648, 2147483647},
}

var typeDeclPatterns = buildTypeDeclPatterns()

func buildTypeDeclPatterns() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(fixedWidthTypes))
	for _, t := range fixedWidthTypes {
		out[t.name] = regexp.MustCompile(`\b` + t.name + `\s+(\w+)\s*[;=,]`)
	}
	return out
}

var (
	rangeUpperVar  = regexp.MustCompile(`if\s*\(\s*\w+\s*>=?\s*(\d+)`)
	rangeLowerVar  = regexp.MustCompile(`if\s*\(\s*\w+\s*<=?\s*(\d+)`)
	rangeLowerLit  = regexp.MustCompile(`if\s*\(\s*(\d+)\s*<=?\s*\w+`)
	rangeUpperLit  = regexp.MustCompile(`if\s*\(\s*(\d+)\s*>=?\s*\w+`)
	constantMax    = regexp.MustCompile(`#define\s+\w*MAX\w*\s+(\d+)`)
	constantMin    = regexp.MustCompile(`#define\s+\w*MIN\w*\s+(\d+)`)
	decimalLiteral = regexp.MustCompile(`(-?\d+)\b`)
	hexLiteral     = regexp.MustCompile(`\b0[xX][0-9a-fA-F]+\b`)
)

// Detect reads path and returns the boundary values implied by its typed
// integer declarations and range-check/constant patterns.
func Detect(path string) ([]Value, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, knotserr.New(knotserr.KindIO, "boundary.Detect", path, err)
	}
	text := string(source)

	var values []Value
	values = append(values, detectTypedDeclarations(text)...)
	values = append(values, detectRangeChecks(text)...)
	return values, nil
}

func detectTypedDeclarations(text string) []Value {
	var out []Value
	for _, t := range fixedWidthTypes {
		re := typeDeclPatterns[t.name]
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if strings.HasPrefix(name, "MAX_") || strings.HasPrefix(name, "MIN_") {
				continue
			}
			out = append(out, Value{VariableName: name, TypeName: t.name, Min: t.min, Max: t.max})
		}
	}
	return out
}

type rangePattern struct {
	re       *regexp.Regexp
	kind     string // "upper" or "lower", controls the derived Min/Max
	typeName string // matches the original's boundary_type label verbatim
}

func detectRangeChecks(text string) []Value {
	patterns := []rangePattern{
		{rangeUpperVar, "upper", "range_check_upper"},
		{rangeLowerVar, "lower", "range_check_lower"},
		{rangeLowerLit, "lower", "range_check_lower"},
		{rangeUpperLit, "upper", "range_check_upper"},
		{constantMax, "upper", "constant_max"},
		{constantMin, "lower", "constant_min"},
	}

	var out []Value
	for _, p := range patterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			value, err := strconv.ParseInt(m[1], 10, 64)
			if err != nil {
				continue
			}
			var lo, hi int64
			if p.kind == "upper" {
				lo, hi = satSub(value, 1), value
			} else {
				lo, hi = value, satAdd(value, 1)
			}
			out = append(out, Value{
				VariableName: fmt.Sprintf("constant_%d", value),
				TypeName:     p.typeName,
				Min:          lo,
				Max:          hi,
			})
		}
	}
	return out
}

// Analysis is the coverage report produced by matching required boundary
// values against literals found in a test file.
type Analysis struct {
	Required        []Value
	FoundTestValues map[int64]struct{}
	CoveragePercent float64
	MissingLines    []string
}

// AnalyzeCoverage scans testPath for integer literals and scores how many
// of required's boundary values appear there.
func AnalyzeCoverage(testPath string, required []Value) (Analysis, error) {
	source, err := os.ReadFile(testPath)
	if err != nil {
		return Analysis{}, knotserr.New(knotserr.KindIO, "boundary.AnalyzeCoverage", testPath, err)
	}
	text := string(source)

	found := make(map[int64]struct{})
	for _, m := range decimalLiteral.FindAllStringSubmatch(text, -1) {
		if v, err := strconv.ParseInt(m[1], 10, 64); err == nil {
			found[v] = struct{}{}
		}
	}
	for _, m := range hexLiteral.FindAllString(text, -1) {
		if v, err := strconv.ParseUint(m[2:], 16, 64); err == nil {
			found[int64(v)] = struct{}{}
		}
	}

	var totalRequired, totalFound int
	var missing []string

	for _, b := range required {
		reqValues := b.RequiredValues()
		foundCount := 0
		var missingVals []string
		for _, v := range reqValues {
			if _, ok := found[v]; ok {
				foundCount++
			} else {
				missingVals = append(missingVals, strconv.FormatInt(v, 10))
			}
		}
		totalRequired += len(reqValues)
		totalFound += foundCount

		if foundCount < len(reqValues) {
			missing = append(missing, fmt.Sprintf("%s (%s): missing values [%s]", b.VariableName, b.TypeName, strings.Join(missingVals, ", ")))
		}
	}

	coverage := 100.0
	if totalRequired > 0 {
		coverage = float64(totalFound) / float64(totalRequired) * 100.0
	}

	return Analysis{
		Required:        required,
		FoundTestValues: found,
		CoveragePercent: coverage,
		MissingLines:    missing,
	}, nil
}
