// Package matrix categorizes functions into a testability quadrant by
// thresholding cyclomatic complexity and test-difficulty score at 10, and
// renders the result as a console table.
package matrix

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/brandon-arrendondo/knots/internal/metrics"
)

// Quadrant names one of the four testability categories.
type Quadrant string

const (
	QuickWins   Quadrant = "QUICK WINS"
	InvestTests Quadrant = "INVEST IN TESTS"
	AddDocs     Quadrant = "ADD DOCS"
	Refactor    Quadrant = "REFACTOR"
)

// Entry pairs one function with its computed quadrant.
type Entry struct {
	Name      string
	Mccabe    uint32
	TestScore int32
	Quadrant  Quadrant
}

// Categorize places fn in a quadrant per low_complexity = mccabe <= 10 and
// easy_to_test = test_total <= 10.
func Categorize(fn metrics.FunctionMetrics) Entry {
	lowComplexity := fn.Cyclomatic <= 10
	easyToTest := fn.TestScore.TotalScore <= 10

	var q Quadrant
	switch {
	case lowComplexity && easyToTest:
		q = QuickWins
	case !lowComplexity && easyToTest:
		q = InvestTests
	case lowComplexity && !easyToTest:
		q = AddDocs
	default:
		q = Refactor
	}

	return Entry{Name: fn.Name, Mccabe: fn.Cyclomatic, TestScore: fn.TestScore.TotalScore, Quadrant: q}
}

// CategorizeAll maps a slice of FunctionMetrics into their quadrant entries.
func CategorizeAll(fns []metrics.FunctionMetrics) []Entry {
	out := make([]Entry, 0, len(fns))
	for _, fn := range fns {
		out = append(out, Categorize(fn))
	}
	return out
}

// Summary counts entries per quadrant.
type Summary struct {
	QuickWins   int
	InvestTests int
	AddDocs     int
	Refactor    int
}

func (s Summary) Total() int {
	return s.QuickWins + s.InvestTests + s.AddDocs + s.Refactor
}

// Summarize tallies entries by quadrant.
func Summarize(entries []Entry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Quadrant {
		case QuickWins:
			s.QuickWins++
		case InvestTests:
			s.InvestTests++
		case AddDocs:
			s.AddDocs++
		case Refactor:
			s.Refactor++
		}
	}
	return s
}

// Render writes the full testability matrix as one table per quadrant, in
// QuickWins, InvestTests, AddDocs, Refactor order, followed by a summary
// table.
func Render(w io.Writer, entries []Entry) {
	for _, q := range []Quadrant{QuickWins, InvestTests, AddDocs, Refactor} {
		renderQuadrant(w, q, entries)
	}
	renderSummary(w, Summarize(entries))
}

func renderQuadrant(w io.Writer, q Quadrant, entries []Entry) {
	io.WriteString(w, string(q)+"\n")

	table := tablewriter.NewTable(w)
	table.Header([]string{"Function", "McCabe", "TestScore"})
	found := false
	for _, e := range entries {
		if e.Quadrant != q {
			continue
		}
		found = true
		table.Append([]string{e.Name, strconv.Itoa(int(e.Mccabe)), strconv.Itoa(int(e.TestScore))})
	}
	if !found {
		table.Append([]string{"(none)", "", ""})
	}
	table.Render()
	io.WriteString(w, "\n")
}

func renderSummary(w io.Writer, s Summary) {
	io.WriteString(w, "Summary\n")
	table := tablewriter.NewTable(w)
	table.Header([]string{"Quadrant", "Functions"})
	table.Append([]string{string(QuickWins), strconv.Itoa(s.QuickWins)})
	table.Append([]string{string(InvestTests), strconv.Itoa(s.InvestTests)})
	table.Append([]string{string(AddDocs), strconv.Itoa(s.AddDocs)})
	table.Append([]string{string(Refactor), strconv.Itoa(s.Refactor)})
	table.Append([]string{"Total", strconv.Itoa(s.Total())})
	table.Render()
}
