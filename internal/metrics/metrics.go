// Package metrics implements the per-function static metrics this module is
// built around: McCabe cyclomatic complexity, SonarSource-style cognitive
// complexity, nesting depth, source lines of code, ABC complexity and return
// count. Every function here takes a tree-sitter node from a C translation
// unit parsed by internal/ctree and the raw source bytes it indexes into.
package metrics

import (
	"math"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/brandon-arrendondo/knots/internal/ctree"
)

// FunctionMetrics is the full metric profile for one function.
type FunctionMetrics struct {
	Name        string
	LineStart   int
	LineEnd     int
	Cyclomatic  uint32
	Cognitive   uint32
	Nesting     uint32
	SLOC        uint32
	ABC         ABC
	ReturnCount uint32
	TestScore   TestScoringMetric
}

// Analyze computes the full metric profile for a single function.
func Analyze(fn ctree.Function, source []byte) FunctionMetrics {
	return FunctionMetrics{
		Name:        fn.Name,
		LineStart:   fn.Start,
		LineEnd:     fn.End,
		Cyclomatic:  CyclomaticComplexity(fn.Node, source),
		Cognitive:   CognitiveComplexity(fn.Node, source),
		Nesting:     NestingDepth(fn.Node),
		SLOC:        SLOC(fn.Node, source),
		ABC:         CalculateABC(fn.Node, source),
		ReturnCount: ReturnCount(fn.Node),
		TestScore:   CalculateTestScoring(fn.Node, source),
	}
}

// CyclomaticComplexity computes McCabe complexity: one base path plus one
// per decision point. switch_statement counts as a single +1 regardless of
// case count, matching pmccabe rather than strict branch counting.
func CyclomaticComplexity(node *sitter.Node, source []byte) uint32 {
	complexity := uint32(1)
	visitMccabe(node, source, &complexity)
	return complexity
}

func visitMccabe(node *sitter.Node, source []byte, complexity *uint32) {
	switch node.Type() {
	case "if_statement", "while_statement", "do_statement", "for_statement",
		"switch_statement", "conditional_expression", "goto_statement":
		*complexity++
	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			text := op.Content(source)
			if text == "&&" || text == "||" {
				*complexity++
			}
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		visitMccabe(node.NamedChild(i), source, complexity)
	}
}

// CognitiveComplexity computes SonarSource-style cognitive complexity:
// nesting structures add 1 plus the current nesting level, else-if chains
// collapse to a single +1, and runs of the same logical operator only count
// once. The "operator that collapses a chain" is threaded explicitly through
// the recursion rather than kept on a mutable stack, since each branch of
// the traversal needs its own view of the parent operator.
func CognitiveComplexity(node *sitter.Node, source []byte) uint32 {
	complexity := uint32(0)
	visitCognitive(node, source, 0, &complexity, "")
	return complexity
}

func visitCognitive(node *sitter.Node, source []byte, nesting uint32, complexity *uint32, parentOp string) {
	switch node.Type() {
	case "if_statement":
		*complexity += 1 + nesting
		visitChildrenCognitive(node, source, nesting+1, complexity, "")
		return

	case "else_clause":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "if_statement" {
				// else-if: one +1 total, the nested if runs at the same
				// nesting level instead of incrementing again.
				*complexity++
				visitChildrenCognitive(child, source, nesting, complexity, "")
				return
			}
		}
		*complexity++
		visitChildrenCognitive(node, source, nesting, complexity, "")
		return

	case "while_statement", "do_statement", "for_statement", "switch_statement", "catch_clause":
		*complexity += 1 + nesting
		visitChildrenCognitive(node, source, nesting+1, complexity, "")
		return

	case "goto_statement":
		*complexity++

	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			text := op.Content(source)
			if text == "&&" || text == "||" {
				if parentOp != text {
					*complexity++
				}
				visitChildrenCognitive(node, source, nesting, complexity, text)
				return
			}
		}
	}

	visitChildrenCognitive(node, source, nesting, complexity, parentOp)
}

func visitChildrenCognitive(node *sitter.Node, source []byte, nesting uint32, complexity *uint32, parentOp string) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		visitCognitive(node.NamedChild(i), source, nesting, complexity, parentOp)
	}
}

// NestingDepth returns the deepest level of control-structure nesting found
// under node, counting compound_statement bodies alongside if/while/for/do/
// switch so a brace-only block still contributes depth.
func NestingDepth(node *sitter.Node) uint32 {
	var maxDepth uint32
	visitNesting(node, 0, &maxDepth)
	return maxDepth
}

func visitNesting(node *sitter.Node, depth uint32, maxDepth *uint32) {
	newDepth := depth
	switch node.Type() {
	case "if_statement", "while_statement", "do_statement", "for_statement",
		"switch_statement", "compound_statement":
		newDepth = depth + 1
		if newDepth > *maxDepth {
			*maxDepth = newDepth
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		visitNesting(node.NamedChild(i), newDepth, maxDepth)
	}
}

// SLOC counts non-blank, non-comment lines within node's byte range. It
// tracks multi-line /* */ comments with a small state machine rather than a
// regex, since a comment terminator and trailing code can share one line.
func SLOC(node *sitter.Node, source []byte) uint32 {
	start, end := int(node.StartByte()), int(node.EndByte())
	if start >= end || end > len(source) {
		return 0
	}

	text := source[start:end]
	var sloc uint32
	inBlockComment := false

	for _, line := range splitLines(text) {
		trimmed := trimASCIISpace(line)
		if len(trimmed) == 0 {
			continue
		}

		if inBlockComment {
			if pos := indexOf(trimmed, "*/"); pos >= 0 {
				inBlockComment = false
				after := trimASCIISpace(trimmed[pos+2:])
				if len(after) > 0 {
					sloc++
				}
			}
			continue
		}

		if len(trimmed) >= 2 && trimmed[0] == '/' && trimmed[1] == '/' {
			continue
		}

		if pos := indexOf(trimmed, "/*"); pos >= 0 {
			rest := trimmed[pos:]
			if endPos := indexOf(rest, "*/"); endPos >= 0 {
				before := trimASCIISpace(trimmed[:pos])
				after := trimASCIISpace(trimmed[pos+endPos+2:])
				if len(before) > 0 || len(after) > 0 {
					sloc++
				}
			} else {
				inBlockComment = true
				if len(trimASCIISpace(trimmed[:pos])) > 0 {
					sloc++
				}
			}
			continue
		}

		sloc++
	}

	return sloc
}

func splitLines(b []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, c := range b {
		if c == '\n' {
			lines = append(lines, b[start:i])
			start = i + 1
		}
	}
	lines = append(lines, b[start:])
	return lines
}

func trimASCIISpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isASCIISpace(b[start]) {
		start++
	}
	for end > start && isASCIISpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isASCIISpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\v' || b == '\f'
}

func indexOf(haystack []byte, needle string) int {
	n := []byte(needle)
	if len(n) == 0 || len(haystack) < len(n) {
		return -1
	}
	for i := 0; i <= len(haystack)-len(n); i++ {
		match := true
		for j := range n {
			if haystack[i+j] != n[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// ABC holds the Assignments/Branches/Conditions triple.
type ABC struct {
	Assignments uint32
	Branches    uint32
	Conditions  uint32
}

// Magnitude is the Euclidean norm of the ABC triple, the conventional single
// scalar for comparing ABC complexity across functions.
func (a ABC) Magnitude() float64 {
	x, y, z := float64(a.Assignments), float64(a.Branches), float64(a.Conditions)
	return math.Sqrt(x*x + y*y + z*z)
}

// CalculateABC computes the ABC triple: assignments (assignment and
// increment/decrement expressions), branches (call expressions), and
// conditions (conditional statements and logical operators).
func CalculateABC(node *sitter.Node, source []byte) ABC {
	var abc ABC
	visitABC(node, source, &abc)
	return abc
}

func visitABC(node *sitter.Node, source []byte, abc *ABC) {
	switch node.Type() {
	case "assignment_expression", "update_expression":
		abc.Assignments++
	case "call_expression":
		abc.Branches++
	case "if_statement", "while_statement", "do_statement", "for_statement",
		"switch_statement", "conditional_expression":
		abc.Conditions++
	case "binary_expression":
		if op := node.ChildByFieldName("operator"); op != nil {
			text := op.Content(source)
			if text == "&&" || text == "||" {
				abc.Conditions++
			}
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		visitABC(node.NamedChild(i), source, abc)
	}
}

// ReturnCount counts return_statement nodes under node.
func ReturnCount(node *sitter.Node) uint32 {
	var count uint32
	visitReturns(node, &count)
	return count
}

func visitReturns(node *sitter.Node, count *uint32) {
	if node.Type() == "return_statement" {
		*count++
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		visitReturns(node.NamedChild(i), count)
	}
}
