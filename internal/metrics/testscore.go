package metrics

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// TestScoringMetric estimates how hard a function is to generate tests for,
// from its signature, dependencies, observability, implementation
// complexity and existing documentation.
type TestScoringMetric struct {
	SignatureScore      uint32
	DependencyScore     uint32
	ObservableScore     uint32
	ImplementationScore uint32
	DocumentationScore  int32
	TotalScore          int32
}

// Classification buckets the total score into a human label.
func (m TestScoringMetric) Classification() string {
	switch {
	case m.TotalScore <= 10:
		return "Trivial"
	case m.TotalScore <= 20:
		return "Simple"
	case m.TotalScore <= 30:
		return "Moderate"
	case m.TotalScore <= 40:
		return "Complex"
	case m.TotalScore <= 50:
		return "Difficult"
	default:
		return "Very Hard"
	}
}

// AutomationLevel describes how much manual test-design effort the score
// implies.
func (m TestScoringMetric) AutomationLevel() string {
	switch {
	case m.TotalScore <= 10:
		return "Fully automatable"
	case m.TotalScore <= 20:
		return "Automated with minimal metadata"
	case m.TotalScore <= 30:
		return "Needs good documentation"
	case m.TotalScore <= 40:
		return "Requires detailed specifications"
	case m.TotalScore <= 50:
		return "May need manual test design"
	default:
		return "Extensive manual effort needed"
	}
}

// CalculateTestScoring computes the full test-difficulty profile for a
// function_definition node.
func CalculateTestScoring(node *sitter.Node, source []byte) TestScoringMetric {
	signature := signatureComplexity(node, source)
	dependency := dependencyScore(node, source)
	observable := observableBehaviorScore(node, source)

	mccabe := CyclomaticComplexity(node, source)
	implementation := cyclomaticToImplementationScore(mccabe)

	documentation := documentationScore(node, source)

	total := int32(signature) + int32(dependency) + int32(observable) + int32(implementation) - documentation

	return TestScoringMetric{
		SignatureScore:      signature,
		DependencyScore:     dependency,
		ObservableScore:     observable,
		ImplementationScore: implementation,
		DocumentationScore:  documentation,
		TotalScore:          total,
	}
}

func cyclomaticToImplementationScore(cyclomatic uint32) uint32 {
	switch {
	case cyclomatic <= 5:
		return (cyclomatic - 1) / 2
	case cyclomatic <= 10:
		return 3 + (cyclomatic-6)/2
	case cyclomatic <= 20:
		return 6 + (cyclomatic-11)/5
	default:
		return 9
	}
}

func signatureComplexity(node *sitter.Node, source []byte) uint32 {
	declarator := node.ChildByFieldName("declarator")
	if declarator == nil {
		return 0
	}

	inputScore := analyzeParameters(declarator, source)

	outputScore := uint32(0)
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		outputScore = analyzeReturnType(typeNode, source)
	}

	total := inputScore + outputScore
	if total > 10 {
		return 10
	}
	return total
}

func analyzeParameters(declarator *sitter.Node, source []byte) uint32 {
	params := findParameterList(declarator)
	if params == nil {
		return 0
	}

	var paramCount uint32
	var hasPointer, hasFunctionPointer, hasVoidPtr, hasVariadic bool

	for i := 0; i < int(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		switch param.Type() {
		case "parameter_declaration":
			paramCount++
			text := param.Content(source)
			switch {
			case strings.Contains(text, "void*") || strings.Contains(text, "void *"):
				hasVoidPtr = true
			case strings.Contains(text, "(*") || strings.Contains(text, "* )"):
				hasFunctionPointer = true
			case strings.Contains(text, "*"):
				hasPointer = true
			}
		case "variadic_parameter":
			hasVariadic = true
		}
	}

	switch {
	case hasFunctionPointer || hasVoidPtr || hasVariadic:
		return 10
	case hasPointer && paramCount > 1:
		return 8
	case hasPointer:
		return 6
	case paramCount > 1:
		return 4
	case paramCount == 1:
		return 2
	default:
		return 0
	}
}

func findParameterList(declarator *sitter.Node) *sitter.Node {
	cur := declarator
	for cur != nil {
		if cur.Type() == "function_declarator" {
			return cur.ChildByFieldName("parameters")
		}
		inner := cur.ChildByFieldName("declarator")
		if inner == nil {
			return nil
		}
		cur = inner
	}
	return nil
}

func analyzeReturnType(typeNode *sitter.Node, source []byte) uint32 {
	text := typeNode.Content(source)
	switch {
	case strings.Contains(text, "void") && !strings.Contains(text, "*"):
		return 0
	case strings.Contains(text, "struct"):
		return 10
	case strings.Contains(text, "*"):
		return 6
	case strings.Contains(text, "enum"):
		return 4
	default:
		return 2
	}
}

var ioFuncs = map[string]bool{
	"fopen": true, "fclose": true, "fread": true, "fwrite": true, "fprintf": true,
	"fscanf": true, "fgets": true, "fputs": true, "fseek": true, "ftell": true,
	"rewind": true, "printf": true, "scanf": true, "puts": true, "getc": true, "putc": true,
}

var allocFuncs = map[string]bool{
	"malloc": true, "calloc": true, "realloc": true, "free": true, "aligned_alloc": true,
}

var sysFuncs = map[string]bool{
	"time": true, "clock": true, "rand": true, "srand": true, "getpid": true,
	"fork": true, "exec": true, "system": true, "signal": true, "kill": true,
	"wait": true, "pipe": true,
}

func dependencyScore(node *sitter.Node, source []byte) uint32 {
	var hasIO, hasAlloc, hasSyscall, modifiesGlobals bool
	visitDependencies(node, source, &hasIO, &hasAlloc, &hasSyscall, &modifiesGlobals)

	var score uint32
	if modifiesGlobals {
		score += 6
	}
	if hasIO {
		score += 2
	}
	if hasAlloc {
		score += 3
	}
	if hasSyscall {
		score += 2
	}
	if score > 10 {
		return 10
	}
	return score
}

func visitDependencies(node *sitter.Node, source []byte, hasIO, hasAlloc, hasSyscall, modifiesGlobals *bool) {
	if node.Type() == "call_expression" {
		if fn := node.ChildByFieldName("function"); fn != nil {
			name := fn.Content(source)
			if ioFuncs[name] {
				*hasIO = true
			}
			if allocFuncs[name] {
				*hasAlloc = true
			}
			if sysFuncs[name] {
				*hasSyscall = true
			}
		}
	}

	// Heuristic: an assignment to an identifier whose name starts with an
	// uppercase letter is treated as touching global/constant-style state.
	// Known limitation: this has no symbol-table backing and will
	// misclassify any local variable that happens to use PascalCase.
	if node.Type() == "assignment_expression" {
		if left := node.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			name := left.Content(source)
			if len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z' {
				*modifiesGlobals = true
			}
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		visitDependencies(node.NamedChild(i), source, hasIO, hasAlloc, hasSyscall, modifiesGlobals)
	}
}

var observableIOFuncs = map[string]bool{
	"fopen": true, "fclose": true, "fread": true, "fwrite": true, "fprintf": true,
	"printf": true, "scanf": true, "puts": true,
}

var randomFuncs = map[string]bool{"rand": true, "srand": true, "random": true}
var timeFuncs = map[string]bool{"time": true, "clock": true, "gettimeofday": true}

func observableBehaviorScore(node *sitter.Node, source []byte) uint32 {
	var score uint32

	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		text := typeNode.Content(source)
		if strings.Contains(text, "void") && !strings.Contains(text, "*") {
			score += 4
		}
	}

	var hasIO, hasRandom, hasTime bool
	visitObservability(node, source, &hasIO, &hasRandom, &hasTime)

	if hasIO {
		score += 2
	}
	if hasRandom {
		score += 3
	}
	if hasTime {
		score += 2
	}
	if score > 10 {
		return 10
	}
	return score
}

func visitObservability(node *sitter.Node, source []byte, hasIO, hasRandom, hasTime *bool) {
	if node.Type() == "call_expression" {
		if fn := node.ChildByFieldName("function"); fn != nil {
			name := fn.Content(source)
			if observableIOFuncs[name] {
				*hasIO = true
			}
			if randomFuncs[name] {
				*hasRandom = true
			}
			if timeFuncs[name] {
				*hasTime = true
			}
		}
	}

	for i := 0; i < int(node.NamedChildCount()); i++ {
		visitObservability(node.NamedChild(i), source, hasIO, hasRandom, hasTime)
	}
}

// documentationScore rewards a Doxygen-style comment directly preceding the
// function, scoring richer tag coverage higher since it reduces the
// information a test author would otherwise have to infer.
func documentationScore(node *sitter.Node, source []byte) int32 {
	prev := node.PrevSibling()
	if prev == nil || prev.Type() != "comment" {
		return 0
	}

	text := prev.Content(source)
	var score int32

	switch {
	case strings.Contains(text, "/**") || strings.Contains(text, "///"):
		score += 4
		tags := []string{"@intent", "@param", "@return", "@requires", "@ensures", "@side_effects", "@example", "@edge_cases", "@complexity"}
		weights := map[string]int32{
			"@intent": 5, "@param": 2, "@return": 2, "@requires": 2, "@ensures": 2,
			"@side_effects": 2, "@example": 3, "@edge_cases": 2, "@complexity": 2,
		}
		for _, tag := range tags {
			if strings.Contains(text, tag) {
				score += weights[tag]
			}
		}
	case strings.HasPrefix(text, "//") || strings.HasPrefix(text, "/*"):
		score += 2
	}

	if score > 10 {
		return 10
	}
	return score
}
