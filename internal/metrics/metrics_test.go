package metrics

import (
	"context"
	"testing"

	"github.com/brandon-arrendondo/knots/internal/ctree"
)

func parseOneFunction(t *testing.T, src string) (*ctree.Unit, ctree.Function) {
	t.Helper()
	p := ctree.New()
	unit, err := p.Parse(context.Background(), "test.c", []byte(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	fns := ctree.Functions(unit.Root(), unit.Source)
	if len(fns) == 0 {
		t.Fatalf("no functions found in source")
	}
	return unit, fns[0]
}

func TestCyclomaticComplexity_SimpleFunction(t *testing.T) {
	// S1: no branches at all keeps the base complexity of 1.
	unit, fn := parseOneFunction(t, `
void f() {
	int x = 1;
}
`)
	got := CyclomaticComplexity(fn.Node, unit.Source)
	if got != 1 {
		t.Errorf("CyclomaticComplexity = %d, want 1", got)
	}
}

func TestCyclomaticComplexity_NestedIf(t *testing.T) {
	// S2: two nested ifs add two decision points.
	unit, fn := parseOneFunction(t, `
void f() {
	if (a) {
		if (b) {
			x = 1;
		}
	}
}
`)
	got := CyclomaticComplexity(fn.Node, unit.Source)
	if got != 3 {
		t.Errorf("CyclomaticComplexity = %d, want 3", got)
	}
}

func TestCyclomaticComplexity_ElseIfChain(t *testing.T) {
	// S3: two if_statements (the second inside an else_clause) -> 1 + 2 = 3.
	unit, fn := parseOneFunction(t, `
int f() {
	if (a) return 1;
	else if (b) return 2;
	else return 3;
}
`)
	got := CyclomaticComplexity(fn.Node, unit.Source)
	if got != 3 {
		t.Errorf("CyclomaticComplexity = %d, want 3", got)
	}
}

func TestCyclomaticComplexity_SwitchCountsOnce(t *testing.T) {
	// S5: a switch with 5 cases only adds 1, pmccabe-style.
	unit, fn := parseOneFunction(t, `
void f(int x) {
	switch (x) {
	case 1: break;
	case 2: break;
	case 3: break;
	case 4: break;
	case 5: break;
	}
}
`)
	got := CyclomaticComplexity(fn.Node, unit.Source)
	if got != 2 {
		t.Errorf("CyclomaticComplexity = %d, want 2", got)
	}
}

func TestCognitiveComplexity_SimpleFunction(t *testing.T) {
	unit, fn := parseOneFunction(t, `
void f() {
	int x = 1;
}
`)
	got := CognitiveComplexity(fn.Node, unit.Source)
	if got != 0 {
		t.Errorf("CognitiveComplexity = %d, want 0", got)
	}
}

func TestCognitiveComplexity_NestedIf(t *testing.T) {
	// S2: outer if contributes 1, inner if contributes 1 + its nesting (1) = 2.
	unit, fn := parseOneFunction(t, `
void f() {
	if (a) {
		if (b) {
			x = 1;
		}
	}
}
`)
	got := CognitiveComplexity(fn.Node, unit.Source)
	if got != 3 {
		t.Errorf("CognitiveComplexity = %d, want 3", got)
	}
}

func TestCognitiveComplexity_ElseIfChain(t *testing.T) {
	// S3: if -> 1, else-if -> 1, else -> 1.
	unit, fn := parseOneFunction(t, `
int f() {
	if (a) return 1;
	else if (b) return 2;
	else return 3;
}
`)
	got := CognitiveComplexity(fn.Node, unit.Source)
	if got != 3 {
		t.Errorf("CognitiveComplexity = %d, want 3", got)
	}
}

func TestCognitiveComplexity_LogicalOperatorChainCollapsing(t *testing.T) {
	// S4: a single repeated operator collapses to one contribution.
	unit, fn := parseOneFunction(t, `
void f() {
	if (a && b && c) {
		x = 1;
	}
}
`)
	got := CognitiveComplexity(fn.Node, unit.Source)
	if got != 2 {
		t.Errorf("CognitiveComplexity = %d, want 2", got)
	}
}

func TestCognitiveComplexity_MixedLogicalOperators(t *testing.T) {
	// S4: a change in operator adds a second contribution.
	unit, fn := parseOneFunction(t, `
void f() {
	if (a && b || c) {
		x = 1;
	}
}
`)
	got := CognitiveComplexity(fn.Node, unit.Source)
	if got != 3 {
		t.Errorf("CognitiveComplexity = %d, want 3", got)
	}
}

func TestCognitiveComplexity_SwitchAddsNesting(t *testing.T) {
	unit, fn := parseOneFunction(t, `
void f(int x) {
	switch (x) {
	case 1: break;
	default: break;
	}
}
`)
	got := CognitiveComplexity(fn.Node, unit.Source)
	if got != 1 {
		t.Errorf("CognitiveComplexity = %d, want 1", got)
	}
}

func TestReturnCount(t *testing.T) {
	unit, fn := parseOneFunction(t, `
int f() {
	if (a) return 1;
	else if (b) return 2;
	else return 3;
}
`)
	got := ReturnCount(fn.Node)
	if got != 3 {
		t.Errorf("ReturnCount = %d, want 3", got)
	}
}

func TestNestingDepth_CompoundStatementCounts(t *testing.T) {
	// S1: a bare compound_statement body counts as depth 1.
	unit, fn := parseOneFunction(t, `
void f() {
	int x = 1;
}
`)
	got := NestingDepth(fn.Node)
	if got != 1 {
		t.Errorf("NestingDepth = %d, want 1", got)
	}
}

func TestABC_CountsAssignmentsBranchesConditions(t *testing.T) {
	unit, fn := parseOneFunction(t, `
void f() {
	int x = 1;
	if (x && y) {
		do_thing();
	}
}
`)
	abc := CalculateABC(fn.Node, unit.Source)
	if abc.Branches != 1 {
		t.Errorf("Branches = %d, want 1", abc.Branches)
	}
	if abc.Conditions != 2 {
		t.Errorf("Conditions = %d, want 2 (if + &&)", abc.Conditions)
	}
}

func TestABC_Magnitude(t *testing.T) {
	abc := ABC{Assignments: 3, Branches: 4, Conditions: 0}
	if got, want := abc.Magnitude(), 5.0; got != want {
		t.Errorf("Magnitude() = %v, want %v", got, want)
	}
}

func TestCyclomaticToImplementationScore_MonotoneAndSaturates(t *testing.T) {
	prev := uint32(0)
	for m := uint32(1); m <= 40; m++ {
		got := cyclomaticToImplementationScore(m)
		if got < prev {
			t.Fatalf("implementation score decreased at mccabe=%d: %d < %d", m, got, prev)
		}
		prev = got
	}
	if got := cyclomaticToImplementationScore(40); got != 9 {
		t.Errorf("implementation score at mccabe=40 = %d, want 9 (saturated)", got)
	}
}

func TestTestScoring_VoidNoArgsIsTrivial(t *testing.T) {
	unit, fn := parseOneFunction(t, `
void f() {
	int x = 1;
}
`)
	score := CalculateTestScoring(fn.Node, unit.Source)
	if score.Classification() != "Trivial" {
		t.Errorf("Classification() = %q, want Trivial (total=%d)", score.Classification(), score.TotalScore)
	}
}

func TestDocumentationScore_DoxygenTagsAccumulate(t *testing.T) {
	unit, fn := parseOneFunction(t, `
/**
 * @intent does a thing
 * @param x the input
 * @return the result
 */
int f(int x) {
	return x;
}
`)
	got := documentationScore(fn.Node, unit.Source)
	want := int32(10) // base 4 + @intent 5 + @param 2 + @return 2 = 13, capped at 10
	if got != want {
		t.Errorf("documentationScore = %d, want %d", got, want)
	}
}
