package ctree

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestParseFile_ReturnsUsableTree(t *testing.T) {
	tmpDir := t.TempDir()
	cFile := filepath.Join(tmpDir, "test.c")

	content := `int add(int a, int b) {
    if (a > b) {
        return a + b;
    }
    return b;
}
`
	if err := os.WriteFile(cFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p := New()
	unit, err := p.ParseFile(context.Background(), cFile)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer unit.Close()

	if unit.Root().Type() != "translation_unit" {
		t.Errorf("Expected translation_unit root, got %s", unit.Root().Type())
	}
}

func TestParseFile_MissingFileIsIOError(t *testing.T) {
	p := New()
	_, err := p.ParseFile(context.Background(), filepath.Join(t.TempDir(), "missing.c"))
	if err == nil {
		t.Fatal("Expected an error for a missing file")
	}
}

func TestFunctions_FindsOneDefinitionAndSkipsPrototype(t *testing.T) {
	source := []byte(`int helper(int x);

int add(int a, int b) {
    return a + b;
}
`)
	p := New()
	unit, err := p.Parse(context.Background(), "in-memory", source)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer unit.Close()

	fns := Functions(unit.Root(), unit.Source)
	if len(fns) != 1 {
		t.Fatalf("Expected 1 function definition, got %d", len(fns))
	}
	if fns[0].Name != "add" {
		t.Errorf("Expected function name 'add', got %q", fns[0].Name)
	}
	if ParamCount(fns[0].Params, unit.Source) != 2 {
		t.Errorf("Expected 2 parameters, got %d", ParamCount(fns[0].Params, unit.Source))
	}
}

func TestFunctions_NestedPointerDeclaratorResolvesName(t *testing.T) {
	source := []byte(`void (*make_handler(void))(int) {
    return 0;
}
`)
	p := New()
	unit, err := p.Parse(context.Background(), "in-memory", source)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer unit.Close()

	fns := Functions(unit.Root(), unit.Source)
	if len(fns) != 1 {
		t.Fatalf("Expected 1 function definition, got %d", len(fns))
	}
	if fns[0].Name != "make_handler" {
		t.Errorf("Expected function name 'make_handler', got %q", fns[0].Name)
	}
}

func TestParamCount_TreatsLoneVoidAsZero(t *testing.T) {
	source := []byte(`int noop(void) {
    return 0;
}
`)
	p := New()
	unit, err := p.Parse(context.Background(), "in-memory", source)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer unit.Close()

	fns := Functions(unit.Root(), unit.Source)
	if len(fns) != 1 {
		t.Fatalf("Expected 1 function definition, got %d", len(fns))
	}
	if ParamCount(fns[0].Params, unit.Source) != 0 {
		t.Errorf("Expected 0 parameters for (void), got %d", ParamCount(fns[0].Params, unit.Source))
	}
}
