package api_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brandon-arrendondo/knots/pkg/api"
)

// Example: Analyzing a single file's metrics
func ExampleAnalyzeFile() {
	dir, err := os.MkdirTemp("", "knots-example")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "subject.c")
	os.WriteFile(path, []byte("int add(int a, int b) { return a + b; }\n"), 0o644)

	analysis, err := api.AnalyzeFile(context.Background(), path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Functions found: %d\n", len(analysis.Functions))
	// Output: Functions found: 1
}

// Example: Comparing a test file against its subject with the fluent API
func ExampleNewComparison() {
	dir, err := os.MkdirTemp("", "knots-example")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	subjectPath := filepath.Join(dir, "subject.c")
	testPath := filepath.Join(dir, "subject_test.c")
	os.WriteFile(subjectPath, []byte("int add(int a, int b) { if (a > b) { return a; } return b; }\n"), 0o644)
	os.WriteFile(testPath, []byte("void test_add() { if (add(1,2) == 2) {} }\n"), 0o644)

	result, err := api.NewComparison(testPath, subjectPath).
		WithThreshold(0.5).
		WithBoundaryChecking(false).
		Run(context.Background())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Passed: %v\n", result.Passed)
	// Output: Passed: true
}
