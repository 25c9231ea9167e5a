package boundary

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempC(t *testing.T, name, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestDetect_Uint8Declaration(t *testing.T) {
	path := writeTempC(t, "src.c", `
uint8_t counter = 0;
uint16_t timer_ms = 0;
`)
	values, err := Detect(path)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("len(values) = %d, want 2", len(values))
	}
	if values[0].TypeName != "uint8_t" || values[0].Min != 0 || values[0].Max != 255 {
		t.Errorf("values[0] = %+v, want uint8_t [0,255]", values[0])
	}
	if values[1].TypeName != "uint16_t" || values[1].Max != 65535 {
		t.Errorf("values[1] = %+v, want uint16_t max 65535", values[1])
	}
}

func TestDetect_SkipsMaxMinPrefixedNames(t *testing.T) {
	path := writeTempC(t, "src.c", `
uint8_t MAX_RETRIES = 5;
uint8_t counter = 0;
`)
	values, err := Detect(path)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(values) != 1 || values[0].VariableName != "counter" {
		t.Fatalf("values = %+v, want only counter", values)
	}
}

func TestDetect_RangeChecksAndDefines(t *testing.T) {
	path := writeTempC(t, "src.c", `
if (counter > 100) {
	/* overflow check */
}
#define MAX_VALUE 255
`)
	values, err := Detect(path)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(values) < 2 {
		t.Fatalf("len(values) = %d, want >= 2", len(values))
	}

	var sawRangeCheck, sawConstantMax bool
	for _, v := range values {
		switch v.TypeName {
		case "range_check_upper":
			sawRangeCheck = true
		case "constant_max":
			sawConstantMax = true
		}
	}
	if !sawRangeCheck {
		t.Error("expected an if-check boundary labeled range_check_upper")
	}
	if !sawConstantMax {
		t.Error("expected a #define MAX boundary labeled constant_max, distinct from range_check_upper")
	}
}

func TestValue_RequiredValues(t *testing.T) {
	v := Value{Min: 0, Max: 255}
	got := v.RequiredValues()
	want := [4]int64{0, -1, 255, 256}
	if got != want {
		t.Errorf("RequiredValues() = %v, want %v", got, want)
	}
}

func TestValue_RequiredValuesSaturate(t *testing.T) {
	v := Value{Min: minInt64, Max: maxInt64}
	got := v.RequiredValues()
	if got[1] != minInt64 {
		t.Errorf("min-1 = %d, want saturated at minInt64", got[1])
	}
	if got[3] != maxInt64 {
		t.Errorf("max+1 = %d, want saturated at maxInt64", got[3])
	}
}

func TestAnalyzeCoverage_FullCoverage(t *testing.T) {
	// S6: uint8_t counter; test literals 0, 255, -1, 256 cover all required values.
	testPath := writeTempC(t, "test.c", `
assert_eq(counter, 0);
assert_eq(counter, 255);
assert_eq(counter, -1);
assert_eq(counter, 256);
`)
	required := []Value{{VariableName: "counter", TypeName: "uint8_t", Min: 0, Max: 255}}

	analysis, err := AnalyzeCoverage(testPath, required)
	if err != nil {
		t.Fatalf("AnalyzeCoverage() error = %v", err)
	}
	if analysis.CoveragePercent != 100.0 {
		t.Errorf("CoveragePercent = %v, want 100", analysis.CoveragePercent)
	}
	if len(analysis.MissingLines) != 0 {
		t.Errorf("MissingLines = %v, want none", analysis.MissingLines)
	}
}

func TestAnalyzeCoverage_NoBoundariesIsFullCoverage(t *testing.T) {
	testPath := writeTempC(t, "test.c", `int x = 1;`)
	analysis, err := AnalyzeCoverage(testPath, nil)
	if err != nil {
		t.Fatalf("AnalyzeCoverage() error = %v", err)
	}
	if analysis.CoveragePercent != 100.0 {
		t.Errorf("CoveragePercent = %v, want 100", analysis.CoveragePercent)
	}
}

func TestAnalyzeCoverage_PartialCoverageReportsMissing(t *testing.T) {
	testPath := writeTempC(t, "test.c", `assert_eq(counter, 0);`)
	required := []Value{{VariableName: "counter", TypeName: "uint8_t", Min: 0, Max: 255}}

	analysis, err := AnalyzeCoverage(testPath, required)
	if err != nil {
		t.Fatalf("AnalyzeCoverage() error = %v", err)
	}
	if analysis.CoveragePercent != 25.0 {
		t.Errorf("CoveragePercent = %v, want 25", analysis.CoveragePercent)
	}
	if len(analysis.MissingLines) != 1 {
		t.Fatalf("MissingLines = %v, want 1 entry", analysis.MissingLines)
	}
}

func TestDetect_MissingFileIsIOError(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "missing.c"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
