package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/brandon-arrendondo/knots/internal/knotserr"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg.Threshold != 0.70 || *cfg.BoundaryThreshold != 0.80 || cfg.Level != "warn" || !*cfg.CheckBoundaries {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_OverridesOnlySpecifiedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".cmetrics.yml")
	content := "threshold: 0.5\nlevel: error\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg.Threshold != 0.5 {
		t.Errorf("Threshold = %v, want 0.5", *cfg.Threshold)
	}
	if cfg.Level != "error" {
		t.Errorf("Level = %v, want error", cfg.Level)
	}
	if *cfg.BoundaryThreshold != 0.80 {
		t.Errorf("BoundaryThreshold = %v, want untouched default 0.80", *cfg.BoundaryThreshold)
	}
}

func TestLoad_OverridesExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".cmetrics.yml")
	content := "exclude:\n  - vendor/\n  - \"*_generated.c\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Exclude) != 2 || cfg.Exclude[0] != "vendor/" || cfg.Exclude[1] != "*_generated.c" {
		t.Errorf("Exclude = %v, want [vendor/ *_generated.c]", cfg.Exclude)
	}
}

func TestLoad_OutOfRangeThresholdIsValidationError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".cmetrics.yml")
	if err := os.WriteFile(path, []byte("threshold: 3.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected a validation error for threshold > 2.0")
	}
	if !knotserr.Is(err, knotserr.KindValidation) {
		t.Errorf("expected KindValidation, got %v", err)
	}
}

func TestLoad_UnknownLevelIsValidationError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".cmetrics.yml")
	if err := os.WriteFile(path, []byte("level: critical\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected a validation error for an unknown level")
	}
	if !knotserr.Is(err, knotserr.KindValidation) {
		t.Errorf("expected KindValidation, got %v", err)
	}
}

func TestValidate_AcceptsDefaults(t *testing.T) {
	if err := Validate(Defaults()); err != nil {
		t.Errorf("Validate(Defaults()) = %v, want nil", err)
	}
}
