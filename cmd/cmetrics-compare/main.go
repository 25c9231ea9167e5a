// Command cmetrics-compare judges whether a test file carries enough
// structural complexity and boundary-value coverage relative to the
// subject file it tests, per the comparison engine's thresholds.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brandon-arrendondo/knots/internal/compare"
	"github.com/brandon-arrendondo/knots/internal/config"
	"github.com/brandon-arrendondo/knots/internal/knotserr"
	"github.com/brandon-arrendondo/knots/internal/report"
)

var (
	threshold         float64
	boundaryThreshold float64
	level             string
	noCheckBoundaries bool
	verbose           bool
)

var rootCmd = &cobra.Command{
	Use:   "cmetrics-compare <test-file> <source-file>",
	Short: "Judge a test file's structural adequacy against its subject",
	Args:  cobra.ExactArgs(2),
	RunE:  runCompare,
}

func init() {
	cfg, err := config.Load(".cmetrics.yml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using built-in defaults\n", err)
		cfg = config.Defaults()
	}

	rootCmd.Flags().Float64VarP(&threshold, "threshold", "t", *cfg.Threshold, "cyclomatic-ratio pass threshold (0.0..2.0)")
	rootCmd.Flags().Float64VarP(&boundaryThreshold, "boundary-threshold", "b", *cfg.BoundaryThreshold, "boundary-coverage pass threshold (0.0..1.0)")
	rootCmd.Flags().StringVarP(&level, "level", "l", cfg.Level, "enforcement level: warn or error")
	rootCmd.Flags().BoolVar(&noCheckBoundaries, "no-check-boundaries", !*cfg.CheckBoundaries, "skip boundary-value coverage analysis")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if knotserr.Is(err, knotserr.KindValidation) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// Cobra already printed a usage error for flag/arg parsing failures.
		os.Exit(1)
	}
}

func validateFlags() error {
	if threshold < 0.0 || threshold > 2.0 {
		return knotserr.New(knotserr.KindValidation, "main.validateFlags", "",
			fmt.Errorf("--threshold must be in 0.0..2.0, got %v", threshold))
	}
	if boundaryThreshold < 0.0 || boundaryThreshold > 1.0 {
		return knotserr.New(knotserr.KindValidation, "main.validateFlags", "",
			fmt.Errorf("--boundary-threshold must be in 0.0..1.0, got %v", boundaryThreshold))
	}
	if level != "warn" && level != "error" {
		return knotserr.New(knotserr.KindValidation, "main.validateFlags", "",
			fmt.Errorf("--level must be \"warn\" or \"error\", got %q", level))
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}

	testPath, subjectPath := args[0], args[1]
	ctx := context.Background()

	test, err := compare.AnalyzeFile(ctx, testPath)
	if err != nil {
		return err
	}
	subject, err := compare.AnalyzeFile(ctx, subjectPath)
	if err != nil {
		return err
	}

	log := logrus.New()
	if !verbose {
		log.SetLevel(logrus.WarnLevel)
	}

	opts := compare.Options{
		Threshold:         threshold,
		BoundaryThreshold: boundaryThreshold,
		CheckBoundaries:   !noCheckBoundaries,
	}
	result := compare.Compare(test, subject, opts, log)

	reporter := report.New(os.Stdout, verbose)
	reporter.Print(result)

	if result.Passed {
		return nil
	}

	if level == "error" {
		os.Exit(1)
	}
	return nil
}
