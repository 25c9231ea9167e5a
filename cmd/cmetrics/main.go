// Command cmetrics scans C source files for per-function complexity and
// testability metrics, writing full detail to report.txt and printing a
// summary plus the top 5 hardest functions to stdout.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/brandon-arrendondo/knots/internal/config"
	"github.com/brandon-arrendondo/knots/internal/knotserr"
	"github.com/brandon-arrendondo/knots/internal/scan"
)

var (
	recursive       bool
	verbose         bool
	showMatrix      bool
	excludePatterns []string
)

var rootCmd = &cobra.Command{
	Use:   "cmetrics <path>",
	Short: "Scan C source for complexity and testability metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

func init() {
	cfg, err := config.Load(".cmetrics.yml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using built-in defaults\n", err)
		cfg = config.Defaults()
	}

	rootCmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "recurse into directories")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.Flags().BoolVarP(&showMatrix, "matrix", "m", false, "print the testability quadrant matrix")
	rootCmd.Flags().StringArrayVarP(&excludePatterns, "exclude", "e", cfg.Exclude,
		"glob pattern to exclude from a recursive scan (repeatable); defaults come from .cmetrics.yml")

	rootCmd.AddCommand(tuiCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if knotserr.Is(err, knotserr.KindValidation) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	path := args[0]

	files, stats, err := scan.Collect(path, recursive, excludePatterns...)
	if err != nil {
		return err
	}

	if verbose && stats.DirCount > 0 {
		color.Cyan("Walked %d director(y/ies), max depth %d\n", stats.DirCount, stats.MaxDepth)
	}

	if len(files) == 0 {
		color.Yellow("No .c/.h files found")
		return nil
	}

	var bar = scan.NewProgressBar(len(files))
	result := scan.Run(context.Background(), files, bar)

	report, err := os.Create("report.txt")
	if err != nil {
		return knotserr.New(knotserr.KindIO, "main.runScan", "report.txt", err)
	}
	defer report.Close()

	if err := scan.WriteReport(report, result); err != nil {
		return err
	}

	failed := 0
	for _, r := range result.Files {
		if r.Err != nil {
			failed++
			if verbose {
				color.Red("  %s: %v", r.Path, r.Err)
			}
		}
	}

	bold := color.New(color.Bold)
	bold.Printf("\nScanned %d file(s), %d function(s)\n", len(files)-failed, len(result.Functions))
	if failed > 0 {
		color.Yellow("%d file(s) failed to parse (see -v)\n", failed)
	}

	top := scan.TopN(result.Functions, 5)
	if len(top) > 0 {
		bold.Println("\nTop 5 by complexity (max of mccabe, cognitive):")
		table := tablewriter.NewTable(os.Stdout)
		table.Header([]string{"", "Function", "McCabe", "Cognitive", "TestScore", "Classification"})
		for _, fn := range top {
			rank := fn.Cyclomatic
			if fn.Cognitive > rank {
				rank = fn.Cognitive
			}
			table.Append([]string{
				scan.ComplexityEmoji(rank), fn.Name,
				fmt.Sprintf("%d", fn.Cyclomatic), fmt.Sprintf("%d", fn.Cognitive),
				fmt.Sprintf("%d", fn.TestScore.TotalScore), fn.TestScore.Classification(),
			})
		}
		table.Render()
	}

	if showMatrix {
		fmt.Println()
		printMatrix(result)
	}

	fmt.Println("\nFull detail written to report.txt")
	return nil
}
