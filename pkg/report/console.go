package report

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/ritzau/layerlint/pkg/analysis"
)

// PrintSummary prints a colorized report of the analysis to stdout.
func PrintSummary(workspace string, result *analysis.Result) {
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Println("layerlint - Layering Report")
	bold.Println("===========================")
	fmt.Printf("Workspace: %s\n", workspace)
	fmt.Printf("Rule: %s\n", result.Rule)
	fmt.Printf("Modules: %d, dependencies: %d\n", len(result.Modules), len(result.Edges))
	fmt.Println()

	violations := result.Violations()
	if len(violations) > 0 {
		red.Printf("VIOLATIONS (%d):\n", len(violations))
		for _, edge := range violations {
			yellow.Printf("  %s -> %s\n", edge.Source, edge.Target)
			for _, stmt := range edge.Evidence.SortedStatements() {
				cyan.Printf("    %s\n", stmt)
			}
			for _, file := range edge.Evidence.SortedFiles() {
				fmt.Printf("    in %s\n", file)
			}
		}
		fmt.Println()
	}

	if len(result.Cycles) > 0 {
		yellow.Printf("CIRCULAR DEPENDENCIES (%d):\n", len(result.Cycles))
		for _, cycle := range result.Cycles {
			fmt.Print("  ")
			for i, m := range cycle.Modules {
				if i > 0 {
					fmt.Print(" <-> ")
				}
				fmt.Print(string(m))
			}
			fmt.Println()
		}
		fmt.Println()
	}

	if len(violations) == 0 {
		green.Println("✓ No layering violations found")
	} else {
		red.Printf("Summary: %d layering violation(s)\n", len(violations))
	}
}
