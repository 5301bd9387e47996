// Package report formats analysis results for humans: a markdown
// violations listing and a colored console summary.
package report

import (
	"fmt"
	"strings"

	"github.com/ritzau/layerlint/pkg/analysis"
)

// BuildViolationsMarkdown renders the violations report. With no
// violations the report still states the rule and says so, so the file
// always reflects the latest run.
func BuildViolationsMarkdown(result *analysis.Result) string {
	var b strings.Builder

	b.WriteString("# Dependency Violations\n\n")
	fmt.Fprintf(&b, "Rule: `%s`.\n\n", result.Rule)

	violations := result.Violations()
	if len(violations) == 0 {
		b.WriteString("No violations found.\n")
		return b.String()
	}

	b.WriteString("| From | To | Files | Evidence |\n")
	b.WriteString("| --- | --- | --- | --- |\n")

	for _, edge := range violations {
		files := make([]string, 0, len(edge.Evidence.Files))
		for _, f := range edge.Evidence.SortedFiles() {
			files = append(files, fmt.Sprintf("`%s`", f))
		}
		statements := make([]string, 0, len(edge.Evidence.Statements))
		for _, s := range edge.Evidence.SortedStatements() {
			statements = append(statements, fmt.Sprintf("`%s`", s))
		}
		fmt.Fprintf(&b, "| `%s` | `%s` | %s | %s |\n",
			edge.Source, edge.Target,
			strings.Join(files, ", "),
			strings.Join(statements, " | "))
	}

	return b.String()
}
