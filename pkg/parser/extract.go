// Package parser isolates import declarations in raw source text and
// expands their grouped path syntax into flat segment paths. It covers
// only the import-declaration subset of the grammar, nothing more.
package parser

import (
	"regexp"
	"strings"

	"github.com/ritzau/layerlint/pkg/model"
)

var (
	// Block comments don't nest; line comments run to end of line.
	commentRE = regexp.MustCompile(`(?s)/\*.*?\*/|//[^\n]*`)

	// A whole import declaration: optional visibility modifier, the use
	// keyword, then everything up to the statement terminator.
	useRE = regexp.MustCompile(`(?m)^\s*(?:pub(?:\s*\([^)]*\))?\s+)?use\s+[^;]+;`)

	visRE   = regexp.MustCompile(`^pub(?:\s*\([^)]*\))?\s+`)
	aliasRE = regexp.MustCompile(`\s+as\s+[A-Za-z_][A-Za-z0-9_]*`)
)

// StripComments removes block and line comments from source text.
func StripComments(text string) string {
	return commentRE.ReplaceAllString(text, "")
}

// ExtractImports returns every import declaration in the given source
// text as a raw text span, in order of appearance. Comments are
// stripped first so commented-out imports don't count.
func ExtractImports(text string) []string {
	return useRE.FindAllString(StripComments(text), -1)
}

// Normalize reduces a raw declaration to its path-expression body:
// visibility modifier, use keyword, terminator, and rename clauses are
// stripped. Aliases don't affect the dependency target.
func Normalize(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	stmt = visRE.ReplaceAllString(stmt, "")
	stmt = strings.TrimPrefix(stmt, "use ")
	stmt = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stmt), ";"))
	return aliasRE.ReplaceAllString(stmt, "")
}

// Compress collapses all whitespace runs to single spaces. Used to make
// multi-line declarations readable as one-line evidence text.
func Compress(stmt string) string {
	return strings.Join(strings.Fields(stmt), " ")
}

// ParseStatement runs the full per-declaration pipeline: normalize,
// tokenize, and expand into flat segment paths.
func ParseStatement(raw string) model.ImportStatement {
	tokens := Tokenize(Normalize(raw))
	return model.ImportStatement{
		Text:  Compress(raw),
		Paths: ParseTree(tokens),
	}
}
