package model

import (
	"sort"
	"strings"
)

// PathSep joins the segments of a module identity (Rust-style "a::b::c").
const PathSep = "::"

// ModuleID is a fully-qualified module identity: the ordered name
// segments of the module's location in the source tree, joined by "::".
// Identities are derived purely from file location, never from
// declarations inside a file.
type ModuleID string

// ModuleFromSegments builds a ModuleID from its ordered segments.
func ModuleFromSegments(segments []string) ModuleID {
	return ModuleID(strings.Join(segments, PathSep))
}

// Segments splits the identity back into its ordered name segments.
func (m ModuleID) Segments() []string {
	if m == "" {
		return nil
	}
	return strings.Split(string(m), PathSep)
}

// TopLevel returns the first segment of the identity. The top-level
// segment alone determines which layer (if any) a module belongs to.
func (m ModuleID) TopLevel() string {
	s := string(m)
	if idx := strings.Index(s, PathSep); idx != -1 {
		return s[:idx]
	}
	return s
}

// SegmentKind discriminates plain identifiers from the reserved path
// markers, so resolution logic can switch exhaustively instead of
// comparing magic strings.
type SegmentKind uint8

const (
	SegmentIdent    SegmentKind = iota // plain identifier
	SegmentRoot                        // "crate": absolute from the tree root
	SegmentParent                      // "super": parent of the current module
	SegmentSelf                        // "self": the current module
	SegmentWildcard                    // "*": everything in the target module
)

// Segment is one element of a parsed import path.
type Segment struct {
	Kind SegmentKind
	Name string // set only for SegmentIdent
}

// Ident returns a plain-identifier segment.
func Ident(name string) Segment {
	return Segment{Kind: SegmentIdent, Name: name}
}

// Root, Parent, Self and Wildcard are the reserved marker segments.
var (
	Root     = Segment{Kind: SegmentRoot}
	Parent   = Segment{Kind: SegmentParent}
	Self     = Segment{Kind: SegmentSelf}
	Wildcard = Segment{Kind: SegmentWildcard}
)

// Path is an ordered sequence of segments denoting a location in the
// module namespace, either absolute or relative to the importing module.
type Path []Segment

// String renders the path for logs and debugging.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		switch seg.Kind {
		case SegmentRoot:
			parts[i] = "crate"
		case SegmentParent:
			parts[i] = "super"
		case SegmentSelf:
			parts[i] = "self"
		case SegmentWildcard:
			parts[i] = "*"
		default:
			parts[i] = seg.Name
		}
	}
	return strings.Join(parts, PathSep)
}

// ImportStatement is the normalized text of one import declaration plus
// the flat paths it expands to. Statements are transient: produced and
// consumed per file while edges accumulate.
type ImportStatement struct {
	Text  string // normalized declaration text, used as evidence
	Paths []Path
}

// Classification labels an edge under the layering rule.
type Classification string

const (
	Conforming   Classification = "conforming"   // source rank <= target rank
	Violating    Classification = "violating"    // source rank > target rank
	Inapplicable Classification = "inapplicable" // a side has no registered layer
)

// Label returns the short form used in DOT output and reports.
func (c Classification) Label() string {
	switch c {
	case Conforming:
		return "ok"
	case Violating:
		return "violation"
	default:
		return "n/a"
	}
}

// Evidence is the set of normalized statement texts and file paths that
// justify an edge's existence. Both sets only grow; merging is a
// commutative set union, so accumulation order across files never
// affects the result.
type Evidence struct {
	Statements map[string]bool `json:"-"`
	Files      map[string]bool `json:"-"`
}

// NewEvidence returns an empty evidence set.
func NewEvidence() *Evidence {
	return &Evidence{
		Statements: make(map[string]bool),
		Files:      make(map[string]bool),
	}
}

// Add records one occurrence of the dependency.
func (e *Evidence) Add(statement, file string) {
	e.Statements[statement] = true
	e.Files[file] = true
}

// Merge unions other into e.
func (e *Evidence) Merge(other *Evidence) {
	for stmt := range other.Statements {
		e.Statements[stmt] = true
	}
	for file := range other.Files {
		e.Files[file] = true
	}
}

// SortedStatements returns the statement texts in sorted order.
func (e *Evidence) SortedStatements() []string {
	return sortedKeys(e.Statements)
}

// SortedFiles returns the file paths in sorted order.
func (e *Evidence) SortedFiles() []string {
	return sortedKeys(e.Files)
}

// Edge is a directed dependency between two distinct modules with its
// classification and accumulated evidence.
type Edge struct {
	Source         ModuleID       `json:"source"`
	Target         ModuleID       `json:"target"`
	Classification Classification `json:"classification"`
	Evidence       *Evidence      `json:"-"`
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
