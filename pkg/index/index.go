// Package index derives module identities from file locations in the
// analyzed source tree.
package index

import (
	"path"
	"sort"
	"strings"

	"github.com/ritzau/layerlint/pkg/model"
)

// Index maps source files to module identities. The mapping is
// many-to-one: a directory's mod.rs and its sibling files all share the
// directory's identity namespace.
type Index struct {
	byFile   map[string]model.ModuleID
	byModule map[model.ModuleID]map[string]bool
}

// Build derives the module identity for every file in the tree. Paths
// are slash-separated and relative to the source root (e.g.
// "providers/minimax.rs").
//
// Rules: lib.rs is the library root, not a module, and is excluded;
// mod.rs contributes its containing directory's path; every other file
// contributes its directory path plus its own stem.
func Build(files []string) *Index {
	idx := &Index{
		byFile:   make(map[string]model.ModuleID),
		byModule: make(map[model.ModuleID]map[string]bool),
	}

	for _, file := range files {
		rel := path.Clean(strings.ReplaceAll(file, "\\", "/"))
		name := path.Base(rel)
		if name == "lib.rs" {
			continue
		}

		var parts []string
		if name == "mod.rs" {
			parts = splitDir(path.Dir(rel))
		} else {
			parts = append(splitDir(path.Dir(rel)), strings.TrimSuffix(name, path.Ext(name)))
		}

		module := model.ModuleFromSegments(parts)
		idx.byFile[file] = module
		if idx.byModule[module] == nil {
			idx.byModule[module] = make(map[string]bool)
		}
		idx.byModule[module][file] = true
	}

	return idx
}

// Module returns the identity assigned to file, if any (lib.rs and
// unknown files have none).
func (i *Index) Module(file string) (model.ModuleID, bool) {
	m, ok := i.byFile[file]
	return m, ok
}

// Files returns the sorted set of files owning the given identity.
func (i *Index) Files(module model.ModuleID) []string {
	set := i.byModule[module]
	files := make([]string, 0, len(set))
	for f := range set {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Modules returns all known identities in sorted order.
func (i *Index) Modules() []model.ModuleID {
	modules := make([]model.ModuleID, 0, len(i.byModule))
	for m := range i.byModule {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(a, b int) bool { return modules[a] < modules[b] })
	return modules
}

// ModuleSet returns the known identities as a lookup set for the
// longest-prefix matcher.
func (i *Index) ModuleSet() map[model.ModuleID]bool {
	set := make(map[model.ModuleID]bool, len(i.byModule))
	for m := range i.byModule {
		set[m] = true
	}
	return set
}

// Len returns the number of distinct module identities.
func (i *Index) Len() int {
	return len(i.byModule)
}

func splitDir(dir string) []string {
	if dir == "." || dir == "/" || dir == "" {
		return nil
	}
	return strings.Split(dir, "/")
}
