package index

import (
	"reflect"
	"testing"

	"github.com/ritzau/layerlint/pkg/model"
)

func TestBuildDerivesIdentities(t *testing.T) {
	idx := Build([]string{
		"lib.rs",
		"transform.rs",
		"types/mod.rs",
		"types/message.rs",
		"providers/shared/http.rs",
	})

	tests := []struct {
		file   string
		module model.ModuleID
	}{
		{"transform.rs", "transform"},
		{"types/mod.rs", "types"},
		{"types/message.rs", "types::message"},
		{"providers/shared/http.rs", "providers::shared::http"},
	}

	for _, tt := range tests {
		module, ok := idx.Module(tt.file)
		if !ok {
			t.Errorf("Expected %s to have a module", tt.file)
			continue
		}
		if module != tt.module {
			t.Errorf("Module(%s) = %s, want %s", tt.file, module, tt.module)
		}
	}
}

func TestBuildExcludesLibraryRoot(t *testing.T) {
	idx := Build([]string{"lib.rs", "stream/mod.rs"})

	if _, ok := idx.Module("lib.rs"); ok {
		t.Error("lib.rs is the library root, not a module")
	}
	if idx.Len() != 1 {
		t.Errorf("Expected 1 module, got %d", idx.Len())
	}
}

func TestBuildManyFilesOneModule(t *testing.T) {
	// A mod.rs and a sibling directory file can share an identity only
	// via the directory-module rule.
	idx := Build([]string{
		"utils/mod.rs",
		"utils.rs",
	})

	if idx.Len() != 1 {
		t.Fatalf("Expected 1 module identity, got %d: %v", idx.Len(), idx.Modules())
	}

	files := idx.Files("utils")
	want := []string{"utils.rs", "utils/mod.rs"}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Files(utils) = %v, want %v", files, want)
	}
}

func TestModulesSorted(t *testing.T) {
	idx := Build([]string{
		"utils/json.rs",
		"providers/minimax.rs",
		"stream/mod.rs",
	})

	modules := idx.Modules()
	want := []model.ModuleID{"providers::minimax", "stream", "utils::json"}
	if !reflect.DeepEqual(modules, want) {
		t.Errorf("Modules() = %v, want %v", modules, want)
	}
}
