package internal_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// corePackages make up the load and geometry pipeline. They must stay usable
// without a terminal.
var corePackages = []string{
	"./decoder",
	"./geom",
	"./mine",
	"./parser",
	"./tunnel",
	"./scene",
	"./topology",
	"./loader",
}

// TestCoreImportRestrictions ensures the pipeline never pulls in UI code
func TestCoreImportRestrictions(t *testing.T) {
	forbiddenPrefixes := []string{
		"mineview/internal/tui",
		"mineview/internal/theme",
		"mineview/internal/metrics", // metrics observes the loader, not the other way round
		"github.com/rivo/tview",
		"github.com/gdamore/tcell",
	}

	for _, dir := range corePackages {
		checkImports(t, dir, nil, forbiddenPrefixes)
	}
}

// TestTUIImportRestrictions ensures the TUI goes through the loader rather
// than the decoding stages directly
func TestTUIImportRestrictions(t *testing.T) {
	allowedPrefixes := []string{
		"mineview/internal/loader",
		"mineview/internal/log",
		"mineview/internal/scene",
		"mineview/internal/theme",
		"mineview/internal/topology",
		"mineview/internal/tui",
	}

	forbiddenPrefixes := []string{
		"mineview/internal/decoder",
		"mineview/internal/parser",
	}

	checkImports(t, "./tui", allowedPrefixes, forbiddenPrefixes)
}

// TestGeometryImportRestrictions keeps tunnel math free of the mine model
func TestGeometryImportRestrictions(t *testing.T) {
	forbiddenPrefixes := []string{
		"mineview/internal/mine",
		"mineview/internal/scene",
	}

	checkImports(t, "./tunnel", nil, forbiddenPrefixes)
	checkImports(t, "./geom", nil, forbiddenPrefixes)
}

// checkImports walks a package directory. Forbidden prefixes apply to every
// import; the allowed list, when given, only constrains module-internal
// imports.
func checkImports(t *testing.T, packageDir string, allowedPrefixes, forbiddenPrefixes []string) {
	err := filepath.Walk(packageDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}

		fset := token.NewFileSet()
		node, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			return nil
		}

		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)

			for _, forbidden := range forbiddenPrefixes {
				if strings.HasPrefix(importPath, forbidden) {
					t.Errorf("FORBIDDEN import in %s: %s", path, importPath)
				}
			}

			if len(allowedPrefixes) == 0 || !strings.HasPrefix(importPath, "mineview/internal") {
				continue
			}
			allowed := false
			for _, prefix := range allowedPrefixes {
				if strings.HasPrefix(importPath, prefix) {
					allowed = true
					break
				}
			}
			if !allowed {
				t.Errorf("DISALLOWED import in %s: %s (not in allowed list)", path, importPath)
			}
		}

		return nil
	})

	if err != nil {
		t.Errorf("Failed to walk directory %s: %v", packageDir, err)
	}
}
