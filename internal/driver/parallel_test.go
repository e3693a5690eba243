package driver

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/covenant-lang/covenant/internal/lower"
)

func writeSourceFile(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestCompileDir_CompilesEveryFileIndependently(t *testing.T) {
	dir := t.TempDir()
	writeSourceFile(t, dir, "a.cov", `
fn a() -> Int { 1 }
`)
	writeSourceFile(t, dir, "b.cov", `
fn b() -> Int { 2 }
`)
	writeSourceFile(t, dir, "notes.txt", "not a source file")

	fs, results, err := CompileDir(context.Background(), dir, lower.DefaultOptions(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 source files compiled, got %d", len(results))
	}
	if fs == nil {
		t.Fatalf("expected a non-nil file set")
	}

	var names []string
	for _, r := range results {
		if r.Bag.HasErrors() {
			t.Fatalf("unexpected diagnostics for %s: %+v", r.Path, r.Bag.Items())
		}
		names = append(names, filepath.Base(r.Path))
	}
	sort.Strings(names)
	if names[0] != "a.cov" || names[1] != "b.cov" {
		t.Fatalf("expected a.cov and b.cov, got %v", names)
	}
}

func TestCheckDir_EmptyDirectoryProducesNoResults(t *testing.T) {
	dir := t.TempDir()
	fs, results, err := CheckDir(context.Background(), dir, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results for an empty directory, got %d", len(results))
	}
	if fs == nil {
		t.Fatalf("expected a non-nil file set even for an empty directory")
	}
}

func TestCheckDir_SurfacesErrorsPerFile(t *testing.T) {
	dir := t.TempDir()
	writeSourceFile(t, dir, "bad.cov", `
fn broken() -> Int {
	undeclared_name
}
`)
	_, results, err := CheckDir(context.Background(), dir, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Bag.HasErrors() {
		t.Fatalf("expected the undeclared-name diagnostic to surface")
	}
}
