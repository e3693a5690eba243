package driver

import (
	"strings"
	"testing"

	"github.com/covenant-lang/covenant/internal/lower"
	"github.com/covenant-lang/covenant/internal/source"
)

func TestCheck_NoErrorsForValidSource(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("ok.cov", []byte(`
fn add(a: Int, b: Int) -> Int {
	a + b
}
`))
	res := Check(fs, id)
	if res.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if res.Output != "" {
		t.Fatalf("Check must never lower, got output: %q", res.Output)
	}
	if res.Path != "ok.cov" {
		t.Fatalf("expected path ok.cov, got %q", res.Path)
	}
}

func TestCheck_ReportsErrorsWithoutLowering(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.cov", []byte(`
fn broken() -> Int {
	undeclared_name
}
`))
	res := Check(fs, id)
	if !res.Bag.HasErrors() {
		t.Fatalf("expected an undeclared-name diagnostic")
	}
}

func TestCompile_LowersOnlyWhenCheckingSucceeds(t *testing.T) {
	fs := source.NewFileSet()
	okID := fs.AddVirtual("ok.cov", []byte(`
fn add(a: Int, b: Int) -> Int {
	a + b
}
`))
	ok := Compile(fs, okID, lower.DefaultOptions())
	if ok.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", ok.Bag.Items())
	}
	if !strings.Contains(ok.Output, "function add(") {
		t.Fatalf("expected lowered output, got: %q", ok.Output)
	}

	fs2 := source.NewFileSet()
	badID := fs2.AddVirtual("bad.cov", []byte(`
fn broken() -> Int {
	undeclared_name
}
`))
	bad := Compile(fs2, badID, lower.DefaultOptions())
	if bad.Output != "" {
		t.Fatalf("a failing check must suppress lowering, got: %q", bad.Output)
	}
}
