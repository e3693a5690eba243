package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
)

func TestJSONBasic(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cov", []byte("fn f() -> Int {\n\ta\n}"))
	bag := diag.NewBag()
	bag.Report(diag.Diagnostic{
		Phase:    diag.PhaseAnalyzer,
		Severity: diag.SevError,
		Code:     diag.NameUndefined,
		Message:  `undefined name "a"`,
		Pos:      fs.Position(id, 17, 1),
	})

	var buf bytes.Buffer
	opts := JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, buf.String())
	}
	if len(out.Diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(out.Diagnostics))
	}
	got := out.Diagnostics[0]
	if got.Code != string(diag.NameUndefined) {
		t.Errorf("Code = %q, want %q", got.Code, diag.NameUndefined)
	}
	if got.Position.File != "t.cov" {
		t.Errorf("File = %q, want basename t.cov", got.Position.File)
	}
	if got.Position.Line != 2 {
		t.Errorf("Line = %d, want 2", got.Position.Line)
	}
	if out.Errors != 1 || out.Warnings != 0 {
		t.Errorf("Errors/Warnings = %d/%d, want 1/0", out.Errors, out.Warnings)
	}
}

func TestJSONMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cov", []byte("x"))
	bag := diag.NewBag()
	for i := 0; i < 5; i++ {
		bag.Report(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.WarnBranchMismatch, Message: "m", Pos: fs.Position(id, 0, 1)})
	}

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{Max: 2}); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics after Max truncation, got %d", len(out.Diagnostics))
	}
}
