package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
)

func TestPrettyPlainIncludesLocationAndMessage(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cov", []byte("fn f() -> Int {\n\ta\n}"))
	bag := diag.NewBag()
	bag.Report(diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.NameUndefined,
		Message:  `undefined name "a"`,
		Pos:      fs.Position(id, 17, 1),
	})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	out := buf.String()

	if !strings.Contains(out, "t.cov:2:2") {
		t.Errorf("expected location t.cov:2:2 in output, got:\n%s", out)
	}
	if !strings.Contains(out, "undefined name") {
		t.Errorf("expected message in output, got:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected a caret underline, got:\n%s", out)
	}
}

func TestPrettyNoColorOmitsEscapeCodes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cov", []byte("a"))
	bag := diag.NewBag()
	bag.Report(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.WarnBranchMismatch, Message: "m", Pos: fs.Position(id, 0, 1)})

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Color: false})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("expected no ANSI escape codes without Color, got:\n%q", buf.String())
	}
}
