package diag

import (
	"testing"

	"github.com/covenant-lang/covenant/internal/source"
)

func TestBag_HasErrorsAndCounts(t *testing.T) {
	b := NewBag()
	Report(b, PhaseLexer, SevWarning, WarnBranchMismatch, source.Position{}, "branches differ")
	if b.HasErrors() {
		t.Fatalf("HasErrors() = true with only a warning")
	}
	Report(b, PhaseAnalyzer, SevError, TypeMismatch, source.Position{}, "cannot assign Int to Bool")
	if !b.HasErrors() {
		t.Fatalf("HasErrors() = false after reporting an error")
	}
	errs, warns, infos := b.CountBySeverity()
	if errs != 1 || warns != 1 || infos != 0 {
		t.Fatalf("CountBySeverity() = %d,%d,%d want 1,1,0", errs, warns, infos)
	}
}

func TestBag_Merge_PreservesOrder(t *testing.T) {
	first := NewBag()
	Report(first, PhaseLexer, SevError, LexBadNumber, source.Position{}, "bad number")
	second := NewBag()
	Report(second, PhaseParser, SevError, SynUnexpectedToken, source.Position{}, "unexpected token")

	first.Merge(second)
	items := first.Items()
	if len(items) != 2 {
		t.Fatalf("len(Items()) = %d, want 2", len(items))
	}
	if items[0].Phase != PhaseLexer || items[1].Phase != PhaseParser {
		t.Fatalf("Merge did not preserve pipeline order: %+v", items)
	}
}
