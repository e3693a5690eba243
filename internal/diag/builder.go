package diag

import "github.com/covenant-lang/covenant/internal/source"

// Report is a convenience wrapper that builds and emits a Diagnostic in one
// call, used by stages that don't need to attach notes.
func Report(r Reporter, phase Phase, sev Severity, code Code, pos source.Position, msg string) {
	if r == nil {
		return
	}
	r.Report(Diagnostic{Phase: phase, Severity: sev, Code: code, Message: msg, Pos: pos})
}

// ReportWithNote is Report plus a single secondary note, used for
// "see also" / "declared here" annotations.
func ReportWithNote(r Reporter, phase Phase, sev Severity, code Code, pos source.Position, msg string, notePos source.Position, noteMsg string) {
	if r == nil {
		return
	}
	r.Report(Diagnostic{
		Phase: phase, Severity: sev, Code: code, Message: msg, Pos: pos,
		Notes: []Note{{Pos: notePos, Msg: noteMsg}},
	})
}
