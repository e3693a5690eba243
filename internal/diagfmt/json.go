package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
)

// PositionJSON is a diagnostic's location in JSON form.
type PositionJSON struct {
	File   string `json:"file"`
	Line   uint32 `json:"line,omitempty"`
	Column uint32 `json:"column,omitempty"`
	Offset uint32 `json:"offset"`
	Length uint32 `json:"length"`
}

// NoteJSON is a secondary diagnostic annotation in JSON form.
type NoteJSON struct {
	Message  string       `json:"message"`
	Position PositionJSON `json:"position"`
}

// DiagnosticJSON is one diagnostic in JSON form.
type DiagnosticJSON struct {
	Phase    string       `json:"phase"`
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Position PositionJSON `json:"position"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the root JSON structure.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

func makePosition(pos source.Position, fs *source.FileSet, mode PathMode, includePositions bool) PositionJSON {
	out := PositionJSON{
		File:   formatPath(fs.Get(pos.File), mode, fs.BaseDir()),
		Offset: pos.Offset,
		Length: pos.Length,
	}
	if includePositions {
		out.Line = pos.Line
		out.Column = pos.Column
	}
	return out
}

// BuildDiagnosticsOutput converts bag to its JSON-serializable shape
// without writing it, so callers can inspect or further process it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	diagnostics := make([]DiagnosticJSON, 0, n)
	for _, d := range items[:n] {
		entry := DiagnosticJSON{
			Phase:    d.Phase.String(),
			Severity: d.Severity.String(),
			Code:     string(d.Code),
			Message:  d.Message,
			Position: makePosition(d.Pos, fs, opts.PathMode, opts.IncludePositions),
		}
		if opts.IncludeNotes && len(d.Notes) > 0 {
			entry.Notes = make([]NoteJSON, len(d.Notes))
			for i, n := range d.Notes {
				entry.Notes[i] = NoteJSON{
					Message:  n.Msg,
					Position: makePosition(n.Pos, fs, opts.PathMode, opts.IncludePositions),
				}
			}
		}
		diagnostics = append(diagnostics, entry)
	}
	errs, warns, _ := bag.CountBySeverity()
	return DiagnosticsOutput{Diagnostics: diagnostics, Errors: errs, Warnings: warns}
}

// JSON writes bag's diagnostics to w as indented JSON.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	output := BuildDiagnosticsOutput(bag, fs, opts)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
