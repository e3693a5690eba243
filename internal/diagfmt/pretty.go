package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
)

var (
	colorError = color.New(color.FgRed, color.Bold)
	colorWarn  = color.New(color.FgYellow, color.Bold)
	colorInfo  = color.New(color.FgCyan, color.Bold)
	colorPath  = color.New(color.Bold)
	colorCaret = color.New(color.FgGreen, color.Bold)
)

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return colorError
	case diag.SevWarning:
		return colorWarn
	default:
		return colorInfo
	}
}

func formatPath(f *source.File, mode PathMode, baseDir string) string {
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		if rel, err := filepath.Rel(baseDir, f.Path); err == nil {
			return filepath.ToSlash(rel)
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
}

// Pretty renders every diagnostic in bag as a compiler-style message:
// `path:line:col: severity code: message`, followed by the offending
// source line and a caret underline sized to the position's byte span,
// followed by any attached notes in the same shape.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnosticLine(w, d.Pos, d.Severity, d.Code, d.Message, fs, opts)
		if d.Pos.File != source.NoFileID {
			writeContext(w, d.Pos, fs, opts)
		}
		if opts.ShowNotes {
			for _, n := range d.Notes {
				writeDiagnosticLine(w, n.Pos, diag.SevInfo, "note", n.Msg, fs, opts)
				if n.Pos.File != source.NoFileID {
					writeContext(w, n.Pos, fs, opts)
				}
			}
		}
	}
}

func writeDiagnosticLine(w io.Writer, pos source.Position, sev diag.Severity, code any, message string, fs *source.FileSet, opts PrettyOpts) {
	path := formatPath(fs.Get(pos.File), opts.PathMode, fs.BaseDir())
	loc := fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Column)
	sevLabel := fmt.Sprintf("%v", sev)
	codeLabel := fmt.Sprintf("%v", code)
	if !opts.Color {
		fmt.Fprintf(w, "%s: %s %s: %s\n", loc, sevLabel, codeLabel, message)
		return
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		colorPath.Sprint(loc),
		severityColor(sev).Sprint(sevLabel),
		codeLabel,
		message,
	)
}

// writeContext prints the source line a position falls on, followed by a
// caret underline. Alignment uses go-runewidth since the bytes preceding
// the span may contain multi-byte, variable-display-width runes (tabs are
// expanded to a single column to keep the underline from drifting).
func writeContext(w io.Writer, pos source.Position, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(pos.File)
	if f == nil {
		return
	}
	line := strings.ReplaceAll(f.Line(pos.Line), "\t", " ")
	if opts.Width > 0 && runewidth.StringWidth(line) > opts.Width {
		line = runewidth.Truncate(line, opts.Width, "...")
	}
	fmt.Fprintf(w, "  %s\n", line)

	col := int(pos.Column)
	if col < 1 {
		col = 1
	}
	prefix := line
	if col-1 < len(line) {
		prefix = line[:col-1]
	}
	indent := runewidth.StringWidth(prefix)
	width := int(pos.Length)
	if width < 1 {
		width = 1
	}
	underline := strings.Repeat("^", width)
	pad := strings.Repeat(" ", indent)
	if opts.Color {
		fmt.Fprintf(w, "  %s%s\n", pad, colorCaret.Sprint(underline))
	} else {
		fmt.Fprintf(w, "  %s%s\n", pad, underline)
	}
}
