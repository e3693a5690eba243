package lower

import (
	"strings"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/sema"
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/types"
)

// emitter holds the state threaded through one lowering pass. Like the
// checker, it never keeps "current scope" as ambient state beyond the
// handful of per-function fields a return/ensures/old(·) rewrite needs;
// those are saved and restored around each function body.
type emitter struct {
	builder  *ast.Builder
	program  *ast.Program
	res      *sema.Result
	reporter diag.Reporter
	opts     Options

	buf    strings.Builder
	indent int
	tmp    int

	// per-function state, valid only while emitting inside a function or
	// method body.
	inEnsureWrap bool
	oldNames     map[ast.ExprID]string
}

// Lower walks program and returns its target-text translation. res supplies
// the type information the checker recorded (the "the lowerer
// treats the symbol table as read-only"); reporter receives a single
// codegen diagnostic if an internal invariant is violated mid-emission
// (the "failure semantics inside lowering"), and the returned
// text is then empty.
func Lower(builder *ast.Builder, program *ast.Program, res *sema.Result, reporter diag.Reporter, opts Options) string {
	e := &emitter{builder: builder, program: program, res: res, reporter: reporter, opts: opts}
	if !e.run() {
		return ""
	}
	return e.buf.String()
}

func (e *emitter) run() (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if e.reporter != nil {
				e.reporter.Report(diag.Diagnostic{
					Phase:    diag.PhaseCodegen,
					Severity: diag.SevError,
					Code:     diag.CodegenInternal,
					Message:  "internal lowering error: " + errString(r),
					Pos:      source.Position{},
				})
			}
			ok = false
		}
	}()
	if e.builder == nil || e.program == nil {
		return true
	}
	e.writePrelude()
	for _, id := range e.program.Decls {
		e.emitDecl(id)
	}
	return true
}

func errString(r any) string {
	if err, ok := r.(error); ok {
		return err.Error()
	}
	return "panic during lowering"
}

// write appends s to the buffer without adding a newline or indentation.
func (e *emitter) write(s string) { e.buf.WriteString(s) }

// line writes one fully-indented, newline-terminated statement line.
func (e *emitter) line(s string) {
	e.buf.WriteString(strings.Repeat("  ", e.indent))
	e.buf.WriteString(s)
	e.buf.WriteByte('\n')
}

func (e *emitter) freshName(base string) string {
	e.tmp++
	return "__" + base + itoa(e.tmp)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := [20]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return string(digits[i:])
}

// capture redirects the emitter's output buffer to a fresh builder for the
// duration of fn, then returns what fn wrote and restores the original
// buffer. Used to turn statement-emission (which always writes lines
// directly) into a string fragment for contexts like a block-as-value IIFE
// body, where the result has to be spliced into a larger expression string.
func (e *emitter) capture(fn func()) string {
	saved := e.buf
	e.buf = strings.Builder{}
	fn()
	out := e.buf.String()
	e.buf = saved
	return out
}

// typeOf looks up the type recorded for a checked expression; NoTypeID if
// this program was never checked (e.g. a standalone lowerer test feeding
// hand-built ast nodes with no accompanying sema.Result).
func (e *emitter) typeOf(id ast.ExprID) types.TypeID {
	if e.res == nil {
		return types.NoTypeID
	}
	return e.res.TypeOf(id)
}
