// Package driver orchestrates the full scanner -> tree builder ->
// resolver/checker -> lowerer pipeline over a single file,
// exposing the two shapes the CLI needs: a diagnostics-only Check and a
// full Compile that also lowers to target text when checking found no
// errors.
package driver

import (
	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/lower"
	"github.com/covenant-lang/covenant/internal/parser"
	"github.com/covenant-lang/covenant/internal/sema"
	"github.com/covenant-lang/covenant/internal/source"
)

// Result is everything one file's run through the pipeline produced.
type Result struct {
	Path    string
	Program ast.Program
	Builder *ast.Builder
	Sema    *sema.Result
	Output  string // lowered target text; empty unless Compile succeeded with no errors
	Bag     *diag.Bag
}

// Check runs the scanner, tree builder, and resolver/checker over one
// file, skipping the lowerer entirely — the `covenant check` subcommand's
// contract (diagnostics only, never target text).
func Check(fs *source.FileSet, fileID source.FileID) Result {
	bag := diag.NewBag()
	builder := ast.NewBuilder(ast.Hints{})
	pres := parser.ParseFile(fs, fileID, builder, parser.Options{Reporter: bag})
	res := sema.Check(builder, &pres.Program, sema.Options{Reporter: bag})
	return Result{Path: filePath(fs, fileID), Program: pres.Program, Builder: builder, Sema: res, Bag: bag}
}

// Compile runs the whole pipeline over one file, lowering to target text
// (per opts) only if checking produced no errors ("the
// lowerer never runs over a program the checker rejected").
func Compile(fs *source.FileSet, fileID source.FileID, opts lower.Options) Result {
	bag := diag.NewBag()
	builder := ast.NewBuilder(ast.Hints{})
	pres := parser.ParseFile(fs, fileID, builder, parser.Options{Reporter: bag})
	res := sema.Check(builder, &pres.Program, sema.Options{Reporter: bag})
	var out string
	if !bag.HasErrors() {
		out = lower.Lower(builder, &pres.Program, res, bag, opts)
	}
	return Result{Path: filePath(fs, fileID), Program: pres.Program, Builder: builder, Sema: res, Output: out, Bag: bag}
}

func filePath(fs *source.FileSet, fileID source.FileID) string {
	f := fs.Get(fileID)
	if f == nil {
		return ""
	}
	return f.Path
}
