package lower

import (
	"strconv"
	"strings"

	"github.com/covenant-lang/covenant/internal/ast"
)

// emitDecl lowers one top-level declaration, dispatching by kind per
// the per-declaration-kind emission rules.
func (e *emitter) emitDecl(id ast.DeclID) {
	d := e.builder.Decl(id)
	if d == nil {
		return
	}
	switch d.Kind {
	case ast.DeclFunction:
		e.emitFunctionDecl(d)
	case ast.DeclVariable:
		e.emitVariableDecl(d)
	case ast.DeclStruct:
		e.emitStructDecl(d)
	case ast.DeclEnum:
		e.emitEnumDecl(d)
	case ast.DeclImpl:
		e.emitImplDecl(d)
	case ast.DeclEffect:
		e.emitEffectDecl(d)
	case ast.DeclImport:
		e.emitImportDecl(d)
	case ast.DeclExport:
		e.emitExportDecl(d)
	case ast.DeclTrait, ast.DeclContract, ast.DeclIntent, ast.DeclCapability, ast.DeclTypeAlias:
		// Purely static: traits carry no runtime vtable (methods live on the
		// concrete impl that implements them), contracts/intents are
		// annotation lists the checker already consumed, capabilities are
		// name-resolution-only grants, and type aliases have no runtime
		// representation in the target language.
	}
}

func paramNames(params []ast.Param) []string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		if p.Name == "self" {
			continue
		}
		names = append(names, p.Name)
	}
	return names
}

func (e *emitter) emitFunctionDecl(d *ast.Decl) {
	if !d.Body.IsValid() {
		return // signature-only declaration (e.g. an extern binding): nothing to emit
	}
	e.line("function " + d.Name + "(" + strings.Join(paramNames(d.Params), ", ") + ") {")
	e.indent++
	e.functionBody(d)
	e.indent--
	e.line("}")
}

func (e *emitter) emitVariableDecl(d *ast.Decl) {
	kw := "const"
	if d.Mutable {
		kw = "let"
	}
	init := "undefined"
	if d.Init.IsValid() {
		init = e.expr(d.Init)
	}
	e.line(kw + " " + d.Name + " = " + init + ";")
}

// emitStructDecl lowers a struct to a class whose constructor copies each
// named field off a single `fields` argument, so a struct literal lowers to
// `new Name({...})` regardless of field count. Any struct-
// or field-level @invariant runs at the end of construction, after every
// field is in place, matching the checker's own self-binding (
// §4.3 checks invariants against a fully-initialized `self`).
func (e *emitter) emitStructDecl(d *ast.Decl) {
	e.line("class " + d.Name + " {")
	e.indent++
	e.line("constructor(fields) {")
	e.indent++
	for _, f := range d.Fields {
		e.line("this." + f.Name + " = fields." + f.Name + ";")
	}
	if e.opts.emitsGuards() {
		for _, aid := range annotationsOfKind(d.Annotations, ast.AnnInvariant, e.builder) {
			e.line(e.requireEnsureInvariantCall("__invariant", e.builder.Annotation(aid)))
		}
		for _, f := range d.Fields {
			for _, aid := range annotationsOfKind(f.Annotations, ast.AnnInvariant, e.builder) {
				e.line(e.requireEnsureInvariantCall("__invariant", e.builder.Annotation(aid)))
			}
		}
	}
	e.indent--
	e.line("}")
	e.indent--
	e.line("}")
}

// emitEnumDecl lowers an enum to an object of variant-constructor
// functions, every variant (including a zero-field one) callable so
// `Type::Variant(args...)` always lowers to a plain call, and every
// constructed value a uniform `{tag, fields}` record that pattern lowering
// tests and destructures positionally.
func (e *emitter) emitEnumDecl(d *ast.Decl) {
	e.line("const " + d.Name + " = {")
	e.indent++
	for _, v := range d.Variants {
		names := make([]string, len(v.Fields))
		for i := range v.Fields {
			names[i] = "a" + strconv.Itoa(i)
		}
		e.line(v.Name + ": (" + strings.Join(names, ", ") + ") => ({ tag: " + strconv.Quote(v.Name) + ", fields: [" + strings.Join(names, ", ") + "] }),")
	}
	e.indent--
	e.line("};")
}

// emitImplDecl attaches each method onto the implemented type's class
// prototype, the host mechanism a class-based struct lowering gives us for
// free; `self` never appears as an explicit JS parameter since it is
// `this` on the resulting method call.
func (e *emitter) emitImplDecl(d *ast.Decl) {
	target := e.typeExprName(d.ForType)
	if target == "" {
		return
	}
	if e.opts.emitsGuards() {
		for _, aid := range annotationsOfKind(d.Annotations, ast.AnnInvariant, e.builder) {
			ann := e.builder.Annotation(aid)
			e.line(target + ".prototype.__checkInvariant = function() { " + e.requireEnsureInvariantCall("__invariant", ann) + " };")
		}
	}
	for _, mid := range d.ImplMethods {
		md := e.builder.Decl(mid)
		if md == nil || !md.Body.IsValid() {
			continue
		}
		e.line(target + ".prototype." + md.Name + " = function(" + strings.Join(paramNames(md.Params), ", ") + ") {")
		e.indent++
		e.functionBody(md)
		e.indent--
		e.line("};")
	}
}

func (e *emitter) typeExprName(tid ast.TypeID) string {
	t := e.builder.Type(tid)
	if t == nil {
		return ""
	}
	return t.Name
}

// defaultEffectHandlerBody grounds the "IO.read/write get
// default stdio-backed handlers" rule; every other effect operation has no
// way to be implemented generically, so it throws if actually invoked.
func defaultEffectHandlerBody(effectName, opName string, params []ast.Param) string {
	if effectName == "IO" {
		switch opName {
		case "read":
			return "require(\"fs\").readFileSync(0, \"utf-8\")"
		case "write":
			arg := "undefined"
			if len(params) > 0 {
				arg = params[0].Name
			}
			return "(process.stdout.write(String(" + arg + ")), undefined)"
		}
	}
	return "(() => { throw new Error(" + strconv.Quote("unimplemented effect operation "+effectName+"."+opName) + "); })()"
}

func (e *emitter) emitEffectDecl(d *ast.Decl) {
	e.line("const " + d.Name + " = {")
	e.indent++
	for _, op := range d.EffectOps {
		names := paramNames(op.Params)
		e.line(op.Name + ": (" + strings.Join(names, ", ") + ") => " + defaultEffectHandlerBody(d.Name, op.Name, op.Params) + ",")
	}
	e.indent--
	e.line("};")
}

func (e *emitter) emitImportDecl(d *ast.Decl) {
	path := strings.Join(d.ModulePath, "/")
	final := ""
	if len(d.ModulePath) > 0 {
		final = d.ModulePath[len(d.ModulePath)-1]
	}
	if e.opts.Module == ModuleCommonJS {
		if d.Wildcard {
			e.line("const " + final + " = require(" + strconv.Quote(path) + ");")
			return
		}
		items := make([]string, len(d.ImportList))
		for i, it := range d.ImportList {
			if it.Alias != "" {
				items[i] = it.Name + ": " + it.Alias
			} else {
				items[i] = it.Name
			}
		}
		e.line("const { " + strings.Join(items, ", ") + " } = require(" + strconv.Quote(path) + ");")
		return
	}
	if d.Wildcard {
		e.line("import * as " + final + " from " + strconv.Quote(path) + ";")
		return
	}
	items := make([]string, len(d.ImportList))
	for i, it := range d.ImportList {
		if it.Alias != "" {
			items[i] = it.Name + " as " + it.Alias
		} else {
			items[i] = it.Name
		}
	}
	e.line("import { " + strings.Join(items, ", ") + " } from " + strconv.Quote(path) + ";")
}

func (e *emitter) emitExportDecl(d *ast.Decl) {
	inner := e.builder.Decl(d.Inner)
	e.emitDecl(d.Inner)
	if inner == nil || inner.Name == "" {
		return
	}
	if e.opts.Module == ModuleCommonJS {
		e.line("module.exports." + inner.Name + " = " + inner.Name + ";")
		return
	}
	e.line("export { " + inner.Name + " };")
}
