package lower

import (
	"strconv"
	"strings"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/token"
)

// patternTest lowers a pattern into a boolean condition checked against
// subject (a JS expression string naming the value already evaluated into a
// temporary) plus the binding statements its ident/struct/tuple/enum-variant
// sub-patterns introduce. Checks and bindings are kept separate and compose
// by conjunction, per the match-arm lowering rule: a pattern's bindings
// must not be visible to its own guard unless the check already passed, so
// callers always test cond before executing binds.
func (e *emitter) patternTest(pid ast.PatternID, subject string) (cond string, binds []string) {
	p := e.builder.Pattern(pid)
	if p == nil {
		return "true", nil
	}
	switch p.Kind {
	case ast.PatWildcard:
		return "true", nil
	case ast.PatIdentBinding:
		kw := "const"
		if p.Mutable {
			kw = "let"
		}
		return "true", []string{kw + " " + p.Name + " = " + subject + ";"}
	case ast.PatLiteral:
		return subject + " === " + literalPatternJS(p.Literal), nil
	case ast.PatRange:
		op := "<"
		if p.RangeInclusive {
			op = "<="
		}
		return "(" + subject + " >= " + literalPatternJS(p.RangeLow) + " && " + subject + " " + op + " " + literalPatternJS(p.RangeHigh) + ")", nil
	case ast.PatTuple:
		return e.tuplePatternTest(p, subject)
	case ast.PatStruct:
		return e.structPatternTest(p, subject)
	case ast.PatEnumVariant:
		return e.enumPatternTest(p, subject)
	default:
		return "true", nil
	}
}

func (e *emitter) tuplePatternTest(p *ast.Pattern, subject string) (string, []string) {
	conds := []string{}
	var binds []string
	for i, el := range p.Elements {
		c, b := e.patternTest(el, subject+"["+strconv.Itoa(i)+"]")
		if c != "true" {
			conds = append(conds, c)
		}
		binds = append(binds, b...)
	}
	return joinConds(conds), binds
}

func (e *emitter) structPatternTest(p *ast.Pattern, subject string) (string, []string) {
	conds := []string{}
	var binds []string
	for _, f := range p.Fields {
		fieldAccess := subject + "." + f.Name
		if !f.Pattern.IsValid() {
			binds = append(binds, "const "+f.Name+" = "+fieldAccess+";")
			continue
		}
		c, b := e.patternTest(f.Pattern, fieldAccess)
		if c != "true" {
			conds = append(conds, c)
		}
		binds = append(binds, b...)
	}
	return joinConds(conds), binds
}

func (e *emitter) enumPatternTest(p *ast.Pattern, subject string) (string, []string) {
	variant := p.Name
	if i := strings.LastIndex(variant, "::"); i >= 0 {
		variant = variant[i+2:]
	}
	conds := []string{subject + ".tag === " + strconv.Quote(variant)}
	var binds []string
	for i, el := range p.Elements {
		c, b := e.patternTest(el, subject+".fields["+strconv.Itoa(i)+"]")
		if c != "true" {
			conds = append(conds, c)
		}
		binds = append(binds, b...)
	}
	return joinConds(conds), binds
}

func joinConds(conds []string) string {
	if len(conds) == 0 {
		return "true"
	}
	return "(" + strings.Join(conds, " && ") + ")"
}

// literalPatternJS renders a pattern literal's pre-parsed value, dispatching
// on the scanning token kind it was carried in with rather than guessing
// from which field is non-zero — a `false` Bool, a `'\0'` Char, and a `0.0`
// Float all zero out their field and would otherwise be indistinguishable
// from an absent value or an Int 0.
func literalPatternJS(v *token.LiteralValue) string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case token.NilLit:
		return "null"
	case token.StringLit:
		return strconv.Quote(v.String)
	case token.BoolLit:
		if v.Bool {
			return "true"
		}
		return "false"
	case token.FloatLit:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case token.CharLit:
		return strconv.Quote(string(v.Char))
	default:
		return strconv.FormatInt(v.Int, 10)
	}
}
