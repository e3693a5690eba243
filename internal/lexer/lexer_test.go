package lexer

import (
	"testing"

	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
	"github.com/covenant-lang/covenant/internal/token"
)

func tokenize(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cov", []byte(src))
	bag := diag.NewBag()
	return Tokenize(fs, id, bag), bag
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestTokenize_TokenTextMatchesSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cov", []byte("fn add(a: Int, b: Int) -> Int { return a + b }"))
	bag := diag.NewBag()
	toks := Tokenize(fs, id, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	f := fs.Get(id)
	for _, tok := range toks {
		if tok.Kind == token.EOF {
			continue
		}
		got := string(f.Content[tok.Pos.Offset:tok.Pos.End()])
		if got != tok.Text {
			t.Fatalf("token %v: slice %q != Text %q", tok.Kind, got, tok.Text)
		}
	}
}

func TestTokenize_MaximalMunch(t *testing.T) {
	cases := []struct {
		src  string
		want []token.Kind
	}{
		{"<<=", []token.Kind{token.Shl, token.Assign, token.EOF}},
		{"<=", []token.Kind{token.LtEq, token.EOF}},
		{"..", []token.Kind{token.DotDot, token.EOF}},
		{"..=", []token.Kind{token.DotDotEq, token.EOF}},
		{"->", []token.Kind{token.Arrow, token.EOF}},
		{"=>", []token.Kind{token.FatArrow, token.EOF}},
		{"-5", []token.Kind{token.Minus, token.IntLit, token.EOF}},
		{"-=", []token.Kind{token.MinusAssign, token.EOF}},
	}
	for _, tc := range cases {
		toks, bag := tokenize(t, tc.src)
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected errors: %+v", tc.src, bag.Items())
		}
		if got := kinds(toks); !kindsEqual(got, tc.want) {
			t.Fatalf("%q: kinds = %v, want %v", tc.src, got, tc.want)
		}
	}
}

func kindsEqual(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTokenize_IntegerBases(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"10", 10},
		{"1_000_000", 1000000},
		{"0xFF", 255},
		{"0b1010", 10},
		{"0o17", 15},
	}
	for _, tc := range cases {
		toks, bag := tokenize(t, tc.src)
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected errors: %+v", tc.src, bag.Items())
		}
		if toks[0].Kind != token.IntLit || toks[0].Literal == nil || toks[0].Literal.Int != tc.want {
			t.Fatalf("%q: got %+v, want IntLit %d", tc.src, toks[0], tc.want)
		}
	}
}

func TestTokenize_FloatLiteral(t *testing.T) {
	toks, bag := tokenize(t, "3.14 2e10 1.5e-3")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	want := []float64{3.14, 2e10, 1.5e-3}
	for i, w := range want {
		if toks[i].Kind != token.FloatLit || toks[i].Literal.Float != w {
			t.Fatalf("token %d: got %+v, want FloatLit %v", i, toks[i], w)
		}
	}
}

func TestTokenize_StringEscapes(t *testing.T) {
	toks, bag := tokenize(t, `"a\nb\tc\x41\u{1F600}"`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	want := "a\nb\tcA\U0001F600"
	if toks[0].Kind != token.StringLit || toks[0].Literal.String != want {
		t.Fatalf("got %+v, want %q", toks[0], want)
	}
}

func TestTokenize_UnterminatedBlockComment(t *testing.T) {
	_, bag := tokenize(t, "/* outer /* inner */ still open")
	if !bag.HasErrors() {
		t.Fatalf("expected an unterminated-comment error")
	}
	if bag.Items()[0].Code != diag.LexUnterminatedComment {
		t.Fatalf("got code %v, want LexUnterminatedComment", bag.Items()[0].Code)
	}
}

func TestTokenize_NestedBlockComment(t *testing.T) {
	toks, bag := tokenize(t, "/* outer /* inner */ still commented */ 42")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if toks[0].Kind != token.IntLit || toks[0].Literal.Int != 42 {
		t.Fatalf("got %+v, want IntLit 42", toks[0])
	}
}

func TestTokenize_UnexpectedCharacter(t *testing.T) {
	toks, bag := tokenize(t, "let x = `")
	if !bag.HasErrors() {
		t.Fatalf("expected an unexpected-character error")
	}
	if bag.Items()[0].Code != diag.LexUnexpectedChar {
		t.Fatalf("got code %v, want LexUnexpectedChar", bag.Items()[0].Code)
	}
	if toks[len(toks)-2].Kind != token.Invalid {
		t.Fatalf("expected a synthetic Invalid token before EOF, got %+v", toks)
	}
}

func TestTokenize_KeywordsAndUnderscore(t *testing.T) {
	toks, bag := tokenize(t, "fn _ requires true false nil")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	want := []token.Kind{token.KwFn, token.Underscore, token.KwRequires, token.BoolLit, token.BoolLit, token.NilLit, token.EOF}
	if got := kinds(toks); !kindsEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}
