package lower

import (
	"strings"
	"testing"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/parser"
	"github.com/covenant-lang/covenant/internal/sema"
	"github.com/covenant-lang/covenant/internal/source"
)

func lowerSrc(t *testing.T, src string, opts Options) (string, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cov", []byte(src))
	bag := diag.NewBag()
	builder := ast.NewBuilder(ast.Hints{})
	pres := parser.ParseFile(fs, id, builder, parser.Options{Reporter: bag})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", bag.Items())
	}
	res := sema.Check(builder, &pres.Program, sema.Options{Reporter: bag})
	if bag.HasErrors() {
		t.Fatalf("unexpected check errors: %+v", bag.Items())
	}
	out := Lower(builder, &pres.Program, res, bag, opts)
	return out, bag
}

func TestLower_SimpleFunction(t *testing.T) {
	out, bag := lowerSrc(t, `
fn add(a: Int, b: Int) -> Int {
	a + b
}
`, DefaultOptions())
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	if !strings.Contains(out, "function add(a, b)") {
		t.Fatalf("expected a function declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "return (a + b);") {
		t.Fatalf("expected the body's tail expression to be returned, got:\n%s", out)
	}
}

func TestLower_EnsuresWrapsReturn(t *testing.T) {
	out, bag := lowerSrc(t, `
@ensures result >= 0
fn abs(x: Int) -> Int {
	if x < 0 {
		0 - x
	} else {
		x
	}
}
`, DefaultOptions())
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	if !strings.Contains(out, "__ensureReturn") {
		t.Fatalf("expected an ensures wrapper closure, got:\n%s", out)
	}
	if !strings.Contains(out, "__ensures(") {
		t.Fatalf("expected an __ensures guard call, got:\n%s", out)
	}
}

func TestLower_EnsuresOmittedWhenTrusted(t *testing.T) {
	opts := DefaultOptions()
	opts.Verify = VerifyTrusted
	out, bag := lowerSrc(t, `
@ensures result >= 0
fn abs(x: Int) -> Int {
	x
}
`, opts)
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	if strings.Contains(out, "__ensureReturn") {
		t.Fatalf("trusted verify level must not emit ensures wrapping, got:\n%s", out)
	}
}

func TestLower_StructBecomesClassWithInvariant(t *testing.T) {
	out, bag := lowerSrc(t, `
@invariant self.balance >= 0
struct Account {
	balance: Int,
}
`, DefaultOptions())
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	if !strings.Contains(out, "class Account {") {
		t.Fatalf("expected a class declaration, got:\n%s", out)
	}
	if !strings.Contains(out, "this.balance = fields.balance;") {
		t.Fatalf("expected the constructor to copy fields, got:\n%s", out)
	}
	if !strings.Contains(out, "__invariant((this.balance >= 0)") {
		t.Fatalf("expected an invariant guard in the constructor, got:\n%s", out)
	}
}

func TestLower_EnumVariantConstructor(t *testing.T) {
	out, bag := lowerSrc(t, `
enum Shape {
	Circle(Float64),
	Square(Float64),
}

fn circle(r: Float64) -> Shape {
	Shape::Circle(r)
}
`, DefaultOptions())
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	if !strings.Contains(out, "const Shape = {") {
		t.Fatalf("expected an enum factory object, got:\n%s", out)
	}
	if !strings.Contains(out, "Shape.Circle(r)") {
		t.Fatalf("expected a plain member call for variant construction, got:\n%s", out)
	}
}

func TestLower_MatchOverEnumLowersToTaggedTest(t *testing.T) {
	out, bag := lowerSrc(t, `
enum Shape {
	Circle(Float64),
	Square(Float64),
}

fn area(s: Shape) -> Float64 {
	match s {
		Shape::Circle(r) => r * r,
		Shape::Square(side) => side * side,
	}
}
`, DefaultOptions())
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	if !strings.Contains(out, `.tag === "Circle"`) {
		t.Fatalf("expected a tag test for the Circle arm, got:\n%s", out)
	}
	if !strings.Contains(out, ".fields[0]") {
		t.Fatalf("expected positional field destructuring, got:\n%s", out)
	}
}

func TestLower_RequiresGuardsFunctionEntry(t *testing.T) {
	out, bag := lowerSrc(t, `
@requires b != 0
fn divide(a: Int, b: Int) -> Int {
	a / b
}
`, DefaultOptions())
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	if !strings.Contains(out, "__requires((b != 0)") {
		t.Fatalf("expected a __requires guard call before the body, got:\n%s", out)
	}
	reqIdx := strings.Index(out, "__requires((b != 0)")
	bodyIdx := strings.Index(out, "a / b")
	if reqIdx == -1 || bodyIdx == -1 || reqIdx > bodyIdx {
		t.Fatalf("expected the requires check to precede the body, got:\n%s", out)
	}
}

func TestLower_RequiresOmittedWhenTrusted(t *testing.T) {
	opts := DefaultOptions()
	opts.Verify = VerifyTrusted
	out, bag := lowerSrc(t, `
@requires b != 0
fn divide(a: Int, b: Int) -> Int {
	a / b
}
`, opts)
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	if strings.Contains(out, "__requires(") {
		t.Fatalf("trusted verify level must not emit requires guards, got:\n%s", out)
	}
}

func TestLower_MatchStatementThrowsWhenNoArmMatches(t *testing.T) {
	out, bag := lowerSrc(t, `
enum Shape {
	Circle(Float64),
	Square(Float64),
}

fn describe(s: Shape) {
	match s {
		Shape::Circle(r) => {
			r;
		},
	}
	return;
}
`, DefaultOptions())
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	throwIdx := strings.Index(out, `throw new Error("no match arm matched")`)
	lastBreakIdx := strings.LastIndex(out, "break ")
	if throwIdx == -1 {
		t.Fatalf("expected a non-exhaustive match statement to throw, got:\n%s", out)
	}
	if lastBreakIdx != -1 && throwIdx < lastBreakIdx {
		t.Fatalf("expected the throw to be the loop's final fallthrough, got:\n%s", out)
	}
}

func TestLower_BoolLiteralPatternMatchesFalse(t *testing.T) {
	out, bag := lowerSrc(t, `
fn describe(flag: Bool) -> Int {
	match flag {
		false => 0,
		true => 1,
	}
}
`, DefaultOptions())
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	if !strings.Contains(out, "=== false") {
		t.Fatalf("expected a literal `false` pattern to test against false, got:\n%s", out)
	}
	if strings.Contains(out, "=== 0) { return 0") {
		t.Fatalf("the false-pattern arm must not collapse to an Int 0 test, got:\n%s", out)
	}
}

func TestLower_NoGuardsOmitsContractPrelude(t *testing.T) {
	opts := DefaultOptions()
	opts.RuntimeContracts = false
	out, bag := lowerSrc(t, `
fn id(x: Int) -> Int {
	x
}
`, opts)
	if bag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %+v", bag.Items())
	}
	if strings.Contains(out, "__contractFail") {
		t.Fatalf("contracts disabled must not emit the guard prelude, got:\n%s", out)
	}
	if !strings.Contains(out, "function Ok(value)") {
		t.Fatalf("the core Result/Option prelude must still be emitted, got:\n%s", out)
	}
}
