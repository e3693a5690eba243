package sema

import (
	"testing"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/parser"
	"github.com/covenant-lang/covenant/internal/source"
)

// check parses src and runs the checker over it, returning the Result and
// the diagnostics the pipeline accumulated.
func check(t *testing.T, src string) (*Result, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cov", []byte(src))
	bag := diag.NewBag()
	builder := ast.NewBuilder(ast.Hints{})
	pres := parser.ParseFile(fs, id, builder, parser.Options{Reporter: bag})
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %+v", bag.Items())
	}
	res := Check(builder, &pres.Program, Options{Reporter: bag})
	return res, bag
}

func requireNoErrors(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func requireErrorCode(t *testing.T, bag *diag.Bag, code diag.Code) {
	t.Helper()
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected diagnostic %v, got: %+v", code, bag.Items())
}

func TestCheck_SimpleFunction(t *testing.T) {
	src := `
fn add(a: Int, b: Int) -> Int {
	a + b
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_RequiresEnsuresPass(t *testing.T) {
	src := `
@requires b != 0
@ensures result >= 0
fn divide(a: Int, b: Int) -> Int {
	a / b
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_RequiresNonBoolIsError(t *testing.T) {
	src := `
@requires a
fn f(a: Int) -> Int {
	a
}
`
	_, bag := check(t, src)
	requireErrorCode(t, bag, diag.TypeNotBoolean)
}

func TestCheck_ResultOnlyInContract(t *testing.T) {
	src := `
fn f(a: Int) -> Int {
	result
}
`
	_, bag := check(t, src)
	requireErrorCode(t, bag, diag.NameUndefined)
}

func TestCheck_ForwardReferenceToLaterStruct(t *testing.T) {
	src := `
struct Wrapper {
	inner: Point,
}

struct Point {
	x: Int,
	y: Int,
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_StructLiteralFieldTypes(t *testing.T) {
	src := `
struct Point {
	x: Int,
	y: Int,
}

fn origin() -> Point {
	Point { x: 0, y: 0 }
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_StructLiteralMissingFieldIsError(t *testing.T) {
	src := `
struct Point {
	x: Int,
	y: Int,
}

fn origin() -> Point {
	Point { x: 0 }
}
`
	_, bag := check(t, src)
	requireErrorCode(t, bag, diag.TypeArity)
}

func TestCheck_StructLiteralUnknownFieldIsError(t *testing.T) {
	src := `
struct Point {
	x: Int,
}

fn origin() -> Point {
	Point { x: 0, z: 1 }
}
`
	_, bag := check(t, src)
	requireErrorCode(t, bag, diag.TypeUnknownField)
}

func TestCheck_EnumVariantConstructor(t *testing.T) {
	src := `
enum Shape {
	Circle(Float64),
	Square(Float64),
}

fn circle(r: Float64) -> Shape {
	Shape::Circle(r)
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_MatchOverEnumBindsVariantFields(t *testing.T) {
	src := `
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
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_MatchArmDivergenceIsWarningNotError(t *testing.T) {
	src := `
enum Shape {
	Circle(Float64),
	Square(Float64),
}

fn describe(s: Shape) -> String {
	match s {
		Shape::Circle(r) => "circle",
		Shape::Square(side) => 1,
	}
}
`
	res, bag := check(t, src)
	_ = res
	if bag.HasErrors() {
		t.Fatalf("expected a warning, not an error: %+v", bag.Items())
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.WarnBranchMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected WarnBranchMismatch, got %+v", bag.Items())
	}
}

func TestCheck_ForInOverArrayInfersElementType(t *testing.T) {
	src := `
fn sumAll(xs: [Int]) -> Int {
	let mut total: Int = 0;
	for x in xs {
		total = total + x;
	}
	total
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_AssignToImmutableIsError(t *testing.T) {
	src := `
fn f() -> Int {
	let x: Int = 1;
	x = 2;
	x
}
`
	_, bag := check(t, src)
	requireErrorCode(t, bag, diag.TypeNotMutable)
}

func TestCheck_TryRequiresResultReturn(t *testing.T) {
	src := `
fn parse(s: String) -> Int {
	let n: Result<Int, String> = divide(1, 0);
	n?
}

fn divide(a: Int, b: Int) -> Result<Int, String> {
	Ok(a)
}
`
	_, bag := check(t, src)
	requireErrorCode(t, bag, diag.ContractTryNotResult)
}

func TestCheck_EffectOnPureFnIsError(t *testing.T) {
	src := `
@effect[IO]
pure fn f() -> Void {
}
`
	_, bag := check(t, src)
	requireErrorCode(t, bag, diag.EffectOnPureFn)
}

func TestCheck_CapabilityCallOutsideEffectSetIsError(t *testing.T) {
	src := `
effect IO {
	fn read() -> String;
}

fn f() -> String {
	IO.read()
}
`
	_, bag := check(t, src)
	requireErrorCode(t, bag, diag.EffectMissing)
}

func TestCheck_StructInvariantChecksAgainstSelf(t *testing.T) {
	src := `
@invariant self.balance >= 0
struct Account {
	balance: Int,
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_OkConstructsResult(t *testing.T) {
	src := `
fn divide(a: Int, b: Int) -> Result<Int, String> {
	Ok(a)
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_SomeConstructsOption(t *testing.T) {
	src := `
fn first(xs: [Int]) -> Int? {
	Some(xs[0])
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_EmptyArrayLiteralAssignsToTypedArray(t *testing.T) {
	src := `
fn empty() -> [Int] {
	let xs: [Int] = [];
	xs
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}

func TestCheck_ImplMethodsSeeSelf(t *testing.T) {
	src := `
struct Account {
	balance: Int,
}

impl Account {
	fn balance(self) -> Int {
		self.balance
	}
}
`
	_, bag := check(t, src)
	requireNoErrors(t, bag)
}
