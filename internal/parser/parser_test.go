package parser

import (
	"testing"

	"github.com/covenant-lang/covenant/internal/ast"
	"github.com/covenant-lang/covenant/internal/diag"
	"github.com/covenant-lang/covenant/internal/source"
)

func parse(t *testing.T, src string) (Result, *ast.Builder, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.cov", []byte(src))
	bag := diag.NewBag()
	builder := ast.NewBuilder(ast.Hints{})
	res := ParseFile(fs, id, builder, Options{Reporter: bag})
	return res, builder, bag
}

func requireNoErrors(t *testing.T, bag *diag.Bag) {
	t.Helper()
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func TestParse_FunctionWithRequiresAndEffect(t *testing.T) {
	src := `
@requires b != 0
fn divide(a: Int, b: Int) -> Int {
	a / b
}
`
	res, builder, bag := parse(t, src)
	requireNoErrors(t, bag)
	if len(res.Program.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(res.Program.Decls))
	}
	decl := builder.Decl(res.Program.Decls[0])
	if decl.Kind != ast.DeclFunction || decl.Name != "divide" {
		t.Fatalf("unexpected decl: %+v", decl)
	}
	if len(decl.Annotations) != 1 {
		t.Fatalf("expected 1 annotation, got %d", len(decl.Annotations))
	}
	ann := builder.Annotation(decl.Annotations[0])
	if ann.Kind != ast.AnnRequires {
		t.Fatalf("expected AnnRequires, got %v", ann.Kind)
	}
	body := builder.Expr(decl.Body)
	if body.Kind != ast.ExprBlock || !body.Tail.IsValid() {
		t.Fatalf("expected block with tail expr, got %+v", body)
	}
}

func TestParse_StructWithInvariantAndMethods(t *testing.T) {
	src := `
struct Account {
	balance: Int,
}

@invariant self.balance >= 0
impl Account {
	fn deposit(mut self, amount: Int) -> Void {
		self.balance = self.balance + amount;
	}
}
`
	res, _, bag := parse(t, src)
	requireNoErrors(t, bag)
	if len(res.Program.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(res.Program.Decls))
	}
}

func TestParse_SortedForallEnsures(t *testing.T) {
	src := `
@ensures forall i: Int in 0..len(result): result[i] <= result[i + 1]
fn sorted(xs: [Int]) -> [Int] {
	xs
}
`
	res, builder, bag := parse(t, src)
	requireNoErrors(t, bag)
	decl := builder.Decl(res.Program.Decls[0])
	ann := builder.Annotation(decl.Annotations[0])
	if ann.Kind != ast.AnnEnsures {
		t.Fatalf("expected AnnEnsures, got %v", ann.Kind)
	}
	predExpr := builder.Expr(ann.Expr)
	if predExpr.Kind != ast.ExprForall {
		t.Fatalf("expected ExprForall, got %v", predExpr.Kind)
	}
}

func TestParse_EffectDisciplineDeclarations(t *testing.T) {
	src := `
effect Logging {
	fn log(msg: String) -> Void;
}

@effect[Logging]
fn warn(msg: String) -> Void {
	log(msg);
}
`
	res, builder, bag := parse(t, src)
	requireNoErrors(t, bag)
	if len(res.Program.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(res.Program.Decls))
	}
	effectDecl := builder.Decl(res.Program.Decls[0])
	if effectDecl.Kind != ast.DeclEffect || len(effectDecl.EffectOps) != 1 {
		t.Fatalf("unexpected effect decl: %+v", effectDecl)
	}
	fnDecl := builder.Decl(res.Program.Decls[1])
	ann := builder.Annotation(fnDecl.Annotations[0])
	if ann.Kind != ast.AnnEffectSet || len(ann.Effects) != 1 || ann.Effects[0] != "Logging" {
		t.Fatalf("unexpected effect annotation: %+v", ann)
	}
}

func TestParse_TryPropagation(t *testing.T) {
	src := `
fn parseAndDouble(s: String) -> Result<Int, String> {
	let n = parseInt(s)?;
	Ok(n * 2)
}
`
	res, builder, bag := parse(t, src)
	requireNoErrors(t, bag)
	decl := builder.Decl(res.Program.Decls[0])
	body := builder.Expr(decl.Body)
	if len(body.Stmts) != 1 {
		t.Fatalf("expected 1 statement before tail, got %d", len(body.Stmts))
	}
	letStmt := builder.Stmt(body.Stmts[0])
	if letStmt.Kind != ast.StmtLet {
		t.Fatalf("expected StmtLet, got %v", letStmt.Kind)
	}
	initExpr := builder.Expr(letStmt.Init)
	if initExpr.Kind != ast.ExprTry {
		t.Fatalf("expected ExprTry, got %v", initExpr.Kind)
	}
}

func TestParse_QuantifiedEnsuresWithOld(t *testing.T) {
	src := `
@ensures self.balance == old(self.balance) + amount
fn credit(mut self, amount: Int) -> Void {
	self.balance = self.balance + amount;
}
`
	res, builder, bag := parse(t, src)
	requireNoErrors(t, bag)
	decl := builder.Decl(res.Program.Decls[0])
	ann := builder.Annotation(decl.Annotations[0])
	eq := builder.Expr(ann.Expr)
	if eq.Kind != ast.ExprBinary || eq.Op != "==" {
		t.Fatalf("expected top-level == comparison, got %+v", eq)
	}
	rhs := builder.Expr(eq.Right)
	if rhs.Kind != ast.ExprBinary || rhs.Op != "+" {
		t.Fatalf("expected rhs '+' expr, got %+v", rhs)
	}
	oldExpr := builder.Expr(rhs.Left)
	if oldExpr.Kind != ast.ExprOld {
		t.Fatalf("expected ExprOld, got %v", oldExpr.Kind)
	}
}

func TestParse_MatchWithEnumPatternsAndGuards(t *testing.T) {
	src := `
enum Shape {
	Circle(Float64),
	Rect(Float64, Float64),
}

fn area(s: Shape) -> Float64 {
	match s {
		Shape::Circle(r) if r > 0.0 => r * r,
		Shape::Rect(w, h) => w * h,
		_ => 0.0,
	}
}
`
	res, builder, bag := parse(t, src)
	requireNoErrors(t, bag)
	fnDecl := builder.Decl(res.Program.Decls[1])
	body := builder.Expr(fnDecl.Body)
	matchExpr := builder.Expr(body.Tail)
	if matchExpr.Kind != ast.ExprMatch {
		t.Fatalf("expected ExprMatch, got %v", matchExpr.Kind)
	}
	if len(matchExpr.Arms) != 3 {
		t.Fatalf("expected 3 arms, got %d", len(matchExpr.Arms))
	}
	if !matchExpr.Arms[0].Guard.IsValid() {
		t.Fatalf("expected first arm to have a guard")
	}
}

func TestParse_ImportVariants(t *testing.T) {
	res, builder, bag := parse(t, `import std.collections.{Map, Set as SetT};`)
	requireNoErrors(t, bag)
	decl := builder.Decl(res.Program.Decls[0])
	if decl.Kind != ast.DeclImport || len(decl.ImportList) != 2 {
		t.Fatalf("unexpected import decl: %+v", decl)
	}
	if decl.ImportList[1].Alias != "SetT" {
		t.Fatalf("expected alias SetT, got %q", decl.ImportList[1].Alias)
	}
}

func TestParse_SyntaxErrorRecoversToNextDecl(t *testing.T) {
	src := `
fn broken( -> Int {
}

fn ok() -> Int {
	1
}
`
	res, builder, bag := parse(t, src)
	if !bag.HasErrors() {
		t.Fatalf("expected a syntax error to be reported")
	}
	found := false
	for _, id := range res.Program.Decls {
		d := builder.Decl(id)
		if d.Name == "ok" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected parser to recover and still parse the following declaration")
	}
}
