package parser

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mell-lang/mell/internal/ast"
)

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	program, err := Parse("test.mel", input)
	require.NoError(t, err)
	return program
}

func parseExpr(t *testing.T, input string) ast.Expression {
	t.Helper()
	program := parseProgram(t, input)
	require.Len(t, program.Statements, 1)
	stmt, ok := program.Statements[0].(*ast.ExpressionStatement)
	require.True(t, ok, "statement is %T, want expression", program.Statements[0])
	return stmt.Expression
}

func TestLetStatement(t *testing.T) {
	program := parseProgram(t, "let x = 5")
	require.Len(t, program.Statements, 1)

	let, ok := program.Statements[0].(*ast.LetStatement)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name.Value)
	assert.False(t, let.IsRec)
	assert.Nil(t, let.Annotation)

	lit, ok := let.Value.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, int64(5), lit.Value)
}

func TestLetRecWithAnnotation(t *testing.T) {
	program := parseProgram(t, "let rec f : Int -> Int = fun n -> f n")
	let, ok := program.Statements[0].(*ast.LetStatement)
	require.True(t, ok)
	assert.True(t, let.IsRec)
	require.NotNil(t, let.Annotation)

	fn, ok := let.Annotation.(*ast.FuncType)
	require.True(t, ok)
	param, ok := fn.Param.(*ast.NamedType)
	require.True(t, ok)
	assert.Equal(t, "Int", param.Name)
}

func TestLetInExpression(t *testing.T) {
	expr := parseExpr(t, "let x = 1 in x + 2")
	let, ok := expr.(*ast.LetExpression)
	require.True(t, ok)
	assert.Equal(t, "x", let.Name.Value)

	body, ok := let.Body.(*ast.InfixExpression)
	require.True(t, ok)
	assert.Equal(t, "+", body.Operator)
}

func TestApplicationIsLeftAssociative(t *testing.T) {
	expr := parseExpr(t, "f x y")

	outer, ok := expr.(*ast.CallExpression)
	require.True(t, ok)
	inner, ok := outer.Function.(*ast.CallExpression)
	require.True(t, ok)

	fn, ok := inner.Function.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Value)
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		// operator expected at the root of the tree
		root string
	}{
		{"1 + 2 * 3", "+"},
		{"1 * 2 + 3", "+"},
		{"1 + 2 == 3", "=="},
		{"1 < 2 && 3 < 4", "&&"},
		{"a && b || c", "||"},
		{"1 + 2 % 3", "+"},
	}

	for _, tt := range tests {
		expr := parseExpr(t, tt.input)
		infix, ok := expr.(*ast.InfixExpression)
		require.True(t, ok, "input %s", tt.input)
		assert.Equal(t, tt.root, infix.Operator, "input %s", tt.input)
	}
}

func TestFunctionLiteral(t *testing.T) {
	expr := parseExpr(t, "fun x -> x + 1")
	fn, ok := expr.(*ast.FunctionLiteral)
	require.True(t, ok)
	assert.Equal(t, "x", fn.Param.Value)
	assert.Nil(t, fn.Annotation)
}

func TestFunctionLiteralWithAnnotation(t *testing.T) {
	expr := parseExpr(t, "fun (x: Int) -> x")
	fn, ok := expr.(*ast.FunctionLiteral)
	require.True(t, ok)
	assert.Equal(t, "x", fn.Param.Value)
	require.NotNil(t, fn.Annotation)
}

func TestConstructorApplication(t *testing.T) {
	expr := parseExpr(t, "Pair 1 2")
	ctor, ok := expr.(*ast.ConstructorExpression)
	require.True(t, ok)
	assert.Equal(t, "Pair", ctor.Name)
	assert.Len(t, ctor.Args, 2)
}

func TestBareConstructor(t *testing.T) {
	expr := parseExpr(t, "None")
	ctor, ok := expr.(*ast.ConstructorExpression)
	require.True(t, ok)
	assert.Equal(t, "None", ctor.Name)
	assert.Empty(t, ctor.Args)
}

func TestTupleAndProjection(t *testing.T) {
	expr := parseExpr(t, "(1, true).1")
	proj, ok := expr.(*ast.ProjectionExpression)
	require.True(t, ok)
	assert.Equal(t, 1, proj.Index)

	tuple, ok := proj.Tuple.(*ast.TupleLiteral)
	require.True(t, ok)
	assert.Len(t, tuple.Elements, 2)
}

func TestUnitLiteral(t *testing.T) {
	expr := parseExpr(t, "()")
	_, ok := expr.(*ast.UnitLiteral)
	assert.True(t, ok)
}

func TestRecordLiteralAndAccess(t *testing.T) {
	expr := parseExpr(t, "{x = 1, y = 2}.x")
	member, ok := expr.(*ast.MemberExpression)
	require.True(t, ok)
	assert.Equal(t, "x", member.Field)

	record, ok := member.Left.(*ast.RecordLiteral)
	require.True(t, ok)
	require.Len(t, record.Fields, 2)
	assert.Equal(t, "x", record.Fields[0].Name)
	assert.Equal(t, "y", record.Fields[1].Name)
}

func TestDuplicateRecordField(t *testing.T) {
	_, err := Parse("test.mel", "{x = 1, x = 2}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestArrayLiteralAndIndex(t *testing.T) {
	expr := parseExpr(t, "[|1, 2, 3|][0]")
	index, ok := expr.(*ast.IndexExpression)
	require.True(t, ok)

	arr, ok := index.Left.(*ast.ArrayLiteral)
	require.True(t, ok)
	assert.Len(t, arr.Elements, 3)
}

func TestEmptyArray(t *testing.T) {
	expr := parseExpr(t, "[||]")
	arr, ok := expr.(*ast.ArrayLiteral)
	require.True(t, ok)
	assert.Empty(t, arr.Elements)
}

func TestRefSyntax(t *testing.T) {
	expr := parseExpr(t, "r := !r + 1")
	assign, ok := expr.(*ast.AssignExpression)
	require.True(t, ok)

	_, ok = assign.Target.(*ast.Identifier)
	assert.True(t, ok)

	sum, ok := assign.Value.(*ast.InfixExpression)
	require.True(t, ok)
	_, ok = sum.Left.(*ast.DerefExpression)
	assert.True(t, ok)
}

func TestMatchExpression(t *testing.T) {
	expr := parseExpr(t, `match x with
| Some v -> v
| None -> 0`)
	match, ok := expr.(*ast.MatchExpression)
	require.True(t, ok)
	require.Len(t, match.Arms, 2)

	ctorPat, ok := match.Arms[0].Pattern.(*ast.ConstructorPattern)
	require.True(t, ok)
	assert.Equal(t, "Some", ctorPat.Name)
	require.Len(t, ctorPat.Args, 1)
	_, ok = ctorPat.Args[0].(*ast.IdentifierPattern)
	assert.True(t, ok)
}

func TestRecordPattern(t *testing.T) {
	expr := parseExpr(t, "match p with | {x = a} -> a")
	match, ok := expr.(*ast.MatchExpression)
	require.True(t, ok)

	pat, ok := match.Arms[0].Pattern.(*ast.RecordPattern)
	require.True(t, ok)
	require.Contains(t, pat.Fields, "x")
}

func TestTypeDeclaration(t *testing.T) {
	program := parseProgram(t, "type Option a = Some a | None")
	decl, ok := program.Statements[0].(*ast.TypeDeclaration)
	require.True(t, ok)
	assert.Equal(t, "Option", decl.Name)
	assert.Equal(t, []string{"a"}, decl.Params)
	require.Len(t, decl.Constructors, 2)
	assert.Equal(t, "Some", decl.Constructors[0].Name)
	assert.Len(t, decl.Constructors[0].Args, 1)
	assert.Equal(t, "None", decl.Constructors[1].Name)
	assert.Empty(t, decl.Constructors[1].Args)
}

func TestLoadStatement(t *testing.T) {
	program := parseProgram(t, `load "lib/util"`)
	stmt, ok := program.Statements[0].(*ast.LoadStatement)
	require.True(t, ok)
	assert.Equal(t, "lib/util", stmt.Path)
}

func TestLoadRejectedInExpression(t *testing.T) {
	_, err := Parse("test.mel", `let x = load "y"`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top level")
}

func TestMinInt64Literal(t *testing.T) {
	expr := parseExpr(t, "-9223372036854775808")
	lit, ok := expr.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, int64(math.MinInt64), lit.Value)
}

func TestIntegerLiteralOverflow(t *testing.T) {
	_, err := Parse("test.mel", "9223372036854775808")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "overflows 64 bits")
}

func TestNegationDesugars(t *testing.T) {
	expr := parseExpr(t, "-x")
	infix, ok := expr.(*ast.InfixExpression)
	require.True(t, ok)
	assert.Equal(t, "-", infix.Operator)

	zero, ok := infix.Left.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, int64(0), zero.Value)
}

func TestParseErrorPosition(t *testing.T) {
	_, err := Parse("test.mel", "let = 5")
	require.Error(t, err)
	perr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 1, perr.Line)
}
