package evaluator

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mell-lang/mell/internal/parser"
)

func evalSource(t *testing.T, src string) Object {
	t.Helper()
	program, err := parser.Parse("test.mel", src)
	require.NoError(t, err)

	e := New()
	result, _ := e.EvalProgram(program, NewBaseEnvironment())
	return result
}

func assertInteger(t *testing.T, obj Object, want int64) {
	t.Helper()
	i, ok := obj.(*Integer)
	require.True(t, ok, "object is %T (%s), want *Integer", obj, obj.Inspect())
	assert.Equal(t, want, i.Value)
}

func assertBoolean(t *testing.T, obj Object, want bool) {
	t.Helper()
	b, ok := obj.(*Boolean)
	require.True(t, ok, "object is %T (%s), want *Boolean", obj, obj.Inspect())
	assert.Equal(t, want, b.Value)
}

func assertRuntimeError(t *testing.T, obj Object, kind ErrorKind) *RuntimeError {
	t.Helper()
	err, ok := obj.(*RuntimeError)
	require.True(t, ok, "object is %T (%s), want *RuntimeError", obj, obj.Inspect())
	assert.Equal(t, kind, err.Kind)
	return err
}

func TestIntegerArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"5", 5},
		{"1 + 2 * 3", 7},
		{"(1 + 2) * 3", 9},
		{"10 / 3", 3},
		{"10 % 3", 1},
		{"-5 + 3", -2},
		{"let x = 4 in x * x", 16},
	}
	for _, tt := range tests {
		assertInteger(t, evalSource(t, tt.src), tt.want)
	}
}

func TestDivisionByZero(t *testing.T) {
	assertRuntimeError(t, evalSource(t, "1 / 0"), DivisionByZero)
	assertRuntimeError(t, evalSource(t, "1 % 0"), DivisionByZero)
}

func TestArithmeticOverflow(t *testing.T) {
	tests := []string{
		"9223372036854775807 + 1",
		"-9223372036854775808 - 1",
		"9223372036854775807 * 2",
		"-9223372036854775808 / -1",
		"(-9223372036854775807 - 1) / -1",
	}
	for _, src := range tests {
		result := evalSource(t, src)
		assertRuntimeError(t, result, ArithmeticOverflow)
	}
}

func TestOverflowBoundariesAreExact(t *testing.T) {
	assertInteger(t, evalSource(t, "9223372036854775806 + 1"), 9223372036854775807)
	assertInteger(t, evalSource(t, "-9223372036854775807 - 1"), -9223372036854775808)
}

func TestFloatArithmetic(t *testing.T) {
	result := evalSource(t, "1.5 + 2.25")
	f, ok := result.(*Float)
	require.True(t, ok)
	assert.Equal(t, 3.75, f.Value)
}

func TestBooleanOperators(t *testing.T) {
	assertBoolean(t, evalSource(t, "true && false"), false)
	assertBoolean(t, evalSource(t, "true || false"), true)
	assertBoolean(t, evalSource(t, "not true"), false)
	assertBoolean(t, evalSource(t, "1 < 2 && 2 <= 2"), true)
}

func TestShortCircuit(t *testing.T) {
	// The right side would fail if it ran.
	assertBoolean(t, evalSource(t, "false && (1 / 0 == 0)"), false)
	assertBoolean(t, evalSource(t, "true || (1 / 0 == 0)"), true)
}

func TestStructuralEquality(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"(1, true) == (1, true)", true},
		{"(1, true) == (1, false)", false},
		{"{x = 1, y = 2} == {y = 2, x = 1}", true},
		{"[|1, 2|] == [|1, 2|]", true},
		{"[|1, 2|] == [|1, 3|]", false},
		{"'a' != 'b'", true},
		{"() == ()", true},
	}
	for _, tt := range tests {
		assertBoolean(t, evalSource(t, tt.src), tt.want)
	}
}

func TestFunctionApplication(t *testing.T) {
	assertInteger(t, evalSource(t, "(fun x -> x + 1) 41"), 42)
	// curried application
	assertInteger(t, evalSource(t, "let add = fun x -> fun y -> x + y in add 1 2"), 3)
}

func TestClosuresCaptureDefiningEnvironment(t *testing.T) {
	src := `let x = 10
let addX = fun y -> x + y
let x = 99
addX 1`
	assertInteger(t, evalSource(t, src), 11)
}

func TestSiblingScopesAreIsolated(t *testing.T) {
	src := `let a = let tmp = 1 in tmp
tmp`
	assertRuntimeError(t, evalSource(t, src), UnboundVariable)
}

func TestRecursion(t *testing.T) {
	src := `let rec fact : Int -> Int = fun n ->
  if n <= 1 then 1 else n * fact (n - 1)
fact 10`
	assertInteger(t, evalSource(t, src), 3628800)
}

func TestTailCallsRunInConstantStack(t *testing.T) {
	src := `let rec countdown : Int -> Int = fun n ->
  if n == 0 then 0 else countdown (n - 1)
countdown 1000000`
	assertInteger(t, evalSource(t, src), 0)
}

func TestMutualTailPositions(t *testing.T) {
	// Tail calls through match arms must bounce on the trampoline too.
	src := `type Step = More Int | Done
let rec drain : Int -> Int = fun n ->
  match (if n == 0 then Done else More (n - 1)) with
  | More m -> drain m
  | Done -> n
drain 500000`
	assertInteger(t, evalSource(t, src), 0)
}

func TestTuplesAndProjection(t *testing.T) {
	assertInteger(t, evalSource(t, "(1, (2, 3)).1.0"), 2)
}

func TestRecords(t *testing.T) {
	assertInteger(t, evalSource(t, "{x = 1, y = 2}.y"), 2)

	err := assertRuntimeError(t, evalSource(t, "{x = 1}.z"), FieldNotFound)
	assert.Contains(t, err.Message, "z")
	assert.Contains(t, err.Message, "x")

	assertRuntimeError(t, evalSource(t, "1.x"), RecordExpected)
}

func TestArrays(t *testing.T) {
	assertInteger(t, evalSource(t, "[|10, 20, 30|][2]"), 30)
	assertRuntimeError(t, evalSource(t, "[|1|][5]"), IndexOutOfBounds)
	assertRuntimeError(t, evalSource(t, "[|1|][-1]"), IndexOutOfBounds)
}

func TestDataConstruction(t *testing.T) {
	src := `type Option a = Some a | None
match Some 5 with
| Some v -> v + 1
| None -> 0`
	assertInteger(t, evalSource(t, src), 6)
}

func TestMatchFirstArmWins(t *testing.T) {
	src := `match 5 with
| 5 -> 1
| _ -> 2`
	assertInteger(t, evalSource(t, src), 1)
}

func TestMatchLiteralAndWildcard(t *testing.T) {
	src := `match (3, true) with
| (0, _) -> 0
| (n, true) -> n
| _ -> -1`
	assertInteger(t, evalSource(t, src), 3)
}

func TestPartialRecordPattern(t *testing.T) {
	src := `match {x = 1, y = 2, z = 3} with
| {x = a, z = c} -> a + c`
	assertInteger(t, evalSource(t, src), 4)
}

func TestMatchFailure(t *testing.T) {
	src := `type Color = Red | Green
match Green with
| Red -> 1`
	assertRuntimeError(t, evalSource(t, src), PatternMatchNonExhaustive)
}

func TestReferences(t *testing.T) {
	src := `let r = ref 5
r := !r + 1
!r`
	assertInteger(t, evalSource(t, src), 6)
}

func TestReferenceAliasing(t *testing.T) {
	// s and r are the same cell, writing through one is visible
	// through the other.
	src := `let r = ref 1
let s = r
s := 5
!r`
	assertInteger(t, evalSource(t, src), 5)
}

func TestDistinctRefCellsDoNotAlias(t *testing.T) {
	src := `let r = ref 1
let s = ref 1
s := 5
!r`
	assertInteger(t, evalSource(t, src), 1)
}

func TestRefEqualityIsCellIdentity(t *testing.T) {
	assertBoolean(t, evalSource(t, "let r = ref 1 in r == r"), true)
	assertBoolean(t, evalSource(t, "ref 1 == ref 1"), false)
}

func TestPrintWritesToOut(t *testing.T) {
	program, err := parser.Parse("test.mel", `print (1, true)`)
	require.NoError(t, err)

	var buf bytes.Buffer
	e := New()
	e.Out = &buf
	result, _ := e.EvalProgram(program, NewBaseEnvironment())

	_, ok := result.(*Unit)
	assert.True(t, ok)
	assert.Equal(t, "(1, true)\n", buf.String())
}

func TestBindingOnlyProgramYieldsZero(t *testing.T) {
	assertInteger(t, evalSource(t, "let x = 42"), 0)
}

func TestInspectRendering(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"(1, true, 'a')", "(1, true, 'a')"},
		{"{b = 2, a = 1}", "{a: 1, b: 2}"},
		{"[|1, 2|]", "[|1, 2|] (size: 2)"},
		{"[||]", "[||] (size: 0)"},
		{"ref 5", "ref 5"},
		{"fun x -> x", "<fun>"},
		{"()", "()"},
		{"1.5", "1.5"},
	}
	for _, tt := range tests {
		result := evalSource(t, tt.src)
		require.NotNil(t, result, "source %s", tt.src)
		assert.Equal(t, tt.want, result.Inspect(), "source %s", tt.src)
	}
}

func TestDataInspectRendering(t *testing.T) {
	src := `type Shape = Circle Int Int | Dot
(Circle 1 2, Dot)`
	result := evalSource(t, src)
	assert.Equal(t, "(Circle(1, 2), Dot)", result.Inspect())
}

func TestUnknownConstructor(t *testing.T) {
	assertRuntimeError(t, evalSource(t, "Whatever 1"), UnknownConstructor)
}

func TestConstructorOverApplicationChecked(t *testing.T) {
	src := `type P = Pair Int Int
Pair 1 2 3`
	assertRuntimeError(t, evalSource(t, src), ConstructorArityMismatch)
}

func TestPartialConstructorApplication(t *testing.T) {
	src := `type P = Pair Int Int
let f = Pair 1
match f 2 with
| Pair a b -> a + b`
	assertInteger(t, evalSource(t, src), 3)
}

func TestPartialConstructorSharing(t *testing.T) {
	// Applying the same partial application twice builds two values.
	src := `type P = Pair Int Int
let f = Pair 1
(f 2, f 3)`
	result := evalSource(t, src)
	assert.Equal(t, "(Pair(1, 2), Pair(1, 3))", result.Inspect())
}

func TestFailedProgramKeepsNoConstructors(t *testing.T) {
	e := New()
	env := NewBaseEnvironment()

	program, err := parser.Parse("test.mel", `type Color = Red | Green
1 / 0`)
	require.NoError(t, err)
	result, _ := e.EvalProgram(program, env)
	assertRuntimeError(t, result, DivisionByZero)

	program, err = parser.Parse("test.mel", "Red")
	require.NoError(t, err)
	result, _ = e.EvalProgram(program, env)
	assertRuntimeError(t, result, UnknownConstructor)
}
