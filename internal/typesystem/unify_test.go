package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUnify(t *testing.T, t1, t2 Type) Subst {
	t.Helper()
	s, err := Unify(t1, t2, Subst{}, NewVarSupply())
	require.NoError(t, err)
	return s
}

func TestUnifyIdenticalConstants(t *testing.T) {
	s := mustUnify(t, IntType, IntType)
	assert.Empty(t, s)
}

func TestUnifyConstantMismatch(t *testing.T) {
	_, err := Unify(IntType, BoolType, Subst{}, NewVarSupply())
	require.Error(t, err)
	_, ok := err.(*UnificationError)
	assert.True(t, ok)
}

func TestUnifyVarBindsToConstant(t *testing.T) {
	tests := []struct {
		left, right Type
	}{
		{TVar{ID: 1}, IntType},
		{IntType, TVar{ID: 1}},
	}
	for _, tt := range tests {
		s := mustUnify(t, tt.left, tt.right)
		assert.Equal(t, IntType, TVar{ID: 1}.Apply(s))
	}
}

func TestVarVarBindingIsDeterministic(t *testing.T) {
	// The larger id binds to the smaller one regardless of argument order.
	s := mustUnify(t, TVar{ID: 3}, TVar{ID: 7})
	assert.Equal(t, TVar{ID: 3}, s[7])

	s = mustUnify(t, TVar{ID: 7}, TVar{ID: 3})
	assert.Equal(t, TVar{ID: 3}, s[7])
}

func TestOccursCheck(t *testing.T) {
	fn := TFunc{Param: TVar{ID: 1}, Return: IntType}
	_, err := Unify(TVar{ID: 1}, fn, Subst{}, NewVarSupply())
	require.Error(t, err)
	_, ok := err.(*InfiniteTypeError)
	assert.True(t, ok)
}

func TestUnifyFunctions(t *testing.T) {
	f1 := TFunc{Param: TVar{ID: 1}, Return: TVar{ID: 2}}
	f2 := TFunc{Param: IntType, Return: BoolType}

	s := mustUnify(t, f1, f2)
	assert.Equal(t, IntType, TVar{ID: 1}.Apply(s))
	assert.Equal(t, BoolType, TVar{ID: 2}.Apply(s))
}

func TestUnifyFunctionsPropagatesParamBinding(t *testing.T) {
	// t1 -> t1 against Int -> t2 must force t2 = Int.
	f1 := TFunc{Param: TVar{ID: 1}, Return: TVar{ID: 1}}
	f2 := TFunc{Param: IntType, Return: TVar{ID: 2}}

	s := mustUnify(t, f1, f2)
	assert.Equal(t, IntType, TVar{ID: 2}.Apply(s))
}

func TestUnifyTuples(t *testing.T) {
	t1 := TTuple{Elements: []Type{TVar{ID: 1}, BoolType}}
	t2 := TTuple{Elements: []Type{IntType, TVar{ID: 2}}}

	s := mustUnify(t, t1, t2)
	assert.Equal(t, IntType, TVar{ID: 1}.Apply(s))
	assert.Equal(t, BoolType, TVar{ID: 2}.Apply(s))
}

func TestUnifyTupleArityMismatch(t *testing.T) {
	t1 := TTuple{Elements: []Type{IntType}}
	t2 := TTuple{Elements: []Type{IntType, IntType}}
	_, err := Unify(t1, t2, Subst{}, NewVarSupply())
	assert.Error(t, err)
}

func TestUnifyTypeApplications(t *testing.T) {
	a1 := TApp{Name: "Option", Args: []Type{TVar{ID: 1}}}
	a2 := TApp{Name: "Option", Args: []Type{IntType}}

	s := mustUnify(t, a1, a2)
	assert.Equal(t, IntType, TVar{ID: 1}.Apply(s))

	a3 := TApp{Name: "Result", Args: []Type{IntType}}
	_, err := Unify(a1, a3, Subst{}, NewVarSupply())
	assert.Error(t, err)
}

func TestUnifyRefs(t *testing.T) {
	s := mustUnify(t, TRef{Elem: TVar{ID: 1}}, TRef{Elem: IntType})
	assert.Equal(t, IntType, TVar{ID: 1}.Apply(s))
}

func TestUnifyClosedRecords(t *testing.T) {
	r1 := TRecord{Fields: map[string]Type{"x": TVar{ID: 1}, "y": BoolType}}
	r2 := TRecord{Fields: map[string]Type{"x": IntType, "y": TVar{ID: 2}}}

	s := mustUnify(t, r1, r2)
	assert.Equal(t, IntType, TVar{ID: 1}.Apply(s))
	assert.Equal(t, BoolType, TVar{ID: 2}.Apply(s))
}

func TestUnifyClosedRecordsMissingField(t *testing.T) {
	r1 := TRecord{Fields: map[string]Type{"x": IntType}}
	r2 := TRecord{Fields: map[string]Type{"x": IntType, "y": BoolType}}

	_, err := Unify(r1, r2, Subst{}, NewVarSupply())
	require.Error(t, err)
	_, ok := err.(*MissingFieldsError)
	assert.True(t, ok)
}

func TestUnifyOpenRecordAgainstClosed(t *testing.T) {
	// {x: t1 | row} against {x: Int, y: Bool} binds the row to the rest.
	open := TRecord{Fields: map[string]Type{"x": TVar{ID: 1}}, Row: TVar{ID: 2}}
	closed := TRecord{Fields: map[string]Type{"x": IntType, "y": BoolType}}

	s := mustUnify(t, open, closed)
	assert.Equal(t, IntType, TVar{ID: 1}.Apply(s))

	row, ok := TVar{ID: 2}.Apply(s).(TRecord)
	require.True(t, ok)
	assert.Contains(t, row.Fields, "y")
	assert.NotContains(t, row.Fields, "x")
}

func TestUnifyClosedMissingOpenField(t *testing.T) {
	open := TRecord{Fields: map[string]Type{"z": IntType}, Row: TVar{ID: 1}}
	closed := TRecord{Fields: map[string]Type{"x": IntType}}

	_, err := Unify(open, closed, Subst{}, NewVarSupply())
	assert.Error(t, err)
}

func TestUnifyTwoOpenRecords(t *testing.T) {
	// The rows come from the same supply that Unify draws the fresh
	// shared row from, as they do during inference.
	supply := NewVarSupply()
	row1 := supply.Fresh()
	row2 := supply.Fresh()
	r1 := TRecord{Fields: map[string]Type{"x": IntType}, Row: row1}
	r2 := TRecord{Fields: map[string]Type{"y": BoolType}, Row: row2}

	s, err := Unify(r1, r2, Subst{}, supply)
	require.NoError(t, err)

	// Each original row now accounts for the other record's extra field.
	rec1, ok := row1.Apply(s).(TRecord)
	require.True(t, ok)
	assert.Contains(t, rec1.Fields, "y")

	rec2, ok := row2.Apply(s).(TRecord)
	require.True(t, ok)
	assert.Contains(t, rec2.Fields, "x")
}

func TestUnifyRecordFieldMismatchNamesField(t *testing.T) {
	r1 := TRecord{Fields: map[string]Type{"x": IntType}}
	r2 := TRecord{Fields: map[string]Type{"x": BoolType}}

	_, err := Unify(r1, r2, Subst{}, NewVarSupply())
	require.Error(t, err)
	uerr, ok := err.(*UnificationError)
	require.True(t, ok)
	assert.Contains(t, uerr.Context, "x")
}

func TestComposeAppliesNewerToOlder(t *testing.T) {
	s1 := Subst{1: TVar{ID: 2}}
	s2 := Subst{2: IntType}

	composed := s1.Compose(s2)
	assert.Equal(t, IntType, TVar{ID: 1}.Apply(composed))
	assert.Equal(t, IntType, TVar{ID: 2}.Apply(composed))
}

func TestApplyChasesBindings(t *testing.T) {
	s := Subst{1: TVar{ID: 2}, 2: TVar{ID: 3}, 3: BoolType}
	assert.Equal(t, BoolType, TVar{ID: 1}.Apply(s))
}
