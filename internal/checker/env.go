package checker

import (
	"github.com/benbjohnson/immutable"

	"github.com/mell-lang/mell/internal/typesystem"
)

// Scheme is a (possibly) quantified type: let-bound names carry schemes,
// lambda-bound names carry monomorphic ones (empty Vars).
type Scheme struct {
	Vars []int // quantified type variable ids
	Type typesystem.Type
}

// MonoScheme wraps a type with no quantified variables.
func MonoScheme(t typesystem.Type) Scheme {
	return Scheme{Type: t}
}

// TypeEnv is a persistent map from names to schemes. Extension shares
// structure with the parent, so sibling scopes never observe each other.
type TypeEnv struct {
	m *immutable.Map
}

// NewTypeEnv returns an environment seeded with the built-in operator and
// function schemes.
func NewTypeEnv() *TypeEnv {
	env := &TypeEnv{m: immutable.NewMap(nil)}

	boolType := typesystem.BoolType
	boolBinOp := Scheme{Type: typesystem.TFunc{
		Param:  boolType,
		Return: typesystem.TFunc{Param: boolType, Return: boolType},
	}}
	env = env.Extend("&&", boolBinOp)
	env = env.Extend("||", boolBinOp)
	env = env.Extend("not", Scheme{Type: typesystem.TFunc{Param: boolType, Return: boolType}})

	// print : forall a. a -> Unit
	// The quantified id is negative so it can never collide with supply ids.
	printVar := typesystem.TVar{ID: -1}
	env = env.Extend("print", Scheme{
		Vars: []int{-1},
		Type: typesystem.TFunc{Param: printVar, Return: typesystem.UnitType},
	})

	return env
}

// NewEmptyTypeEnv returns an environment with no bindings at all.
func NewEmptyTypeEnv() *TypeEnv {
	return &TypeEnv{m: immutable.NewMap(nil)}
}

func (e *TypeEnv) Extend(name string, s Scheme) *TypeEnv {
	return &TypeEnv{m: e.m.Set(name, s)}
}

func (e *TypeEnv) Lookup(name string) (Scheme, bool) {
	v, ok := e.m.Get(name)
	if !ok {
		return Scheme{}, false
	}
	return v.(Scheme), true
}

// FreeTypeVariables collects the ids free in any scheme of the
// environment, resolved through the substitution. Quantified ids are
// bound, not free.
func (e *TypeEnv) FreeTypeVariables(s typesystem.Subst) map[int]bool {
	free := map[int]bool{}
	itr := e.m.Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		scheme := v.(Scheme)
		bound := map[int]bool{}
		for _, id := range scheme.Vars {
			bound[id] = true
		}
		for _, tv := range scheme.Type.Apply(s).FreeTypeVariables() {
			if !bound[tv.ID] {
				free[tv.ID] = true
			}
		}
	}
	return free
}
