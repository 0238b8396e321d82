package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the interface for all types in the system.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeTypeVariables() []TVar
}

// TCon is a primitive type constant: Int, Bool, Char, Float, Unit.
type TCon struct {
	Name string
}

var (
	IntType   = TCon{Name: "Int"}
	BoolType  = TCon{Name: "Bool"}
	CharType  = TCon{Name: "Char"}
	FloatType = TCon{Name: "Float"}
	UnitType  = TCon{Name: "Unit"}
)

func (t TCon) String() string            { return t.Name }
func (t TCon) Apply(s Subst) Type        { return t }
func (t TCon) FreeTypeVariables() []TVar { return nil }

// TVar is a type variable. IDs are unique within one inference run.
type TVar struct {
	ID int
}

func (t TVar) String() string { return fmt.Sprintf("t%d", t.ID) }

func (t TVar) Apply(s Subst) Type {
	return applyVar(t, s, make(map[int]bool))
}

// applyVar chases a variable through the substitution. The visited set
// breaks accidental binding cycles instead of recursing forever.
func applyVar(t TVar, s Subst, visited map[int]bool) Type {
	if visited[t.ID] {
		return t
	}
	replacement, ok := s[t.ID]
	if !ok {
		return t
	}
	if tv, ok := replacement.(TVar); ok {
		if tv.ID == t.ID {
			return t
		}
		visited[t.ID] = true
		return applyVar(tv, s, visited)
	}
	visited[t.ID] = true
	return replacement.Apply(s)
}

func (t TVar) FreeTypeVariables() []TVar { return []TVar{t} }

// TFunc is a single-parameter function type. Multi-parameter functions are
// nested TFuncs (currying).
type TFunc struct {
	Param  Type
	Return Type
}

func (t TFunc) String() string {
	param := t.Param.String()
	if _, ok := t.Param.(TFunc); ok {
		param = "(" + param + ")"
	}
	return fmt.Sprintf("%s -> %s", param, t.Return.String())
}

func (t TFunc) Apply(s Subst) Type {
	return TFunc{Param: t.Param.Apply(s), Return: t.Return.Apply(s)}
}

func (t TFunc) FreeTypeVariables() []TVar {
	vars := t.Param.FreeTypeVariables()
	vars = append(vars, t.Return.FreeTypeVariables()...)
	return uniqueTVars(vars)
}

// TTuple is a tuple type: (Int, Bool).
type TTuple struct {
	Elements []Type
}

func (t TTuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

func (t TTuple) Apply(s Subst) Type {
	elems := make([]Type, len(t.Elements))
	for i, el := range t.Elements {
		elems[i] = el.Apply(s)
	}
	return TTuple{Elements: elems}
}

func (t TTuple) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, el := range t.Elements {
		vars = append(vars, el.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TRecord is a record type. Row, when non-nil, is an open row variable
// standing for unspecified extra fields (row polymorphism).
type TRecord struct {
	Fields map[string]Type
	Row    Type // nil for closed records, otherwise a TVar
}

func (t TRecord) String() string {
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, t.Fields[k].String()))
	}
	if t.Row != nil {
		return fmt.Sprintf("{%s | %s}", strings.Join(parts, ", "), t.Row.String())
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (t TRecord) Apply(s Subst) Type {
	fields := make(map[string]Type, len(t.Fields))
	for k, v := range t.Fields {
		fields[k] = v.Apply(s)
	}
	var row Type
	if t.Row != nil {
		row = t.Row.Apply(s)
		// A row substituted with a record merges into the field set.
		if rec, ok := row.(TRecord); ok {
			for k, v := range rec.Fields {
				if _, exists := fields[k]; !exists {
					fields[k] = v
				}
			}
			row = rec.Row
		}
	}
	return TRecord{Fields: fields, Row: row}
}

func (t TRecord) FreeTypeVariables() []TVar {
	vars := []TVar{}
	keys := make([]string, 0, len(t.Fields))
	for k := range t.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		vars = append(vars, t.Fields[k].FreeTypeVariables()...)
	}
	if t.Row != nil {
		vars = append(vars, t.Row.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TApp is an applied generic type: Option Int, List a.
type TApp struct {
	Name string
	Args []Type
}

func (t TApp) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, arg := range t.Args {
		s := arg.String()
		switch arg.(type) {
		case TFunc, TApp:
			s = "(" + s + ")"
		}
		parts[i] = s
	}
	return fmt.Sprintf("%s %s", t.Name, strings.Join(parts, " "))
}

func (t TApp) Apply(s Subst) Type {
	args := make([]Type, len(t.Args))
	for i, arg := range t.Args {
		args[i] = arg.Apply(s)
	}
	return TApp{Name: t.Name, Args: args}
}

func (t TApp) FreeTypeVariables() []TVar {
	vars := []TVar{}
	for _, arg := range t.Args {
		vars = append(vars, arg.FreeTypeVariables()...)
	}
	return uniqueTVars(vars)
}

// TRef is a mutable reference cell type: Ref Int.
type TRef struct {
	Elem Type
}

func (t TRef) String() string {
	s := t.Elem.String()
	switch t.Elem.(type) {
	case TFunc, TApp, TRef:
		s = "(" + s + ")"
	}
	return fmt.Sprintf("Ref %s", s)
}

func (t TRef) Apply(s Subst) Type        { return TRef{Elem: t.Elem.Apply(s)} }
func (t TRef) FreeTypeVariables() []TVar { return t.Elem.FreeTypeVariables() }

// Subst maps type variable ids to types.
type Subst map[int]Type

// Compose combines two substitutions, applying the newer s2 to the range
// of s1 before merging.
func (s1 Subst) Compose(s2 Subst) Subst {
	subst := Subst{}
	for id, t := range s2 {
		subst[id] = t
	}
	for id, t := range s1 {
		subst[id] = t.Apply(s2)
	}
	return subst
}

func uniqueTVars(vars []TVar) []TVar {
	unique := []TVar{}
	seen := map[int]bool{}
	for _, v := range vars {
		if !seen[v.ID] {
			seen[v.ID] = true
			unique = append(unique, v)
		}
	}
	return unique
}
