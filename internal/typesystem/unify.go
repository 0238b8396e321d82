package typesystem

import (
	"sort"
)

// Unify resolves both sides through s, finds a substitution making them
// equal, and returns s extended with it. The supply provides fresh row
// variables when two open records merge, so every variable appearing in
// t1 or t2 must come from the same supply: an id the supply has not
// issued yet can collide with a fresh row and fail the occurs check.
func Unify(t1, t2 Type, s Subst, supply *VarSupply) (Subst, error) {
	delta, err := unify(t1.Apply(s), t2.Apply(s), supply)
	if err != nil {
		return nil, err
	}
	return s.Compose(delta), nil
}

func unify(t1, t2 Type, supply *VarSupply) (Subst, error) {
	switch t1 := t1.(type) {
	case TVar:
		if tv2, ok := t2.(TVar); ok {
			return bindVars(t1, tv2)
		}
		return Bind(t1, t2)

	case TCon:
		switch t2 := t2.(type) {
		case TVar:
			return Bind(t2, t1)
		case TCon:
			if t1.Name == t2.Name {
				return Subst{}, nil
			}
			return nil, &UnificationError{Left: t1, Right: t2}
		default:
			return nil, &UnificationError{Left: t1, Right: t2}
		}

	case TFunc:
		switch t2 := t2.(type) {
		case TVar:
			return Bind(t2, t1)
		case TFunc:
			s1, err := unify(t1.Param, t2.Param, supply)
			if err != nil {
				return nil, err
			}
			s2, err := unify(t1.Return.Apply(s1), t2.Return.Apply(s1), supply)
			if err != nil {
				return nil, err
			}
			return s1.Compose(s2), nil
		default:
			return nil, &UnificationError{Left: t1, Right: t2}
		}

	case TTuple:
		switch t2 := t2.(type) {
		case TVar:
			return Bind(t2, t1)
		case TTuple:
			if len(t1.Elements) != len(t2.Elements) {
				return nil, &UnificationError{Left: t1, Right: t2, Context: "tuple arity mismatch"}
			}
			s := Subst{}
			for i := range t1.Elements {
				s2, err := unify(t1.Elements[i].Apply(s), t2.Elements[i].Apply(s), supply)
				if err != nil {
					return nil, err
				}
				s = s.Compose(s2)
			}
			return s, nil
		default:
			return nil, &UnificationError{Left: t1, Right: t2}
		}

	case TRecord:
		switch t2 := t2.(type) {
		case TVar:
			return Bind(t2, t1)
		case TRecord:
			return unifyRecords(t1, t2, supply)
		default:
			return nil, &UnificationError{Left: t1, Right: t2}
		}

	case TApp:
		switch t2 := t2.(type) {
		case TVar:
			return Bind(t2, t1)
		case TApp:
			if t1.Name != t2.Name || len(t1.Args) != len(t2.Args) {
				return nil, &UnificationError{Left: t1, Right: t2}
			}
			s := Subst{}
			for i := range t1.Args {
				s2, err := unify(t1.Args[i].Apply(s), t2.Args[i].Apply(s), supply)
				if err != nil {
					return nil, err
				}
				s = s.Compose(s2)
			}
			return s, nil
		default:
			return nil, &UnificationError{Left: t1, Right: t2}
		}

	case TRef:
		switch t2 := t2.(type) {
		case TVar:
			return Bind(t2, t1)
		case TRef:
			return unify(t1.Elem, t2.Elem, supply)
		default:
			return nil, &UnificationError{Left: t1, Right: t2}
		}

	default:
		return nil, &UnificationError{Left: t1, Right: t2}
	}
}

// unifyRecords implements row-polymorphic record unification: shared
// fields unify pairwise; leftovers are absorbed by the other side's row
// variable; two open rows merge their leftovers under one fresh row.
func unifyRecords(t1, t2 TRecord, supply *VarSupply) (Subst, error) {
	s := Subst{}

	shared := make([]string, 0, len(t1.Fields))
	for k := range t1.Fields {
		if _, ok := t2.Fields[k]; ok {
			shared = append(shared, k)
		}
	}
	sort.Strings(shared)

	for _, k := range shared {
		s2, err := unify(t1.Fields[k].Apply(s), t2.Fields[k].Apply(s), supply)
		if err != nil {
			if ue, ok := err.(*UnificationError); ok && ue.Context == "" {
				ue.Context = "record field '" + k + "'"
			}
			return nil, err
		}
		s = s.Compose(s2)
	}

	extra1 := leftoverFields(t1, t2, s) // fields only in t1
	extra2 := leftoverFields(t2, t1, s) // fields only in t2

	switch {
	case t1.Row == nil && t2.Row == nil:
		if len(extra1) > 0 {
			return nil, &MissingFieldsError{Fields: fieldNames(extra1), Record: t2}
		}
		if len(extra2) > 0 {
			return nil, &MissingFieldsError{Fields: fieldNames(extra2), Record: t1}
		}
		return s, nil

	case t1.Row != nil && t2.Row == nil:
		// The closed side must carry every field t1 names.
		if len(extra1) > 0 {
			return nil, &MissingFieldsError{Fields: fieldNames(extra1), Record: t2}
		}
		s2, err := unify(t1.Row.Apply(s), TRecord{Fields: extra2}, supply)
		if err != nil {
			return nil, err
		}
		return s.Compose(s2), nil

	case t1.Row == nil && t2.Row != nil:
		if len(extra2) > 0 {
			return nil, &MissingFieldsError{Fields: fieldNames(extra2), Record: t1}
		}
		s2, err := unify(t2.Row.Apply(s), TRecord{Fields: extra1}, supply)
		if err != nil {
			return nil, err
		}
		return s.Compose(s2), nil

	default:
		// Both open: each row absorbs the other side's leftovers, and the
		// remainders share one fresh row.
		row1 := t1.Row.Apply(s)
		row2 := t2.Row.Apply(s)
		if len(extra1) == 0 && len(extra2) == 0 {
			s2, err := unify(row1, row2, supply)
			if err != nil {
				return nil, err
			}
			return s.Compose(s2), nil
		}

		fresh := supply.Fresh()
		s2, err := unify(row1, TRecord{Fields: extra2, Row: fresh}, supply)
		if err != nil {
			return nil, err
		}
		s = s.Compose(s2)

		s3, err := unify(row2.Apply(s), applyFields(TRecord{Fields: extra1, Row: fresh}, s), supply)
		if err != nil {
			return nil, err
		}
		return s.Compose(s3), nil
	}
}

func leftoverFields(a, b TRecord, s Subst) map[string]Type {
	extra := map[string]Type{}
	for k, v := range a.Fields {
		if _, ok := b.Fields[k]; !ok {
			extra[k] = v.Apply(s)
		}
	}
	return extra
}

func fieldNames(fields map[string]Type) []string {
	names := make([]string, 0, len(fields))
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func applyFields(t TRecord, s Subst) TRecord {
	r, _ := t.Apply(s).(TRecord)
	return r
}

// Bind binds a type variable to a type after the occurs check.
func Bind(tv TVar, t Type) (Subst, error) {
	if other, ok := t.(TVar); ok && other.ID == tv.ID {
		return Subst{}, nil
	}
	if OccursCheck(tv, t) {
		return nil, &InfiniteTypeError{Var: tv, Type: t}
	}
	return Subst{tv.ID: t}, nil
}

// bindVars orders a variable-variable binding deterministically: the
// variable with the larger id is bound to the one with the smaller id.
func bindVars(a, b TVar) (Subst, error) {
	if a.ID == b.ID {
		return Subst{}, nil
	}
	if a.ID > b.ID {
		return Subst{a.ID: b}, nil
	}
	return Subst{b.ID: a}, nil
}

// OccursCheck reports whether tv appears free in t.
func OccursCheck(tv TVar, t Type) bool {
	for _, v := range t.FreeTypeVariables() {
		if v.ID == tv.ID {
			return true
		}
	}
	return false
}
