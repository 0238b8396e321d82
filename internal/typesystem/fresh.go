package typesystem

// VarSupply hands out type variables with ids unique within one inference
// run. Unification draws fresh row variables from the same supply as the
// checker, so ids never collide.
type VarSupply struct {
	next int
}

func NewVarSupply() *VarSupply {
	return &VarSupply{next: 1}
}

func (v *VarSupply) Fresh() TVar {
	tv := TVar{ID: v.next}
	v.next++
	return tv
}
