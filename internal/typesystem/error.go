package typesystem

import (
	"fmt"
	"strings"
)

// The type-time error taxonomy. Identity is carried by the concrete error
// type; the message is attached context. The first failure aborts an
// inference pass.

// UnificationError indicates two types that cannot be made equal.
type UnificationError struct {
	Left    Type
	Right   Type
	Context string // optional, e.g. "record field 'x'"
}

func (e *UnificationError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("cannot unify %s with %s (%s)", e.Left, e.Right, e.Context)
	}
	return fmt.Sprintf("cannot unify %s with %s", e.Left, e.Right)
}

// InfiniteTypeError is an occurs-check failure: binding the variable would
// produce a cyclic type.
type InfiniteTypeError struct {
	Var  TVar
	Type Type
}

func (e *InfiniteTypeError) Error() string {
	return fmt.Sprintf("infinite type: %s occurs in %s", e.Var, e.Type)
}

// UnboundVariableError indicates a name with no binding in scope.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound variable: %s", e.Name)
}

// ConstructorArityError indicates a constructor applied to the wrong
// number of arguments.
type ConstructorArityError struct {
	Name     string
	Expected int
	Actual   int
}

func (e *ConstructorArityError) Error() string {
	return fmt.Sprintf("constructor %s expects %d argument(s), got %d", e.Name, e.Expected, e.Actual)
}

// RecursionAnnotationError indicates a recursive binding without an
// explicit type annotation. Fixpoint inference is deliberately
// unsupported; the evaluator still runs such functions.
type RecursionAnnotationError struct {
	Name string
}

func (e *RecursionAnnotationError) Error() string {
	return fmt.Sprintf("recursive function %s requires a type annotation", e.Name)
}

// UnknownTypeError indicates an annotation naming a type that is not
// declared in scope.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type: %s", e.Name)
}

// ProjectionRangeError indicates a tuple projection beyond the declared
// length, which is a static error.
type ProjectionRangeError struct {
	Index int
	Arity int
}

func (e *ProjectionRangeError) Error() string {
	return fmt.Sprintf("projection .%d out of range for %d-tuple", e.Index, e.Arity)
}

// MissingFieldsError reports fields required from a closed record that it
// does not carry.
type MissingFieldsError struct {
	Fields []string
	Record Type
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("record %s is missing fields: %s", e.Record, strings.Join(e.Fields, ", "))
}
