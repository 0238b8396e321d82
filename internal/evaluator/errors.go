package evaluator

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorKind tags the runtime failure variants. Callers branch on the
// kind, the message carries the context.
type ErrorKind string

const (
	UnboundVariable           ErrorKind = "UnboundVariable"
	DivisionByZero            ErrorKind = "DivisionByZero"
	ArithmeticOverflow        ErrorKind = "ArithmeticOverflow"
	IndexOutOfBounds          ErrorKind = "IndexOutOfBounds"
	FieldNotFound             ErrorKind = "FieldNotFound"
	RecordExpected            ErrorKind = "RecordExpected"
	UnknownConstructor        ErrorKind = "UnknownConstructor"
	ConstructorArityMismatch  ErrorKind = "ConstructorArityMismatch"
	PatternMatchNonExhaustive ErrorKind = "PatternMatchNonExhaustive"
	LoadError                 ErrorKind = "LoadError"
	TypeMismatch              ErrorKind = "TypeMismatch"
)

// RuntimeError is both an Object (so it can flow through Eval like any
// other value) and an error (so the pipeline can return it).
type RuntimeError struct {
	Kind    ErrorKind
	Message string
}

func (e *RuntimeError) Type() ObjectType { return ERROR_OBJ }
func (e *RuntimeError) Inspect() string  { return "runtime error: " + e.Message }
func (e *RuntimeError) Error() string    { return e.Message }

func newError(kind ErrorKind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func unboundVariableError(name string) *RuntimeError {
	return newError(UnboundVariable, "unbound variable: %s", name)
}

func divisionByZeroError(op string) *RuntimeError {
	return newError(DivisionByZero, "division by zero in %s", op)
}

func overflowError(op string) *RuntimeError {
	return newError(ArithmeticOverflow, "integer overflow in %s", op)
}

func indexOutOfBoundsError(index int64, size int) *RuntimeError {
	return newError(IndexOutOfBounds, "index %d out of bounds for array of size %d", index, size)
}

func fieldNotFoundError(name string, record *Record) *RuntimeError {
	available := make([]string, 0, len(record.Fields))
	for field := range record.Fields {
		available = append(available, field)
	}
	sort.Strings(available)
	return newError(FieldNotFound, "record has no field %s (fields: %s)", name, strings.Join(available, ", "))
}

func matchFailureError(value Object) *RuntimeError {
	return newError(PatternMatchNonExhaustive, "no pattern matched value %s", value.Inspect())
}

func recordExpectedError(obj Object) *RuntimeError {
	return newError(RecordExpected, "field access on %s, want RECORD", obj.Type())
}

func typeMismatchError(format string, args ...interface{}) *RuntimeError {
	return newError(TypeMismatch, format, args...)
}

func isError(obj Object) bool {
	if obj == nil {
		return false
	}
	return obj.Type() == ERROR_OBJ
}
