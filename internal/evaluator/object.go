package evaluator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mell-lang/mell/internal/ast"
)

type ObjectType string

const (
	INTEGER_OBJ   = "INTEGER"
	FLOAT_OBJ     = "FLOAT"
	BOOLEAN_OBJ   = "BOOLEAN"
	CHAR_OBJ      = "CHAR"
	UNIT_OBJ      = "UNIT"
	CLOSURE_OBJ   = "CLOSURE"
	BUILTIN_OBJ   = "BUILTIN"
	TUPLE_OBJ     = "TUPLE"
	RECORD_OBJ    = "RECORD"
	DATA_OBJ      = "DATA"
	ARRAY_OBJ     = "ARRAY"
	REFERENCE_OBJ = "REFERENCE"
	ERROR_OBJ     = "ERROR"
	TAIL_CALL_OBJ = "TAIL_CALL"
)

type Object interface {
	Type() ObjectType
	Inspect() string
}

// Integer
type Integer struct {
	Value int64
}

func (i *Integer) Type() ObjectType { return INTEGER_OBJ }
func (i *Integer) Inspect() string  { return fmt.Sprintf("%d", i.Value) }

// Float
type Float struct {
	Value float64
}

func (f *Float) Type() ObjectType { return FLOAT_OBJ }
func (f *Float) Inspect() string  { return fmt.Sprintf("%g", f.Value) }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }

// Char
type Char struct {
	Value rune
}

func (c *Char) Type() ObjectType { return CHAR_OBJ }
func (c *Char) Inspect() string  { return fmt.Sprintf("'%c'", c.Value) }

// Unit
type Unit struct{}

func (u *Unit) Type() ObjectType { return UNIT_OBJ }
func (u *Unit) Inspect() string  { return "()" }

// Closure captures its defining environment. SelfName is set for
// recursive bindings so application can rebind the closure under its
// own name.
type Closure struct {
	Param    string
	Body     ast.Expression
	Env      *Environment
	SelfName string
}

func (c *Closure) Type() ObjectType { return CLOSURE_OBJ }
func (c *Closure) Inspect() string  { return "<fun>" }

// Builtin
type Builtin struct {
	Name string
	Fn   func(e *Evaluator, arg Object) Object
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "<fun>" }

// Tuple
type Tuple struct {
	Elements []Object
}

func (t *Tuple) Type() ObjectType { return TUPLE_OBJ }
func (t *Tuple) Inspect() string {
	parts := make([]string, len(t.Elements))
	for i, el := range t.Elements {
		parts[i] = el.Inspect()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Record
type Record struct {
	Fields map[string]Object
}

func (r *Record) Type() ObjectType { return RECORD_OBJ }
func (r *Record) Inspect() string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + ": " + r.Fields[name].Inspect()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Data is a constructed value of a declared sum type.
type Data struct {
	Ctor string
	Args []Object
}

func (d *Data) Type() ObjectType { return DATA_OBJ }
func (d *Data) Inspect() string {
	if len(d.Args) == 0 {
		return d.Ctor
	}
	parts := make([]string, len(d.Args))
	for i, arg := range d.Args {
		parts[i] = arg.Inspect()
	}
	return d.Ctor + "(" + strings.Join(parts, ", ") + ")"
}

// Array
type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = el.Inspect()
	}
	return fmt.Sprintf("[|%s|] (size: %d)", strings.Join(parts, ", "), len(a.Elements))
}

// Reference is a handle into the evaluator's heap. Two references with
// the same ID alias the same cell.
type Reference struct {
	ID   int
	heap *Heap
}

func (r *Reference) Type() ObjectType { return REFERENCE_OBJ }
func (r *Reference) Inspect() string  { return "ref " + r.heap.Get(r.ID).Inspect() }

// TailCall carries a call found in tail position back to the trampoline
// in applyFunction. It never escapes the evaluator.
type TailCall struct {
	Fn  Object
	Arg Object
}

func (tc *TailCall) Type() ObjectType { return TAIL_CALL_OBJ }
func (tc *TailCall) Inspect() string  { return "<tail call>" }
