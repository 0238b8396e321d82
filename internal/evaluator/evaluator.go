package evaluator

import (
	"io"
	"os"

	"github.com/mell-lang/mell/internal/ast"
)

var unit = &Unit{}

// ModuleLoader resolves load paths to parsed source units.
type ModuleLoader interface {
	Load(path string) (*ast.Program, error)
}

type Evaluator struct {
	Out    io.Writer
	Loader ModuleLoader
	Heap   *Heap

	// constructor name -> arity, populated from type declarations
	ctors map[string]int
}

func New() *Evaluator {
	return &Evaluator{
		Out:   os.Stdout,
		Heap:  NewHeap(),
		ctors: make(map[string]int),
	}
}

// EvalProgram runs a source unit and returns the value of its trailing
// expression together with the extended environment. A unit ending on a
// binding yields 0. A unit that fails keeps none of its constructor
// registrations, so a REPL session reusing the evaluator rolls failed
// lines back wholly.
func (e *Evaluator) EvalProgram(program *ast.Program, env *Environment) (Object, *Environment) {
	ctors := make(map[string]int, len(e.ctors))
	for name, arity := range e.ctors {
		ctors[name] = arity
	}

	result, extended := e.evalProgram(program, env)
	if isError(result) {
		e.ctors = ctors
		return result, env
	}
	return result, extended
}

func (e *Evaluator) evalProgram(program *ast.Program, env *Environment) (Object, *Environment) {
	var last Object = &Integer{Value: 0}

	for _, stmt := range program.Statements {
		switch stmt := stmt.(type) {
		case *ast.LetStatement:
			val := e.evalLetBinding(stmt.Name.Value, stmt.Value, stmt.IsRec, env)
			if isError(val) {
				return val, env
			}
			env = env.Extend(stmt.Name.Value, val)
			last = &Integer{Value: 0}

		case *ast.TypeDeclaration:
			for _, ctor := range stmt.Constructors {
				e.ctors[ctor.Name] = len(ctor.Args)
			}
			last = &Integer{Value: 0}

		case *ast.LoadStatement:
			if e.Loader == nil {
				return newError(LoadError, "cannot load %q: no loader configured", stmt.Path), env
			}
			loaded, err := e.Loader.Load(stmt.Path)
			if err != nil {
				return newError(LoadError, "load %q: %s", stmt.Path, err), env
			}
			result, extended := e.evalProgram(loaded, env)
			if isError(result) {
				return result, env
			}
			env = extended
			last = &Integer{Value: 0}

		case *ast.ExpressionStatement:
			val := e.Eval(stmt.Expression, env)
			if isError(val) {
				return val, env
			}
			last = val

		default:
			return typeMismatchError("unsupported statement %T", stmt), env
		}
	}

	return last, env
}

func (e *Evaluator) Eval(expr ast.Expression, env *Environment) Object {
	switch expr := expr.(type) {
	case *ast.IntegerLiteral:
		return &Integer{Value: expr.Value}
	case *ast.FloatLiteral:
		return &Float{Value: expr.Value}
	case *ast.BooleanLiteral:
		return &Boolean{Value: expr.Value}
	case *ast.CharLiteral:
		return &Char{Value: expr.Value}
	case *ast.UnitLiteral:
		return unit

	case *ast.Identifier:
		val, ok := env.Get(expr.Value)
		if !ok {
			return unboundVariableError(expr.Value)
		}
		return val

	case *ast.FunctionLiteral:
		return &Closure{Param: expr.Param.Value, Body: expr.Body, Env: env}

	case *ast.CallExpression:
		fn := e.Eval(expr.Function, env)
		if isError(fn) {
			return fn
		}
		arg := e.Eval(expr.Argument, env)
		if isError(arg) {
			return arg
		}
		return e.applyFunction(fn, arg)

	case *ast.LetExpression:
		val := e.evalLetBinding(expr.Name.Value, expr.Value, expr.IsRec, env)
		if isError(val) {
			return val
		}
		return e.Eval(expr.Body, env.Extend(expr.Name.Value, val))

	case *ast.IfExpression:
		cond := e.Eval(expr.Condition, env)
		if isError(cond) {
			return cond
		}
		b, ok := cond.(*Boolean)
		if !ok {
			return typeMismatchError("if condition is %s, want BOOLEAN", cond.Type())
		}
		if b.Value {
			return e.Eval(expr.Consequence, env)
		}
		return e.Eval(expr.Alternative, env)

	case *ast.InfixExpression:
		return e.evalInfix(expr, env)

	case *ast.TupleLiteral:
		elems := make([]Object, len(expr.Elements))
		for i, el := range expr.Elements {
			val := e.Eval(el, env)
			if isError(val) {
				return val
			}
			elems[i] = val
		}
		return &Tuple{Elements: elems}

	case *ast.ProjectionExpression:
		val := e.Eval(expr.Tuple, env)
		if isError(val) {
			return val
		}
		tuple, ok := val.(*Tuple)
		if !ok {
			return typeMismatchError("projection on %s, want TUPLE", val.Type())
		}
		if expr.Index >= len(tuple.Elements) {
			return indexOutOfBoundsError(int64(expr.Index), len(tuple.Elements))
		}
		return tuple.Elements[expr.Index]

	case *ast.RecordLiteral:
		fields := make(map[string]Object, len(expr.Fields))
		for _, field := range expr.Fields {
			val := e.Eval(field.Value, env)
			if isError(val) {
				return val
			}
			fields[field.Name] = val
		}
		return &Record{Fields: fields}

	case *ast.MemberExpression:
		val := e.Eval(expr.Left, env)
		if isError(val) {
			return val
		}
		record, ok := val.(*Record)
		if !ok {
			return recordExpectedError(val)
		}
		field, ok := record.Fields[expr.Field]
		if !ok {
			return fieldNotFoundError(expr.Field, record)
		}
		return field

	case *ast.ArrayLiteral:
		elems := make([]Object, len(expr.Elements))
		for i, el := range expr.Elements {
			val := e.Eval(el, env)
			if isError(val) {
				return val
			}
			elems[i] = val
		}
		return &Array{Elements: elems}

	case *ast.IndexExpression:
		left := e.Eval(expr.Left, env)
		if isError(left) {
			return left
		}
		index := e.Eval(expr.Index, env)
		if isError(index) {
			return index
		}
		arr, ok := left.(*Array)
		if !ok {
			return typeMismatchError("indexing %s, want ARRAY", left.Type())
		}
		i, ok := index.(*Integer)
		if !ok {
			return typeMismatchError("array index is %s, want INTEGER", index.Type())
		}
		if i.Value < 0 || i.Value >= int64(len(arr.Elements)) {
			return indexOutOfBoundsError(i.Value, len(arr.Elements))
		}
		return arr.Elements[i.Value]

	case *ast.ConstructorExpression:
		arity, ok := e.ctors[expr.Name]
		if !ok {
			return newError(UnknownConstructor, "unknown constructor: %s", expr.Name)
		}
		if len(expr.Args) > arity {
			return newError(ConstructorArityMismatch, "constructor %s takes %d arguments, got %d",
				expr.Name, arity, len(expr.Args))
		}
		args := make([]Object, len(expr.Args))
		for i, arg := range expr.Args {
			val := e.Eval(arg, env)
			if isError(val) {
				return val
			}
			args[i] = val
		}
		if len(args) < arity {
			return ctorFunction(expr.Name, arity, args)
		}
		return &Data{Ctor: expr.Name, Args: args}

	case *ast.MatchExpression:
		return e.evalMatch(expr, env, e.Eval)

	case *ast.RefExpression:
		val := e.Eval(expr.Value, env)
		if isError(val) {
			return val
		}
		id := e.Heap.Alloc(val)
		return &Reference{ID: id, heap: e.Heap}

	case *ast.DerefExpression:
		val := e.Eval(expr.Value, env)
		if isError(val) {
			return val
		}
		ref, ok := val.(*Reference)
		if !ok {
			return typeMismatchError("dereferencing %s, want REFERENCE", val.Type())
		}
		return e.Heap.Get(ref.ID)

	case *ast.AssignExpression:
		target := e.Eval(expr.Target, env)
		if isError(target) {
			return target
		}
		ref, ok := target.(*Reference)
		if !ok {
			return typeMismatchError("assignment to %s, want REFERENCE", target.Type())
		}
		val := e.Eval(expr.Value, env)
		if isError(val) {
			return val
		}
		e.Heap.Set(ref.ID, val)
		return unit

	default:
		return typeMismatchError("unsupported expression %T", expr)
	}
}

// evalLetBinding evaluates the right-hand side of a binding. A recursive
// function binding produces a closure that knows its own name so the
// trampoline can rebind it on self-application.
func (e *Evaluator) evalLetBinding(name string, value ast.Expression, isRec bool, env *Environment) Object {
	if isRec {
		if fn, ok := value.(*ast.FunctionLiteral); ok {
			return &Closure{Param: fn.Param.Value, Body: fn.Body, Env: env, SelfName: name}
		}
	}
	return e.Eval(value, env)
}

func (e *Evaluator) evalMatch(expr *ast.MatchExpression, env *Environment, evalBody func(ast.Expression, *Environment) Object) Object {
	scrutinee := e.Eval(expr.Scrutinee, env)
	if isError(scrutinee) {
		return scrutinee
	}
	for _, arm := range expr.Arms {
		armEnv, ok := e.matchPattern(arm.Pattern, scrutinee, env)
		if !ok {
			continue
		}
		return evalBody(arm.Body, armEnv)
	}
	return matchFailureError(scrutinee)
}

func (e *Evaluator) evalInfix(expr *ast.InfixExpression, env *Environment) Object {
	// Logical operators short-circuit: the right operand only runs when
	// the left one does not decide the result.
	if expr.Operator == "&&" || expr.Operator == "||" {
		left := e.Eval(expr.Left, env)
		if isError(left) {
			return left
		}
		lb, ok := left.(*Boolean)
		if !ok {
			return typeMismatchError("operand of %s is %s, want BOOLEAN", expr.Operator, left.Type())
		}
		if expr.Operator == "&&" && !lb.Value {
			return &Boolean{Value: false}
		}
		if expr.Operator == "||" && lb.Value {
			return &Boolean{Value: true}
		}
		right := e.Eval(expr.Right, env)
		if isError(right) {
			return right
		}
		rb, ok := right.(*Boolean)
		if !ok {
			return typeMismatchError("operand of %s is %s, want BOOLEAN", expr.Operator, right.Type())
		}
		return &Boolean{Value: rb.Value}
	}

	left := e.Eval(expr.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(expr.Right, env)
	if isError(right) {
		return right
	}

	switch expr.Operator {
	case "==":
		eq, err := objectsEqual(left, right)
		if err != nil {
			return err
		}
		return &Boolean{Value: eq}
	case "!=":
		eq, err := objectsEqual(left, right)
		if err != nil {
			return err
		}
		return &Boolean{Value: !eq}
	}

	switch l := left.(type) {
	case *Integer:
		r, ok := right.(*Integer)
		if !ok {
			return typeMismatchError("operands of %s are %s and %s", expr.Operator, left.Type(), right.Type())
		}
		return evalIntegerInfix(expr.Operator, l.Value, r.Value)
	case *Float:
		r, ok := right.(*Float)
		if !ok {
			return typeMismatchError("operands of %s are %s and %s", expr.Operator, left.Type(), right.Type())
		}
		return evalFloatInfix(expr.Operator, l.Value, r.Value)
	case *Char:
		r, ok := right.(*Char)
		if !ok {
			return typeMismatchError("operands of %s are %s and %s", expr.Operator, left.Type(), right.Type())
		}
		return evalCharInfix(expr.Operator, l.Value, r.Value)
	}
	return typeMismatchError("operator %s not defined on %s", expr.Operator, left.Type())
}

// objectsEqual compares structurally. References compare by cell
// identity, not by content. Functions are not comparable.
func objectsEqual(left, right Object) (bool, *RuntimeError) {
	switch l := left.(type) {
	case *Integer:
		r, ok := right.(*Integer)
		return ok && l.Value == r.Value, nil
	case *Float:
		r, ok := right.(*Float)
		return ok && l.Value == r.Value, nil
	case *Boolean:
		r, ok := right.(*Boolean)
		return ok && l.Value == r.Value, nil
	case *Char:
		r, ok := right.(*Char)
		return ok && l.Value == r.Value, nil
	case *Unit:
		_, ok := right.(*Unit)
		return ok, nil
	case *Reference:
		r, ok := right.(*Reference)
		return ok && l.ID == r.ID, nil
	case *Tuple:
		r, ok := right.(*Tuple)
		if !ok || len(l.Elements) != len(r.Elements) {
			return false, nil
		}
		for i := range l.Elements {
			eq, err := objectsEqual(l.Elements[i], r.Elements[i])
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case *Record:
		r, ok := right.(*Record)
		if !ok || len(l.Fields) != len(r.Fields) {
			return false, nil
		}
		for name, lv := range l.Fields {
			rv, ok := r.Fields[name]
			if !ok {
				return false, nil
			}
			eq, err := objectsEqual(lv, rv)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case *Data:
		r, ok := right.(*Data)
		if !ok || l.Ctor != r.Ctor || len(l.Args) != len(r.Args) {
			return false, nil
		}
		for i := range l.Args {
			eq, err := objectsEqual(l.Args[i], r.Args[i])
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case *Array:
		r, ok := right.(*Array)
		if !ok || len(l.Elements) != len(r.Elements) {
			return false, nil
		}
		for i := range l.Elements {
			eq, err := objectsEqual(l.Elements[i], r.Elements[i])
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case *Closure, *Builtin:
		return false, typeMismatchError("functions are not comparable")
	}
	return false, typeMismatchError("values of type %s are not comparable", left.Type())
}

func evalFloatInfix(op string, l, r float64) Object {
	switch op {
	case "+":
		return &Float{Value: l + r}
	case "-":
		return &Float{Value: l - r}
	case "*":
		return &Float{Value: l * r}
	case "/":
		return &Float{Value: l / r}
	case "<":
		return &Boolean{Value: l < r}
	case ">":
		return &Boolean{Value: l > r}
	case "<=":
		return &Boolean{Value: l <= r}
	case ">=":
		return &Boolean{Value: l >= r}
	}
	return typeMismatchError("operator %s not defined on FLOAT", op)
}

func evalCharInfix(op string, l, r rune) Object {
	switch op {
	case "<":
		return &Boolean{Value: l < r}
	case ">":
		return &Boolean{Value: l > r}
	case "<=":
		return &Boolean{Value: l <= r}
	case ">=":
		return &Boolean{Value: l >= r}
	}
	return typeMismatchError("operator %s not defined on CHAR", op)
}
