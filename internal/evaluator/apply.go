package evaluator

import "github.com/mell-lang/mell/internal/ast"

// applyFunction is the trampoline. Calls in tail position come back as
// *TailCall objects instead of growing the Go stack, and the loop here
// rebinds and continues. Deep tail recursion runs in constant stack.
func (e *Evaluator) applyFunction(fn Object, arg Object) Object {
	for {
		switch callee := fn.(type) {
		case *Builtin:
			return callee.Fn(e, arg)

		case *Closure:
			env := NewEnclosedEnvironment(callee.Env)
			if callee.SelfName != "" {
				env.Set(callee.SelfName, callee)
			}
			env.Set(callee.Param, arg)

			result := e.evalTail(callee.Body, env)
			tc, ok := result.(*TailCall)
			if !ok {
				return result
			}
			fn = tc.Fn
			arg = tc.Arg

		default:
			return typeMismatchError("calling %s, want a function", fn.Type())
		}
	}
}

// ctorFunction wraps an under-applied constructor as a function value
// that collects the remaining arguments one at a time. Each application
// copies the collected slice, so sharing a partial application is safe.
func ctorFunction(name string, arity int, collected []Object) *Builtin {
	return &Builtin{
		Name: name,
		Fn: func(e *Evaluator, arg Object) Object {
			args := append(append(make([]Object, 0, len(collected)+1), collected...), arg)
			if len(args) == arity {
				return &Data{Ctor: name, Args: args}
			}
			return ctorFunction(name, arity, args)
		},
	}
}

// evalTail evaluates a function body. Expressions whose value is the
// value of a sub-expression keep that sub-expression in tail position;
// a call found there is packaged for the trampoline rather than applied.
func (e *Evaluator) evalTail(expr ast.Expression, env *Environment) Object {
	switch expr := expr.(type) {
	case *ast.CallExpression:
		fn := e.Eval(expr.Function, env)
		if isError(fn) {
			return fn
		}
		arg := e.Eval(expr.Argument, env)
		if isError(arg) {
			return arg
		}
		return &TailCall{Fn: fn, Arg: arg}

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
			return e.evalTail(expr.Consequence, env)
		}
		return e.evalTail(expr.Alternative, env)

	case *ast.LetExpression:
		val := e.evalLetBinding(expr.Name.Value, expr.Value, expr.IsRec, env)
		if isError(val) {
			return val
		}
		return e.evalTail(expr.Body, env.Extend(expr.Name.Value, val))

	case *ast.MatchExpression:
		return e.evalMatch(expr, env, e.evalTail)

	default:
		return e.Eval(expr, env)
	}
}
