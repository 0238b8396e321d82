package evaluator

import "fmt"

// NewBaseEnvironment seeds the bindings every program starts with. It
// mirrors the checker's initial type environment.
func NewBaseEnvironment() *Environment {
	env := NewEnvironment()
	env.Set("not", &Builtin{
		Name: "not",
		Fn: func(e *Evaluator, arg Object) Object {
			b, ok := arg.(*Boolean)
			if !ok {
				return typeMismatchError("argument to not is %s, want BOOLEAN", arg.Type())
			}
			return &Boolean{Value: !b.Value}
		},
	})
	env.Set("print", &Builtin{
		Name: "print",
		Fn: func(e *Evaluator, arg Object) Object {
			fmt.Fprintln(e.Out, arg.Inspect())
			return unit
		},
	})
	return env
}
