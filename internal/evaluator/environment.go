package evaluator

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]Object)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// Environment is a chain of binding frames. Bindings never shadow in
// place: extending always allocates a new enclosed frame, so closures
// captured earlier keep seeing the values they closed over.
type Environment struct {
	store map[string]Object
	outer *Environment
}

func (e *Environment) Get(name string) (Object, bool) {
	obj, ok := e.store[name]
	if !ok && e.outer != nil {
		obj, ok = e.outer.Get(name)
	}
	return obj, ok
}

func (e *Environment) Set(name string, val Object) Object {
	e.store[name] = val
	return val
}

// Extend returns a new frame with one extra binding, leaving the
// receiver untouched.
func (e *Environment) Extend(name string, val Object) *Environment {
	inner := NewEnclosedEnvironment(e)
	inner.store[name] = val
	return inner
}
