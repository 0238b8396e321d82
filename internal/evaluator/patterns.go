package evaluator

import "github.com/mell-lang/mell/internal/ast"

// matchPattern tries one pattern against a value. On success it returns
// the arm environment with pattern names bound; on failure the original
// environment is untouched.
func (e *Evaluator) matchPattern(pat ast.Pattern, val Object, env *Environment) (*Environment, bool) {
	switch pat := pat.(type) {
	case *ast.WildcardPattern:
		return env, true

	case *ast.IdentifierPattern:
		return env.Extend(pat.Value, val), true

	case *ast.LiteralPattern:
		lit := e.Eval(pat.Value, env)
		if isError(lit) {
			return env, false
		}
		eq, err := objectsEqual(val, lit)
		if err != nil {
			return env, false
		}
		return env, eq

	case *ast.TuplePattern:
		tuple, ok := val.(*Tuple)
		if !ok || len(tuple.Elements) != len(pat.Elements) {
			return env, false
		}
		for i, sub := range pat.Elements {
			extended, ok := e.matchPattern(sub, tuple.Elements[i], env)
			if !ok {
				return env, false
			}
			env = extended
		}
		return env, true

	case *ast.RecordPattern:
		record, ok := val.(*Record)
		if !ok {
			return env, false
		}
		// Partial match: fields absent from the pattern are ignored.
		for name, sub := range pat.Fields {
			field, ok := record.Fields[name]
			if !ok {
				return env, false
			}
			extended, ok := e.matchPattern(sub, field, env)
			if !ok {
				return env, false
			}
			env = extended
		}
		return env, true

	case *ast.ConstructorPattern:
		data, ok := val.(*Data)
		if !ok || data.Ctor != pat.Name || len(data.Args) != len(pat.Args) {
			return env, false
		}
		for i, sub := range pat.Args {
			extended, ok := e.matchPattern(sub, data.Args[i], env)
			if !ok {
				return env, false
			}
			env = extended
		}
		return env, true
	}
	return env, false
}
