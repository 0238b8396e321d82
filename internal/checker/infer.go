package checker

import (
	"fmt"

	"github.com/mell-lang/mell/internal/ast"
	"github.com/mell-lang/mell/internal/typesystem"
)

// Infer runs Algorithm W over a single expression with a fresh context
// and returns the principal type together with the final substitution.
// The first failure aborts the pass.
func Infer(expr ast.Expression, env *TypeEnv) (typesystem.Type, typesystem.Subst, error) {
	ctx := NewContext()
	t, err := ctx.InferExpr(expr, env)
	if err != nil {
		return nil, nil, err
	}
	return ctx.resolve(t), ctx.subst, nil
}

// InferProgram types a source unit statement by statement, extending the
// environment as it goes. It returns the type of the trailing expression
// (Int when the unit ends on a binding, matching the evaluator's default
// result) and the extended environment for REPL continuation. A unit
// that fails keeps none of its type declarations or diagnostics: the
// REPL reuses the context across lines, so a failed line must leave no
// trace.
func (ctx *InferenceContext) InferProgram(program *ast.Program, env *TypeEnv) (typesystem.Type, *TypeEnv, error) {
	ctors, sums := ctx.declSnapshot()
	diags := len(ctx.Diagnostics)

	t, extended, err := ctx.inferProgram(program, env)
	if err != nil {
		ctx.constructors = ctors
		ctx.sumTypes = sums
		ctx.Diagnostics = ctx.Diagnostics[:diags]
		return nil, nil, err
	}
	return t, extended, nil
}

func (ctx *InferenceContext) inferProgram(program *ast.Program, env *TypeEnv) (typesystem.Type, *TypeEnv, error) {
	var last typesystem.Type = typesystem.IntType

	for _, stmt := range program.Statements {
		switch stmt := stmt.(type) {
		case *ast.LetStatement:
			scheme, err := ctx.inferLet(stmt.Name.Value, stmt.Annotation, stmt.Value, stmt.IsRec, env)
			if err != nil {
				return nil, nil, err
			}
			env = env.Extend(stmt.Name.Value, scheme)
			last = typesystem.IntType

		case *ast.TypeDeclaration:
			if err := ctx.declareType(stmt); err != nil {
				return nil, nil, err
			}
			last = typesystem.IntType

		case *ast.LoadStatement:
			if ctx.Loader == nil {
				return nil, nil, fmt.Errorf("load %q: no loader configured", stmt.Path)
			}
			loaded, err := ctx.Loader.Load(stmt.Path)
			if err != nil {
				return nil, nil, fmt.Errorf("load %q: %w", stmt.Path, err)
			}
			_, extended, err := ctx.inferProgram(loaded, env)
			if err != nil {
				return nil, nil, err
			}
			env = extended
			last = typesystem.IntType

		case *ast.ExpressionStatement:
			t, err := ctx.InferExpr(stmt.Expression, env)
			if err != nil {
				return nil, nil, err
			}
			last = t

		default:
			return nil, nil, fmt.Errorf("unsupported statement %T", stmt)
		}
	}

	return ctx.resolve(last), env, nil
}

// InferExpr infers the type of one expression against the context's
// cumulative substitution.
func (ctx *InferenceContext) InferExpr(expr ast.Expression, env *TypeEnv) (typesystem.Type, error) {
	switch expr := expr.(type) {
	case *ast.IntegerLiteral:
		return typesystem.IntType, nil
	case *ast.FloatLiteral:
		return typesystem.FloatType, nil
	case *ast.BooleanLiteral:
		return typesystem.BoolType, nil
	case *ast.CharLiteral:
		return typesystem.CharType, nil
	case *ast.UnitLiteral:
		return typesystem.UnitType, nil

	case *ast.Identifier:
		scheme, ok := env.Lookup(expr.Value)
		if !ok {
			return nil, &typesystem.UnboundVariableError{Name: expr.Value}
		}
		return ctx.instantiate(scheme), nil

	case *ast.FunctionLiteral:
		var paramType typesystem.Type
		if expr.Annotation != nil {
			converted, err := ctx.convertTypeExpr(expr.Annotation, map[string]typesystem.TVar{})
			if err != nil {
				return nil, err
			}
			paramType = converted
		} else {
			paramType = ctx.fresh()
		}

		// Lambda parameters stay monomorphic: no generalization here.
		bodyEnv := env.Extend(expr.Param.Value, MonoScheme(paramType))
		bodyType, err := ctx.InferExpr(expr.Body, bodyEnv)
		if err != nil {
			return nil, err
		}
		return typesystem.TFunc{Param: ctx.resolve(paramType), Return: bodyType}, nil

	case *ast.CallExpression:
		fnType, err := ctx.InferExpr(expr.Function, env)
		if err != nil {
			return nil, err
		}
		argType, err := ctx.InferExpr(expr.Argument, env)
		if err != nil {
			return nil, err
		}
		result := ctx.fresh()
		if err := ctx.unify(fnType, typesystem.TFunc{Param: argType, Return: result}); err != nil {
			return nil, err
		}
		return result, nil

	case *ast.LetExpression:
		scheme, err := ctx.inferLet(expr.Name.Value, expr.Annotation, expr.Value, expr.IsRec, env)
		if err != nil {
			return nil, err
		}
		return ctx.InferExpr(expr.Body, env.Extend(expr.Name.Value, scheme))

	case *ast.IfExpression:
		condType, err := ctx.InferExpr(expr.Condition, env)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(condType, typesystem.BoolType); err != nil {
			return nil, err
		}
		consType, err := ctx.InferExpr(expr.Consequence, env)
		if err != nil {
			return nil, err
		}
		altType, err := ctx.InferExpr(expr.Alternative, env)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(consType, altType); err != nil {
			return nil, err
		}
		return consType, nil

	case *ast.InfixExpression:
		return ctx.inferInfix(expr, env)

	case *ast.TupleLiteral:
		elems := make([]typesystem.Type, len(expr.Elements))
		for i, el := range expr.Elements {
			t, err := ctx.InferExpr(el, env)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return typesystem.TTuple{Elements: elems}, nil

	case *ast.ProjectionExpression:
		tupleType, err := ctx.InferExpr(expr.Tuple, env)
		if err != nil {
			return nil, err
		}
		resolved := ctx.resolve(tupleType)
		tuple, ok := resolved.(typesystem.TTuple)
		if !ok {
			return nil, &typesystem.UnificationError{
				Left:    resolved,
				Right:   typesystem.TTuple{},
				Context: "tuple projection needs a concrete tuple",
			}
		}
		if expr.Index >= len(tuple.Elements) {
			return nil, &typesystem.ProjectionRangeError{Index: expr.Index, Arity: len(tuple.Elements)}
		}
		return tuple.Elements[expr.Index], nil

	case *ast.RecordLiteral:
		fields := make(map[string]typesystem.Type, len(expr.Fields))
		for _, field := range expr.Fields {
			t, err := ctx.InferExpr(field.Value, env)
			if err != nil {
				return nil, err
			}
			fields[field.Name] = t
		}
		// Construction yields a closed record.
		return typesystem.TRecord{Fields: fields}, nil

	case *ast.MemberExpression:
		recvType, err := ctx.InferExpr(expr.Left, env)
		if err != nil {
			return nil, err
		}
		// Row-polymorphic access: the receiver must carry at least this
		// field, whatever else it has.
		fieldType := ctx.fresh()
		row := ctx.fresh()
		want := typesystem.TRecord{
			Fields: map[string]typesystem.Type{expr.Field: fieldType},
			Row:    row,
		}
		if err := ctx.unify(recvType, want); err != nil {
			return nil, err
		}
		return fieldType, nil

	case *ast.ArrayLiteral:
		elemType := typesystem.Type(ctx.fresh())
		for _, el := range expr.Elements {
			t, err := ctx.InferExpr(el, env)
			if err != nil {
				return nil, err
			}
			if err := ctx.unify(elemType, t); err != nil {
				return nil, err
			}
		}
		return typesystem.TApp{Name: "Array", Args: []typesystem.Type{elemType}}, nil

	case *ast.IndexExpression:
		arrType, err := ctx.InferExpr(expr.Left, env)
		if err != nil {
			return nil, err
		}
		indexType, err := ctx.InferExpr(expr.Index, env)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(indexType, typesystem.IntType); err != nil {
			return nil, err
		}
		elemType := ctx.fresh()
		if err := ctx.unify(arrType, typesystem.TApp{Name: "Array", Args: []typesystem.Type{elemType}}); err != nil {
			return nil, err
		}
		return elemType, nil

	case *ast.ConstructorExpression:
		info, ok := ctx.constructors[expr.Name]
		if !ok {
			return nil, &typesystem.UnboundVariableError{Name: expr.Name}
		}
		if len(expr.Args) > len(info.Args) {
			return nil, &typesystem.ConstructorArityError{
				Name:     expr.Name,
				Expected: len(info.Args),
				Actual:   len(expr.Args),
			}
		}
		argTypes, resultType := ctx.instantiateCtor(info)
		for i, arg := range expr.Args {
			t, err := ctx.InferExpr(arg, env)
			if err != nil {
				return nil, err
			}
			if err := ctx.unify(t, argTypes[i]); err != nil {
				return nil, err
			}
		}
		// Constructors are curried functions: applied to fewer arguments
		// than declared, the remaining ones wrap the result type.
		t := resultType
		for i := len(argTypes) - 1; i >= len(expr.Args); i-- {
			t = typesystem.TFunc{Param: argTypes[i], Return: t}
		}
		return t, nil

	case *ast.MatchExpression:
		return ctx.inferMatch(expr, env)

	case *ast.RefExpression:
		t, err := ctx.InferExpr(expr.Value, env)
		if err != nil {
			return nil, err
		}
		return typesystem.TRef{Elem: t}, nil

	case *ast.DerefExpression:
		t, err := ctx.InferExpr(expr.Value, env)
		if err != nil {
			return nil, err
		}
		elem := ctx.fresh()
		if err := ctx.unify(t, typesystem.TRef{Elem: elem}); err != nil {
			return nil, err
		}
		return elem, nil

	case *ast.AssignExpression:
		targetType, err := ctx.InferExpr(expr.Target, env)
		if err != nil {
			return nil, err
		}
		valueType, err := ctx.InferExpr(expr.Value, env)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(targetType, typesystem.TRef{Elem: valueType}); err != nil {
			return nil, err
		}
		return typesystem.UnitType, nil

	default:
		return nil, fmt.Errorf("unsupported expression %T", expr)
	}
}

// inferLet types one binding and returns its generalized scheme. A
// recursive binding must carry an annotation: the name is in scope inside
// its own definition, and fixpoint-type inference is unsupported.
func (ctx *InferenceContext) inferLet(name string, annotation ast.TypeExpr, value ast.Expression, isRec bool, env *TypeEnv) (Scheme, error) {
	if isRec {
		if annotation == nil {
			return Scheme{}, &typesystem.RecursionAnnotationError{Name: name}
		}
		annType, err := ctx.convertTypeExpr(annotation, map[string]typesystem.TVar{})
		if err != nil {
			return Scheme{}, err
		}
		valueEnv := env.Extend(name, MonoScheme(annType))
		valueType, err := ctx.InferExpr(value, valueEnv)
		if err != nil {
			return Scheme{}, err
		}
		if err := ctx.unify(valueType, annType); err != nil {
			return Scheme{}, err
		}
		return ctx.generalize(annType, env), nil
	}

	valueType, err := ctx.InferExpr(value, env)
	if err != nil {
		return Scheme{}, err
	}
	if annotation != nil {
		annType, err := ctx.convertTypeExpr(annotation, map[string]typesystem.TVar{})
		if err != nil {
			return Scheme{}, err
		}
		if err := ctx.unify(valueType, annType); err != nil {
			return Scheme{}, err
		}
	}
	return ctx.generalize(valueType, env), nil
}

func (ctx *InferenceContext) inferInfix(expr *ast.InfixExpression, env *TypeEnv) (typesystem.Type, error) {
	leftType, err := ctx.InferExpr(expr.Left, env)
	if err != nil {
		return nil, err
	}
	rightType, err := ctx.InferExpr(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator {
	case "+", "-", "*", "/", "%":
		if err := ctx.unify(leftType, rightType); err != nil {
			return nil, err
		}
		operand := ctx.resolve(leftType)
		switch operand := operand.(type) {
		case typesystem.TVar:
			// Unconstrained numeric operands default to Int.
			if err := ctx.unify(operand, typesystem.IntType); err != nil {
				return nil, err
			}
			return typesystem.IntType, nil
		case typesystem.TCon:
			if operand.Name == "Int" {
				return operand, nil
			}
			if operand.Name == "Float" && expr.Operator != "%" {
				return operand, nil
			}
		}
		return nil, &typesystem.UnificationError{
			Left:    operand,
			Right:   typesystem.IntType,
			Context: fmt.Sprintf("operator %s needs numeric operands", expr.Operator),
		}

	case "==", "!=", "<", ">", "<=", ">=":
		if err := ctx.unify(leftType, rightType); err != nil {
			return nil, err
		}
		return typesystem.BoolType, nil

	case "&&", "||":
		// Logical operators resolve through their seeded schemes.
		scheme, ok := env.Lookup(expr.Operator)
		if !ok {
			return nil, &typesystem.UnboundVariableError{Name: expr.Operator}
		}
		opType := ctx.instantiate(scheme)
		result := ctx.fresh()
		want := typesystem.TFunc{
			Param:  leftType,
			Return: typesystem.TFunc{Param: rightType, Return: result},
		}
		if err := ctx.unify(opType, want); err != nil {
			return nil, err
		}
		return result, nil

	default:
		return nil, &typesystem.UnboundVariableError{Name: expr.Operator}
	}
}

func (ctx *InferenceContext) inferMatch(expr *ast.MatchExpression, env *TypeEnv) (typesystem.Type, error) {
	scrutType, err := ctx.InferExpr(expr.Scrutinee, env)
	if err != nil {
		return nil, err
	}

	var resultType typesystem.Type
	for _, arm := range expr.Arms {
		armEnv, err := ctx.inferPattern(arm.Pattern, scrutType, env)
		if err != nil {
			return nil, err
		}
		bodyType, err := ctx.InferExpr(arm.Body, armEnv)
		if err != nil {
			return nil, err
		}
		if resultType == nil {
			resultType = bodyType
			continue
		}
		if err := ctx.unify(resultType, bodyType); err != nil {
			return nil, err
		}
	}

	// Exhaustiveness is a diagnostic, never a failure.
	if app, ok := ctx.resolve(scrutType).(typesystem.TApp); ok {
		if ctors, ok := ctx.sumTypes[app.Name]; ok {
			patterns := make([]ast.Pattern, len(expr.Arms))
			for i, arm := range expr.Arms {
				patterns[i] = arm.Pattern
			}
			if missing := MissingConstructors(ctors, patterns); len(missing) > 0 {
				ctx.diagnose(expr.Token, missing)
			}
		}
	}

	return resultType, nil
}

// inferPattern checks a pattern against the scrutinee type and returns
// the arm environment with pattern names bound monomorphically.
func (ctx *InferenceContext) inferPattern(pat ast.Pattern, expected typesystem.Type, env *TypeEnv) (*TypeEnv, error) {
	switch pat := pat.(type) {
	case *ast.WildcardPattern:
		return env, nil

	case *ast.IdentifierPattern:
		return env.Extend(pat.Value, MonoScheme(expected)), nil

	case *ast.LiteralPattern:
		litType, err := ctx.InferExpr(pat.Value, env)
		if err != nil {
			return nil, err
		}
		if err := ctx.unify(expected, litType); err != nil {
			return nil, err
		}
		return env, nil

	case *ast.TuplePattern:
		elems := make([]typesystem.Type, len(pat.Elements))
		for i := range pat.Elements {
			elems[i] = ctx.fresh()
		}
		if err := ctx.unify(expected, typesystem.TTuple{Elements: elems}); err != nil {
			return nil, err
		}
		for i, sub := range pat.Elements {
			extended, err := ctx.inferPattern(sub, elems[i], env)
			if err != nil {
				return nil, err
			}
			env = extended
		}
		return env, nil

	case *ast.RecordPattern:
		fields := make(map[string]typesystem.Type, len(pat.Fields))
		for name := range pat.Fields {
			fields[name] = ctx.fresh()
		}
		row := ctx.fresh()
		if err := ctx.unify(expected, typesystem.TRecord{Fields: fields, Row: row}); err != nil {
			return nil, err
		}
		for name, sub := range pat.Fields {
			extended, err := ctx.inferPattern(sub, fields[name], env)
			if err != nil {
				return nil, err
			}
			env = extended
		}
		return env, nil

	case *ast.ConstructorPattern:
		info, ok := ctx.constructors[pat.Name]
		if !ok {
			return nil, &typesystem.UnboundVariableError{Name: pat.Name}
		}
		if len(pat.Args) != len(info.Args) {
			return nil, &typesystem.ConstructorArityError{
				Name:     pat.Name,
				Expected: len(info.Args),
				Actual:   len(pat.Args),
			}
		}
		argTypes, resultType := ctx.instantiateCtor(info)
		if err := ctx.unify(expected, resultType); err != nil {
			return nil, err
		}
		for i, sub := range pat.Args {
			extended, err := ctx.inferPattern(sub, argTypes[i], env)
			if err != nil {
				return nil, err
			}
			env = extended
		}
		return env, nil

	default:
		return nil, fmt.Errorf("unsupported pattern %T", pat)
	}
}
