package checker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mell-lang/mell/internal/ast"
	"github.com/mell-lang/mell/internal/token"
	"github.com/mell-lang/mell/internal/typesystem"
)

// ModuleLoader resolves a load path to a parsed source unit. The pipeline
// injects the same loader the evaluator uses, so loaded bindings are
// typed before they are run.
type ModuleLoader interface {
	Load(path string) (*ast.Program, error)
}

// Diagnostic is a non-fatal finding, e.g. a non-exhaustive match.
type Diagnostic struct {
	Line    int
	Column  int
	Message string
	Missing []string // uncovered constructors, when applicable
}

// CtorInfo describes one declared constructor. Args and Result mention
// the declaration's parameter variables by id; every use instantiates
// them fresh.
type CtorInfo struct {
	Name     string
	TypeName string
	ParamIDs []int
	Args     []typesystem.Type
	Result   typesystem.TApp
}

// InferenceContext carries the mutable state of one inference run: the
// variable supply, the cumulative substitution, declared constructors
// and collected diagnostics. A REPL keeps one context alive across
// inputs so variable ids stay unique.
type InferenceContext struct {
	supply *typesystem.VarSupply
	subst  typesystem.Subst

	constructors map[string]*CtorInfo
	sumTypes     map[string][]string // type name -> constructor names, declaration order

	Loader      ModuleLoader
	Diagnostics []Diagnostic
}

func NewContext() *InferenceContext {
	return &InferenceContext{
		supply:       typesystem.NewVarSupply(),
		subst:        typesystem.Subst{},
		constructors: map[string]*CtorInfo{},
		sumTypes:     map[string][]string{},
	}
}

func (ctx *InferenceContext) fresh() typesystem.TVar {
	return ctx.supply.Fresh()
}

// unify folds a new equation into the cumulative substitution.
func (ctx *InferenceContext) unify(t1, t2 typesystem.Type) error {
	s, err := typesystem.Unify(t1, t2, ctx.subst, ctx.supply)
	if err != nil {
		return err
	}
	ctx.subst = s
	return nil
}

// resolve applies the cumulative substitution to t.
func (ctx *InferenceContext) resolve(t typesystem.Type) typesystem.Type {
	return t.Apply(ctx.subst)
}

// generalize quantifies the variables free in t but not free anywhere in
// the environment (let-polymorphism).
func (ctx *InferenceContext) generalize(t typesystem.Type, env *TypeEnv) Scheme {
	resolved := ctx.resolve(t)
	envFree := env.FreeTypeVariables(ctx.subst)

	var quantified []int
	for _, tv := range resolved.FreeTypeVariables() {
		if !envFree[tv.ID] {
			quantified = append(quantified, tv.ID)
		}
	}
	sort.Ints(quantified)
	return Scheme{Vars: quantified, Type: resolved}
}

// instantiate replaces every quantified variable with a fresh one.
func (ctx *InferenceContext) instantiate(s Scheme) typesystem.Type {
	if len(s.Vars) == 0 {
		return s.Type
	}
	inst := typesystem.Subst{}
	for _, id := range s.Vars {
		inst[id] = ctx.fresh()
	}
	return s.Type.Apply(inst)
}

// declareType registers a sum type and its constructors for the
// remainder of the run. Re-declaring a name shadows the earlier
// declaration.
func (ctx *InferenceContext) declareType(decl *ast.TypeDeclaration) error {
	params := make(map[string]typesystem.TVar, len(decl.Params))
	paramIDs := make([]int, 0, len(decl.Params))
	resultArgs := make([]typesystem.Type, 0, len(decl.Params))
	for _, name := range decl.Params {
		tv := ctx.fresh()
		params[name] = tv
		paramIDs = append(paramIDs, tv.ID)
		resultArgs = append(resultArgs, tv)
	}

	result := typesystem.TApp{Name: decl.Name, Args: resultArgs}
	names := make([]string, 0, len(decl.Constructors))

	for _, def := range decl.Constructors {
		args := make([]typesystem.Type, 0, len(def.Args))
		for _, argExpr := range def.Args {
			argType, err := ctx.convertTypeExpr(argExpr, params)
			if err != nil {
				return err
			}
			args = append(args, argType)
		}
		ctx.constructors[def.Name] = &CtorInfo{
			Name:     def.Name,
			TypeName: decl.Name,
			ParamIDs: paramIDs,
			Args:     args,
			Result:   result,
		}
		names = append(names, def.Name)
	}

	ctx.sumTypes[decl.Name] = names
	return nil
}

// declSnapshot copies the declaration registries so a failed unit can be
// rolled back.
func (ctx *InferenceContext) declSnapshot() (map[string]*CtorInfo, map[string][]string) {
	ctors := make(map[string]*CtorInfo, len(ctx.constructors))
	for name, info := range ctx.constructors {
		ctors[name] = info
	}
	sums := make(map[string][]string, len(ctx.sumTypes))
	for name, ctorNames := range ctx.sumTypes {
		sums[name] = ctorNames
	}
	return ctors, sums
}

// instantiateCtor returns fresh copies of a constructor's argument and
// result types.
func (ctx *InferenceContext) instantiateCtor(info *CtorInfo) ([]typesystem.Type, typesystem.Type) {
	inst := typesystem.Subst{}
	for _, id := range info.ParamIDs {
		inst[id] = ctx.fresh()
	}
	args := make([]typesystem.Type, len(info.Args))
	for i, a := range info.Args {
		args[i] = a.Apply(inst)
	}
	return args, info.Result.Apply(inst)
}

// convertTypeExpr turns a syntactic annotation into a type. Lowercase
// names resolve through vars; unknown ones allocate a fresh variable and
// are remembered, so `fun (x: a) -> x` annotates consistently.
func (ctx *InferenceContext) convertTypeExpr(te ast.TypeExpr, vars map[string]typesystem.TVar) (typesystem.Type, error) {
	switch te := te.(type) {
	case *ast.NamedType:
		if isLowerName(te.Name) {
			if len(te.Args) > 0 {
				return nil, &typesystem.UnknownTypeError{Name: te.Name}
			}
			if tv, ok := vars[te.Name]; ok {
				return tv, nil
			}
			tv := ctx.fresh()
			vars[te.Name] = tv
			return tv, nil
		}

		switch te.Name {
		case "Int", "Bool", "Char", "Float", "Unit":
			if len(te.Args) > 0 {
				return nil, &typesystem.UnknownTypeError{Name: fmt.Sprintf("%s with arguments", te.Name)}
			}
			return typesystem.TCon{Name: te.Name}, nil
		}

		if _, ok := ctx.sumTypes[te.Name]; !ok && te.Name != "Array" {
			return nil, &typesystem.UnknownTypeError{Name: te.Name}
		}
		args := make([]typesystem.Type, len(te.Args))
		for i, argExpr := range te.Args {
			arg, err := ctx.convertTypeExpr(argExpr, vars)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return typesystem.TApp{Name: te.Name, Args: args}, nil

	case *ast.FuncType:
		param, err := ctx.convertTypeExpr(te.Param, vars)
		if err != nil {
			return nil, err
		}
		result, err := ctx.convertTypeExpr(te.Result, vars)
		if err != nil {
			return nil, err
		}
		return typesystem.TFunc{Param: param, Return: result}, nil

	case *ast.TupleType:
		elems := make([]typesystem.Type, len(te.Elements))
		for i, el := range te.Elements {
			t, err := ctx.convertTypeExpr(el, vars)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return typesystem.TTuple{Elements: elems}, nil

	case *ast.RecordType:
		fields := make(map[string]typesystem.Type, len(te.Fields))
		for name, fe := range te.Fields {
			t, err := ctx.convertTypeExpr(fe, vars)
			if err != nil {
				return nil, err
			}
			fields[name] = t
		}
		return typesystem.TRecord{Fields: fields}, nil

	case *ast.RefType:
		elem, err := ctx.convertTypeExpr(te.Elem, vars)
		if err != nil {
			return nil, err
		}
		return typesystem.TRef{Elem: elem}, nil

	default:
		return nil, &typesystem.UnknownTypeError{Name: te.TokenLiteral()}
	}
}

func (ctx *InferenceContext) diagnose(tok token.Token, missing []string) {
	ctx.Diagnostics = append(ctx.Diagnostics, Diagnostic{
		Line:    tok.Line,
		Column:  tok.Column,
		Message: fmt.Sprintf("match is not exhaustive, missing: %s", strings.Join(missing, ", ")),
		Missing: missing,
	})
}

func isLowerName(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}
