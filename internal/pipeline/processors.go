package pipeline

import (
	"github.com/mell-lang/mell/internal/checker"
	"github.com/mell-lang/mell/internal/evaluator"
	"github.com/mell-lang/mell/internal/parser"
)

// ParseProcessor lexes and parses the source into ctx.AstRoot.
type ParseProcessor struct{}

func (pp *ParseProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	program, err := parser.Parse(ctx.File, ctx.Source)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.AstRoot = program
	return ctx
}

// CheckProcessor runs type inference. It is skipped entirely when the
// unit runs with typechecking disabled.
type CheckProcessor struct{}

func (cp *CheckProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Failed() || !ctx.Typecheck {
		return ctx
	}
	if ctx.Checker == nil {
		ctx.Checker = checker.NewContext()
	}
	if ctx.TypeEnv == nil {
		ctx.TypeEnv = checker.NewTypeEnv()
	}

	resultType, extended, err := ctx.Checker.InferProgram(ctx.AstRoot, ctx.TypeEnv)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.ResultType = resultType
	ctx.TypeEnv = extended
	ctx.Diagnostics = append(ctx.Diagnostics, ctx.Checker.Diagnostics...)
	ctx.Checker.Diagnostics = nil
	return ctx
}

// EvalProcessor runs the tree walker over the checked unit.
type EvalProcessor struct{}

func (ep *EvalProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Failed() {
		return ctx
	}
	if ctx.Evaluator == nil {
		ctx.Evaluator = evaluator.New()
	}
	if ctx.Env == nil {
		ctx.Env = evaluator.NewBaseEnvironment()
	}

	result, extended := ctx.Evaluator.EvalProgram(ctx.AstRoot, ctx.Env)
	ctx.Result = result
	if err, ok := result.(*evaluator.RuntimeError); ok {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Env = extended
	return ctx
}
