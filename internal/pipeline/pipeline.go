package pipeline

import (
	"github.com/mell-lang/mell/internal/ast"
	"github.com/mell-lang/mell/internal/checker"
	"github.com/mell-lang/mell/internal/evaluator"
	"github.com/mell-lang/mell/internal/typesystem"
)

// PipelineContext carries one source unit through the stages. REPL
// sessions reuse the checker context, type environment and runtime
// environment across units so bindings persist between lines.
type PipelineContext struct {
	File      string
	Source    string
	Typecheck bool

	AstRoot *ast.Program
	Errors  []error

	Checker     *checker.InferenceContext
	TypeEnv     *checker.TypeEnv
	ResultType  typesystem.Type
	Diagnostics []checker.Diagnostic

	Evaluator *evaluator.Evaluator
	Env       *evaluator.Environment
	Result    evaluator.Object
}

func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline runs processors in order. Stages skip themselves once an
// earlier stage has failed, so a parse error never reaches evaluation.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	return ctx
}
