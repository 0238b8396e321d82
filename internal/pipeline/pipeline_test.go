package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mell-lang/mell/internal/evaluator"
)

func runPipeline(source string, typecheck bool) *PipelineContext {
	ctx := &PipelineContext{
		File:      "test.mel",
		Source:    source,
		Typecheck: typecheck,
	}
	p := New(&ParseProcessor{}, &CheckProcessor{}, &EvalProcessor{})
	return p.Run(ctx)
}

func TestRunSimpleProgram(t *testing.T) {
	ctx := runPipeline("1 + 2", true)
	require.False(t, ctx.Failed())
	assert.Equal(t, "Int", ctx.ResultType.String())
	assert.Equal(t, "3", ctx.Result.Inspect())
}

func TestParseErrorStopsPipeline(t *testing.T) {
	ctx := runPipeline("let = 5", true)
	require.True(t, ctx.Failed())
	assert.Nil(t, ctx.Result)
}

func TestTypeErrorStopsEvaluation(t *testing.T) {
	ctx := runPipeline("1 + true", true)
	require.True(t, ctx.Failed())
	assert.Nil(t, ctx.Result)
}

func TestTypecheckCanBeSkipped(t *testing.T) {
	// Ill-typed but the left operand never forces the mismatch at
	// runtime, it fails with a runtime error instead of a type error.
	ctx := runPipeline("1 + true", false)
	require.True(t, ctx.Failed())
	_, ok := ctx.Errors[0].(*evaluator.RuntimeError)
	assert.True(t, ok)
}

func TestExhaustivenessWarningDoesNotFail(t *testing.T) {
	src := `type Color = Red | Green
match Red with
| Red -> 1`
	ctx := runPipeline(src, true)
	require.False(t, ctx.Failed())
	require.Len(t, ctx.Diagnostics, 1)
	assert.Equal(t, []string{"Green"}, ctx.Diagnostics[0].Missing)
	assert.Equal(t, "1", ctx.Result.Inspect())
}

func TestSessionStatePersistsAcrossRuns(t *testing.T) {
	ctx := runPipeline("let x = 20", true)
	require.False(t, ctx.Failed())

	next := &PipelineContext{
		File:      "test.mel",
		Source:    "x + 22",
		Typecheck: true,
		Checker:   ctx.Checker,
		TypeEnv:   ctx.TypeEnv,
		Evaluator: ctx.Evaluator,
		Env:       ctx.Env,
	}
	p := New(&ParseProcessor{}, &CheckProcessor{}, &EvalProcessor{})
	next = p.Run(next)

	require.False(t, next.Failed())
	assert.Equal(t, "42", next.Result.Inspect())
}

func TestFailedRunKeepsNoTypeDeclarations(t *testing.T) {
	ctx := runPipeline("let x = 1", true)
	require.False(t, ctx.Failed())

	// The declaration precedes the failure, so it must roll back with
	// the rest of the line.
	bad := &PipelineContext{
		File:      "test.mel",
		Source:    "type Color = Red | Green\nnope",
		Typecheck: true,
		Checker:   ctx.Checker,
		TypeEnv:   ctx.TypeEnv,
		Evaluator: ctx.Evaluator,
		Env:       ctx.Env,
	}
	p := New(&ParseProcessor{}, &CheckProcessor{}, &EvalProcessor{})
	bad = p.Run(bad)
	require.True(t, bad.Failed())

	retry := &PipelineContext{
		File:      "test.mel",
		Source:    "Red",
		Typecheck: true,
		Checker:   ctx.Checker,
		TypeEnv:   ctx.TypeEnv,
		Evaluator: ctx.Evaluator,
		Env:       ctx.Env,
	}
	retry = p.Run(retry)
	require.True(t, retry.Failed())
}

func TestFailedRunLeavesOldEnvironmentUsable(t *testing.T) {
	ctx := runPipeline("let x = 1", true)
	require.False(t, ctx.Failed())

	bad := &PipelineContext{
		File:      "test.mel",
		Source:    "y + 1",
		Typecheck: true,
		Checker:   ctx.Checker,
		TypeEnv:   ctx.TypeEnv,
		Evaluator: ctx.Evaluator,
		Env:       ctx.Env,
	}
	p := New(&ParseProcessor{}, &CheckProcessor{}, &EvalProcessor{})
	bad = p.Run(bad)
	require.True(t, bad.Failed())

	// The original context still evaluates against its own bindings.
	retry := &PipelineContext{
		File:      "test.mel",
		Source:    "x",
		Typecheck: true,
		Checker:   ctx.Checker,
		TypeEnv:   ctx.TypeEnv,
		Evaluator: ctx.Evaluator,
		Env:       ctx.Env,
	}
	retry = p.Run(retry)
	require.False(t, retry.Failed())
	assert.Equal(t, "1", retry.Result.Inspect())
}
