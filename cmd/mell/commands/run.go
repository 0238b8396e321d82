package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mell-lang/mell/internal/checker"
	"github.com/mell-lang/mell/internal/config"
	"github.com/mell-lang/mell/internal/evaluator"
	"github.com/mell-lang/mell/internal/modules"
	"github.com/mell-lang/mell/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run <file.mel>",
	Short: "Run a mell source file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFile(args[0])
	},
}

func runFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	baseDir := filepath.Dir(path)
	project, err := config.LoadProject(baseDir)
	if err != nil {
		return err
	}

	ctx := newPipelineContext(baseDir, project)
	ctx.File = path
	ctx.Source = string(src)

	p := pipeline.New(
		&pipeline.ParseProcessor{},
		&pipeline.CheckProcessor{},
		&pipeline.EvalProcessor{},
	)
	ctx = p.Run(ctx)

	for _, diag := range ctx.Diagnostics {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: warning: %s\n", path, diag.Line, diag.Column, diag.Message)
	}
	if ctx.Failed() {
		return ctx.Errors[0]
	}
	return nil
}

// newPipelineContext wires a fresh checker and evaluator sharing one
// module loader, honoring the project config's typecheck setting.
func newPipelineContext(baseDir string, project *config.Project) *pipeline.PipelineContext {
	loader := modules.NewLoader(baseDir, project.Paths)

	chk := checker.NewContext()
	chk.Loader = loader

	eval := evaluator.New()
	eval.Loader = loader

	typecheck := project.TypecheckEnabled() && !noTypecheck

	return &pipeline.PipelineContext{
		Typecheck: typecheck,
		Checker:   chk,
		TypeEnv:   checker.NewTypeEnv(),
		Evaluator: eval,
		Env:       evaluator.NewBaseEnvironment(),
	}
}
