package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mell-lang/mell/internal/config"
	"github.com/mell-lang/mell/internal/pipeline"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive mell session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRepl()
	},
}

func runRepl() error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	project, err := config.LoadProject(cwd)
	if err != nil {
		return err
	}

	session := newPipelineContext(cwd, project)
	p := pipeline.New(
		&pipeline.ParseProcessor{},
		&pipeline.CheckProcessor{},
		&pipeline.EvalProcessor{},
	)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(config.ReplPrompt)
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		// Bindings from a failed line must not leak into the session,
		// so each line runs on a copy of the session context.
		ctx := *session
		ctx.File = "<repl>"
		ctx.Source = line
		ctx.AstRoot = nil
		ctx.Errors = nil
		ctx.Diagnostics = nil
		ctx.Result = nil
		ctx.ResultType = nil

		result := p.Run(&ctx)

		for _, diag := range result.Diagnostics {
			fmt.Fprintf(os.Stderr, "warning: %s\n", diag.Message)
		}
		if result.Failed() {
			fmt.Fprintln(os.Stderr, "error:", result.Errors[0])
			continue
		}

		session.TypeEnv = result.TypeEnv
		session.Env = result.Env

		if result.Result != nil {
			if result.Typecheck && result.ResultType != nil {
				fmt.Printf("- : %s = %s\n", result.ResultType, result.Result.Inspect())
			} else {
				fmt.Printf("- = %s\n", result.Result.Inspect())
			}
		}
	}
}
