package shell

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chzyer/readline"

	"github.com/wbarnes/lineshell/internal/builtins"
	"github.com/wbarnes/lineshell/internal/history"
	"github.com/wbarnes/lineshell/internal/ui"
)

// Executor runs a parsed pipeline. internal/procrun.Execute satisfies this;
// the indirection keeps this package from importing procrun, which already
// imports shell for Stage/IOPlan.
type Executor func(ctx context.Context, env *builtins.Env, stages []Stage) error

// Shell is the top-level REPL (spec.md §2's data-flow: Line Reader → Lexer
// → Pipeline Splitter → (per stage) Redirection Parser →
// {Built-in Dispatcher | External Process Runner} → Output Router /
// Pipeline Executor), wired together here the way the teacher's
// Shell.Run loop wires tokenizing, parsing and execution.
type Shell struct {
	rl       *readline.Instance
	reader   *Reader
	env      *builtins.Env
	exec     Executor
	histPath string
}

// New builds a Shell: a readline.Instance configured with idx's completer
// and histPath as its interactive HISTFILE, a Reader that also feeds hist,
// and env as the ambient builtin state.
func New(idx *Index, hist *history.Store, env *builtins.Env, exec Executor, histPath string) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:       histPath,
		HistorySearchFold: true,
		AutoComplete:      NewCompleter(idx),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return nil, err
	}

	return &Shell{
		rl:       rl,
		reader:   NewReader(rl, hist),
		env:      env,
		exec:     exec,
		histPath: histPath,
	}, nil
}

// Run executes the REPL loop until EOF or the exit builtin is invoked,
// returning the process exit status (spec.md §7).
func (sh *Shell) Run(ctx context.Context) int {
	defer sh.rl.Close()

	for {
		tokens, ok := sh.reader.ReadLine()
		if !ok {
			return 0
		}
		if len(tokens) == 0 {
			continue
		}

		stages, err := SplitStages(tokens)
		if err != nil {
			sh.reportError(err)
			continue
		}

		if err := sh.exec(ctx, sh.env, stages); err != nil {
			var exitErr *builtins.ExitError
			if errors.As(err, &exitErr) {
				return exitErr.Code
			}
			sh.reportError(err)
		}
	}
}

func (sh *Shell) reportError(err error) {
	fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("lineshell: "+err.Error()))
}
