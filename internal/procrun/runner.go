// Package procrun implements the External Process Runner (spec.md §4.G)
// and the Pipeline Executor (spec.md §4.H): locating and spawning
// non-builtin commands with the requested stdio, and wiring a chain of
// stages together with anonymous pipes.
//
// Grounded on the teacher's internal/shell/pipeline.go executeSingle /
// executePipeline, generalized from running in-process commands.Command
// values over a remote API to spawning real OS processes with os/exec —
// spec.md §1 names "the operating-system process/pipe primitives" as an
// external collaborator reached only through its interface, and os/exec is
// that interface; no pack example wires a third-party process-supervision
// library for ordinary foreground child spawning (DESIGN.md).
package procrun

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/wbarnes/lineshell/internal/shell"
)

// Stdio is the resolved set of stream endpoints a single external stage is
// launched with.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run spawns cmd with args and the given Stdio, waiting for it to exit.
// If the executable can't be located or started, it writes
// "<cmd>: command not found" to stdio.Stderr and returns nil — matching
// spec.md §4.G's "emit ... and return a synthetic terminated child" rather
// than propagating a Go error that would abort the REPL turn.
func Run(ctx context.Context, cmd string, args []string, stdio Stdio) error {
	path, err := exec.LookPath(cmd)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: command not found\n", cmd)
		return nil
	}

	c := exec.CommandContext(ctx, path, args...)
	c.Stdin = stdio.Stdin
	c.Stdout = stdio.Stdout
	c.Stderr = stdio.Stderr
	if c.Stdin == nil {
		c.Stdin = os.Stdin
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.Stderr == nil {
		c.Stderr = os.Stderr
	}

	if err := c.Start(); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: command not found\n", cmd)
		return nil
	}
	return c.Wait()
}

// ResolveStdio computes the Stdio for one external stage from its IOPlan
// (spec.md §4.G): a supplied stdin/stdout fd wins, else Truncate or
// Append opens the target file, else the stream is inherited.
func ResolveStdio(plan shell.IOPlan, stdin io.Reader, stdout io.Writer) (Stdio, []io.Closer, error) {
	var closers []io.Closer
	stdio := Stdio{Stdin: stdin, Stdout: stdout}

	if stdio.Stdout == nil {
		if plan.StdoutMode != shell.Inherit {
			f, err := openTarget(plan.StdoutTarget, plan.StdoutMode)
			if err != nil {
				return Stdio{}, nil, err
			}
			stdio.Stdout = f
			closers = append(closers, f)
		} else {
			stdio.Stdout = os.Stdout
		}
	}

	if plan.StderrMode != shell.Inherit {
		if plan.StderrTarget == plan.StdoutTarget && stdio.Stdout != os.Stdout {
			if f, ok := stdio.Stdout.(*os.File); ok {
				stdio.Stderr = f
			}
		}
		if stdio.Stderr == nil {
			f, err := openTarget(plan.StderrTarget, plan.StderrMode)
			if err != nil {
				return Stdio{}, nil, err
			}
			stdio.Stderr = f
			closers = append(closers, f)
		}
	} else {
		stdio.Stderr = os.Stderr
	}

	return stdio, closers, nil
}

func openTarget(path string, mode shell.RedirectMode) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == shell.Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
