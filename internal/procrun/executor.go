package procrun

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/wbarnes/lineshell/internal/builtins"
	"github.com/wbarnes/lineshell/internal/shell"
)

// Execute runs a fully parsed pipeline (spec.md §4.H): a single stage
// bypasses pipe allocation entirely and talks straight to the process's own
// stdio (rewritten per its IOPlan); two or more stages are wired together
// with anonymous pipes, one per junction, each end transferred into exactly
// one side of the chain and closed as soon as that side no longer needs it.
//
// A builtin stage runs inside the shell process, writing its OutputRecords
// into whatever the Output Router resolves for that stage (sink, pipe, or
// file); an external stage is spawned as a child process. A single stage
// runs in the calling goroutine; in a multi-stage pipeline every stage runs
// in its own goroutine and Execute returns once all of them have finished.
// Grounded on the teacher's executeSingle/executePipeline
// (internal/shell/pipeline.go), generalized from in-process commands.Command
// values talking to a remote API into real exec.Cmd children connected by
// OS pipes.
func Execute(ctx context.Context, env *builtins.Env, stages []shell.Stage) error {
	if len(stages) == 0 {
		return nil
	}
	if len(stages) == 1 {
		return runStage(ctx, env, stages[0], nil, true)
	}

	// One pipe per junction between adjacent stages: pipes[i] connects
	// stage i's stdout to stage i+1's stdin.
	pipes := make([]*pipeEnd, len(stages)-1)
	readEnds := make([]*pipeEnd, len(stages)-1)
	for i := range pipes {
		r, w, err := newPipe()
		if err != nil {
			for _, p := range pipes[:i] {
				p.Close()
			}
			for _, p := range readEnds[:i] {
				p.Close()
			}
			return fmt.Errorf("pipe: %w", err)
		}
		pipes[i] = w
		readEnds[i] = r
	}

	errs := make([]error, len(stages))
	done := make(chan int, len(stages))

	for i, stage := range stages {
		i, stage := i, stage
		var stdin *pipeEnd
		var stdout *pipeEnd
		if i > 0 {
			stdin = readEnds[i-1]
		}
		if i < len(stages)-1 {
			stdout = pipes[i]
		}
		terminal := i == len(stages)-1

		go func() {
			defer func() { done <- i }()
			errs[i] = runPipedStage(ctx, env, stage, stdin, stdout, terminal)
		}()
	}

	for range stages {
		<-done
	}

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// runPipedStage runs one stage of a multi-stage pipeline and closes its
// stdin/stdout pipe ends once it's done with them, regardless of which
// other goroutines still hold the remaining ends open.
func runPipedStage(ctx context.Context, env *builtins.Env, stage shell.Stage, stdin, stdout *pipeEnd, terminal bool) error {
	defer func() {
		if stdin != nil {
			stdin.Close()
		}
		if stdout != nil {
			stdout.Close()
		}
	}()

	var in io.Reader
	if stdin != nil {
		in = stdin.f
	}
	var out io.Writer
	if stdout != nil {
		out = stdout.f
	}

	return runStageIO(ctx, env, stage, in, out, terminal)
}

// runStage is the single-stage (no piping) entry point: stdio is resolved
// entirely from the stage's own IOPlan.
func runStage(ctx context.Context, env *builtins.Env, stage shell.Stage, stdin io.Reader, terminal bool) error {
	return runStageIO(ctx, env, stage, stdin, nil, terminal)
}

// runStageIO dispatches a stage to the Built-in Dispatcher or the External
// Process Runner. stdout, when non-nil, is a pipe write end overriding the
// stage's own stdout redirection per spec.md §9 item 3 — a non-terminal
// stage's parsed stdout IOPlan is never honored, only its stderr plan is.
func runStageIO(ctx context.Context, env *builtins.Env, stage shell.Stage, stdin io.Reader, stdout io.Writer, terminal bool) error {
	if builtins.IsBuiltin(stage.Cmd) {
		return runBuiltinStage(ctx, env, stage, stdout, terminal)
	}
	return runExternalStage(ctx, stage, stdin, stdout, terminal)
}

func runBuiltinStage(ctx context.Context, env *builtins.Env, stage shell.Stage, pipedStdout io.Writer, terminal bool) error {
	records, err := builtins.Run(ctx, env, stage.Cmd, stage.Args)
	if err != nil {
		return err
	}

	sink := builtins.ProcessSink()
	plan := ioPlanFor(stage.IO)
	if !terminal {
		// The pipe write end wins over any parsed (and, per §9 item 3,
		// inert) non-terminal stdout redirection.
		sink.Out = pipedStdout
		plan.StdoutMode = builtins.Inherit
		plan.StdoutTarget = ""
	}
	return builtins.Route(records, plan, sink)
}

// ioPlanFor converts a shell.IOPlan (the Redirection Parser's output) into
// the builtins package's own IOPlan, the boundary conversion that keeps
// internal/shell and internal/builtins from importing each other.
func ioPlanFor(p shell.IOPlan) builtins.IOPlan {
	return builtins.IOPlan{
		StdoutTarget: p.StdoutTarget,
		StdoutMode:   builtins.RedirectMode(p.StdoutMode),
		StderrTarget: p.StderrTarget,
		StderrMode:   builtins.RedirectMode(p.StderrMode),
	}
}

func runExternalStage(ctx context.Context, stage shell.Stage, stdin io.Reader, pipedStdout io.Writer, terminal bool) error {
	plan := stage.IO
	var presetStdout io.Writer
	if !terminal {
		presetStdout = pipedStdout
		plan.StdoutMode = shell.Inherit
		plan.StdoutTarget = ""
	}

	stdio, closers, err := ResolveStdio(plan, stdin, presetStdout)
	if err != nil {
		return err
	}
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()
	if stdio.Stdin == nil {
		stdio.Stdin = os.Stdin
	}

	return Run(ctx, stage.Cmd, stage.Args, stdio)
}
