package builtins

import (
	"fmt"
	"io"
	"os"
)

// RedirectMode and IOPlan mirror internal/shell's Stage.IO shape. They are
// redeclared here, rather than imported, so that internal/shell (which
// needs builtins.Env/ExitError to drive the REPL loop) and internal/builtins
// (which needs to know where to route a builtin's output) don't import each
// other. internal/procrun, which depends on both packages, converts a
// shell.IOPlan into this type at the boundary (see ioPlanFor in
// internal/procrun/executor.go).
type RedirectMode int

const (
	Inherit RedirectMode = iota
	Truncate
	Append
)

// IOPlan is the per-stream disposition the Output Router renders against.
type IOPlan struct {
	StdoutTarget string
	StdoutMode   RedirectMode
	StderrTarget string
	StderrMode   RedirectMode
}

// Sink is where the Output Router writes Out/Err records when a stream's
// IOPlan mode is Inherit. The Pipeline Executor supplies a pipe's write end
// here for a non-terminal stage's stdout (spec.md §4.H); a single-stage
// command gets the process's own stdout/stderr.
type Sink struct {
	Out io.Writer
	Err io.Writer
}

// ProcessSink is the default Sink for a standalone (non-piped) command.
func ProcessSink() Sink { return Sink{Out: os.Stdout, Err: os.Stderr} }

// Route renders records per plan (spec.md §4.I): Inherit writes to sink,
// Truncate/Append open (or reuse) the target file. To guarantee a file is
// created even for zero records, Route opens every non-empty target before
// writing any record, regardless of whether records end up routed there.
func Route(records []OutputRecord, plan IOPlan, sink Sink) error {
	var outFile, errFile *os.File
	defer func() {
		if outFile != nil {
			outFile.Close()
		}
		if errFile != nil && errFile != outFile {
			errFile.Close()
		}
	}()

	if plan.StdoutTarget != "" {
		f, err := openTarget(plan.StdoutTarget, plan.StdoutMode)
		if err != nil {
			return err
		}
		outFile = f
	}
	if plan.StderrTarget != "" {
		if plan.StderrTarget == plan.StdoutTarget && outFile != nil {
			errFile = outFile
		} else {
			f, err := openTarget(plan.StderrTarget, plan.StderrMode)
			if err != nil {
				return err
			}
			errFile = f
		}
	}

	for _, rec := range records {
		var w io.Writer
		switch rec.Stream {
		case Out:
			if outFile != nil {
				w = outFile
			} else {
				w = sink.Out
			}
		case Err:
			if errFile != nil {
				w = errFile
			} else {
				w = sink.Err
			}
		}
		if _, err := fmt.Fprintln(w, rec.Text); err != nil {
			return err
		}
	}
	return nil
}

func openTarget(path string, mode RedirectMode) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	switch mode {
	case Append:
		flags |= os.O_APPEND
	default:
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
