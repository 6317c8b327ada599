// Package builtins implements the fixed set of built-in commands
// (spec.md §4.F) and the Output Router that renders their OutputRecords
// per stage IOPlan (spec.md §4.I).
//
// Builtins are value-returning — func(ctx, *Env, args) []OutputRecord —
// rather than printing directly, per spec.md §9's re-architecture
// guidance: this lets the Pipeline Executor redirect a builtin's output
// into a pipe endpoint without the builtin knowing it's part of a
// pipeline. Grounded on internal/commands/registry.go's Command.Run
// contract, generalized from "ambient I/O to a session-scoped
// ExecutionEnv" to "return records, let the caller route them".
package builtins

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/wbarnes/lineshell/internal/history"
)

// Stream identifies which of a command's two output streams a record
// belongs to.
type Stream int

const (
	Out Stream = iota
	Err
)

// OutputRecord is one line of builtin output (spec.md §3).
type OutputRecord struct {
	Text   string
	Stream Stream
}

func outRec(format string, a ...any) OutputRecord { return OutputRecord{Text: fmt.Sprintf(format, a...), Stream: Out} }
func errRec(format string, a ...any) OutputRecord { return OutputRecord{Text: fmt.Sprintf(format, a...), Stream: Err} }

// Names is the fixed set of built-in command names (spec.md §4.F),
// exported so the Completion Index (internal/shell) can union them with
// PATH-resident executables.
var Names = []string{"exit", "echo", "type", "pwd", "cd", "history"}

// IsBuiltin reports whether name is one of the built-in commands.
func IsBuiltin(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

// Env carries the ambient state builtins need: the current working
// directory (mutated by cd), and the shared HistoryStore (spec.md §3).
type Env struct {
	CWD     string
	History *history.Store
}

// ExitError is returned by Run when the exit builtin was invoked; the REPL
// loop checks for it with errors.As and terminates with Code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit %d", e.Code) }

// Run dispatches to the named builtin. It is only ever called with a name
// for which IsBuiltin reports true.
func Run(ctx context.Context, env *Env, name string, args []string) ([]OutputRecord, error) {
	switch name {
	case "exit":
		return nil, runExit(args)
	case "echo":
		return runEcho(args), nil
	case "type":
		return runType(env, args), nil
	case "pwd":
		return runPwd(env), nil
	case "cd":
		return runCd(env, args), nil
	case "history":
		return runHistory(env, args), nil
	}
	return nil, fmt.Errorf("%s: not a builtin", name)
}

// runExit implements spec.md §9 item 1: no argument, or an argument that
// doesn't parse as an integer, exits 0; a parseable integer argument exits
// with that status truncated to a byte, matching POSIX exit-status
// semantics instead of the source's inconsistent across-iteration handling.
func runExit(args []string) error {
	code := 0
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			code = n & 0xFF
		}
	}
	return &ExitError{Code: code}
}

func runEcho(args []string) []OutputRecord {
	return []OutputRecord{outRec("%s", strings.Join(args, " "))}
}

func runType(env *Env, args []string) []OutputRecord {
	var recs []OutputRecord
	for _, name := range args {
		if IsBuiltin(name) {
			recs = append(recs, outRec("%s is a shell builtin", name))
			continue
		}
		path, ok := os.LookupEnv("PATH")
		if !ok {
			recs = append(recs, errRec("failed to get path variable"))
			continue
		}
		full, err := exec.LookPath(withPath(name, path))
		if err != nil {
			recs = append(recs, errRec("%s: not found", name))
			continue
		}
		recs = append(recs, outRec("%s is %s", name, full))
	}
	return recs
}

// withPath is a no-op placeholder for the LookPath call above; exec.LookPath
// already consults the PATH environment variable directly. It exists so the
// §9 item 2 decision — always PATH, never the lower-case "path" bug some
// source iterations had — is visible at the call site rather than implicit.
func withPath(name, _ string) string { return name }

func runPwd(env *Env) []OutputRecord {
	return []OutputRecord{outRec("%s", env.CWD)}
}

func runCd(env *Env, args []string) []OutputRecord {
	if len(args) == 0 {
		return nil
	}
	if len(args) > 1 {
		return []OutputRecord{errRec("cd: too many arguments")}
	}

	target := args[0]
	if target == "~" || strings.HasPrefix(target, "~/") {
		home, err := homeDir()
		if err != nil {
			// §4.F: report the error but still attempt the literal,
			// un-expanded path.
			return append(
				[]OutputRecord{errRec("could not determine the home directory.")},
				cdTo(env, target)...,
			)
		}
		target = home + strings.TrimPrefix(target, "~")
	}

	return cdTo(env, target)
}

func cdTo(env *Env, target string) []OutputRecord {
	if !dirExists(target) {
		return []OutputRecord{errRec("cd: %s: No such file or directory", target)}
	}
	if err := os.Chdir(target); err != nil {
		return []OutputRecord{errRec("cd: %s: No such file or directory", target)}
	}
	if cwd, err := os.Getwd(); err == nil {
		env.CWD = cwd
	} else {
		env.CWD = target
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func homeDir() (string, error) {
	if h, ok := os.LookupEnv("HOME"); ok && h != "" {
		return h, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.HomeDir, nil
}

// runHistory implements spec.md §4.F's history builtin. Flag parsing uses
// github.com/spf13/pflag (grounded on internal/commands.ReorderArgsForFlags,
// itself built around a pflag.FlagSet) instead of hand-rolled prefix
// checks, since -r/-w/-a/N can't all be positional.
func runHistory(env *Env, args []string) []OutputRecord {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	fs.SetOutput(nopWriter{})
	read := fs.StringP("read", "r", "", "")
	write := fs.StringP("write", "w", "", "")
	appendPath := fs.StringP("append", "a", "", "")
	if err := fs.Parse(args); err != nil {
		return []OutputRecord{errRec("history: %v", err)}
	}

	switch {
	case *read != "":
		if err := env.History.Load(*read); err != nil {
			return []OutputRecord{errRec("history: %v", err)}
		}
		return nil
	case *write != "":
		if err := env.History.Save(*write); err != nil {
			return []OutputRecord{errRec("history: %v", err)}
		}
		return nil
	case *appendPath != "":
		if err := env.History.Append(*appendPath); err != nil {
			return []OutputRecord{errRec("history: %v", err)}
		}
		return nil
	}

	entries := env.History.Entries()
	start := 0
	if rest := fs.Args(); len(rest) > 0 {
		if n, err := strconv.Atoi(rest[0]); err == nil && n >= 0 && n < len(entries) {
			start = len(entries) - n
		}
	}

	var b strings.Builder
	for i := start; i < len(entries); i++ {
		fmt.Fprintf(&b, "\t%d %s\n", i+1, entries[i])
	}
	text := strings.TrimSuffix(b.String(), "\n")
	if text == "" {
		return nil
	}
	return []OutputRecord{{Text: text, Stream: Out}}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
