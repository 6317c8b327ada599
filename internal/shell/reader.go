package shell

import (
	"errors"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/wbarnes/lineshell/internal/history"
	"github.com/wbarnes/lineshell/internal/lexer"
	"github.com/wbarnes/lineshell/internal/ui"
)

// PrimaryPrompt and ContinuationPrompt are the two prompt strings from
// spec.md §6.
const (
	PrimaryPrompt      = "$ "
	ContinuationPrompt = "> "
)

// Reader is the Line Reader (spec.md §4.B): it prompts, reads one or more
// physical lines through readline until the Lexer reports balanced
// quoting, and appends every non-empty physical line to history.
type Reader struct {
	rl          *readline.Instance
	lex         *lexer.Lexer
	hist        *history.Store
	continuing  bool
	interactive bool
}

// NewReader wraps rl (already configured with an AutoCompleter and history
// file by the caller) as a Reader. hist receives every non-empty physical
// line as it's read, regardless of whether it's the first or a
// continuation line of a logical line (spec.md §4.B). interactive controls
// whether styled prompts are drawn at all: a piped/non-tty stdin
// (golang.org/x/term's IsTerminal, grounded on the teacher's
// commands/text.go isTerminal helper) still reads and executes logical
// lines but shows no prompt text, matching how POSIX shells behave when
// stdin isn't a controlling terminal.
func NewReader(rl *readline.Instance, hist *history.Store) *Reader {
	return &Reader{
		rl:          rl,
		lex:         lexer.New(),
		hist:        hist,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// ReadLine returns one logical line's tokens. EOF or a read error yields an
// empty slice and ok=false so the REPL loop can terminate cleanly
// (spec.md §7: "Line-read EOF: terminates the shell cleanly"). An
// interrupted read (Ctrl-C) discards the in-progress buffer and returns an
// empty, ok=true result so the REPL reprompts (spec.md §4.B, §5).
func (r *Reader) ReadLine() (tokens []string, ok bool) {
	for {
		r.setPrompt()

		line, err := r.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			r.lex = lexer.New()
			r.continuing = false
			return nil, true
		}
		if err == io.EOF || err != nil {
			return nil, false
		}

		if r.hist != nil {
			r.hist.Add(line)
		}

		toks, complete := r.lex.Feed(line)
		if !complete {
			r.continuing = true
			continue
		}
		r.lex = lexer.New()
		r.continuing = false
		return toks, true
	}
}

func (r *Reader) setPrompt() {
	if !r.interactive {
		r.rl.SetPrompt("")
		return
	}
	if r.continuing {
		r.rl.SetPrompt(ui.RenderPrompt(ContinuationPrompt))
		return
	}
	r.rl.SetPrompt(ui.RenderPrompt(PrimaryPrompt))
}
