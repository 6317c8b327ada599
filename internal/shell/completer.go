package shell

import (
	"strings"

	"github.com/chzyer/readline"
)

// completer adapts Index to readline.AutoCompleter (spec.md §4.B: "reads are
// delegated to the terminal-editing collaborator which provides tab
// completion by calling 4.A with the current prefix"). Only the command
// name — the first word of the line — is completed; spec.md §2 scopes
// completion to "built-ins and path-resident executables", not arbitrary
// argument paths.
type completer struct {
	idx *Index
}

// NewCompleter returns a readline.AutoCompleter backed by idx, grounded on
// the teacher's DrimeCompleter.Do / completeCommand (internal/shell/completer.go).
func NewCompleter(idx *Index) readline.AutoCompleter {
	return &completer{idx: idx}
}

func (c *completer) Do(line []rune, pos int) (newLine [][]rune, length int) {
	prefix := string(line[:pos])
	if strings.ContainsAny(prefix, " \t") {
		// Not completing the first word; spec scopes completion to command
		// names only.
		return nil, 0
	}

	matches := c.idx.Candidates(prefix)
	result := make([][]rune, len(matches))
	for i, m := range matches {
		result[i] = []rune(m[len(prefix):])
	}
	return result, len(prefix)
}
