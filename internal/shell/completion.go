package shell

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// winExecExts is the Windows executable extension allow-list from spec.md
// §4.A. Matching is case-insensitive.
var winExecExts = map[string]bool{".exe": true, ".bat": true, ".cmd": true}

// Index is the Completion Index (spec.md §4.A): the sorted union of
// executable basenames reachable on PATH and the fixed builtin name set.
// It is built once at startup and names is never modified afterwards (there
// is no rebuild), so a lookup iterates an unchanging slice — avoiding the
// mutation-during-iteration pitfall spec.md §9 calls out in the teacher's
// source.
type Index struct {
	names []string // sorted, de-duplicated
}

// NewIndex scans every directory on PATH plus the given builtin names and
// returns a ready-to-use Index. Entries that can't be read (missing
// directory, permission error) are skipped rather than failing startup,
// since a broken PATH entry shouldn't prevent the shell from starting.
func NewIndex(path string, builtins []string) *Index {
	seen := make(map[string]bool, len(builtins))
	for _, b := range builtins {
		seen[b] = true
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !isExecutableEntry(e) {
				continue
			}
			seen[e.Name()] = true
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return &Index{names: names}
}

func isExecutableEntry(e os.DirEntry) bool {
	info, err := e.Info()
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return winExecExts[strings.ToLower(filepath.Ext(e.Name()))]
	}
	return info.Mode()&0111 != 0
}

// Candidates returns the sorted names beginning with prefix. When exactly
// one candidate matches, a trailing space is appended to its entry,
// signaling the completer to commit the word and advance (spec.md §4.A).
func (idx *Index) Candidates(prefix string) []string {
	var matches []string
	// names is sorted, so matches form a contiguous run; a linear scan is
	// simple and fast enough for a PATH-sized candidate set.
	for _, n := range idx.names {
		if strings.HasPrefix(n, prefix) {
			matches = append(matches, n)
		}
	}
	if len(matches) == 1 {
		matches[0] += " "
	}
	return matches
}
