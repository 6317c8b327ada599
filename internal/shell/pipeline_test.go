package shell_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbarnes/lineshell/internal/lexer"
	"github.com/wbarnes/lineshell/internal/shell"
)

func split(t *testing.T, line string) []shell.Stage {
	t.Helper()
	stages, err := shell.SplitStages(lexer.Tokenize(line))
	require.NoError(t, err)
	return stages
}

func TestSplitStages_NoPipeIsOneStage(t *testing.T) {
	stages := split(t, "echo one two three")
	require.Len(t, stages, 1)
	assert.Equal(t, "echo", stages[0].Cmd)
	assert.Equal(t, []string{"one", "two", "three"}, stages[0].Args)
}

func TestSplitStages_Pipeline(t *testing.T) {
	stages := split(t, "echo one | cat | wc -l")
	require.Len(t, stages, 3)
	assert.Equal(t, "echo", stages[0].Cmd)
	assert.Equal(t, "cat", stages[1].Cmd)
	assert.Equal(t, "wc", stages[2].Cmd)
	assert.Equal(t, []string{"-l"}, stages[2].Args)
}

func TestSplitStages_LeadingTrailingOrDoublePipeIsSyntaxError(t *testing.T) {
	for _, line := range []string{"| echo hi", "echo hi |", "echo hi | | cat"} {
		_, err := shell.SplitStages(lexer.Tokenize(line))
		assert.Error(t, err, line)
	}
}

func TestRedirection_Truncate(t *testing.T) {
	stages := split(t, "echo hi > out.txt")
	require.Len(t, stages, 1)
	assert.Equal(t, []string{"hi"}, stages[0].Args)
	assert.Equal(t, "out.txt", stages[0].IO.StdoutTarget)
	assert.Equal(t, shell.Truncate, stages[0].IO.StdoutMode)
}

func TestRedirection_AppendAndStderr(t *testing.T) {
	stages := split(t, "cmd >> a.log 2>> b.log")
	io := stages[0].IO
	assert.Equal(t, "a.log", io.StdoutTarget)
	assert.Equal(t, shell.Append, io.StdoutMode)
	assert.Equal(t, "b.log", io.StderrTarget)
	assert.Equal(t, shell.Append, io.StderrMode)
}

func TestRedirection_NumberedStdout(t *testing.T) {
	stages := split(t, "cmd 1> out.txt")
	assert.Equal(t, "out.txt", stages[0].IO.StdoutTarget)
	assert.Equal(t, shell.Truncate, stages[0].IO.StdoutMode)
}

func TestRedirection_LastWins(t *testing.T) {
	stages := split(t, "echo x > a > b")
	assert.Equal(t, "b", stages[0].IO.StdoutTarget)
	assert.Equal(t, shell.Truncate, stages[0].IO.StdoutMode)
}

func TestRedirection_MissingTargetIsSyntaxError(t *testing.T) {
	_, err := shell.SplitStages(lexer.Tokenize("echo hi >"))
	assert.Error(t, err)
}

func TestRedirection_NoTokenEqualsOperatorLiteralAfterParsing(t *testing.T) {
	stages := split(t, "cmd a 2> err.txt b >> out.txt c")
	ops := map[string]bool{"|": true, ">": true, "1>": true, "2>": true, ">>": true, "1>>": true, "2>>": true}
	for _, arg := range stages[0].Args {
		assert.False(t, ops[arg], "arg %q should not be a redirection operator", arg)
	}
	assert.Equal(t, []string{"a", "b", "c"}, stages[0].Args)
}
