package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbarnes/lineshell/internal/lexer"
)

func TestTokenize_Words(t *testing.T) {
	assert.Equal(t, []string{"echo", "hello", "world"}, lexer.Tokenize("echo hello world"))
}

func TestTokenize_SingleQuotePreservesSpacesAndBackslashes(t *testing.T) {
	assert.Equal(t, []string{"echo", "foo   bar"}, lexer.Tokenize(`echo 'foo   bar'`))
	assert.Equal(t, []string{`a\b`}, lexer.Tokenize(`'a\b'`))
}

func TestTokenize_DoubleQuoteEscapesOnlyQuoteAndBackslash(t *testing.T) {
	// \" collapses to "
	assert.Equal(t, []string{`a"b`}, lexer.Tokenize(`"a\"b"`))
	// \\ collapses to \
	assert.Equal(t, []string{`a\b`}, lexer.Tokenize(`"a\\b"`))
	// \n (unrecognized escape target) keeps the backslash
	assert.Equal(t, []string{`a\nb`}, lexer.Tokenize(`"a\nb"`))
	// \$ and \` are no longer special escape targets (variables/substitution
	// are out of scope), so the backslash survives literally.
	assert.Equal(t, []string{`a\$b`}, lexer.Tokenize(`"a\$b"`))
}

func TestTokenize_EscapeOutsideQuotesTakesNextCharLiterally(t *testing.T) {
	assert.Equal(t, []string{"a b"}, lexer.Tokenize(`a\ b`))
	assert.Equal(t, []string{"a'b"}, lexer.Tokenize(`a\'b`))
}

func TestTokenize_NoQuotesNoSpecialHandling(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, lexer.Tokenize("  a   b  c  "))
}

func TestFeed_UnclosedSingleQuoteRequestsContinuation(t *testing.T) {
	l := lexer.New()
	tokens, complete := l.Feed("'unclosed")
	assert.False(t, complete)
	assert.Nil(t, tokens)

	tokens, complete = l.Feed("closed'")
	require.True(t, complete)
	assert.Equal(t, []string{"unclosedclosed"}, tokens)
}

func TestFeed_UnclosedDoubleQuoteRequestsContinuation(t *testing.T) {
	l := lexer.New()
	_, complete := l.Feed(`echo "foo`)
	assert.False(t, complete)

	tokens, complete := l.Feed(`bar"`)
	require.True(t, complete)
	assert.Equal(t, []string{"echo", "foobar"}, tokens)
}

func TestFeed_BalancedLineIsImmediatelyComplete(t *testing.T) {
	l := lexer.New()
	tokens, complete := l.Feed("echo hi")
	require.True(t, complete)
	assert.Equal(t, []string{"echo", "hi"}, tokens)
}

func TestFeed_ReaderAndLexerAgreeOnConcatenation(t *testing.T) {
	// Property from spec.md §8: feeding physical lines incrementally yields
	// the same tokens as lexing their direct concatenation at once — a
	// continuation line's characters continue the still-open token with no
	// newline spliced in between.
	l := lexer.New()
	_, complete := l.Feed("'a")
	require.False(t, complete)
	got, complete := l.Feed("b'")
	require.True(t, complete)

	want := lexer.Tokenize("'ab'")
	assert.Equal(t, want, got)
}

func TestTokenize_RedirectionAndPipeTokensAreOrdinaryWords(t *testing.T) {
	// The lexer only produces word tokens; recognizing '|' / '>' etc. as
	// operators is the Pipeline Splitter's and Redirection Parser's job.
	assert.Equal(t, []string{"echo", "hi", ">", "out.txt", "|", "cat"}, lexer.Tokenize("echo hi > out.txt | cat"))
}
