package virtualscreen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizer_TextRunsCoalesceMaximally(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Feed("Hello, World!")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenText, tokens[0].Kind)
	assert.Equal(t, "Hello, World!", tokens[0].Text)
}

func TestTokenizer_ControlsSplitTextRuns(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Feed("ab\ncd")
	require.Len(t, tokens, 3)
	assert.Equal(t, Token{Kind: TokenText, Text: "ab"}, tokens[0])
	assert.Equal(t, TokenControl, tokens[1].Kind)
	assert.Equal(t, ControlLF, tokens[1].Control)
	assert.Equal(t, Token{Kind: TokenText, Text: "cd"}, tokens[2])
}

func TestTokenizer_RecognizedC0Controls(t *testing.T) {
	cases := []struct {
		input string
		want  ControlCode
	}{
		{"\n", ControlLF},
		{"\r", ControlCR},
		{"\b", ControlBS},
		{"\t", ControlHT},
		{"\a", ControlBEL},
		{"\v", ControlVT},
		{"\f", ControlFF},
	}
	for _, c := range cases {
		t.Run(c.want.String(), func(t *testing.T) {
			tok := NewTokenizer()
			tokens := tok.Feed(c.input)
			require.Len(t, tokens, 1)
			assert.Equal(t, TokenControl, tokens[0].Kind)
			assert.Equal(t, c.want, tokens[0].Control)
		})
	}
}

func TestTokenizer_CSICommand(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Feed("\x1b[3D")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenCommand, tokens[0].Kind)
	assert.Equal(t, Command{Kind: CmdCursorBack, N: 3}, tokens[0].Command)
}

func TestTokenizer_CSIDefaultParam(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Feed("\x1b[A")
	require.Len(t, tokens, 1)
	assert.Equal(t, Command{Kind: CmdCursorUp, N: 1}, tokens[0].Command)
}

func TestTokenizer_CSIPositionTwoParams(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Feed("\x1b[2;3H")
	require.Len(t, tokens, 1)
	assert.Equal(t, Command{Kind: CmdCursorPosition, Row: 1, Col: 2}, tokens[0].Command)
}

func TestTokenizer_IncompleteEscapeIsInvalid(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Feed("\x1bQ")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenInvalid, tokens[0].Kind)
}

func TestTokenizer_UnknownFinalByteIsInvalid(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Feed("\x1b[5Z")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenInvalid, tokens[0].Kind)
}

func TestTokenizer_UnknownClearModeIsInvalid(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Feed("\x1b[9J")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenInvalid, tokens[0].Kind)
}

func TestTokenizer_SGRParamsDiscarded(t *testing.T) {
	tok := NewTokenizer()
	tokens := tok.Feed("\x1b[1;31m")
	require.Len(t, tokens, 1)
	assert.Equal(t, Command{Kind: CmdSetGraphicsRendition}, tokens[0].Command)
}

func TestTokenizer_CSISplitAcrossFeedCallsResumes(t *testing.T) {
	tok := NewTokenizer()
	first := tok.Feed("\x1b[2")
	assert.Empty(t, first)

	second := tok.Feed(";3H")
	require.Len(t, second, 1)
	assert.Equal(t, Command{Kind: CmdCursorPosition, Row: 1, Col: 2}, second[0].Command)
}

func TestTokenizer_EscapeSeenSplitAcrossFeedCallsResumes(t *testing.T) {
	tok := NewTokenizer()
	first := tok.Feed("\x1b")
	assert.Empty(t, first)

	second := tok.Feed("[A")
	require.Len(t, second, 1)
	assert.Equal(t, Command{Kind: CmdCursorUp, N: 1}, second[0].Command)
}

func TestTokenizer_EquivalentToOneCallWhenNotSplitMidEscape(t *testing.T) {
	whole := NewTokenizer().Feed("Hello\x1b[2J World")

	split := NewTokenizer()
	a := split.Feed("Hello")
	b := split.Feed("\x1b[2J World")

	assert.Equal(t, whole, append(a, b...))
}
