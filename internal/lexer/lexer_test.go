package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retroscript/rs/internal/token"
)

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestTokenize_Arithmetic(t *testing.T) {
	toks, err := Tokenize("set $x = 2 + 3 * 4")
	require.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.SET, token.VARIABLE, token.ASSIGN, token.NUMBER, token.PLUS,
		token.NUMBER, token.STAR, token.NUMBER, token.EOF,
	}, types(toks))
	assert.Equal(t, "x", toks[1].Value)
	assert.Equal(t, 2.0, toks[3].Value)
}

func TestTokenize_StringEscapes(t *testing.T) {
	toks, err := Tokenize(`"a\nb\t\"c\""`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, "a\nb\t\"c\"", toks[0].Value)
}

func TestTokenize_UnterminatedString(t *testing.T) {
	_, err := Tokenize(`"unterminated`)
	require.Error(t, err)
}

func TestTokenize_Comment(t *testing.T) {
	toks, err := Tokenize("set $x = 1 # trailing comment\nprint $x")
	require.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.SET, token.VARIABLE, token.ASSIGN, token.NUMBER, token.NEWLINE,
		token.PRINT, token.VARIABLE, token.EOF,
	}, types(toks))
}

func TestTokenize_DottedVariable(t *testing.T) {
	toks, err := Tokenize("$a.b.c")
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", toks[0].Value)
}

func TestTokenize_UnicodeIdentifier(t *testing.T) {
	toks, err := Tokenize("set $résumé = 1")
	require.NoError(t, err)
	assert.Equal(t, token.VARIABLE, toks[1].Type)
	assert.Equal(t, "résumé", toks[1].Value)
}

func TestTokenize_ColonNotPartOfIdentifier(t *testing.T) {
	toks, err := Tokenize("on window:open { }")
	require.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.ON, token.IDENTIFIER, token.COLON, token.OPEN,
		token.LBRACE, token.RBRACE, token.EOF,
	}, types(toks))
}

func TestTokenize_Operators(t *testing.T) {
	toks, err := Tokenize("== != <= >= && || ! & |")
	require.NoError(t, err)
	assert.Equal(t, []token.Type{
		token.EQ, token.NEQ, token.LTE, token.GTE, token.AND, token.OR,
		token.NOT, token.AMP, token.PIPE, token.EOF,
	}, types(toks))
}

func TestTokenize_KeywordsCaseInsensitive(t *testing.T) {
	toks, err := Tokenize("IF True Else")
	require.NoError(t, err)
	assert.Equal(t, token.IF, toks[0].Type)
	assert.Equal(t, token.TRUE, toks[1].Type)
	assert.Equal(t, token.ELSE, toks[2].Type)
}

func TestTokenize_LineColumnTracking(t *testing.T) {
	toks, err := Tokenize("set $x = 1\nprint $x")
	require.NoError(t, err)
	// the second 'print' statement starts on line 2
	for _, tok := range toks {
		if tok.Type == token.PRINT {
			assert.Equal(t, 2, tok.Line)
		}
	}
}
