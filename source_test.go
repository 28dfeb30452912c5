package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_PeekGetMatch(t *testing.T) {
	s := NewSource("ab")
	assert.Equal(t, byte('a'), s.Peek())
	assert.Equal(t, byte('a'), s.Get())
	assert.True(t, s.Match('b'))
	assert.False(t, s.Valid())
	assert.Equal(t, byte(0), s.Peek())
}

func TestSource_PeekAt(t *testing.T) {
	s := NewSource("<|x")
	assert.Equal(t, byte('<'), s.PeekAt(0))
	assert.Equal(t, byte('|'), s.PeekAt(1))
	assert.Equal(t, byte('x'), s.PeekAt(2))
	assert.Equal(t, byte(0), s.PeekAt(3))
	assert.Equal(t, byte(0), s.PeekAt(-1))
}

func TestSource_PositionRoundTrip(t *testing.T) {
	s := NewSource("line one\nline two")
	s.Get()
	s.Get()
	p := s.Position()
	for s.Valid() {
		s.Get()
	}
	assert.True(t, s.Line() > 0)
	s.SetPosition(p)
	assert.Equal(t, 0, s.Line())
	assert.Equal(t, byte('n'), s.Peek())
}

func TestSource_SkipWhitespaceStopsAtNewline(t *testing.T) {
	s := NewSource("  \t x\ny")
	require.True(t, s.SkipWhitespace())
	assert.Equal(t, byte('x'), s.Peek())
	s.Get()
	assert.Equal(t, byte('\n'), s.Peek())
}

func TestSource_SkipWhitespaceAndNewlineConsumesComment(t *testing.T) {
	s := NewSource("  % a comment\nx")
	require.True(t, s.SkipWhitespaceAndNewline())
	assert.Equal(t, byte('x'), s.Peek())
}

func TestSource_GetIdentifierVsAlphaIdentifier(t *testing.T) {
	s := NewSource("if3 rest")
	id, ok := s.GetAlphaIdentifier()
	require.True(t, ok)
	assert.Equal(t, "if", id, "GetAlphaIdentifier must not swallow trailing digits")

	s2 := NewSource("if3 rest")
	id2, ok := s2.GetIdentifier()
	require.True(t, ok)
	assert.Equal(t, "if3", id2)
}

func TestSource_GetStringLiteral(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"plain", `"hello"`, "hello"},
		{"escaped closing quote", `"a\"b"`, `a"b`},
		{"backslash not before quote passes through", `"a\nb"`, `a\nb`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSource(tc.src)
			got, ok := s.GetStringLiteral()
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
			assert.False(t, s.Valid(), "the literal should consume the whole input")
		})
	}
}

func TestSource_GetStringLiteral_Unterminated(t *testing.T) {
	s := NewSource(`"unterminated`)
	_, ok := s.GetStringLiteral()
	assert.False(t, ok)
}
