package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipScope_LeavesCursorOnMatchingDot(t *testing.T) {
	ev := NewEvaluator(`: set x 1 . REST`)
	require.NoError(t, ev.skipScope())
	assert.Equal(t, byte('.'), ev.src.Peek())
	ev.src.Get()
	assert.True(t, ev.src.Match(' '))
	rest, ok := ev.src.GetIdentifier()
	require.True(t, ok)
	assert.Equal(t, "REST", rest)
}

func TestSkipScope_HandlesNesting(t *testing.T) {
	ev := NewEvaluator(`: if x : set y 1 . . REST`)
	require.NoError(t, ev.skipScope())
	assert.Equal(t, byte('.'), ev.src.Peek())
}

func TestSkipScope_IgnoresColonsAndDotsInsideStrings(t *testing.T) {
	ev := NewEvaluator(`: set s "a: weird . string" . REST`)
	require.NoError(t, ev.skipScope())
	assert.Equal(t, byte('.'), ev.src.Peek())
}

func TestSkipScope_EscapedQuoteInsideStringDoesNotEndString(t *testing.T) {
	ev := NewEvaluator(`: set s "a \" . still inside" . REST`)
	require.NoError(t, ev.skipScope())
	assert.Equal(t, byte('.'), ev.src.Peek())
}

func TestSkipScope_IgnoresColonsAndDotsInComments(t *testing.T) {
	ev := NewEvaluator(": set x 1 % a . weird : comment\n. REST")
	require.NoError(t, ev.skipScope())
	assert.Equal(t, byte('.'), ev.src.Peek())
}

func TestSkipScope_UnterminatedIsSyntaxError(t *testing.T) {
	ev := NewEvaluator(`: set x 1`)
	err := ev.skipScope()
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, SyntaxError, evalErr.Kind)
}
