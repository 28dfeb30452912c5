package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run interprets src to completion and returns the Evaluator for
// post-mortem inspection, the way the teacher's vmTestCase.run drives a VM
// and then lets the caller assert against its final state.
func run(t *testing.T, src string) (*Evaluator, error) {
	t.Helper()
	ev := New(src)
	err := ev.Run(context.Background())
	return ev, err
}

// spec.md §8 scenario 1.
func TestEndToEnd_SetRebindsGlobal(t *testing.T) {
	ev, err := run(t, "int x 3\nset x 4\n")
	require.NoError(t, err)
	v, ok := ev.state.findObject("x")
	require.True(t, ok)
	assert.Equal(t, Value{Kind: Integer, Int: 4}, v)
	assert.Empty(t, ev.state.stack, "expected stack balance after both statements")
}

// spec.md §8 scenario 2.
func TestEndToEnd_FunctionCallLeavesReturnValue(t *testing.T) {
	ev, err := run(t, "function f(int a, int b,) : return a + b . \ncall f(2, 3,)")
	require.NoError(t, err)
	require.Len(t, ev.state.stack, 1)
	assert.Equal(t, Value{Kind: Integer, Int: 5}, ev.state.top())
	assert.Equal(t, 1, ev.state.depth(), "call scope must have been popped")
}

// spec.md §8 scenario 3.
func TestEndToEnd_FalseIfSkipsBody(t *testing.T) {
	ev, err := run(t, "if ~ : set x 1 .")
	require.NoError(t, err)
	_, ok := ev.state.findObject("x")
	assert.False(t, ok, "x must not be bound; the if body was never evaluated")
	assert.Empty(t, ev.state.stack)
}

// spec.md §8 scenario 4.
func TestEndToEnd_InitializerKindMismatchIsTypeError(t *testing.T) {
	_, err := run(t, `int x "hi"`)
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, TypeError, evalErr.Kind)
}

// spec.md §8 scenario 5.
func TestEndToEnd_UnboundGetIsReferenceError(t *testing.T) {
	_, err := run(t, "get y")
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, ReferenceError, evalErr.Kind)
}

// spec.md §8 scenario 6.
func TestEndToEnd_ArraySubscript(t *testing.T) {
	ev, err := run(t, "array int a [int 10, 20, 30]\nget a[int 1]")
	require.NoError(t, err)
	require.Len(t, ev.state.stack, 1)
	assert.Equal(t, Value{Kind: Integer, Int: 20}, ev.state.top())
}

func TestEndToEnd_Precedence(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Value
	}{
		{"mul before add", "set r 1 + 2 * 3", Value{Kind: Integer, Int: 7}},
		{"parens override", "set r (1 + 2) * 3", Value{Kind: Integer, Int: 9}},
		{"left assoc sub", "set r 1 - 2 - 3", Value{Kind: Integer, Int: -4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := run(t, "int r 0\n"+tc.src)
			require.NoError(t, err)
			v, ok := ev.state.findObject("r")
			require.True(t, ok)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestEndToEnd_MutualCast(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Value
	}{
		{"int+float promotes", "float r 0.0\nset r 1 + 2.5", Value{Kind: Floating, Float: 3.5}},
		{"int/int truncates", "int r 0\nset r 5 / 2", Value{Kind: Integer, Int: 2}},
		{"float/int promotes", "float r 0.0\nset r 5.0 / 2", Value{Kind: Floating, Float: 2.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ev, err := run(t, tc.src)
			require.NoError(t, err)
			v, ok := ev.state.findObject("r")
			require.True(t, ok)
			assert.Equal(t, tc.want, v)
		})
	}
}

func TestEndToEnd_DivisionByZeroIsTypeError(t *testing.T) {
	_, err := run(t, "int r 5 / 0")
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, TypeError, evalErr.Kind)
}

// loop runs its body while its condition is truthy, re-testing the
// condition from the saved pre-expression position each time.
func TestEndToEnd_Loop(t *testing.T) {
	ev, err := run(t, "int n 0\nint total 0\nloop n - 3 : set total total + n\nset n n + 1 .")
	require.NoError(t, err)
	total, ok := ev.state.findObject("total")
	require.True(t, ok)
	assert.Equal(t, Value{Kind: Integer, Int: 3}, total, "0+1+2 while n<3")
}

// findObject must walk every enclosing scope, not just the innermost one
// (spec.md §4.4/§9 -- the source's recursion never advances past the first
// scope; this is the corrected contract).
func TestFindObject_WalksAllScopes(t *testing.T) {
	ev, err := run(t, "function f() : return y .\nint y 9\ncall f()")
	require.NoError(t, err)
	require.Len(t, ev.state.stack, 1)
	assert.Equal(t, Value{Kind: Integer, Int: 9}, ev.state.top())
}

func TestEndToEnd_UpIsReturnWithNoValue(t *testing.T) {
	ev, err := run(t, "function noop() : up .\ncall noop()\nint after 1")
	require.NoError(t, err)
	assert.Empty(t, ev.state.stack, "up leaves no value, unlike return")
	v, ok := ev.state.findObject("after")
	require.True(t, ok)
	assert.Equal(t, Value{Kind: Integer, Int: 1}, v)
}

func TestEndToEnd_MissingReturnIsReferenceError(t *testing.T) {
	_, err := run(t, "function f() : int x 1 .\ncall f()")
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, ReferenceError, evalErr.Kind)
}

func TestEndToEnd_ReturnOutsideCallIsReferenceError(t *testing.T) {
	_, err := run(t, "return 1")
	require.Error(t, err)
	var evalErr *EvalError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, ReferenceError, evalErr.Kind)
}

// There is no production, in either the source or spec.md, that creates an
// Object value from nothing -- clone always starts from an existing
// Object-kind binding, and nothing can ever become the first one (see
// DESIGN.md). Object/clone coverage is therefore exercised at the
// subscript level in eval_expr_test.go and the scope level in
// scope_test.go instead.
