package main

import (
	"context"

	"github.com/FlyingJester/go-lithium/internal/panicerr"
)

// New creates an Evaluator over source, configured by opts (spec.md §2's
// execution state, constructed fresh per run).
func New(source string, opts ...Option) *Evaluator {
	return NewEvaluator(source, opts...)
}

// Run interprets the program to completion (spec.md §7): nil on success,
// otherwise the *EvalError of whichever production failed first. Programmer
// bugs -- stack underflow, popping the global scope -- surface as a panic
// inside the evaluator; Run recovers it the same way the teacher's VM.Run
// recovers a halt, via internal/panicerr.
//
// The fused parse/execute pass has no internal suspension points (spec.md
// §5), so ctx cannot interrupt an in-flight production; it only bounds how
// long Run is willing to wait for one (see panicerr.Recover).
func (ev *Evaluator) Run(ctx context.Context) error {
	return panicerr.Recover(ctx, "lithium", func() error {
		ev.tracef("run")
		err := ev.interpretTopLevel()
		if err == errReturned {
			// interpretReturn/interpretUp only ever produce errReturned
			// from inside a call (depth>1); a bare top-level return/up is
			// rejected as a ReferenceError before that point, so this
			// branch is unreachable in practice but kept as a defensive
			// fallback rather than leaking the sentinel as a caller-visible
			// error.
			return nil
		}
		return err
	})
}
