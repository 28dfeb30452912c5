package panicerr

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Recover runs f on a goroutine managed by an errgroup, converting any
// panic or runtime.Goexit into a non-nil error rather than letting it take
// down the process, and returns whichever of f's result or ctx's
// cancellation happens first. A ctx that is already cancelled on entry
// returns ctx.Err() without running f.
//
// This replaces the hand-rolled goroutine+unbuffered-channel pattern the
// teacher's own Recover used: the group's derived context follows ctx
// (its own function always returns nil, so the group never cancels it
// itself), and the result channel carries f's return value out past a
// possible panic/Goexit.
//
// If ctx is cancelled before f finishes, f's goroutine is left running in
// the background; f must not touch anything the caller assumes is no
// longer live once Recover has returned.
func Recover(ctx context.Context, name string, f func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	done := make(chan error, 1)

	g.Go(func() error {
		defer recoverExitError(name, done)
		defer recoverPanicError(name, done)
		done <- f()
		return nil
	})

	select {
	case err := <-done:
		return err
	case <-gctx.Done():
		return gctx.Err()
	}
}
