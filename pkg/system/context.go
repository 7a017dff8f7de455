package system

import (
	"context"
)

// RunWithContext runs operation in its own goroutine and returns its result,
// or ctx's error if ctx is done first. The operation receives a context that
// is cancelled when ctx is, and RunWithContext does not return before the
// operation has finished, so it never leaves work running behind the caller.
//
// Returns:
//   - the operation's result on normal completion.
//   - ctx.Err() if ctx was already done, or was cancelled mid-operation and
//     the operation itself reported no error.
func RunWithContext[T any](ctx context.Context, operation func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	opCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		value T
		err   error
	}

	// Buffered so the goroutine can always deliver and exit.
	done := make(chan result, 1)
	go func() {
		v, err := operation(opCtx)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		cancel()
		r := <-done
		if r.err != nil {
			return r.value, r.err
		}
		return zero, ctx.Err()
	}
}
