package resilience

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
)

// Group deduplicates concurrent calls that share a key. Callers arriving while
// a call is in flight wait for it and receive the same result.
type Group[T any] struct {
	mu    sync.Mutex
	calls map[string]*flight[T]
}

type flight[T any] struct {
	done     chan struct{}
	val      T
	err      error
	panicked *PanicError
}

// PanicError is returned to waiters of a call whose function panicked.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("shared call panicked: %v", e.Value)
}

// Do returns the value of fn for key, and whether it was shared with another caller.
//
// fn runs on a context detached from the starting caller's cancellation, so
// one caller going away does not fail the others; fn must bound its own work.
// Each caller stops waiting when its own ctx is done. A panic in fn is
// re-raised in the caller that started the call and reported to the others as
// a *PanicError.
func (g *Group[T]) Do(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, error, bool) {
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err, false
	}

	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flight[T])
	}
	f, shared := g.calls[key]
	if !shared {
		f = &flight[T]{done: make(chan struct{})}
		g.calls[key] = f
		go g.run(context.WithoutCancel(ctx), key, f, fn)
	}
	g.mu.Unlock()

	select {
	case <-f.done:
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err(), shared
	}

	if f.panicked != nil {
		if !shared {
			panic(f.panicked)
		}
		var zero T
		return zero, f.panicked, shared
	}
	return f.val, f.err, shared
}

func (g *Group[T]) run(ctx context.Context, key string, f *flight[T], fn func(context.Context) (T, error)) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			f.val = zero
			f.panicked = &PanicError{Value: r, Stack: debug.Stack()}
			f.err = f.panicked
		}
		g.mu.Lock()
		if g.calls[key] == f {
			delete(g.calls, key)
		}
		g.mu.Unlock()
		close(f.done)
	}()

	f.val, f.err = fn(ctx)
}
