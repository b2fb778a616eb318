// Package batch fans independent units of work out across a worker pool
// and collects results in input order. One item's failure never aborts the
// batch; cancellation stops dispatching but lets in-flight items finish.
package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Mode selects how units of work are dispatched.
type Mode string

const (
	// Sequential runs items one at a time in input order, for
	// deterministic testing.
	Sequential Mode = "sequential"
	// Bounded runs at most Options.Workers items at once.
	Bounded Mode = "bounded"
	// Unbounded dispatches every item immediately.
	Unbounded Mode = "unbounded"
)

// ParseMode maps a config string to a Mode; empty selects Bounded.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return Bounded, nil
	case Sequential, Bounded, Unbounded:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown parallelism mode %q", s)
}

// ErrItemFailed matches any per-item batch failure.
var ErrItemFailed = errors.New("batch item failed")

// ItemError wraps one item's failure with its input position. The wrapped
// error stays reachable through errors.Is/As.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string { return fmt.Sprintf("item %d: %v", e.Index, e.Err) }
func (e *ItemError) Unwrap() error { return e.Err }

// Is reports true for ErrItemFailed in addition to the wrapped chain.
func (e *ItemError) Is(target error) bool { return target == ErrItemFailed }

// Options configures dispatch. Workers only applies to Bounded mode and
// defaults to the available hardware parallelism.
type Options struct {
	Mode    Mode
	Workers int
}

// Result is exactly one of: a success value, or a typed failure.
type Result[R any] struct {
	Index int
	Value R
	Err   error // nil on success, *ItemError otherwise
}

// Outcome holds one Result per input item, in input order.
type Outcome[R any] struct {
	Results   []Result[R]
	Succeeded int
	Failed    int
	// Truncated is set when the context was cancelled before every item
	// was dispatched. Undispatched items carry an ItemError wrapping the
	// context error; completed results are still returned.
	Truncated bool
}

// Map evaluates fn over items. The Results slice always has exactly
// len(items) entries keyed by input position, regardless of worker count
// or completion order.
func Map[T, R any](ctx context.Context, items []T, fn func(context.Context, T) (R, error), opts Options) Outcome[R] {
	out := Outcome[R]{Results: make([]Result[R], len(items))}
	for i := range out.Results {
		out.Results[i].Index = i
	}

	var limit int64
	switch opts.Mode {
	case Sequential:
		limit = 1
	case Unbounded:
		limit = int64(len(items)) + 1
	default:
		limit = int64(opts.Workers)
		if limit <= 0 {
			limit = int64(runtime.GOMAXPROCS(0))
		}
	}

	sem := semaphore.NewWeighted(limit)
	var wg sync.WaitGroup
	for i := range items {
		// Acquire in input order so Sequential mode is deterministic and
		// cancellation truncates at a single position.
		if err := sem.Acquire(ctx, 1); err != nil {
			out.Truncated = true
			for j := i; j < len(items); j++ {
				out.Results[j].Err = &ItemError{Index: j, Err: fmt.Errorf("not dispatched: %w", err)}
			}
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			v, err := fn(ctx, items[i])
			if err != nil {
				out.Results[i].Err = &ItemError{Index: i, Err: err}
				return
			}
			out.Results[i].Value = v
		}(i)
	}
	wg.Wait()

	for i := range out.Results {
		if out.Results[i].Err != nil {
			out.Failed++
		} else {
			out.Succeeded++
		}
	}
	return out
}
