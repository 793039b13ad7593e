// Package fanout runs bounded, order-preserving concurrent lookups on a shared worker pool.
package fanout

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/panics"
)

// Pool is shared by every request so upstream concurrency stays bounded process-wide.
// Tasks must not submit nested work to the same pool.
type Pool struct {
	workers *ants.Pool
}

func NewPool(size int) (*Pool, error) {
	if size < 1 {
		size = 1
	}
	workers, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &Pool{workers: workers}, nil
}

func (p *Pool) Release() {
	if p == nil || p.workers == nil {
		return
	}
	p.workers.Release()
}

func (p *Pool) Cap() int {
	if p == nil || p.workers == nil {
		return 0
	}
	return p.workers.Cap()
}

// Result is the outcome of one item; Results are returned in input order.
type Result[T any] struct {
	Value T
	Err   error
}

// Map applies fn to every item and waits for all of them. A panic inside fn
// becomes that item's error. Items not yet started when ctx is done get ctx.Err().
func Map[In, Out any](ctx context.Context, p *Pool, items []In, fn func(context.Context, In) (Out, error)) []Result[Out] {
	out := make([]Result[Out], len(items))
	if len(items) == 0 {
		return out
	}

	var wg sync.WaitGroup
	for i := range items {
		i := i
		task := func() {
			defer wg.Done()
			out[i] = runOne(ctx, items[i], fn)
		}

		wg.Add(1)
		if p == nil || p.workers == nil {
			go task()
			continue
		}
		if err := p.workers.Submit(task); err != nil {
			wg.Done()
			out[i] = Result[Out]{Err: fmt.Errorf("submit to worker pool: %w", err)}
		}
	}
	wg.Wait()

	return out
}

func runOne[In, Out any](ctx context.Context, item In, fn func(context.Context, In) (Out, error)) Result[Out] {
	if err := ctx.Err(); err != nil {
		return Result[Out]{Err: err}
	}

	var res Result[Out]
	var catcher panics.Catcher
	catcher.Try(func() {
		res.Value, res.Err = fn(ctx, item)
	})
	if recovered := catcher.Recovered(); recovered != nil {
		var zero Out
		return Result[Out]{Value: zero, Err: recovered.AsError()}
	}
	return res
}
