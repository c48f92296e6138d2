// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
)

type options struct {
	workers     int
	stopOnError bool
	onCancel    func()
}

// Option configures Run.
type Option func(*options)

// WithWorkers bounds the number of concurrent workers. The default is one worker per item.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// StopOnError cancels the remaining work after the first failure and calls onCancel, if set.
func StopOnError(onCancel func()) Option {
	return func(o *options) {
		o.stopOnError = true
		o.onCancel = onCancel
	}
}

// Run processes items concurrently. Without StopOnError every item runs to completion
// regardless of failures of the others, and all errors are returned as one *multierror.Error.
// A canceled ctx is reported when no item failed.
func Run[T any](ctx context.Context, items []T, process func(context.Context, T) error, opts ...Option) error {
	o := options{workers: len(items)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu     sync.Mutex
		result *multierror.Error
		once   sync.Once
	)
	fail := func(err error) {
		mu.Lock()
		result = multierror.Append(result, err)
		mu.Unlock()
		if o.stopOnError {
			once.Do(func() {
				if o.onCancel != nil {
					o.onCancel()
				}
				cancel()
			})
		}
	}

	tasks := make(chan T, o.workers)
	wg := sync.WaitGroup{}
	for i := 0; i < o.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case item, ok := <-tasks:
					if !ok || ctx.Err() != nil {
						return
					}
					if err := process(ctx, item); err != nil {
						fail(err)
					}
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case tasks <- item:
			}
		}
	}()

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	return ctx.Err()
}
