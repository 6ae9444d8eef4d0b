package scripts

import (
	"context"
	"sync"

	"github.com/reusee/tmplrun/syncs"
)

type Result struct {
	Output string
	Err    error
}

// ExecuteAll runs scripts concurrently, at most MaxParallel at a time. Results
// are in the order of scripts.
type ExecuteAll func(ctx context.Context, scripts ...*Script) []Result

func (Module) ExecuteAll(
	execute Execute,
	maxParallel MaxParallel,
) ExecuteAll {
	return func(ctx context.Context, scripts ...*Script) []Result {
		results := make([]Result, len(scripts))
		sem := syncs.NewSemaphore(int(maxParallel))
		wg := new(sync.WaitGroup)
		for i, script := range scripts {
			wg.Go(func() {
				if err := sem.Acquire(ctx); err != nil {
					results[i] = Result{
						Err: &ExecutionError{
							Reason: ErrCanceled,
							Err:    err,
						},
					}
					return
				}
				defer sem.Release()
				output, err := execute(ctx, script)
				results[i] = Result{
					Output: output,
					Err:    err,
				}
			})
		}
		wg.Wait()
		return results
	}
}
