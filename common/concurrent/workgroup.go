package concurrent

import (
	"context"
	"iter"
	"sync"

	"golang.org/x/sync/errgroup"
)

// WorkGroup fans inputs out to Parallelism workers, each folding into its own accumulator.
// The per-worker accumulators are merged by Combiner and turned into the result by Finisher.
type WorkGroup[In any, Acc any, Out any] struct {
	Parallelism uint
	Worker      func(ctx context.Context, v In, acc Acc) (Acc, error)
	Combiner    func(ctx context.Context, a, b Acc) (Acc, error)
	Finisher    func(ctx context.Context, acc Acc) (Out, error)
}

func (wg WorkGroup[In, Acc, Out]) RunSeq(ctx context.Context, seq iter.Seq[In]) (Out, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	inCh := make(chan In)
	go func() {
		defer close(inCh)

		for v := range seq {
			select {
			case inCh <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return wg.RunChan(ctx, inCh)
}

func (wg WorkGroup[In, Acc, Out]) RunChan(ctx context.Context, inCh <-chan In) (Out, error) {
	var zero Out
	parallelism := max(wg.Parallelism, 1)
	accCh := make(chan Acc, parallelism)

	g, gctx := errgroup.WithContext(ctx)
	var workers sync.WaitGroup

	for range parallelism {
		workers.Add(1)
		g.Go(func() error {
			defer workers.Done()

			var acc Acc
			for {
				select {
				case in, ok := <-inCh:
					if !ok {
						// buffered to parallelism, never blocks
						accCh <- acc
						return nil
					}

					var err error
					if acc, err = wg.Worker(gctx, in, acc); err != nil {
						return err
					}

				case <-gctx.Done():
					return gctx.Err()
				}
			}
		})
	}

	go func() {
		workers.Wait()
		close(accCh)
	}()

	var overall Acc
	var combineErr error
	for acc := range accCh {
		if combineErr == nil {
			overall, combineErr = wg.Combiner(ctx, overall, acc)
		}
	}

	if err := g.Wait(); err != nil {
		return zero, err
	} else if combineErr != nil {
		return zero, combineErr
	}

	return wg.Finisher(ctx, overall)
}
