package flightjob

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/concurrent"
	"github.com/gofrs/uuid/v5"
	"golang.org/x/time/rate"
)

var (
	ErrTimeout    = errors.New("flight search job timed out")
	ErrPoolClosed = errors.New("flight search pool closed")
	ErrQueueFull  = errors.New("flight search queue full")
)

type Searcher interface {
	Search(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error)
}

type SearcherFunc func(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error)

func (f SearcherFunc) Search(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error) {
	return f(ctx, q)
}

type Port interface {
	Submit(ctx context.Context, q common.FlightQuery) (*Handle, error)
}

// Pool runs flight searches on a fixed number of workers.
type Pool struct {
	searcher  Searcher
	limiter   *rate.Limiter
	queue     chan *Handle
	jobs      concurrent.Map[uuid.UUID, *Handle]
	closed    chan struct{}
	closeOnce sync.Once
	workers   sync.WaitGroup
}

type PoolOption func(p *poolConfig)

type poolConfig struct {
	parallelism int
	queueSize   int
	limiter     *rate.Limiter
}

func WithParallelism(parallelism int) PoolOption {
	return func(p *poolConfig) {
		p.parallelism = parallelism
	}
}

func WithQueueSize(queueSize int) PoolOption {
	return func(p *poolConfig) {
		p.queueSize = queueSize
	}
}

// WithRateLimiter bounds how often a worker may start a search.
func WithRateLimiter(limiter *rate.Limiter) PoolOption {
	return func(p *poolConfig) {
		p.limiter = limiter
	}
}

func NewPool(searcher Searcher, opts ...PoolOption) *Pool {
	cfg := poolConfig{
		parallelism: 2,
		queueSize:   64,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Pool{
		searcher: searcher,
		limiter:  cfg.limiter,
		queue:    make(chan *Handle, max(cfg.queueSize, 0)),
		jobs:     concurrent.NewMap[uuid.UUID, *Handle](),
		closed:   make(chan struct{}),
	}

	for range max(cfg.parallelism, 1) {
		p.workers.Add(1)
		go p.work()
	}

	return p
}

// Submit enqueues a search. The returned handle owns the job: cancelling it or
// timing out its Await stops the search.
func (p *Pool) Submit(ctx context.Context, q common.FlightQuery) (*Handle, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}

	// the job outlives the submitting call, Await and Cancel control its lifetime
	jobCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	h := newHandle(id, q, jobCtx, cancel, p.forget)

	select {
	case <-p.closed:
		cancel()
		return nil, ErrPoolClosed
	default:
	}

	p.jobs.Store(id, h)

	select {
	case p.queue <- h:
		slog.InfoContext(ctx, "flight search submitted", slog.String("job", id.String()), slog.String("query", q.String()))
		return h, nil

	case <-p.closed:
		h.Cancel()
		return nil, ErrPoolClosed

	case <-ctx.Done():
		h.Cancel()
		return nil, ctx.Err()

	default:
		h.Cancel()
		return nil, ErrQueueFull
	}
}

// Pending returns the number of jobs that have not yet completed.
func (p *Pool) Pending() int {
	return p.jobs.Len()
}

func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.closed)

		for _, h := range p.jobs.Values() {
			h.Cancel()
		}
	})

	p.workers.Wait()
}

func (p *Pool) forget(id uuid.UUID) {
	p.jobs.Delete(id)
}

func (p *Pool) work() {
	defer p.workers.Done()

	for {
		select {
		case <-p.closed:
			return

		case h := <-p.queue:
			p.run(h)
		}
	}
}

func (p *Pool) run(h *Handle) {
	ctx := h.ctx
	if ctx.Err() != nil {
		h.complete(nil, ctx.Err())
		return
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			h.complete(nil, err)
			return
		}
	}

	start := time.Now()
	flights, err := p.searcher.Search(ctx, h.query)

	attrs := []any{
		slog.String("job", h.id.String()),
		slog.String("query", h.query.String()),
		slog.Duration("duration", time.Since(start)),
	}

	if err != nil {
		slog.WarnContext(ctx, "flight search failed", append(attrs, slog.String("err", err.Error()))...)
	} else {
		slog.InfoContext(ctx, "flight search done", append(attrs, slog.Int("flights", len(flights)))...)
	}

	h.complete(flights, err)
}
