package flightjob

import (
	"context"
	"sync"
	"time"

	"github.com/explore-flights/multimodal/common"
	"github.com/gofrs/uuid/v5"
)

type Handle struct {
	id     uuid.UUID
	query  common.FlightQuery
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
	forget func(uuid.UUID)

	flights []common.FlightOption
	err     error
}

func newHandle(id uuid.UUID, q common.FlightQuery, ctx context.Context, cancel context.CancelFunc, forget func(uuid.UUID)) *Handle {
	return &Handle{
		id:     id,
		query:  q,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
		forget: forget,
	}
}

func (h *Handle) Id() uuid.UUID {
	return h.id
}

func (h *Handle) Query() common.FlightQuery {
	return h.query
}

// Done is closed once the job completed, failed or was cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Await blocks until the job finishes, timeout elapses or ctx is done.
// In the latter two cases the job is cancelled.
func (h *Handle) Await(ctx context.Context, timeout time.Duration) ([]common.FlightOption, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-h.done:
		return h.flights, h.err

	case <-timer.C:
		h.Cancel()
		return nil, ErrTimeout

	case <-ctx.Done():
		h.Cancel()
		return nil, ctx.Err()
	}
}

func (h *Handle) Cancel() {
	h.complete(nil, context.Canceled)
}

func (h *Handle) complete(flights []common.FlightOption, err error) {
	h.once.Do(func() {
		h.flights = flights
		h.err = err
		h.cancel()
		close(h.done)

		if h.forget != nil {
			h.forget(h.id)
		}
	})
}
