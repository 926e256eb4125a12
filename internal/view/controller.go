package view

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/lexchain/lexctl/internal/logger"
	"github.com/lexchain/lexctl/internal/metrics"
)

// ErrBusy is returned when an operation is triggered while another one is
// still in flight. No request is made in that case.
var ErrBusy = errors.New("another request is in progress")

// Backend is the set of calls the controller makes.
//
// *client.Client satisfies it.
type Backend interface {
	Health(ctx context.Context) (json.RawMessage, error)
	Version(ctx context.Context) (json.RawMessage, error)
	SearchCases(ctx context.Context, query string) (json.RawMessage, error)
}

// Controller runs the three console operations against a Backend and keeps
// the resulting State.
//
// A single busy flag gates all operations: a trigger while busy is refused
// with ErrBusy. The backend call itself runs outside the lock, so State()
// keeps answering while a request is in flight.
type Controller struct {
	backend Backend

	mu    sync.Mutex
	state State
}

// NewController creates a controller with an idle state.
func NewController(backend Backend) *Controller {
	return &Controller{
		backend: backend,
		state: State{
			Health:  Outcome{Phase: PhaseIdle},
			Version: Outcome{Phase: PhaseIdle},
			Search:  Outcome{Phase: PhaseIdle},
		},
	}
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether an operation is in flight.
func (c *Controller) Busy() bool {
	return c.State().Busy
}

// CheckHealth fetches {base}/health into the health slot.
func (c *Controller) CheckHealth(ctx context.Context) error {
	return c.run(ctx, OpHealth, nil, c.backend.Health)
}

// CheckVersion fetches {base}/version into the version slot.
func (c *Controller) CheckVersion(ctx context.Context) error {
	return c.run(ctx, OpVersion, nil, c.backend.Version)
}

// Search fetches {base}/cases/search?q=query into the search slot and
// records query as the search input.
//
// A blank query makes no call and leaves the state unchanged; it returns
// nil. The query is recorded only when the search is accepted, so a search
// refused with ErrBusy leaves the in-flight query in place.
func (c *Controller) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		logger.Debug("search skipped: empty query")
		return nil
	}
	accept := func(s State) State {
		s.Query = query
		return s
	}
	return c.run(ctx, OpSearch, accept, func(ctx context.Context) (json.RawMessage, error) {
		return c.backend.SearchCases(ctx, query)
	})
}

// run is the scoped acquire/release around one backend call. accept, if
// set, is applied together with Begin once the trigger is accepted. The
// returned error is the call's failure, if any; it is also stored in the
// state.
func (c *Controller) run(ctx context.Context, op Operation, accept func(State) State, call func(context.Context) (json.RawMessage, error)) error {
	c.mu.Lock()
	if c.state.Busy {
		c.mu.Unlock()
		metrics.RecordRejectedTrigger(string(op))
		return ErrBusy
	}
	if accept != nil {
		c.state = accept(c.state)
	}
	c.state = Begin(c.state, op)
	c.mu.Unlock()

	var (
		payload json.RawMessage
		err     error
	)
	defer func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if r := recover(); r != nil {
			c.state = Fail(c.state, op, "internal error")
			panic(r)
		}
		if err != nil {
			c.state = Fail(c.state, op, err.Error())
			return
		}
		c.state = Succeed(c.state, op, payload)
	}()

	payload, err = call(ctx)
	if err != nil {
		logger.Warn("%s failed: %v", op, err)
	}
	return err
}
