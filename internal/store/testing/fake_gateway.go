// Package testing provides test doubles for the store package.
package testing

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/logchecker/internal/errors"
	"github.com/rileyhilliard/logchecker/internal/store"
)

// FakeGateway serves canned hosts and logs from memory.
type FakeGateway struct {
	mu sync.Mutex

	// Configuration
	ShouldFail     bool
	FailError      error
	SimulatedDelay time.Duration // Delay before every call returns

	// Call tracking
	ListHostsCalls int
	GetHostCalls   []string
	ListLogsCalls  []string

	hosts []store.Host
	logs  map[string][]store.LogEntry

	// holds block calls for a key until released; see HoldListHosts and HoldHost.
	holds map[string]chan struct{}
	// started is signalled each time a call begins waiting on a hold.
	started chan string
}

// NewFakeGateway creates a gateway with no hosts that succeeds by default.
func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		logs:    make(map[string][]store.LogEntry),
		holds:   make(map[string]chan struct{}),
		started: make(chan string, 64),
	}
}

// SetHosts replaces the host list. The slice is returned as given, so tests
// control ordering.
func (g *FakeGateway) SetHosts(hosts ...store.Host) *FakeGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.hosts = append([]store.Host(nil), hosts...)
	return g
}

// SetLogs replaces the log entries for one host.
func (g *FakeGateway) SetLogs(hostID string, entries ...store.LogEntry) *FakeGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.logs[hostID] = append([]store.LogEntry(nil), entries...)
	return g
}

// SetFail makes every call fail. A nil err yields a STORE coded error.
func (g *FakeGateway) SetFail(err error) *FakeGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ShouldFail = true
	g.FailError = err
	return g
}

// ClearFail makes calls succeed again.
func (g *FakeGateway) ClearFail() *FakeGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ShouldFail = false
	g.FailError = nil
	return g
}

// SetDelay configures a delay applied to every call.
func (g *FakeGateway) SetDelay(d time.Duration) *FakeGateway {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.SimulatedDelay = d
	return g
}

// HoldListHosts blocks ListHosts calls until the returned release func runs.
func (g *FakeGateway) HoldListHosts() (release func()) {
	return g.hold(listHostsKey)
}

// HoldHost blocks GetHost calls for id until the returned release func runs.
func (g *FakeGateway) HoldHost(id string) (release func()) {
	return g.hold(hostKey(id))
}

// Started returns a channel that receives the hold key of each call that
// begins waiting on a hold ("listHosts" or "host:<id>").
func (g *FakeGateway) Started() <-chan string {
	return g.started
}

// Calls returns how many times each method was invoked.
func (g *FakeGateway) Calls() (listHosts, getHost, listLogs int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.ListHostsCalls, len(g.GetHostCalls), len(g.ListLogsCalls)
}

// ListHosts returns the configured hosts.
func (g *FakeGateway) ListHosts(ctx context.Context) ([]store.Host, error) {
	g.mu.Lock()
	g.ListHostsCalls++
	g.mu.Unlock()

	if err := g.wait(ctx, listHostsKey); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failure("list hosts"); err != nil {
		return nil, err
	}
	return append(make([]store.Host, 0, len(g.hosts)), g.hosts...), nil
}

// GetHost returns the configured host with id, or nil.
func (g *FakeGateway) GetHost(ctx context.Context, id string) (*store.Host, error) {
	g.mu.Lock()
	g.GetHostCalls = append(g.GetHostCalls, id)
	g.mu.Unlock()

	if err := g.wait(ctx, hostKey(id)); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failure("get host"); err != nil {
		return nil, err
	}
	for _, h := range g.hosts {
		if h.ID == id {
			h := h
			return &h, nil
		}
	}
	return nil, nil
}

// ListLogs returns the configured entries for hostID, or an empty slice.
func (g *FakeGateway) ListLogs(ctx context.Context, hostID string) ([]store.LogEntry, error) {
	g.mu.Lock()
	g.ListLogsCalls = append(g.ListLogsCalls, hostID)
	g.mu.Unlock()

	if err := g.wait(ctx, ""); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.failure("list logs"); err != nil {
		return nil, err
	}
	return append(make([]store.LogEntry, 0), g.logs[hostID]...), nil
}

const listHostsKey = "listHosts"

func hostKey(id string) string {
	return "host:" + id
}

func (g *FakeGateway) hold(key string) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	ch := make(chan struct{})
	g.holds[key] = ch

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			if g.holds[key] == ch {
				delete(g.holds, key)
			}
			g.mu.Unlock()
			close(ch)
		})
	}
}

// wait applies the simulated delay and any hold for key. Either is cut short
// by ctx.
func (g *FakeGateway) wait(ctx context.Context, key string) error {
	g.mu.Lock()
	delay := g.SimulatedDelay
	hold := g.holds[key]
	g.mu.Unlock()

	if hold != nil {
		select {
		case g.started <- key:
		default:
		}
		select {
		case <-hold:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return ctx.Err()
}

// failure must be called with g.mu held.
func (g *FakeGateway) failure(op string) error {
	if !g.ShouldFail {
		return nil
	}
	if g.FailError != nil {
		return g.FailError
	}
	return errors.New(errors.ErrStore,
		"Log store unavailable ("+op+")",
		"Configured to fail in test")
}
