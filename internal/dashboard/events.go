package dashboard

import (
	"github.com/rileyhilliard/logchecker/internal/logfile"
	"github.com/rileyhilliard/logchecker/internal/store"
)

// Event is an input to Orchestrator.Handle. The exported events come from the
// presentation layer; the rest are results produced by Commands.
type Event interface {
	event()
}

// Command is blocking work that runs off the event loop. It returns the
// result event to feed back into Handle, or nil when there is nothing to
// report (for example a refresh timer cancelled before it fired).
type Command func() Event

// Ready is sent once the presentation layer is up.
type Ready struct{}

// HostHighlighted is sent when the cursor lands on a host row.
type HostHighlighted struct {
	HostID string
}

// RefreshKey is the manual refresh action.
type RefreshKey struct{}

// AutoRefreshKey toggles periodic refresh.
type AutoRefreshKey struct{}

// FileHighlighted is sent when the cursor lands on a static log file.
type FileHighlighted struct {
	Path string
}

// Quit stops periodic refresh and cancels outstanding fetches.
type Quit struct{}

type hostsLoaded struct {
	hosts []store.Host
	err   error
}

type detailLoaded struct {
	hostID     string
	generation uint64
	snapshot   *Snapshot
	err        error
}

type filesListed struct {
	paths []string
	err   error
}

type fileLoaded struct {
	path       string
	generation uint64
	table      logfile.Table
	err        error
}

type refreshTick struct {
	session uint64
}

func (Ready) event()           {}
func (HostHighlighted) event() {}
func (RefreshKey) event()      {}
func (AutoRefreshKey) event()  {}
func (FileHighlighted) event() {}
func (Quit) event()            {}
func (hostsLoaded) event()     {}
func (detailLoaded) event()    {}
func (filesListed) event()     {}
func (fileLoaded) event()      {}
func (refreshTick) event()     {}
