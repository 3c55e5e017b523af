// Package dashboard is the host/log monitoring core. It owns the selection,
// the refresh cadence and the consistency of what is shown while the store
// changes underneath, and knows nothing about the terminal toolkit.
//
// All state lives in an Orchestrator and is only touched from Handle. Handle
// never blocks: store and file reads are returned as Commands for the caller
// to run elsewhere, and their results come back into Handle as events.
package dashboard

import (
	"context"
	"time"

	"github.com/rileyhilliard/logchecker/internal/errors"
	"github.com/rileyhilliard/logchecker/internal/logfile"
	"github.com/rileyhilliard/logchecker/internal/logger"
	"github.com/rileyhilliard/logchecker/internal/store"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Gateway reads hosts and logs from the store.
type Gateway interface {
	ListHosts(ctx context.Context) ([]store.Host, error)
	GetHost(ctx context.Context, id string) (*store.Host, error)
	ListLogs(ctx context.Context, hostID string) ([]store.LogEntry, error)
}

// FileSource lists and parses static log files.
type FileSource interface {
	List() ([]string, error)
	Parse(path string) (logfile.Table, error)
}

// Presenter receives everything the dashboard shows.
type Presenter interface {
	ShowHosts(rows [][]string, selectedID string)
	ShowDetail(text string)
	ShowLogs(lines []string)
	ShowFiles(paths []string)
	ShowFile(path string, table logfile.Table)
	ShowStatus(status Status)
}

// Status is the dashboard's summary line.
type Status struct {
	HostCount     int
	Refreshing    bool // host-list fetch in flight
	DetailLoading bool
	AutoRefresh   bool
	LastRefresh   time.Time // zero until the first successful load
	Err           string    // last failure, cleared by the next successful refresh
}

// Options configures an Orchestrator.
type Options struct {
	RefreshPeriod time.Duration
	// Logger defaults to logger.Default().
	Logger logger.Logger

	// After schedules refresh ticks; nil uses time.After.
	After func(time.Duration) <-chan time.Time
	// Now is the clock for Status.LastRefresh; nil uses time.Now.
	Now func() time.Time
}

// Orchestrator routes events between the store, the selection, the refresh
// controller and the presenter.
type Orchestrator struct {
	gateway Gateway
	files   FileSource
	view    Presenter
	log     logger.Logger
	now     func() time.Time

	selection *Selection
	refresh   *RefreshController

	hosts  []store.Host
	status Status

	// fileGen guards the static file slot the way Selection guards detail.
	fileGen  uint64
	filePath string

	// ctx is the parent of every fetch; cancelled on Quit.
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates an orchestrator. files may be nil when static files are not
// browsed.
func New(gateway Gateway, files FileSource, view Presenter, opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = logger.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		gateway:   gateway,
		files:     files,
		view:      view,
		log:       opts.Logger,
		now:       opts.Now,
		selection: &Selection{},
		refresh:   NewRefreshController(opts.RefreshPeriod, opts.After, logger.Named(opts.Logger, "refresh")),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Selection exposes the selection state for inspection.
func (o *Orchestrator) Selection() *Selection {
	return o.selection
}

// Refresh exposes the refresh controller for inspection.
func (o *Orchestrator) Refresh() *RefreshController {
	return o.refresh
}

// Status returns the current status line.
func (o *Orchestrator) Status() Status {
	return o.status
}

// Hosts returns the last loaded host list.
func (o *Orchestrator) Hosts() []store.Host {
	return o.hosts
}

// Handle applies ev and returns the Commands it started. It must be called
// from one goroutine at a time.
func (o *Orchestrator) Handle(ev Event) []Command {
	switch ev := ev.(type) {
	case Ready:
		return o.onReady()
	case HostHighlighted:
		return o.onHostHighlighted(ev.HostID)
	case RefreshKey:
		return o.reloadHosts("manual")
	case AutoRefreshKey:
		return o.onAutoRefreshKey()
	case FileHighlighted:
		return o.onFileHighlighted(ev.Path)
	case Quit:
		o.shutdown()
		return nil
	case hostsLoaded:
		return o.onHostsLoaded(ev)
	case detailLoaded:
		o.onDetailLoaded(ev)
		return nil
	case filesListed:
		o.onFilesListed(ev)
		return nil
	case fileLoaded:
		o.onFileLoaded(ev)
		return nil
	case refreshTick:
		return o.onRefreshTick(ev.session)
	}
	return nil
}

func (o *Orchestrator) onReady() []Command {
	o.log.Info("dashboard ready")
	cmds := o.reloadHosts("startup")
	if o.files != nil {
		cmds = append(cmds, o.listFiles())
	}
	return cmds
}

func (o *Orchestrator) onHostHighlighted(id string) []Command {
	if current, ok := o.selection.Selected(); ok && current == id {
		return nil
	}
	if !lo.ContainsBy(o.hosts, func(h store.Host) bool { return h.ID == id }) {
		o.log.Debug("ignoring highlight of unlisted host %q", id)
		return nil
	}
	return []Command{o.selectHost(id)}
}

// selectHost clears the detail panes and starts the fetch for id.
func (o *Orchestrator) selectHost(id string) Command {
	gen := o.selection.Select(id)
	o.view.ShowDetail("")
	o.view.ShowLogs(nil)
	o.status.DetailLoading = true
	o.pushStatus()
	return o.fetchDetail(id, gen)
}

func (o *Orchestrator) onAutoRefreshKey() []Command {
	cmd := o.refresh.Toggle()
	o.status.AutoRefresh = o.refresh.State() == Active
	o.pushStatus()
	if cmd == nil {
		return nil
	}
	return []Command{cmd}
}

func (o *Orchestrator) onRefreshTick(session uint64) []Command {
	live, next := o.refresh.OnTick(session)
	if !live {
		o.log.Debug("dropping tick from ended session %d", session)
		return nil
	}
	return append([]Command{next}, o.reloadHosts("tick")...)
}

// reloadHosts starts a host-list fetch unless one is already running.
func (o *Orchestrator) reloadHosts(trigger string) []Command {
	if !o.refresh.TryBegin() {
		o.log.Debug("%s refresh skipped: host list fetch in flight", trigger)
		return nil
	}
	o.status.Refreshing = true
	o.pushStatus()

	ctx, gw := o.ctx, o.gateway
	return []Command{func() Event {
		hosts, err := gw.ListHosts(ctx)
		return hostsLoaded{hosts: hosts, err: err}
	}}
}

func (o *Orchestrator) onHostsLoaded(ev hostsLoaded) []Command {
	o.refresh.End()
	o.status.Refreshing = false

	if ev.err != nil {
		o.status.Err = "refresh failed: " + errors.Summary(ev.err)
		o.pushStatus()
		return nil
	}

	o.hosts = ev.hosts
	o.status.HostCount = len(ev.hosts)
	o.status.LastRefresh = o.now()
	o.status.Err = ""

	var cmds []Command
	id, selected := o.selection.Selected()
	stillListed := selected && lo.ContainsBy(ev.hosts, func(h store.Host) bool { return h.ID == id })

	switch {
	case stillListed:
		cmds = append(cmds, o.fetchDetail(id, o.selection.Reload()))
	case len(ev.hosts) > 0:
		id = ev.hosts[0].ID
		cmds = append(cmds, o.selectHost(id))
	default:
		id = ""
		if selected {
			o.selection.Clear()
			o.view.ShowDetail("")
			o.view.ShowLogs(nil)
			o.status.DetailLoading = false
		}
	}

	o.view.ShowHosts(ProjectHostTable(ev.hosts), id)
	o.pushStatus()
	return cmds
}

// fetchDetail reads the host and its logs concurrently. Either failing fails
// the snapshot as a whole.
func (o *Orchestrator) fetchDetail(id string, gen uint64) Command {
	ctx, gw := o.ctx, o.gateway
	return func() Event {
		var (
			host *store.Host
			logs []store.LogEntry
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			h, err := gw.GetHost(gctx, id)
			host = h
			return err
		})
		g.Go(func() error {
			l, err := gw.ListLogs(gctx, id)
			logs = l
			return err
		})
		if err := g.Wait(); err != nil {
			return detailLoaded{hostID: id, generation: gen, err: err}
		}
		if host == nil {
			logs = nil
		}
		return detailLoaded{hostID: id, generation: gen, snapshot: &Snapshot{Host: host, Logs: logs}}
	}
}

func (o *Orchestrator) onDetailLoaded(ev detailLoaded) {
	if ev.err != nil {
		if !o.selection.Current(ev.generation) {
			o.log.Debug("discarding stale detail failure for %s (generation %d)", ev.hostID, ev.generation)
			return
		}
		o.status.DetailLoading = false
		o.status.Err = "detail failed: " + errors.Summary(ev.err)
		o.pushStatus()
		return
	}

	if !o.selection.Commit(ev.hostID, ev.snapshot, ev.generation) {
		o.log.Debug("discarding stale detail for %s (generation %d, current %d)",
			ev.hostID, ev.generation, o.selection.Generation())
		return
	}

	o.view.ShowDetail(ProjectHostDetail(ev.snapshot.Host))
	o.view.ShowLogs(ProjectLogLines(ev.snapshot.Logs))
	o.status.DetailLoading = false
	o.pushStatus()
}

func (o *Orchestrator) listFiles() Command {
	files := o.files
	return func() Event {
		paths, err := files.List()
		return filesListed{paths: paths, err: err}
	}
}

func (o *Orchestrator) onFilesListed(ev filesListed) {
	if ev.err != nil {
		o.status.Err = errors.Summary(ev.err)
		o.pushStatus()
		return
	}
	o.view.ShowFiles(ev.paths)
}

func (o *Orchestrator) onFileHighlighted(path string) []Command {
	if o.files == nil || path == o.filePath {
		return nil
	}
	o.fileGen++
	o.filePath = path
	gen, files := o.fileGen, o.files
	return []Command{func() Event {
		t, err := files.Parse(path)
		return fileLoaded{path: path, generation: gen, table: t, err: err}
	}}
}

func (o *Orchestrator) onFileLoaded(ev fileLoaded) {
	if ev.generation != o.fileGen {
		o.log.Debug("discarding stale read of %s", ev.path)
		return
	}
	if ev.err != nil {
		o.status.Err = errors.Summary(ev.err)
		o.pushStatus()
		o.view.ShowFile(ev.path, logfile.Table{})
		return
	}
	o.view.ShowFile(ev.path, ev.table)
}

func (o *Orchestrator) shutdown() {
	if o.ctx.Err() != nil {
		return
	}
	o.refresh.Stop()
	o.cancel()
	o.status.AutoRefresh = false
	o.log.Info("dashboard stopped")
}

func (o *Orchestrator) pushStatus() {
	o.view.ShowStatus(o.status)
}
