package dashboard

import (
	"sync"
	"time"

	"github.com/rileyhilliard/logchecker/internal/logfile"
	"github.com/rileyhilliard/logchecker/internal/store"
)

// recorder is a Presenter that remembers the last payload of each kind.
type recorder struct {
	mu sync.Mutex

	rows       [][]string
	selectedID string
	hostPushes int
	detail     string
	logs       []string
	files      []string
	filePath   string
	file       logfile.Table
	status     Status
}

func (r *recorder) ShowHosts(rows [][]string, selectedID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = rows
	r.selectedID = selectedID
	r.hostPushes++
}

func (r *recorder) ShowDetail(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detail = text
}

func (r *recorder) ShowLogs(lines []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = lines
}

func (r *recorder) ShowFiles(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files = paths
}

func (r *recorder) ShowFile(path string, table logfile.Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filePath = path
	r.file = table
}

func (r *recorder) ShowStatus(status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = status
}

func (r *recorder) Detail() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.detail
}

func (r *recorder) Logs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.logs...)
}

func (r *recorder) Rows() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows
}

func (r *recorder) SelectedID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selectedID
}

func (r *recorder) HostPushes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostPushes
}

func (r *recorder) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// manualTimer hands out timer channels that fire only when told to.
type manualTimer struct {
	mu    sync.Mutex
	chans []chan time.Time
}

func (m *manualTimer) After(time.Duration) <-chan time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch := make(chan time.Time, 1)
	m.chans = append(m.chans, ch)
	return ch
}

// Fire fires the i-th timer handed out.
func (m *manualTimer) Fire(i int) {
	m.mu.Lock()
	ch := m.chans[i]
	m.mu.Unlock()
	ch <- time.Now()
}

func (m *manualTimer) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chans)
}

// drain runs cmds in order, feeding results back into o until nothing is
// left. Only safe when none of the commands waits on a timer.
func drain(o *Orchestrator, cmds []Command) {
	for len(cmds) > 0 {
		cmd := cmds[0]
		cmds = cmds[1:]
		if ev := cmd(); ev != nil {
			cmds = append(cmds, o.Handle(ev)...)
		}
	}
}

// run executes a single command and handles its result.
func run(o *Orchestrator, cmd Command) []Command {
	if ev := cmd(); ev != nil {
		return o.Handle(ev)
	}
	return nil
}

var (
	t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	hostA = store.Host{ID: "a", Name: "alpha", OS: "Ubuntu 22.04", Version: "1.4.2", Status: store.StatusOnline, LastSeen: t0}
	hostB = store.Host{ID: "b", Name: "bravo", OS: "Windows 11", Version: "1.4.1", Status: store.StatusOffline, LastSeen: t0.Add(-time.Hour)}
	hostC = store.Host{ID: "c", Name: "charlie", OS: "macOS 14", Version: "1.3.9", Status: store.StatusUnknown, LastSeen: t0.Add(-2 * time.Hour)}
)
