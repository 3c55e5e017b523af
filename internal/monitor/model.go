package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/logchecker/internal/dashboard"
	"github.com/rileyhilliard/logchecker/internal/logfile"
	"github.com/samber/lo"
)

// Handler is the core the model forwards events to.
type Handler interface {
	Handle(ev dashboard.Event) []dashboard.Command
}

// Options configures a Model.
type Options struct {
	Theme    string // ui.theme
	FilesDir string // shown in the Files pane title
	Clock    func() time.Time
}

// Layout constants
const (
	headerHeight = 1
	footerHeight = 2
	minTableRows = 3
)

// clockInterval is how often the header clock re-renders.
const clockInterval = time.Second

// Model is the Bubble Tea model for the log dashboard. It implements
// dashboard.Presenter, so the core pushes rows and text straight into it
// while Handle runs inside Update.
type Model struct {
	handler Handler
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	theme   Theme
	styles  Styles

	viewMode ViewMode
	width    int
	height   int
	showHelp bool
	quitting bool

	// Hosts view
	hosts       table.Model
	hostIDs     []string
	highlighted string
	detail      string
	logs        viewport.Model
	logLines    []string

	// Files view
	filesDir    string
	files       table.Model
	filePaths   []string
	fileCurrent string
	fileName    string
	fileTable   table.Model
	fileData    logfile.Table

	status dashboard.Status
	clock  func() time.Time
	now    time.Time
}

// eventMsg carries a result event from a finished dashboard.Command.
type eventMsg struct {
	ev dashboard.Event
}

// clockMsg re-renders the header clock.
type clockMsg time.Time

// NewModel creates a model. Call SetHandler before running it.
func NewModel(opts Options) *Model {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"◐", "◓", "◑", "◒"},
		FPS:    time.Second / 10,
	}

	m := &Model{
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		filesDir: opts.FilesDir,
		clock:    opts.Clock,
		now:      opts.Clock(),
		hosts: table.New(
			table.WithColumns(hostColumns(80)),
			table.WithFocused(true),
			table.WithHeight(minTableRows+1),
		),
		files: table.New(
			table.WithColumns([]table.Column{{Title: "File", Width: 30}}),
			table.WithFocused(true),
			table.WithHeight(minTableRows+1),
		),
		fileTable: table.New(
			table.WithFocused(true),
			table.WithHeight(minTableRows+1),
		),
		logs: viewport.New(40, minTableRows),
	}
	m.setTheme(ResolveTheme(opts.Theme))
	return m
}

// SetHandler attaches the core. Events sent before this are dropped.
func (m *Model) SetHandler(h Handler) {
	m.handler = h
}

// Init starts the clock and spinner and tells the core the UI is up.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.dispatch(dashboard.Ready{}),
		m.clockCmd(),
		m.spinner.Tick,
	)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case eventMsg:
		return m, m.dispatch(msg.ev)

	case clockMsg:
		m.now = time.Time(msg)
		return m, m.clockCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	return m.renderDashboard()
}

// dispatch hands ev to the core and wraps the returned commands.
func (m *Model) dispatch(ev dashboard.Event) tea.Cmd {
	if m.handler == nil {
		return nil
	}
	cmds := m.handler.Handle(ev)
	return tea.Batch(lo.Map(cmds, func(c dashboard.Command, _ int) tea.Cmd {
		return toTeaCmd(c)
	})...)
}

func toTeaCmd(c dashboard.Command) tea.Cmd {
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		ev := c()
		if ev == nil {
			return nil
		}
		return eventMsg{ev: ev}
	}
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.dispatch(dashboard.Quit{})
	return tea.Quit
}

// clockCmd returns a command that ticks the header clock.
func (m *Model) clockCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.styles = NewStyles(t)
	m.hosts.SetStyles(m.styles.Table)
	m.files.SetStyles(m.styles.Table)
	m.fileTable.SetStyles(m.styles.Table)
	m.spinner.Style = m.styles.Title
	m.help.Styles.ShortKey = m.styles.HeaderDim.Bold(true)
	m.help.Styles.ShortDesc = m.styles.Footer.UnsetPadding()
	m.help.Styles.ShortSeparator = m.styles.Footer.UnsetPadding()
}

func (m *Model) switchView() {
	if m.viewMode == ViewHosts {
		m.viewMode = ViewFiles
	} else {
		m.viewMode = ViewHosts
	}
}

// activeTable is the table the row keys move.
func (m *Model) activeTable() *table.Model {
	if m.viewMode == ViewFiles {
		return &m.files
	}
	return &m.hosts
}

// highlightCursor reports the row under the cursor to the core when it
// differs from the last one reported.
func (m *Model) highlightCursor() tea.Cmd {
	if m.viewMode == ViewFiles {
		path := m.cursorFile()
		if path == "" || path == m.fileCurrent {
			return nil
		}
		m.fileCurrent = path
		return m.dispatch(dashboard.FileHighlighted{Path: path})
	}

	id := m.cursorHost()
	if id == "" || id == m.highlighted {
		return nil
	}
	m.highlighted = id
	return m.dispatch(dashboard.HostHighlighted{HostID: id})
}

func (m *Model) cursorHost() string {
	i := m.hosts.Cursor()
	if i < 0 || i >= len(m.hostIDs) {
		return ""
	}
	return m.hostIDs[i]
}

func (m *Model) cursorFile() string {
	i := m.files.Cursor()
	if i < 0 || i >= len(m.filePaths) {
		return ""
	}
	return m.filePaths[i]
}

// SelectedHost returns the host id under the cursor.
func (m *Model) SelectedHost() string {
	return m.cursorHost()
}

// ViewMode returns the current screen.
func (m *Model) ViewMode() ViewMode {
	return m.viewMode
}

// ThemeName returns the active palette name.
func (m *Model) ThemeName() string {
	return m.theme.Name
}
