package monitor

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/logchecker/internal/config"
	"github.com/rileyhilliard/logchecker/internal/dashboard"
	"github.com/rileyhilliard/logchecker/internal/logfile"
	"github.com/rileyhilliard/logchecker/internal/store"
	storetesting "github.com/rileyhilliard/logchecker/internal/store/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// recordingHandler captures events and returns no commands.
type recordingHandler struct {
	events []dashboard.Event
}

func (h *recordingHandler) Handle(ev dashboard.Event) []dashboard.Command {
	h.events = append(h.events, ev)
	return nil
}

func newTestModel(h Handler) *Model {
	m := NewModel(Options{
		Theme:    config.ThemeDark,
		FilesDir: "/var/log/fleet",
		Clock:    func() time.Time { return testNow },
	})
	m.SetHandler(h)
	m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// drain runs cmd and every command it leads to, feeding messages back into m.
// Only dashboard commands may be in the tree; ticks would block.
func drain(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(m, c)
		}
	case nil:
	default:
		_, next := m.Update(msg)
		drain(m, next)
	}
}

func newWiredModel(t *testing.T, gw *storetesting.FakeGateway) *Model {
	t.Helper()
	m := newTestModel(nil)
	o := dashboard.New(gw, nil, m, dashboard.Options{
		Now:   func() time.Time { return testNow },
		After: func(time.Duration) <-chan time.Time { return make(chan time.Time) },
	})
	t.Cleanup(func() { o.Handle(dashboard.Quit{}) })
	m.SetHandler(o)
	drain(m, m.dispatch(dashboard.Ready{}))
	return m
}

var (
	hostAlpha = store.Host{ID: "a", Name: "alpha", OS: "Ubuntu 22.04", Version: "1.4.2", Status: store.StatusOnline, LastSeen: testNow}
	hostBravo = store.Host{ID: "b", Name: "bravo", OS: "Windows 11", Version: "1.4.1", Status: store.StatusOffline, LastSeen: testNow.Add(-time.Hour)}
)

func TestNewModel(t *testing.T) {
	m := newTestModel(&recordingHandler{})

	assert.Equal(t, ViewHosts, m.ViewMode())
	assert.Equal(t, config.ThemeDark, m.ThemeName())
	assert.Equal(t, testNow, m.now)
	assert.Empty(t, m.SelectedHost())
}

func TestViewMode_String(t *testing.T) {
	assert.Equal(t, "Hosts", ViewHosts.String())
	assert.Equal(t, "Files", ViewFiles.String())
}

func TestHandleKeyMsg_ForwardsActions(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want dashboard.Event
	}{
		{"refresh", keyRunes("r"), dashboard.RefreshKey{}},
		{"auto refresh", keyRunes("a"), dashboard.AutoRefreshKey{}},
		{"quit", keyRunes("q"), dashboard.Quit{}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, dashboard.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &recordingHandler{}
			m := newTestModel(h)

			handled, _ := m.HandleKeyMsg(tt.key)
			assert.True(t, handled)
			require.Len(t, h.events, 1)
			assert.Equal(t, tt.want, h.events[0])
		})
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(&recordingHandler{})

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestThemeToggle(t *testing.T) {
	m := newTestModel(&recordingHandler{})

	m.Update(keyRunes("d"))
	assert.Equal(t, config.ThemeLight, m.ThemeName())
	m.Update(keyRunes("d"))
	assert.Equal(t, config.ThemeDark, m.ThemeName())
}

func TestResolveTheme(t *testing.T) {
	assert.Equal(t, DarkTheme, ResolveTheme(config.ThemeDark))
	assert.Equal(t, LightTheme, ResolveTheme(config.ThemeLight))
	auto := ResolveTheme(config.ThemeAuto)
	assert.Contains(t, []string{config.ThemeDark, config.ThemeLight}, auto.Name)
	assert.Equal(t, LightTheme, DarkTheme.Next())
	assert.Equal(t, DarkTheme, LightTheme.Next())
}

func TestHelpOverlay(t *testing.T) {
	h := &recordingHandler{}
	m := newTestModel(h)

	m.Update(keyRunes("?"))
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	assert.Contains(t, m.View(), "auto-refresh")

	// Actions are swallowed while help is up.
	m.Update(keyRunes("r"))
	assert.Empty(t, h.events)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestSwitchView(t *testing.T) {
	m := newTestModel(&recordingHandler{})

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewFiles, m.ViewMode())
	assert.Contains(t, m.View(), "No log files found")

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ViewHosts, m.ViewMode())
}

func TestWired_LoadsAndSelectsFirstHost(t *testing.T) {
	gw := storetesting.NewFakeGateway().
		SetHosts(hostAlpha, hostBravo).
		SetLogs("a", store.LogEntry{HostID: "a", Timestamp: testNow, Level: "INFO", Message: "agent started"})
	m := newWiredModel(t, gw)

	assert.Equal(t, []string{"a", "b"}, m.hostIDs)
	assert.Equal(t, "a", m.SelectedHost())
	assert.Contains(t, m.detail, "computer_name: alpha")
	assert.Equal(t, []string{"[2024-05-01 12:00] [INFO] agent started"}, m.logLines)

	view := m.View()
	assert.Contains(t, view, "alpha")
	assert.Contains(t, view, "agent started")
	assert.Contains(t, view, "2 hosts")
	assert.Contains(t, view, "12:00:00")
}

func TestWired_CursorMoveSelectsHost(t *testing.T) {
	gw := storetesting.NewFakeGateway().SetHosts(hostAlpha, hostBravo)
	m := newWiredModel(t, gw)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	drain(m, cmd)

	assert.Equal(t, "b", m.SelectedHost())
	assert.Contains(t, m.detail, "computer_name: bravo")

	// Moving past the end does not re-request the same host.
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	_, getHost, _ := gw.Calls()
	assert.Equal(t, 2, getHost)
}

func TestWired_RefreshFailureShowsIndicator(t *testing.T) {
	gw := storetesting.NewFakeGateway().SetHosts(hostAlpha)
	m := newWiredModel(t, gw)

	gw.SetFail(nil)
	_, cmd := m.Update(keyRunes("r"))
	drain(m, cmd)

	view := m.View()
	assert.Contains(t, view, "refresh failed")
	assert.Contains(t, view, "alpha", "last good data stays on screen")
}

func TestWired_AutoRefreshShownInHeader(t *testing.T) {
	m := newWiredModel(t, storetesting.NewFakeGateway())
	assert.Contains(t, m.View(), "auto-refresh off")

	m.Update(keyRunes("a"))
	assert.Contains(t, m.View(), "auto-refresh on")
}

func TestHeader_UpdatedAgo(t *testing.T) {
	m := newTestModel(&recordingHandler{})
	assert.Contains(t, m.renderHeader(), "not loaded yet")

	m.ShowStatus(dashboard.Status{HostCount: 3, LastRefresh: testNow.Add(-5 * time.Second)})
	header := m.renderHeader()
	assert.Contains(t, header, "3 hosts")
	assert.Contains(t, header, "updated 5 seconds ago")

	m.Update(clockMsg(testNow.Add(time.Minute)))
	assert.Contains(t, m.renderHeader(), "12:01:00")
}

func TestShowHosts_CursorFollowsSelection(t *testing.T) {
	m := newTestModel(&recordingHandler{})

	rows := dashboard.ProjectHostTable([]store.Host{hostAlpha, hostBravo})
	m.ShowHosts(rows, "b")
	assert.Equal(t, "b", m.SelectedHost())

	m.ShowHosts(rows[:1], "")
	assert.Equal(t, "a", m.SelectedHost())

	m.ShowHosts([][]string{}, "")
	assert.Empty(t, m.SelectedHost())
	assert.Contains(t, m.View(), "No hosts reporting")
}

func TestShowHosts_DoesNotEchoHighlight(t *testing.T) {
	h := &recordingHandler{}
	m := newTestModel(h)

	m.ShowHosts(dashboard.ProjectHostTable([]store.Host{hostAlpha, hostBravo}), "a")
	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Empty(t, h.events, "cursor already on the selected host")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Len(t, h.events, 1)
	assert.Equal(t, dashboard.HostHighlighted{HostID: "b"}, h.events[0])
}

func TestFilesView(t *testing.T) {
	h := &recordingHandler{}
	m := newTestModel(h)
	m.ShowFiles([]string{"/var/log/fleet/a.jsonl", "/var/log/fleet/b.jsonl"})

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Len(t, h.events, 1)
	assert.Equal(t, dashboard.FileHighlighted{Path: "/var/log/fleet/a.jsonl"}, h.events[0])

	m.ShowFile("/var/log/fleet/a.jsonl", logfile.Table{
		Columns: []string{"level", "msg", "host"},
		Rows:    [][]string{{"info", "up", "a"}, {"warn", "slow", ""}},
	})
	view := m.View()
	assert.Contains(t, view, "a.jsonl (2 rows)")
	assert.Contains(t, view, "slow")

	// Narrower record set replaces the columns cleanly.
	m.ShowFile("/var/log/fleet/b.jsonl", logfile.Table{
		Columns: []string{"k"},
		Rows:    [][]string{{"v"}},
	})
	assert.Contains(t, m.View(), "b.jsonl (1 rows)")

	m.ShowFile("/var/log/fleet/b.jsonl", logfile.Table{})
	assert.Contains(t, m.View(), "No records")

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Len(t, h.events, 2)
	assert.Equal(t, dashboard.FileHighlighted{Path: "/var/log/fleet/b.jsonl"}, h.events[1])
}

func TestDetailPaneStates(t *testing.T) {
	m := newTestModel(&recordingHandler{})
	assert.Contains(t, m.renderDetailPane(), "No host selected")

	m.ShowStatus(dashboard.Status{DetailLoading: true})
	assert.Contains(t, m.renderDetailPane(), "Loading...")

	m.ShowDetail(dashboard.HostNotFound)
	assert.Contains(t, m.renderDetailPane(), "Host not found.")
}

func TestHostColumns(t *testing.T) {
	cols := hostColumns(0)
	require.Len(t, cols, len(dashboard.HostColumns))
	for i, c := range cols {
		assert.Equal(t, dashboard.HostColumns[i], c.Title)
		assert.Equal(t, hostColumnWidths[i], c.Width)
	}

	wide := hostColumns(200)
	assert.Greater(t, wide[1].Width, hostColumnWidths[1])
	assert.Greater(t, wide[2].Width, hostColumnWidths[2])
	assert.Equal(t, hostColumnWidths[5], wide[5].Width)
}

func TestFileColumns(t *testing.T) {
	assert.Nil(t, fileColumns(nil, 100))

	cols := fileColumns([]string{"a", "b"}, 44)
	require.Len(t, cols, 2)
	assert.Equal(t, 20, cols[0].Width)

	narrow := fileColumns([]string{"a", "b", "c"}, 10)
	assert.Equal(t, 6, narrow[0].Width)
}
