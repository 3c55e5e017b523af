package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/logchecker/internal/dashboard"
)

// ViewMode selects which screen is shown.
type ViewMode int

const (
	ViewHosts ViewMode = iota
	ViewFiles
)

// String returns the tab label.
func (v ViewMode) String() string {
	if v == ViewFiles {
		return "Files"
	}
	return "Hosts"
}

// keyMap lists every binding; it doubles as the help.KeyMap for the footer.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	First       key.Binding
	Last        key.Binding
	ScrollLogs  key.Binding
	Refresh     key.Binding
	AutoRefresh key.Binding
	SwitchView  key.Binding
	Theme       key.Binding
	Help        key.Binding
	Close       key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous row"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next row"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first row"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last row"),
		),
		ScrollLogs: key.NewBinding(
			key.WithKeys("pgup", "pgdown", "ctrl+u", "ctrl+d"),
			key.WithHelp("pgup/pgdn", "scroll logs"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		AutoRefresh: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto-refresh"),
		),
		SwitchView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "hosts/files"),
		),
		Theme: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dark/light"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp is shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.AutoRefresh, k.SwitchView, k.Theme, k.Help, k.Quit}
}

// FullHelp is shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last, k.ScrollLogs},
		{k.Refresh, k.AutoRefresh, k.SwitchView, k.Theme, k.Help, k.Quit},
	}
}

// HandleKeyMsg processes keyboard input and returns the command it produced.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// While help is showing only esc and quit get through
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Close):
			m.showHelp = false
			return true, nil
		case key.Matches(msg, m.keys.Quit):
			return true, m.quit()
		}
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, m.quit()

	case key.Matches(msg, m.keys.Refresh):
		return true, m.dispatch(dashboard.RefreshKey{})

	case key.Matches(msg, m.keys.AutoRefresh):
		return true, m.dispatch(dashboard.AutoRefreshKey{})

	case key.Matches(msg, m.keys.Theme):
		m.setTheme(m.theme.Next())
		return true, nil

	case key.Matches(msg, m.keys.SwitchView):
		m.switchView()
		return true, m.highlightCursor()

	case key.Matches(msg, m.keys.Up):
		m.activeTable().MoveUp(1)
		return true, m.highlightCursor()

	case key.Matches(msg, m.keys.Down):
		m.activeTable().MoveDown(1)
		return true, m.highlightCursor()

	case key.Matches(msg, m.keys.First):
		m.activeTable().GotoTop()
		return true, m.highlightCursor()

	case key.Matches(msg, m.keys.Last):
		m.activeTable().GotoBottom()
		return true, m.highlightCursor()

	case key.Matches(msg, m.keys.ScrollLogs):
		var cmd tea.Cmd
		if m.viewMode == ViewHosts {
			m.logs, cmd = m.logs.Update(msg)
		} else {
			m.fileTable, cmd = m.fileTable.Update(msg)
		}
		return true, cmd
	}

	return false, nil
}
