// Package monitor implements the terminal UI for the fleet log dashboard.
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds what is on screen (host table, detail text, log pane, files)
//   - Update: Processes messages (keystrokes, window size, finished fetches)
//   - View: Renders the current state to a string for display
//
// The Model holds no dashboard logic. Key actions and cursor moves become
// dashboard events; the dashboard.Orchestrator handles them and pushes rows
// and text back through the dashboard.Presenter methods the Model implements.
// Commands the orchestrator returns run as tea.Cmds and come back as eventMsg.
//
// # Views
//
//	Hosts - host table, detail pane (YAML) and the host's log entries
//	Files - static log files under files.dir and the records of the highlighted one
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh the host list
//	a           - Toggle auto-refresh
//	tab         - Switch between Hosts and Files
//	d           - Toggle dark/light theme
//	j/k, ↑/↓    - Move the cursor
//	PgUp/PgDn   - Scroll logs or records
//	?           - Toggle help overlay
package monitor
