package monitor

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/rileyhilliard/logchecker/internal/dashboard"
	"github.com/rileyhilliard/logchecker/internal/logfile"
	"github.com/samber/lo"
)

var _ dashboard.Presenter = (*Model)(nil)

// ShowHosts replaces the host table and moves the cursor to selectedID.
func (m *Model) ShowHosts(rows [][]string, selectedID string) {
	m.hostIDs = lo.Map(rows, func(r []string, _ int) string { return r[0] })
	m.hosts.SetRows(lo.Map(rows, func(r []string, _ int) table.Row { return table.Row(r) }))

	if i := lo.IndexOf(m.hostIDs, selectedID); i >= 0 {
		m.hosts.SetCursor(i)
	} else if len(rows) > 0 {
		m.hosts.SetCursor(0)
	}
	// The core picked this row; do not echo it back as a highlight.
	m.highlighted = selectedID
}

// ShowDetail sets the detail pane text. Empty means loading or nothing
// selected.
func (m *Model) ShowDetail(text string) {
	m.detail = text
}

// ShowLogs replaces the log pane and scrolls to the newest entry.
func (m *Model) ShowLogs(lines []string) {
	m.logLines = lines
	m.logs.SetContent(strings.Join(lines, "\n"))
	m.logs.GotoBottom()
}

// ShowFiles replaces the file list.
func (m *Model) ShowFiles(paths []string) {
	m.filePaths = paths
	m.files.SetRows(lo.Map(paths, func(p string, _ int) table.Row {
		return table.Row{m.displayPath(p)}
	}))
	if i := lo.IndexOf(paths, m.fileCurrent); i >= 0 {
		m.files.SetCursor(i)
	}
}

// ShowFile replaces the record table with the parsed contents of path.
func (m *Model) ShowFile(path string, t logfile.Table) {
	m.fileName = path
	m.fileData = t
	m.applyFileTable()
}

// ShowStatus updates the header and status line.
func (m *Model) ShowStatus(s dashboard.Status) {
	m.status = s
}

// applyFileTable sizes the record table for the current data. Rows are
// cleared first because the table renders every row against the columns.
func (m *Model) applyFileTable() {
	m.fileTable.SetRows(nil)
	m.fileTable.SetColumns(fileColumns(m.fileData.Columns, m.fileTableWidth()))
	m.fileTable.SetRows(lo.Map(m.fileData.Rows, func(r []string, _ int) table.Row { return table.Row(r) }))
	m.fileTable.GotoTop()
}

func (m *Model) displayPath(p string) string {
	if m.filesDir == "" {
		return p
	}
	if rel, err := filepath.Rel(m.filesDir, p); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return p
}
