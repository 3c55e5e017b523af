package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/logchecker/internal/dashboard"
	"github.com/samber/lo"
)

const clockLayout = "15:04:05"

// Status line symbols.
const (
	symbolFail = "✗"
	symbolOK   = "●"
)

// Base column widths for the host table, in dashboard.HostColumns order.
var hostColumnWidths = []int{10, 16, 16, 10, 8, 19}

// hostColumns spreads width over the host columns, giving extra room to
// name and OS.
func hostColumns(width int) []table.Column {
	widths := append([]int(nil), hostColumnWidths...)
	// Each cell carries one column of padding on either side.
	extra := width - lo.Sum(widths) - 2*len(widths)
	if extra > 0 {
		widths[1] += extra / 2
		widths[2] += extra - extra/2
	}
	return lo.Map(dashboard.HostColumns, func(title string, i int) table.Column {
		return table.Column{Title: title, Width: widths[i]}
	})
}

// fileColumns divides width evenly over names.
func fileColumns(names []string, width int) []table.Column {
	if len(names) == 0 {
		return nil
	}
	w := (width - 2*len(names)) / len(names)
	if w < 6 {
		w = 6
	}
	return lo.Map(names, func(n string, _ int) table.Column {
		return table.Column{Title: n, Width: w}
	})
}

// layout resizes every component to the terminal.
func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	body := m.bodyHeight()
	inner := m.width - 4 // pane border and padding

	tableRows := body/2 - 2
	if tableRows < minTableRows+1 {
		tableRows = minTableRows + 1
	}
	m.hosts.SetWidth(inner)
	m.hosts.SetColumns(hostColumns(inner))
	m.hosts.SetHeight(tableRows)

	paneHeight := body - tableRows - 4
	if paneHeight < 1 {
		paneHeight = 1
	}
	m.logs.Width = m.logsWidth() - 4
	m.logs.Height = paneHeight - 1 // pane title

	listWidth := m.fileListWidth() - 4
	m.files.SetWidth(listWidth)
	m.files.SetColumns([]table.Column{{Title: "File", Width: listWidth - 2}})
	m.files.SetHeight(body - 3)

	m.fileTable.SetWidth(m.fileTableWidth())
	m.fileTable.SetHeight(body - 3)
	m.applyFileTable()
}

func (m *Model) bodyHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 8 {
		h = 8
	}
	return h
}

func (m *Model) detailWidth() int {
	return m.width * 2 / 5
}

func (m *Model) logsWidth() int {
	return m.width - m.detailWidth()
}

func (m *Model) fileListWidth() int {
	return m.width / 3
}

func (m *Model) fileTableWidth() int {
	w := m.width - m.fileListWidth() - 4
	if w < 20 {
		w = 20
	}
	return w
}

// renderDashboard renders the complete dashboard view.
func (m *Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var body string
	if m.viewMode == ViewFiles {
		body = m.renderFilesView()
	} else {
		body = m.renderHostsView()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderStatusLine(),
		m.renderFooter(),
	)
}

// renderHeader renders the title, clock and refresh summary.
func (m *Model) renderHeader() string {
	s := m.status

	auto := "auto-refresh off"
	if s.AutoRefresh {
		auto = "auto-refresh on"
	}

	updated := "not loaded yet"
	if !s.LastRefresh.IsZero() {
		updated = "updated " + humanize.RelTime(s.LastRefresh, m.now, "ago", "from now")
	}

	title := m.styles.Title.Render("logchecker")
	stats := m.styles.HeaderDim.Render(fmt.Sprintf(" | %s | %s | %d hosts | %s | %s",
		m.viewMode, m.now.Format(clockLayout), s.HostCount, auto, updated))

	header := m.styles.Header.Render(title + stats)
	if m.width > 0 {
		header = m.styles.Header.Width(m.width).Render(title + stats)
	}
	return header
}

func (m *Model) renderHostsView() string {
	hostPane := m.styles.PaneFocused.Render(m.hosts.View())
	if len(m.hostIDs) == 0 {
		hostPane = m.styles.PaneFocused.Render(m.styles.Label.Render("No hosts reporting"))
	}

	detailW := m.detailWidth()
	logsW := m.logsWidth()
	paneHeight := m.logs.Height + 1

	detail := m.renderDetailPane()
	logs := m.renderLogsPane()
	if m.width > 0 {
		detail = m.styles.Pane.Width(detailW - 2).Height(paneHeight).Render(detail)
		logs = m.styles.Pane.Width(logsW - 2).Height(paneHeight).Render(logs)
	} else {
		detail = m.styles.Pane.Render(detail)
		logs = m.styles.Pane.Render(logs)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		hostPane,
		lipgloss.JoinHorizontal(lipgloss.Top, detail, logs),
	)
}

func (m *Model) renderDetailPane() string {
	title := m.styles.PaneTitle.Render("Detail")

	var content string
	switch {
	case m.detail != "":
		content = m.styles.Value.Render(m.detail)
	case m.status.DetailLoading:
		content = m.spinner.View() + m.styles.Label.Render(" Loading...")
	default:
		content = m.styles.Label.Render("No host selected")
	}
	return title + "\n" + content
}

func (m *Model) renderLogsPane() string {
	title := m.styles.PaneTitle.Render(fmt.Sprintf("Logs (%d)", len(m.logLines)))
	if len(m.logLines) == 0 {
		return title + "\n" + m.styles.Label.Render("No log entries")
	}
	return title + "\n" + m.logs.View()
}

func (m *Model) renderFilesView() string {
	listTitle := "Files"
	if m.filesDir != "" {
		listTitle = "Files in " + m.filesDir
	}

	list := m.files.View()
	if len(m.filePaths) == 0 {
		list = m.styles.Label.Render("No log files found")
	}
	list = m.styles.PaneTitle.Render(listTitle) + "\n" + list

	var records string
	switch {
	case m.fileName == "":
		records = m.styles.Label.Render("Highlight a file to view its records")
	case m.fileData.Empty():
		records = m.styles.Label.Render("No records")
	default:
		records = m.fileTable.View()
	}
	recordTitle := "Records"
	if m.fileName != "" {
		recordTitle = fmt.Sprintf("%s (%d rows)", m.displayPath(m.fileName), len(m.fileData.Rows))
	}
	records = m.styles.PaneTitle.Render(recordTitle) + "\n" + records

	if m.width > 0 {
		h := m.bodyHeight() - 2
		list = m.styles.PaneFocused.Width(m.fileListWidth() - 2).Height(h).Render(list)
		records = m.styles.Pane.Width(m.width - m.fileListWidth() - 2).Height(h).Render(records)
	} else {
		list = m.styles.PaneFocused.Render(list)
		records = m.styles.Pane.Render(records)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, records)
}

// renderStatusLine shows the last failure or what is in flight.
func (m *Model) renderStatusLine() string {
	s := m.status
	var line string
	switch {
	case s.Err != "":
		line = m.styles.StatusError.Render(symbolFail + " " + s.Err)
	case s.Refreshing:
		line = m.spinner.View() + m.styles.Label.Render(" refreshing")
	case s.LastRefresh.IsZero():
		line = m.styles.Label.Render("waiting for first load")
	default:
		line = m.styles.StatusOK.Render(symbolOK + " ok")
	}
	return m.styles.Footer.Render(line)
}

// renderFooter renders the key hints.
func (m *Model) renderFooter() string {
	m.help.Width = m.width
	return m.styles.Footer.Render(strings.TrimRight(m.help.View(m.keys), " "))
}
