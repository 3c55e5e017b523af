package dashboard

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/logchecker/internal/store"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// HostNotFound is the detail text for a host the store does not know.
const HostNotFound = "Host not found."

const (
	lastSeenLayout = "2006-01-02 15:04:05"
	logTimeLayout  = "2006-01-02 15:04"
)

// HostColumns are the host table headers, one per ProjectHostTable cell.
var HostColumns = []string{"ID", "Name", "OS", "Version", "Status", "Last Seen"}

// ProjectHostTable renders one row per host, in input order.
func ProjectHostTable(hosts []store.Host) [][]string {
	return lo.Map(hosts, func(h store.Host, _ int) []string {
		return []string{
			h.ID,
			h.Name,
			h.OS,
			h.Version,
			string(h.Status),
			h.LastSeen.Format(lastSeenLayout),
		}
	})
}

// ProjectLogLines renders one line per entry, in input order.
func ProjectLogLines(entries []store.LogEntry) []string {
	return lo.Map(entries, func(e store.LogEntry, _ int) string {
		return fmt.Sprintf("[%s] [%s] %s", e.Timestamp.Format(logTimeLayout), e.Level, e.Message)
	})
}

// hostDetail is the field order of the detail dump.
type hostDetail struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"computer_name"`
	OS       string `yaml:"os_info"`
	Version  string `yaml:"current_version"`
	Status   string `yaml:"status"`
	LastSeen string `yaml:"last_seen"`
}

// ProjectHostDetail renders h as YAML, or HostNotFound when h is nil.
func ProjectHostDetail(h *store.Host) string {
	if h == nil {
		return HostNotFound
	}

	d := hostDetail{
		ID:       h.ID,
		Name:     h.Name,
		OS:       h.OS,
		Version:  h.Version,
		Status:   string(h.Status),
		LastSeen: h.LastSeen.Format(lastSeenLayout),
	}
	out, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Sprintf("%+v", d)
	}
	return strings.TrimRight(string(out), "\n")
}
