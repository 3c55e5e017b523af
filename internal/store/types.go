package store

import (
	"strings"
	"time"
)

// Status is the last reported state of a host.
type Status string

const (
	StatusOnline  Status = "online"
	StatusOffline Status = "offline"
	StatusUnknown Status = "unknown"
)

// ParseStatus normalizes a stored status value. Anything unrecognized maps to
// StatusUnknown.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusOnline:
		return StatusOnline
	case StatusOffline:
		return StatusOffline
	default:
		return StatusUnknown
	}
}

// Host is one row of the hosts table.
type Host struct {
	ID       string
	Name     string
	OS       string
	Version  string
	Status   Status
	LastSeen time.Time
}

// LogEntry is one row of the client_logs table.
type LogEntry struct {
	HostID    string
	Timestamp time.Time
	Level     string
	Message   string
}
