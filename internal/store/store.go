// Package store reads host and log records from the relational store that
// fleet hosts report into. It is read-only: nothing here writes, creates, or
// migrates tables.
//
// The store holds two tables:
//
//	hosts       (id, computer_name, os_info, current_version, status, last_seen)
//	client_logs (host_id, timestamp, log_level, message)
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/rileyhilliard/logchecker/internal/errors"
	"github.com/rileyhilliard/logchecker/internal/logger"
)

const (
	listHostsQuery = `SELECT id, computer_name, os_info, current_version, status, last_seen
FROM hosts ORDER BY last_seen DESC`

	getHostQuery = `SELECT id, computer_name, os_info, current_version, status, last_seen
FROM hosts WHERE id = ?`

	listLogsQuery = `SELECT host_id, timestamp, log_level, message
FROM client_logs WHERE host_id = ? ORDER BY timestamp ASC`
)

const unavailableSuggestion = "Check that store.path points at a readable SQLite database with hosts and client_logs tables"

// SQLite is the Store Gateway backed by a SQLite database file.
// The *sql.DB connection pool is shared by every fetch path.
type SQLite struct {
	db      *sql.DB
	path    string
	timeout time.Duration
	log     logger.Logger
}

// Open prepares a read-only handle on the database at path. No connection is
// made until the first query, so a missing or broken store surfaces as a
// failed refresh rather than a startup error.
func Open(path string, timeout time.Duration, log logger.Logger) (*SQLite, error) {
	if log == nil {
		log = logger.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	db, err := sql.Open("sqlite3", readOnlyDSN(path))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrStore,
			"Cannot open log store: "+path, unavailableSuggestion)
	}

	return &SQLite{
		db:      db,
		path:    path,
		timeout: timeout,
		log:     log,
	}, nil
}

// readOnlyDSN builds a URI filename that opens the database read-only and
// waits briefly on writer locks held by the ingestion side.
func readOnlyDSN(path string) string {
	return fmt.Sprintf("file:%s?mode=ro&_busy_timeout=%d", path, 2000)
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Path returns the database file the gateway reads.
func (s *SQLite) Path() string {
	return s.path
}

// Ping checks that the store can be reached.
func (s *SQLite) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return s.unavailable("ping", err)
	}
	// PingContext only opens the file; a query proves the schema is there.
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hosts`).Scan(&n); err != nil {
		return s.unavailable("ping", err)
	}
	return nil
}

// ListHosts returns every host, most recently seen first.
func (s *SQLite) ListHosts(ctx context.Context) ([]Host, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, listHostsQuery)
	if err != nil {
		return nil, s.unavailable("list hosts", err)
	}
	defer rows.Close()

	hosts := make([]Host, 0)
	for rows.Next() {
		h, err := scanHost(rows)
		if err != nil {
			return nil, s.badRow("hosts", err)
		}
		hosts = append(hosts, h)
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("list hosts", err)
	}

	// SQL ordering is textual; re-sort on parsed time so mixed timestamp
	// formats still come out in the right order.
	sort.SliceStable(hosts, func(i, j int) bool {
		return hosts[i].LastSeen.After(hosts[j].LastSeen)
	})
	return hosts, nil
}

// GetHost returns the host with the given id, or nil if there is none.
func (s *SQLite) GetHost(ctx context.Context, id string) (*Host, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, getHostQuery, id)
	h, err := scanHost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, s.unavailable("get host", err)
	}
	return &h, nil
}

// ListLogs returns the host's log entries, oldest first. A host without logs
// (or an unknown host) yields an empty slice.
func (s *SQLite) ListLogs(ctx context.Context, hostID string) ([]LogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, listLogsQuery, hostID)
	if err != nil {
		return nil, s.unavailable("list logs", err)
	}
	defer rows.Close()

	entries := make([]LogEntry, 0)
	for rows.Next() {
		var (
			hostIDCol string
			ts        any
			level     sql.NullString
			message   sql.NullString
		)
		if err := rows.Scan(&hostIDCol, &ts, &level, &message); err != nil {
			return nil, s.badRow("client_logs", err)
		}
		entries = append(entries, LogEntry{
			HostID:    hostIDCol,
			Timestamp: parseTime(ts),
			Level:     level.String,
			Message:   message.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, s.unavailable("list logs", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func (s *SQLite) unavailable(op string, err error) error {
	s.log.Warn("store %s failed: %v", op, err)
	return errors.WrapWithCode(err, errors.ErrStore,
		"Log store unavailable ("+op+")", unavailableSuggestion)
}

// badRow reports a row the store returned but that does not decode.
func (s *SQLite) badRow(table string, err error) error {
	s.log.Warn("undecodable %s row: %v", table, err)
	return errors.Wrap(err, "Log store returned an unreadable "+table+" row")
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanHost(sc scanner) (Host, error) {
	var (
		id       string
		name     sql.NullString
		osInfo   sql.NullString
		version  sql.NullString
		status   sql.NullString
		lastSeen any
	)
	if err := sc.Scan(&id, &name, &osInfo, &version, &status, &lastSeen); err != nil {
		return Host{}, err
	}
	return Host{
		ID:       id,
		Name:     name.String,
		OS:       osInfo.String,
		Version:  version.String,
		Status:   ParseStatus(status.String),
		LastSeen: parseTime(lastSeen),
	}, nil
}

// parseTime converts whatever the driver handed back for a timestamp column.
// Columns declared DATETIME/TIMESTAMP arrive as time.Time; TEXT columns as
// strings in one of the driver's timestamp layouts; INTEGER columns as Unix
// seconds (UTC). A stated offset is kept so times read as the host reported
// them. Unparseable values become the zero time.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case int64:
		return time.Unix(t, 0).UTC()
	case float64:
		sec := int64(t)
		return time.Unix(sec, int64((t-float64(sec))*1e9)).UTC()
	case []byte:
		return parseTimeString(string(t))
	case string:
		return parseTimeString(t)
	default:
		return time.Time{}
	}
}

func parseTimeString(s string) time.Time {
	s = strings.TrimSuffix(strings.TrimSpace(s), "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return ts
		}
	}
	return time.Time{}
}
