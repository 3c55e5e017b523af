package testing

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rileyhilliard/logchecker/internal/store"
	"github.com/stretchr/testify/require"
)

// Schema creates the two tables the store reads.
const Schema = `
CREATE TABLE hosts (
	id TEXT PRIMARY KEY,
	computer_name TEXT,
	os_info TEXT,
	current_version TEXT,
	status TEXT,
	last_seen TIMESTAMP
);
CREATE TABLE client_logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	host_id TEXT REFERENCES hosts(id),
	timestamp TIMESTAMP,
	log_level TEXT,
	message TEXT
);`

const timestampLayout = "2006-01-02 15:04:05"

// NewSQLiteFile writes a database under t.TempDir() holding hosts and logs,
// inserted in the order given, and returns its path.
func NewSQLiteFile(t testing.TB, hosts []store.Host, logs []store.LogEntry) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(Schema)
	require.NoError(t, err)

	for _, h := range hosts {
		_, err := db.Exec(`INSERT INTO hosts VALUES (?, ?, ?, ?, ?, ?)`,
			h.ID, h.Name, h.OS, h.Version, string(h.Status), h.LastSeen.UTC().Format(timestampLayout))
		require.NoError(t, err)
	}
	for _, l := range logs {
		_, err := db.Exec(`INSERT INTO client_logs (host_id, timestamp, log_level, message) VALUES (?, ?, ?, ?)`,
			l.HostID, l.Timestamp.UTC().Format(timestampLayout), l.Level, l.Message)
		require.NoError(t, err)
	}
	return path
}
