package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/logchecker/internal/config"
	"github.com/rileyhilliard/logchecker/internal/dashboard"
	"github.com/rileyhilliard/logchecker/internal/errors"
	"github.com/rileyhilliard/logchecker/internal/logger"
	"github.com/rileyhilliard/logchecker/internal/store"
	storetesting "github.com/rileyhilliard/logchecker/internal/store/testing"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantRun bool
		wantErr bool
	}{
		{name: "no arguments runs the dashboard", args: []string{}, wantRun: true},
		{name: "positional argument rejected", args: []string{"hosts"}, wantErr: true},
		{name: "unknown flag rejected", args: []string{"--hosts=a"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ran := false
			cmd := newRootCmd(func(*cobra.Command) error {
				ran = true
				return nil
			})
			cmd.SetArgs(tt.args)
			cmd.SetOut(&discard{})
			cmd.SetErr(&discard{})

			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantRun, ran)
		})
	}
}

func TestRootCmd_PropagatesRunError(t *testing.T) {
	want := errors.New(errors.ErrConfig, "bad", "")
	cmd := newRootCmd(func(*cobra.Command) error { return want })
	cmd.SetArgs([]string{})

	assert.Equal(t, want, cmd.Execute())
}

func TestRunDashboard_RequiresTerminal(t *testing.T) {
	out, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer out.Close()

	err = runDashboard(out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrUI))
}

// settle runs cmds and feeds their events back until nothing is left.
func settle(core *dashboard.Orchestrator, cmds []dashboard.Command) {
	for len(cmds) > 0 {
		c := cmds[0]
		cmds = cmds[1:]
		if ev := c(); ev != nil {
			cmds = append(cmds, core.Handle(ev)...)
		}
	}
}

// useBufferLogger installs a buffer as the default logger for the test.
func useBufferLogger(t *testing.T) *logger.BufferLogger {
	t.Helper()
	buf := logger.NewBufferLogger()
	original := logger.Default()
	logger.SetDefault(buf)
	t.Cleanup(func() { logger.SetDefault(original) })
	return buf
}

func testConfig(t *testing.T, dbPath string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Store.Path = dbPath
	cfg.Files.Dir = t.TempDir()
	cfg.UI.Theme = config.ThemeDark
	return cfg
}

func TestNewApp_WiresStoreToDashboard(t *testing.T) {
	seen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	path := storetesting.NewSQLiteFile(t,
		[]store.Host{
			{ID: "a", Name: "alpha", Status: store.StatusOnline, LastSeen: seen},
			{ID: "b", Name: "bravo", Status: store.StatusOffline, LastSeen: seen.Add(-time.Hour)},
		},
		[]store.LogEntry{{HostID: "a", Timestamp: seen, Level: "INFO", Message: "agent started"}},
	)
	cfg := testConfig(t, path)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Files.Dir, "a.jsonl"), []byte(`{"k":"v"}`+"\n"), 0o644))

	log := useBufferLogger(t)
	a, err := newApp(cfg)
	require.NoError(t, err)
	defer a.close()

	settle(a.core, a.core.Handle(dashboard.Ready{}))

	assert.Len(t, a.core.Hosts(), 2)
	assert.Equal(t, "a", a.model.SelectedHost())
	snap := a.core.Selection().Snapshot()
	require.NotNil(t, snap)
	require.NotNil(t, snap.Host)
	assert.Equal(t, "alpha", snap.Host.Name)
	assert.Len(t, snap.Logs, 1)
	assert.Empty(t, a.core.Status().Err)
	assert.False(t, log.HasLevel("warn"))
}

func TestNewApp_UnreachableStoreStillStarts(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.db"))
	log := useBufferLogger(t)

	a, err := newApp(cfg)
	require.NoError(t, err)
	defer a.close()
	assert.True(t, log.HasLevel("warn"))

	settle(a.core, a.core.Handle(dashboard.Ready{}))
	assert.Contains(t, a.core.Status().Err, "refresh failed")
	assert.Empty(t, a.core.Hosts())
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
