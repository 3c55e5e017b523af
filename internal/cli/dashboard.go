package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/logchecker/internal/config"
	"github.com/rileyhilliard/logchecker/internal/dashboard"
	"github.com/rileyhilliard/logchecker/internal/errors"
	"github.com/rileyhilliard/logchecker/internal/logfile"
	"github.com/rileyhilliard/logchecker/internal/logger"
	"github.com/rileyhilliard/logchecker/internal/monitor"
	"github.com/rileyhilliard/logchecker/internal/store"
	"golang.org/x/term"
)

// app is a fully wired dashboard ready to run.
type app struct {
	model *monitor.Model
	core  *dashboard.Orchestrator
	store *store.SQLite
}

// close stops in-flight fetches and releases the store.
func (a *app) close() {
	a.core.Handle(dashboard.Quit{})
	_ = a.store.Close()
}

// runDashboard starts the TUI on out. It returns once the user quits.
func runDashboard(out *os.File) error {
	if !term.IsTerminal(int(out.Fd())) {
		return errors.New(errors.ErrUI,
			"logchecker needs an interactive terminal",
			"Run it directly in a terminal, not through a pipe or redirect.")
	}

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	log, closeLog, err := logger.NewFileLogger(cfg.Log.File, cfg.Log.Debug)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open the log file "+cfg.Log.File,
			"Point log.file at a writable location.")
	}
	defer closeLog()
	logger.SetDefault(log)
	defer logger.SetDefault(logger.Noop())

	a, err := newApp(cfg)
	if err != nil {
		log.Error("startup failed: %v", err)
		return err
	}
	defer a.close()

	log.Info("dashboard started (store=%s, files=%s)", cfg.Store.Path, cfg.Files.Dir)
	p := tea.NewProgram(a.model, tea.WithAltScreen(), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrUI,
			"The dashboard stopped unexpectedly",
			"Check the log file for details: "+cfg.Log.File)
	}
	log.Info("dashboard stopped")
	return nil
}

// newApp opens the store and wires the core to a fresh model. Components log
// through children of logger.Default().
func newApp(cfg *config.Config) (*app, error) {
	log := logger.Default()
	s, err := store.Open(cfg.Store.Path, cfg.Store.Timeout, logger.Named(log, "store"))
	if err != nil {
		return nil, err
	}

	// A store that is not up yet is reported in the status line on first
	// load, so startup carries on.
	if err := s.Ping(context.Background()); err != nil {
		log.Warn("store not reachable at startup: %v", err)
	}

	files := logfile.NewReader(cfg.Files.Dir, cfg.Files.Extensions, logger.Named(log, "logfile"))
	model := monitor.NewModel(monitor.Options{
		Theme:    cfg.UI.Theme,
		FilesDir: files.Dir(),
	})
	core := dashboard.New(s, files, model, dashboard.Options{
		RefreshPeriod: cfg.Refresh.Period,
		Logger:        logger.Named(log, "dashboard"),
	})
	model.SetHandler(core)

	return &app{model: model, core: core, store: s}, nil
}
