package config

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/logchecker/internal/errors"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Store.Path) == "" {
		return errors.New(errors.ErrConfig,
			"store.path is empty",
			"Point store.path at the SQLite database the hosts report into")
	}

	if cfg.Store.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("store.timeout must be positive, got %s", cfg.Store.Timeout),
			"Use a duration like 5s or 500ms")
	}

	if cfg.Refresh.Period <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("refresh.period must be positive, got %s", cfg.Refresh.Period),
			"Use a duration like 5s or 1m")
	}

	for _, ext := range cfg.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("files.extensions entry %q must start with a dot", ext),
				"Write extensions like .jsonl")
		}
	}

	switch cfg.UI.Theme {
	case ThemeAuto, ThemeDark, ThemeLight:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown ui.theme %q", cfg.UI.Theme),
			"Use one of: auto, dark, light")
	}

	return nil
}
