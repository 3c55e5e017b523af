package config

import (
	"testing"
	"time"

	"github.com/rileyhilliard/logchecker/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty store path",
			mutate:  func(c *Config) { c.Store.Path = "  " },
			wantErr: "store.path is empty",
		},
		{
			name:    "zero store timeout",
			mutate:  func(c *Config) { c.Store.Timeout = 0 },
			wantErr: "store.timeout must be positive",
		},
		{
			name:    "negative refresh period",
			mutate:  func(c *Config) { c.Refresh.Period = -time.Second },
			wantErr: "refresh.period must be positive",
		},
		{
			name:    "extension without dot",
			mutate:  func(c *Config) { c.Files.Extensions = []string{"jsonl"} },
			wantErr: "must start with a dot",
		},
		{
			name:    "unknown theme",
			mutate:  func(c *Config) { c.UI.Theme = "solarized" },
			wantErr: "Unknown ui.theme",
		},
		{
			name:   "dark theme",
			mutate: func(c *Config) { c.UI.Theme = ThemeDark },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrConfig))
		})
	}
}
