package config

import (
	"os"
	"path/filepath"

	"github.com/rileyhilliard/logchecker/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".logchecker.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/logchecker"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found: "+path,
				"Create "+ConfigFileName+" or remove it to run with defaults")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. .logchecker.yaml in the current directory
// 2. ~/.config/logchecker/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if not found.
// The result is validated either way.
func LoadOrDefault() (*Config, error) {
	path, err := Find()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if path != "" {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	// Relative paths are resolved against the config file's directory so the
	// global config behaves the same from any working directory.
	base := filepath.Dir(path)
	cfg.Store.Path = resolvePath(base, cfg.Store.Path)
	cfg.Files.Dir = resolvePath(base, cfg.Files.Dir)
	cfg.Log.File = resolvePath(base, cfg.Log.File)

	return cfg, nil
}

// setDefaults registers defaults so partially specified sections keep the
// values they leave out.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("store.path", def.Store.Path)
	v.SetDefault("store.timeout", def.Store.Timeout.String())
	v.SetDefault("refresh.period", def.Refresh.Period.String())
	v.SetDefault("files.dir", def.Files.Dir)
	v.SetDefault("files.extensions", def.Files.Extensions)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.debug", def.Log.Debug)
	v.SetDefault("ui.theme", def.UI.Theme)
}

// resolvePath expands a leading ~ and anchors relative paths at base.
func resolvePath(base, p string) string {
	if p == "" {
		return p
	}
	if p == "~" || (len(p) > 1 && p[:2] == "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
