// Package paths resolves the pantry configuration and data directories.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
)

// appDirName is the directory created under platform config/data roots.
const appDirName = "pantry"

// CWD-relative directory names.
const (
	DefaultConfigDirName = ".pantry"
	DefaultDataDirName   = ".pantry-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PANTRY_CONFIG_DIR"
	EnvDataDir   = "PANTRY_DATA_DIR"
)

// overrides holds the directory overrides read from the environment.
type overrides struct {
	ConfigDir string `env:"PANTRY_CONFIG_DIR"`
	DataDir   string `env:"PANTRY_DATA_DIR"`
}

func readOverrides() (overrides, error) {
	var o overrides
	if err := env.Parse(&o); err != nil {
		return overrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
}

// DefaultConfigDir returns the platform-specific default configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/pantry (fallback ~/.config/pantry)
// macOS:   ~/Library/Application Support/pantry
// Windows: %APPDATA%/pantry
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// DefaultDataDir returns the platform-specific default data directory.
//
// Linux:   $XDG_DATA_HOME/pantry (fallback ~/.local/share/pantry)
// macOS:   ~/Library/Application Support/pantry
// Windows: %APPDATA%/pantry
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, appDirName), nil
		}
		home, err := platformDir.homeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".local", "share", appDirName), nil
	default:
		dir, err := platformDir.userConfigDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, appDirName), nil
	}
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > PANTRY_CONFIG_DIR env > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	o, err := readOverrides()
	if err != nil {
		return "", err
	}
	if o.ConfigDir != "" {
		return filepath.Abs(o.ConfigDir)
	}
	return DefaultConfigDir()
}

// ResolveDataDir returns the data directory following the precedence chain:
// flag > configYAMLValue > PANTRY_DATA_DIR env > $(CWD)/.pantry-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	o, err := readOverrides()
	if err != nil {
		return "", err
	}
	if o.DataDir != "" {
		return filepath.Abs(o.DataDir)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}
