package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/pantry/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "PANTRY"

	// Config keys.
	cfgKeyBackend          = "backend"
	cfgKeyDataDir          = "data_dir"
	cfgKeyStrictLoad       = "strict_load"
	cfgKeyStrictRecipients = "strict_recipients"
	cfgKeyLowStock         = "low_stock_threshold"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Pantry CLI configuration

# Storage backend: json (pantry_data.json) or sqlite (pantry.db)
backend: json

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Fail instead of starting empty when the data file is unreadable
strict_load: false

# Reject duplicate recipient names instead of ignoring them
strict_recipients: false

# Items at or below this quantity are reported as low stock
low_stock_threshold: 5
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// config directory and a default config.yaml on first run. PANTRY_BACKEND,
// PANTRY_STRICT_LOAD, PANTRY_STRICT_RECIPIENTS, and
// PANTRY_LOW_STOCK_THRESHOLD override the file.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendJSON)
	v.SetDefault(cfgKeyLowStock, types.DefaultLowStockThreshold)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyBackend, cfgKeyStrictLoad, cfgKeyStrictRecipients, cfgKeyLowStock} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// configFor builds the pantry config from the loaded settings and the
// resolved data directory.
func configFor(v *viper.Viper, dataDir string) types.Config {
	return types.Config{
		Backend:           v.GetString(cfgKeyBackend),
		DataDir:           dataDir,
		StrictLoad:        v.GetBool(cfgKeyStrictLoad),
		StrictRecipients:  v.GetBool(cfgKeyStrictRecipients),
		LowStockThreshold: v.GetInt(cfgKeyLowStock),
	}
}
