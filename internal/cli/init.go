package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/pantry/internal/paths"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Backend           string `yaml:"backend"`
	DataDir           string `yaml:"data_dir,omitempty"`
	StrictLoad        bool   `yaml:"strict_load"`
	StrictRecipients  bool   `yaml:"strict_recipients"`
	LowStockThreshold int    `yaml:"low_stock_threshold"`
}

func newInitCmd(a *app) *cobra.Command {
	var backend string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize pantry storage",
		Long:  "Create the configuration and data directories, write config.yaml if it is\nmissing, and create an empty data file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, backend)
		},
	}
	cmd.Flags().StringVar(&backend, "backend", types.BackendJSON, "storage backend written to a new config.yaml (json or sqlite)")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, backend string) error {
	if err := (types.Config{Backend: backend}).Validate(); err != nil {
		return userError(fmt.Errorf("backend %q: %w", backend, err))
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return sysError(fmt.Errorf("create config directory: %w", err))
	}
	configPath := filepath.Join(configDir, configFileExt)
	if err := writeConfigIfMissing(configPath, backend, a.flags.dataDir); err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.v = v

	p, err := a.openPantry()
	if err != nil {
		return err
	}
	defer p.Close()
	if err := save(p); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Pantry initialized successfully")
	fmt.Fprintln(out, "  config:", configPath)
	fmt.Fprintln(out, "  data:  ", p.Path())
	return nil
}

// writeConfigIfMissing creates config.yaml with default values if the file
// does not exist. If it already exists, the function returns nil.
func writeConfigIfMissing(path, backend, dataDir string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := configFile{
		Backend:           backend,
		DataDir:           dataDir,
		LowStockThreshold: types.DefaultLowStockThreshold,
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
