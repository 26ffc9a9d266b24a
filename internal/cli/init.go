package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/strayware/tabdeck/internal/session"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize tabdeck configuration and session storage",
		Long: `Create the configuration directory with a default config.yaml
(including a starter route table) and initialize the session database.`,
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, configFileName+"."+configFileType)
	if err := writeConfigIfMissing(configPath); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return err
	}
	dataDir, err := resolveDataDir(v)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}

	// Open then close the store so the database and schema exist.
	store := session.New()
	if err := store.Open(dataDir); err != nil {
		return fmt.Errorf("initialize session storage: %w", err)
	}
	if err := store.Close(); err != nil {
		return fmt.Errorf("finalize session storage: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Tabdeck initialized successfully")
	return nil
}

// writeConfigIfMissing creates config.yaml with the default route table if
// the file does not exist. Idempotent: an existing file is left untouched.
func writeConfigIfMissing(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{Routes: defaultRouteTable()}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
