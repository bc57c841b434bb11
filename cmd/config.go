package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const (
	configFileMode = 0o600
	configDirMode  = 0o700
)

// configFile is the on-disk shape; durations are written in Go
// duration syntax so the file stays hand-editable.
type configFile struct {
	Listen         string `toml:"listen"`
	UpstreamURL    string `toml:"upstream_url"`
	RequestTimeout string `toml:"request_timeout"`
	RetryBaseDelay string `toml:"retry_base_delay"`
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage triviad configuration",
	}

	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config.toml with the default settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := userConfigDir()
			if err != nil {
				return fmt.Errorf("resolve config directory: %w", err)
			}

			path := filepath.Join(dir, configName+"."+configType)
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists, pass --force to overwrite", path)
				}
			}

			defaults := defaultConfig()
			encoded, err := toml.Marshal(configFile{
				Listen:         defaults.Listen,
				UpstreamURL:    defaults.UpstreamURL,
				RequestTimeout: defaults.RequestTimeout.String(),
				RetryBaseDelay: defaults.RetryBaseDelay.String(),
			})
			if err != nil {
				return fmt.Errorf("encode default config: %w", err)
			}

			if err := os.MkdirAll(dir, configDirMode); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}
			if err := os.WriteFile(path, encoded, configFileMode); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return err
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config file")

	return cmd
}
