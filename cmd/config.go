package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

type configDocument struct {
	Registry registryConfig `toml:"registry"`
	Remote   remoteConfig   `toml:"remote"`
}

type registryConfig struct {
	Path string `toml:"path"`
}

type remoteConfig struct {
	BaseURL string `toml:"base_url"`
	Token   string `toml:"token"`
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the collab configuration file",
	}

	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("resolve home directory: %w", err)
			}

			configDir := filepath.Join(homeDir, ".collab")
			configPath := filepath.Join(configDir, "config.toml")

			if _, err := os.Stat(configPath); err == nil {
				return fmt.Errorf("config file already exists at %s", configPath)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("stat config file: %w", err)
			}

			if err := os.MkdirAll(configDir, 0o700); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			document := configDocument{
				Registry: registryConfig{Path: filepath.Join(configDir, "sessions")},
				Remote:   remoteConfig{BaseURL: defaultRemoteBaseURL},
			}

			encoded, err := toml.Marshal(document)
			if err != nil {
				return fmt.Errorf("encode config document: %w", err)
			}

			if err := os.WriteFile(configPath, encoded, 0o600); err != nil {
				return fmt.Errorf("write config file: %w", err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
			return err
		},
	}
}
