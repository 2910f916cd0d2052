// Package cmd (config.go) defines the 'config' commands, which show and change
// the local configuration file without contacting the server.
package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tonimelisma/sponsorctl/internal/config"
	"github.com/tonimelisma/sponsorctl/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change local configuration",
	Long: `Shows or changes the configuration file. Environment variables prefixed
with SPONSORCTL_ (for example SPONSORCTL_HTTP_TIMEOUT=45s) override the file.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrCreate()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		return configShowLogic(cfg)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a configuration value and save it",
	Long:  `Changes a configuration value, for example 'config set http.retryattempts 5', and saves the file.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrCreate()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		return configSetLogic(cfg, args[0], args[1])
	},
}

func configShowLogic(cfg *config.Configuration) error {
	if path, err := config.Path(); err == nil {
		fmt.Printf("Config file: %s\n", path)
	}
	values := cfg.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-24s %s\n", k, values[k])
	}
	return nil
}

func configSetLogic(cfg *config.Configuration, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving configuration: %w", err)
	}
	key = strings.ToLower(key)
	ui.Success(fmt.Sprintf("Set %s = %s", key, cfg.Values()[key]))
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd)
}
