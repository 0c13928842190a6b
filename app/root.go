// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/settings-admin/settings-admin/internal/config"
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"./etc/",
		"Path to the config directory holding "+config.MainFile,
	)
}

var (
	configPath string // Path to the configuration directory
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "settings-admin",
		Short: "settings-admin manages database-backed application settings",
		Long: `settings-admin keeps application settings in a database table, merges them
over the configured parameters and serves a generated admin form and a json api.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

// loadConfig reads the config directory given by --config.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error

	cfg, err = config.ReadConfig(configPath)

	return err
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
