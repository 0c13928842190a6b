package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/settings-admin/settings-admin/internal/settings"
)

func init() { //nolint: gochecknoinits
	cacheCmd.AddCommand(cacheFlushCmd)
	rootCmd.AddCommand(cacheCmd)
}

var (
	cacheCmd = &cobra.Command{
		Use:               "cache",
		Short:             "Manage the application cache",
		PersistentPreRunE: loadConfig,
	}

	cacheFlushCmd = &cobra.Command{
		Use:   "flush",
		Short: "Clear the whole application cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(svc *settings.Service, _ *settings.Store) error {
				if err := svc.FlushCache(cmd.Context()); err != nil {
					return err
				}

				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cache cleared successfully.")

				return err
			})
		},
	}
)
