package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/settings-admin/settings-admin/internal/daemon"
	"github.com/settings-admin/settings-admin/internal/settings"
)

// ErrInvalidValue is returned when a value fails the validation rules of its key.
var ErrInvalidValue = errors.New("invalid value")

func init() { //nolint: gochecknoinits
	settingsCmd.AddCommand(settingsListCmd, settingsGetCmd, settingsSetCmd, settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	settingsCmd = &cobra.Command{
		Use:               "settings",
		Short:             "Inspect and change settings",
		PersistentPreRunE: loadConfig,
	}

	settingsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List every setting with its effective value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(cmd.Context(), func(_ *settings.Service, store *settings.Store) error {
				t := table.New().
					Border(lipgloss.NormalBorder()).
					Headers("KEY", "TYPE", "VALUE", "DEFAULT", "SOURCE").
					StyleFunc(func(row, _ int) lipgloss.Style {
						if row == table.HeaderRow {
							return headerStyle
						}

						return cellStyle
					})

				for _, def := range store.Registry().Values() {
					value, _ := def.DataType.Encode(store.Get(def.Key))
					defaultValue, _ := def.DataType.Encode(def.Default())

					source := "stored"
					if store.IsDefault(def.Key) {
						source = "default"
					}

					t.Row(def.Key, string(def.DataType), value, defaultValue, source)
				}

				_, err := fmt.Fprintln(cmd.OutOrStdout(), t.Render())

				return err
			})
		},
	}

	settingsGetCmd = &cobra.Command{
		Use:   "get KEY",
		Short: "Print the effective value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(_ *settings.Service, store *settings.Store) error {
				def, ok := store.Registry().Lookup(args[0])
				if !ok || def.IsDelimiter() {
					return errors.Wrap(settings.ErrUnknownKey, args[0])
				}

				value, err := def.DataType.Encode(store.Get(def.Key))
				if err != nil {
					return err
				}

				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)

				return err
			})
		},
	}

	settingsSetCmd = &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store an override for a setting",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(svc *settings.Service, store *settings.Store) error {
				key, value := args[0], args[1]

				if msg := svc.Schema().ValidateKey(key, value); msg != "" {
					return errors.Wrap(ErrInvalidValue, msg)
				}

				if err := store.Set(cmd.Context(), key, value); err != nil {
					return err
				}

				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s saved\n", key)

				return err
			})
		},
	}

	settingsResetCmd = &cobra.Command{
		Use:   "reset KEY",
		Short: "Remove the stored override of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(cmd.Context(), func(_ *settings.Service, store *settings.Store) error {
				if err := store.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}

				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s reset to default\n", args[0])

				return err
			})
		},
	}
)

// withStore opens the settings service for one command and hands fn a
// freshly loaded store.
func withStore(ctx context.Context, fn func(*settings.Service, *settings.Store) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	svc, c, err := daemon.NewSettings(ctx, &cfg)
	if err != nil {
		return err
	}

	defer func() { _ = c.Close() }()

	store, err := svc.Open(ctx)
	if err != nil {
		return err
	}

	return fn(svc, store)
}
