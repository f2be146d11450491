package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"subgrip/internal/ui/keys"
)

func newKeysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print the effective key table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig(nil)
			if err != nil {
				return err
			}

			km, err := keys.DefaultKeyMap().WithOverrides(cfg.Keys)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), km.Reference())
			return err
		},
	}
}
