package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"subgrip/internal/config"
)

func newConfigCmd(app *App) *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  "Print the effective configuration as TOML. With --init, write the defaults to the config file if it does not exist yet.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := app.configService(nil)
			out := cmd.OutOrStdout()

			if initFile {
				if _, err := os.Stat(svc.Path()); err == nil {
					return fmt.Errorf("config file already exists: %s", svc.Path())
				} else if !errors.Is(err, os.ErrNotExist) {
					return fmt.Errorf("stat config file: %w", err)
				}
				if err := svc.Save(config.DefaultConfig()); err != nil {
					return err
				}
				_, err := fmt.Fprintf(out, "Wrote %s\n", svc.Path())
				return err
			}

			cfg, err := svc.Load()
			if err != nil {
				return fmt.Errorf("load config %s: %w", svc.Path(), err)
			}

			data, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}
			fmt.Fprintf(out, "# %s\n", svc.Path())
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "Write the default configuration file")
	return cmd
}
