package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"subgrip/internal/domain"
	"subgrip/internal/git"
	"subgrip/internal/ui/views"
)

const defaultListWidth = 80

func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "Print the submodules of a repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := app.repoDir(args)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			records, err := git.NewSubmoduleService(dir).ListSubmodules(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			width, tty := resolveTerminal(out)
			if !tty {
				return writePlain(out, records)
			}
			return writeStyled(out, records, width)
		},
	}
	return cmd
}

// writePlain prints one line per submodule in space-aligned columns: path, commit, status, url
func writePlain(out io.Writer, records []domain.Submodule) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, rec := range records {
		commit := rec.FullID
		if commit == "" {
			commit = views.NoCommit
		}
		url := rec.URL
		if url == "" {
			url = views.NoURL
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rec.Path, commit, rec.Status, url)
	}
	return tw.Flush()
}

// writeStyled prints the list pane lines with a coloured status marker
func writeStyled(out io.Writer, records []domain.Submodule, width int) error {
	status := views.NewStatusRenderer(views.NewStyles())

	// marker and separator take two columns
	lines := views.ListLines(records, -1, 0, width-2, len(records))
	for i, line := range lines {
		if _, err := fmt.Fprintf(out, "%s %s\n", status.RenderIcon(records[i].Status), line.Plain()); err != nil {
			return err
		}
	}
	return nil
}

func resolveTerminal(out io.Writer) (width int, isTTY bool) {
	width = defaultListWidth

	f, ok := out.(*os.File)
	if !ok {
		return width, false
	}

	fd := f.Fd()
	isTTY = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)

	if w, _, err := term.GetSize(int(fd)); err == nil && w > 0 {
		width = w
	}
	return width, isTTY
}
