package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ImportClientsCmd returns the import-clients command.
func ImportClientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-clients <file>",
		Short: "Bulk-create clients from an .xlsx or .csv file",
		Long: `Read the first sheet of an .xlsx workbook (or a .csv file) with Name and
Address header columns and create one client per row with a name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			a, err := bootstrap(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.clients.Import(cmd.Context(), systemActor, filepath.Base(path), f)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", color.New(color.FgRed).Sprint("FAILED"), err)
				return err
			}

			status := color.New(color.FgGreen).Sprint("IMPORTED")
			if n == 0 {
				status = color.New(color.FgYellow).Sprint("EMPTY   ")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d clients from %s\n", status, n, path)
			return nil
		},
	}
}
