// Package cli holds the poolsvc commands.
package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd returns the poolsvc root command with every subcommand attached.
func RootCmd(version string) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:     "poolsvc",
		Short:   "Pool maintenance service-report tracker",
		Version: version,
		Long: `poolsvc serves the service-report API and offers maintenance commands
that work directly against the configured MongoDB database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadDotEnv(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")

	root.AddCommand(ServeCmd())
	root.AddCommand(CreateUserCmd())
	root.AddCommand(ImportClientsCmd())

	return root
}
