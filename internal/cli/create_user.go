package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rogpool/service-reports/internal/core/domain"
	"github.com/rogpool/service-reports/internal/core/ports"
)

// CreateUserCmd returns the create-user command.
func CreateUserCmd() *cobra.Command {
	var in ports.CreateUserInput

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account directly in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidRole(in.Role) {
				return fmt.Errorf("role must be %q or %q", domain.RoleAdmin, domain.RoleEmployee)
			}

			a, err := bootstrap(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer a.close()

			user, err := a.users.Create(cmd.Context(), systemActor, in)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", color.New(color.FgRed).Sprint("FAILED"), err)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s user %s (%s) id=%s\n",
				color.New(color.FgGreen).Sprint("CREATED"), user.Username, user.Role, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Username, "username", "u", "", "Username (required)")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "Password (required)")
	cmd.Flags().StringVarP(&in.Role, "role", "r", domain.RoleEmployee, "Role: admin or employee")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
