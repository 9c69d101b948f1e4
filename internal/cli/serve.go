package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rogpool/service-reports/internal/api"
)

// ServeCmd returns the serve command.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Start the service-report API.

On startup the bootstrap admin account (ADMIN_USERNAME / ADMIN_PASSWORD) is
created when no user with that name exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, true)
			if err != nil {
				return err
			}
			defer a.close()

			created, err := a.auth.EnsureAdmin(ctx, a.cfg.Auth.AdminUsername, a.cfg.Auth.AdminPassword)
			if err != nil {
				return err
			}
			if created && a.cfg.Auth.AdminPassword == "admin123" {
				a.log.Warn().Str("username", a.cfg.Auth.AdminUsername).Msg("bootstrap admin uses the default password, change it")
			}

			e := api.NewRouter(api.Deps{
				Auth:    a.auth,
				Users:   a.users,
				Clients: a.clients,
				Reports: a.reports,
				Checks:  a.readinessChecks(),
				Log:     a.log,
			}, api.Options{
				APIPrefix:   a.cfg.APIPrefix,
				CORSOrigins: a.cfg.Origins(),
				UploadLimit: a.cfg.UploadLimit(),
				StaticDir:   a.cfg.StaticDir,
			})

			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("port", a.cfg.Port).Str("prefix", a.cfg.APIPrefix).Msg("http server listening")
				if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
				a.log.Info().Msg("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}
