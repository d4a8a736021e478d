// Command finanzas is the terminal client of the finanzas API.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LovationAdmin/finanzas/cli"
	"github.com/LovationAdmin/finanzas/client"
	"github.com/LovationAdmin/finanzas/models"

	"github.com/spf13/cobra"
)

var (
	flagAPI     string
	flagTimeout time.Duration
)

// settings is loaded before every command runs.
var settings cli.Settings

var errNotLoggedIn = errors.New("no hay sesión: usa `finanzas login NOMBRE`")

var rootCmd = &cobra.Command{
	Use:           "finanzas",
	Short:         "Finanzas personales desde la terminal",
	Long:          "Registra ingresos y gastos y consulta el balance agrupado por mes.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		s, err := cli.LoadSettings()
		if err != nil {
			return err
		}
		if flagAPI != "" {
			s.API.URL = flagAPI
		}
		settings = s
		return nil
	},
	RunE: runList,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "API base URL (default from settings or FINANZAS_API_URL)")
	rootCmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "Request timeout")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Stderr.WriteString(cli.RenderError(err) + "\n")
		os.Exit(1)
	}
}

func newClient() *client.Client {
	return client.New(settings.API.URL)
}

// requestContext bounds a single command's API calls.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), flagTimeout)
}

func currentUser() (models.User, error) {
	u, ok := settings.CurrentUser()
	if !ok {
		return models.User{}, errNotLoggedIn
	}
	return u, nil
}
