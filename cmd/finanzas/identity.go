package main

import (
	"errors"
	"fmt"

	"github.com/LovationAdmin/finanzas/cli"
	"github.com/LovationAdmin/finanzas/client"
	"github.com/LovationAdmin/finanzas/models"

	"github.com/spf13/cobra"
)

var flagRol string

var loginCmd = &cobra.Command{
	Use:   "login NOMBRE",
	Short: "Remember who is using the client",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register NOMBRE",
	Short: "Register a user name with a role",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the current user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		settings.User = cli.UserSettings{}
		return cli.SaveSettings(settings)
	},
}

func init() {
	registerCmd.Flags().StringVar(&flagRol, "rol", string(models.RoleViewer), "Role: admin or viewer")
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd)
}

func remember(cmd *cobra.Command, u models.User) error {
	settings.User = cli.UserSettings{Name: u.Name, Role: u.Role}
	if err := cli.SaveSettings(settings); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderUser(u))
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	u, err := newClient().Login(ctx, args[0])
	if errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("usuario %q no encontrado", args[0])
	}
	if err != nil {
		return err
	}
	return remember(cmd, u)
}

func runRegister(cmd *cobra.Command, args []string) error {
	role := models.Role(flagRol)
	if role != models.RoleAdmin && role != models.RoleViewer {
		return fmt.Errorf("rol inválido %q: usa admin o viewer", flagRol)
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()

	u, err := newClient().Register(ctx, args[0], role)
	if errors.Is(err, client.ErrConflict) {
		return fmt.Errorf("el usuario %q ya existe", args[0])
	}
	if err != nil {
		return err
	}
	return remember(cmd, u)
}
