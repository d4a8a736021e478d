package main

import (
	"context"
	"fmt"

	"github.com/LovationAdmin/finanzas/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	c := newClient()
	feed := tui.Watch(ctx, c.Watch)

	if err := tui.Run(tui.NewApp(ctx, c, user, feed)); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
