package main

import (
	"fmt"

	"github.com/LovationAdmin/finanzas/cli"
	"github.com/LovationAdmin/finanzas/ledger"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show the balance and the history grouped by month",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	movements, err := newClient().ListMovements(ctx)
	if err != nil {
		return fmt.Errorf("cargar movimientos: %w", err)
	}
	summary := ledger.Summarize(movements)

	out := cmd.OutOrStdout()
	if u, ok := settings.CurrentUser(); ok {
		fmt.Fprintln(out, cli.RenderUser(u))
	}
	fmt.Fprintln(out, cli.RenderBalance(summary))
	fmt.Fprintln(out)
	fmt.Fprint(out, cli.RenderGroups(summary, true))
	return nil
}
