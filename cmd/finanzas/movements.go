package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/LovationAdmin/finanzas/cli"
	"github.com/LovationAdmin/finanzas/dashboard"
	"github.com/LovationAdmin/finanzas/models"

	"github.com/spf13/cobra"
)

var errReadOnly = errors.New("solo un usuario admin puede modificar movimientos")

var (
	flagFecha    string
	flagConcepto string
	flagMonto    string
	flagTipo     string
)

var addCmd = &cobra.Command{
	Use:       "add ingreso|gasto CONCEPTO MONTO",
	Short:     "Record a new income or expense",
	Args:      cobra.ExactArgs(3),
	ValidArgs: []string{string(models.KindIncome), string(models.KindExpense)},
	RunE:      runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change an existing movement",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete a movement",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	addCmd.Flags().StringVar(&flagFecha, "fecha", "", "Date as YYYY-MM-DD (default today)")

	editCmd.Flags().StringVar(&flagConcepto, "concepto", "", "New concept")
	editCmd.Flags().StringVar(&flagMonto, "monto", "", "New amount")
	editCmd.Flags().StringVar(&flagFecha, "fecha", "", "New date as YYYY-MM-DD")
	editCmd.Flags().StringVar(&flagTipo, "tipo", "", "New kind: ingreso or gasto")

	rootCmd.AddCommand(addCmd, editCmd, rmCmd)
}

func parseKind(s string) (models.Kind, error) {
	switch k := models.Kind(s); k {
	case models.KindIncome, models.KindExpense:
		return k, nil
	}
	return "", fmt.Errorf("tipo inválido %q: usa ingreso o gasto", s)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("id inválido %q", s)
	}
	return id, nil
}

// save submits the form through the dashboard controller and reports the
// modal error when the form was rejected.
func save(cmd *cobra.Command, s dashboard.State) (dashboard.State, error) {
	ctx, cancel := requestContext(cmd)
	defer cancel()

	next, err := dashboard.NewController(newClient()).Save(ctx, s)
	if err != nil {
		return next, err
	}
	if next.Modal.Error != "" {
		return next, errors.New(next.Modal.Error)
	}
	return next, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}
	kind, err := parseKind(args[0])
	if err != nil {
		return err
	}

	s := dashboard.OpenCreate(dashboard.New(user), kind, time.Now())
	if !s.Modal.Open() {
		return errReadOnly
	}
	s = dashboard.SetField(s, dashboard.FieldConcept, args[1])
	s = dashboard.SetField(s, dashboard.FieldAmount, args[2])
	if flagFecha != "" {
		s = dashboard.SetField(s, dashboard.FieldDate, flagFecha)
	}

	s, err = save(cmd, s)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Movimiento registrado")
	fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBalance(s.Summary))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	m, err := newClient().GetMovement(ctx, id)
	cancel()
	if err != nil {
		return fmt.Errorf("movimiento %d: %w", id, err)
	}

	s := dashboard.OpenEdit(dashboard.New(user), m)
	if !s.Modal.Open() {
		return errReadOnly
	}
	if cmd.Flags().Changed("concepto") {
		s = dashboard.SetField(s, dashboard.FieldConcept, flagConcepto)
	}
	if cmd.Flags().Changed("monto") {
		s = dashboard.SetField(s, dashboard.FieldAmount, flagMonto)
	}
	if cmd.Flags().Changed("fecha") {
		s = dashboard.SetField(s, dashboard.FieldDate, flagFecha)
	}
	if cmd.Flags().Changed("tipo") {
		kind, err := parseKind(flagTipo)
		if err != nil {
			return err
		}
		if kind != s.Modal.Form.Kind {
			s = dashboard.ToggleKind(s)
		}
	}

	if _, err := save(cmd, s); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Movimiento %d actualizado\n", id)
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	user, err := currentUser()
	if err != nil {
		return err
	}
	if !user.CanEdit() {
		return errReadOnly
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := requestContext(cmd)
	defer cancel()
	if _, err := dashboard.NewController(newClient()).Remove(ctx, dashboard.New(user), id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Eliminado correctamente")
	return nil
}
