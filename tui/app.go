// Package tui provides the interactive Bubble Tea dashboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LovationAdmin/finanzas/cli"
	"github.com/LovationAdmin/finanzas/dashboard"
	"github.com/LovationAdmin/finanzas/events"
	"github.com/LovationAdmin/finanzas/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// stateMsg carries the result of a controller call. A refresh only
// contributes its movements so a modal opened meanwhile survives.
type stateMsg struct {
	state   dashboard.State
	err     error
	refresh bool
}

// feedMsg is a change feed event.
type feedMsg events.MovementEvent

// feedClosedMsg is sent once when the change feed stops.
type feedClosedMsg struct{ err error }

var formFields = [...]dashboard.Field{dashboard.FieldConcept, dashboard.FieldAmount, dashboard.FieldDate}

// App is the root Bubble Tea model.
type App struct {
	ctx   context.Context
	ctrl  *dashboard.Controller
	state dashboard.State

	cursor        int
	collapsed     map[string]bool
	pendingDelete int64
	busy          bool
	err           error
	live          bool

	inputs [len(formFields)]textinput.Model
	focus  int

	feed chan tea.Msg
	now  func() time.Time

	width int
}

// NewApp builds the dashboard for user. feed may be nil when no change feed
// is available.
func NewApp(ctx context.Context, api dashboard.API, user models.User, feed chan tea.Msg) App {
	a := App{
		ctx:   ctx,
		ctrl:  dashboard.NewController(api),
		state: dashboard.New(user),
		feed:  feed,
		now:   time.Now,
	}
	for i := range a.inputs {
		a.inputs[i] = newFormInput(formFields[i])
	}
	return a
}

func newFormInput(f dashboard.Field) textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 30
	switch f {
	case dashboard.FieldConcept:
		ti.Placeholder = "Concepto"
	case dashboard.FieldAmount:
		ti.Placeholder = "Monto"
	case dashboard.FieldDate:
		ti.Placeholder = models.DateLayout
	}
	return ti
}

// Watch runs watch in the background and forwards its events as messages.
// The returned channel is meant for NewApp.
func Watch(ctx context.Context, watch func(context.Context, func(events.MovementEvent)) error) chan tea.Msg {
	ch := make(chan tea.Msg, 16)
	go func() {
		err := watch(ctx, func(e events.MovementEvent) {
			select {
			case ch <- feedMsg(e):
			case <-ctx.Done():
			}
		})
		select {
		case ch <- feedClosedMsg{err: err}:
		case <-ctx.Done():
		}
	}()
	return ch
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.refreshCmd(), waitForFeed(a.feed))
}

func waitForFeed(feed chan tea.Msg) tea.Cmd {
	if feed == nil {
		return nil
	}
	return func() tea.Msg {
		return <-feed
	}
}

func (a App) refreshCmd() tea.Cmd {
	ctrl, ctx, s := a.ctrl, a.ctx, a.state
	return func() tea.Msg {
		next, err := ctrl.Refresh(ctx, s)
		return stateMsg{state: next, err: err, refresh: true}
	}
}

func (a App) saveCmd() tea.Cmd {
	ctrl, ctx, s := a.ctrl, a.ctx, a.state
	return func() tea.Msg {
		next, err := ctrl.Save(ctx, s)
		return stateMsg{state: next, err: err}
	}
}

func (a App) removeCmd(id int64) tea.Cmd {
	ctrl, ctx, s := a.ctrl, a.ctx, a.state
	return func() tea.Msg {
		next, err := ctrl.Remove(ctx, s, id)
		return stateMsg{state: next, err: err}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case stateMsg:
		a.busy = false
		a.err = msg.err
		if msg.refresh {
			if msg.err == nil {
				a.state = dashboard.Loaded(a.state, msg.state.Movements())
			}
			a.clampCursor()
			return a, nil
		}
		wasOpen := a.state.Modal.Open()
		a.state = msg.state
		if wasOpen && !a.state.Modal.Open() {
			a.blurInputs()
		}
		a.clampCursor()
		return a, nil

	case feedMsg:
		a.live = true
		if msg.Type == events.TypeReady {
			return a, waitForFeed(a.feed)
		}
		return a, tea.Batch(a.refreshCmd(), waitForFeed(a.feed))

	case feedClosedMsg:
		a.live = false
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.state.Modal.Open() {
			return a.updateModal(msg)
		}
		return a.updateList(msg)
	}
	return a, nil
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.pendingDelete != 0 {
		id := a.pendingDelete
		a.pendingDelete = 0
		if key == "s" || key == "y" {
			a.busy = true
			return a, a.removeCmd(id)
		}
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.rows())-1 {
			a.cursor++
		}
	case "r":
		a.busy = true
		return a, a.refreshCmd()
	case "enter", " ":
		if r, ok := a.row(); ok {
			a.toggleGroup(r.key)
		}
	case "i":
		return a.openModal(dashboard.OpenCreate(a.state, models.KindIncome, a.now()))
	case "g":
		return a.openModal(dashboard.OpenCreate(a.state, models.KindExpense, a.now()))
	case "e":
		if m, ok := a.selected(); ok {
			return a.openModal(dashboard.OpenEdit(a.state, m))
		}
	case "d":
		if m, ok := a.selected(); ok && a.state.User.CanEdit() {
			a.pendingDelete = m.ID
		}
	}
	return a, nil
}

func (a App) openModal(s dashboard.State) (tea.Model, tea.Cmd) {
	a.state = s
	if !s.Modal.Open() {
		return a, nil
	}
	f := s.Modal.Form
	values := [len(formFields)]string{f.Concept, f.Amount, f.Date}
	for i := range a.inputs {
		a.inputs[i].SetValue(values[i])
		a.inputs[i].Blur()
	}
	a.focus = 0
	cmd := a.inputs[0].Focus()
	return a, cmd
}

func (a *App) blurInputs() {
	for i := range a.inputs {
		a.inputs[i].Blur()
		a.inputs[i].SetValue("")
	}
	a.focus = 0
}

func (a App) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.state = dashboard.Cancel(a.state)
		a.blurInputs()
		return a, nil
	case "ctrl+t":
		a.state = dashboard.ToggleKind(a.state)
		return a, nil
	case "tab", "down":
		return a.moveFocus(1)
	case "shift+tab", "up":
		return a.moveFocus(-1)
	case "enter":
		if a.busy {
			return a, nil
		}
		a.busy = true
		return a, a.saveCmd()
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	a.state = dashboard.SetField(a.state, formFields[a.focus], a.inputs[a.focus].Value())
	return a, cmd
}

func (a App) moveFocus(delta int) (tea.Model, tea.Cmd) {
	a.inputs[a.focus].Blur()
	a.focus = (a.focus + delta + len(a.inputs)) % len(a.inputs)
	cmd := a.inputs[a.focus].Focus()
	return a, cmd
}

// row is a line the cursor can sit on: a month header when movement is nil.
type row struct {
	key      string
	movement *models.Movement
}

// rows lists the cursor positions in display order. Collapsed months only
// contribute their header.
func (a App) rows() []row {
	var rows []row
	for _, g := range a.state.Summary.Groups {
		rows = append(rows, row{key: g.Key})
		if a.collapsed[g.Key] {
			continue
		}
		for i := range g.Movements {
			rows = append(rows, row{key: g.Key, movement: &g.Movements[i]})
		}
	}
	return rows
}

func (a App) row() (row, bool) {
	rows := a.rows()
	if a.cursor < 0 || a.cursor >= len(rows) {
		return row{}, false
	}
	return rows[a.cursor], true
}

func (a App) selected() (models.Movement, bool) {
	r, ok := a.row()
	if !ok || r.movement == nil {
		return models.Movement{}, false
	}
	return *r.movement, true
}

// toggleGroup folds or unfolds a month and moves the cursor to its header.
func (a *App) toggleGroup(key string) {
	collapsed := make(map[string]bool, len(a.collapsed)+1)
	for k, v := range a.collapsed {
		collapsed[k] = v
	}
	collapsed[key] = !collapsed[key]
	a.collapsed = collapsed

	for i, r := range a.rows() {
		if r.key == key && r.movement == nil {
			a.cursor = i
			return
		}
	}
}

func (a *App) clampCursor() {
	if n := len(a.rows()); a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(cli.ColorAccent).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(cli.ColorTextMuted)
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(cli.ColorAccent).
			Padding(1, 2)
)

// View implements tea.Model.
func (a App) View() string {
	var b strings.Builder

	b.WriteString(cli.RenderUser(a.state.User))
	if a.live {
		b.WriteString(helpStyle.Render("  ● en vivo"))
	}
	b.WriteString("\n")
	b.WriteString(cli.RenderBalance(a.state.Summary))
	b.WriteString("\n\n")

	if a.state.Modal.Open() {
		b.WriteString(a.viewModal())
	} else {
		b.WriteString(a.viewList())
	}

	if a.err != nil {
		b.WriteString("\n")
		b.WriteString(cli.RenderError(a.err))
	}
	b.WriteString("\n")
	b.WriteString(a.viewHelp())
	return b.String()
}

func (a App) viewList() string {
	if len(a.state.Summary.Groups) == 0 {
		return cli.RenderGroups(a.state.Summary, false) + "\n"
	}

	var b strings.Builder
	i := 0
	for _, g := range a.state.Summary.Groups {
		fold := "▾ "
		if a.collapsed[g.Key] {
			fold = "▸ "
		}
		b.WriteString(a.marker(i))
		b.WriteString(fold)
		b.WriteString(cli.RenderGroupHeader(g))
		b.WriteString("\n")
		i++
		if a.collapsed[g.Key] {
			continue
		}
		for _, m := range g.Movements {
			b.WriteString(a.marker(i))
			b.WriteString("  ")
			b.WriteString(cli.RenderMovement(m, false))
			b.WriteString("\n")
			i++
		}
	}
	if a.pendingDelete != 0 {
		b.WriteString("\n¿Borrar este movimiento? (s/n)\n")
	}
	return b.String()
}

func (a App) marker(row int) string {
	if row == a.cursor {
		return cursorStyle.Render("❯ ")
	}
	return "  "
}

func (a App) viewModal() string {
	m := a.state.Modal
	verb := "Nuevo"
	if m.Mode == dashboard.ModalEditing {
		verb = "Editar"
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s %s", verb, cli.KindLabel(m.Form.Kind))))
	b.WriteString("\n\n")
	for i := range a.inputs {
		b.WriteString(a.inputs[i].View())
		b.WriteString("\n")
	}
	if m.Error != "" {
		b.WriteString("\n")
		b.WriteString(cli.RenderError(errors.New(m.Error)))
	}
	return modalStyle.Render(b.String()) + "\n"
}

func (a App) viewHelp() string {
	switch {
	case a.state.Modal.Mode == dashboard.ModalEditing:
		return helpStyle.Render("tab campo · ctrl+t cambiar tipo · enter guardar · esc cancelar")
	case a.state.Modal.Open():
		return helpStyle.Render("tab campo · enter guardar · esc cancelar")
	case a.state.User.CanEdit():
		return helpStyle.Render("↑/↓ mover · enter plegar mes · i ingreso · g gasto · e editar · d borrar · r recargar · q salir")
	default:
		return helpStyle.Render("↑/↓ mover · enter plegar mes · r recargar · q salir")
	}
}

// Run starts the program in the alternate screen.
func Run(app App) error {
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
