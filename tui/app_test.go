package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/LovationAdmin/finanzas/dashboard"
	"github.com/LovationAdmin/finanzas/events"
	"github.com/LovationAdmin/finanzas/models"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

type memoryAPI struct {
	movements []models.Movement
	nextID    int64
	lists     int
}

func (m *memoryAPI) ListMovements(context.Context) ([]models.Movement, error) {
	m.lists++
	return append([]models.Movement(nil), m.movements...), nil
}

func (m *memoryAPI) CreateMovement(_ context.Context, req models.MovementRequest) (models.Movement, error) {
	m.nextID++
	mv := models.Movement{
		ID:      m.nextID,
		Concept: *req.Concept,
		Amount:  req.Amount.Decimal,
		Date:    models.Date(*req.Date),
		Kind:    models.Kind(*req.Kind),
	}
	m.movements = append(m.movements, mv)
	return mv, nil
}

func (m *memoryAPI) UpdateMovement(_ context.Context, id int64, req models.MovementRequest) (models.Movement, error) {
	for i := range m.movements {
		if m.movements[i].ID == id {
			m.movements[i].Concept = *req.Concept
			m.movements[i].Amount = req.Amount.Decimal
			m.movements[i].Date = models.Date(*req.Date)
			m.movements[i].Kind = models.Kind(*req.Kind)
			return m.movements[i], nil
		}
	}
	return models.Movement{}, context.Canceled
}

func (m *memoryAPI) DeleteMovement(_ context.Context, id int64) error {
	for i := range m.movements {
		if m.movements[i].ID == id {
			m.movements = append(m.movements[:i], m.movements[i+1:]...)
			return nil
		}
	}
	return nil
}

var admin = models.User{Name: "ana", Role: models.RoleAdmin}

func newTestApp(api *memoryAPI, user models.User) App {
	a := NewApp(context.Background(), api, user, nil)
	a.now = func() time.Time { return time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC) }
	return a
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send delivers msg and drops the resulting command.
func send(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	model, _ := a.Update(msg)
	return model.(App)
}

// run delivers msg, which must produce a controller command, and feeds the
// command's result back into the model.
func run(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	model, cmd := a.Update(msg)
	a = model.(App)
	if cmd == nil {
		t.Fatalf("%v produced no command", msg)
	}
	out, ok := cmd().(stateMsg)
	if !ok {
		t.Fatalf("%v command did not return a stateMsg", msg)
	}
	model, _ = a.Update(out)
	return model.(App)
}

func typeText(t *testing.T, a App, text string) App {
	t.Helper()
	for _, r := range text {
		a = send(t, a, key(string(r)))
	}
	return a
}

func TestApp_CreateIncome(t *testing.T) {
	api := &memoryAPI{}
	a := newTestApp(api, admin)

	a = send(t, a, key("i"))
	if a.state.Modal.Mode != dashboard.ModalCreating || a.state.Modal.Form.Kind != models.KindIncome {
		t.Fatalf("modal = %+v", a.state.Modal)
	}
	if a.inputs[2].Value() != "2024-05-02" {
		t.Errorf("date input = %q, want today", a.inputs[2].Value())
	}

	a = typeText(t, a, "Sueldo")
	a = send(t, a, key("tab"))
	a = typeText(t, a, "500")
	a = run(t, a, key("enter"))

	if a.state.Modal.Open() {
		t.Fatalf("modal still open: %+v", a.state.Modal)
	}
	if len(api.movements) != 1 || api.movements[0].Concept != "Sueldo" {
		t.Fatalf("stored = %+v", api.movements)
	}
	if !a.state.Summary.Balance.Equal(decimal.NewFromInt(500)) {
		t.Errorf("balance = %s", a.state.Summary.Balance)
	}
	if !strings.Contains(a.View(), "Sueldo") {
		t.Errorf("view missing movement:\n%s", a.View())
	}
}

func TestApp_EditToggleKind(t *testing.T) {
	api := &memoryAPI{movements: []models.Movement{
		{ID: 4, Concept: "Renta", Amount: decimal.NewFromInt(100), Date: "2024-05-01", Kind: models.KindExpense},
	}, nextID: 4}
	a := newTestApp(api, admin)
	a = send(t, a, stateMsg{state: dashboard.Loaded(a.state, api.movements), refresh: true})

	a = send(t, a, key("e"))
	if a.state.Modal.Open() {
		t.Fatal("edit opened on a month header")
	}
	a = send(t, a, key("down"))
	a = send(t, a, key("e"))
	if a.state.Modal.Mode != dashboard.ModalEditing || a.inputs[0].Value() != "Renta" {
		t.Fatalf("modal = %+v input = %q", a.state.Modal, a.inputs[0].Value())
	}
	a = send(t, a, key("ctrl+t"))
	a = run(t, a, key("enter"))

	if api.movements[0].Kind != models.KindIncome {
		t.Errorf("kind = %s, want ingreso", api.movements[0].Kind)
	}
}

func TestApp_EscCancels(t *testing.T) {
	api := &memoryAPI{}
	a := newTestApp(api, admin)

	a = send(t, a, key("g"))
	a = typeText(t, a, "Cafe")
	a = send(t, a, key("esc"))

	if a.state.Modal.Open() || len(api.movements) != 0 {
		t.Errorf("modal open=%v stored=%d", a.state.Modal.Open(), len(api.movements))
	}
	if a.inputs[0].Value() != "" {
		t.Errorf("input not cleared: %q", a.inputs[0].Value())
	}
}

func TestApp_InvalidAmountKeepsModal(t *testing.T) {
	a := newTestApp(&memoryAPI{}, admin)

	a = send(t, a, key("g"))
	a = typeText(t, a, "Cafe")
	a = send(t, a, key("tab"))
	a = typeText(t, a, "abc")
	a = run(t, a, key("enter"))

	if !a.state.Modal.Open() || a.state.Modal.Error == "" {
		t.Errorf("modal = %+v, want open with error", a.state.Modal)
	}
}

func TestApp_ViewerCannotEdit(t *testing.T) {
	api := &memoryAPI{movements: []models.Movement{
		{ID: 1, Concept: "Renta", Amount: decimal.NewFromInt(100), Date: "2024-05-01", Kind: models.KindExpense},
	}}
	a := newTestApp(api, models.User{Name: "beto", Role: models.RoleViewer})
	a = send(t, a, stateMsg{state: dashboard.Loaded(a.state, api.movements), refresh: true})
	a = send(t, a, key("down"))

	for _, k := range []string{"i", "g", "e", "d"} {
		a = send(t, a, key(k))
		if a.state.Modal.Open() || a.pendingDelete != 0 {
			t.Errorf("key %q changed state for viewer", k)
		}
	}
}

func TestApp_DeleteAsksConfirmation(t *testing.T) {
	api := &memoryAPI{movements: []models.Movement{
		{ID: 1, Concept: "Renta", Amount: decimal.NewFromInt(100), Date: "2024-05-01", Kind: models.KindExpense},
	}}
	a := newTestApp(api, admin)
	a = send(t, a, stateMsg{state: dashboard.Loaded(a.state, api.movements), refresh: true})
	a = send(t, a, key("down"))

	a = send(t, a, key("d"))
	a = send(t, a, key("n"))
	if len(api.movements) != 1 {
		t.Fatal("deleted without confirmation")
	}

	a = send(t, a, key("d"))
	a = run(t, a, key("s"))
	if len(api.movements) != 0 || len(a.state.Movements()) != 0 {
		t.Errorf("stored=%d shown=%d, want 0", len(api.movements), len(a.state.Movements()))
	}
}

func TestApp_FeedEventRefetches(t *testing.T) {
	api := &memoryAPI{}
	a := newTestApp(api, admin)

	a = send(t, a, feedMsg(events.MovementEvent{Type: events.TypeReady}))
	if api.lists != 0 || !a.live {
		t.Errorf("ready: lists=%d live=%v", api.lists, a.live)
	}

	api.movements = append(api.movements, models.Movement{ID: 9, Amount: decimal.NewFromInt(5), Date: "2024-05-01", Kind: models.KindIncome})
	model, cmd := a.Update(feedMsg(events.MovementEvent{Type: events.TypeCreated, ID: 9}))
	a = model.(App)
	if cmd == nil {
		t.Fatal("created event produced no command")
	}
	// the batch holds the refetch; run it directly
	a = send(t, a, a.refreshCmd()())
	if len(a.state.Movements()) != 1 {
		t.Errorf("movements = %d after feed event", len(a.state.Movements()))
	}
}

func TestApp_RefreshKeepsOpenModal(t *testing.T) {
	api := &memoryAPI{}
	a := newTestApp(api, admin)
	stale := a.refreshCmd()

	a = send(t, a, key("i"))
	a = send(t, a, stale())
	if !a.state.Modal.Open() {
		t.Error("refresh result closed the modal")
	}
}

func TestApp_FeedEventWithModalOpen(t *testing.T) {
	api := &memoryAPI{}
	a := newTestApp(api, admin)

	a = send(t, a, key("i"))
	a = typeText(t, a, "Sue")
	api.movements = append(api.movements, models.Movement{ID: 3, Concept: "Renta", Amount: decimal.NewFromInt(80), Date: "2024-05-01", Kind: models.KindExpense})

	a = run(t, a, feedMsg(events.MovementEvent{Type: events.TypeCreated, ID: 3}))
	if api.lists != 1 {
		t.Errorf("lists = %d, want a refetch", api.lists)
	}
	if !a.state.Modal.Open() || a.state.Modal.Form.Concept != "Sue" || a.inputs[0].Value() != "Sue" {
		t.Errorf("modal = %+v input = %q, want the form kept", a.state.Modal, a.inputs[0].Value())
	}
	if len(a.state.Movements()) != 1 || !a.state.Summary.Balance.Equal(decimal.NewFromInt(-80)) {
		t.Errorf("movements = %d balance = %s", len(a.state.Movements()), a.state.Summary.Balance)
	}

	a = send(t, a, key("esc"))
	if !strings.Contains(a.View(), "Renta") {
		t.Errorf("view after esc missing the new movement:\n%s", a.View())
	}
}

func TestApp_CollapseMonth(t *testing.T) {
	api := &memoryAPI{movements: []models.Movement{
		{ID: 1, Concept: "Renta", Amount: decimal.NewFromInt(100), Date: "2024-05-01", Kind: models.KindExpense},
		{ID: 2, Concept: "Sueldo", Amount: decimal.NewFromInt(900), Date: "2024-04-15", Kind: models.KindIncome},
	}}
	a := newTestApp(api, admin)
	a = send(t, a, stateMsg{state: dashboard.Loaded(a.state, api.movements), refresh: true})
	if n := len(a.rows()); n != 4 {
		t.Fatalf("rows = %d, want 2 headers and 2 movements", n)
	}

	a = send(t, a, key("down"))
	a = send(t, a, key("enter"))
	if a.cursor != 0 {
		t.Errorf("cursor = %d, want the folded header", a.cursor)
	}
	if strings.Contains(a.View(), "Renta") || !strings.Contains(a.View(), "Sueldo") {
		t.Errorf("view after folding May:\n%s", a.View())
	}
	if !a.state.Summary.Balance.Equal(decimal.NewFromInt(800)) {
		t.Errorf("balance = %s, folding must not change it", a.state.Summary.Balance)
	}

	a = send(t, a, key("down"))
	a = send(t, a, key("down"))
	if m, ok := a.selected(); !ok || m.ID != 2 {
		t.Errorf("selected = %+v %v, want Sueldo", m, ok)
	}

	a = send(t, a, key("up"))
	a = send(t, a, key("up"))
	a = send(t, a, key(" "))
	if !strings.Contains(a.View(), "Renta") {
		t.Errorf("view after unfolding May:\n%s", a.View())
	}
}
