// Package dashboard holds the client state as immutable snapshots. Every
// transition is a pure reducer; Controller runs the network side effects a
// transition asks for and refetches the collection afterwards.
package dashboard

import (
	"strings"
	"time"

	"github.com/LovationAdmin/finanzas/ledger"
	"github.com/LovationAdmin/finanzas/models"

	"github.com/shopspring/decimal"
)

type Mode int

const (
	ModalClosed Mode = iota
	ModalCreating
	ModalEditing
)

func (m Mode) String() string {
	switch m {
	case ModalCreating:
		return "creating"
	case ModalEditing:
		return "editing"
	default:
		return "closed"
	}
}

type Field int

const (
	FieldConcept Field = iota
	FieldAmount
	FieldDate
)

// Form holds the modal inputs as typed text.
type Form struct {
	Concept string
	Amount  string
	Date    string
	Kind    models.Kind
}

// Modal is closed, creating a movement of Form.Kind, or editing movement ID.
type Modal struct {
	Mode  Mode
	ID    int64
	Form  Form
	Error string
}

func (m Modal) Open() bool { return m.Mode != ModalClosed }

type State struct {
	User    models.User
	Summary ledger.Summary
	Modal   Modal
}

// New returns the state right after login, before the first load.
func New(user models.User) State {
	return State{User: user, Summary: ledger.Summarize(nil)}
}

// Movements returns the collection ordered newest first.
func (s State) Movements() []models.Movement {
	return s.Summary.Movements
}

// Loaded replaces the collection with a freshly fetched one.
func Loaded(s State, movements []models.Movement) State {
	s.Summary = ledger.Summarize(movements)
	return s
}

// OpenCreate opens an empty form for kind with today's date.
func OpenCreate(s State, kind models.Kind, today time.Time) State {
	if !s.User.CanEdit() {
		return s
	}
	s.Modal = Modal{
		Mode: ModalCreating,
		Form: Form{Date: string(models.NewDate(today)), Kind: kind},
	}
	return s
}

// OpenEdit opens the form preloaded with m.
func OpenEdit(s State, m models.Movement) State {
	if !s.User.CanEdit() {
		return s
	}
	s.Modal = Modal{
		Mode: ModalEditing,
		ID:   m.ID,
		Form: Form{
			Concept: m.Concept,
			Amount:  m.Amount.String(),
			Date:    string(m.Date),
			Kind:    m.Kind,
		},
	}
	return s
}

// SetField updates one input of an open form.
func SetField(s State, f Field, value string) State {
	if !s.Modal.Open() {
		return s
	}
	switch f {
	case FieldConcept:
		s.Modal.Form.Concept = value
	case FieldAmount:
		s.Modal.Form.Amount = value
	case FieldDate:
		s.Modal.Form.Date = value
	}
	s.Modal.Error = ""
	return s
}

// ToggleKind swaps income and expense. Only an edit can change the kind; a
// new movement keeps the kind it was opened with.
func ToggleKind(s State) State {
	if s.Modal.Mode != ModalEditing {
		return s
	}
	if s.Modal.Form.Kind == models.KindIncome {
		s.Modal.Form.Kind = models.KindExpense
	} else {
		s.Modal.Form.Kind = models.KindIncome
	}
	return s
}

// Cancel closes the modal without touching the store.
func Cancel(s State) State {
	s.Modal = Modal{}
	return s
}

type Op int

const (
	OpNone Op = iota
	OpCreate
	OpUpdate
	OpDelete
)

// Mutation is the store call a transition asks for.
type Mutation struct {
	Op      Op
	ID      int64
	Request models.MovementRequest
}

// Submit closes the modal and returns the create or update it implies. An
// incomplete form or an amount that is not a non-negative number keeps the
// modal open with an error and yields OpNone.
func Submit(s State) (State, Mutation) {
	if !s.Modal.Open() || !s.User.CanEdit() {
		return s, Mutation{}
	}

	f := s.Modal.Form
	concept := strings.TrimSpace(f.Concept)
	date := strings.TrimSpace(f.Date)
	if concept == "" || date == "" {
		s.Modal.Error = "Completa concepto y fecha"
		return s, Mutation{}
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil || amount.IsNegative() {
		s.Modal.Error = "Monto inválido"
		return s, Mutation{}
	}

	m := Mutation{
		Op:      OpCreate,
		Request: models.NewMovementRequest(concept, amount, models.Date(date), f.Kind),
	}
	if s.Modal.Mode == ModalEditing {
		m.Op = OpUpdate
		m.ID = s.Modal.ID
	}
	return Cancel(s), m
}

// Delete asks for movement id to be removed.
func Delete(s State, id int64) (State, Mutation) {
	if !s.User.CanEdit() {
		return s, Mutation{}
	}
	return s, Mutation{Op: OpDelete, ID: id}
}
