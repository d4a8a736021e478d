package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// MOVEMENT MODEL
// ============================================================================

// Kind distinguishes income from expense. Only the sign of a movement depends
// on it; amounts are always stored as positive magnitudes.
type Kind string

const (
	KindIncome  Kind = "ingreso"
	KindExpense Kind = "gasto"
)

// DateLayout is the calendar date format used on the wire and in the store.
const DateLayout = "2006-01-02"

type Movement struct {
	ID      int64           `json:"id"`
	Concept string          `json:"concepto"`
	Amount  decimal.Decimal `json:"monto"`
	Date    Date            `json:"fecha"`
	Kind    Kind            `json:"tipo"`
}

// ============================================================================
// DATE
// ============================================================================

// Date is a calendar date kept in its textual YYYY-MM-DD form. The store may
// hand it back as a time.Time (Postgres DATE) or as text (SQLite).
type Date string

// NewDate formats t as a Date.
func NewDate(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = NewDate(v)
	case string:
		*d = Date(v)
	case []byte:
		*d = Date(string(v))
	case nil:
		*d = ""
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	return nil
}

// Time parses the date. It fails for values the store accepted without
// validation.
func (d Date) Time() (time.Time, error) {
	s := string(d)
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}

func (d Date) String() string { return string(d) }

// ============================================================================
// REQUESTS
// ============================================================================

// MovementRequest is the body of create and update calls. Absent fields stay
// nil and reach the store as NULL, where the NOT NULL constraints reject them.
type MovementRequest struct {
	Concept *string             `json:"concepto"`
	Amount  decimal.NullDecimal `json:"monto"`
	Date    *string             `json:"fecha"`
	Kind    *string             `json:"tipo"`
}

// NewMovementRequest builds a request with every field set.
func NewMovementRequest(concept string, amount decimal.Decimal, date Date, kind Kind) MovementRequest {
	d := string(date)
	k := string(kind)
	return MovementRequest{
		Concept: &concept,
		Amount:  decimal.NewNullDecimal(amount),
		Date:    &d,
		Kind:    &k,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}
