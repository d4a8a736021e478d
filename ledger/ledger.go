// Package ledger derives the views the client shows from the full movement
// collection: date ordering, month groups with subtotals and the balance.
// Everything here is pure and recomputed from scratch on every load.
package ledger

import (
	"sort"

	"github.com/LovationAdmin/finanzas/models"

	"github.com/shopspring/decimal"
)

const monthKeyLen = len("2006-01")

// MonthKey returns the group key of a movement date: its first 7 characters.
// It is a raw prefix, not a calendar computation, so dates shorter than that
// are their own key.
func MonthKey(d models.Date) string {
	s := string(d)
	if len(s) > monthKeyLen {
		return s[:monthKeyLen]
	}
	return s
}

// MonthGroup is the subset of movements sharing a month key.
type MonthGroup struct {
	Key       string
	Movements []models.Movement
	Subtotal  decimal.Decimal
}

// Summary is everything the dashboard renders.
type Summary struct {
	Movements []models.Movement
	Groups    []MonthGroup
	Balance   decimal.Decimal
}

// Signed returns the amount with the sign its kind implies. Only income adds;
// any other kind subtracts.
func Signed(m models.Movement) decimal.Decimal {
	if m.Kind == models.KindIncome {
		return m.Amount
	}
	return m.Amount.Neg()
}

// Subtotal is the signed sum of movements.
func Subtotal(movements []models.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(Signed(m))
	}
	return total
}

// Balance is the signed sum over the whole collection.
func Balance(movements []models.Movement) decimal.Decimal {
	return Subtotal(movements)
}

// SortByDateDesc returns a copy of movements ordered newest first. Dates that
// do not parse are compared as text. Equal dates keep their input order.
func SortByDateDesc(movements []models.Movement) []models.Movement {
	sorted := make([]models.Movement, len(movements))
	copy(sorted, movements)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateAfter(sorted[i].Date, sorted[j].Date)
	})
	return sorted
}

func dateAfter(a, b models.Date) bool {
	ta, errA := a.Time()
	tb, errB := b.Time()
	if errA == nil && errB == nil {
		return ta.After(tb)
	}
	return a > b
}

// GroupByMonth partitions movements by MonthKey. Groups are ordered by key,
// newest first, and keep the relative order of their members.
func GroupByMonth(movements []models.Movement) []MonthGroup {
	index := make(map[string]int)
	var groups []MonthGroup
	for _, m := range movements {
		key := MonthKey(m.Date)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, MonthGroup{Key: key, Subtotal: decimal.Zero})
		}
		groups[i].Movements = append(groups[i].Movements, m)
		groups[i].Subtotal = groups[i].Subtotal.Add(Signed(m))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key > groups[j].Key
	})
	return groups
}

// Summarize sorts, groups and totals the collection.
func Summarize(movements []models.Movement) Summary {
	sorted := SortByDateDesc(movements)
	return Summary{
		Movements: sorted,
		Groups:    GroupByMonth(sorted),
		Balance:   Balance(movements),
	}
}
