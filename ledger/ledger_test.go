package ledger

import (
	"testing"

	"github.com/LovationAdmin/finanzas/models"

	"github.com/shopspring/decimal"
)

func mov(id int64, amount int64, date string, kind models.Kind) models.Movement {
	return models.Movement{
		ID:      id,
		Concept: "m",
		Amount:  decimal.NewFromInt(amount),
		Date:    models.Date(date),
		Kind:    kind,
	}
}

func example() []models.Movement {
	return []models.Movement{
		mov(1, 500, "2024-01-05", models.KindIncome),
		mov(2, 200, "2024-01-20", models.KindExpense),
		mov(3, 100, "2024-02-01", models.KindExpense),
	}
}

func TestSummarize_Example(t *testing.T) {
	s := Summarize(example())

	if !s.Balance.Equal(decimal.NewFromInt(200)) {
		t.Errorf("balance = %s, want 200", s.Balance)
	}
	if len(s.Groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(s.Groups))
	}

	want := []struct {
		key      string
		subtotal int64
		ids      []int64
	}{
		{"2024-02", -100, []int64{3}},
		{"2024-01", 300, []int64{2, 1}},
	}
	for i, w := range want {
		g := s.Groups[i]
		if g.Key != w.key {
			t.Errorf("group %d key = %q, want %q", i, g.Key, w.key)
		}
		if !g.Subtotal.Equal(decimal.NewFromInt(w.subtotal)) {
			t.Errorf("group %s subtotal = %s, want %d", g.Key, g.Subtotal, w.subtotal)
		}
		if len(g.Movements) != len(w.ids) {
			t.Fatalf("group %s has %d movements, want %d", g.Key, len(g.Movements), len(w.ids))
		}
		for j, id := range w.ids {
			if g.Movements[j].ID != id {
				t.Errorf("group %s movement %d = %d, want %d", g.Key, j, g.Movements[j].ID, id)
			}
		}
	}

	wantOrder := []int64{3, 2, 1}
	for i, id := range wantOrder {
		if s.Movements[i].ID != id {
			t.Errorf("sorted[%d] = %d, want %d", i, s.Movements[i].ID, id)
		}
	}
}

func TestBalance_OrderIndependent(t *testing.T) {
	ms := example()
	want := Balance(ms)

	reversed := []models.Movement{ms[2], ms[1], ms[0]}
	rotated := []models.Movement{ms[1], ms[2], ms[0]}
	for _, in := range [][]models.Movement{reversed, rotated} {
		if got := Balance(in); !got.Equal(want) {
			t.Errorf("Balance(%v) = %s, want %s", in, got, want)
		}
	}
}

func TestBalance_Empty(t *testing.T) {
	if got := Balance(nil); !got.IsZero() {
		t.Errorf("Balance(nil) = %s, want 0", got)
	}
	if s := Summarize(nil); len(s.Groups) != 0 || len(s.Movements) != 0 {
		t.Errorf("Summarize(nil) = %+v", s)
	}
}

func TestSigned_UnknownKindSubtracts(t *testing.T) {
	m := mov(1, 40, "2024-03-01", models.Kind("transferencia"))
	if got := Signed(m); !got.Equal(decimal.NewFromInt(-40)) {
		t.Errorf("Signed = %s, want -40", got)
	}
}

func TestSigned_KeepsDecimals(t *testing.T) {
	m := models.Movement{Amount: decimal.RequireFromString("10.25"), Kind: models.KindIncome}
	e := models.Movement{Amount: decimal.RequireFromString("0.10"), Kind: models.KindExpense}
	if got := Subtotal([]models.Movement{m, e}); got.String() != "10.15" {
		t.Errorf("Subtotal = %s, want 10.15", got)
	}
}

func TestGroupByMonth_IsPartition(t *testing.T) {
	ms := []models.Movement{
		mov(1, 1, "2023-12-31", models.KindIncome),
		mov(2, 2, "2024-01-01", models.KindExpense),
		mov(3, 3, "2023-12-01", models.KindExpense),
		mov(4, 4, "2024-01-15", models.KindIncome),
		mov(5, 5, "2022-06-30", models.KindIncome),
	}

	seen := make(map[int64]string)
	for _, g := range GroupByMonth(ms) {
		for _, m := range g.Movements {
			if prev, dup := seen[m.ID]; dup {
				t.Errorf("movement %d in groups %s and %s", m.ID, prev, g.Key)
			}
			seen[m.ID] = g.Key
			if MonthKey(m.Date) != g.Key {
				t.Errorf("movement %d (%s) in group %s", m.ID, m.Date, g.Key)
			}
		}
	}
	if len(seen) != len(ms) {
		t.Errorf("grouped %d movements, want %d", len(seen), len(ms))
	}
}

func TestGroupByMonth_NewestFirst(t *testing.T) {
	groups := GroupByMonth([]models.Movement{
		mov(1, 1, "2023-12-31", models.KindIncome),
		mov(2, 1, "2024-10-01", models.KindIncome),
		mov(3, 1, "2024-02-01", models.KindIncome),
	})
	want := []string{"2024-10", "2024-02", "2023-12"}
	for i, key := range want {
		if groups[i].Key != key {
			t.Errorf("groups[%d] = %s, want %s", i, groups[i].Key, key)
		}
	}
}

func TestMonthKey(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-05", "2024-01"},
		{"2024-01-05T00:00:00Z", "2024-01"},
		{"2024-1-5", "2024-1-"},
		{"2024", "2024"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := MonthKey(models.Date(tt.date)); got != tt.want {
			t.Errorf("MonthKey(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestSortByDateDesc(t *testing.T) {
	in := []models.Movement{
		mov(1, 1, "2024-01-05", models.KindIncome),
		mov(2, 1, "2024-03-01", models.KindIncome),
		mov(3, 1, "2024-01-05", models.KindIncome),
		mov(4, 1, "2023-11-30", models.KindIncome),
	}
	got := SortByDateDesc(in)

	want := []int64{2, 1, 3, 4}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("sorted[%d] = %d, want %d", i, got[i].ID, id)
		}
	}
	if in[0].ID != 1 {
		t.Error("SortByDateDesc modified its input")
	}
}

func TestSortByDateDesc_UnparseableFallsBackToText(t *testing.T) {
	got := SortByDateDesc([]models.Movement{
		mov(1, 1, "2024-1-5", models.KindIncome),
		mov(2, 1, "2024-12-01", models.KindIncome),
	})
	// "2024-12-01" > "2024-1-5" as text
	if got[0].ID != 2 {
		t.Errorf("first = %d, want 2", got[0].ID)
	}
}
