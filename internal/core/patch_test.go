package core

import "testing"

func strp(s string) *string          { return &s }
func moneyp(c int64) *Money          { return &Money{Cents: c} }
func datep(y, m, d int) *Date        { v := NewDate(y, m, d); return &v }
func typep(t RecordType) *RecordType { return &t }

func TestRevenuePatchApply(t *testing.T) {
	base := Revenue{
		ID:          "r1",
		Description: "Salary",
		Amount:      Money{Cents: 500000},
		Date:        NewDate(2025, 6, 5),
		Category:    "salario",
		Type:        Fixed,
		Notes:       "june",
	}

	t.Run("empty patch keeps everything", func(t *testing.T) {
		got := RevenuePatch{ID: "r1"}.Apply(base)
		if got != base {
			t.Fatalf("got %+v, want %+v", got, base)
		}
	})

	t.Run("set fields override, rest survive", func(t *testing.T) {
		got := RevenuePatch{
			ID:     "r1",
			Amount: moneyp(550000),
			Notes:  strp(""),
		}.Apply(base)
		if got.Amount.Cents != 550000 {
			t.Fatalf("amount = %d", got.Amount.Cents)
		}
		if got.Notes != "" {
			t.Fatalf("notes = %q, want cleared", got.Notes)
		}
		if got.Description != base.Description || got.Date != base.Date || got.Category != base.Category {
			t.Fatalf("unrelated fields changed: %+v", got)
		}
	})
}

func TestExpensePatchApply(t *testing.T) {
	pm := CreditCard
	base := Expense{
		ID:          "e1",
		Description: "Groceries",
		Amount:      Money{Cents: 15075},
		Date:        NewDate(2025, 6, 10),
		Category:    "alimentacao",
		Type:        Variable,
		IsFuture:    true,
	}

	got := ExpensePatch{
		ID:            "e1",
		Description:   strp("Market"),
		Date:          datep(2025, 6, 12),
		Type:          typep(Fixed),
		PaymentMethod: &pm,
		Local:         strp("downtown"),
	}.Apply(base)

	if got.Description != "Market" || got.Date.Key() != "2025-06-12" || got.Type != Fixed {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.PaymentMethod != CreditCard || got.Local != "downtown" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Amount != base.Amount || got.Category != base.Category {
		t.Fatalf("unset fields changed: %+v", got)
	}
	if !got.IsFuture {
		t.Fatal("IsFuture flipped by patch")
	}
}
