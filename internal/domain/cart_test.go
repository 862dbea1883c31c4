package domain

import "testing"

func TestNewCartView_Totals(t *testing.T) {
	view := NewCartView([]CartLine{
		{ProductID: 1, Quantity: 2, UnitPriceCents: 1500},
		{ProductID: 2, Quantity: 3, UnitPriceCents: 200},
	})
	if view.TotalQuantity != 5 {
		t.Fatalf("expected total quantity 5, got %d", view.TotalQuantity)
	}
	if view.TotalCents != 3600 {
		t.Fatalf("expected total 3600, got %d", view.TotalCents)
	}
}

func TestNewCartView_NilLines(t *testing.T) {
	view := NewCartView(nil)
	if view.Lines == nil {
		t.Fatal("expected non-nil line slice for JSON rendering")
	}
	if view.TotalCents != 0 || view.TotalQuantity != 0 {
		t.Fatalf("expected zero totals, got %+v", view)
	}
}
