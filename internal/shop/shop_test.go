package shop

import "testing"

func TestStockLevelBuckets(t *testing.T) {
	cases := []struct {
		stock int
		want  StockLevel
	}{
		{0, StockOut},
		{-1, StockOut},
		{1, StockLow},
		{5, StockLow},
		{6, StockIn},
		{40, StockIn},
	}
	for _, tc := range cases {
		if got := StockLevelFor(tc.stock); got != tc.want {
			t.Fatalf("StockLevelFor(%d) = %v, want %v", tc.stock, got, tc.want)
		}
	}
}

func TestStockLevelLabels(t *testing.T) {
	if StockOut.Label() != "Out of Stock" || StockLow.Label() != "Low Stock" || StockIn.Label() != "In Stock" {
		t.Fatalf("unexpected stock labels: %q %q %q", StockOut.Label(), StockLow.Label(), StockIn.Label())
	}
}

func TestSubtotalFormatting(t *testing.T) {
	items := []CartItem{
		{TotalPrice: 12.50},
		{TotalPrice: 7.25},
	}
	if got := FormatPrice(Subtotal(items)); got != "19.75" {
		t.Fatalf("subtotal = %s, want 19.75", got)
	}
}

func TestSubtotalEmptyCart(t *testing.T) {
	if got := FormatPrice(Subtotal(nil)); got != "0.00" {
		t.Fatalf("empty cart subtotal = %s, want 0.00", got)
	}
}
