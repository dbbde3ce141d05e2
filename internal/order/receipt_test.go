package order

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRenderReceipt(t *testing.T) {
	o := &Order{
		ID:           "ord-1",
		CustomerName: "Ada",
		Subtotal:     dec("14.00"),
		Discount:     dec("1.10"),
		Total:        dec("12.90"),
		Lines: []*Line{
			{
				DrinkName: "Latte",
				BasePrice: dec("5.00"),
				Quantity:  2,
				UnitPrice: dec("5.50"),
				LineTotal: dec("11.00"),
				Extras: []*LineExtra{
					{Label: "Oat Milk", PriceDelta: dec("0.50"), Position: 0},
				},
			},
			{
				DrinkName: "House Blend",
				BasePrice: dec("3.00"),
				Quantity:  1,
				UnitPrice: dec("3.00"),
				LineTotal: dec("3.00"),
			},
		},
	}

	got, err := renderReceipt(o)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `Order ord-1
Customer: Ada

Latte                          5.00
  Oat Milk                    +0.50
total                          5.50
x2                            11.00

House Blend                    3.00
total                          3.00

Subtotal                      14.00
Discount                      -1.10
Total                         12.90
`
	if got != want {
		t.Errorf("receipt mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderReceiptSkipsZeroDiscount(t *testing.T) {
	o := &Order{
		ID:           "ord-2",
		CustomerName: "Grace",
		Subtotal:     dec("3.00"),
		Discount:     decimal.Zero,
		Total:        dec("3.00"),
		Lines: []*Line{
			{DrinkName: "House Blend", BasePrice: dec("3.00"), Quantity: 1, UnitPrice: dec("3.00"), LineTotal: dec("3.00")},
		},
	}

	got, err := renderReceipt(o)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if strings.Contains(got, "Discount") {
		t.Error("full-price receipt should not carry a discount line")
	}
	if strings.Contains(got, "x1") {
		t.Error("single-quantity lines should not repeat the multiplier")
	}
}

func TestRenderReceiptRejectsNegativeSnapshot(t *testing.T) {
	o := &Order{
		ID:           "ord-3",
		CustomerName: "Ada",
		Lines: []*Line{
			{DrinkName: "Latte", BasePrice: dec("-1.00"), Quantity: 1},
		},
	}

	if _, err := renderReceipt(o); err == nil {
		t.Fatal("expected an error for a corrupted price snapshot")
	}
}
