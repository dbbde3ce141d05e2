package order

import (
	"fmt"
	"strings"

	"cortado/internal/pricing"
)

// chain rebuilds the priced item from the stored snapshot, extras in
// position order.
func (l *Line) chain() (pricing.Item, error) {
	base, err := pricing.NewBaseItem(l.DrinkName, l.BasePrice)
	if err != nil {
		return nil, err
	}

	var item pricing.Item = base
	for _, e := range l.Extras {
		item = pricing.Wrap(item, e.Label, e.PriceDelta)
	}
	return item, nil
}

// renderReceipt replays every stored line through the pricing report,
// then appends the order totals.
func renderReceipt(o *Order) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Order %s\n", o.ID)
	fmt.Fprintf(&b, "Customer: %s\n\n", o.CustomerName)

	for _, line := range o.Lines {
		item, err := line.chain()
		if err != nil {
			return "", err
		}

		body, err := pricing.Receipt{}.Apply(item)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
		b.WriteString("\n")

		if line.Quantity > 1 {
			fmt.Fprintf(&b, "%-26s %8s\n", fmt.Sprintf("x%d", line.Quantity), line.LineTotal.StringFixed(2))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%-26s %8s\n", "Subtotal", o.Subtotal.StringFixed(2))
	if o.Discount.IsPositive() {
		fmt.Fprintf(&b, "%-26s %8s\n", "Discount", "-"+o.Discount.StringFixed(2))
	}
	fmt.Fprintf(&b, "%-26s %8s\n", "Total", o.Total.StringFixed(2))

	return b.String(), nil
}
