package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// UnsupportedVariantError reports an operation applied to an Item variant
// it has no rule for. Operations fail loudly instead of falling back to a
// default.
type UnsupportedVariantError struct {
	Op   string
	Kind Kind
}

func (e *UnsupportedVariantError) Error() string {
	return fmt.Sprintf("%s: no rule for item variant %s", e.Op, e.Kind)
}

// Operation computes a result from any Item variant without the item
// knowing the operation exists. New operations can be added freely; a new
// Item variant means every operation must either learn a rule for it or
// fail with UnsupportedVariantError.
type Operation[R any] interface {
	Apply(item Item) (R, error)
}

var (
	_ Operation[decimal.Decimal] = (*Discount)(nil)
	_ Operation[string]          = Receipt{}
	_ Operation[int]             = (*CalorieCount)(nil)
)

// --------------------------------------------------
// Discount
// --------------------------------------------------

// Discount multiplies a chain's cost by a retention factor chosen by the
// item's concrete variant. The factor lookup is keyed by variant, never by
// matching on names.
type Discount struct {
	factors map[Kind]decimal.Decimal
}

// NewDiscount builds a discount from retention factors keyed by variant.
// A factor of 0.9 keeps 90% of the cost.
func NewDiscount(factors map[Kind]decimal.Decimal) *Discount {
	cp := make(map[Kind]decimal.Decimal, len(factors))
	for k, f := range factors {
		cp[k] = f
	}
	return &Discount{factors: cp}
}

// NewUniformDiscount applies the same retention factor to every variant,
// so it holds for any well-formed chain.
func NewUniformDiscount(factor decimal.Decimal) *Discount {
	return NewDiscount(map[Kind]decimal.Decimal{
		KindBase:     factor,
		KindModifier: factor,
	})
}

func (d *Discount) Apply(item Item) (decimal.Decimal, error) {
	factor, ok := d.factors[item.Kind()]
	if !ok {
		return decimal.Zero, &UnsupportedVariantError{Op: "discount", Kind: item.Kind()}
	}
	return item.Cost().Mul(factor), nil
}

// --------------------------------------------------
// Receipt
// --------------------------------------------------

// Receipt renders an itemized report of a chain: the base line, one line
// per modifier in application order, and the chain total.
type Receipt struct{}

func (r Receipt) Apply(item Item) (string, error) {
	lines, err := r.lines(item)
	if err != nil {
		return "", err
	}
	lines = append(lines, fmt.Sprintf("%-26s %8s", "total", item.Cost().StringFixed(2)))
	return strings.Join(lines, "\n"), nil
}

func (r Receipt) lines(item Item) ([]string, error) {
	switch it := item.(type) {
	case *BaseItem:
		return []string{fmt.Sprintf("%-26s %8s", it.Name(), it.Cost().StringFixed(2))}, nil
	case *Modifier:
		inner, err := r.lines(it.Inner())
		if err != nil {
			return nil, err
		}
		delta := it.Delta().StringFixed(2)
		if !it.Delta().IsNegative() {
			delta = "+" + delta
		}
		return append(inner, fmt.Sprintf("  %-24s %8s", it.Label(), delta)), nil
	default:
		return nil, &UnsupportedVariantError{Op: "receipt", Kind: item.Kind()}
	}
}

// --------------------------------------------------
// Calorie count
// --------------------------------------------------

// CalorieCount sums the calories of every component in a chain. The ledger
// maps component names (base name or modifier label) to calories; names
// missing from the ledger count as zero.
type CalorieCount struct {
	ledger map[string]int
}

func NewCalorieCount(ledger map[string]int) *CalorieCount {
	cp := make(map[string]int, len(ledger))
	for name, kcal := range ledger {
		cp[name] = kcal
	}
	return &CalorieCount{ledger: cp}
}

func (c *CalorieCount) Apply(item Item) (int, error) {
	switch it := item.(type) {
	case *BaseItem:
		return c.ledger[it.Name()], nil
	case *Modifier:
		total, err := c.Apply(it.Inner())
		if err != nil {
			return 0, err
		}
		return total + c.ledger[it.Label()], nil
	default:
		return 0, &UnsupportedVariantError{Op: "calorie count", Kind: item.Kind()}
	}
}
