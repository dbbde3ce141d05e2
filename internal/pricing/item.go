// Package pricing models a composed drink as an immutable chain: one base
// item wrapped by zero or more modifiers. Chains are priced and described
// by walking the chain, and inspected by operations (discount, receipt,
// calorie count) that the item types know nothing about.
package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidValue reports a base item constructed with an impossible value.
var ErrInvalidValue = errors.New("invalid value")

// Kind identifies the concrete variant of an Item.
type Kind string

const (
	KindBase     Kind = "BASE"
	KindModifier Kind = "MODIFIER"
)

// Item is a composable priced value: a base item, or a modifier wrapping
// exactly one inner Item. The variant set is closed; operations match over
// it by concrete type and must reject variants they have no rule for.
type Item interface {
	// Cost returns the total price of the chain rooted at this item.
	Cost() decimal.Decimal

	// Description returns the base item's name followed by every modifier
	// label in application order, outermost last.
	Description() string

	// Kind reports the concrete variant.
	Kind() Kind

	isItem()
}

// BaseItem is the leaf at the root of every chain.
type BaseItem struct {
	name  string
	price decimal.Decimal
}

// NewBaseItem builds the root of a chain. A negative price is rejected
// with ErrInvalidValue; zero is allowed.
func NewBaseItem(name string, price decimal.Decimal) (*BaseItem, error) {
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: base price %s is negative", ErrInvalidValue, price)
	}
	return &BaseItem{name: name, price: price}, nil
}

func (b *BaseItem) Cost() decimal.Decimal { return b.price }

func (b *BaseItem) Description() string { return b.name }

func (b *BaseItem) Kind() Kind { return KindBase }

func (b *BaseItem) isItem() {}

// Name returns the item's name without any modifier labels.
func (b *BaseItem) Name() string { return b.name }

// Modifier wraps exactly one inner Item with a label and a price delta.
// A modifier owns its inner item: wrapping builds a new value and never
// mutates the wrapped one, so application order stays observable in both
// Cost and Description.
type Modifier struct {
	label string
	delta decimal.Decimal
	inner Item
}

// Wrap layers a modifier over an already-built item. The delta may be
// negative. Chains can only be built root-first from a finished inner
// item, which is what rules out cycles; inner must be non-nil.
func Wrap(inner Item, label string, delta decimal.Decimal) *Modifier {
	return &Modifier{label: label, delta: delta, inner: inner}
}

func (m *Modifier) Cost() decimal.Decimal { return m.inner.Cost().Add(m.delta) }

func (m *Modifier) Description() string { return m.inner.Description() + ", " + m.label }

func (m *Modifier) Kind() Kind { return KindModifier }

func (m *Modifier) isItem() {}

// Label returns the modifier's description fragment.
func (m *Modifier) Label() string { return m.label }

// Delta returns the modifier's own price contribution.
func (m *Modifier) Delta() decimal.Decimal { return m.delta }

// Inner returns the wrapped item.
func (m *Modifier) Inner() Item { return m.inner }
