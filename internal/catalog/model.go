package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category buckets drinks for the menu, promos and insights.
type Category string

const (
	CategoryEspresso Category = "ESPRESSO"
	CategoryBrew     Category = "BREW"
	CategoryTea      Category = "TEA"
	CategoryCold     Category = "COLD"
)

// Categories lists every valid category in menu display order.
var Categories = []Category{
	CategoryEspresso,
	CategoryBrew,
	CategoryTea,
	CategoryCold,
}

// Drink is a base menu item an order line starts from.
type Drink struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	BasePrice decimal.Decimal `json:"base_price"`
	Calories  int             `json:"calories"`
	Available bool            `json:"available"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Extra is a priced add-on a drink can be wrapped with. PriceDelta may be
// negative (swaps and loyalty markdowns).
type Extra struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	PriceDelta decimal.Decimal `json:"price_delta"`
	Calories   int             `json:"calories"`
	Available  bool            `json:"available"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Menu is the public menu response: available drinks grouped by category
// plus every available extra.
type Menu struct {
	Sections []MenuSection `json:"sections"`
	Extras   []*Extra      `json:"extras"`
}

type MenuSection struct {
	Category Category `json:"category"`
	Drinks   []*Drink `json:"drinks"`
}
