package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"cortado/internal/pricing"
)

func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// parseDrinkFields validates drink input and returns the parsed base price.
// The negative-price rule lives in pricing, so building a throwaway base
// item is the check.
func parseDrinkFields(name, category, basePrice string) (decimal.Decimal, error) {
	if strings.TrimSpace(name) == "" {
		return decimal.Zero, fmt.Errorf("%w: drink name is required", pricing.ErrInvalidValue)
	}
	if !ValidCategory(Category(category)) {
		return decimal.Zero, fmt.Errorf("%w: unknown category %q", pricing.ErrInvalidValue, category)
	}

	price, err := decimal.NewFromString(basePrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: base price %q is not a number", pricing.ErrInvalidValue, basePrice)
	}
	if _, err := pricing.NewBaseItem(name, price); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

// parseExtraFields validates extra input and returns the parsed delta.
// Negative deltas are fine here, that is how swaps get cheaper.
func parseExtraFields(label, priceDelta string) (decimal.Decimal, error) {
	if strings.TrimSpace(label) == "" {
		return decimal.Zero, fmt.Errorf("%w: extra label is required", pricing.ErrInvalidValue)
	}

	delta, err := decimal.NewFromString(priceDelta)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price delta %q is not a number", pricing.ErrInvalidValue, priceDelta)
	}
	return delta, nil
}

// ValidateSeedPath accepts only .json menu seed files.
func ValidateSeedPath(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" {
		return errors.New("menu seed must be a .json file")
	}
	return nil
}
