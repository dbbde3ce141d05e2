package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
)

type seedFile struct {
	Drinks []seedDrink `json:"drinks"`
	Extras []seedExtra `json:"extras"`
}

type seedDrink struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	BasePrice string `json:"base_price"`
	Calories  int    `json:"calories"`
}

type seedExtra struct {
	Label      string `json:"label"`
	PriceDelta string `json:"price_delta"`
	Calories   int    `json:"calories"`
}

// Seed imports a JSON menu file into an empty catalog. A non-empty catalog
// is left untouched so restarts do not duplicate the menu.
func (s *Service) Seed(ctx context.Context, path string) error {
	if err := ValidateSeedPath(path); err != nil {
		return err
	}

	count, err := s.repo.CountDrinks(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Catalog already has %d drinks, skipping seed", count)
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read menu seed: %w", err)
	}

	var file seedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return errors.New("invalid menu seed JSON")
	}
	if len(file.Drinks) == 0 {
		return errors.New("menu seed has no drinks")
	}

	for _, d := range file.Drinks {
		if _, err := s.CreateDrink(ctx, CreateDrinkRequest{
			Name:      d.Name,
			Category:  d.Category,
			BasePrice: d.BasePrice,
			Calories:  d.Calories,
		}); err != nil {
			return fmt.Errorf("seed drink %q: %w", d.Name, err)
		}
	}

	for _, e := range file.Extras {
		if _, err := s.CreateExtra(ctx, CreateExtraRequest{
			Label:      e.Label,
			PriceDelta: e.PriceDelta,
			Calories:   e.Calories,
		}); err != nil {
			return fmt.Errorf("seed extra %q: %w", e.Label, err)
		}
	}

	log.Printf("✅ Seeded catalog with %d drinks and %d extras", len(file.Drinks), len(file.Extras))
	return nil
}
