package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cortado/internal/pricing"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("item unavailable")
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateDrinkRequest struct {
	Name      string `json:"name"`
	Category  string `json:"category"`
	BasePrice string `json:"base_price"`
	Calories  int    `json:"calories"`
}

type UpdateDrinkRequest struct {
	Name      *string `json:"name"`
	Category  *string `json:"category"`
	BasePrice *string `json:"base_price"`
	Calories  *int    `json:"calories"`
	Available *bool   `json:"available"`
}

type CreateExtraRequest struct {
	Label      string `json:"label"`
	PriceDelta string `json:"price_delta"`
	Calories   int    `json:"calories"`
}

type UpdateExtraRequest struct {
	Label      *string `json:"label"`
	PriceDelta *string `json:"price_delta"`
	Calories   *int    `json:"calories"`
	Available  *bool   `json:"available"`
}

// --------------------------------------------------
// Menu
// --------------------------------------------------

// Menu returns available drinks grouped by category plus available extras.
func (s *Service) Menu(ctx context.Context) (*Menu, error) {
	drinks, err := s.repo.ListDrinks(ctx, true)
	if err != nil {
		return nil, err
	}

	extras, err := s.repo.ListExtras(ctx, true)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[Category][]*Drink)
	for _, d := range drinks {
		byCategory[d.Category] = append(byCategory[d.Category], d)
	}

	menu := &Menu{Extras: extras}
	for _, c := range Categories {
		if len(byCategory[c]) == 0 {
			continue
		}
		menu.Sections = append(menu.Sections, MenuSection{
			Category: c,
			Drinks:   byCategory[c],
		})
	}

	return menu, nil
}

// --------------------------------------------------
// Drinks
// --------------------------------------------------

func (s *Service) CreateDrink(ctx context.Context, req CreateDrinkRequest) (*Drink, error) {
	price, err := parseDrinkFields(req.Name, req.Category, req.BasePrice)
	if err != nil {
		return nil, err
	}

	drink := &Drink{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Category:  Category(req.Category),
		BasePrice: price,
		Calories:  req.Calories,
		Available: true,
	}

	if err := s.repo.SaveDrink(ctx, drink); err != nil {
		return nil, err
	}
	return drink, nil
}

func (s *Service) UpdateDrink(ctx context.Context, id string, req UpdateDrinkRequest) (*Drink, error) {
	drink, err := s.repo.FindDrink(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		drink.Name = *req.Name
	}
	if req.Category != nil {
		drink.Category = Category(*req.Category)
	}
	if req.BasePrice != nil {
		price, err := decimal.NewFromString(*req.BasePrice)
		if err != nil {
			return nil, fmt.Errorf("%w: base price %q is not a number", pricing.ErrInvalidValue, *req.BasePrice)
		}
		drink.BasePrice = price
	}
	if req.Calories != nil {
		drink.Calories = *req.Calories
	}
	if req.Available != nil {
		drink.Available = *req.Available
	}

	if _, err := parseDrinkFields(drink.Name, string(drink.Category), drink.BasePrice.String()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDrink(ctx, drink); err != nil {
		return nil, err
	}
	return drink, nil
}

func (s *Service) GetDrink(ctx context.Context, id string) (*Drink, error) {
	return s.repo.FindDrink(ctx, id)
}

// AvailableDrink resolves a drink an order line may start from.
func (s *Service) AvailableDrink(ctx context.Context, id string) (*Drink, error) {
	drink, err := s.repo.FindDrink(ctx, id)
	if err != nil {
		return nil, err
	}
	if !drink.Available {
		return nil, fmt.Errorf("drink %q: %w", drink.Name, ErrUnavailable)
	}
	return drink, nil
}

// --------------------------------------------------
// Extras
// --------------------------------------------------

func (s *Service) CreateExtra(ctx context.Context, req CreateExtraRequest) (*Extra, error) {
	delta, err := parseExtraFields(req.Label, req.PriceDelta)
	if err != nil {
		return nil, err
	}

	extra := &Extra{
		ID:         uuid.New().String(),
		Label:      req.Label,
		PriceDelta: delta,
		Calories:   req.Calories,
		Available:  true,
	}

	if err := s.repo.SaveExtra(ctx, extra); err != nil {
		return nil, err
	}
	return extra, nil
}

func (s *Service) UpdateExtra(ctx context.Context, id string, req UpdateExtraRequest) (*Extra, error) {
	extra, err := s.repo.FindExtra(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Label != nil {
		extra.Label = *req.Label
	}
	if req.PriceDelta != nil {
		delta, err := decimal.NewFromString(*req.PriceDelta)
		if err != nil {
			return nil, fmt.Errorf("%w: price delta %q is not a number", pricing.ErrInvalidValue, *req.PriceDelta)
		}
		extra.PriceDelta = delta
	}
	if req.Calories != nil {
		extra.Calories = *req.Calories
	}
	if req.Available != nil {
		extra.Available = *req.Available
	}

	if _, err := parseExtraFields(extra.Label, extra.PriceDelta.String()); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateExtra(ctx, extra); err != nil {
		return nil, err
	}
	return extra, nil
}

// AvailableExtras resolves extras in the order requested, so a drink
// wrapped with them reads back the same way the customer asked.
func (s *Service) AvailableExtras(ctx context.Context, ids []string) ([]*Extra, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	extras, err := s.repo.FindExtras(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, e := range extras {
		if !e.Available {
			return nil, fmt.Errorf("extra %q: %w", e.Label, ErrUnavailable)
		}
	}
	return extras, nil
}
