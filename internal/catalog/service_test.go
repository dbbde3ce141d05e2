package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"cortado/internal/pricing"
)

func newTestService() *Service {
	return NewService(NewInMemoryRepository())
}

func mustCreateDrink(t *testing.T, s *Service, name, category, price string) *Drink {
	t.Helper()
	d, err := s.CreateDrink(context.Background(), CreateDrinkRequest{
		Name:      name,
		Category:  category,
		BasePrice: price,
	})
	if err != nil {
		t.Fatalf("CreateDrink(%s): %v", name, err)
	}
	return d
}

func mustCreateExtra(t *testing.T, s *Service, label, delta string) *Extra {
	t.Helper()
	e, err := s.CreateExtra(context.Background(), CreateExtraRequest{
		Label:      label,
		PriceDelta: delta,
	})
	if err != nil {
		t.Fatalf("CreateExtra(%s): %v", label, err)
	}
	return e
}

func TestCreateDrinkDefaultsToAvailable(t *testing.T) {
	s := newTestService()

	d := mustCreateDrink(t, s, "Simple coffee", "BREW", "5")

	if d.ID == "" {
		t.Error("expected generated id")
	}
	if !d.Available {
		t.Error("new drinks should be available")
	}
	if !d.BasePrice.Equal(decimal.NewFromInt(5)) {
		t.Errorf("base price = %s, want 5", d.BasePrice)
	}
}

func TestCreateDrinkRejectsNegativePrice(t *testing.T) {
	s := newTestService()

	_, err := s.CreateDrink(context.Background(), CreateDrinkRequest{
		Name:      "Broken brew",
		Category:  "BREW",
		BasePrice: "-1",
	})

	if !errors.Is(err, pricing.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestCreateDrinkRejectsUnknownCategory(t *testing.T) {
	s := newTestService()

	_, err := s.CreateDrink(context.Background(), CreateDrinkRequest{
		Name:      "Mystery drink",
		Category:  "SOUP",
		BasePrice: "3",
	})

	if !errors.Is(err, pricing.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestUpdateDrinkPartial(t *testing.T) {
	s := newTestService()
	d := mustCreateDrink(t, s, "Flat white", "ESPRESSO", "4.20")

	newPrice := "4.50"
	updated, err := s.UpdateDrink(context.Background(), d.ID, UpdateDrinkRequest{
		BasePrice: &newPrice,
	})
	if err != nil {
		t.Fatalf("UpdateDrink: %v", err)
	}

	if !updated.BasePrice.Equal(decimal.RequireFromString("4.50")) {
		t.Errorf("base price = %s, want 4.50", updated.BasePrice)
	}
	if updated.Name != "Flat white" {
		t.Errorf("name should be untouched, got %q", updated.Name)
	}
}

func TestUpdateDrinkRejectsNegativePrice(t *testing.T) {
	s := newTestService()
	d := mustCreateDrink(t, s, "Flat white", "ESPRESSO", "4.20")

	bad := "-0.01"
	_, err := s.UpdateDrink(context.Background(), d.ID, UpdateDrinkRequest{
		BasePrice: &bad,
	})

	if !errors.Is(err, pricing.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestUpdateDrinkUnknownID(t *testing.T) {
	s := newTestService()

	name := "Ghost"
	_, err := s.UpdateDrink(context.Background(), "missing-id", UpdateDrinkRequest{
		Name: &name,
	})

	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMenuGroupsByCategory(t *testing.T) {
	s := newTestService()

	mustCreateDrink(t, s, "Espresso", "ESPRESSO", "3")
	mustCreateDrink(t, s, "Cappuccino", "ESPRESSO", "4")
	mustCreateDrink(t, s, "Cold brew", "COLD", "4.50")
	hidden := mustCreateDrink(t, s, "Winter chai", "TEA", "4")
	mustCreateExtra(t, s, "with milk", "1.50")

	off := false
	if _, err := s.UpdateDrink(context.Background(), hidden.ID, UpdateDrinkRequest{Available: &off}); err != nil {
		t.Fatalf("disable drink: %v", err)
	}

	menu, err := s.Menu(context.Background())
	if err != nil {
		t.Fatalf("Menu: %v", err)
	}

	if len(menu.Sections) != 2 {
		t.Fatalf("sections = %d, want 2 (empty categories skipped)", len(menu.Sections))
	}
	if menu.Sections[0].Category != CategoryEspresso {
		t.Errorf("first section = %s, want ESPRESSO", menu.Sections[0].Category)
	}
	if len(menu.Sections[0].Drinks) != 2 {
		t.Errorf("espresso drinks = %d, want 2", len(menu.Sections[0].Drinks))
	}
	if menu.Sections[1].Category != CategoryCold {
		t.Errorf("second section = %s, want COLD", menu.Sections[1].Category)
	}
	if len(menu.Extras) != 1 {
		t.Errorf("extras = %d, want 1", len(menu.Extras))
	}
}

func TestAvailableExtrasPreservesRequestOrder(t *testing.T) {
	s := newTestService()

	milk := mustCreateExtra(t, s, "with milk", "1.50")
	sugar := mustCreateExtra(t, s, "with sugar", "0.50")
	cream := mustCreateExtra(t, s, "with cream", "1.00")

	extras, err := s.AvailableExtras(context.Background(), []string{cream.ID, milk.ID, sugar.ID})
	if err != nil {
		t.Fatalf("AvailableExtras: %v", err)
	}

	want := []string{"with cream", "with milk", "with sugar"}
	for i, e := range extras {
		if e.Label != want[i] {
			t.Errorf("extras[%d] = %q, want %q", i, e.Label, want[i])
		}
	}
}

func TestAvailableExtrasRejectsDisabled(t *testing.T) {
	s := newTestService()

	oat := mustCreateExtra(t, s, "oat milk", "0.60")
	off := false
	if _, err := s.UpdateExtra(context.Background(), oat.ID, UpdateExtraRequest{Available: &off}); err != nil {
		t.Fatalf("disable extra: %v", err)
	}

	_, err := s.AvailableExtras(context.Background(), []string{oat.ID})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAvailableDrinkRejectsDisabled(t *testing.T) {
	s := newTestService()

	d := mustCreateDrink(t, s, "Seasonal roast", "BREW", "5")
	off := false
	if _, err := s.UpdateDrink(context.Background(), d.ID, UpdateDrinkRequest{Available: &off}); err != nil {
		t.Fatalf("disable drink: %v", err)
	}

	_, err := s.AvailableDrink(context.Background(), d.ID)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestExtraDeltaMayBeNegative(t *testing.T) {
	s := newTestService()

	e := mustCreateExtra(t, s, "smaller cup", "-0.40")

	if !e.PriceDelta.Equal(decimal.RequireFromString("-0.40")) {
		t.Errorf("delta = %s, want -0.40", e.PriceDelta)
	}
}
