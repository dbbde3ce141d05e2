package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cortado/internal/catalog"
	"cortado/internal/pricing"
	"cortado/internal/promo"
)

// --------------------------------------------------
// Test helpers
// --------------------------------------------------

type fakePromos struct {
	byCategory map[string]*promo.Promo
}

func (f *fakePromos) ActiveFor(ctx context.Context, category string, at time.Time) (*promo.Promo, error) {
	return f.byCategory[category], nil
}

type fakeArchive struct {
	key         string
	body        []byte
	contentType string
	fail        bool
}

func (f *fakeArchive) Upload(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	if f.fail {
		return "", errors.New("bucket unreachable")
	}
	f.key = key
	f.body = body
	f.contentType = contentType
	return "https://receipts.test/" + key, nil
}

type testEnv struct {
	service *Service
	repo    *InMemoryRepository
	cat     *catalog.Service
	archive *fakeArchive

	latteID string // ESPRESSO, 5.00, 120 kcal
	brewID  string // BREW, 3.00, 5 kcal
	oatID   string // +0.50, 60 kcal
	shotID  string // +1.00, 10 kcal
}

func newTestEnv(t *testing.T, promos map[string]*promo.Promo) *testEnv {
	t.Helper()

	cat := catalog.NewService(catalog.NewInMemoryRepository())

	drink := func(name, category, price string, calories int) string {
		d, err := cat.CreateDrink(context.Background(), catalog.CreateDrinkRequest{
			Name:      name,
			Category:  category,
			BasePrice: price,
			Calories:  calories,
		})
		if err != nil {
			t.Fatalf("create drink %s: %v", name, err)
		}
		return d.ID
	}
	extra := func(label, delta string, calories int) string {
		e, err := cat.CreateExtra(context.Background(), catalog.CreateExtraRequest{
			Label:      label,
			PriceDelta: delta,
			Calories:   calories,
		})
		if err != nil {
			t.Fatalf("create extra %s: %v", label, err)
		}
		return e.ID
	}

	env := &testEnv{
		repo:    NewInMemoryRepository(),
		cat:     cat,
		archive: &fakeArchive{},
		latteID: drink("Latte", "ESPRESSO", "5.00", 120),
		brewID:  drink("House Blend", "BREW", "3.00", 5),
		oatID:   extra("Oat Milk", "0.50", 60),
		shotID:  extra("Extra Shot", "1.00", 10),
	}
	env.service = NewService(env.repo, cat, &fakePromos{byCategory: promos}, env.archive)
	return env
}

func (env *testEnv) place(t *testing.T, customer string, lines ...LineRequest) *Order {
	t.Helper()
	o, err := env.service.Place(context.Background(), "", PlaceRequest{
		CustomerName: customer,
		Lines:        lines,
	})
	if err != nil {
		t.Fatalf("place order for %s: %v", customer, err)
	}
	return o
}

// readyOrder drives a fresh order all the way to READY.
func (env *testEnv) readyOrder(t *testing.T, customer string) *Order {
	t.Helper()
	o := env.place(t, customer, LineRequest{DrinkID: env.latteID, ExtraIDs: []string{env.oatID}})
	if _, err := env.service.Claim(context.Background(), "barista-1"); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if _, err := env.repo.MarkReadyDue(context.Background(), time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("mark ready: %v", err)
	}
	return o
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func activePromo(category string, percentOff int) *promo.Promo {
	return &promo.Promo{
		ID:         "promo-" + strings.ToLower(category),
		Title:      fmt.Sprintf("%d%% off %s", percentOff, category),
		Category:   category,
		PercentOff: percentOff,
		Status:     promo.StatusActive,
		StartsAt:   time.Now().Add(-time.Hour),
		EndsAt:     time.Now().Add(time.Hour),
	}
}

// --------------------------------------------------
// Quote
// --------------------------------------------------

func TestQuotePricesTheWholeChain(t *testing.T) {
	env := newTestEnv(t, nil)

	q, err := env.service.Quote(context.Background(), QuoteRequest{
		Lines: []LineRequest{{DrinkID: env.latteID, ExtraIDs: []string{env.oatID, env.shotID}, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	if len(q.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(q.Lines))
	}
	line := q.Lines[0]
	// 5.00 + 0.50 + 1.00
	if !line.UnitPrice.Equal(dec("6.50")) {
		t.Errorf("unit price = %s, want 6.50", line.UnitPrice)
	}
	if line.Description != "Latte, Oat Milk, Extra Shot" {
		t.Errorf("description = %q", line.Description)
	}
	if line.Calories != 190 {
		t.Errorf("calories = %d, want 190", line.Calories)
	}
	if !q.Subtotal.Equal(dec("6.50")) || !q.Discount.IsZero() || !q.Total.Equal(dec("6.50")) {
		t.Errorf("subtotal/discount/total = %s/%s/%s", q.Subtotal, q.Discount, q.Total)
	}
	if q.PromoID != nil {
		t.Error("expected no promo on a full-price quote")
	}
}

func TestQuoteMultipliesByQuantity(t *testing.T) {
	env := newTestEnv(t, nil)

	q, err := env.service.Quote(context.Background(), QuoteRequest{
		Lines: []LineRequest{{DrinkID: env.latteID, Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	if !q.Lines[0].LineTotal.Equal(dec("15.00")) {
		t.Errorf("line total = %s, want 15.00", q.Lines[0].LineTotal)
	}
	if q.Lines[0].Calories != 360 {
		t.Errorf("calories = %d, want 360", q.Lines[0].Calories)
	}
}

func TestQuoteDefaultsQuantityToOne(t *testing.T) {
	env := newTestEnv(t, nil)

	q, err := env.service.Quote(context.Background(), QuoteRequest{
		Lines: []LineRequest{{DrinkID: env.brewID}},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	if q.Lines[0].Quantity != 1 {
		t.Errorf("quantity = %d, want 1", q.Lines[0].Quantity)
	}
}

func TestQuoteRejectsNegativeQuantity(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.service.Quote(context.Background(), QuoteRequest{
		Lines: []LineRequest{{DrinkID: env.brewID, Quantity: -2}},
	})
	if !errors.Is(err, pricing.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestQuoteRejectsEmptyOrder(t *testing.T) {
	env := newTestEnv(t, nil)

	if _, err := env.service.Quote(context.Background(), QuoteRequest{}); !errors.Is(err, pricing.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestQuoteUnknownDrink(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.service.Quote(context.Background(), QuoteRequest{
		Lines: []LineRequest{{DrinkID: "no-such-drink"}},
	})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected catalog.ErrNotFound, got %v", err)
	}
}

func TestQuoteRejectsDisabledExtra(t *testing.T) {
	env := newTestEnv(t, nil)

	disabled := false
	if _, err := env.cat.UpdateExtra(context.Background(), env.oatID, catalog.UpdateExtraRequest{Available: &disabled}); err != nil {
		t.Fatalf("disable extra: %v", err)
	}

	_, err := env.service.Quote(context.Background(), QuoteRequest{
		Lines: []LineRequest{{DrinkID: env.latteID, ExtraIDs: []string{env.oatID}}},
	})
	if !errors.Is(err, catalog.ErrUnavailable) {
		t.Fatalf("expected catalog.ErrUnavailable, got %v", err)
	}
}

func TestQuoteAppliesPromoToItsCategoryOnly(t *testing.T) {
	env := newTestEnv(t, map[string]*promo.Promo{
		"ESPRESSO": activePromo("ESPRESSO", 10),
	})

	q, err := env.service.Quote(context.Background(), QuoteRequest{
		Lines: []LineRequest{
			{DrinkID: env.latteID, ExtraIDs: []string{env.oatID}, Quantity: 2},
			{DrinkID: env.brewID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	// Latte line: unit 5.50, 10% off the whole chain is 0.55 per unit.
	// The brew line runs at full price.
	if !q.Subtotal.Equal(dec("14.00")) {
		t.Errorf("subtotal = %s, want 14.00", q.Subtotal)
	}
	if !q.Discount.Equal(dec("1.10")) {
		t.Errorf("discount = %s, want 1.10", q.Discount)
	}
	if !q.Total.Equal(dec("12.90")) {
		t.Errorf("total = %s, want 12.90", q.Total)
	}
	if q.PromoID == nil || *q.PromoID != "promo-espresso" {
		t.Errorf("promo id = %v, want promo-espresso", q.PromoID)
	}
	if q.PromoTitle == nil || *q.PromoTitle != "10% off ESPRESSO" {
		t.Errorf("promo title = %v", q.PromoTitle)
	}
}

func TestQuoteDiscountSettlesToCents(t *testing.T) {
	env := newTestEnv(t, map[string]*promo.Promo{
		"BREW": activePromo("BREW", 15),
	})

	drip, err := env.cat.CreateDrink(context.Background(), catalog.CreateDrinkRequest{
		Name:      "Drip",
		Category:  "BREW",
		BasePrice: "3.33",
	})
	if err != nil {
		t.Fatalf("create drink: %v", err)
	}

	q, err := env.service.Quote(context.Background(), QuoteRequest{
		Lines: []LineRequest{{DrinkID: drip.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("quote: %v", err)
	}

	// 15% of 3.33 is 0.4995, which settles to 0.50 on the quote.
	if !q.Discount.Equal(dec("0.50")) {
		t.Errorf("discount = %s, want 0.50", q.Discount)
	}
	if !q.Total.Equal(dec("2.83")) {
		t.Errorf("total = %s, want 2.83", q.Total)
	}
}

// --------------------------------------------------
// Place
// --------------------------------------------------

func TestPlacePersistsLinesInWrapOrder(t *testing.T) {
	env := newTestEnv(t, nil)

	placed, err := env.service.Place(context.Background(), "staff-1", PlaceRequest{
		CustomerName: "Ada",
		Lines: []LineRequest{
			{DrinkID: env.latteID, ExtraIDs: []string{env.shotID, env.oatID}},
			{DrinkID: env.brewID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	if placed.Status != StatusPlaced {
		t.Errorf("status = %s, want PLACED", placed.Status)
	}
	if placed.TakenBy == nil || *placed.TakenBy != "staff-1" {
		t.Errorf("taken by = %v, want staff-1", placed.TakenBy)
	}

	stored, err := env.repo.Find(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(stored.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(stored.Lines))
	}

	first := stored.Lines[0]
	if first.Description != "Latte, Extra Shot, Oat Milk" {
		t.Errorf("description = %q, wrap order lost", first.Description)
	}
	if len(first.Extras) != 2 || first.Extras[0].Label != "Extra Shot" || first.Extras[1].Label != "Oat Milk" {
		t.Errorf("extras out of order: %+v", first.Extras)
	}
	if first.Extras[0].Position != 0 || first.Extras[1].Position != 1 {
		t.Errorf("extra positions = %d, %d", first.Extras[0].Position, first.Extras[1].Position)
	}
	if first.ID == "" || stored.Lines[1].ID == "" {
		t.Error("expected generated line IDs")
	}

	// 6.50 + 2 * 3.00
	if !stored.Total.Equal(dec("12.50")) {
		t.Errorf("total = %s, want 12.50", stored.Total)
	}
}

func TestPlaceRequiresCustomerName(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.service.Place(context.Background(), "", PlaceRequest{
		CustomerName: "   ",
		Lines:        []LineRequest{{DrinkID: env.brewID}},
	})
	if !errors.Is(err, pricing.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

// --------------------------------------------------
// Claim
// --------------------------------------------------

func TestClaimTakesOldestOrderFirst(t *testing.T) {
	env := newTestEnv(t, nil)

	first := env.place(t, "Ada", LineRequest{DrinkID: env.brewID})
	second := env.place(t, "Grace", LineRequest{DrinkID: env.brewID})

	claimed, err := env.service.Claim(context.Background(), "barista-7")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	if claimed.ID != first.ID {
		t.Errorf("claimed %s, want the older order %s", claimed.ID, first.ID)
	}
	if claimed.Status != StatusInPreparation {
		t.Errorf("status = %s, want IN_PREPARATION", claimed.Status)
	}
	if claimed.ClaimedBy == nil || *claimed.ClaimedBy != "barista-7" {
		t.Errorf("claimed by = %v, want barista-7", claimed.ClaimedBy)
	}
	if claimed.ReadyAt == nil {
		t.Fatal("expected a ready estimate")
	}

	claimed, err = env.service.Claim(context.Background(), "barista-7")
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if claimed.ID != second.ID {
		t.Errorf("claimed %s, want %s", claimed.ID, second.ID)
	}

	claimed, err = env.service.Claim(context.Background(), "barista-7")
	if err != nil {
		t.Fatalf("empty claim: %v", err)
	}
	if claimed != nil {
		t.Errorf("expected empty queue, got %s", claimed.ID)
	}
}

func TestClaimEstimatesPrepTimePerDrink(t *testing.T) {
	env := newTestEnv(t, nil)

	env.place(t, "Ada",
		LineRequest{DrinkID: env.latteID, Quantity: 2},
		LineRequest{DrinkID: env.brewID, Quantity: 1},
	)

	before := time.Now()
	claimed, err := env.service.Claim(context.Background(), "barista-1")
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	after := time.Now()

	// Three drinks at 45s each
	want := 135 * time.Second
	if claimed.ReadyAt.Before(before.Add(want)) || claimed.ReadyAt.After(after.Add(want)) {
		t.Errorf("ready at %s, want about %s from claim", claimed.ReadyAt, want)
	}
}

// --------------------------------------------------
// Worker step
// --------------------------------------------------

func TestProcessOneClaimsForTheSystem(t *testing.T) {
	env := newTestEnv(t, nil)

	placed := env.place(t, "Ada", LineRequest{DrinkID: env.brewID})

	if err := env.service.ProcessOne(context.Background()); err != nil {
		t.Fatalf("process one: %v", err)
	}

	o, err := env.repo.Find(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if o.Status != StatusInPreparation {
		t.Errorf("status = %s, want IN_PREPARATION", o.Status)
	}
	if o.ClaimedBy != nil {
		t.Errorf("claimed by = %v, system claims record nobody", o.ClaimedBy)
	}

	// An empty queue is not an error.
	if err := env.service.ProcessOne(context.Background()); err != nil {
		t.Fatalf("process one on empty queue: %v", err)
	}
}

func TestMarkReadyDuePromotesOnlyDueOrders(t *testing.T) {
	env := newTestEnv(t, nil)

	placed := env.place(t, "Ada", LineRequest{DrinkID: env.brewID})
	if _, err := env.service.Claim(context.Background(), "barista-1"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	// The estimate is still in the future, so nothing is due yet.
	promoted, err := env.repo.MarkReadyDue(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("mark ready: %v", err)
	}
	if promoted != 0 {
		t.Errorf("promoted = %d, want 0", promoted)
	}

	promoted, err = env.repo.MarkReadyDue(context.Background(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("mark ready: %v", err)
	}
	if promoted != 1 {
		t.Errorf("promoted = %d, want 1", promoted)
	}

	o, _ := env.repo.Find(context.Background(), placed.ID)
	if o.Status != StatusReady {
		t.Errorf("status = %s, want READY", o.Status)
	}
}

// --------------------------------------------------
// Complete
// --------------------------------------------------

func TestCompleteArchivesTheReceipt(t *testing.T) {
	env := newTestEnv(t, nil)

	o := env.readyOrder(t, "Ada")

	done, err := env.service.Complete(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}

	if done.Status != StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", done.Status)
	}
	wantKey := "receipts/" + o.ID + ".txt"
	if env.archive.key != wantKey {
		t.Errorf("archive key = %q, want %q", env.archive.key, wantKey)
	}
	if env.archive.contentType != "text/plain; charset=utf-8" {
		t.Errorf("content type = %q", env.archive.contentType)
	}
	if done.ReceiptURL == nil || *done.ReceiptURL != "https://receipts.test/"+wantKey {
		t.Errorf("receipt url = %v", done.ReceiptURL)
	}

	receipt := string(env.archive.body)
	for _, want := range []string{"Customer: Ada", "Latte", "Oat Milk", "total"} {
		if !strings.Contains(receipt, want) {
			t.Errorf("receipt missing %q:\n%s", want, receipt)
		}
	}
}

func TestCompleteSurvivesArchiveOutage(t *testing.T) {
	env := newTestEnv(t, nil)
	env.archive.fail = true

	o := env.readyOrder(t, "Ada")

	done, err := env.service.Complete(context.Background(), o.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", done.Status)
	}
	if done.ReceiptURL != nil {
		t.Errorf("receipt url = %v, want none when the archive is down", done.ReceiptURL)
	}
}

func TestCompleteRequiresReadyOrder(t *testing.T) {
	env := newTestEnv(t, nil)

	placed := env.place(t, "Ada", LineRequest{DrinkID: env.brewID})

	if _, err := env.service.Complete(context.Background(), placed.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

// --------------------------------------------------
// Cancel
// --------------------------------------------------

func TestCancelPlacedOrder(t *testing.T) {
	env := newTestEnv(t, nil)

	placed := env.place(t, "Ada", LineRequest{DrinkID: env.brewID})

	cancelled, err := env.service.Cancel(context.Background(), placed.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("status = %s, want CANCELLED", cancelled.Status)
	}
}

func TestCancelRejectsOrdersInPreparation(t *testing.T) {
	env := newTestEnv(t, nil)

	placed := env.place(t, "Ada", LineRequest{DrinkID: env.brewID})
	if _, err := env.service.Claim(context.Background(), "barista-1"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	if _, err := env.service.Cancel(context.Background(), placed.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

// --------------------------------------------------
// List
// --------------------------------------------------

func TestListFiltersByStatus(t *testing.T) {
	env := newTestEnv(t, nil)

	env.place(t, "Ada", LineRequest{DrinkID: env.brewID})
	second := env.place(t, "Grace", LineRequest{DrinkID: env.latteID})

	all, err := env.service.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("orders = %d, want 2", len(all))
	}
	if all[0].ID != second.ID {
		t.Error("expected newest order first")
	}

	if _, err := env.service.Claim(context.Background(), "barista-1"); err != nil {
		t.Fatalf("claim: %v", err)
	}

	waiting, err := env.service.List(context.Background(), StatusPlaced)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(waiting) != 1 {
		t.Errorf("waiting = %d, want 1", len(waiting))
	}

	if _, err := env.service.List(context.Background(), "BOGUS"); !errors.Is(err, pricing.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}
