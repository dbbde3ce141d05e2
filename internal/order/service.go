package order

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"cortado/internal/catalog"
	"cortado/internal/pricing"
	"cortado/internal/promo"
)

// CatalogSource resolves the menu rows an order line is built from.
// Service depends ONLY on this interface, not the catalog service.
type CatalogSource interface {
	AvailableDrink(ctx context.Context, id string) (*catalog.Drink, error)
	AvailableExtras(ctx context.Context, ids []string) ([]*catalog.Extra, error)
}

// PromoSource answers which promo, if any, covers a category right now.
type PromoSource interface {
	ActiveFor(ctx context.Context, category string, at time.Time) (*promo.Promo, error)
}

// ReceiptArchiver stores a rendered receipt and returns its public URL.
type ReceiptArchiver interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type Service struct {
	repo    Repository
	catalog CatalogSource
	promos  PromoSource
	archive ReceiptArchiver
}

func NewService(repo Repository, catalog CatalogSource, promos PromoSource, archive ReceiptArchiver) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		promos:  promos,
		archive: archive,
	}
}

type LineRequest struct {
	DrinkID  string   `json:"drink_id"`
	ExtraIDs []string `json:"extra_ids"`
	Quantity int      `json:"quantity"`
}

type QuoteRequest struct {
	Lines []LineRequest `json:"lines"`
}

type PlaceRequest struct {
	CustomerName string        `json:"customer_name"`
	Lines        []LineRequest `json:"lines"`
}

// QuotedLine is a priced line plus the calorie estimate, which is quoted
// but never persisted.
type QuotedLine struct {
	*Line
	Calories int `json:"calories"`
}

type QuoteResponse struct {
	Lines      []QuotedLine    `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
	PromoID    *string         `json:"promo_id,omitempty"`
	PromoTitle *string         `json:"promo_title,omitempty"`
}

// --------------------------------------------------
// QUOTE (PRICE WITHOUT PERSISTING)
// --------------------------------------------------

// Quote prices an order. Each line becomes a chain: the drink wrapped by
// its extras in request order, so the description reads back exactly the
// way the customer asked.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: order needs at least one line", pricing.ErrInvalidValue)
	}

	resp := &QuoteResponse{
		Subtotal: decimal.Zero,
		Discount: decimal.Zero,
	}
	promoByCategory := make(map[catalog.Category]*promo.Promo)

	for i, lineReq := range req.Lines {
		qty := lineReq.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, fmt.Errorf("%w: quantity %d", pricing.ErrInvalidValue, lineReq.Quantity)
		}

		drink, err := s.catalog.AvailableDrink(ctx, lineReq.DrinkID)
		if err != nil {
			return nil, err
		}

		extras, err := s.catalog.AvailableExtras(ctx, lineReq.ExtraIDs)
		if err != nil {
			return nil, err
		}

		item, err := buildChain(drink, extras)
		if err != nil {
			return nil, err
		}

		unit := item.Cost()
		qtyDec := decimal.NewFromInt(int64(qty))
		lineTotal := unit.Mul(qtyDec)

		unitCalories, err := pricing.NewCalorieCount(calorieLedger(drink, extras)).Apply(item)
		if err != nil {
			return nil, err
		}

		active, cached := promoByCategory[drink.Category]
		if !cached {
			active, err = s.promos.ActiveFor(ctx, string(drink.Category), time.Now())
			if err != nil {
				return nil, err
			}
			promoByCategory[drink.Category] = active
		}

		// Discounts settle to cents per unit before multiplying out.
		discountUnit := decimal.Zero
		if active != nil {
			discounted, err := active.Discount().Apply(item)
			if err != nil {
				return nil, err
			}
			discountUnit = unit.Sub(discounted).Round(2)

			if resp.PromoID == nil {
				promoID := active.ID
				promoTitle := active.Title
				resp.PromoID = &promoID
				resp.PromoTitle = &promoTitle
			}
		}

		line := &Line{
			DrinkID:     drink.ID,
			DrinkName:   drink.Name,
			BasePrice:   drink.BasePrice,
			Quantity:    qty,
			UnitPrice:   unit,
			LineTotal:   lineTotal,
			Description: item.Description(),
			Position:    i,
		}
		for pos, e := range extras {
			line.Extras = append(line.Extras, &LineExtra{
				ExtraID:    e.ID,
				Label:      e.Label,
				PriceDelta: e.PriceDelta,
				Position:   pos,
			})
		}

		resp.Lines = append(resp.Lines, QuotedLine{
			Line:     line,
			Calories: unitCalories * qty,
		})
		resp.Subtotal = resp.Subtotal.Add(lineTotal)
		resp.Discount = resp.Discount.Add(discountUnit.Mul(qtyDec))
	}

	resp.Total = resp.Subtotal.Sub(resp.Discount)
	return resp, nil
}

// --------------------------------------------------
// PLACE
// --------------------------------------------------

func (s *Service) Place(ctx context.Context, staffID string, req PlaceRequest) (*Order, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, fmt.Errorf("%w: customer name is required", pricing.ErrInvalidValue)
	}

	q, err := s.Quote(ctx, QuoteRequest{Lines: req.Lines})
	if err != nil {
		return nil, err
	}

	o := &Order{
		ID:           uuid.New().String(),
		CustomerName: req.CustomerName,
		Status:       StatusPlaced,
		Subtotal:     q.Subtotal,
		Discount:     q.Discount,
		Total:        q.Total,
		PromoID:      q.PromoID,
	}
	if staffID != "" {
		takenBy := staffID
		o.TakenBy = &takenBy
	}

	for _, ql := range q.Lines {
		line := ql.Line
		line.ID = uuid.New().String()
		o.Lines = append(o.Lines, line)
	}

	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}

	log.Printf("🧾 Order %s placed for %s, total %s", o.ID, o.CustomerName, o.Total.StringFixed(2))
	return o, nil
}

// --------------------------------------------------
// READ
// --------------------------------------------------

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.Find(ctx, id)
}

func (s *Service) List(ctx context.Context, status string) ([]*Order, error) {
	if status != "" && !ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", pricing.ErrInvalidValue, status)
	}
	return s.repo.List(ctx, status)
}

// --------------------------------------------------
// FULFILLMENT
// --------------------------------------------------

// Claim hands the oldest waiting order to a barista. Returns (nil, nil)
// when the queue is empty.
func (s *Service) Claim(ctx context.Context, baristaID string) (*Order, error) {
	claimed, err := s.repo.ClaimNext(ctx, baristaID)
	if err != nil || claimed == nil {
		return nil, err
	}

	log.Printf("☕ Order %s claimed, ready at %s", claimed.ID, claimed.ReadyAt.Format(time.Kitchen))
	return claimed, nil
}

// ProcessOne advances fulfillment one step: claim ONE placed order and
// promote due orders to READY. Called from the worker loop.
func (s *Service) ProcessOne(ctx context.Context) error {
	claimed, err := s.repo.ClaimNext(ctx, "")
	if err != nil {
		return err
	}
	if claimed != nil {
		log.Printf("☕ Order %s in preparation for %s", claimed.ID, claimed.CustomerName)
	}

	ready, err := s.repo.MarkReadyDue(ctx, time.Now())
	if err != nil {
		return err
	}
	if ready > 0 {
		log.Printf("✅ %d order(s) ready for pickup", ready)
	}

	return nil
}

// MarkReadyDue is exposed for the API-embedded worker goroutine.
func (s *Service) MarkReadyDue(ctx context.Context) (int, error) {
	return s.repo.MarkReadyDue(ctx, time.Now())
}

// --------------------------------------------------
// COMPLETE (RENDER + ARCHIVE RECEIPT)
// --------------------------------------------------

func (s *Service) Complete(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(o.Status, StatusCompleted) {
		return nil, transitionError(o.Status, StatusCompleted)
	}

	receipt, err := renderReceipt(o)
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		url, err := s.archive.Upload(ctx, "receipts/"+o.ID+".txt", []byte(receipt), "text/plain; charset=utf-8")
		if err != nil {
			// The pickup still happens when the archive is down.
			log.Printf("⚠️ Receipt archive failed for order %s: %v", o.ID, err)
		} else if err := s.repo.SetReceiptURL(ctx, o.ID, url); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, StatusReady, StatusCompleted); err != nil {
		return nil, err
	}

	return s.repo.Find(ctx, o.ID)
}

// --------------------------------------------------
// CANCEL
// --------------------------------------------------

func (s *Service) Cancel(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(o.Status, StatusCancelled) {
		return nil, transitionError(o.Status, StatusCancelled)
	}

	if err := s.repo.UpdateStatus(ctx, o.ID, o.Status, StatusCancelled); err != nil {
		return nil, err
	}

	return s.repo.Find(ctx, o.ID)
}

// --------------------------------------------------
// CHAIN ASSEMBLY
// --------------------------------------------------

func buildChain(drink *catalog.Drink, extras []*catalog.Extra) (pricing.Item, error) {
	base, err := pricing.NewBaseItem(drink.Name, drink.BasePrice)
	if err != nil {
		return nil, err
	}

	var item pricing.Item = base
	for _, e := range extras {
		item = pricing.Wrap(item, e.Label, e.PriceDelta)
	}
	return item, nil
}

func calorieLedger(drink *catalog.Drink, extras []*catalog.Extra) map[string]int {
	ledger := map[string]int{drink.Name: drink.Calories}
	for _, e := range extras {
		ledger[e.Label] = e.Calories
	}
	return ledger
}
