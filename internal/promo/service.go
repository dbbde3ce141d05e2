package promo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"cortado/internal/catalog"
	"cortado/internal/insights"
	"cortado/internal/pricing"
)

var (
	ErrPromoNotFound = errors.New("promo not found")
	ErrNoSalesData   = errors.New("no sales data")
)

// InsightsSource provides the sales numbers suggestions are computed from.
type InsightsSource interface {
	Snapshot(ctx context.Context, category string) (*insights.Snapshot, error)
	Snapshots(ctx context.Context) ([]*insights.Snapshot, error)
}

type Service struct {
	repo     Repository
	insights InsightsSource
}

func NewService(repo Repository, insightsSource InsightsSource) *Service {
	return &Service{
		repo:     repo,
		insights: insightsSource,
	}
}

type CreateRequest struct {
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	PercentOff int       `json:"percent_off"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Draft      bool      `json:"draft"`
	Suggested  bool      `json:"suggested"`
}

// --------------------------------------------------
// Create promo
// --------------------------------------------------
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Promo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: promo title is required", pricing.ErrInvalidValue)
	}
	if !catalog.ValidCategory(catalog.Category(req.Category)) {
		return nil, fmt.Errorf("%w: unknown category %q", pricing.ErrInvalidValue, req.Category)
	}
	if req.PercentOff < 1 || req.PercentOff > 90 {
		return nil, fmt.Errorf("%w: percent off must be between 1 and 90, got %d", pricing.ErrInvalidValue, req.PercentOff)
	}

	startsAt := req.StartsAt
	if startsAt.IsZero() {
		startsAt = time.Now()
	}
	endsAt := req.EndsAt
	if endsAt.IsZero() {
		endsAt = startsAt.Add(7 * 24 * time.Hour)
	}
	if !endsAt.After(startsAt) {
		return nil, fmt.Errorf("%w: promo must end after it starts", pricing.ErrInvalidValue)
	}

	status := StatusActive
	if req.Draft {
		status = StatusDraft
	}

	p := &Promo{
		ID:         uuid.New().String(),
		Title:      req.Title,
		Category:   req.Category,
		PercentOff: req.PercentOff,
		Status:     status,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
		Suggested:  req.Suggested,
	}

	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// --------------------------------------------------
// Lifecycle: DRAFT → ACTIVE → ENDED
// --------------------------------------------------
func (s *Service) Activate(ctx context.Context, id string) (*Promo, error) {
	p, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusDraft {
		return nil, fmt.Errorf("%w: promo %s is %s, only drafts can be activated", pricing.ErrInvalidValue, id, p.Status)
	}

	if err := s.repo.SetStatus(ctx, id, StatusActive); err != nil {
		return nil, err
	}
	p.Status = StatusActive
	return p, nil
}

func (s *Service) End(ctx context.Context, id string) (*Promo, error) {
	p, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status == StatusEnded {
		return p, nil
	}

	if err := s.repo.SetStatus(ctx, id, StatusEnded); err != nil {
		return nil, err
	}
	p.Status = StatusEnded
	return p, nil
}

// --------------------------------------------------
// Reads
// --------------------------------------------------
func (s *Service) ListActive(ctx context.Context) ([]*Promo, error) {
	return s.repo.ListActive(ctx, time.Now())
}

// ActiveFor satisfies the order side's promo lookup.
func (s *Service) ActiveFor(ctx context.Context, category string, at time.Time) (*Promo, error) {
	return s.repo.ActiveFor(ctx, category, at)
}

// --------------------------------------------------
// Suggestion: compare a category's units sold to the shop median
// --------------------------------------------------
func (s *Service) Suggest(ctx context.Context, category string) (*Suggestion, error) {
	if !catalog.ValidCategory(catalog.Category(category)) {
		return nil, fmt.Errorf("%w: unknown category %q", pricing.ErrInvalidValue, category)
	}

	snap, err := s.insights.Snapshot(ctx, category)
	if err != nil {
		return nil, ErrNoSalesData
	}

	all, err := s.insights.Snapshots(ctx)
	if err != nil || len(all) == 0 {
		return nil, ErrNoSalesData
	}

	median := medianUnits(all)

	action := "HAPPY_HOUR"
	percent := 10
	reason := "Steady sales, a small happy hour lifts the quiet hours"

	units := float64(snap.UnitsSold)
	if units < median*0.9 {
		action = "PERCENT_OFF"
		percent = 15
		reason = "Selling below the shop median, a discount can move it"
	} else if units > median*1.1 {
		action = "FEATURE_ITEM"
		percent = 0
		reason = "Strong seller, keep full price and feature it on the board"
	}

	return &Suggestion{
		Category:    category,
		UnitsSold:   snap.UnitsSold,
		MedianUnits: int(median),
		Action:      action,
		PercentOff:  percent,
		Reason:      reason,
	}, nil
}

func medianUnits(snapshots []*insights.Snapshot) float64 {
	units := make([]int, 0, len(snapshots))
	for _, s := range snapshots {
		units = append(units, s.UnitsSold)
	}
	sort.Ints(units)

	mid := len(units) / 2
	if len(units)%2 == 1 {
		return float64(units[mid])
	}
	return float64(units[mid-1]+units[mid]) / 2
}
