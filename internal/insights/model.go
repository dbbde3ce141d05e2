package insights

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is aggregated sales data for one drink category.
type Snapshot struct {
	Category        string          `json:"category"`
	AvgLineTotal    decimal.Decimal `json:"avg_line_total"`
	MedianLineTotal decimal.Decimal `json:"median_line_total"`
	UnitsSold       int             `json:"units_sold"`
	SampleSize      int             `json:"sample_size"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
