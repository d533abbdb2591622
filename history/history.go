// Package history keeps a log of submitted comparisons for the admin view.
// Nothing in the tax calculation reads from it.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/windeesel365/slab-tax/taxcal"
)

const DefaultLimit = 50

// Column scales of tax_comparisons. NewRecord rounds to them so every store
// returns the same digits.
const (
	incomeScale = 8
	amountScale = 10
)

// Record is one stored comparison.
type Record struct {
	ID          uuid.UUID       `json:"id"`
	Source      string          `json:"source"`
	GrossIncome decimal.Decimal `json:"grossIncome"`
	ScheduleA   string          `json:"scheduleA"`
	TaxA        decimal.Decimal `json:"taxA"`
	ScheduleB   string          `json:"scheduleB"`
	TaxB        decimal.Decimal `json:"taxB"`
	Difference  decimal.Decimal `json:"difference"`
	Direction   string          `json:"direction"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewRecord captures c as submitted through source ("form", "api", ...).
func NewRecord(source string, c taxcal.Comparison, now time.Time) Record {
	return Record{
		ID:          uuid.New(),
		Source:      source,
		GrossIncome: c.A.GrossIncome.Round(incomeScale),
		ScheduleA:   c.A.ScheduleID,
		TaxA:        c.A.Tax.Round(amountScale),
		ScheduleB:   c.B.ScheduleID,
		TaxB:        c.B.Tax.Round(amountScale),
		Difference:  c.Result.Difference.Round(amountScale),
		Direction:   string(c.Result.Direction),
		CreatedAt:   now.UTC(),
	}
}

type Store interface {
	Save(ctx context.Context, rec Record) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return DefaultLimit
	}
	return limit
}
