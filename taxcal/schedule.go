package taxcal

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptySchedule     = errors.New("schedule has no brackets")
	ErrBracketOrder      = errors.New("bracket bounds must be strictly ascending")
	ErrOpenBracket       = errors.New("only the last bracket may be open-ended")
	ErrMissingOpen       = errors.New("last bracket must be open-ended")
	ErrRateRange         = errors.New("marginal rate must be between 0 and 1")
	ErrDiscontinuous     = errors.New("bracket base tax does not match tax accrued below it")
	ErrNegativeDeduction = errors.New("standard deduction must not be negative")
)

// Bracket is one slab of a schedule. BaseTax is the cumulative tax owed at the
// lower bound of the slab, Rate applies to the portion above that bound.
type Bracket struct {
	UpTo    decimal.Decimal `json:"upTo"`
	Open    bool            `json:"open,omitempty"`
	BaseTax decimal.Decimal `json:"baseTax"`
	Rate    decimal.Decimal `json:"rate"`
}

// SlabSchedule is the slab table of one fiscal year.
type SlabSchedule struct {
	ID                string          `json:"id"`
	Label             string          `json:"label"`
	StandardDeduction decimal.Decimal `json:"standardDeduction"`
	Brackets          []Bracket       `json:"brackets"`
}

func upTo(bound, baseTax int64, ratePercent int64) Bracket {
	return Bracket{
		UpTo:    decimal.NewFromInt(bound),
		BaseTax: decimal.NewFromInt(baseTax),
		Rate:    decimal.New(ratePercent, -2),
	}
}

func above(baseTax int64, ratePercent int64) Bracket {
	return Bracket{
		Open:    true,
		BaseTax: decimal.NewFromInt(baseTax),
		Rate:    decimal.New(ratePercent, -2),
	}
}

// lowerBound returns the bound the i-th bracket starts from.
func (s SlabSchedule) lowerBound(i int) decimal.Decimal {
	if i == 0 {
		return decimal.Zero
	}
	return s.Brackets[i-1].UpTo
}

// Validate checks that the table is well formed and that the tax function it
// describes is continuous at every bound.
func (s SlabSchedule) Validate() error {
	if len(s.Brackets) == 0 {
		return fmt.Errorf("%s: %w", s.ID, ErrEmptySchedule)
	}
	if s.StandardDeduction.IsNegative() {
		return fmt.Errorf("%s: %w", s.ID, ErrNegativeDeduction)
	}

	last := len(s.Brackets) - 1
	for i, b := range s.Brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(1)) {
			return fmt.Errorf("%s bracket %d: %w", s.ID, i, ErrRateRange)
		}
		if b.Open && i != last {
			return fmt.Errorf("%s bracket %d: %w", s.ID, i, ErrOpenBracket)
		}
		if !b.Open && i == last {
			return fmt.Errorf("%s: %w", s.ID, ErrMissingOpen)
		}

		lower := s.lowerBound(i)
		if !b.Open && !b.UpTo.GreaterThan(lower) {
			return fmt.Errorf("%s bracket %d: %w", s.ID, i, ErrBracketOrder)
		}

		if i == 0 {
			if !b.BaseTax.IsZero() {
				return fmt.Errorf("%s bracket 0: %w", s.ID, ErrDiscontinuous)
			}
			continue
		}
		prev := s.Brackets[i-1]
		accrued := prev.BaseTax.Add(prev.UpTo.Sub(s.lowerBound(i - 1)).Mul(prev.Rate))
		if !accrued.Equal(b.BaseTax) {
			return fmt.Errorf("%s bracket %d: base %s, accrued %s: %w",
				s.ID, i, b.BaseTax, accrued, ErrDiscontinuous)
		}
	}
	return nil
}
