// Package taxcal computes income tax under slab schedules and compares two of them.
package taxcal

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNegativeIncome = errors.New("gross income must not be negative")

// Direction says which schedule is cheaper for the taxpayer.
type Direction string

const (
	ACheaper Direction = "A cheaper"
	BCheaper Direction = "B cheaper"
	Equal    Direction = "equal"
)

// TaxResult is the tax owed under one schedule.
type TaxResult struct {
	ScheduleID    string
	ScheduleLabel string
	GrossIncome   decimal.Decimal
	TaxableIncome decimal.Decimal
	MarginalRate  decimal.Decimal
	Tax           decimal.Decimal
}

// ComparisonResult holds A - B and which side is cheaper.
type ComparisonResult struct {
	Difference decimal.Decimal
	Magnitude  decimal.Decimal
	Direction  Direction
}

// Comparison is one full submission: both results and their comparison.
type Comparison struct {
	A      TaxResult
	B      TaxResult
	Result ComparisonResult
}

// ComputeTax returns the tax owed on grossIncome under s.
//
// The standard deduction is taken first; the brackets are then scanned in
// ascending order and the first one whose bound is not below the taxable income
// (or the open-ended last one) prices it. Taxable income at or below zero lands
// in the first bracket, which yields no tax for a zero base.
func ComputeTax(s SlabSchedule, grossIncome decimal.Decimal) (TaxResult, error) {
	if grossIncome.IsNegative() {
		return TaxResult{}, ErrNegativeIncome
	}
	if len(s.Brackets) == 0 {
		return TaxResult{}, ErrEmptySchedule
	}

	taxable := grossIncome.Sub(s.StandardDeduction)
	res := TaxResult{
		ScheduleID:    s.ID,
		ScheduleLabel: s.Label,
		GrossIncome:   grossIncome,
		TaxableIncome: decimal.Max(taxable, decimal.Zero),
	}

	for i, b := range s.Brackets {
		if b.Open || taxable.LessThanOrEqual(b.UpTo) {
			portion := decimal.Max(taxable.Sub(s.lowerBound(i)), decimal.Zero)
			res.Tax = b.BaseTax.Add(portion.Mul(b.Rate))
			res.MarginalRate = b.Rate
			if res.TaxableIncome.IsZero() {
				res.MarginalRate = decimal.Zero
			}
			return res, nil
		}
	}

	// Tables without an open bracket cap out at the last bound's accrued tax.
	last := len(s.Brackets) - 1
	b := s.Brackets[last]
	res.Tax = b.BaseTax.Add(b.UpTo.Sub(s.lowerBound(last)).Mul(b.Rate))
	res.MarginalRate = decimal.Zero
	return res, nil
}

// Compare reports resultA - resultB and its direction.
func Compare(resultA, resultB decimal.Decimal) ComparisonResult {
	diff := resultA.Sub(resultB)
	c := ComparisonResult{
		Difference: diff,
		Magnitude:  diff.Abs(),
		Direction:  Equal,
	}
	switch diff.Sign() {
	case 1:
		c.Direction = BCheaper
	case -1:
		c.Direction = ACheaper
	}
	return c
}

// CompareIncome prices grossIncome under a and b and compares the two.
func CompareIncome(a, b SlabSchedule, grossIncome decimal.Decimal) (Comparison, error) {
	ra, err := ComputeTax(a, grossIncome)
	if err != nil {
		return Comparison{}, err
	}
	rb, err := ComputeTax(b, grossIncome)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{A: ra, B: rb, Result: Compare(ra.Tax, rb.Tax)}, nil
}

// CompareRegimes compares the FY 2024-25 and FY 2025-26 schedules.
func CompareRegimes(grossIncome decimal.Decimal) (Comparison, error) {
	return CompareIncome(FY2024, FY2025, grossIncome)
}
