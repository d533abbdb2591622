package main

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/windeesel365/slab-tax/display"
	"github.com/windeesel365/slab-tax/taxcal"
)

// CustomDecimal แสดงผลเป็นตัวเลข JSON ทศนิยมสองตำแหน่ง (paise)
type CustomDecimal decimal.Decimal

func (c CustomDecimal) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(c).StringFixed(2)), nil
}

type RegimeTaxResponse struct {
	ID            string        `json:"id"`
	Label         string        `json:"label"`
	TaxableIncome CustomDecimal `json:"taxableIncome"`
	MarginalRate  string        `json:"marginalRate"`
	Tax           CustomDecimal `json:"tax"`
}

type ComparisonResponse struct {
	TotalIncome CustomDecimal       `json:"totalIncome"`
	Regimes     []RegimeTaxResponse `json:"regimes"`
	Difference  CustomDecimal       `json:"difference"`
	Magnitude   CustomDecimal       `json:"magnitude"`
	Direction   taxcal.Direction    `json:"direction"`
	Summary     string              `json:"summary"`
}

// CalculateComparison หา tax ของทั้งสองปีแล้วเทียบกัน
func CalculateComparison(totalIncome decimal.Decimal) (taxcal.Comparison, ComparisonResponse, error) {
	c, err := taxcal.CompareRegimes(totalIncome)
	if err != nil {
		return taxcal.Comparison{}, ComparisonResponse{}, err
	}
	return c, toComparisonResponse(c), nil
}

func toComparisonResponse(c taxcal.Comparison) ComparisonResponse {
	return ComparisonResponse{
		TotalIncome: CustomDecimal(c.A.GrossIncome),
		Regimes: lo.Map([]taxcal.TaxResult{c.A, c.B}, func(r taxcal.TaxResult, _ int) RegimeTaxResponse {
			return RegimeTaxResponse{
				ID:            r.ScheduleID,
				Label:         r.ScheduleLabel,
				TaxableIncome: CustomDecimal(r.TaxableIncome),
				MarginalRate:  display.Percent(r.MarginalRate),
				Tax:           CustomDecimal(r.Tax),
			}
		}),
		Difference: CustomDecimal(c.Result.Difference),
		Magnitude:  CustomDecimal(c.Result.Magnitude),
		Direction:  c.Result.Direction,
		Summary:    display.DirectionLabel(c),
	}
}
