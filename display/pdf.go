package display

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/windeesel365/slab-tax/taxcal"
)

const (
	pdfMarginLeft  = 20.0
	pdfMarginTop   = 20.0
	pdfMarginRight = 20.0
	pdfWidth       = 210.0 - pdfMarginLeft - pdfMarginRight
	pdfLabelCol    = 100.0
	pdfAmountCol   = pdfWidth - pdfLabelCol
)

// pdfRupees uses "Rs." because the core PDF fonts are Latin-1 and have no ₹ glyph.
func pdfRupees(v decimal.Decimal) string {
	return "Rs. " + Amount(v)
}

// ComparisonPDF renders the comparison table as a one page A4 document.
func ComparisonPDF(c taxcal.Comparison, generated time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	pdf.SetTitle("Income Tax Comparison", false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(21, 128, 61)
	pdf.CellFormat(pdfWidth, 12, "Income Tax Comparison (New Regime)", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(pdfWidth, 6, fmt.Sprintf("Generated: %s", generated.Format("2 January 2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(pdfWidth, 8, "Annual income: "+pdfRupees(c.A.GrossIncome), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(229, 231, 235)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(pdfLabelCol, 9, "Year", "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfAmountCol, 9, "Tax Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, r := range []taxcal.TaxResult{c.A, c.B} {
		pdf.CellFormat(pdfLabelCol, 9, r.ScheduleLabel, "1", 0, "L", false, 0, "")
		pdf.CellFormat(pdfAmountCol, 9, pdfRupees(r.Tax), "1", 1, "R", false, 0, "")
	}

	pdf.SetFillColor(220, 252, 231)
	pdf.SetTextColor(21, 128, 61)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(pdfLabelCol, 9, "Difference", "1", 0, "L", true, 0, "")
	pdf.CellFormat(pdfAmountCol, 9,
		fmt.Sprintf("%s (%s)", pdfRupees(c.Result.Magnitude), DirectionLabel(c)),
		"1", 1, "R", true, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(90, 90, 90)
	for _, r := range []taxcal.TaxResult{c.A, c.B} {
		pdf.CellFormat(pdfWidth, 5,
			fmt.Sprintf("%s: taxable income %s, marginal rate %s", r.ScheduleLabel, pdfRupees(r.TaxableIncome), Percent(r.MarginalRate)),
			"", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render comparison pdf: %w", err)
	}
	return buf.Bytes(), nil
}
