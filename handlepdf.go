package main

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/windeesel365/slab-tax/display"
	"github.com/windeesel365/slab-tax/incomeinput"
)

// HandleComparisonPDF returns the comparison table for ?income= as a PDF download.
func (h *Handler) HandleComparisonPDF(c echo.Context) error {
	income, err := incomeinput.Parse(c.QueryParam("income"))
	if err != nil {
		return incomeError(err)
	}

	comparison, _, err := CalculateComparison(income)
	if err != nil {
		return incomeError(err)
	}

	out, err := display.ComparisonPDF(comparison, h.now())
	if err != nil {
		log.WithError(err).Error("pdf export failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "Could not generate PDF")
	}

	h.record(c.Request().Context(), "pdf", comparison)

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="tax-comparison-%s.pdf"`, income.StringFixed(0)))
	return c.Blob(http.StatusOK, "application/pdf", out)
}
