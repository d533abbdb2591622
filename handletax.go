// Handle tax comparison
package main

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/windeesel365/slab-tax/taxcal"
)

func (h *Handler) HandleTaxComparison(c echo.Context) error {
	// Read body to a variable
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}
	defer c.Request().Body.Close()

	totalIncome, err := validateCompareRequest(body)
	if err != nil {
		return err
	}

	comparison, response, err := CalculateComparison(totalIncome)
	if err != nil {
		return incomeError(err)
	}

	h.record(c.Request().Context(), "api", comparison)

	return c.JSON(http.StatusOK, response)
}

type RegimeResponse struct {
	taxcal.SlabSchedule
	Valid bool `json:"valid"`
}

// HandleListRegimes shows the slab tables used for the comparison.
func (h *Handler) HandleListRegimes(c echo.Context) error {
	regimes := lo.Map(taxcal.Schedules(), func(s taxcal.SlabSchedule, _ int) RegimeResponse {
		return RegimeResponse{SlabSchedule: s, Valid: s.Validate() == nil}
	})
	return c.JSON(http.StatusOK, echo.Map{"regimes": regimes})
}
