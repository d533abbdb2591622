package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/windeesel365/slab-tax/incomeinput"
	"github.com/windeesel365/slab-tax/taxcal"
)

const maxCSVRows = 1000

func (h *Handler) HandleFileUpload(c echo.Context) error {
	// Retrieve uploaded file จาก form-data
	file, err := c.FormFile("taxFile") //Postman API test ที่ Key กรอก taxFile
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Key: taxFile is required")
	}

	//check format .csv  ไม่ใช่return error
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		return echo.NewHTTPError(http.StatusBadRequest, "File must end with '.csv'")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	incomes, err := readIncomesCSV(src)
	if err != nil {
		return err
	}

	comparisons := make([]taxcal.Comparison, 0, len(incomes))
	for i, income := range incomes {
		comparison, err := taxcal.CompareRegimes(income)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("data row %d: %v", i+1, err))
		}
		comparisons = append(comparisons, comparison)
	}

	for _, comparison := range comparisons {
		h.record(c.Request().Context(), "csv", comparison)
	}

	//แทรก "comparisons" เสริมด้านหน้า เพื่อให้ออกตรงตามแบบที่ต้องการ
	output := map[string]interface{}{
		"comparisons": lo.Map(comparisons, func(cmp taxcal.Comparison, _ int) ComparisonResponse {
			return toComparisonResponse(cmp)
		}),
	}

	return c.JSON(http.StatusOK, output)
}

// readIncomesCSV อ่าน column totalIncome ทีละแถว หลัง validate header แล้ว
func readIncomesCSV(r io.Reader) ([]decimal.Decimal, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read CSV file")
	}
	if len(records) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "CSV file is empty")
	}
	if len(records)-1 > maxCSVRows {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("CSV file may contain at most %d data rows", maxCSVRows))
	}

	header := records[0]
	if len(header) != 1 || strings.TrimPrefix(strings.TrimSpace(header[0]), "\ufeff") != "totalIncome" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Failed to read CSV file: header pattern not matched as expected (totalIncome)")
	}

	incomes := make([]decimal.Decimal, 0, len(records)-1)
	for i, record := range records[1:] {
		row := i + 1
		if len(record) != 1 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Each row must contain exactly one entry (data row %d)", row))
		}

		income, err := incomeinput.Parse(record[0])
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid totalIncome number format. Please ensure input data (data row %d) of totalIncome column correctly, then process again.", row))
		}
		incomes = append(incomes, income)
	}
	return incomes, nil
}
