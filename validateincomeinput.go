package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/windeesel365/slab-tax/incomeinput"
	"github.com/windeesel365/slab-tax/jsonvalidate"
	"github.com/windeesel365/slab-tax/taxcal"
)

// data structure pattern ที่ user client request
// totalIncome รับได้ทั้ง number และ string ที่มี ₹ หรือ comma
type CompareRequest struct {
	TotalIncome json.RawMessage `json:"totalIncome"`
}

// validation input data ของ compare request แล้วคืนค่า income ที่ใช้คำนวณได้
func validateCompareRequest(body []byte) (decimal.Decimal, error) {
	//validate raw JSON not empty
	if len(strings.TrimSpace(string(body))) == 0 {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "Please provide input data")
	}

	//validate raw JSON root-level key count match กับ key count of correct pattern
	expectedKeys := []string{"totalIncome"}
	count, err := jsonvalidate.JsonRootLevelKeyCount(string(body))
	if err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "Invalid input")
	}
	if count != len(expectedKeys) {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "Invalid input format, ensure input just totalIncome")
	}

	if err := jsonvalidate.CheckJSONOrder(body, expectedKeys); err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	req := new(CompareRequest)
	if err := json.Unmarshal(body, req); err != nil {
		return decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, "Invalid input format: "+err.Error())
	}

	income, err := parseTotalIncome(req.TotalIncome)
	if err != nil {
		return decimal.Zero, incomeError(err)
	}
	return income, nil
}

func parseTotalIncome(raw json.RawMessage) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	switch {
	case s == "" || s == "null":
		return decimal.Zero, incomeinput.ErrEmpty
	case strings.HasPrefix(s, `"`):
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Zero, incomeinput.ErrNotNumeric
		}
		return incomeinput.Parse(text)
	default:
		v, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, incomeinput.ErrNotNumeric
		}
		return incomeinput.Check(v)
	}
}

// incomeError แปลง error จาก incomeinput เป็น HTTP 400 ที่อ่านเข้าใจได้
func incomeError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, incomeinput.ErrEmpty):
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide totalIncome")
	case errors.Is(err, incomeinput.ErrNegative), errors.Is(err, taxcal.ErrNegativeIncome):
		return echo.NewHTTPError(http.StatusBadRequest, "Please ensure totalIncome is not negative.")
	case errors.Is(err, incomeinput.ErrTooLong):
		return echo.NewHTTPError(http.StatusBadRequest, "Please ensure totalIncome is a realistic annual amount.")
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid totalIncome. Please enter a number such as 1000000 or \"₹10,00,000\".")
	}
}
