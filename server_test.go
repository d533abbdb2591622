package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windeesel365/slab-tax/history"
	"github.com/windeesel365/slab-tax/ratelimit"
)

var fixedNow = time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		Port:          "0",
		AdminUsername: "adminTax",
		AdminPassword: "admin!",
		JWTSecret:     []byte("test-secret"),
		LogLevel:      "error",
	}
}

func newTestServer(t *testing.T, cfg Config, limiter ratelimit.Limiter) (*echo.Echo, *history.MemoryStore, *Handler) {
	t.Helper()
	store := history.NewMemoryStore(100)
	h := NewHandler(cfg, store)
	h.now = func() time.Time { return fixedNow }
	e, err := newServer(h, limiter)
	require.NoError(t, err)
	return e, store, h
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type comparisonBody struct {
	TotalIncome float64 `json:"totalIncome"`
	Regimes     []struct {
		ID           string  `json:"id"`
		Label        string  `json:"label"`
		MarginalRate string  `json:"marginalRate"`
		Tax          float64 `json:"tax"`
	} `json:"regimes"`
	Difference float64 `json:"difference"`
	Magnitude  float64 `json:"magnitude"`
	Direction  string  `json:"direction"`
	Summary    string  `json:"summary"`
}

func TestHandleTaxComparison(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantA     float64
		wantB     float64
		wantDiff  float64
		direction string
		summary   string
	}{
		{"10 lakh", `{"totalIncome": 1000000}`, 42500, 32500, 10000, "B cheaper", "Less tax in FY 2025-26"},
		{"5 lakh formatted", `{"totalIncome": "₹5,00,000"}`, 6250, 1250, 5000, "B cheaper", "Less tax in FY 2025-26"},
		{"at deduction", `{"totalIncome": 75000}`, 0, 0, 0, "equal", "No difference"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store, _ := newTestServer(t, testConfig(), nil)
			req := httptest.NewRequest(http.MethodPost, "/tax/compare", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := serve(e, req)

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var got comparisonBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Len(t, got.Regimes, 2)
			assert.Equal(t, "FY2024-25", got.Regimes[0].ID)
			assert.Equal(t, "FY2025-26", got.Regimes[1].ID)
			assert.Equal(t, tt.wantA, got.Regimes[0].Tax)
			assert.Equal(t, tt.wantB, got.Regimes[1].Tax)
			assert.Equal(t, tt.wantDiff, got.Difference)
			assert.Equal(t, tt.direction, got.Direction)
			assert.Equal(t, tt.summary, got.Summary)

			recs, err := store.Recent(context.Background(), 10)
			require.NoError(t, err)
			assert.Len(t, recs, 1)
			assert.Equal(t, "api", recs[0].Source)
		})
	}
}

func TestHandleTaxComparisonRejectsInvalidIncome(t *testing.T) {
	for _, body := range []string{`{"totalIncome": "abc"}`, `{"totalIncome": -1000}`, ``, `{"totalIncome": 1, "x": 2}`,
		`{"totalIncome": 1234567890123456}`, `{"totalIncome": 1e30}`, `{"totalIncome": 1e200000}`} {
		e, store, _ := newTestServer(t, testConfig(), nil)
		req := httptest.NewRequest(http.MethodPost, "/tax/compare", strings.NewReader(body))
		rec := serve(e, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		recs, _ := store.Recent(context.Background(), 10)
		assert.Empty(t, recs, "no result is produced for %q", body)
	}
}

func TestHandleTaxComparisonJSONShape(t *testing.T) {
	e, _, _ := newTestServer(t, testConfig(), nil)
	req := httptest.NewRequest(http.MethodPost, "/tax/compare", strings.NewReader(`{"totalIncome": 1000000}`))
	rec := serve(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tax":42500.00`)
	assert.Contains(t, rec.Body.String(), `"marginalRate":"10%"`)
}

func TestHandleListRegimes(t *testing.T) {
	e, _, _ := newTestServer(t, testConfig(), nil)
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/tax/regimes", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Regimes []struct {
			ID       string            `json:"id"`
			Valid    bool              `json:"valid"`
			Brackets []json.RawMessage `json:"brackets"`
		} `json:"regimes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Regimes, 2)
	assert.Equal(t, "FY2024-25", got.Regimes[0].ID)
	assert.Len(t, got.Regimes[0].Brackets, 6)
	assert.Len(t, got.Regimes[1].Brackets, 7)
	assert.True(t, got.Regimes[0].Valid)
	assert.True(t, got.Regimes[1].Valid)
}

func TestFormShowsComparison(t *testing.T) {
	e, store, _ := newTestServer(t, testConfig(), nil)

	form := url.Values{"income": {"₹10,00,000"}}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := serve(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="comparison"`)
	assert.Contains(t, body, "₹42,500")
	assert.Contains(t, body, "₹32,500")
	assert.Contains(t, body, "₹10,000 (Less tax in FY 2025-26)")

	recs, _ := store.Recent(context.Background(), 10)
	assert.Len(t, recs, 1)
}

func TestFormSuppressesComparisonOnInvalidIncome(t *testing.T) {
	for _, income := range []string{"abc", "-1000", ""} {
		e, store, _ := newTestServer(t, testConfig(), nil)

		form := url.Values{"income": {income}}
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := serve(e, req)

		require.Equal(t, http.StatusOK, rec.Code, income)
		assert.NotContains(t, rec.Body.String(), `id="comparison"`, income)
		assert.Contains(t, rec.Body.String(), `class="hint"`, income)

		recs, _ := store.Recent(context.Background(), 10)
		assert.Empty(t, recs)
	}
}

func TestFormGet(t *testing.T) {
	e, _, _ := newTestServer(t, testConfig(), nil)
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Income Tax Calculator")
	assert.NotContains(t, rec.Body.String(), `id="comparison"`)
}

func TestHandleComparisonPDF(t *testing.T) {
	e, _, _ := newTestServer(t, testConfig(), nil)

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/tax/compare/pdf?income="+url.QueryEscape("10,00,000"), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "tax-comparison-1000000.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/tax/compare/pdf?income=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func uploadCSV(t *testing.T, e *echo.Echo, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("taxFile", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/tax/compare/upload-csv", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return serve(e, req)
}

func TestHandleFileUpload(t *testing.T) {
	e, store, _ := newTestServer(t, testConfig(), nil)

	rec := uploadCSV(t, e, "incomes.csv", "totalIncome\n1000000\n\"₹5,00,000\"\n75000\n")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Comparisons []comparisonBody `json:"comparisons"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Comparisons, 3)
	assert.Equal(t, 10000.0, got.Comparisons[0].Difference)
	assert.Equal(t, 5000.0, got.Comparisons[1].Difference)
	assert.Equal(t, "equal", got.Comparisons[2].Direction)

	recs, _ := store.Recent(context.Background(), 10)
	assert.Len(t, recs, 3)
}

func TestHandleFileUploadRejects(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"not csv", "incomes.txt", "totalIncome\n100\n"},
		{"wrong header", "incomes.csv", "income\n100\n"},
		{"bad number", "incomes.csv", "totalIncome\nabc\n"},
		{"negative", "incomes.csv", "totalIncome\n-5\n"},
		{"two columns", "incomes.csv", "totalIncome\n100,200\n"},
		{"empty", "incomes.csv", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, store, _ := newTestServer(t, testConfig(), nil)
			rec := uploadCSV(t, e, tt.filename, tt.content)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			recs, _ := store.Recent(context.Background(), 10)
			assert.Empty(t, recs)
		})
	}
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(2, time.Minute)
	defer limiter.Stop()
	e, _, _ := newTestServer(t, testConfig(), limiter)

	codes := []int{}
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/tax/compare", strings.NewReader(`{"totalIncome": 1000000}`))
		codes = append(codes, serve(e, req).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// the form page itself is never throttled
	assert.Equal(t, http.StatusOK, serve(e, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
}

func TestRateLimitIgnoresForwardedHeaders(t *testing.T) {
	limiter := ratelimit.NewMemoryLimiter(2, time.Minute)
	defer limiter.Stop()
	e, _, _ := newTestServer(t, testConfig(), limiter)

	codes := []int{}
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodPost, "/tax/compare", strings.NewReader(`{"totalIncome": 1000000}`))
		req.RemoteAddr = "203.0.113.7:40000"
		req.Header.Set(echo.HeaderXForwardedFor, fmt.Sprintf("198.51.100.%d", i+1))
		req.Header.Set(echo.HeaderXRealIP, fmt.Sprintf("192.0.2.%d", i+1))
		codes = append(codes, serve(e, req).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)

	// a different peer still has its own budget
	req := httptest.NewRequest(http.MethodPost, "/tax/compare", strings.NewReader(`{"totalIncome": 1000000}`))
	req.RemoteAddr = "203.0.113.8:40000"
	assert.Equal(t, http.StatusOK, serve(e, req).Code)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, assert.AnError
}

func TestRateLimitFailsOpen(t *testing.T) {
	e, _, _ := newTestServer(t, testConfig(), failingLimiter{})
	req := httptest.NewRequest(http.MethodPost, "/tax/compare", strings.NewReader(`{"totalIncome": 1000000}`))
	assert.Equal(t, http.StatusOK, serve(e, req).Code)
}
