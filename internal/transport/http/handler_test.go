package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "preetosbot/internal/errors"
	"preetosbot/internal/ledger"
	"preetosbot/internal/report"
)

func testHandler(source ledger.Source) *Handler {
	builder := report.NewBuilder(source, "ORDER", "A:AF", report.DefaultFormats, nil)
	return NewHandler(builder, time.UTC, nil)
}

func orderTable() ledger.Table {
	row := make([]string, 28)
	row[2] = "2025-08-01"
	row[3] = "Ana Cruz"
	row[7] = "Paid"
	row[27] = "150"
	return ledger.Table{Headers: make([]string, 28), Rows: [][]string{row}}
}

func TestHealthz(t *testing.T) {
	h := testHandler(&ledger.MemorySource{Table: orderTable()})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	h := testHandler(&ledger.MemorySource{Table: orderTable()})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReportForDate(t *testing.T) {
	h := testHandler(&ledger.MemorySource{Table: orderTable()})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/report?date=2025-08-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload reportJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))

	assert.Equal(t, "2025-08-01", payload.Date)
	assert.Equal(t, "single_day", payload.Classification)
	assert.Equal(t, "150", payload.TotalRevenue)
	assert.Equal(t, "150", payload.PaidRevenue)
	assert.Equal(t, []string{"Ana Cruz"}, payload.Customers)
	assert.Zero(t, payload.ExcludedRows)
	assert.Contains(t, payload.Text, "₱150")
}

func TestReportBadDate(t *testing.T) {
	h := testHandler(&ledger.MemorySource{Table: orderTable()})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/report?date=08-01-2025", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
}

func TestReportNoData(t *testing.T) {
	h := testHandler(&ledger.MemorySource{})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/report?date=2025-08-01", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportSourceUnavailable(t *testing.T) {
	h := testHandler(&ledger.MemorySource{
		Err: apperrors.SourceUnavailable(assert.AnError),
	})

	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/v1/report?date=2025-08-01", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
