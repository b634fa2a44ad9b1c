// Package http exposes the service's small HTTP surface: liveness,
// Prometheus metrics, and a JSON report endpoint. Thin wrapper only; all
// sales logic stays in internal/report.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "preetosbot/internal/errors"
	"preetosbot/internal/infrastructure"
	"preetosbot/internal/report"
)

// Handler serves the HTTP surface.
type Handler struct {
	builder *report.Builder
	loc     *time.Location
	logger  *slog.Logger
}

// NewHandler builds the HTTP handler around the report builder.
func NewHandler(builder *report.Builder, loc *time.Location, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{builder: builder, loc: loc, logger: logger}
}

// Router assembles the chi router.
func (h *Handler) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", h.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/v1/report", h.reportForDate)

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// reportJSON is the wire shape of a computed report.
type reportJSON struct {
	Date           string          `json:"date"`
	Classification string          `json:"classification"`
	TotalRevenue   string          `json:"total_revenue"`
	PaidRevenue    string          `json:"paid_revenue"`
	UnpaidRevenue  string          `json:"unpaid_revenue"`
	Customers      []string        `json:"customers"`
	Pouches        map[string]int  `json:"pouches"`
	Tubs           map[string]int  `json:"tubs"`
	Undelivered    []string        `json:"undelivered_customers"`
	Comparisons    []comparisonRow `json:"comparisons"`
	Limited        bool            `json:"limited_comparison"`
	TargetPct      string          `json:"monthly_target_achievement_pct"`
	ExcludedRows   int             `json:"excluded_rows"`
	Text           string          `json:"text"`
	ExceedsLimit   bool            `json:"exceeds_typical_limit"`
}

type comparisonRow struct {
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Baseline    string `json:"baseline"`
	PercentDiff string `json:"percent_diff,omitempty"`
}

func (h *Handler) reportForDate(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")

	day := time.Now().In(h.loc)
	if dateParam != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateParam, h.loc)
		if err != nil {
			renderError(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}

	rep, err := h.builder.BuildDay(r.Context(), day)
	if err != nil {
		infrastructure.ReportFailures.WithLabelValues("http").Inc()
		h.logger.ErrorContext(r.Context(), "http report failed", "error", err)
		switch {
		case apperrors.IsNoData(err):
			renderError(w, r, http.StatusNotFound, "no order data found")
		case apperrors.IsSourceUnavailable(err):
			renderError(w, r, http.StatusServiceUnavailable, "ledger source unavailable")
		default:
			renderError(w, r, http.StatusInternalServerError, "report generation failed")
		}
		return
	}

	infrastructure.ReportsGenerated.WithLabelValues("http").Inc()

	m := rep.Result.Current
	text, exceeds := rep.Render()

	payload := reportJSON{
		Date:           day.Format("2006-01-02"),
		Classification: string(rep.Result.Classification),
		TotalRevenue:   m.TotalRevenue.String(),
		PaidRevenue:    m.PaidRevenue.String(),
		UnpaidRevenue:  m.UnpaidRevenue.String(),
		Customers:      m.Customers,
		Pouches:        countsJSON(m.Pouches),
		Tubs:           countsJSON(m.Tubs),
		Undelivered:    m.UndeliveredCustomers,
		Limited:        rep.Result.Limited,
		TargetPct:      rep.Target.AchievementPct.StringFixed(1),
		ExcludedRows:   rep.ExcludedRows(),
		Text:           text,
		ExceedsLimit:   exceeds,
	}
	for _, cmp := range rep.Result.Comparisons {
		row := comparisonRow{
			Kind:     string(cmp.Baseline.Kind),
			Label:    cmp.Baseline.Label,
			Baseline: cmp.Baseline.Value.String(),
		}
		if cmp.HasPercent {
			row.PercentDiff = cmp.PercentDiff.StringFixed(1)
		}
		payload.Comparisons = append(payload.Comparisons, row)
	}

	render.JSON(w, r, payload)
}

func countsJSON(counts report.CategoryCounts) map[string]int {
	out := make(map[string]int, len(counts))
	for cat, n := range counts {
		out[string(cat)] = n
	}
	return out
}

func renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, map[string]any{
		"success": false,
		"error":   message,
	})
}
