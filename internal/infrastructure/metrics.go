package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Report pipeline counters, labeled by what triggered the report.
var (
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesbot_reports_generated_total",
		Help: "Reports successfully generated, by trigger.",
	}, []string{"trigger"})

	ReportFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesbot_report_failures_total",
		Help: "Report generation failures, by trigger.",
	}, []string{"trigger"})

	LedgerRowsExcluded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salesbot_ledger_rows_excluded_total",
		Help: "Ledger rows excluded by the validity check, summed per report.",
	})
)
