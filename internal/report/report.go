package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "preetosbot/internal/errors"
	"preetosbot/internal/ledger"
)

// typicalMessageLimit is the message size most chat front-ends start
// splitting at. The core only hints; the front-end owns the actual split.
const typicalMessageLimit = 4000

// Builder produces full reports. It fetches the ledger exactly once per
// report and feeds the same immutable snapshot to the aggregator, the
// baseline calculator and the comparator.
type Builder struct {
	source    ledger.Source
	sheetName string
	cellRange string
	formats   DateFormats
	logger    *slog.Logger
}

// NewBuilder wires a report builder to its ledger source.
func NewBuilder(source ledger.Source, sheetName, cellRange string, formats DateFormats, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	if len(formats) == 0 {
		formats = DefaultFormats
	}
	return &Builder{
		source:    source,
		sheetName: sheetName,
		cellRange: cellRange,
		formats:   formats,
		logger:    logger,
	}
}

// Report is one computed sales report. Insights is filled in by the caller
// when a summary service is available; it never gates the numeric content.
type Report struct {
	RequestID string
	Dates     []time.Time
	Result    ComparisonResult
	Target    TargetStatus

	// Streak is only meaningful for single-day reports; StreakDays is zero
	// otherwise. The streak reference is the 7-day trailing average.
	StreakDays      int
	StreakDirection StreakDirection

	Insights    string
	GeneratedAt time.Time
}

// BuildDay produces the report for a single calendar date.
func (b *Builder) BuildDay(ctx context.Context, day time.Time) (*Report, error) {
	return b.build(ctx, []time.Time{Midnight(day)}, DayFirstFormats)
}

// BuildRange produces the report for the consecutive dates from first
// through last.
func (b *Builder) BuildRange(ctx context.Context, first, last time.Time) (*Report, error) {
	return b.build(ctx, DateRange(first, last), b.formats)
}

// BuildDates produces the report for an arbitrary list of calendar dates.
func (b *Builder) BuildDates(ctx context.Context, dates []time.Time) (*Report, error) {
	normalized := make([]time.Time, len(dates))
	for i, d := range dates {
		normalized[i] = Midnight(d)
	}
	return b.build(ctx, normalized, b.formats)
}

func (b *Builder) build(ctx context.Context, dates []time.Time, formats DateFormats) (*Report, error) {
	if len(dates) == 0 {
		return nil, fmt.Errorf("empty date set: %w", apperrors.ErrNoData)
	}

	requestID := uuid.NewString()
	logger := b.logger.With("request_id", requestID)

	table, err := b.source.FetchRows(ctx, b.sheetName, b.cellRange)
	if err != nil {
		return nil, fmt.Errorf("fetch ledger: %w", err)
	}

	cols := ResolveColumns(table)
	current := Aggregate(table, cols, dates, formats.ExpandAll(dates))

	calc := NewCalculator(table, cols, formats)
	result := Compare(calc, dates, current)

	anchor := dates[len(dates)-1]
	rep := &Report{
		RequestID:   requestID,
		Dates:       dates,
		Result:      result,
		Target:      calc.MonthlyTarget(anchor),
		GeneratedAt: time.Now(),
	}

	if result.Classification == ClassSingleDay {
		reference := calc.TrailingAverage(anchor, 7)
		rep.StreakDays, rep.StreakDirection = calc.Streak(anchor, current.PaidRevenue, reference)
	}

	logger.InfoContext(ctx, "report built",
		"classification", string(result.Classification),
		"days", len(dates),
		"orders", current.OrderCount,
		"excluded_rows", current.ExcludedRows,
		"total_revenue", current.TotalRevenue.String(),
	)

	return rep, nil
}

// ExcludedRows reports how many ledger rows failed the validity check, for
// audit.
func (r *Report) ExcludedRows() int {
	return r.Result.Current.ExcludedRows
}

// Title describes the reported period.
func (r *Report) Title() string {
	first := r.Dates[0]
	last := r.Dates[len(r.Dates)-1]
	if len(r.Dates) == 1 {
		return first.Format("Jan 02, 2006")
	}
	return fmt.Sprintf("%s - %s", first.Format("Jan 02"), last.Format("Jan 02, 2006"))
}

// Render produces the report text and a hint that it exceeds the typical
// front-end message limit.
func (r *Report) Render() (string, bool) {
	text := r.header() + "\n" + r.details()
	return text, len(text) > typicalMessageLimit
}

// RenderParts splits the report into front-end sized pieces: the headline
// plus insights first, the numeric details second.
func (r *Report) RenderParts() []string {
	return []string{r.header(), r.details()}
}

func (r *Report) header() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Sales Report for %s\n", r.Title())
	if r.Insights != "" {
		fmt.Fprintf(&sb, "\n🎇 Claude Insights:\n%s\n", r.Insights)
	}
	return sb.String()
}

func (r *Report) details() string {
	m := r.Result.Current
	var sb strings.Builder

	fmt.Fprintf(&sb, "💰 Revenue: %s | 👥 %d Customers\n", formatMoney(m.TotalRevenue), len(m.Customers))
	sb.WriteString(numberedNames(m.Customers, false))

	fmt.Fprintf(&sb, "\n✏️ Order:\nPouches (%d)\n", m.Pouches.Total())
	sb.WriteString(categoryLine(m.Pouches))
	fmt.Fprintf(&sb, "Tubs (%d)\n", m.Tubs.Total())
	sb.WriteString(categoryLine(m.Tubs))

	fmt.Fprintf(&sb, "\n💳 Payment:\nPaid (%d): %s\n", len(m.PaidCustomers), formatMoney(m.PaidRevenue))
	sb.WriteString(numberedNames(m.PaidCustomers, true))
	fmt.Fprintf(&sb, "Unpaid (%d): %s\n", len(m.UnpaidCustomers), formatMoney(m.UnpaidRevenue))
	sb.WriteString(numberedNames(m.UnpaidCustomers, true))

	fmt.Fprintf(&sb, "\n🚚 Delivery:\nUndelivered (%d):\n", len(m.UndeliveredCustomers))
	sb.WriteString(numberedNames(m.UndeliveredCustomers, true))

	if r.Result.Limited {
		sb.WriteString("\n📈 Trends: limited comparison (period longer than 32 days)\n")
	} else if len(r.Result.Comparisons) > 0 {
		sb.WriteString("\n📈 Trends:\n")
		for _, cmp := range r.Result.Comparisons {
			if cmp.HasPercent {
				fmt.Fprintf(&sb, "vs %s (%s): %s%%\n",
					cmp.Baseline.Label, formatMoney(cmp.Baseline.Value), formatSigned(cmp.PercentDiff))
			} else {
				fmt.Fprintf(&sb, "vs %s: no prior data\n", cmp.Baseline.Label)
			}
		}
	}

	if r.StreakDays > 0 {
		fmt.Fprintf(&sb, "🔥 Streak: %d day(s) %s the 7-day average\n", r.StreakDays, r.StreakDirection)
	}

	if r.Target.Target.IsPositive() {
		fmt.Fprintf(&sb, "\n🎯 Monthly Target: %s of %s (%s%%)\n",
			formatMoney(r.Target.MonthToDate), formatMoney(r.Target.Target),
			r.Target.AchievementPct.StringFixed(1))
	}

	return sb.String()
}

func categoryLine(counts CategoryCounts) string {
	parts := make([]string, 0, len(Categories))
	for _, cat := range Categories {
		parts = append(parts, fmt.Sprintf("%s %d", cat, counts[cat]))
	}
	return strings.Join(parts, " | ") + "\n"
}

// numberedNames renders a vertical enumeration of names. When short is set,
// names collapse to first name plus last initial.
func numberedNames(names []string, short bool) string {
	if len(names) == 0 {
		return "None\n"
	}

	var sb strings.Builder
	for i, name := range names {
		display := name
		if short {
			display = shortenName(name)
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, display)
	}
	return sb.String()
}

func shortenName(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return name
	}
	// First rune, not first byte: surnames can start with a multibyte rune.
	initial, _ := utf8.DecodeRuneInString(fields[len(fields)-1])
	return fmt.Sprintf("%s %c.", fields[0], initial)
}

// formatMoney renders a peso amount rounded to whole units with thousands
// separators.
func formatMoney(d decimal.Decimal) string {
	whole := d.Round(0).String()

	negative := strings.HasPrefix(whole, "-")
	digits := strings.TrimPrefix(whole, "-")

	var sb strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return "₱" + sign + sb.String()
}

// formatSigned renders a percent delta with an explicit sign.
func formatSigned(d decimal.Decimal) string {
	s := d.StringFixed(1)
	if !strings.HasPrefix(s, "-") {
		s = "+" + s
	}
	return s
}
