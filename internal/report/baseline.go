package report

import (
	"time"

	"github.com/shopspring/decimal"

	"preetosbot/internal/ledger"
)

// streakLookback bounds how many days a streak can extend over.
const streakLookback = 10

// targetGrowth is the month-over-month growth factor behind the monthly
// revenue target: prior full month plus ten percent.
var targetGrowth = decimal.NewFromFloat(1.10)

// StreakDirection labels which side of the reference a streak sits on.
type StreakDirection string

const (
	StreakAbove StreakDirection = "above"
	StreakBelow StreakDirection = "below"
)

// Calculator recomputes period metrics over historical windows of one
// ledger snapshot. All windows are pure calendar-date arithmetic; the
// snapshot is never refetched between calls.
type Calculator struct {
	table   ledger.Table
	cols    Columns
	formats DateFormats
}

// NewCalculator builds a baseline calculator over one snapshot.
func NewCalculator(t ledger.Table, cols Columns, formats DateFormats) *Calculator {
	return &Calculator{table: t, cols: cols, formats: formats}
}

// DayRevenue returns the paid revenue and order count for a single day.
func (c *Calculator) DayRevenue(day time.Time) (decimal.Decimal, int) {
	m := AggregateDates(c.table, c.cols, []time.Time{Midnight(day)}, c.formats)
	return m.PaidRevenue, m.OrderCount
}

// PeriodPaidRevenue returns the paid revenue across a set of days.
func (c *Calculator) PeriodPaidRevenue(days []time.Time) decimal.Decimal {
	return AggregateDates(c.table, c.cols, days, c.formats).PaidRevenue
}

// TrailingAverage computes the average daily paid revenue over the last n
// calendar days ending at (and including) end. A day contributes only when
// it had at least one matching order; days without orders are excluded from
// both the sum and the divisor rather than dragging the average down as
// zero-revenue days. Returns zero when no day in the window had orders.
func (c *Calculator) TrailingAverage(end time.Time, n int) decimal.Decimal {
	sum := decimal.Zero
	daysWithOrders := 0

	for i := 0; i < n; i++ {
		revenue, orders := c.DayRevenue(end.AddDate(0, 0, -i))
		if orders == 0 {
			continue
		}
		sum = sum.Add(revenue)
		daysWithOrders++
	}

	if daysWithOrders == 0 {
		return decimal.Zero
	}
	return sum.Div(decimal.NewFromInt(int64(daysWithOrders)))
}

// MonthTotal sums paid revenue over every calendar day of the month that is
// offsetMonths away from ref's month (0 = ref's own month, -1 = previous).
func (c *Calculator) MonthTotal(ref time.Time, offsetMonths int) decimal.Decimal {
	first := time.Date(ref.Year(), ref.Month()+time.Month(offsetMonths), 1, 0, 0, 0, 0, ref.Location())
	last := first.AddDate(0, 1, -1)
	return c.PeriodPaidRevenue(DateRange(first, last))
}

// Streak determines how many consecutive recent days share the current
// day's above/below standing against reference. Day 0 is ref itself and is
// classified with the caller-supplied current revenue; days 1 through 9 are
// recomputed from the snapshot, with zero-order days counting as zero
// revenue. Counting stops at the first day on the other side.
func (c *Calculator) Streak(ref time.Time, current, reference decimal.Decimal) (int, StreakDirection) {
	direction := classify(current, reference)

	count := 1
	for i := 1; i < streakLookback; i++ {
		revenue, _ := c.DayRevenue(ref.AddDate(0, 0, -i))
		if classify(revenue, reference) != direction {
			break
		}
		count++
	}

	return count, direction
}

// classify puts a revenue figure above or below the reference. Ties count
// as below.
func classify(revenue, reference decimal.Decimal) StreakDirection {
	if revenue.GreaterThan(reference) {
		return StreakAbove
	}
	return StreakBelow
}

// TargetStatus reports progress against the monthly revenue target.
type TargetStatus struct {
	// Target is the prior full month's paid revenue grown by ten percent.
	Target decimal.Decimal
	// MonthToDate is paid revenue from the first of ref's month through ref.
	MonthToDate decimal.Decimal
	// AchievementPct is MonthToDate over Target, as a percentage. Zero when
	// the target itself is zero.
	AchievementPct decimal.Decimal
}

// MonthlyTarget computes the monthly target block for the month containing
// ref.
func (c *Calculator) MonthlyTarget(ref time.Time) TargetStatus {
	status := TargetStatus{
		Target:         c.MonthTotal(ref, -1).Mul(targetGrowth),
		AchievementPct: decimal.Zero,
	}

	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	status.MonthToDate = c.PeriodPaidRevenue(DateRange(first, Midnight(ref)))

	if status.Target.IsPositive() {
		status.AchievementPct = status.MonthToDate.Div(status.Target).Mul(decimal.NewFromInt(100))
	}

	return status
}
