package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// Classification buckets a requested period by its length in days.
type Classification string

const (
	ClassSingleDay  Classification = "single_day"  // exactly 1 day
	ClassShortRange Classification = "short_range" // 2–13 days
	ClassTwoWeeks   Classification = "two_weeks"   // exactly 14 days
	ClassMonthly    Classification = "monthly"     // 15–32 days
	ClassLimited    Classification = "limited"     // longer than 32 days
)

// Classify buckets a period length.
func Classify(days int) Classification {
	switch {
	case days <= 1:
		return ClassSingleDay
	case days < 14:
		return ClassShortRange
	case days == 14:
		return ClassTwoWeeks
	case days <= 32:
		return ClassMonthly
	default:
		return ClassLimited
	}
}

// BaselineKind names how a comparison figure was derived.
type BaselineKind string

const (
	KindTrailingAverage    BaselineKind = "trailing_average"
	KindPriorPeriod        BaselineKind = "prior_period"
	KindRollingAverage     BaselineKind = "rolling_average"
	KindPriorMonthPeriod   BaselineKind = "prior_month_period"
	KindSamePeriodLastYear BaselineKind = "same_period_last_year"
	KindMonthlyTarget      BaselineKind = "monthly_target"
)

// Baseline is one previously earned revenue figure the current period is
// compared against.
type Baseline struct {
	Kind  BaselineKind
	Label string
	Value decimal.Decimal
}

// Comparison pairs a baseline with the percent difference of the current
// period against it. Baselines of zero are carried without a percentage.
type Comparison struct {
	Baseline    Baseline
	PercentDiff decimal.Decimal
	HasPercent  bool
}

// ComparisonResult is the full comparative view of one requested period.
type ComparisonResult struct {
	Classification Classification
	Current        PeriodMetrics
	Comparisons    []Comparison

	// Limited marks periods too long for meaningful baselines.
	Limited bool
}

// Compare classifies the requested period and computes the baseline set
// appropriate for its length. Baseline windows are built with calendar-date
// arithmetic from the requested dates, so month and year rollovers fall out
// of time.AddDate.
func Compare(calc *Calculator, dates []time.Time, current PeriodMetrics) ComparisonResult {
	result := ComparisonResult{
		Classification: Classify(len(dates)),
		Current:        current,
	}

	switch result.Classification {
	case ClassSingleDay:
		day := dates[0]
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindTrailingAverage,
			Label: "7-day average",
			Value: calc.TrailingAverage(day, 7),
		})
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindPriorPeriod,
			Label: "same day last week",
			Value: calc.PeriodPaidRevenue(ShiftDays(dates, -7)),
		})
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindRollingAverage,
			Label: "4-week same-weekday average",
			Value: rollingAverage(calc, dates, 7, 4),
		})

	case ClassShortRange:
		n := len(dates)
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindPriorPeriod,
			Label: "previous period",
			Value: calc.PeriodPaidRevenue(ShiftDays(dates, -n)),
		})
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindRollingAverage,
			Label: "4-week rolling average",
			Value: rollingAverage(calc, dates, 7, 4),
		})
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindPriorMonthPeriod,
			Label: "same period last month",
			Value: calc.PeriodPaidRevenue(ShiftDays(dates, -30)),
		})

	case ClassTwoWeeks:
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindPriorPeriod,
			Label: "previous 2 weeks",
			Value: calc.PeriodPaidRevenue(ShiftDays(dates, -14)),
		})
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindRollingAverage,
			Label: "8-week rolling average",
			Value: rollingAverage(calc, dates, 14, 4),
		})
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindPriorMonthPeriod,
			Label: "same period last month",
			Value: calc.PeriodPaidRevenue(ShiftDays(dates, -30)),
		})

	case ClassMonthly:
		n := len(dates)
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindPriorPeriod,
			Label: "previous period",
			Value: calc.PeriodPaidRevenue(ShiftDays(dates, -n)),
		})
		// The period at offset n is already the prior-period baseline, so
		// the rolling view averages the three periods behind it.
		rolling := decimal.Zero
		for k := 2; k <= 4; k++ {
			rolling = rolling.Add(calc.PeriodPaidRevenue(ShiftDays(dates, -k*n)))
		}
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindRollingAverage,
			Label: "3-period rolling average",
			Value: rolling.Div(decimal.NewFromInt(3)),
		})
		result.add(current.PaidRevenue, Baseline{
			Kind:  KindSamePeriodLastYear,
			Label: "same period last year",
			Value: calc.PeriodPaidRevenue(ShiftDays(dates, -365)),
		})

	case ClassLimited:
		result.Limited = true
	}

	return result
}

// rollingAverage averages the paid revenue of the period shifted back by
// step, 2*step, ... count*step days.
func rollingAverage(calc *Calculator, dates []time.Time, step, count int) decimal.Decimal {
	sum := decimal.Zero
	for k := 1; k <= count; k++ {
		sum = sum.Add(calc.PeriodPaidRevenue(ShiftDays(dates, -k*step)))
	}
	return sum.Div(decimal.NewFromInt(int64(count)))
}

// add appends a baseline with its percent difference when the baseline is
// positive: (current − baseline) / baseline × 100.
func (r *ComparisonResult) add(current decimal.Decimal, b Baseline) {
	cmp := Comparison{Baseline: b}
	if b.Value.IsPositive() {
		cmp.PercentDiff = current.Sub(b.Value).Div(b.Value).Mul(decimal.NewFromInt(100))
		cmp.HasPercent = true
	}
	r.Comparisons = append(r.Comparisons, cmp)
}
