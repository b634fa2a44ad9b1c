package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"preetosbot/internal/ledger"
)

// CategoryCounts maps flavor to units sold.
type CategoryCounts map[Category]int

// Total sums the counts across flavors.
func (c CategoryCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

func newCategoryCounts() CategoryCounts {
	c := make(CategoryCounts, len(Categories))
	for _, cat := range Categories {
		c[cat] = 0
	}
	return c
}

func (c CategoryCounts) add(other map[Category]int) {
	for cat, n := range other {
		c[cat] += n
	}
}

// PeriodMetrics is the aggregate of every order matching a target date set.
// It is built once per aggregation call and immutable afterwards. Folding
// is purely additive, so row order never affects the result; name lists are
// sorted on finalize to keep the whole value deterministic.
type PeriodMetrics struct {
	Dates []time.Time

	TotalRevenue  decimal.Decimal
	PaidRevenue   decimal.Decimal
	UnpaidRevenue decimal.Decimal

	// Customers is the sorted distinct set of customer names.
	Customers []string

	Pouches     CategoryCounts
	Tubs        CategoryCounts
	PaidPouches CategoryCounts
	PaidTubs    CategoryCounts

	PaidCustomers        []string
	UnpaidCustomers      []string
	UndeliveredCustomers []string

	// OrderCount is the number of rows folded into this period.
	OrderCount int

	// ExcludedRows counts rows that failed the validity check, for audit.
	ExcludedRows int
}

// AggregateDates expands the target dates with the given formats and folds
// the snapshot's matching rows into a PeriodMetrics.
func AggregateDates(t ledger.Table, cols Columns, dates []time.Time, formats DateFormats) PeriodMetrics {
	return Aggregate(t, cols, dates, formats.ExpandAll(dates))
}

// Aggregate folds every matching row of the snapshot into running totals.
// The target match strings are the pre-expanded spellings of dates.
func Aggregate(t ledger.Table, cols Columns, dates []time.Time, matchStrings []string) PeriodMetrics {
	m := PeriodMetrics{
		Dates:         dates,
		TotalRevenue:  decimal.Zero,
		PaidRevenue:   decimal.Zero,
		UnpaidRevenue: decimal.Zero,
		Pouches:       newCategoryCounts(),
		Tubs:          newCategoryCounts(),
		PaidPouches:   newCategoryCounts(),
		PaidTubs:      newCategoryCounts(),
	}

	customers := make(map[string]struct{})

	for _, row := range t.Rows {
		order, ok := Normalize(row, cols)
		if !ok {
			m.ExcludedRows++
			continue
		}
		if !MatchesAny(order.DateText, matchStrings) {
			continue
		}

		m.OrderCount++
		customers[order.Customer] = struct{}{}

		m.TotalRevenue = m.TotalRevenue.Add(order.Price)
		m.Pouches.add(order.Pouches)
		m.Tubs.add(order.Tubs)

		if order.Payment == PaymentPaid {
			m.PaidRevenue = m.PaidRevenue.Add(order.Price)
			m.PaidCustomers = append(m.PaidCustomers, order.Customer)
			m.PaidPouches.add(order.Pouches)
			m.PaidTubs.add(order.Tubs)
		} else {
			m.UnpaidRevenue = m.UnpaidRevenue.Add(order.Price)
			m.UnpaidCustomers = append(m.UnpaidCustomers, order.Customer)
		}

		if order.Delivery != DeliveryDelivered {
			m.UndeliveredCustomers = append(m.UndeliveredCustomers, order.Customer)
		}
	}

	m.Customers = make([]string, 0, len(customers))
	for name := range customers {
		m.Customers = append(m.Customers, name)
	}
	sort.Strings(m.Customers)
	sort.Strings(m.PaidCustomers)
	sort.Strings(m.UnpaidCustomers)
	sort.Strings(m.UndeliveredCustomers)

	return m
}
