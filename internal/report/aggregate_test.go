package report

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateSingleDayScenario(t *testing.T) {
	table := buildTable(
		rowSpec{date: "August 01, 2025", name: "A", price: "100", payment: "Paid", delivery: "Delivered"},
		rowSpec{date: "8/1/2025", name: "B", price: "₱50", payment: "Unpaid"},
	)
	cols := ResolveColumns(table)

	m := AggregateDates(table, cols, []time.Time{date(2025, time.August, 1)}, DefaultFormats)

	assert.True(t, m.TotalRevenue.Equal(decimal.NewFromInt(150)), "total %s", m.TotalRevenue)
	assert.True(t, m.PaidRevenue.Equal(decimal.NewFromInt(100)), "paid %s", m.PaidRevenue)
	assert.True(t, m.UnpaidRevenue.Equal(decimal.NewFromInt(50)), "unpaid %s", m.UnpaidRevenue)
	assert.Equal(t, []string{"A", "B"}, m.Customers)
	assert.Equal(t, []string{"B"}, m.UndeliveredCustomers)
	assert.Equal(t, 2, m.OrderCount)
}

func TestAggregateRevenueInvariant(t *testing.T) {
	table := buildTable(
		rowSpec{date: "2025-08-01", name: "A", price: "₱1,234.50", payment: "Paid"},
		rowSpec{date: "2025-08-01", name: "B", price: "50"},
		rowSpec{date: "2025-08-01", name: "C", price: "invalid"},
		rowSpec{date: "2025-08-01", name: "D", price: "19.95", payment: "Paid (GCash)"},
	)
	cols := ResolveColumns(table)

	m := AggregateDates(table, cols, []time.Time{date(2025, time.August, 1)}, DefaultFormats)

	assert.True(t, m.TotalRevenue.Equal(m.PaidRevenue.Add(m.UnpaidRevenue)),
		"total %s != paid %s + unpaid %s", m.TotalRevenue, m.PaidRevenue, m.UnpaidRevenue)
}

func TestAggregateIdempotent(t *testing.T) {
	table := buildTable(
		rowSpec{date: "2025-08-01", name: "A", price: "100", payment: "Paid", pouches: [4]int{1, 2, 0, 1}},
		rowSpec{date: "2025-08-01", name: "B", price: "75", tubs: [4]int{0, 0, 3, 0}},
	)
	cols := ResolveColumns(table)
	dates := []time.Time{date(2025, time.August, 1)}

	first := AggregateDates(table, cols, dates, DefaultFormats)
	second := AggregateDates(table, cols, dates, DefaultFormats)

	assert.Equal(t, first, second)
}

func TestAggregateCommutative(t *testing.T) {
	specs := []rowSpec{
		{date: "2025-08-01", name: "A", price: "100", payment: "Paid", pouches: [4]int{1, 0, 2, 0}},
		{date: "2025-08-01", name: "B", price: "₱50"},
		{date: "2025-08-01", name: "C", price: "210.25", payment: "Paid", delivery: "Delivered"},
		{date: "2025-08-01", name: "D", price: "33", tubs: [4]int{0, 4, 0, 1}},
		{date: "2025-08-02", name: "E", price: "999"}, // outside the period
	}
	table := buildTable(specs...)
	cols := ResolveColumns(table)
	dates := []time.Time{date(2025, time.August, 1)}

	want := AggregateDates(table, cols, dates, DefaultFormats)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 5; i++ {
		shuffled := buildTable(specs...)
		rng.Shuffle(len(shuffled.Rows), func(a, b int) {
			shuffled.Rows[a], shuffled.Rows[b] = shuffled.Rows[b], shuffled.Rows[a]
		})
		got := AggregateDates(shuffled, cols, dates, DefaultFormats)
		assert.Equal(t, want, got, "shuffle %d changed the aggregate", i)
	}
}

func TestAggregateCountsExcludedRows(t *testing.T) {
	table := buildTable(
		rowSpec{date: "2025-08-01", name: "A", price: "100"},
	)
	table.Rows = append(table.Rows, make([]string, 28)) // blank but full-width
	table.Rows = append(table.Rows, make([]string, 5))  // too short

	cols := ResolveColumns(table)
	m := AggregateDates(table, cols, []time.Time{date(2025, time.August, 1)}, DefaultFormats)

	assert.Equal(t, 2, m.ExcludedRows)
	assert.Equal(t, 1, m.OrderCount)
}

func TestAggregatePaidOnlyCategoryTotals(t *testing.T) {
	table := buildTable(
		rowSpec{date: "2025-08-01", name: "A", payment: "Paid", pouches: [4]int{2, 1, 0, 0}, tubs: [4]int{1, 0, 0, 0}},
		rowSpec{date: "2025-08-01", name: "B", pouches: [4]int{5, 0, 0, 0}},
	)
	cols := ResolveColumns(table)

	m := AggregateDates(table, cols, []time.Time{date(2025, time.August, 1)}, DefaultFormats)

	require.Equal(t, 7, m.Pouches[CategoryCheese])
	assert.Equal(t, 2, m.PaidPouches[CategoryCheese])
	assert.Equal(t, 1, m.PaidTubs[CategoryCheese])
	assert.Equal(t, 1, m.Pouches[CategorySourCream])
	assert.Equal(t, 1, m.PaidPouches[CategorySourCream])
}
