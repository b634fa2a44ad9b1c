// Package report implements the sales aggregation and comparative-analytics
// engine: deciding which ledger rows belong to a requested date set,
// extracting typed fields from loosely formatted cells, folding matches into
// period metrics, and computing the historical baselines a period is judged
// against.
package report

import "preetosbot/internal/ledger"

// Category is one of the four product flavors sold in both pack formats.
type Category string

const (
	CategoryCheese    Category = "Cheese"
	CategorySourCream Category = "Sour Cream"
	CategoryBBQ       Category = "BBQ"
	CategoryOriginal  Category = "Original"
)

// Categories lists the flavors in presentation order.
var Categories = []Category{CategoryCheese, CategorySourCream, CategoryBBQ, CategoryOriginal}

// Ledger column conventions. Named columns are resolved from the header row
// and fall back to these fixed positions; the summary and quantity blocks
// have no headers and are always positional.
const (
	defaultDateCol     = 2  // column C
	defaultNameCol     = 3  // column D
	defaultPaymentCol  = 7  // column H
	defaultDeliveryCol = 8  // column I
	summaryCol         = 11 // column L, used only for row validity
	defaultPriceCol    = 27 // column AB

	firstPouchCol = 13 // columns N..Q: Cheese, Sour Cream, BBQ, Original
	firstTubCol   = 19 // columns T..W, same flavor order

	// minRowCells is the shortest row that can carry the summary column.
	minRowCells = summaryCol + 1
)

// Columns holds the resolved cell positions for one ledger snapshot.
type Columns struct {
	Date     int
	Name     int
	Payment  int
	Delivery int
	Price    int
	Pouches  [4]int
	Tubs     [4]int
}

// ResolveColumns locates the named columns in the snapshot's header row,
// falling back to the fixed positional defaults for any missing name.
func ResolveColumns(t ledger.Table) Columns {
	cols := Columns{
		Date:     defaultDateCol,
		Name:     defaultNameCol,
		Payment:  defaultPaymentCol,
		Delivery: defaultDeliveryCol,
		Price:    defaultPriceCol,
	}

	if i := t.ColumnIndex("Order Date"); i >= 0 {
		cols.Date = i
	}
	if i := t.ColumnIndex("Name"); i >= 0 {
		cols.Name = i
	}
	if i := t.ColumnIndex("Status Payment"); i >= 0 {
		cols.Payment = i
	}
	if i := t.ColumnIndex("Status (Delivery)"); i >= 0 {
		cols.Delivery = i
	}
	if i := t.ColumnIndex("Price"); i >= 0 {
		cols.Price = i
	}

	for i := range cols.Pouches {
		cols.Pouches[i] = firstPouchCol + i
		cols.Tubs[i] = firstTubCol + i
	}

	return cols
}
