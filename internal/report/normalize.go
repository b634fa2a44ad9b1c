package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentStatus classifies an order's payment cell.
type PaymentStatus int

const (
	PaymentUnpaid PaymentStatus = iota
	PaymentPaid
)

// DeliveryStatus classifies an order's delivery cell.
type DeliveryStatus int

const (
	DeliveryPending DeliveryStatus = iota
	DeliveryDelivered
)

// unknownCustomer stands in for a blank name cell.
const unknownCustomer = "Unknown Customer"

// Order is one ledger row normalized into typed fields. Orders are
// request-scoped values; nothing here outlives a single report.
type Order struct {
	Customer string
	DateText string
	Payment  PaymentStatus
	Delivery DeliveryStatus

	// Price is zero when the cell was blank or unparsable; PriceExtracted
	// distinguishes a degraded price from a genuine zero.
	Price          decimal.Decimal
	PriceExtracted bool

	Pouches map[Category]int
	Tubs    map[Category]int
}

// cellAt returns the trimmed cell at index i, or "" past the row's end.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// Normalize classifies a raw row and extracts its typed fields. The second
// return value is false when the row is not a candidate order: shorter than
// the summary column, or blank in all of the date, name and summary cells.
// Field-level problems never exclude a row; they degrade to defaults.
func Normalize(row []string, cols Columns) (Order, bool) {
	if len(row) < minRowCells {
		return Order{}, false
	}

	// Validity is checked on the conventional positions regardless of
	// header overrides: a row counts as an order if any of date, name or
	// free-text summary is filled in.
	hasDate := cellAt(row, defaultDateCol) != ""
	hasName := cellAt(row, defaultNameCol) != ""
	hasSummary := cellAt(row, summaryCol) != ""
	if !hasDate && !hasName && !hasSummary {
		return Order{}, false
	}

	order := Order{
		DateText: cellAt(row, cols.Date),
		Customer: cellAt(row, cols.Name),
		Pouches:  make(map[Category]int, len(Categories)),
		Tubs:     make(map[Category]int, len(Categories)),
	}
	if order.Customer == "" {
		order.Customer = unknownCustomer
	}

	// "Paid" anywhere in the cell marks the order paid; the sheet uses
	// variants like "Paid (GCash)". Everything else, blank included, is
	// unpaid.
	if strings.Contains(cellAt(row, cols.Payment), "Paid") {
		order.Payment = PaymentPaid
	}

	// Only the literal "Delivered" counts as delivered.
	if cellAt(row, cols.Delivery) == "Delivered" {
		order.Delivery = DeliveryDelivered
	}

	order.Price, order.PriceExtracted = ParsePrice(cellAt(row, cols.Price))

	for i, cat := range Categories {
		order.Pouches[cat] = parseCount(cellAt(row, cols.Pouches[i]))
		order.Tubs[cat] = parseCount(cellAt(row, cols.Tubs[i]))
	}

	return order, true
}

// parseCount reads a quantity cell. Only a cell consisting solely of digits
// contributes; blanks, text and decimals all count as zero.
func parseCount(cell string) int {
	if cell == "" {
		return 0
	}
	n := 0
	for _, r := range cell {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
