package report

import (
	"preetosbot/internal/ledger"
)

// rowSpec describes one ledger row for test tables.
type rowSpec struct {
	date     string
	name     string
	summary  string
	payment  string
	delivery string
	price    string
	pouches  [4]int // Cheese, Sour Cream, BBQ, Original
	tubs     [4]int
}

// buildRow lays a rowSpec out on the conventional column positions.
func buildRow(spec rowSpec) []string {
	row := make([]string, 28)
	row[defaultDateCol] = spec.date
	row[defaultNameCol] = spec.name
	row[summaryCol] = spec.summary
	row[defaultPaymentCol] = spec.payment
	row[defaultDeliveryCol] = spec.delivery
	row[defaultPriceCol] = spec.price
	for i := 0; i < 4; i++ {
		if spec.pouches[i] != 0 {
			row[firstPouchCol+i] = itoa(spec.pouches[i])
		}
		if spec.tubs[i] != 0 {
			row[firstTubCol+i] = itoa(spec.tubs[i])
		}
	}
	return row
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// buildTable assembles a headerless-convention snapshot from row specs.
func buildTable(specs ...rowSpec) ledger.Table {
	t := ledger.Table{Headers: make([]string, 28)}
	for _, spec := range specs {
		t.Rows = append(t.Rows, buildRow(spec))
	}
	return t
}
