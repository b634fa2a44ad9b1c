package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name      string
		cell      string
		want      string
		extracted bool
	}{
		{"empty", "", "0", false},
		{"whitespace only", "   ", "0", false},
		{"plain integer", "100", "100", true},
		{"peso with thousands and trailing text", "₱1,234.50 extra", "1234.5", true},
		{"currency symbol", "₱50", "50", true},
		{"thousands separators", "12,345", "12345", true},
		{"decimal", "99.95", "99.95", true},
		{"leading text", "total: 250", "250", true},
		{"text only", "pending", "0", false},
		{"multiple runs takes first", "100 and 200", "100", true},
		{"malformed separators", "1.2.3", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, extracted := ParsePrice(tt.cell)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"ParsePrice(%q) = %s, want %s", tt.cell, got, tt.want)
			assert.Equal(t, tt.extracted, extracted)
		})
	}
}

func TestParsePriceNeverNegative(t *testing.T) {
	inputs := []string{"", "-50", "abc-1,000", "₱-12.50", "(100)", "--", "0"}
	for _, in := range inputs {
		got, _ := ParsePrice(in)
		assert.False(t, got.IsNegative(), "ParsePrice(%q) = %s", in, got)
	}
}
