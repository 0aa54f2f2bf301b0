package ingesting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finwise/finance-insights-api/internal/domain"
)

func TestMapColumns(t *testing.T) {
	tests := []struct {
		name     string
		headers  []string
		expected domain.ColumnMapping
	}{
		{
			name:    "standard export with explicit headers",
			headers: []string{"Date", "Category", "Amount", "Transaction Type", "Description", "Payment Method"},
			expected: domain.ColumnMapping{
				DateColumn:          "Date",
				CategoryColumn:      "Category",
				AmountColumn:        "Amount",
				TypeColumn:          "Transaction Type",
				DescriptionColumn:   "Description",
				PaymentMethodColumn: "Payment Method",
			},
		},
		{
			name:    "bank statement headers resolved by substring",
			headers: []string{"Txn Date", "Merchant", "Debit/Credit", "Transaction Amount", "Mode"},
			expected: domain.ColumnMapping{
				DateColumn:          "Txn Date",
				CategoryColumn:      "Merchant",
				AmountColumn:        "Transaction Amount",
				TypeColumn:          "Debit/Credit",
				DescriptionColumn:   "Merchant",
				PaymentMethodColumn: "Mode",
			},
		},
		{
			name:    "same header can serve more than one role",
			headers: []string{"Date", "Description", "Amount"},
			expected: domain.ColumnMapping{
				DateColumn:        "Date",
				CategoryColumn:    "Description",
				AmountColumn:      "Amount",
				DescriptionColumn: "Description",
			},
		},
		{
			name:    "keyword priority wins over header order",
			headers: []string{"Debit", "Amount"},
			expected: domain.ColumnMapping{
				AmountColumn: "Amount",
			},
		},
		{
			name:     "unrecognizable headers map to nothing",
			headers:  []string{"Foo", "Bar", "Baz"},
			expected: domain.ColumnMapping{},
		},
		{
			name:    "matching is case insensitive and trims spaces",
			headers: []string{"  POSTED DATE  ", "EXPENSE CATEGORY"},
			expected: domain.ColumnMapping{
				DateColumn:     "  POSTED DATE  ",
				CategoryColumn: "EXPENSE CATEGORY",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapColumns(tt.headers))
		})
	}
}
