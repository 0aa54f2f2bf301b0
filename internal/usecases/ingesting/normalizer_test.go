package ingesting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/finance-insights-api/internal/domain"
)

var fullMapping = domain.ColumnMapping{
	DateColumn:          "Date",
	CategoryColumn:      "Category",
	AmountColumn:        "Amount",
	TypeColumn:          "Type",
	DescriptionColumn:   "Description",
	PaymentMethodColumn: "Payment Method",
}

func TestNormalizeRow(t *testing.T) {
	t.Run("linha completa vira transação normalizada", func(t *testing.T) {
		row := map[string]string{
			"Date":           "2026-01-15",
			"Category":       " Food ",
			"Amount":         "₹1,250.50",
			"Type":           "Debit",
			"Description":    "Lunch at cafe",
			"Payment Method": "UPI",
		}

		transaction, err := normalizeRow(row, fullMapping)
		require.NoError(t, err)

		assert.Equal(t, domain.TransactionTypeExpense, transaction.Type)
		assert.Equal(t, 1250.50, transaction.Amount)
		assert.Equal(t, "Food", transaction.Category)
		assert.Equal(t, "Lunch at cafe", transaction.Description)
		assert.Equal(t, domain.PaymentMethodUPI, transaction.PaymentMethod)
		assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), transaction.Date)
	})

	t.Run("valor negativo é armazenado como magnitude", func(t *testing.T) {
		row := map[string]string{
			"Date":   "2026-01-15",
			"Amount": "-850",
		}

		transaction, err := normalizeRow(row, fullMapping)
		require.NoError(t, err)

		assert.Equal(t, domain.TransactionTypeExpense, transaction.Type)
		assert.Equal(t, 850.0, transaction.Amount)
	})

	t.Run("categoria e descrição degradam para os padrões", func(t *testing.T) {
		row := map[string]string{
			"Date":   "01/15/2026",
			"Amount": "100",
		}

		transaction, err := normalizeRow(row, fullMapping)
		require.NoError(t, err)

		assert.Equal(t, "Uncategorized", transaction.Category)
		assert.Equal(t, "Uncategorized", transaction.Description)
		assert.Equal(t, domain.PaymentMethodNone, transaction.PaymentMethod)
	})

	t.Run("data inválida rejeita a linha", func(t *testing.T) {
		row := map[string]string{
			"Date":   "not-a-date",
			"Amount": "100",
		}

		_, err := normalizeRow(row, fullMapping)
		assert.ErrorIs(t, err, errMissingDate)
	})

	t.Run("valor zero ou ilegível rejeita a linha", func(t *testing.T) {
		for _, amount := range []string{"0", "abc", ""} {
			row := map[string]string{
				"Date":   "2026-01-15",
				"Amount": amount,
			}

			_, err := normalizeRow(row, fullMapping)
			assert.ErrorIs(t, err, errInvalidAmount, "amount %q", amount)
		}
	})
}

func TestDetermineType(t *testing.T) {
	tests := []struct {
		name     string
		typeCell string
		amount   string
		expected domain.TransactionType
	}{
		{name: "célula credit indica receita", typeCell: "Credit", amount: "-100", expected: domain.TransactionTypeIncome},
		{name: "célula income indica receita", typeCell: "income", amount: "-100", expected: domain.TransactionTypeIncome},
		{name: "célula debit indica despesa", typeCell: "Debit", amount: "100", expected: domain.TransactionTypeExpense},
		{name: "célula dr indica despesa", typeCell: "DR", amount: "100", expected: domain.TransactionTypeExpense},
		{name: "sinal negativo decide sem célula de tipo", typeCell: "", amount: "-100", expected: domain.TransactionTypeExpense},
		{name: "sinal positivo decide sem célula de tipo", typeCell: "", amount: "100", expected: domain.TransactionTypeIncome},
		{name: "sem evidência assume despesa", typeCell: "", amount: "abc", expected: domain.TransactionTypeExpense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := map[string]string{
				"Type":   tt.typeCell,
				"Amount": tt.amount,
			}

			assert.Equal(t, tt.expected, determineType(row, fullMapping))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		value    string
		expected float64
		ok       bool
	}{
		{value: "1250.50", expected: 1250.50, ok: true},
		{value: "₹1,250.50", expected: 1250.50, ok: true},
		{value: "$ 2,000", expected: 2000, ok: true},
		{value: "-850", expected: -850, ok: true},
		{value: "0", expected: 0, ok: true},
		{value: "abc", ok: false},
		{value: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			amount, ok := parseAmount(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, amount.InexactFloat64())
			}
		})
	}
}

func TestNormalizePaymentMethod(t *testing.T) {
	tests := []struct {
		value    string
		expected domain.PaymentMethod
	}{
		{value: "UPI", expected: domain.PaymentMethodUPI},
		{value: "Cash", expected: domain.PaymentMethodCash},
		{value: "Net Banking", expected: domain.PaymentMethodNetbanking},
		{value: "NEFT", expected: domain.PaymentMethodNetbanking},
		{value: "bank transfer", expected: domain.PaymentMethodNetbanking},
		{value: "Credit Card", expected: domain.PaymentMethodCard},
		{value: "debit", expected: domain.PaymentMethodCard},
		{value: "wallet", expected: domain.PaymentMethodOther},
		{value: "", expected: domain.PaymentMethodNone},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizePaymentMethod(tt.value))
		})
	}
}
