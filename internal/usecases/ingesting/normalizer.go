package ingesting

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

const (
	defaultCategory    = "Uncategorized"
	defaultDescription = "Transaction"
)

var (
	errMissingDate   = errors.New("missing or unparsable date")
	errInvalidAmount = errors.New("missing or invalid amount")
)

// amountCleaner remove símbolos de moeda, separadores de milhar e
// espaços antes do parse numérico.
var amountCleaner = strings.NewReplacer("$", "", "₹", "", ",", "", " ", "", "\t", "")

// normalizeRow converte uma linha mapeada do CSV em transação de domínio.
// Linhas sem data interpretável ou sem valor monetário válido são
// rejeitadas; os demais campos degradam para padrões seguros.
func normalizeRow(row map[string]string, mapping domain.ColumnMapping) (domain.Transaction, error) {
	var date time.Time
	if mapping.DateColumn != "" {
		if parsed, err := utils.ParseFlexibleDate(row[mapping.DateColumn]); err == nil {
			date = parsed
		}
	}
	if date.IsZero() {
		return domain.Transaction{}, errMissingDate
	}

	amount := decimal.Zero
	if mapping.AmountColumn != "" {
		if parsed, ok := parseAmount(row[mapping.AmountColumn]); ok {
			amount = parsed
		}
	}
	if amount.IsZero() {
		return domain.Transaction{}, errInvalidAmount
	}

	category := ""
	if mapping.CategoryColumn != "" {
		category = strings.TrimSpace(row[mapping.CategoryColumn])
	}
	if category == "" {
		category = defaultCategory
	}

	description := ""
	if mapping.DescriptionColumn != "" {
		description = strings.TrimSpace(row[mapping.DescriptionColumn])
	}
	if description == "" {
		description = category
	}
	if description == "" {
		description = defaultDescription
	}

	paymentMethod := domain.PaymentMethodNone
	if mapping.PaymentMethodColumn != "" {
		paymentMethod = normalizePaymentMethod(row[mapping.PaymentMethodColumn])
	}

	return domain.Transaction{
		Type:          determineType(row, mapping),
		Amount:        amount.Abs().InexactFloat64(),
		Category:      category,
		Description:   description,
		Date:          date,
		PaymentMethod: paymentMethod,
	}, nil
}

// determineType resolve o tipo pela coluna de tipo quando presente e,
// na falta dela, pelo sinal do valor. Sem evidência, assume despesa.
func determineType(row map[string]string, mapping domain.ColumnMapping) domain.TransactionType {
	if mapping.TypeColumn != "" {
		value := strings.ToLower(strings.TrimSpace(row[mapping.TypeColumn]))
		if value != "" {
			if strings.Contains(value, "income") || strings.Contains(value, "credit") || strings.Contains(value, "cr") {
				return domain.TransactionTypeIncome
			}
			if strings.Contains(value, "expense") || strings.Contains(value, "debit") || strings.Contains(value, "dr") {
				return domain.TransactionTypeExpense
			}
		}
	}

	if mapping.AmountColumn != "" {
		if amount, ok := parseAmount(row[mapping.AmountColumn]); ok {
			if amount.IsNegative() {
				return domain.TransactionTypeExpense
			}
			if amount.IsPositive() {
				return domain.TransactionTypeIncome
			}
		}
	}

	return domain.TransactionTypeExpense
}

func parseAmount(value string) (decimal.Decimal, bool) {
	cleaned := amountCleaner.Replace(strings.TrimSpace(value))
	if cleaned == "" {
		return decimal.Zero, false
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}

	return amount, true
}

func normalizePaymentMethod(value string) domain.PaymentMethod {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return domain.PaymentMethodNone
	}

	switch {
	case strings.Contains(normalized, "upi"):
		return domain.PaymentMethodUPI
	case strings.Contains(normalized, "cash"):
		return domain.PaymentMethodCash
	case strings.Contains(normalized, "netbanking"),
		strings.Contains(normalized, "net banking"),
		strings.Contains(normalized, "bank transfer"),
		strings.Contains(normalized, "neft"),
		strings.Contains(normalized, "imps"),
		strings.Contains(normalized, "rtgs"):
		return domain.PaymentMethodNetbanking
	case strings.Contains(normalized, "card"),
		strings.Contains(normalized, "debit"),
		strings.Contains(normalized, "credit"):
		return domain.PaymentMethodCard
	default:
		return domain.PaymentMethodOther
	}
}
