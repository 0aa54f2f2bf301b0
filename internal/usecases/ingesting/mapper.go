package ingesting

import (
	"strings"

	"github.com/finwise/finance-insights-api/internal/domain"
)

// Palavras-chave por papel semântico, em ordem de prioridade. A primeira
// coluna cujo nome normalizado contém a palavra-chave vence.
var (
	dateKeywords = []string{
		"date", "transaction date", "posted date", "datetime", "trans date", "txn date",
	}
	categoryKeywords = []string{
		"category", "type", "merchant category", "expense category", "merchant", "description",
	}
	amountKeywords = []string{
		"amount", "value", "total", "sum", "debit", "credit", "transaction amount",
	}
	typeKeywords = []string{
		"transaction type", "type", "debit/credit", "dr/cr", "entry type",
	}
	descriptionKeywords = []string{
		"description", "details", "note", "memo", "remarks", "transaction details", "merchant",
	}
	paymentMethodKeywords = []string{
		"payment method", "card type", "mode", "payment mode", "instrument",
	}
)

// MapColumns identifica qual coluna do cabeçalho cumpre cada papel
// semântico. Papéis são resolvidos de forma independente: o mesmo
// cabeçalho pode atender a mais de um papel, e um papel sem coluna
// correspondente fica vazio (não é erro por si só).
func MapColumns(headers []string) domain.ColumnMapping {
	return domain.ColumnMapping{
		DateColumn:          findColumn(headers, dateKeywords),
		CategoryColumn:      findColumn(headers, categoryKeywords),
		AmountColumn:        findColumn(headers, amountKeywords),
		TypeColumn:          findColumn(headers, typeKeywords),
		DescriptionColumn:   findColumn(headers, descriptionKeywords),
		PaymentMethodColumn: findColumn(headers, paymentMethodKeywords),
	}
}

// findColumn retorna o cabeçalho original (não normalizado) da primeira
// coluna que contém alguma das palavras-chave, respeitando a prioridade
// da lista.
func findColumn(headers []string, keywords []string) string {
	normalized := make([]string, len(headers))
	for i, header := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(header))
	}

	for _, keyword := range keywords {
		for i, header := range normalized {
			if strings.Contains(header, keyword) {
				return headers[i]
			}
		}
	}

	return ""
}
