package insighting

import (
	"math"

	"github.com/finwise/finance-insights-api/internal/domain"
)

// Summarize totaliza receitas e despesas pela magnitude dos valores e
// deriva a taxa de poupança do período.
func Summarize(transactions []domain.Transaction) domain.FinancialSummary {
	var totalIncome, totalExpenses float64

	for _, transaction := range transactions {
		amount := math.Abs(transaction.Amount)
		if transaction.Type == domain.TransactionTypeIncome {
			totalIncome += amount
		} else {
			totalExpenses += amount
		}
	}

	netSavings := totalIncome - totalExpenses

	savingsRate := 0.0
	if totalIncome > 0 {
		savingsRate = netSavings / totalIncome * 100
	}

	return domain.FinancialSummary{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetSavings:    netSavings,
		SavingsRate:   savingsRate,
	}
}
