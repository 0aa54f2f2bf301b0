package insighting

import (
	"math"
	"sort"
	"time"

	"github.com/finwise/finance-insights-api/internal/domain"
)

// Predict compara as despesas da primeira e da segunda metade do lote
// (ordenado por data) para estimar a tendência, e extrapola a poupança
// do dia corrente até o fim do mês.
func Predict(transactions []domain.Transaction, summary domain.FinancialSummary, now time.Time) domain.PredictiveInsight {
	sorted := append([]domain.Transaction(nil), transactions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	midPoint := len(sorted) / 2
	var firstHalfExpense, secondHalfExpense float64
	for i, transaction := range sorted {
		if transaction.Type != domain.TransactionTypeExpense {
			continue
		}

		amount := math.Abs(transaction.Amount)
		if i < midPoint {
			firstHalfExpense += amount
		} else {
			secondHalfExpense += amount
		}
	}

	expenseTrend := domain.TrendStable
	trendPercentage := 0.0
	if firstHalfExpense > 0 {
		trendPercentage = (secondHalfExpense - firstHalfExpense) / firstHalfExpense * 100

		switch {
		case trendPercentage > 10:
			expenseTrend = domain.TrendIncreasing
		case trendPercentage < -10:
			expenseTrend = domain.TrendDecreasing
		}
	}

	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	dayOfMonth := now.Day()
	daysLeft := daysInMonth - dayOfMonth

	dailySavings := summary.NetSavings / float64(dayOfMonth)
	endOfMonthSavings := summary.NetSavings + dailySavings*float64(daysLeft)

	return domain.PredictiveInsight{
		EndOfMonthSavings: endOfMonthSavings,
		ExpenseTrend:      expenseTrend,
		BudgetOverrunRisk: summary.SavingsRate < 0 || expenseTrend == domain.TrendIncreasing,
		TrendPercentage:   trendPercentage,
	}
}
