package insighting

import (
	"fmt"
	"math"
	"sort"

	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

// AnalyzeSpendingPatterns agrega despesas por categoria e por dia.
// Receitas são ignoradas aqui. A ordenação é estável: empates preservam
// a ordem de primeira aparição no lote.
func AnalyzeSpendingPatterns(transactions []domain.Transaction) domain.SpendingPattern {
	categoryTotals := make(map[string]float64)
	dailyTotals := make(map[string]float64)
	categoryOrder := make([]string, 0)
	dayOrder := make([]string, 0)
	totalExpense := 0.0

	for _, transaction := range transactions {
		if transaction.Type != domain.TransactionTypeExpense {
			continue
		}

		amount := math.Abs(transaction.Amount)

		if _, seen := categoryTotals[transaction.Category]; !seen {
			categoryOrder = append(categoryOrder, transaction.Category)
		}
		categoryTotals[transaction.Category] += amount

		day := transaction.DateKey()
		if _, seen := dailyTotals[day]; !seen {
			dayOrder = append(dayOrder, day)
		}
		dailyTotals[day] += amount

		totalExpense += amount
	}

	topCategories := make([]domain.CategoryBreakdown, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		percentage := 0.0
		if totalExpense > 0 {
			percentage = categoryTotals[category] / totalExpense * 100
		}

		topCategories = append(topCategories, domain.CategoryBreakdown{
			Category:   category,
			Amount:     categoryTotals[category],
			Percentage: percentage,
		})
	}
	sort.SliceStable(topCategories, func(i, j int) bool {
		return topCategories[i].Amount > topCategories[j].Amount
	})
	if len(topCategories) > 3 {
		topCategories = topCategories[:3]
	}

	highSpendDays := make([]domain.DaySpend, 0, len(dayOrder))
	for _, day := range dayOrder {
		highSpendDays = append(highSpendDays, domain.DaySpend{
			Date:   day,
			Amount: dailyTotals[day],
		})
	}
	sort.SliceStable(highSpendDays, func(i, j int) bool {
		return highSpendDays[i].Amount > highSpendDays[j].Amount
	})
	if len(highSpendDays) > 5 {
		highSpendDays = highSpendDays[:5]
	}

	// Anomalia: dia com gasto acima do dobro da média diária. O
	// percentual reportado é relativo à média, não ao excedente.
	anomalies := make([]string, 0)
	if len(dayOrder) > 0 {
		avgDailySpend := totalExpense / float64(len(dayOrder))
		for _, day := range dayOrder {
			amount := dailyTotals[day]
			if amount > avgDailySpend*2 {
				anomalies = append(anomalies, fmt.Sprintf(
					"High spending on %s: ₹%s (%s%% above average)",
					day,
					utils.FormatMoney(amount),
					wholePercent(amount/avgDailySpend*100),
				))
			}
		}
	}

	return domain.SpendingPattern{
		TopCategories:        topCategories,
		CategoryDistribution: categoryTotals,
		HighSpendDays:        highSpendDays,
		Anomalies:            anomalies,
	}
}
