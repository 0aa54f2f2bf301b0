package insighting

import (
	"math"
	"sort"
	"time"

	"github.com/finwise/finance-insights-api/internal/domain"
)

// AnalyzeBehavior extrai hábitos do lote: fim de semana versus dias
// úteis, início versus fim de mês, meios de pagamento preferidos e
// despesas recorrentes. Receitas contam zero nos gastos mas entram na
// contagem de meios de pagamento.
func AnalyzeBehavior(transactions []domain.Transaction) domain.BehavioralInsight {
	var weekendSpend, weekdaySpend float64
	var startOfMonthSpend, endOfMonthSpend float64

	paymentCounts := make(map[domain.PaymentMethod]int)
	paymentOrder := make([]domain.PaymentMethod, 0)
	categoryDates := make(map[string][]time.Time)
	categoryTotals := make(map[string]float64)
	categoryOrder := make([]string, 0)

	for _, transaction := range transactions {
		amount := 0.0
		if transaction.Type == domain.TransactionTypeExpense {
			amount = math.Abs(transaction.Amount)
		}

		weekday := transaction.Date.Weekday()
		if weekday == time.Saturday || weekday == time.Sunday {
			weekendSpend += amount
		} else {
			weekdaySpend += amount
		}

		// Dias 11-20 ficam fora dos dois grupos mensais.
		dayOfMonth := transaction.Date.Day()
		if dayOfMonth <= 10 {
			startOfMonthSpend += amount
		} else if dayOfMonth >= 21 {
			endOfMonthSpend += amount
		}

		if transaction.PaymentMethod != domain.PaymentMethodNone {
			if _, seen := paymentCounts[transaction.PaymentMethod]; !seen {
				paymentOrder = append(paymentOrder, transaction.PaymentMethod)
			}
			paymentCounts[transaction.PaymentMethod]++
		}

		if transaction.Type == domain.TransactionTypeExpense {
			if _, seen := categoryDates[transaction.Category]; !seen {
				categoryOrder = append(categoryOrder, transaction.Category)
			}
			categoryDates[transaction.Category] = append(categoryDates[transaction.Category], transaction.Date)
			categoryTotals[transaction.Category] += amount
		}
	}

	totalSpend := weekendSpend + weekdaySpend
	weekendPercentage := 0.0
	if totalSpend > 0 {
		weekendPercentage = weekendSpend / totalSpend * 100
	}

	totalCounted := 0
	for _, count := range paymentCounts {
		totalCounted += count
	}

	preferred := make([]domain.PaymentMethodUsage, 0, len(paymentOrder))
	for _, method := range paymentOrder {
		percentage := 0.0
		if totalCounted > 0 {
			percentage = float64(paymentCounts[method]) / float64(totalCounted) * 100
		}

		preferred = append(preferred, domain.PaymentMethodUsage{
			Method:     method,
			Count:      paymentCounts[method],
			Percentage: percentage,
		})
	}
	sort.SliceStable(preferred, func(i, j int) bool {
		return preferred[i].Count > preferred[j].Count
	})

	return domain.BehavioralInsight{
		WeekendVsWeekday: domain.WeekendVsWeekday{
			Weekend:           weekendSpend,
			Weekday:           weekdaySpend,
			WeekendPercentage: weekendPercentage,
		},
		MonthlyPattern: domain.MonthlyPattern{
			StartOfMonth: startOfMonthSpend,
			EndOfMonth:   endOfMonthSpend,
		},
		PreferredPaymentMethods: preferred,
		RecurringExpenses:       detectRecurring(categoryOrder, categoryDates, categoryTotals),
	}
}

// detectRecurring classifica categorias com duas ou mais despesas pelo
// intervalo médio entre ocorrências. Categorias com intervalo médio
// acima de 31 dias são consideradas ocasionais e ficam de fora.
func detectRecurring(categoryOrder []string, categoryDates map[string][]time.Time, categoryTotals map[string]float64) []domain.RecurringExpense {
	recurring := make([]domain.RecurringExpense, 0)

	for _, category := range categoryOrder {
		dates := categoryDates[category]
		if len(dates) < 2 {
			continue
		}

		sorted := append([]time.Time(nil), dates...)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Before(sorted[j])
		})

		var intervalSum float64
		for i := 1; i < len(sorted); i++ {
			intervalSum += sorted[i].Sub(sorted[i-1]).Hours() / 24
		}
		avgInterval := intervalSum / float64(len(sorted)-1)

		var frequency domain.Frequency
		switch {
		case avgInterval <= 7:
			frequency = domain.FrequencyWeekly
		case avgInterval <= 14:
			frequency = domain.FrequencyBiWeekly
		case avgInterval <= 31:
			frequency = domain.FrequencyMonthly
		default:
			continue
		}

		recurring = append(recurring, domain.RecurringExpense{
			Category:      category,
			Frequency:     frequency,
			AverageAmount: categoryTotals[category] / float64(len(sorted)),
		})
	}

	return recurring
}
