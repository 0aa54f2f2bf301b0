package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finwise/finance-insights-api/internal/domain"
)

func TestPredict(t *testing.T) {
	now := mustDate(t, "2026-03-10")

	t.Run("segunda metade mais cara indica tendência de alta", func(t *testing.T) {
		predictive := Predict([]domain.Transaction{
			expense(t, "2026-03-01", "Food", 100),
			expense(t, "2026-03-02", "Food", 100),
			expense(t, "2026-03-03", "Food", 150),
			expense(t, "2026-03-04", "Food", 150),
		}, domain.FinancialSummary{NetSavings: 1000, SavingsRate: 10}, now)

		assert.Equal(t, domain.TrendIncreasing, predictive.ExpenseTrend)
		assert.Equal(t, 50.0, predictive.TrendPercentage)
		assert.True(t, predictive.BudgetOverrunRisk)
	})

	t.Run("segunda metade mais barata indica tendência de queda", func(t *testing.T) {
		predictive := Predict([]domain.Transaction{
			expense(t, "2026-03-01", "Food", 300),
			expense(t, "2026-03-02", "Food", 300),
			expense(t, "2026-03-03", "Food", 100),
			expense(t, "2026-03-04", "Food", 100),
		}, domain.FinancialSummary{NetSavings: 1000, SavingsRate: 10}, now)

		assert.Equal(t, domain.TrendDecreasing, predictive.ExpenseTrend)
		assert.InDelta(t, -66.66, predictive.TrendPercentage, 0.01)
		assert.False(t, predictive.BudgetOverrunRisk)
	})

	t.Run("variação dentro da faixa é estável", func(t *testing.T) {
		predictive := Predict([]domain.Transaction{
			expense(t, "2026-03-01", "Food", 100),
			expense(t, "2026-03-02", "Food", 105),
		}, domain.FinancialSummary{NetSavings: 1000, SavingsRate: 10}, now)

		assert.Equal(t, domain.TrendStable, predictive.ExpenseTrend)
		assert.Equal(t, 5.0, predictive.TrendPercentage)
	})

	t.Run("primeira metade sem despesa força tendência estável", func(t *testing.T) {
		predictive := Predict([]domain.Transaction{
			expense(t, "2026-03-05", "Food", 500),
		}, domain.FinancialSummary{NetSavings: 1000, SavingsRate: 10}, now)

		assert.Equal(t, domain.TrendStable, predictive.ExpenseTrend)
		assert.Equal(t, 0.0, predictive.TrendPercentage)
	})

	t.Run("extrapola a poupança diária até o fim do mês", func(t *testing.T) {
		// Dia 10 de março: 21 dias restantes, poupança diária de 100.
		predictive := Predict([]domain.Transaction{
			expense(t, "2026-03-05", "Food", 500),
		}, domain.FinancialSummary{NetSavings: 1000, SavingsRate: 10}, now)

		assert.Equal(t, 3100.0, predictive.EndOfMonthSavings)
	})

	t.Run("poupança negativa marca risco de estouro", func(t *testing.T) {
		predictive := Predict([]domain.Transaction{
			expense(t, "2026-03-05", "Food", 500),
		}, domain.FinancialSummary{NetSavings: -500, SavingsRate: -20}, now)

		assert.True(t, predictive.BudgetOverrunRisk)
	})
}
