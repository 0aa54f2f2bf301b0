package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finwise/finance-insights-api/internal/domain"
)

func TestSummarize(t *testing.T) {
	t.Run("totaliza por magnitude e deriva a taxa", func(t *testing.T) {
		summary := Summarize([]domain.Transaction{
			income(t, "2026-01-01", 50000),
			expense(t, "2026-01-02", "Rent", 15000),
			expense(t, "2026-01-03", "Food", 5000),
		})

		assert.Equal(t, 50000.0, summary.TotalIncome)
		assert.Equal(t, 20000.0, summary.TotalExpenses)
		assert.Equal(t, 30000.0, summary.NetSavings)
		assert.Equal(t, 60.0, summary.SavingsRate)
	})

	t.Run("sem receita a taxa é zero", func(t *testing.T) {
		summary := Summarize([]domain.Transaction{
			expense(t, "2026-01-02", "Food", 500),
		})

		assert.Equal(t, 0.0, summary.TotalIncome)
		assert.Equal(t, -500.0, summary.NetSavings)
		assert.Equal(t, 0.0, summary.SavingsRate)
	})

	t.Run("valores negativos contam pela magnitude", func(t *testing.T) {
		negative := expense(t, "2026-01-02", "Food", -800)

		summary := Summarize([]domain.Transaction{negative})

		assert.Equal(t, 800.0, summary.TotalExpenses)
	})
}
