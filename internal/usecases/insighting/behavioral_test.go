package insighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/finance-insights-api/internal/domain"
)

func TestAnalyzeBehaviorWeekendAndMonthlySplit(t *testing.T) {
	// 2026-01-05 segunda, 2026-01-15 quinta, 2026-01-25 domingo.
	behavioral := AnalyzeBehavior([]domain.Transaction{
		expense(t, "2026-01-05", "Food", 100),
		expense(t, "2026-01-15", "Food", 50),
		expense(t, "2026-01-25", "Travel", 200),
	})

	assert.Equal(t, 200.0, behavioral.WeekendVsWeekday.Weekend)
	assert.Equal(t, 150.0, behavioral.WeekendVsWeekday.Weekday)
	assert.InDelta(t, 57.14, behavioral.WeekendVsWeekday.WeekendPercentage, 0.01)

	// O dia 15 não entra em nenhum dos dois grupos mensais.
	assert.Equal(t, 100.0, behavioral.MonthlyPattern.StartOfMonth)
	assert.Equal(t, 200.0, behavioral.MonthlyPattern.EndOfMonth)
}

func TestAnalyzeBehaviorMonthlyBucketBoundaries(t *testing.T) {
	behavioral := AnalyzeBehavior([]domain.Transaction{
		expense(t, "2026-01-10", "Food", 10),
		expense(t, "2026-01-11", "Food", 20),
		expense(t, "2026-01-20", "Food", 40),
		expense(t, "2026-01-21", "Food", 80),
	})

	assert.Equal(t, 10.0, behavioral.MonthlyPattern.StartOfMonth)
	assert.Equal(t, 80.0, behavioral.MonthlyPattern.EndOfMonth)
}

func TestAnalyzeBehaviorPaymentMethods(t *testing.T) {
	salary := income(t, "2026-01-01", 50000)
	salary.PaymentMethod = domain.PaymentMethodNetbanking

	food := expense(t, "2026-01-02", "Food", 100)
	food.PaymentMethod = domain.PaymentMethodUPI
	fuel := expense(t, "2026-01-03", "Fuel", 200)
	fuel.PaymentMethod = domain.PaymentMethodUPI

	// Sem meio de pagamento: fora da contagem.
	rent := expense(t, "2026-01-04", "Rent", 15000)

	behavioral := AnalyzeBehavior([]domain.Transaction{salary, food, fuel, rent})

	require.Len(t, behavioral.PreferredPaymentMethods, 2)
	assert.Equal(t, domain.PaymentMethodUPI, behavioral.PreferredPaymentMethods[0].Method)
	assert.Equal(t, 2, behavioral.PreferredPaymentMethods[0].Count)
	assert.InDelta(t, 66.66, behavioral.PreferredPaymentMethods[0].Percentage, 0.01)
	assert.Equal(t, domain.PaymentMethodNetbanking, behavioral.PreferredPaymentMethods[1].Method)
	assert.Equal(t, 1, behavioral.PreferredPaymentMethods[1].Count)
}

func TestDetectRecurring(t *testing.T) {
	behavioral := AnalyzeBehavior([]domain.Transaction{
		expense(t, "2026-01-01", "Gym", 500),
		expense(t, "2026-01-08", "Gym", 500),
		expense(t, "2026-01-01", "Rent", 15000),
		expense(t, "2026-02-01", "Rent", 15000),
		expense(t, "2026-01-01", "Vacation", 20000),
		expense(t, "2026-03-15", "Vacation", 30000),
		expense(t, "2026-01-05", "Gadget", 9000),
	})

	require.Len(t, behavioral.RecurringExpenses, 2)

	gym := behavioral.RecurringExpenses[0]
	assert.Equal(t, "Gym", gym.Category)
	assert.Equal(t, domain.FrequencyWeekly, gym.Frequency)
	assert.Equal(t, 500.0, gym.AverageAmount)

	rent := behavioral.RecurringExpenses[1]
	assert.Equal(t, "Rent", rent.Category)
	assert.Equal(t, domain.FrequencyMonthly, rent.Frequency)
	assert.Equal(t, 15000.0, rent.AverageAmount)
}
