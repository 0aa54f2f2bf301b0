package insighting

import (
	"math"
	"time"

	"github.com/finwise/finance-insights-api/internal/domain"
)

// AssessGoalImpacts avalia cada meta contra a poupança líquida do
// período analisado, tratada como poupança mensal corrente.
func AssessGoalImpacts(goals []domain.Goal, monthlySavings float64, now time.Time) []domain.GoalImpact {
	impacts := make([]domain.GoalImpact, 0, len(goals))

	for _, goal := range goals {
		remaining := goal.TargetAmount - goal.CurrentAmount

		daysLeft := math.Ceil(goal.Deadline.Sub(now).Hours() / 24)
		monthsLeft := daysLeft / 30

		currentProgress := 0.0
		if goal.TargetAmount > 0 {
			currentProgress = goal.CurrentAmount / goal.TargetAmount * 100
		}

		// Prazo vencido ou inexistente: o requisito mensal vira o
		// valor restante inteiro.
		monthlyRequirement := remaining
		if monthsLeft > 0 {
			monthlyRequirement = remaining / monthsLeft
		}

		impact := domain.GoalImpact{
			GoalName:              goal.Name,
			CurrentProgress:       currentProgress,
			MonthlyRequirement:    monthlyRequirement,
			CurrentMonthlySavings: monthlySavings,
		}

		switch {
		case monthlySavings >= monthlyRequirement && monthlySavings > 0:
			impact.RiskLevel = domain.RiskOnTrack
			impact.PredictedCompletionDate = predictCompletion(remaining, monthlySavings, now)
		case monthlySavings > 0:
			impact.RiskLevel = domain.RiskAtRisk
			impact.PredictedCompletionDate = predictCompletion(remaining, monthlySavings, now)
		default:
			impact.RiskLevel = domain.RiskOffTrack
			impact.PredictedCompletionDate = "Unable to predict (currently not saving)"
		}

		impacts = append(impacts, impact)
	}

	return impacts
}

// predictCompletion projeta a conclusão somando meses inteiros à data
// atual; frações de mês são truncadas.
func predictCompletion(remaining, monthlySavings float64, now time.Time) string {
	monthsToComplete := remaining / monthlySavings
	return now.AddDate(0, int(monthsToComplete), 0).Format(time.DateOnly)
}
