package insighting

import (
	"fmt"

	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

const maxRecommendations = 5

// BuildRecommendations aplica as regras de sugestão em ordem fixa e
// corta o resultado em cinco itens. Sem nenhuma regra disparada, três
// sugestões genéricas entram no lugar; com uma ou duas, uma sugestão de
// metas completa a lista.
func BuildRecommendations(
	summary domain.FinancialSummary,
	patterns domain.SpendingPattern,
	behavioral domain.BehavioralInsight,
	goalImpacts []domain.GoalImpact,
	predictive domain.PredictiveInsight,
) []string {
	recommendations := make([]string, 0, maxRecommendations)

	if summary.SavingsRate < 0 {
		if len(patterns.TopCategories) > 0 {
			top := patterns.TopCategories[0]
			recommendations = append(recommendations, fmt.Sprintf(
				"You're spending more than you earn. Immediately reduce expenses in your top category (%s) by at least ₹%s to break even.",
				top.Category,
				utils.FormatMoney(top.Amount*0.2),
			))
		}
	} else if summary.SavingsRate < 20 {
		additionalSavingsNeeded := summary.TotalIncome*0.2 - summary.NetSavings
		recommendations = append(recommendations, fmt.Sprintf(
			"Increase your savings rate from %s%% to 20%% by saving an additional ₹%s per month.",
			utils.FormatPercent(summary.SavingsRate),
			utils.FormatMoney(additionalSavingsNeeded),
		))
	}

	if len(patterns.TopCategories) > 0 && patterns.TopCategories[0].Percentage > 40 {
		top := patterns.TopCategories[0]
		recommendations = append(recommendations, fmt.Sprintf(
			"%s takes up %s%% of your spending. Look for cheaper alternatives or reduce frequency to save ₹%s monthly.",
			top.Category,
			wholePercent(top.Percentage),
			utils.FormatMoney(top.Amount*0.15),
		))
	}

	if behavioral.WeekendVsWeekday.WeekendPercentage > 50 {
		recommendations = append(recommendations, fmt.Sprintf(
			"You spend %s%% of your money on weekends. Plan weekend activities in advance to save approximately ₹%s monthly.",
			wholePercent(behavioral.WeekendVsWeekday.WeekendPercentage),
			utils.FormatMoney(behavioral.WeekendVsWeekday.Weekend*0.2),
		))
	}

	for _, goal := range goalImpacts {
		switch goal.RiskLevel {
		case domain.RiskAtRisk:
			shortfall := goal.MonthlyRequirement - goal.CurrentMonthlySavings
			recommendations = append(recommendations, fmt.Sprintf(
				"To reach %q on time, increase monthly savings by ₹%s. Consider automating this amount right after receiving income.",
				goal.GoalName,
				utils.FormatMoney(shortfall),
			))
		case domain.RiskOffTrack:
			recommendations = append(recommendations, fmt.Sprintf(
				"%q is off track. Start with small savings of ₹%s/month and increase gradually.",
				goal.GoalName,
				utils.FormatMoney(goal.MonthlyRequirement*0.5),
			))
		}
	}

	if predictive.ExpenseTrend == domain.TrendIncreasing && predictive.TrendPercentage > 20 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Your expenses are increasing by %s%%. Review recent purchases and set spending limits for the next two weeks to reverse this trend.",
			wholePercent(predictive.TrendPercentage),
		))
	}

	if len(behavioral.RecurringExpenses) > 0 {
		top := behavioral.RecurringExpenses[0]
		for _, candidate := range behavioral.RecurringExpenses[1:] {
			if candidate.AverageAmount > top.AverageAmount {
				top = candidate
			}
		}
		recommendations = append(recommendations, fmt.Sprintf(
			"You have %d recurring expenses. Review %q (%s, ₹%s) for potential subscription savings or plan downgrades.",
			len(behavioral.RecurringExpenses),
			top.Category,
			top.Frequency,
			utils.FormatMoney(top.AverageAmount),
		))
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Set up automated savings transfers for 20% of your income immediately after receiving it.",
			"Track daily expenses using this app to identify unnecessary spending patterns.",
			"Create an emergency fund goal equal to 6 months of expenses for financial security.",
		)
	} else if len(recommendations) < 3 {
		recommendations = append(recommendations, "Create specific financial goals to stay motivated and track your progress effectively.")
	}

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return recommendations
}
