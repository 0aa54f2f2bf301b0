package insighting

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

// FormatReport monta o relatório final em linguagem natural a partir
// dos agregados. A ordem das seções e das linhas é fixa.
func FormatReport(
	summary domain.FinancialSummary,
	patterns domain.SpendingPattern,
	behavioral domain.BehavioralInsight,
	goalImpacts []domain.GoalImpact,
	predictive domain.PredictiveInsight,
	recommendations []string,
) *domain.InsightReport {
	var summaryText string
	switch {
	case summary.SavingsRate >= 20:
		summaryText = fmt.Sprintf(
			"Your financial health is strong with a %s%% savings rate. You saved ₹%s from ₹%s income after spending ₹%s.",
			utils.FormatPercent(summary.SavingsRate),
			utils.FormatMoney(summary.NetSavings),
			utils.FormatMoney(summary.TotalIncome),
			utils.FormatMoney(summary.TotalExpenses),
		)
	case summary.SavingsRate >= 0:
		summaryText = fmt.Sprintf(
			"You're saving %s%% of your income (₹%s), but there's room for improvement. Your income is ₹%s and expenses are ₹%s.",
			utils.FormatPercent(summary.SavingsRate),
			utils.FormatMoney(summary.NetSavings),
			utils.FormatMoney(summary.TotalIncome),
			utils.FormatMoney(summary.TotalExpenses),
		)
	default:
		summaryText = fmt.Sprintf(
			"Alert: You're overspending by ₹%s. Your expenses (₹%s) exceed your income (₹%s) by %s%%.",
			utils.FormatMoney(math.Abs(summary.NetSavings)),
			utils.FormatMoney(summary.TotalExpenses),
			utils.FormatMoney(summary.TotalIncome),
			utils.FormatPercent(math.Abs(summary.SavingsRate)),
		)
	}

	keyInsights := make([]string, 0)

	if len(patterns.TopCategories) > 0 {
		parts := make([]string, 0, len(patterns.TopCategories))
		for _, category := range patterns.TopCategories {
			parts = append(parts, fmt.Sprintf(
				"%s (₹%s, %s%%)",
				category.Category,
				utils.FormatMoney(category.Amount),
				utils.FormatPercent(category.Percentage),
			))
		}
		keyInsights = append(keyInsights, "Top spending categories: "+strings.Join(parts, ", "))
	}

	if behavioral.WeekendVsWeekday.WeekendPercentage > 0 {
		keyInsights = append(keyInsights, fmt.Sprintf(
			"Weekend spending is %s%% of total expenses (₹%s)",
			wholePercent(behavioral.WeekendVsWeekday.WeekendPercentage),
			utils.FormatMoney(behavioral.WeekendVsWeekday.Weekend),
		))
	}

	if len(behavioral.PreferredPaymentMethods) > 0 {
		topMethod := behavioral.PreferredPaymentMethods[0]
		keyInsights = append(keyInsights, fmt.Sprintf(
			"Most used payment method: %s (%s%% of transactions)",
			topMethod.Method,
			wholePercent(topMethod.Percentage),
		))
	}

	trendLine := fmt.Sprintf("Expense trend: %s", predictive.ExpenseTrend)
	if predictive.TrendPercentage != 0 {
		sign := ""
		if predictive.TrendPercentage > 0 {
			sign = "+"
		}
		trendLine += fmt.Sprintf(" (%s%s%%)", sign, utils.FormatPercent(predictive.TrendPercentage))
	}
	keyInsights = append(keyInsights, trendLine)

	if predictive.EndOfMonthSavings != summary.NetSavings {
		keyInsights = append(keyInsights, fmt.Sprintf(
			"Projected end-of-month savings: ₹%s",
			utils.FormatMoney(predictive.EndOfMonthSavings),
		))
	}

	for _, goal := range goalImpacts {
		keyInsights = append(keyInsights, fmt.Sprintf(
			"%q: %s%% complete, %s",
			goal.GoalName,
			wholePercent(goal.CurrentProgress),
			goal.RiskLevel,
		))
	}

	risks := make([]string, 0)

	if summary.SavingsRate < 0 {
		risks = append(risks, "Critical: Overspending detected - expenses exceed income")
	}

	if predictive.BudgetOverrunRisk && summary.SavingsRate >= 0 {
		risks = append(risks, "Budget overrun risk - expenses are trending upward")
	}

	if len(patterns.Anomalies) > 0 {
		risks = append(risks, fmt.Sprintf("%d unusual high-spend day(s) detected", len(patterns.Anomalies)))
	}

	for _, goal := range goalImpacts {
		switch goal.RiskLevel {
		case domain.RiskOffTrack:
			risks = append(risks, fmt.Sprintf("Goal %q is off track - not currently saving enough", goal.GoalName))
		case domain.RiskAtRisk:
			risks = append(risks, fmt.Sprintf(
				"Goal %q is at risk - need ₹%s more per month",
				goal.GoalName,
				utils.FormatMoney(goal.MonthlyRequirement-goal.CurrentMonthlySavings),
			))
		}
	}

	if len(risks) == 0 {
		risks = append(risks, "No major risks detected")
	}

	return &domain.InsightReport{
		Summary:          summaryText,
		KeyInsights:      keyInsights,
		Risks:            risks,
		SmartSuggestions: recommendations,
	}
}

func wholePercent(value float64) string {
	return strconv.FormatFloat(value, 'f', 0, 64)
}
