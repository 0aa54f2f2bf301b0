package domain

import "time"

type FinancialSummary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetSavings    float64 `json:"netSavings"`
	SavingsRate   float64 `json:"savingsRate"`
}

type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type DaySpend struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type SpendingPattern struct {
	TopCategories        []CategoryBreakdown `json:"topCategories"`
	CategoryDistribution map[string]float64  `json:"categoryDistribution"`
	HighSpendDays        []DaySpend          `json:"highSpendDays"`
	Anomalies            []string            `json:"anomalies"`
}

type WeekendVsWeekday struct {
	Weekend           float64 `json:"weekend"`
	Weekday           float64 `json:"weekday"`
	WeekendPercentage float64 `json:"weekendPercentage"`
}

// MonthlyPattern separa os gastos de início (dias 1-10) e fim de mês
// (dias 21-31). Dias 11-20 ficam fora dos dois grupos.
type MonthlyPattern struct {
	StartOfMonth float64 `json:"startOfMonth"`
	EndOfMonth   float64 `json:"endOfMonth"`
}

type PaymentMethodUsage struct {
	Method     PaymentMethod `json:"method"`
	Count      int           `json:"count"`
	Percentage float64       `json:"percentage"`
}

// Frequency classifica o intervalo médio entre transações de uma categoria.
type Frequency string

const (
	FrequencyWeekly     Frequency = "Weekly"
	FrequencyBiWeekly   Frequency = "Bi-weekly"
	FrequencyMonthly    Frequency = "Monthly"
	FrequencyOccasional Frequency = "Occasional"
)

type RecurringExpense struct {
	Category      string    `json:"category"`
	Frequency     Frequency `json:"frequency"`
	AverageAmount float64   `json:"averageAmount"`
}

type BehavioralInsight struct {
	WeekendVsWeekday        WeekendVsWeekday     `json:"weekendVsWeekday"`
	MonthlyPattern          MonthlyPattern       `json:"monthlyPattern"`
	PreferredPaymentMethods []PaymentMethodUsage `json:"preferredPaymentMethods"`
	RecurringExpenses       []RecurringExpense   `json:"recurringExpenses"`
}

type RiskLevel string

const (
	RiskOnTrack  RiskLevel = "On Track"
	RiskAtRisk   RiskLevel = "At Risk"
	RiskOffTrack RiskLevel = "Off Track"
)

type GoalImpact struct {
	GoalName                string    `json:"goalName"`
	CurrentProgress         float64   `json:"currentProgress"`
	PredictedCompletionDate string    `json:"predictedCompletionDate"`
	RiskLevel               RiskLevel `json:"riskLevel"`
	MonthlyRequirement      float64   `json:"monthlyRequirement"`
	CurrentMonthlySavings   float64   `json:"currentMonthlySavings"`
}

type ExpenseTrend string

const (
	TrendIncreasing ExpenseTrend = "Increasing"
	TrendDecreasing ExpenseTrend = "Decreasing"
	TrendStable     ExpenseTrend = "Stable"
)

type PredictiveInsight struct {
	EndOfMonthSavings float64      `json:"endOfMonthSavings"`
	ExpenseTrend      ExpenseTrend `json:"expenseTrend"`
	BudgetOverrunRisk bool         `json:"budgetOverrunRisk"`
	TrendPercentage   float64      `json:"trendPercentage"`
}

// InsightReport é a saída final do motor de análise, pronta para
// serialização direta na resposta HTTP.
type InsightReport struct {
	Summary           string   `json:"summary"`
	KeyInsights       []string `json:"keyInsights"`
	Risks             []string `json:"risks"`
	SmartSuggestions  []string `json:"smartSuggestions"`
	DataQualityIssues []string `json:"dataQualityIssues,omitempty"`
}

// InsightSnapshot é um relatório pré-calculado pelo digest agendado,
// servido pelo dashboard sem recomputar a análise.
type InsightSnapshot struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Report      InsightReport `json:"report"`
}
