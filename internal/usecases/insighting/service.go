package insighting

import (
	"time"

	"github.com/finwise/finance-insights-api/internal/domain"
)

type Insighter interface {
	Analyze(transactions []domain.Transaction, goals []domain.Goal, dataQualityIssues []string) *domain.InsightReport
}

type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// NewServiceWithClock fixa o relógio usado nas projeções. Útil em testes.
func NewServiceWithClock(now func() time.Time) *Service {
	return &Service{now: now}
}

// Analyze executa o pipeline completo de análise sobre um lote de
// transações. O pipeline é puro: nenhuma etapa consulta banco ou relógio
// além do instante injetado.
func (s *Service) Analyze(transactions []domain.Transaction, goals []domain.Goal, dataQualityIssues []string) *domain.InsightReport {
	if len(transactions) == 0 {
		return &domain.InsightReport{
			Summary:     "No transaction data available for analysis.",
			KeyInsights: []string{"Add transactions to get personalized financial insights"},
			Risks:       []string{"No data to analyze"},
			SmartSuggestions: []string{
				"Start tracking your daily expenses to understand spending patterns",
				"Add both income and expense transactions for accurate analysis",
				"Set financial goals to stay motivated",
			},
			DataQualityIssues: dataQualityIssues,
		}
	}

	now := s.now()

	summary := Summarize(transactions)
	patterns := AnalyzeSpendingPatterns(transactions)
	behavioral := AnalyzeBehavior(transactions)
	goalImpacts := AssessGoalImpacts(goals, summary.NetSavings, now)
	predictive := Predict(transactions, summary, now)
	recommendations := BuildRecommendations(summary, patterns, behavioral, goalImpacts, predictive)

	report := FormatReport(summary, patterns, behavioral, goalImpacts, predictive, recommendations)
	report.DataQualityIssues = dataQualityIssues

	return report
}
