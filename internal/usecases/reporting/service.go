package reporting

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/finwise/finance-insights-api/infrastructure/repository"
	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

const recentTransactionsLimit = 10

// DashboardSummary é a visão consolidada do mês corrente servida pelo
// dashboard, combinando totais, distribuição por categoria, metas e o
// último digest de insights.
type DashboardSummary struct {
	Month              string                     `json:"month"`
	MonthlyIncome      float64                    `json:"monthly_income"`
	MonthlyExpenses    float64                    `json:"monthly_expenses"`
	MonthlySavings     float64                    `json:"monthly_savings"`
	SavingsRate        float64                    `json:"savings_rate"`
	CategoryBreakdown  []domain.CategoryBreakdown `json:"category_breakdown"`
	ActiveGoalTargets  float64                    `json:"active_goal_targets"`
	RecentTransactions []*domain.Transaction      `json:"recent_transactions"`
	LatestInsights     []string                   `json:"latest_insights,omitempty"`
}

type Reporter interface {
	Summary(userID string) (*DashboardSummary, error)
}

type Service struct {
	transactionRepo repository.TransactionRepository
	goalRepo        repository.GoalRepository
	snapshotRepo    repository.InsightSnapshotRepository
	now             func() time.Time
}

func NewService(
	transactionRepo repository.TransactionRepository,
	goalRepo repository.GoalRepository,
	snapshotRepo repository.InsightSnapshotRepository,
) *Service {
	return &Service{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		snapshotRepo:    snapshotRepo,
		now:             time.Now,
	}
}

func (s *Service) Summary(userID string) (*DashboardSummary, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	income, expenses, err := s.transactionRepo.MonthlyTotals(userID, monthStart, nextMonthStart)
	if err != nil {
		return nil, errors.Wrap(err, "calculating monthly totals")
	}

	savings := income - expenses
	savingsRate := 0.0
	if income > 0 {
		savingsRate = utils.RoundWithTwoDecimalPlace(savings / income * 100)
	}

	breakdown, err := s.categoryBreakdown(userID, monthStart, nextMonthStart)
	if err != nil {
		return nil, err
	}

	goalTargets, err := s.goalRepo.SumActiveTargets(userID)
	if err != nil {
		return nil, errors.Wrap(err, "summing goal targets")
	}

	recent, err := s.transactionRepo.ListRecent(userID, recentTransactionsLimit)
	if err != nil {
		return nil, errors.Wrap(err, "listing recent transactions")
	}

	summary := &DashboardSummary{
		Month:              monthStart.Format("2006-01"),
		MonthlyIncome:      income,
		MonthlyExpenses:    expenses,
		MonthlySavings:     savings,
		SavingsRate:        savingsRate,
		CategoryBreakdown:  breakdown,
		ActiveGoalTargets:  goalTargets,
		RecentTransactions: recent,
	}

	// O digest é opcional: dashboard funciona sem snapshot prévio.
	snapshot, err := s.snapshotRepo.GetLatestByUser(userID)
	if err != nil {
		return nil, errors.Wrap(err, "fetching latest insight snapshot")
	}
	if snapshot != nil {
		summary.LatestInsights = snapshot.Report.KeyInsights
	}

	return summary, nil
}

// categoryBreakdown agrega as despesas por categoria em ordem
// decrescente de valor, na mesma janela [monthStart, nextMonthStart)
// usada pelos totais mensais.
func (s *Service) categoryBreakdown(userID string, monthStart, nextMonthStart time.Time) ([]domain.CategoryBreakdown, error) {
	transactions, err := s.transactionRepo.ListByUserBetween(userID, monthStart, nextMonthStart)
	if err != nil {
		return nil, errors.Wrap(err, "listing transactions for breakdown")
	}

	totals := make(map[string]float64)
	order := make([]string, 0)
	totalExpense := 0.0

	for _, transaction := range transactions {
		if transaction.Type != domain.TransactionTypeExpense {
			continue
		}

		if _, seen := totals[transaction.Category]; !seen {
			order = append(order, transaction.Category)
		}
		totals[transaction.Category] += transaction.Amount
		totalExpense += transaction.Amount
	}

	breakdown := make([]domain.CategoryBreakdown, 0, len(order))
	for _, category := range order {
		percentage := 0.0
		if totalExpense > 0 {
			percentage = utils.RoundWithTwoDecimalPlace(totals[category] / totalExpense * 100)
		}

		breakdown = append(breakdown, domain.CategoryBreakdown{
			Category:   category,
			Amount:     totals[category],
			Percentage: percentage,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Amount > breakdown[j].Amount
	})

	return breakdown, nil
}
