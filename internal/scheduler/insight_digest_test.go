package scheduler

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/finwise/finance-insights-api/infrastructure/repository/mocks"
	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/internal/usecases/insighting"
)

func TestInsightDigestService_RunDigest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepository(ctrl)
	mockTransactionRepo := mocks.NewMockTransactionRepository(ctrl)
	mockGoalRepo := mocks.NewMockGoalRepository(ctrl)
	mockSnapshotRepo := mocks.NewMockInsightSnapshotRepository(ctrl)

	service := &InsightDigestService{
		userRepo:        mockUserRepo,
		transactionRepo: mockTransactionRepo,
		goalRepo:        mockGoalRepo,
		snapshotRepo:    mockSnapshotRepo,
		insighter:       insighting.NewService(),
		config: InsightDigestConfig{
			LookbackDays: 30,
			Enabled:      true,
		},
	}

	t.Run("Usuários ativos - deve gerar e salvar um snapshot por usuário", func(t *testing.T) {
		mockUserRepo.EXPECT().
			ListActiveIDs().
			Return([]string{"user-1", "user-2"}, nil)

		transactions := []domain.Transaction{
			{
				Type:     domain.TransactionTypeIncome,
				Amount:   50000,
				Category: "Salary",
				Date:     time.Now().AddDate(0, 0, -10),
			},
			{
				Type:     domain.TransactionTypeExpense,
				Amount:   15000,
				Category: "Rent",
				Date:     time.Now().AddDate(0, 0, -5),
			},
		}

		for _, userID := range []string{"user-1", "user-2"} {
			mockTransactionRepo.EXPECT().
				ListByUserSince(userID, gomock.Any()).
				Return(transactions, nil)

			mockGoalRepo.EXPECT().
				ListActiveByUser(userID).
				Return(nil, nil)

			mockSnapshotRepo.EXPECT().
				SaveOrUpdate(gomock.Any()).
				DoAndReturn(func(snapshot *domain.InsightSnapshot) error {
					assert.NotEmpty(t, snapshot.ID)
					assert.False(t, snapshot.GeneratedAt.IsZero())
					assert.NotEmpty(t, snapshot.Report.Summary)
					assert.NotEmpty(t, snapshot.Report.KeyInsights)
					return nil
				})
		}

		err := service.RunDigest()

		assert.NoError(t, err)
	})

	t.Run("Falha em um usuário - deve continuar com os demais", func(t *testing.T) {
		mockUserRepo.EXPECT().
			ListActiveIDs().
			Return([]string{"user-1", "user-2"}, nil)

		mockTransactionRepo.EXPECT().
			ListByUserSince("user-1", gomock.Any()).
			Return(nil, errors.New("connection refused"))

		mockTransactionRepo.EXPECT().
			ListByUserSince("user-2", gomock.Any()).
			Return(nil, nil)

		mockGoalRepo.EXPECT().
			ListActiveByUser("user-2").
			Return(nil, nil)

		mockSnapshotRepo.EXPECT().
			SaveOrUpdate(gomock.Any()).
			Return(nil)

		err := service.RunDigest()

		assert.NoError(t, err)
	})

	t.Run("Sem usuários ativos - não deve processar nada", func(t *testing.T) {
		mockUserRepo.EXPECT().
			ListActiveIDs().
			Return(nil, nil)

		err := service.RunDigest()

		assert.NoError(t, err)
	})
}
