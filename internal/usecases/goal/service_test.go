package goal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/finwise/finance-insights-api/infrastructure/repository/mocks"
	"github.com/finwise/finance-insights-api/internal/domain"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGoalRepo := mocks.NewMockGoalRepository(ctrl)
	service := NewService(mockGoalRepo)

	deadline := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		goal     *domain.Goal
		setup    func()
		validate func(t *testing.T, result *domain.Goal, err error)
	}{
		{
			name: "Meta sem tipo nem status - deve aplicar padrões saving e active",
			goal: &domain.Goal{
				Name:         "Viagem",
				TargetAmount: 30000,
				Deadline:     deadline,
			},
			setup: func() {
				mockGoalRepo.EXPECT().
					Create(gomock.Any()).
					Return(nil)
			},
			validate: func(t *testing.T, result *domain.Goal, err error) {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.ID)
				assert.Equal(t, "user-1", result.UserID)
				assert.Equal(t, domain.GoalTypeSaving, result.Type)
				assert.Equal(t, domain.GoalStatusActive, result.Status)
			},
		},
		{
			name: "Nome ausente - deve retornar erro de dados obrigatórios",
			goal: &domain.Goal{
				TargetAmount: 30000,
				Deadline:     deadline,
			},
			setup: func() {},
			validate: func(t *testing.T, result *domain.Goal, err error) {
				assert.ErrorIs(t, err, ErrMissingRequiredData)
				assert.Nil(t, result)
			},
		},
		{
			name: "Alvo zerado - deve retornar erro de alvo inválido",
			goal: &domain.Goal{
				Name:     "Viagem",
				Deadline: deadline,
			},
			setup: func() {},
			validate: func(t *testing.T, result *domain.Goal, err error) {
				assert.ErrorIs(t, err, ErrInvalidTarget)
				assert.Nil(t, result)
			},
		},
		{
			name: "Tipo desconhecido - deve retornar erro de tipo",
			goal: &domain.Goal{
				Name:         "Viagem",
				TargetAmount: 30000,
				Deadline:     deadline,
				Type:         "retirement",
			},
			setup: func() {},
			validate: func(t *testing.T, result *domain.Goal, err error) {
				assert.ErrorIs(t, err, ErrInvalidType)
				assert.Nil(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			result, err := service.Create("user-1", tt.goal)

			tt.validate(t, result, err)
		})
	}
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGoalRepo := mocks.NewMockGoalRepository(ctrl)

	// Relógio fixo para tornar o cálculo de dias restantes determinístico.
	now := time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC)
	service := &Service{
		goalRepo: mockGoalRepo,
		now:      func() time.Time { return now },
	}

	goals := []*domain.Goal{
		{
			ID:            "goal-1",
			UserID:        "user-1",
			Name:          "Emergency Fund",
			TargetAmount:  100000,
			CurrentAmount: 25000,
			Deadline:      time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			Type:          domain.GoalTypeEmergency,
			Status:        domain.GoalStatusActive,
		},
		{
			ID:            "goal-2",
			UserID:        "user-1",
			Name:          "Laptop",
			TargetAmount:  80000,
			CurrentAmount: 80000,
			Deadline:      time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
			Type:          domain.GoalTypeSaving,
			Status:        domain.GoalStatusActive,
		},
	}

	mockGoalRepo.EXPECT().
		ListByUser("user-1", domain.GoalStatus("")).
		Return(goals, nil)

	overviews, err := service.List("user-1", "")

	assert.NoError(t, err)
	assert.Len(t, overviews, 2)

	assert.Equal(t, 25.0, overviews[0].Progress)
	assert.Equal(t, 150, overviews[0].DaysLeft)
	assert.Equal(t, domain.GoalStatusActive, overviews[0].DisplayStatus)

	// Meta com alvo alcançado aparece como concluída na listagem.
	assert.Equal(t, 100.0, overviews[1].Progress)
	assert.Equal(t, domain.GoalStatusCompleted, overviews[1].DisplayStatus)
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGoalRepo := mocks.NewMockGoalRepository(ctrl)
	service := NewService(mockGoalRepo)

	stored := func() *domain.Goal {
		return &domain.Goal{
			ID:            "goal-1",
			UserID:        "user-1",
			Name:          "Emergency Fund",
			TargetAmount:  100000,
			CurrentAmount: 25000,
			Deadline:      time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
			Type:          domain.GoalTypeEmergency,
			Status:        domain.GoalStatusActive,
		}
	}

	newAmount := 40000.0
	completed := domain.GoalStatusCompleted

	tests := []struct {
		name     string
		userID   string
		request  *domain.UpdateGoalRequest
		setup    func()
		validate func(t *testing.T, result *domain.Goal, err error)
	}{
		{
			name:   "Atualização parcial - deve aplicar valor atual e status",
			userID: "user-1",
			request: &domain.UpdateGoalRequest{
				ID:            "goal-1",
				CurrentAmount: &newAmount,
				Status:        &completed,
			},
			setup: func() {
				mockGoalRepo.EXPECT().GetByID("goal-1").Return(stored(), nil)
				mockGoalRepo.EXPECT().Update(gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, result *domain.Goal, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 40000.0, result.CurrentAmount)
				assert.Equal(t, domain.GoalStatusCompleted, result.Status)
				assert.Equal(t, "Emergency Fund", result.Name)
			},
		},
		{
			name:    "Meta inexistente - deve retornar erro de não encontrada",
			userID:  "user-1",
			request: &domain.UpdateGoalRequest{ID: "goal-missing"},
			setup: func() {
				mockGoalRepo.EXPECT().GetByID("goal-missing").Return(nil, nil)
			},
			validate: func(t *testing.T, result *domain.Goal, err error) {
				assert.ErrorIs(t, err, ErrNotFound)
				assert.Nil(t, result)
			},
		},
		{
			name:    "Meta de outro usuário - deve retornar erro de posse",
			userID:  "user-2",
			request: &domain.UpdateGoalRequest{ID: "goal-1"},
			setup: func() {
				mockGoalRepo.EXPECT().GetByID("goal-1").Return(stored(), nil)
			},
			validate: func(t *testing.T, result *domain.Goal, err error) {
				assert.ErrorIs(t, err, ErrNotOwner)
				assert.Nil(t, result)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			result, err := service.Update(tt.userID, tt.request)

			tt.validate(t, result, err)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGoalRepo := mocks.NewMockGoalRepository(ctrl)
	service := NewService(mockGoalRepo)

	stored := &domain.Goal{
		ID:           "goal-1",
		UserID:       "user-1",
		Name:         "Emergency Fund",
		TargetAmount: 100000,
		Deadline:     time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
		Type:         domain.GoalTypeEmergency,
		Status:       domain.GoalStatusActive,
	}

	t.Run("Dono da meta - deve remover", func(t *testing.T) {
		mockGoalRepo.EXPECT().GetByID("goal-1").Return(stored, nil)
		mockGoalRepo.EXPECT().Delete("goal-1").Return(nil)

		err := service.Delete("user-1", "goal-1")

		assert.NoError(t, err)
	})

	t.Run("Outro usuário - não deve remover", func(t *testing.T) {
		mockGoalRepo.EXPECT().GetByID("goal-1").Return(stored, nil)

		err := service.Delete("user-2", "goal-1")

		assert.ErrorIs(t, err, ErrNotOwner)
	})
}
