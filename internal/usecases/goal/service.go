package goal

import (
	"math"
	"strings"
	"time"

	"github.com/finwise/finance-insights-api/infrastructure/repository"
	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

type GoalService interface {
	Create(userID string, goal *domain.Goal) (*domain.Goal, error)
	List(userID string, status domain.GoalStatus) ([]*domain.GoalOverview, error)
	Update(userID string, request *domain.UpdateGoalRequest) (*domain.Goal, error)
	Delete(userID, goalID string) error
}

type Service struct {
	goalRepo repository.GoalRepository
	now      func() time.Time
}

func NewService(goalRepo repository.GoalRepository) GoalService {
	return &Service{
		goalRepo: goalRepo,
		now:      time.Now,
	}
}

func (s *Service) Create(userID string, goal *domain.Goal) (*domain.Goal, error) {
	if goal.Type == "" {
		goal.Type = domain.GoalTypeSaving
	}
	if goal.Status == "" {
		goal.Status = domain.GoalStatusActive
	}

	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	goal.ID = utils.GenerateID()
	goal.UserID = userID

	if err := s.goalRepo.Create(goal); err != nil {
		return nil, err
	}

	return goal, nil
}

// List retorna as metas do usuário com os campos derivados calculados
// no momento da leitura.
func (s *Service) List(userID string, status domain.GoalStatus) ([]*domain.GoalOverview, error) {
	goals, err := s.goalRepo.ListByUser(userID, status)
	if err != nil {
		return nil, err
	}

	overviews := make([]*domain.GoalOverview, 0, len(goals))
	for _, goal := range goals {
		overviews = append(overviews, s.buildOverview(goal))
	}

	return overviews, nil
}

func (s *Service) buildOverview(goal *domain.Goal) *domain.GoalOverview {
	progress := 0.0
	if goal.TargetAmount > 0 {
		progress = utils.RoundWithTwoDecimalPlace(math.Min(goal.CurrentAmount/goal.TargetAmount*100, 100))
	}

	daysLeft := int(math.Ceil(goal.Deadline.Sub(s.now()).Hours() / 24))

	// Meta ativa com alvo alcançado aparece como concluída mesmo antes
	// de o status ser atualizado.
	displayStatus := goal.Status
	if goal.Status == domain.GoalStatusActive && goal.CurrentAmount >= goal.TargetAmount {
		displayStatus = domain.GoalStatusCompleted
	}

	return &domain.GoalOverview{
		Goal:          *goal,
		Progress:      progress,
		DaysLeft:      daysLeft,
		DisplayStatus: displayStatus,
	}
}

func (s *Service) Update(userID string, request *domain.UpdateGoalRequest) (*domain.Goal, error) {
	current, err := s.goalRepo.GetByID(request.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	if current.UserID != userID {
		return nil, ErrNotOwner
	}

	if request.Name != nil {
		current.Name = *request.Name
	}
	if request.TargetAmount != nil {
		current.TargetAmount = *request.TargetAmount
	}
	if request.CurrentAmount != nil {
		current.CurrentAmount = *request.CurrentAmount
	}
	if request.Deadline != nil {
		current.Deadline = utils.DateOnlyUTC(*request.Deadline)
	}
	if request.Type != nil {
		current.Type = *request.Type
	}
	if request.Status != nil {
		current.Status = *request.Status
	}

	if err := validateGoal(current); err != nil {
		return nil, err
	}

	// Meta ativa que alcançou o alvo é promovida a concluída na escrita.
	if current.Status == domain.GoalStatusActive && current.CurrentAmount >= current.TargetAmount {
		current.Status = domain.GoalStatusCompleted
	}

	if err := s.goalRepo.Update(current); err != nil {
		return nil, err
	}

	return current, nil
}

func (s *Service) Delete(userID, goalID string) error {
	current, err := s.goalRepo.GetByID(goalID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}
	if current.UserID != userID {
		return ErrNotOwner
	}

	return s.goalRepo.Delete(goalID)
}

func validateGoal(goal *domain.Goal) error {
	if strings.TrimSpace(goal.Name) == "" || goal.Deadline.IsZero() {
		return ErrMissingRequiredData
	}

	if goal.TargetAmount <= 0 {
		return ErrInvalidTarget
	}

	switch goal.Type {
	case domain.GoalTypeSaving, domain.GoalTypeEmergency, domain.GoalTypeInvestment:
	default:
		return ErrInvalidType
	}

	switch goal.Status {
	case domain.GoalStatusActive, domain.GoalStatusCompleted, domain.GoalStatusCancelled:
	default:
		return ErrInvalidStatus
	}

	return nil
}
