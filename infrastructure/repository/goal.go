package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/finwise/finance-insights-api/infrastructure/database/postgres"
	"github.com/finwise/finance-insights-api/internal/domain"
)

const goalsTable = "goals g"

type GoalRepository interface {
	Create(goal *domain.Goal) error
	GetByID(goalID string) (*domain.Goal, error)
	ListByUser(userID string, status domain.GoalStatus) ([]*domain.Goal, error)
	ListActiveByUser(userID string) ([]domain.Goal, error)
	SumActiveTargets(userID string) (float64, error)
	Update(goal *domain.Goal) error
	Delete(goalID string) error
}

type goalRepository struct {
	conn *postgres.Connection
}

func NewGoalRepository(conn *postgres.Connection) GoalRepository {
	return &goalRepository{
		conn: conn,
	}
}

const goalColumns = "g.id, g.user_id, g.goal_name, g.target_amount, g.current_amount, g.deadline, g.goal_type, g.status, g.created_at, g.updated_at"

func (r *goalRepository) Create(goal *domain.Goal) error {
	insertSQL, args, err := squirrel.
		Insert("goals").
		Columns("id", "user_id", "goal_name", "target_amount", "current_amount", "deadline", "goal_type", "status").
		Values(
			goal.ID,
			goal.UserID,
			goal.Name,
			goal.TargetAmount,
			goal.CurrentAmount,
			goal.Deadline,
			goal.Type,
			goal.Status,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(insertSQL, args...); err != nil {
		return errors.Wrap(err, "inserting goal")
	}

	return nil
}

func (r *goalRepository) GetByID(goalID string) (*domain.Goal, error) {
	selectSQL, args, err := squirrel.
		Select(goalColumns).
		From(goalsTable).
		Where(squirrel.Eq{"g.id": goalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	goal, err := deserializeGoal(r.conn.QueryRow(selectSQL, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "fetching goal")
	}

	return goal, nil
}

func (r *goalRepository) ListByUser(userID string, status domain.GoalStatus) ([]*domain.Goal, error) {
	queryBuilder := squirrel.
		Select(goalColumns).
		From(goalsTable).
		Where(squirrel.Eq{"g.user_id": userID}).
		OrderBy("g.created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"g.status": status})
	}

	listSQL, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(listSQL, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing goals")
	}
	defer rows.Close()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		goal, err := deserializeGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}

	return goals, rows.Err()
}

// ListActiveByUser retorna as metas ativas por valor, no formato
// consumido pelo motor de insights.
func (r *goalRepository) ListActiveByUser(userID string) ([]domain.Goal, error) {
	actives, err := r.ListByUser(userID, domain.GoalStatusActive)
	if err != nil {
		return nil, err
	}

	goals := make([]domain.Goal, 0, len(actives))
	for _, goal := range actives {
		goals = append(goals, *goal)
	}

	return goals, nil
}

func (r *goalRepository) SumActiveTargets(userID string) (float64, error) {
	sumSQL, args, err := squirrel.
		Select("COALESCE(SUM(g.target_amount), 0)").
		From(goalsTable).
		Where(squirrel.And{
			squirrel.Eq{"g.user_id": userID},
			squirrel.Eq{"g.status": domain.GoalStatusActive},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var total float64
	if err := r.conn.QueryRow(sumSQL, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "summing goal targets")
	}

	return total, nil
}

func (r *goalRepository) Update(goal *domain.Goal) error {
	updateSQL, args, err := squirrel.
		Update("goals").
		Set("goal_name", goal.Name).
		Set("target_amount", goal.TargetAmount).
		Set("current_amount", goal.CurrentAmount).
		Set("deadline", goal.Deadline).
		Set("goal_type", goal.Type).
		Set("status", goal.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": goal.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(updateSQL, args...); err != nil {
		return errors.Wrap(err, "updating goal")
	}

	return nil
}

func (r *goalRepository) Delete(goalID string) error {
	deleteSQL, args, err := squirrel.
		Delete("goals").
		Where(squirrel.Eq{"id": goalID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(deleteSQL, args...); err != nil {
		return errors.Wrap(err, "deleting goal")
	}

	return nil
}

func deserializeGoal(row rowScanner) (*domain.Goal, error) {
	goal := &domain.Goal{}

	if err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Name,
		&goal.TargetAmount,
		&goal.CurrentAmount,
		&goal.Deadline,
		&goal.Type,
		&goal.Status,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return goal, nil
}
