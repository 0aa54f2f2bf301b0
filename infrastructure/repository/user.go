package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/finwise/finance-insights-api/infrastructure/database/postgres"
	"github.com/finwise/finance-insights-api/internal/domain"
)

const usersTable = "users u"

// ErrDuplicateEmail indica violação da unicidade de e-mail.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	Create(user *domain.User) error
	GetByEmail(email string) (*domain.User, error)
	GetByID(userID string) (*domain.User, error)
	ListActiveIDs() ([]string, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

const userColumns = "u.id, u.name, u.email, u.password_hash, u.active, u.created_at, u.updated_at"

func (r *userRepository) Create(user *domain.User) error {
	insertSQL, args, err := squirrel.
		Insert("users").
		Columns("id", "name", "email", "password_hash", "active").
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.Active).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(insertSQL, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateEmail
		}
		return errors.Wrap(err, "inserting user")
	}

	return nil
}

func (r *userRepository) GetByEmail(email string) (*domain.User, error) {
	return r.getUser(squirrel.Eq{"u.email": email})
}

func (r *userRepository) GetByID(userID string) (*domain.User, error) {
	return r.getUser(squirrel.Eq{"u.id": userID})
}

func (r *userRepository) getUser(whereClause map[string]interface{}) (*domain.User, error) {
	selectSQL, args, err := squirrel.
		Select(userColumns).
		From(usersTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	user := &domain.User{}
	if err := r.conn.QueryRow(selectSQL, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "fetching user")
	}

	return user, nil
}

// ListActiveIDs retorna os IDs de usuários ativos, na ordem de criação.
// Usado pelo agendador do digest de insights.
func (r *userRepository) ListActiveIDs() ([]string, error) {
	selectSQL, args, err := squirrel.
		Select("u.id").
		From(usersTable).
		Where(squirrel.Eq{"u.active": true}).
		OrderBy("u.created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(selectSQL, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing active users")
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
