package repository

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/finwise/finance-insights-api/infrastructure/database/postgres"
	"github.com/finwise/finance-insights-api/internal/domain"
)

const transactionsTable = "transactions t"

type TransactionRepository interface {
	Create(transaction *domain.Transaction) error
	CreateBatch(transactions []*domain.Transaction) error
	GetByID(transactionID string) (*domain.Transaction, error)
	List(filter domain.TransactionFilter) ([]*domain.Transaction, int, error)
	ListByUserSince(userID string, since time.Time) ([]domain.Transaction, error)
	ListByUserBetween(userID string, from, to time.Time) ([]domain.Transaction, error)
	ListRecent(userID string, limit int) ([]*domain.Transaction, error)
	MonthlyTotals(userID string, from, to time.Time) (income float64, expense float64, err error)
	Update(transaction *domain.Transaction) error
	Delete(transactionID string) error
}

type transactionRepository struct {
	conn *postgres.Connection
}

func NewTransactionRepository(conn *postgres.Connection) TransactionRepository {
	return &transactionRepository{
		conn: conn,
	}
}

const transactionColumns = "t.id, t.user_id, t.type, t.amount, t.category, t.description, t.date, t.payment_method, t.note, t.created_at"

func (r *transactionRepository) Create(transaction *domain.Transaction) error {
	insertSQL, args, err := squirrel.
		Insert("transactions").
		Columns("id", "user_id", "type", "amount", "category", "description", "date", "payment_method", "note").
		Values(
			transaction.ID,
			transaction.UserID,
			transaction.Type,
			transaction.Amount,
			transaction.Category,
			transaction.Description,
			transaction.Date,
			nullablePaymentMethod(transaction.PaymentMethod),
			transaction.Note,
		).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(insertSQL, args...); err != nil {
		return errors.Wrap(err, "inserting transaction")
	}

	return nil
}

// CreateBatch insere todas as transações de um arquivo importado em uma
// única query.
func (r *transactionRepository) CreateBatch(transactions []*domain.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	builder := squirrel.
		Insert("transactions").
		Columns("id", "user_id", "type", "amount", "category", "description", "date", "payment_method", "note").
		PlaceholderFormat(squirrel.Dollar)

	for _, transaction := range transactions {
		builder = builder.Values(
			transaction.ID,
			transaction.UserID,
			transaction.Type,
			transaction.Amount,
			transaction.Category,
			transaction.Description,
			transaction.Date,
			nullablePaymentMethod(transaction.PaymentMethod),
			transaction.Note,
		)
	}

	insertSQL, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(insertSQL, args...); err != nil {
		return errors.Wrap(err, "inserting transaction batch")
	}

	return nil
}

func (r *transactionRepository) GetByID(transactionID string) (*domain.Transaction, error) {
	selectSQL, args, err := squirrel.
		Select(transactionColumns).
		From(transactionsTable).
		Where(squirrel.Eq{"t.id": transactionID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(selectSQL, args...)

	transaction, err := deserializeTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "fetching transaction")
	}

	return transaction, nil
}

func (r *transactionRepository) List(filter domain.TransactionFilter) ([]*domain.Transaction, int, error) {
	whereClause := r.buildFilterClause(filter)

	countSQL, countArgs, err := squirrel.
		Select("COUNT(*)").
		From(transactionsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.conn.QueryRow(countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, errors.Wrap(err, "counting transactions")
	}

	offset := (filter.Page - 1) * filter.Limit

	listSQL, listArgs, err := squirrel.
		Select(transactionColumns).
		From(transactionsTable).
		Where(whereClause).
		OrderBy("t.date DESC", "t.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(offset)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.conn.Query(listSQL, listArgs...)
	if err != nil {
		return nil, 0, errors.Wrap(err, "listing transactions")
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := deserializeTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, total, rows.Err()
}

func (r *transactionRepository) buildFilterClause(filter domain.TransactionFilter) squirrel.And {
	clause := squirrel.And{squirrel.Eq{"t.user_id": filter.UserID}}

	if filter.Type != "" {
		clause = append(clause, squirrel.Eq{"t.type": filter.Type})
	}
	if filter.Category != "" {
		clause = append(clause, squirrel.Eq{"t.category": filter.Category})
	}
	if filter.StartDate != nil {
		clause = append(clause, squirrel.GtOrEq{"t.date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		clause = append(clause, squirrel.LtOrEq{"t.date": *filter.EndDate})
	}

	return clause
}

// ListByUserSince retorna as transações do usuário a partir de uma data,
// por valor, no formato consumido pelo motor de insights.
func (r *transactionRepository) ListByUserSince(userID string, since time.Time) ([]domain.Transaction, error) {
	selectSQL, args, err := squirrel.
		Select(transactionColumns).
		From(transactionsTable).
		Where(squirrel.And{
			squirrel.Eq{"t.user_id": userID},
			squirrel.GtOrEq{"t.date": since},
		}).
		OrderBy("t.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(selectSQL, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing transactions since date")
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		transaction, err := deserializeTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *transaction)
	}

	return transactions, rows.Err()
}

// ListByUserBetween retorna as transações do usuário na janela
// [from, to), o mesmo recorte usado pelos totais mensais.
func (r *transactionRepository) ListByUserBetween(userID string, from, to time.Time) ([]domain.Transaction, error) {
	selectSQL, args, err := squirrel.
		Select(transactionColumns).
		From(transactionsTable).
		Where(squirrel.And{
			squirrel.Eq{"t.user_id": userID},
			squirrel.GtOrEq{"t.date": from},
			squirrel.Lt{"t.date": to},
		}).
		OrderBy("t.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(selectSQL, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing transactions in window")
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0)
	for rows.Next() {
		transaction, err := deserializeTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *transaction)
	}

	return transactions, rows.Err()
}

func (r *transactionRepository) ListRecent(userID string, limit int) ([]*domain.Transaction, error) {
	selectSQL, args, err := squirrel.
		Select(transactionColumns).
		From(transactionsTable).
		Where(squirrel.Eq{"t.user_id": userID}).
		OrderBy("t.date DESC", "t.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(selectSQL, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing recent transactions")
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		transaction, err := deserializeTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}

	return transactions, rows.Err()
}

// MonthlyTotals soma receitas e despesas do usuário na janela
// [from, to), no banco.
func (r *transactionRepository) MonthlyTotals(userID string, from, to time.Time) (float64, float64, error) {
	totalsSQL, args, err := squirrel.
		Select(
			"COALESCE(SUM(CASE WHEN t.type = 'income' THEN ABS(t.amount) ELSE 0 END), 0)",
			"COALESCE(SUM(CASE WHEN t.type = 'expense' THEN ABS(t.amount) ELSE 0 END), 0)",
		).
		From(transactionsTable).
		Where(squirrel.And{
			squirrel.Eq{"t.user_id": userID},
			squirrel.GtOrEq{"t.date": from},
			squirrel.Lt{"t.date": to},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, 0, err
	}

	var income, expense float64
	if err := r.conn.QueryRow(totalsSQL, args...).Scan(&income, &expense); err != nil {
		return 0, 0, errors.Wrap(err, "summing monthly totals")
	}

	return income, expense, nil
}

func (r *transactionRepository) Update(transaction *domain.Transaction) error {
	updateSQL, args, err := squirrel.
		Update("transactions").
		Set("type", transaction.Type).
		Set("amount", transaction.Amount).
		Set("category", transaction.Category).
		Set("description", transaction.Description).
		Set("date", transaction.Date).
		Set("payment_method", nullablePaymentMethod(transaction.PaymentMethod)).
		Set("note", transaction.Note).
		Where(squirrel.Eq{"id": transaction.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(updateSQL, args...); err != nil {
		return errors.Wrap(err, "updating transaction")
	}

	return nil
}

func (r *transactionRepository) Delete(transactionID string) error {
	deleteSQL, args, err := squirrel.
		Delete("transactions").
		Where(squirrel.Eq{"id": transactionID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(deleteSQL, args...); err != nil {
		return errors.Wrap(err, "deleting transaction")
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func deserializeTransaction(row rowScanner) (*domain.Transaction, error) {
	transaction := &domain.Transaction{}
	var paymentMethod sql.NullString
	var note sql.NullString

	if err := row.Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.Type,
		&transaction.Amount,
		&transaction.Category,
		&transaction.Description,
		&transaction.Date,
		&paymentMethod,
		&note,
		&transaction.CreatedAt,
	); err != nil {
		return nil, err
	}

	if paymentMethod.Valid {
		transaction.PaymentMethod = domain.PaymentMethod(paymentMethod.String)
	}
	if note.Valid {
		transaction.Note = note.String
	}

	return transaction, nil
}

func nullablePaymentMethod(method domain.PaymentMethod) interface{} {
	if method == domain.PaymentMethodNone {
		return nil
	}
	return string(method)
}
