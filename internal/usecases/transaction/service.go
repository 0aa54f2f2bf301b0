package transaction

import (
	"math"
	"strings"

	"github.com/finwise/finance-insights-api/infrastructure/repository"
	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type TransactionService interface {
	Create(userID string, transaction *domain.Transaction) (*domain.Transaction, error)
	Import(userID string, transactions []domain.Transaction) (int, error)
	List(filter domain.TransactionFilter) ([]*domain.Transaction, *domain.Pagination, error)
	Update(userID string, request *domain.UpdateTransactionRequest) (*domain.Transaction, error)
	Delete(userID, transactionID string) error
}

type Service struct {
	transactionRepo repository.TransactionRepository
}

func NewService(transactionRepo repository.TransactionRepository) TransactionService {
	return &Service{
		transactionRepo: transactionRepo,
	}
}

func (s *Service) Create(userID string, transaction *domain.Transaction) (*domain.Transaction, error) {
	transaction.Amount = utils.RoundWithTwoDecimalPlace(math.Abs(transaction.Amount))

	if err := validateTransaction(transaction); err != nil {
		return nil, err
	}

	transaction.ID = utils.GenerateID()
	transaction.UserID = userID
	transaction.Date = utils.DateOnlyUTC(transaction.Date)

	if err := s.transactionRepo.Create(transaction); err != nil {
		return nil, err
	}

	return transaction, nil
}

// Import persiste um lote já normalizado pela ingestão, atribuindo IDs
// e dono. Não revalida campo a campo: o lote vem do pipeline de
// ingestão, que já descartou linhas inválidas.
func (s *Service) Import(userID string, transactions []domain.Transaction) (int, error) {
	if len(transactions) == 0 {
		return 0, nil
	}

	batch := make([]*domain.Transaction, 0, len(transactions))
	for i := range transactions {
		transaction := transactions[i]
		transaction.ID = utils.GenerateID()
		transaction.UserID = userID
		batch = append(batch, &transaction)
	}

	if err := s.transactionRepo.CreateBatch(batch); err != nil {
		return 0, err
	}

	return len(batch), nil
}

func (s *Service) List(filter domain.TransactionFilter) ([]*domain.Transaction, *domain.Pagination, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	transactions, total, err := s.transactionRepo.List(filter)
	if err != nil {
		return nil, nil, err
	}

	pagination := &domain.Pagination{
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Pages: (total + filter.Limit - 1) / filter.Limit,
	}

	return transactions, pagination, nil
}

func (s *Service) Update(userID string, request *domain.UpdateTransactionRequest) (*domain.Transaction, error) {
	current, err := s.transactionRepo.GetByID(request.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	if current.UserID != userID {
		return nil, ErrNotOwner
	}

	if request.Type != nil {
		current.Type = *request.Type
	}
	if request.Amount != nil {
		current.Amount = utils.RoundWithTwoDecimalPlace(math.Abs(*request.Amount))
	}
	if request.Category != nil {
		current.Category = *request.Category
	}
	if request.Description != nil {
		current.Description = *request.Description
	}
	if request.Date != nil {
		current.Date = utils.DateOnlyUTC(*request.Date)
	}
	if request.PaymentMethod != nil {
		current.PaymentMethod = *request.PaymentMethod
	}
	if request.Note != nil {
		current.Note = *request.Note
	}

	if err := validateTransaction(current); err != nil {
		return nil, err
	}

	if err := s.transactionRepo.Update(current); err != nil {
		return nil, err
	}

	return current, nil
}

func (s *Service) Delete(userID, transactionID string) error {
	current, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}
	if current.UserID != userID {
		return ErrNotOwner
	}

	return s.transactionRepo.Delete(transactionID)
}

func validateTransaction(transaction *domain.Transaction) error {
	if strings.TrimSpace(transaction.Category) == "" || transaction.Date.IsZero() {
		return ErrMissingRequiredData
	}

	switch transaction.Type {
	case domain.TransactionTypeIncome, domain.TransactionTypeExpense:
	default:
		return ErrInvalidType
	}

	if transaction.Amount <= 0 {
		return ErrInvalidAmount
	}

	switch transaction.PaymentMethod {
	case domain.PaymentMethodNone,
		domain.PaymentMethodUPI,
		domain.PaymentMethodCash,
		domain.PaymentMethodNetbanking,
		domain.PaymentMethodCard,
		domain.PaymentMethodOther:
	default:
		return ErrInvalidPaymentMethod
	}

	return nil
}
