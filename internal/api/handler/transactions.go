package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/internal/usecases/transaction"
	"github.com/finwise/finance-insights-api/pkg/apiErrors"
	"github.com/finwise/finance-insights-api/pkg/middleware"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

type TransactionListResponse struct {
	Transactions []*domain.Transaction `json:"transactions"`
	Pagination   *domain.Pagination    `json:"pagination"`
}

// currentUser extrai as claims do usuário autenticado do contexto da requisição.
func currentUser(r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	return claims, ok
}

func ListTransactions(service transaction.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		filter, err := parseTransactionFilter(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}
		filter.UserID = claims.UserID

		transactions, pagination, err := service.List(filter)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar transações", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(TransactionListResponse{
			Transactions: transactions,
			Pagination:   pagination,
		})
		if err != nil {
			logrus.Error(err)
		}
	}
}

func CreateTransaction(service transaction.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.Transaction
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := service.Create(claims.UserID, &req)
		if err != nil {
			handleTransactionError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		err = json.NewEncoder(w).Encode(created)
		if err != nil {
			logrus.Error(err)
		}
	}
}

func UpdateTransaction(service transaction.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		transactionID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if transactionID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da transação não fornecido", nil)
			return
		}

		var req domain.UpdateTransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		req.ID = transactionID

		updated, err := service.Update(claims.UserID, &req)
		if err != nil {
			handleTransactionError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(updated)
		if err != nil {
			logrus.Error(err)
		}
	}
}

func DeleteTransaction(service transaction.TransactionService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		transactionID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if transactionID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da transação não fornecido", nil)
			return
		}

		if err := service.Delete(claims.UserID, transactionID); err != nil {
			handleTransactionError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// parseTransactionFilter monta o filtro de listagem a partir da query string.
func parseTransactionFilter(r *http.Request) (domain.TransactionFilter, error) {
	filter := domain.TransactionFilter{}
	query := r.URL.Query()

	if value := query.Get("type"); value != "" {
		filter.Type = domain.TransactionType(value)
	}

	if value := query.Get("category"); value != "" {
		filter.Category = value
	}

	if value := query.Get("start_date"); value != "" {
		startDate, err := utils.ParseDate(value)
		if err != nil {
			return filter, errors.New("Data inicial inválida, use o formato YYYY-MM-DD")
		}
		filter.StartDate = startDate
	}

	if value := query.Get("end_date"); value != "" {
		endDate, err := utils.ParseDate(value)
		if err != nil {
			return filter, errors.New("Data final inválida, use o formato YYYY-MM-DD")
		}
		filter.EndDate = endDate
	}

	if value := query.Get("page"); value != "" {
		page, err := strconv.Atoi(value)
		if err != nil {
			return filter, errors.New("Página inválida")
		}
		filter.Page = page
	}

	if value := query.Get("limit"); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil {
			return filter, errors.New("Limite inválido")
		}
		filter.Limit = limit
	}

	return filter, nil
}

func handleTransactionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, transaction.ErrNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Transação não encontrada", nil)

	case errors.Is(err, transaction.ErrNotOwner):
		apiErrors.WriteError(w, apiErrors.ErrNotResourceOwner, "Transação pertence a outro usuário", nil)

	case errors.Is(err, transaction.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Categoria e data são obrigatórias", nil)

	case errors.Is(err, transaction.ErrInvalidType):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo deve ser income ou expense", nil)

	case errors.Is(err, transaction.ErrInvalidAmount):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Valor deve ser maior que zero", nil)

	case errors.Is(err, transaction.ErrInvalidPaymentMethod):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Meio de pagamento desconhecido", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar transação", nil)
	}
}
