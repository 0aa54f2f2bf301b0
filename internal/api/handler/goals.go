package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/internal/usecases/goal"
	"github.com/finwise/finance-insights-api/pkg/apiErrors"
)

func ListGoals(service goal.GoalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		status := domain.GoalStatus(r.URL.Query().Get("status"))

		goals, err := service.List(claims.UserID, status)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar metas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(map[string]any{
			"goals": goals,
		})
		if err != nil {
			logrus.Error(err)
		}
	}
}

func CreateGoal(service goal.GoalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.Goal
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := service.Create(claims.UserID, &req)
		if err != nil {
			handleGoalError(w, err)
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

func UpdateGoal(service goal.GoalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		goalID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if goalID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da meta não fornecido", nil)
			return
		}

		var req domain.UpdateGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}
		req.ID = goalID

		updated, err := service.Update(claims.UserID, &req)
		if err != nil {
			handleGoalError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(updated)
		if err != nil {
			logrus.Error(err)
		}
	}
}

func DeleteGoal(service goal.GoalService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		goalID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if goalID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da meta não fornecido", nil)
			return
		}

		if err := service.Delete(claims.UserID, goalID); err != nil {
			handleGoalError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func handleGoalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, goal.ErrNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Meta não encontrada", nil)

	case errors.Is(err, goal.ErrNotOwner):
		apiErrors.WriteError(w, apiErrors.ErrNotResourceOwner, "Meta pertence a outro usuário", nil)

	case errors.Is(err, goal.ErrMissingRequiredData):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nome e prazo são obrigatórios", nil)

	case errors.Is(err, goal.ErrInvalidTarget):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Valor alvo deve ser maior que zero", nil)

	case errors.Is(err, goal.ErrInvalidType):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Tipo deve ser saving, emergency ou investment", nil)

	case errors.Is(err, goal.ErrInvalidStatus):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Status deve ser active, completed ou cancelled", nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao processar meta", nil)
	}
}
