package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/finwise/finance-insights-api/internal/usecases/reporting"
	"github.com/finwise/finance-insights-api/pkg/apiErrors"
)

func GetDashboardSummary(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		summary, err := service.Summary(claims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao montar o resumo do dashboard", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(summary)
		if err != nil {
			logrus.Error(err)
		}
	}
}
