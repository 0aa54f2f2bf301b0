package handler

import (
	"net/http"

	"github.com/finwise/finance-insights-api/internal/api/handler/router"
	"github.com/finwise/finance-insights-api/internal/usecases/authenticating"
	"github.com/finwise/finance-insights-api/internal/usecases/goal"
	"github.com/finwise/finance-insights-api/internal/usecases/reporting"
	"github.com/finwise/finance-insights-api/internal/usecases/transaction"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:    "/v1/me",
			Method:  http.MethodGet,
			Handler: GetMe(service),
		},
	}
}

func Transactions(service transaction.TransactionService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/transactions",
			Method:  http.MethodGet,
			Handler: ListTransactions(service),
		},
		{
			Path:    "/v1/transactions",
			Method:  http.MethodPost,
			Handler: CreateTransaction(service),
		},
		{
			Path:    "/v1/transactions/:id",
			Method:  http.MethodPut,
			Handler: UpdateTransaction(service),
		},
		{
			Path:    "/v1/transactions/:id",
			Method:  http.MethodDelete,
			Handler: DeleteTransaction(service),
		},
	}
}

func Goals(service goal.GoalService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/goals",
			Method:  http.MethodGet,
			Handler: ListGoals(service),
		},
		{
			Path:    "/v1/goals",
			Method:  http.MethodPost,
			Handler: CreateGoal(service),
		},
		{
			Path:    "/v1/goals/:id",
			Method:  http.MethodPut,
			Handler: UpdateGoal(service),
		},
		{
			Path:    "/v1/goals/:id",
			Method:  http.MethodDelete,
			Handler: DeleteGoal(service),
		},
	}
}

func Dashboard(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard/summary",
			Method:  http.MethodGet,
			Handler: GetDashboardSummary(service),
		},
	}
}

func Insights(services InsightServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/insights",
			Method:  http.MethodGet,
			Handler: GetInsights(services),
		},
		{
			Path:    "/v1/insights/upload",
			Method:  http.MethodPost,
			Handler: UploadStatement(services),
		},
	}
}
