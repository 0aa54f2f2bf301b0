package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/finwise/finance-insights-api/infrastructure/repository"
	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/internal/usecases/ingesting"
	"github.com/finwise/finance-insights-api/internal/usecases/insighting"
	"github.com/finwise/finance-insights-api/internal/usecases/transaction"
	"github.com/finwise/finance-insights-api/pkg/apiErrors"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

// Janela de transações considerada na análise sob demanda.
const insightLookbackDays = 30

// InsightServices agrupa as dependências dos handlers de insights.
type InsightServices struct {
	TransactionRepo    repository.TransactionRepository
	GoalRepo           repository.GoalRepository
	TransactionService transaction.TransactionService
	Ingester           ingesting.Ingester
	Insighter          insighting.Insighter
	MaxUploadBytes     int64
}

type CSVInfo struct {
	TotalRows         int                  `json:"totalRows"`
	ValidTransactions int                  `json:"validTransactions"`
	RowsWithErrors    int                  `json:"rowsWithErrors"`
	ColumnMapping     domain.ColumnMapping `json:"columnMapping"`
}

type UploadStatementResponse struct {
	Report     *domain.InsightReport `json:"report"`
	CSVInfo    CSVInfo               `json:"csvInfo"`
	SavedCount int                   `json:"savedCount"`
}

// GetInsights recalcula o relatório de insights com as transações da
// janela recente e as metas ativas do usuário.
func GetInsights(services InsightServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		since := utils.DateOnlyUTC(time.Now().AddDate(0, 0, -insightLookbackDays))

		transactions, err := services.TransactionRepo.ListByUserSince(claims.UserID, since)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar transações", nil)
			return
		}

		goals, err := services.GoalRepo.ListActiveByUser(claims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar metas", nil)
			return
		}

		report := services.Insighter.Analyze(transactions, goals, nil)

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(report)
		if err != nil {
			logrus.Error(err)
		}
	}
}

// UploadStatement recebe um extrato CSV, normaliza as linhas válidas,
// persiste o lote e devolve o relatório de insights do arquivo.
func UploadStatement(services InsightServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := currentUser(r)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadBytes)

		if err := r.ParseMultipartForm(services.MaxUploadBytes); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo excede o tamanho máximo permitido", map[string]any{
					"max_bytes": services.MaxUploadBytes,
				})
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido, envie multipart/form-data", nil)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrNoFileUploaded, "Nenhum arquivo enviado no campo file", nil)
			return
		}
		defer file.Close()

		if strings.ToLower(filepath.Ext(header.Filename)) != ".csv" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFileType, "Apenas arquivos CSV são aceitos", nil)
			return
		}

		content, err := io.ReadAll(file)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao ler o arquivo enviado", nil)
			return
		}

		transactions, quality, mapping := services.Ingester.Ingest(string(content))

		savedCount := 0
		if len(transactions) > 0 {
			savedCount, err = services.TransactionService.Import(claims.UserID, transactions)
			if err != nil {
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao salvar transações importadas", nil)
				return
			}
		}

		goals, err := services.GoalRepo.ListActiveByUser(claims.UserID)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar metas", nil)
			return
		}

		report := services.Insighter.Analyze(transactions, goals, quality.Issues)

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(UploadStatementResponse{
			Report: report,
			CSVInfo: CSVInfo{
				TotalRows:         quality.TotalRows,
				ValidTransactions: len(transactions),
				RowsWithErrors:    quality.RowsWithErrors,
				ColumnMapping:     mapping,
			},
			SavedCount: savedCount,
		})
		if err != nil {
			logrus.Error(err)
		}
	}
}
