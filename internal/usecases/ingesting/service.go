package ingesting

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

type Ingester interface {
	Ingest(fileContent string) ([]domain.Transaction, domain.DataQualityReport, domain.ColumnMapping)
}

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Ingest transforma o conteúdo bruto de um CSV em um lote de transações
// normalizadas. A ingestão nunca falha por completo: linhas ruins são
// contabilizadas no relatório de qualidade e o lote válido segue adiante.
func (s *Service) Ingest(fileContent string) ([]domain.Transaction, domain.DataQualityReport, domain.ColumnMapping) {
	quality := domain.DataQualityReport{
		Issues:         []string{},
		MissingColumns: []string{},
	}
	transactions := make([]domain.Transaction, 0)

	headers, rows, parseErrors := readRecords(fileContent)
	if parseErrors > 0 {
		quality.Issues = append(quality.Issues, fmt.Sprintf("CSV parsing errors: %d issues found", parseErrors))
	}

	quality.TotalRows = len(rows)
	if len(rows) == 0 {
		quality.Issues = append(quality.Issues, "CSV file is empty or has no valid data rows")
		return transactions, quality, domain.ColumnMapping{}
	}

	mapping := MapColumns(headers)
	if mapping.DateColumn == "" {
		quality.MissingColumns = append(quality.MissingColumns, "date")
		quality.Issues = append(quality.Issues, "No date column detected - transactions may have missing dates")
	}
	if mapping.AmountColumn == "" {
		quality.MissingColumns = append(quality.MissingColumns, "amount")
		quality.Issues = append(quality.Issues, "No amount column detected - cannot determine transaction amounts")
	}
	if mapping.CategoryColumn == "" {
		quality.MissingColumns = append(quality.MissingColumns, "category")
		quality.Issues = append(quality.Issues, `No category column detected - will use "Uncategorized" as default`)
	}

	for _, row := range rows {
		transaction, err := normalizeRow(row, mapping)
		if err != nil {
			quality.RowsWithErrors++
			continue
		}
		transactions = append(transactions, transaction)
	}

	if quality.RowsWithErrors > 0 {
		errorPercentage := float64(quality.RowsWithErrors) / float64(quality.TotalRows) * 100
		quality.Issues = append(quality.Issues, fmt.Sprintf(
			"%d rows (%s%%) could not be processed due to missing or invalid data",
			quality.RowsWithErrors,
			utils.FormatPercent(errorPercentage),
		))
	}

	if len(transactions) == 0 {
		quality.Issues = append(quality.Issues, "No valid transactions could be extracted from the CSV file")
	}

	return transactions, quality, mapping
}

// readRecords lê o CSV tolerando linhas com contagem de campos
// divergente. Linhas em branco são descartadas e erros sintáticos são
// contados em vez de abortar a leitura.
func readRecords(fileContent string) (headers []string, rows []map[string]string, parseErrors int) {
	reader := csv.NewReader(strings.NewReader(fileContent))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headerRead := false
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors++
			continue
		}

		if !headerRead {
			for _, header := range record {
				headers = append(headers, strings.TrimSpace(header))
			}
			headerRead = true
			continue
		}

		if isBlank(record) {
			continue
		}

		row := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(record) {
				row[header] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return headers, rows, parseErrors
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
