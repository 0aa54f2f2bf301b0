package ingesting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finwise/finance-insights-api/internal/domain"
)

func TestIngest(t *testing.T) {
	service := NewService()

	t.Run("CSV limpo produz lote completo sem issues", func(t *testing.T) {
		content := "Date,Category,Amount,Transaction Type,Description,Payment Method\n" +
			"2026-01-05,Salary,50000,Credit,Monthly salary,Bank Transfer\n" +
			"2026-01-07,Food,-450.75,Debit,Lunch,UPI\n" +
			"2026-01-10,Rent,15000,Debit,January rent,netbanking\n"

		transactions, quality, mapping := service.Ingest(content)

		require.Len(t, transactions, 3)
		assert.Equal(t, 3, quality.TotalRows)
		assert.Equal(t, 0, quality.RowsWithErrors)
		assert.Empty(t, quality.Issues)
		assert.Empty(t, quality.MissingColumns)

		assert.Equal(t, "Date", mapping.DateColumn)
		assert.Equal(t, "Amount", mapping.AmountColumn)
		assert.Equal(t, "Transaction Type", mapping.TypeColumn)

		salary := transactions[0]
		assert.Equal(t, domain.TransactionTypeIncome, salary.Type)
		assert.Equal(t, 50000.0, salary.Amount)
		assert.Equal(t, domain.PaymentMethodNetbanking, salary.PaymentMethod)
		assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), salary.Date)

		lunch := transactions[1]
		assert.Equal(t, domain.TransactionTypeExpense, lunch.Type)
		assert.Equal(t, 450.75, lunch.Amount)
		assert.Equal(t, domain.PaymentMethodUPI, lunch.PaymentMethod)
	})

	t.Run("extrato bancário sujo degrada sem abortar", func(t *testing.T) {
		content := "Txn Date, Merchant ,Transaction Amount,Mode\n" +
			"01/15/2026,Groceries,\"1,200\",upi\n" +
			"2026-01-20,Fuel,abc,cash\n" +
			"not-a-date,Rent,15000,card\n" +
			"\n" +
			"20 Jan 2026,Dining,-850,credit card\n"

		transactions, quality, mapping := service.Ingest(content)

		require.Len(t, transactions, 2)
		assert.Equal(t, 4, quality.TotalRows)
		assert.Equal(t, 2, quality.RowsWithErrors)
		assert.Empty(t, quality.MissingColumns)
		assert.Contains(t, quality.Issues, "2 rows (50.0%) could not be processed due to missing or invalid data")

		assert.Equal(t, "Txn Date", mapping.DateColumn)
		assert.Equal(t, "Merchant", mapping.CategoryColumn)
		assert.Equal(t, "Mode", mapping.PaymentMethodColumn)

		groceries := transactions[0]
		assert.Equal(t, 1200.0, groceries.Amount)
		assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), groceries.Date)

		dining := transactions[1]
		assert.Equal(t, domain.TransactionTypeExpense, dining.Type)
		assert.Equal(t, domain.PaymentMethodCard, dining.PaymentMethod)
		assert.Equal(t, time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), dining.Date)
	})

	t.Run("arquivo vazio interrompe antes do mapeamento", func(t *testing.T) {
		transactions, quality, mapping := service.Ingest("")

		assert.Empty(t, transactions)
		assert.Equal(t, 0, quality.TotalRows)
		assert.Equal(t, []string{"CSV file is empty or has no valid data rows"}, quality.Issues)
		assert.Equal(t, domain.ColumnMapping{}, mapping)
	})

	t.Run("apenas cabeçalho conta como arquivo vazio", func(t *testing.T) {
		transactions, quality, _ := service.Ingest("Date,Amount\n")

		assert.Empty(t, transactions)
		assert.Equal(t, 0, quality.TotalRows)
		assert.Contains(t, quality.Issues, "CSV file is empty or has no valid data rows")
	})

	t.Run("colunas essenciais ausentes geram relatório completo", func(t *testing.T) {
		content := "When,What\n" +
			"2026-01-05,Food\n"

		transactions, quality, _ := service.Ingest(content)

		assert.Empty(t, transactions)
		assert.Equal(t, []string{"date", "amount", "category"}, quality.MissingColumns)
		assert.Equal(t, 1, quality.RowsWithErrors)
		assert.Contains(t, quality.Issues, "No date column detected - transactions may have missing dates")
		assert.Contains(t, quality.Issues, "No amount column detected - cannot determine transaction amounts")
		assert.Contains(t, quality.Issues, `No category column detected - will use "Uncategorized" as default`)
		assert.Contains(t, quality.Issues, "No valid transactions could be extracted from the CSV file")
	})
}
