package domain

import (
	"time"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// PaymentMethod é o conjunto fechado de meios de pagamento aceitos.
// Valores fora do conjunto são normalizados para PaymentMethodOther.
type PaymentMethod string

const (
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodNetbanking PaymentMethod = "netbanking"
	PaymentMethodCard       PaymentMethod = "card"
	PaymentMethodOther      PaymentMethod = "other"

	// PaymentMethodNone indica ausência de meio de pagamento no registro.
	PaymentMethodNone PaymentMethod = ""
)

type Transaction struct {
	ID            string          `json:"id,omitempty"`
	UserID        string          `json:"user_id,omitempty"`
	Type          TransactionType `json:"type"`
	Amount        float64         `json:"amount"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	PaymentMethod PaymentMethod   `json:"payment_method,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     time.Time       `json:"created_at,omitempty"`
}

// DateKey retorna a data da transação no formato canônico YYYY-MM-DD.
func (t Transaction) DateKey() string {
	return t.Date.Format(time.DateOnly)
}

type TransactionFilter struct {
	UserID    string
	Type      TransactionType
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Page      int
}

type UpdateTransactionRequest struct {
	ID            string           `json:"id"`
	Type          *TransactionType `json:"type"`
	Amount        *float64         `json:"amount"`
	Category      *string          `json:"category"`
	Description   *string          `json:"description"`
	Date          *time.Time       `json:"date"`
	PaymentMethod *PaymentMethod   `json:"payment_method"`
	Note          *string          `json:"note"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}
