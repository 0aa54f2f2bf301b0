package transaction

import "errors"

var (
	ErrMissingRequiredData  = errors.New("categoria e data são obrigatórias")
	ErrInvalidType          = errors.New("tipo de transação inválido")
	ErrInvalidAmount        = errors.New("valor deve ser maior que zero")
	ErrInvalidPaymentMethod = errors.New("meio de pagamento inválido")
	ErrNotFound             = errors.New("transação não encontrada")
	ErrNotOwner             = errors.New("transação pertence a outro usuário")
)
