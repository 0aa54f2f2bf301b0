package goal

import "errors"

var (
	ErrMissingRequiredData = errors.New("nome, valor alvo e prazo são obrigatórios")
	ErrInvalidTarget       = errors.New("valor alvo deve ser maior que zero")
	ErrInvalidType         = errors.New("tipo de meta inválido")
	ErrInvalidStatus       = errors.New("status de meta inválido")
	ErrNotFound            = errors.New("meta não encontrada")
	ErrNotOwner            = errors.New("meta pertence a outro usuário")
)
