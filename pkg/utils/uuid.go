package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera o identificador curto usado como chave primária de
// usuários, transações e metas.
func GenerateID() string {
	return gonanoid.MustGenerate(characters, 12)
}
