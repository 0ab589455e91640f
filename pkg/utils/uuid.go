package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const viewIDLength = 12

// GenerateViewID gera o identificador das visões do painel
func GenerateViewID() (string, error) {
	return gonanoid.Generate(characters, viewIDLength)
}
