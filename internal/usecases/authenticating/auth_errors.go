package authenticating

import (
	"errors"

	"github.com/vfg2006/ads-dashboard-api/pkg/apiErrors"
)

var (
	ErrMissingToken = errors.New("token ausente")
	ErrInvalidToken = errors.New("token inválido")
	ErrExpiredToken = errors.New("token expirado")
)

// APIError traduz falhas de validação para a resposta HTTP; expirado tem código próprio
func APIError(err error) apiErrors.APIError {
	switch {
	case errors.Is(err, ErrExpiredToken):
		return apiErrors.APIError{Code: apiErrors.ErrExpiredToken, Message: "Token expirado"}
	case errors.Is(err, ErrMissingToken):
		return apiErrors.APIError{Code: apiErrors.ErrInvalidToken, Message: "Token Bearer é obrigatório"}
	default:
		return apiErrors.APIError{Code: apiErrors.ErrInvalidToken, Message: "Token inválido"}
	}
}
