package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são emitidas pelo serviço de autenticação externo; aqui apenas validadas
type Claims struct {
	UserID     string `json:"sub_user_id"`
	UserEmail  string `json:"email"`
	UserRoleID int    `json:"role_id"`
	jwt.RegisteredClaims
}
