package domain

import (
	"time"
)

type AccountStatus string

const (
	AccountStatusActive   AccountStatus = "ACTIVE"
	AccountStatusInactive AccountStatus = "INACTIVE"
)

type Account struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Name      string        `json:"name"`
	Platform  *string       `json:"platform"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// ViewMode indica como o painel seleciona as contas exibidas
type ViewMode string

const (
	ViewModeSingleAccount ViewMode = "single-account"
	ViewModeGrouped       ViewMode = "grouped"
	ViewModeNone          ViewMode = "none"
)

// ViewContext descreve a seleção feita pelo usuário no painel
type ViewContext struct {
	Mode        ViewMode `json:"mode"`
	SelectionID string   `json:"selection_id"`
	UserID      string   `json:"user_id"`
}

type ResolvedAccount struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
}

// ResolvedAccountIDs extrai apenas os ids, preservando a ordem
func ResolvedAccountIDs(accounts []ResolvedAccount) []string {
	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		ids = append(ids, acc.ID)
	}
	return ids
}
