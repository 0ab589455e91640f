package domain

import "time"

// SyncState é o único estado persistido entre sessões: o instante da última
// sincronização bem sucedida de uma conta
type SyncState struct {
	AccountID     string     `json:"account_id"`
	LastSyncAt    *time.Time `json:"last_sync_at"`
	// LastAttemptAt fica só em memória: falhas também respeitam a janela de throttle
	LastAttemptAt *time.Time `json:"-"`
}

// SyncRequest é o corpo aceito pelo gatilho remoto de ingestão
type SyncRequest struct {
	AccountID string `json:"accountId"`
	Force     bool   `json:"force"`
	Days      int    `json:"days"`
}

type SyncResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
