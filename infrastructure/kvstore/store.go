// Package kvstore guarda o instante da última sincronização de cada conta.
package kvstore

import (
	"context"
	"time"
)

// SyncStateStore persiste lastSyncAt por conta; nil significa nunca sincronizada
type SyncStateStore interface {
	GetLastSync(ctx context.Context, accountID string) (*time.Time, error)
	SetLastSync(ctx context.Context, accountID string, at time.Time) error
}
