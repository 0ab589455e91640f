// Package syncing decide quando pedir dados novos ao gatilho de ingestão e
// executa essas sincronizações sem bloquear o caminho de leitura.
package syncing

import (
	"time"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

type Reason string

const (
	ReasonToday         Reason = "today"
	ReasonEmptySnapshot Reason = "empty_snapshot"
	ReasonThrottled     Reason = "throttled"
	ReasonNotNeeded     Reason = "not_needed"
)

// Policy define as janelas mínimas entre duas sincronizações da mesma conta
type Policy struct {
	TodayThrottle   time.Duration
	DefaultThrottle time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		TodayThrottle:   15 * time.Second,
		DefaultThrottle: 60 * time.Second,
	}
}

func (p Policy) Window(filter domain.DateFilter) time.Duration {
	if filter == domain.DateFilterToday {
		return p.TodayThrottle
	}
	return p.DefaultThrottle
}

type Decision struct {
	ShouldSync bool
	Reason     Reason
}

// DecideShouldSync é pura. Sincroniza quando o snapshot está vazio ou o filtro é
// "today", desde que a última tentativa da conta esteja fora da janela de throttle.
func DecideShouldSync(state domain.SyncState, filter domain.DateFilter, snapshotEmpty bool, now time.Time, policy Policy) Decision {
	reason := ReasonNotNeeded
	switch {
	case filter == domain.DateFilterToday:
		reason = ReasonToday
	case snapshotEmpty:
		reason = ReasonEmptySnapshot
	default:
		return Decision{ShouldSync: false, Reason: ReasonNotNeeded}
	}

	if last := lastTouch(state); last != nil && now.Sub(*last) < policy.Window(filter) {
		return Decision{ShouldSync: false, Reason: ReasonThrottled}
	}

	return Decision{ShouldSync: true, Reason: reason}
}

func lastTouch(state domain.SyncState) *time.Time {
	last := state.LastSyncAt
	if state.LastAttemptAt != nil && (last == nil || state.LastAttemptAt.After(*last)) {
		last = state.LastAttemptAt
	}
	return last
}
