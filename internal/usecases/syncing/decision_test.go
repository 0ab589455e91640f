package syncing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
)

func TestDecideShouldSync(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time {
		at := now.Add(-d)
		return &at
	}

	tests := []struct {
		name     string
		state    domain.SyncState
		filter   domain.DateFilter
		empty    bool
		expected Decision
	}{
		{
			name:     "today nunca sincronizado",
			filter:   domain.DateFilterToday,
			expected: Decision{ShouldSync: true, Reason: ReasonToday},
		},
		{
			name:     "today dentro de 15s",
			state:    domain.SyncState{LastSyncAt: ago(14 * time.Second)},
			filter:   domain.DateFilterToday,
			expected: Decision{ShouldSync: false, Reason: ReasonThrottled},
		},
		{
			name:     "today após 15s",
			state:    domain.SyncState{LastSyncAt: ago(15 * time.Second)},
			filter:   domain.DateFilterToday,
			expected: Decision{ShouldSync: true, Reason: ReasonToday},
		},
		{
			name:     "last7 com dados não sincroniza",
			filter:   domain.DateFilterLast7,
			expected: Decision{ShouldSync: false, Reason: ReasonNotNeeded},
		},
		{
			name:     "last7 vazio sincroniza",
			filter:   domain.DateFilterLast7,
			empty:    true,
			expected: Decision{ShouldSync: true, Reason: ReasonEmptySnapshot},
		},
		{
			name:     "month vazio dentro de 60s",
			state:    domain.SyncState{LastSyncAt: ago(59 * time.Second)},
			filter:   domain.DateFilterMonth,
			empty:    true,
			expected: Decision{ShouldSync: false, Reason: ReasonThrottled},
		},
		{
			name:     "janela de 60s não vale para today",
			state:    domain.SyncState{LastSyncAt: ago(30 * time.Second)},
			filter:   domain.DateFilterToday,
			expected: Decision{ShouldSync: true, Reason: ReasonToday},
		},
		{
			name:     "tentativa recente com falha também conta",
			state:    domain.SyncState{LastSyncAt: ago(time.Hour), LastAttemptAt: ago(10 * time.Second)},
			filter:   domain.DateFilterCustom,
			empty:    true,
			expected: Decision{ShouldSync: false, Reason: ReasonThrottled},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecideShouldSync(tt.state, tt.filter, tt.empty, now, DefaultPolicy()))
		})
	}
}
