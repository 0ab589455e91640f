package syncing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/integrator/ingestion"
	"github.com/vfg2006/ads-dashboard-api/infrastructure/kvstore"
	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/ads-dashboard-api/pkg/clock"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

const (
	outcomeTriggered = "triggered"
	outcomeSkipped   = "skipped"
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
)

type Config struct {
	Enabled       bool
	Policy        Policy
	TodayInterval time.Duration
	MaxDays       int
}

// Request descreve uma carga que pode disparar sincronização
type Request struct {
	Accounts      []domain.ResolvedAccount
	Bounds        domain.DateBounds
	SnapshotEmpty bool
	// Force ignora o throttle (timer periódico e sincronização manual)
	Force bool
	// OnSuccess é chamado uma vez, em background, quando ao menos uma conta sincronizou
	OnSuccess func()
}

// SyncScheduler nunca bloqueia o chamador: cada disparo roda em uma goroutine
// própria e o resultado só volta através de OnSuccess.
type SyncScheduler struct {
	config  Config
	store   kvstore.SyncStateStore
	trigger ingestion.Trigger
	clock   clock.Clock
	metrics *metrics.Metrics

	mu                  sync.Mutex
	inFlight            map[string]struct{}
	attempts            map[string]time.Time
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time

	triggered atomic.Int64
	skipped   atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64

	wg sync.WaitGroup
}

func NewSyncScheduler(
	config Config,
	store kvstore.SyncStateStore,
	trigger ingestion.Trigger,
	clk clock.Clock,
	m *metrics.Metrics,
) *SyncScheduler {
	log.L.WithFields(log.Fields{
		"sync_enabled":          config.Enabled,
		"sync_today_throttle":   config.Policy.TodayThrottle.String(),
		"sync_default_throttle": config.Policy.DefaultThrottle.String(),
		"sync_today_interval":   config.TodayInterval.String(),
		"sync_max_days":         config.MaxDays,
	}).Info("Configuração do agendador de sincronização carregada")

	return &SyncScheduler{
		config:   config,
		store:    store,
		trigger:  trigger,
		clock:    clk,
		metrics:  m,
		inFlight: make(map[string]struct{}),
		attempts: make(map[string]time.Time),
	}
}

func (s *SyncScheduler) TodayInterval() time.Duration {
	return s.config.TodayInterval
}

// State monta o SyncState da conta a partir do armazenamento durável e das tentativas em memória
func (s *SyncScheduler) State(ctx context.Context, accountID string) domain.SyncState {
	state := domain.SyncState{AccountID: accountID}

	lastSync, err := s.store.GetLastSync(ctx, accountID)
	if err != nil {
		log.ForContext(ctx).
			WithError(fmt.Errorf("%w: %w", domain.ErrSyncStateStorage, err)).
			WithField("account_id", accountID).
			Warn("Erro ao ler última sincronização, considerando conta nunca sincronizada")
	}
	state.LastSyncAt = lastSync

	s.mu.Lock()
	if at, ok := s.attempts[accountID]; ok {
		state.LastAttemptAt = &at
	}
	s.mu.Unlock()

	return state
}

// Schedule avalia cada conta e dispara, em background, as que devem sincronizar.
// Retorna quantas contas foram disparadas.
func (s *SyncScheduler) Schedule(ctx context.Context, request Request) int {
	if !s.config.Enabled || len(request.Accounts) == 0 {
		return 0
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"filter":     request.Bounds.Filter,
		"start_date": request.Bounds.Start,
		"end_date":   request.Bounds.End,
	})

	now := s.clock.Now()
	selected := make([]domain.ResolvedAccount, 0, len(request.Accounts))

	for _, account := range request.Accounts {
		if !request.Force {
			decision := DecideShouldSync(s.State(ctx, account.ID), request.Bounds.Filter, request.SnapshotEmpty, now, s.config.Policy)
			if !decision.ShouldSync {
				if decision.Reason == ReasonThrottled {
					s.skipped.Add(1)
					s.metrics.RecordSync(outcomeSkipped)
					logger.WithField("account_id", account.ID).Debug("Sincronização ignorada pelo throttle")
				}
				continue
			}
		}

		if !s.acquire(account.ID, now) {
			s.skipped.Add(1)
			s.metrics.RecordSync(outcomeSkipped)
			logger.WithField("account_id", account.ID).Debug("Sincronização já em andamento para a conta")
			continue
		}

		selected = append(selected, account)
	}

	if len(selected) == 0 {
		return 0
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx, selected, request)
	}()

	return len(selected)
}

// acquire marca a conta como em andamento e registra a tentativa
func (s *SyncScheduler) acquire(accountID string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[accountID]; busy {
		return false
	}
	s.inFlight[accountID] = struct{}{}
	s.attempts[accountID] = now
	return true
}

func (s *SyncScheduler) release(accountID string) {
	s.mu.Lock()
	delete(s.inFlight, accountID)
	s.mu.Unlock()
}

func (s *SyncScheduler) run(ctx context.Context, accounts []domain.ResolvedAccount, request Request) {
	s.mu.Lock()
	s.lastSyncStartedAt = s.clock.Now()
	s.mu.Unlock()

	anySucceeded := false
	for _, account := range accounts {
		if err := s.syncAccount(ctx, account, request); err != nil {
			log.ForContext(ctx).WithError(err).WithFields(log.Fields{
				"account_id": account.ID,
				"filter":     request.Bounds.Filter,
				"start_date": request.Bounds.Start,
				"end_date":   request.Bounds.End,
			}).Error("Erro ao sincronizar conta, snapshot atual mantido")
			continue
		}
		anySucceeded = true
	}

	s.mu.Lock()
	s.lastSyncCompletedAt = s.clock.Now()
	s.mu.Unlock()

	if anySucceeded && request.OnSuccess != nil {
		request.OnSuccess()
	}
}

func (s *SyncScheduler) syncAccount(ctx context.Context, account domain.ResolvedAccount, request Request) error {
	defer s.release(account.ID)

	s.triggered.Add(1)
	s.metrics.RecordSync(outcomeTriggered)

	startTime := time.Now()
	result, err := s.trigger.TriggerSync(ctx, domain.SyncRequest{
		AccountID: account.ID,
		Force:     request.Force,
		Days:      s.days(request.Bounds),
	})
	s.metrics.ObserveSyncLatency(time.Since(startTime))

	if err == nil && result != nil && !result.Success {
		message := result.Error
		if message == "" {
			message = "ingestão reportou falha"
		}
		err = errors.New(message)
	}
	if err != nil {
		s.failed.Add(1)
		s.metrics.RecordSync(outcomeFailed)
		return domain.NewSyncError(fmt.Errorf("%w: %w", domain.ErrSyncFailed, err), account.ID, "")
	}

	s.succeeded.Add(1)
	s.metrics.RecordSync(outcomeSucceeded)

	if err := s.store.SetLastSync(ctx, account.ID, s.clock.Now()); err != nil {
		log.ForContext(ctx).
			WithError(fmt.Errorf("%w: %w", domain.ErrSyncStateStorage, err)).
			WithField("account_id", account.ID).
			Warn("Erro ao gravar última sincronização")
	}

	return nil
}

// days cobre o intervalo exibido, limitado por MaxDays
func (s *SyncScheduler) days(bounds domain.DateBounds) int {
	days := bounds.Days()
	if days < 1 {
		days = 1
	}
	if s.config.MaxDays > 0 && days > s.config.MaxDays {
		days = s.config.MaxDays
	}
	return days
}

// Wait bloqueia até que as sincronizações em background terminem
func (s *SyncScheduler) Wait() {
	s.wg.Wait()
}

// Status retorna o estado atual do agendador
func (s *SyncScheduler) Status() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_today_throttle":    s.config.Policy.TodayThrottle.String(),
		"sync_default_throttle":  s.config.Policy.DefaultThrottle.String(),
		"sync_today_interval":    s.config.TodayInterval.String(),
		"sync_max_days":          s.config.MaxDays,
		"syncs_in_flight":        len(s.inFlight),
		"syncs_triggered":        s.triggered.Load(),
		"syncs_skipped":          s.skipped.Load(),
		"syncs_succeeded":        s.succeeded.Load(),
		"syncs_failed":           s.failed.Load(),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
