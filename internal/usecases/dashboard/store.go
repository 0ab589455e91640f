// Package dashboard expõe o MetricsStore: o snapshot atual de uma visão, o
// indicador de carregamento, o instante da última sincronização e o refetch.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/ads-dashboard-api/internal/domain"
	"github.com/vfg2006/ads-dashboard-api/internal/metrics"
	"github.com/vfg2006/ads-dashboard-api/internal/scheduler"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/account"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/insighting"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/period"
	"github.com/vfg2006/ads-dashboard-api/internal/usecases/syncing"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
)

// Syncer é a parte do SyncScheduler usada pelas visões
type Syncer interface {
	Schedule(ctx context.Context, request syncing.Request) int
	State(ctx context.Context, accountID string) domain.SyncState
	TodayInterval() time.Duration
}

type Dependencies struct {
	Period   *period.Resolver
	Accounts account.AccountResolver
	Loader   insighting.Loader
	Syncer   Syncer
	Periodic scheduler.Periodic
	Metrics  *metrics.Metrics
}

// Selection é o que o usuário escolheu no painel
type Selection struct {
	Filter domain.DateFilter
	Custom *domain.CustomRange
	View   domain.ViewContext
}

// State é o contrato exposto aos consumidores
type State struct {
	*domain.MetricsSnapshot
	IsLoading    bool       `json:"isLoading"`
	LastSyncTime *time.Time `json:"lastSyncTime"`
	Error        string     `json:"error,omitempty"`
}

type Store struct {
	id     string
	owner  string
	deps   Dependencies
	ctx    context.Context
	cancel context.CancelFunc

	mu           sync.Mutex
	selection    *Selection
	accounts     []domain.ResolvedAccount
	snapshot     *domain.MetricsSnapshot
	isLoading    bool
	lastSyncTime *time.Time
	lastErr      error
	generation   uint64
	loadingGen   uint64
	stopTimer    scheduler.CancelFunc
	closed       bool
}

func NewStore(id string, owner string, deps Dependencies) *Store {
	ctx, cancel := context.WithCancel(log.WithViewID(context.Background(), id))
	return &Store{
		id:       id,
		owner:    owner,
		deps:     deps,
		ctx:      ctx,
		cancel:   cancel,
		snapshot: domain.EmptySnapshot(domain.DateBounds{}),
	}
}

func (s *Store) ID() string {
	return s.id
}

func (s *Store) Owner() string {
	return s.owner
}

// Load troca a seleção, executa o caminho de leitura e avalia a sincronização.
// Nunca falha: erros ficam registrados em State.Error.
func (s *Store) Load(ctx context.Context, selection Selection) State {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return s.State()
	}
	s.selection = &selection
	s.mu.Unlock()

	s.read(ctx, selection, false)
	s.updateTimer(selection.Filter)

	return s.State()
}

// Refetch repete o caminho de leitura com a seleção atual
func (s *Store) Refetch(ctx context.Context) State {
	selection, ok := s.currentSelection()
	if !ok {
		return s.State()
	}

	s.read(ctx, selection, false)
	return s.State()
}

// Sync força a sincronização das contas da seleção atual, ignorando o throttle
func (s *Store) Sync() int {
	return s.forceSync()
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		MetricsSnapshot: s.snapshot,
		IsLoading:       s.isLoading,
		LastSyncTime:    s.lastSyncTime,
	}
	if s.lastErr != nil {
		state.Error = s.lastErr.Error()
	}
	return state
}

// Close cancela o timer periódico e faz com que resultados em andamento sejam descartados
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	stop := s.stopTimer
	s.stopTimer = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	s.cancel()
}

func (s *Store) currentSelection() (Selection, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}

// read é o caminho de leitura. silent não altera isLoading e não reavalia a sincronização.
func (s *Store) read(ctx context.Context, selection Selection, silent bool) {
	s.mu.Lock()
	s.generation++
	generation := s.generation
	if !silent {
		s.isLoading = true
		s.loadingGen = generation
	}
	s.mu.Unlock()

	startTime := time.Now()
	bounds := s.deps.Period.Resolve(selection.Filter, selection.Custom)
	now := s.deps.Period.Now()

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"filter":     bounds.Filter,
		"start_date": bounds.Start,
		"end_date":   bounds.End,
	})
	if bounds.Fallback {
		logger.WithField("requested_filter", selection.Filter).Debug("Filtro inválido ou incompleto, usando last7")
	}

	var loadErr error
	accounts, err := s.deps.Accounts.Resolve(ctx, selection.View)
	if err != nil {
		logger.WithError(err).Error("Erro ao resolver contas da visão")
		loadErr = err
	}

	var snapshot *domain.MetricsSnapshot
	if len(accounts) == 0 {
		if loadErr == nil {
			logger.Debug(domain.NewResolutionError("nenhuma conta para a seleção").Error())
		}
		snapshot = domain.EmptySnapshot(bounds)
		snapshot.GeneratedAt = now
	} else {
		snapshot, err = s.load(ctx, insighting.LoadRequest{
			Accounts: accounts,
			Bounds:   bounds,
			Now:      now,
		})
		if err != nil {
			logger.WithError(err).Error("Erro ao carregar métricas, exibindo snapshot zerado")
			loadErr = err
		}
		if snapshot == nil {
			snapshot = domain.EmptySnapshot(bounds)
		}
	}

	lastSync := s.lastSync(ctx, accounts)
	s.deps.Metrics.RecordLoad(string(bounds.Filter), loadErr != nil, time.Since(startTime))

	s.mu.Lock()
	if !silent && generation == s.loadingGen {
		s.isLoading = false
	}
	if s.closed || generation != s.generation {
		s.mu.Unlock()
		logger.Debug("Resultado descartado: visão encerrada ou carga mais recente em andamento")
		return
	}
	s.snapshot = snapshot
	s.accounts = accounts
	s.lastSyncTime = lastSync
	s.lastErr = loadErr
	s.mu.Unlock()

	if silent {
		return
	}

	s.deps.Syncer.Schedule(s.ctx, syncing.Request{
		Accounts:      accounts,
		Bounds:        bounds,
		SnapshotEmpty: snapshot.IsEmpty(),
		OnSuccess:     s.reloadSilently,
	})
}

// load converte um panic do caminho de leitura em erro, para que a carga termine
// com snapshot zerado e isLoading limpo
func (s *Store) load(ctx context.Context, request insighting.LoadRequest) (snapshot *domain.MetricsSnapshot, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			snapshot = nil
			err = fmt.Errorf("%w: panic ao calcular o snapshot: %v", domain.ErrSnapshotCompute, recovered)
		}
	}()
	return s.deps.Loader.Load(ctx, request)
}

// reloadSilently roda após uma sincronização bem sucedida, sem indicador de carregamento
func (s *Store) reloadSilently() {
	selection, ok := s.currentSelection()
	if !ok {
		return
	}
	s.read(s.ctx, selection, true)
}

func (s *Store) forceSync() int {
	selection, ok := s.currentSelection()
	if !ok {
		return 0
	}

	s.mu.Lock()
	accounts := s.accounts
	s.mu.Unlock()

	return s.deps.Syncer.Schedule(s.ctx, syncing.Request{
		Accounts:  accounts,
		Bounds:    s.deps.Period.Resolve(selection.Filter, selection.Custom),
		Force:     true,
		OnSuccess: s.reloadSilently,
	})
}

// updateTimer mantém a ressincronização periódica ativa apenas enquanto o filtro é "today"
func (s *Store) updateTimer(filter domain.DateFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	if filter != domain.DateFilterToday {
		if s.stopTimer != nil {
			s.stopTimer()
			s.stopTimer = nil
		}
		return
	}

	if s.stopTimer != nil || s.deps.Periodic == nil {
		return
	}

	stop, err := s.deps.Periodic.Every(s.deps.Syncer.TodayInterval(), func() {
		s.forceSync()
	})
	if err != nil {
		log.ForContext(s.ctx).WithError(err).Error("Erro ao agendar ressincronização periódica")
		return
	}
	s.stopTimer = stop
}

// lastSync devolve a sincronização mais recente entre as contas resolvidas
func (s *Store) lastSync(ctx context.Context, accounts []domain.ResolvedAccount) *time.Time {
	var latest *time.Time
	for _, acc := range accounts {
		state := s.deps.Syncer.State(ctx, acc.ID)
		if state.LastSyncAt != nil && (latest == nil || state.LastSyncAt.After(*latest)) {
			latest = state.LastSyncAt
		}
	}
	return latest
}

// ErrViewNotFound é devolvido pelo Manager para ids desconhecidos
var ErrViewNotFound = errors.New("dashboard view not found")
