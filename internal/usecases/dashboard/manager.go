package dashboard

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/ads-dashboard-api/internal/scheduler"
	"github.com/vfg2006/ads-dashboard-api/pkg/clock"
	"github.com/vfg2006/ads-dashboard-api/pkg/log"
	"github.com/vfg2006/ads-dashboard-api/pkg/utils"
)

const minSweepInterval = time.Minute

// ManagerConfig limita quantas visões ficam abertas.
// ViewTTL zero desliga a expiração; MaxViewsPerOwner zero desliga o limite por usuário.
type ManagerConfig struct {
	ViewTTL          time.Duration
	MaxViewsPerOwner int
	Clock            clock.Clock
}

type view struct {
	store    *Store
	lastSeen time.Time
}

// Manager mantém as visões abertas, uma por tela consumidora
type Manager struct {
	deps   Dependencies
	config ManagerConfig

	mu        sync.Mutex
	views     map[string]*view
	stopSweep scheduler.CancelFunc
}

func NewManager(deps Dependencies, config ManagerConfig) *Manager {
	if config.Clock == nil {
		config.Clock = clock.Real()
	}

	m := &Manager{
		deps:   deps,
		config: config,
		views:  make(map[string]*view),
	}

	if config.ViewTTL > 0 && deps.Periodic != nil {
		stop, err := deps.Periodic.Every(sweepInterval(config.ViewTTL), func() {
			m.EvictIdle()
		})
		if err != nil {
			log.L.WithError(err).Error("Erro ao agendar expiração de visões ociosas")
		} else {
			m.stopSweep = stop
		}
	}

	return m
}

// sweepInterval varre a cada metade do TTL, no mínimo uma vez por minuto
func sweepInterval(ttl time.Duration) time.Duration {
	return max(ttl/2, minSweepInterval)
}

// Create abre uma visão. Acima de MaxViewsPerOwner a visão usada há mais tempo pelo mesmo usuário é encerrada.
func (m *Manager) Create(owner string) (*Store, error) {
	id, err := utils.GenerateViewID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da visão: %w", err)
	}

	store := NewStore(id, owner, m.deps)

	m.mu.Lock()
	evicted := m.overOwnerLimitLocked(owner)
	m.views[id] = &view{store: store, lastSeen: m.config.Clock.Now()}
	count := len(m.views)
	m.mu.Unlock()

	m.closeAll(evicted, "limite de visões por usuário")
	m.deps.Metrics.SetActiveViews(count)
	log.L.WithFields(log.Fields{"view_id": id, "user_id": owner}).Debug("Visão do painel criada")

	return store, nil
}

// overOwnerLimitLocked remove do mapa as visões mais antigas do usuário para abrir espaço para uma nova
func (m *Manager) overOwnerLimitLocked(owner string) []*Store {
	if m.config.MaxViewsPerOwner <= 0 {
		return nil
	}

	owned := make([]*view, 0)
	for _, v := range m.views {
		if v.store.Owner() == owner {
			owned = append(owned, v)
		}
	}
	excess := len(owned) - m.config.MaxViewsPerOwner + 1
	if excess <= 0 {
		return nil
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].lastSeen.Before(owned[j].lastSeen)
	})

	evicted := make([]*Store, 0, excess)
	for _, v := range owned[:excess] {
		delete(m.views, v.store.ID())
		evicted = append(evicted, v.store)
	}
	return evicted
}

// Get devolve a visão e renova seu prazo de expiração
func (m *Manager) Get(id string) (*Store, error) {
	m.mu.Lock()
	v, ok := m.views[id]
	if ok {
		v.lastSeen = m.config.Clock.Now()
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrViewNotFound
	}
	return v.store, nil
}

// Delete encerra a visão; ids desconhecidos devolvem ErrViewNotFound
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	v, ok := m.views[id]
	delete(m.views, id)
	count := len(m.views)
	m.mu.Unlock()

	if !ok {
		return ErrViewNotFound
	}

	v.store.Close()
	m.deps.Metrics.SetActiveViews(count)
	log.L.WithField("view_id", id).Debug("Visão do painel encerrada")

	return nil
}

// EvictIdle encerra as visões sem acesso há mais de ViewTTL e devolve quantas foram encerradas
func (m *Manager) EvictIdle() int {
	if m.config.ViewTTL <= 0 {
		return 0
	}

	now := m.config.Clock.Now()

	m.mu.Lock()
	idle := make([]*Store, 0)
	for id, v := range m.views {
		if now.Sub(v.lastSeen) >= m.config.ViewTTL {
			delete(m.views, id)
			idle = append(idle, v.store)
		}
	}
	count := len(m.views)
	m.mu.Unlock()

	if len(idle) == 0 {
		return 0
	}

	m.closeAll(idle, "visão ociosa")
	m.deps.Metrics.SetActiveViews(count)
	return len(idle)
}

func (m *Manager) closeAll(stores []*Store, reason string) {
	for _, store := range stores {
		store.Close()
		log.L.WithFields(log.Fields{
			"view_id": store.ID(),
			"user_id": store.Owner(),
			"reason":  reason,
		}).Info("Visão do painel expirada")
	}
}

func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.views)
}

// Close encerra todas as visões, usado no desligamento do servidor
func (m *Manager) Close() {
	m.mu.Lock()
	views := m.views
	m.views = make(map[string]*view)
	stop := m.stopSweep
	m.stopSweep = nil
	m.mu.Unlock()

	if stop != nil {
		stop()
	}
	for _, v := range views {
		v.store.Close()
	}
	m.deps.Metrics.SetActiveViews(0)
}
