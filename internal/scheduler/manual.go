package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/ads-dashboard-api/pkg/clock"
)

type manualTask struct {
	interval time.Duration
	next     time.Time
	task     func()
}

// ManualPeriodic executa as tarefas apenas quando o tempo virtual avança.
// As tarefas rodam de forma síncrona dentro de Advance.
type ManualPeriodic struct {
	mu     sync.Mutex
	clock  *clock.Fake
	tasks  map[int]*manualTask
	nextID int
}

func NewManualPeriodic(clk *clock.Fake) *ManualPeriodic {
	return &ManualPeriodic{
		clock: clk,
		tasks: make(map[int]*manualTask),
	}
}

func (p *ManualPeriodic) Every(interval time.Duration, task func()) (CancelFunc, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("intervalo inválido: %s", interval)
	}

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.tasks[id] = &manualTask{
		interval: interval,
		next:     p.clock.Now().Add(interval),
		task:     task,
	}
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.tasks, id)
		p.mu.Unlock()
	}, nil
}

// Advance avança o relógio e dispara cada tarefa uma vez por intervalo vencido
func (p *ManualPeriodic) Advance(d time.Duration) {
	target := p.clock.Now().Add(d)

	for {
		id, due, ok := p.nextDue(target)
		if !ok {
			break
		}

		if due.next.After(p.clock.Now()) {
			p.clock.Set(due.next)
		}
		due.task()

		p.mu.Lock()
		if current, exists := p.tasks[id]; exists && current == due {
			due.next = due.next.Add(due.interval)
		}
		p.mu.Unlock()
	}

	if target.After(p.clock.Now()) {
		p.clock.Set(target)
	}
}

func (p *ManualPeriodic) nextDue(target time.Time) (int, *manualTask, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	foundID := -1
	var found *manualTask
	for id, task := range p.tasks {
		if task.next.After(target) {
			continue
		}
		if found == nil || task.next.Before(found.next) || (task.next.Equal(found.next) && id < foundID) {
			found = task
			foundID = id
		}
	}

	return foundID, found, found != nil
}

// Active retorna quantas tarefas continuam agendadas
func (p *ManualPeriodic) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tasks)
}
