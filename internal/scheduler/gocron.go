package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
)

// GocronPeriodic agenda as tarefas em um único gocron.Scheduler compartilhado
type GocronPeriodic struct {
	scheduler *gocron.Scheduler
	startOnce sync.Once
}

func NewGocronPeriodic(location *time.Location) *GocronPeriodic {
	if location == nil {
		location = time.Local
	}
	return &GocronPeriodic{
		scheduler: gocron.NewScheduler(location),
	}
}

// Start inicia o agendador e o para quando o contexto for cancelado
func (p *GocronPeriodic) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		logrus.Info("Iniciando agendador de tarefas periódicas")
		p.scheduler.StartAsync()

		go func() {
			<-ctx.Done()
			logrus.Info("Parando agendador de tarefas periódicas")
			p.scheduler.Stop()
		}()
	})
}

func (p *GocronPeriodic) Every(interval time.Duration, task func()) (CancelFunc, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("intervalo inválido: %s", interval)
	}

	job, err := p.scheduler.Every(interval).WaitForSchedule().SingletonMode().Do(task)
	if err != nil {
		return nil, fmt.Errorf("erro ao agendar tarefa periódica: %w", err)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			p.scheduler.RemoveByReference(job)
		})
	}, nil
}

// Jobs retorna a quantidade de tarefas agendadas
func (p *GocronPeriodic) Jobs() int {
	return p.scheduler.Len()
}

func (p *GocronPeriodic) Stop() {
	p.scheduler.Stop()
}
