// Package scheduler fornece a abstração de tarefas recorrentes usada pela
// ressincronização periódica do painel.
package scheduler

import (
	"time"
)

// CancelFunc interrompe uma tarefa agendada; chamadas repetidas são seguras
type CancelFunc func()

// Periodic executa task a cada interval, sem execução imediata no agendamento
type Periodic interface {
	Every(interval time.Duration, task func()) (CancelFunc, error)
}
