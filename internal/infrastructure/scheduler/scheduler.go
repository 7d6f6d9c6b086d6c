// Package scheduler ejecuta los procesos periódicos de la API.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/Permuta-api/pkg/logger"
)

const jobTimeout = 5 * time.Minute

// AccountExpirer lo implementa usecase.UserUseCase.
type AccountExpirer interface {
	ExpireAccounts(ctx context.Context) (int64, error)
}

// Scheduler envuelve robfig/cron con expresiones estándar de 5 campos.
type Scheduler struct {
	cron *cron.Cron
	log  *logger.Logger
}

// New crea el scheduler sin iniciarlo.
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		log:  log.Component("scheduler"),
	}
}

// AddAccountExpiry programa la degradación a free de los planes vencidos.
func (s *Scheduler) AddAccountExpiry(spec string, expirer AccountExpirer) error {
	_, err := s.cron.AddFunc(spec, func() { s.runAccountExpiry(expirer) })
	if err != nil {
		return fmt.Errorf("scheduler: expresión %q inválida: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) runAccountExpiry(expirer AccountExpirer) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	n, err := expirer.ExpireAccounts(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("job", "account_expiry").Msg("falló el vencimiento de planes")
		return
	}
	s.log.Info().
		Str("job", "account_expiry").
		Int64("downgraded", n).
		Dur("elapsed", time.Since(start)).
		Msg("planes vencidos procesados")
}

// Start inicia el cron en su propia goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop detiene el cron y espera a que terminen los jobs en curso o a que ctx expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
