package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/klabeseguimientos-netizen/intranet-sub005/internal/service"
)

// Scheduler ejecuta el barrido diario de contratos estancados.
type Scheduler struct {
	contratoSvc service.ContratoService
	logger      *zap.Logger
	cron        *cron.Cron
}

// New crea el planificador y registra el barrido con la expresión cron dada.
func New(contratoSvc service.ContratoService, expr string, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		contratoSvc: contratoSvc,
		logger:      logger,
		cron:        cron.New(),
	}

	if _, err := s.cron.AddFunc(expr, s.barrer); err != nil {
		return nil, err
	}

	return s, nil
}

// Start arranca el planificador en segundo plano.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("planificador de barrido iniciado")
}

// Stop detiene el planificador y espera a que termine el barrido en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("planificador de barrido detenido")
}

func (s *Scheduler) barrer() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	resumen, err := s.contratoSvc.BarrerEstancados(ctx, time.Now())
	if err != nil {
		s.logger.Error("barrido de contratos estancados fallido", zap.Error(err))
		return
	}

	s.logger.Info("barrido de contratos estancados completado",
		zap.Int("procesados", resumen.Procesados),
		zap.Int("notificados", resumen.Notificados))
}
