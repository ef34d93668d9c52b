package jobs

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	checkInService "hotel/internal/domains/checkin/service"
	"hotel/shared/constant"
	"hotel/shared/timezone"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const jobTimeout = 5 * time.Minute

// Scheduler runs background sweeps on cron specs from config.
type Scheduler struct {
	cron    *cron.Cron
	checkIn checkInService.CheckIn
	cfg     *config.Config
	otel    otel.Otel
}

func New(checkIn checkInService.CheckIn, cfg *config.Config, otel otel.Otel) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(timezone.GetLocation()), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		checkIn: checkIn,
		cfg:     cfg,
		otel:    otel,
	}
}

// Start registers the jobs and starts the cron loop. It is a no-op when jobs are disabled.
func (s *Scheduler) Start() error {
	if !s.cfg.Jobs.Enable {
		log.Info().Msg("background jobs disabled")

		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Jobs.CompleteStaysSpec, s.CompleteStays); err != nil {
		return fmt.Errorf("failed to schedule complete stays job: %w", err)
	}

	s.cron.Start()

	log.Info().Str("spec", s.cfg.Jobs.CompleteStaysSpec).Msg("background jobs started")

	return nil
}

// Stop waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		log.Warn().Msg("background jobs did not finish before shutdown")
	}
}

// CompleteStays completes every checked-in booking whose stay is over.
func (s *Scheduler) CompleteStays() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.SystemUser)

	ctx, scope := s.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".CompleteStays")
	defer scope.End()

	completed, err := s.checkIn.CompleteDueStays(ctx, timezone.Now())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete due stays")

		return
	}

	scope.SetAttribute("completed", completed)

	log.Info().Int("completed", completed).Msg("completed due stays")
}
