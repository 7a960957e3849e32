package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendance-sync/internal/config"
	sync_feature "attendance-sync/internal/features/sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Service drives the automatic syncs. Each configured schedule syncs today's
// attendance only; operators use the manual endpoint for wider ranges.
type Service interface {
	Start() error
	Stop() error
}

type ServiceImpl struct {
	cfg    *config.Config
	sync   sync_feature.Service
	status *sync_feature.StatusStore
	logger *zap.Logger
	loc    *time.Location

	scheduler *cron.Cron
	now       func() time.Time
}

func NewService(cfg *config.Config, syncService sync_feature.Service, status *sync_feature.StatusStore, logger *zap.Logger, loc *time.Location) Service {
	return &ServiceImpl{
		cfg:    cfg,
		sync:   syncService,
		status: status,
		logger: logger,
		loc:    loc,
		now:    time.Now,
	}
}

func (s *ServiceImpl) Start() error {
	s.scheduler = cron.New(cron.WithLocation(s.loc))

	for _, spec := range s.cfg.Schedules {
		if _, err := s.scheduler.AddFunc(spec, s.runAutoSync); err != nil {
			return fmt.Errorf("register schedule %q: %w", spec, err)
		}
	}

	s.scheduler.Start()
	s.logger.Info("auto sync scheduler started",
		zap.Strings("schedules", s.cfg.Schedules),
		zap.String("timezone", s.loc.String()))
	return nil
}

func (s *ServiceImpl) Stop() error {
	if s.scheduler != nil {
		ctx := s.scheduler.Stop()
		<-ctx.Done()
	}
	return nil
}

// runAutoSync syncs today's records. A failed run leaves the status untouched
// so a stale-but-true timestamp is shown instead of a false success.
func (s *ServiceImpl) runAutoSync() {
	today := s.now().UTC().Format("2006-01-02")

	result, err := s.sync.Run(context.Background(), today, today)
	if err != nil {
		if errors.Is(err, sync_feature.ErrSyncInFlight) {
			s.logger.Warn("auto sync skipped, another sync is in flight",
				zap.String("trigger", sync_feature.TriggerAuto))
			return
		}
		s.logger.Error("auto sync failed",
			zap.String("trigger", sync_feature.TriggerAuto),
			zap.String("date", today),
			zap.Error(err))
		return
	}

	now := s.now().UTC()
	s.status.Replace(sync_feature.Status{
		LastUpdated: &now,
		Type:        sync_feature.TriggerAuto,
	})

	s.logger.Info("auto sync completed",
		zap.String("trigger", sync_feature.TriggerAuto),
		zap.String("date", today),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped))
}
