package sync

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"attendance-sync/internal/features/attendance"
	"attendance-sync/internal/observability"
	"attendance-sync/internal/smartsheet"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	// Run executes one sync for the inclusive date range. It rejects
	// overlapping invocations with ErrSyncInFlight. The caller decides what
	// the run means (auto vs manual) and updates the status store itself.
	Run(ctx context.Context, start, end string) (Result, error)
	ListRuns(ctx context.Context, limit int64) ([]SyncRun, error)
}

type ServiceImpl struct {
	Source  attendance.Repository
	Sheet   smartsheet.Client
	RunRepo RunRepository
	Logger  *zap.Logger

	uploader *uploader
	inFlight atomic.Bool
}

func NewService(source attendance.Repository, sheet smartsheet.Client, runRepo RunRepository, logger *zap.Logger, loc *time.Location) Service {
	return &ServiceImpl{
		Source:   source,
		Sheet:    sheet,
		RunRepo:  runRepo,
		Logger:   logger,
		uploader: newUploader(sheet, loc, logger),
	}
}

func (s *ServiceImpl) Run(ctx context.Context, start, end string) (Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrSyncInFlight
	}
	defer s.inFlight.Store(false)

	run := &SyncRun{
		ID:        uuid.NewString(),
		StartTime: time.Now(),
		Status:    "in_progress",
		Range:     DateRange{Start: start, End: end},
	}
	_ = s.RunRepo.Create(ctx, run)

	var result Result
	var syncErr error

	defer func() {
		run.EndTime = time.Now()
		run.Inserted = result.Inserted
		run.Skipped = result.Skipped
		if syncErr != nil {
			run.Status = "failed"
			run.Error = syncErr.Error()
		} else {
			run.Status = "success"
		}
		// The request context may already be gone when finalizing.
		_ = s.RunRepo.Update(context.Background(), run)
	}()

	result, syncErr = s.execute(ctx, start, end)
	if syncErr != nil {
		observability.RecordSyncFailure()
		s.Logger.Error("sync failed",
			zap.String("start", start),
			zap.String("end", end),
			zap.Error(syncErr))
		return Result{}, syncErr
	}

	observability.RecordSyncSuccess(result.Inserted, result.Skipped)
	s.Logger.Info("sync completed",
		zap.String("start", start),
		zap.String("end", end),
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// execute is the sync pipeline: destination snapshot, source range, key set,
// diff, upload. Steps are strictly sequential; a failure partway leaves
// already-appended chunks committed (no rollback, no retry).
func (s *ServiceImpl) execute(ctx context.Context, start, end string) (Result, error) {
	sheet, err := s.Sheet.GetSheet(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch destination sheet: %w", err)
	}

	existing, err := existingKeys(sheet)
	if err != nil {
		return Result{}, err
	}

	records, err := s.Source.FetchRange(ctx, start, end)
	if err != nil {
		return Result{}, fmt.Errorf("fetch source range: %w", err)
	}

	newRecords := missingRecords(records, existing)
	if len(newRecords) > 0 {
		if err := s.uploader.upload(ctx, sheet.Columns, newRecords); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Inserted: len(newRecords),
		Skipped:  len(records) - len(newRecords),
	}, nil
}

func (s *ServiceImpl) ListRuns(ctx context.Context, limit int64) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.RunRepo.List(ctx, limit)
}
