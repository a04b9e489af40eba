package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	portsrepo "github.com/SscSPs/asset_depreciation/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/asset_depreciation/internal/core/ports/services"
	"github.com/SscSPs/asset_depreciation/internal/middleware"
	"github.com/SscSPs/asset_depreciation/internal/utils/depreciation"
	"github.com/SscSPs/asset_depreciation/internal/utils/recurrence"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// depreciationService is the run coordinator: it walks the fleet, records ledger
// entries per outstanding period and writes the run outcome back to the schedule.
type depreciationService struct {
	BaseService
	assetRepo    portsrepo.AssetRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	scheduleName string
	scale        int32
	concurrency  int
	location     *time.Location
}

// DepreciationOption is a functional option for configuring the depreciation service
type DepreciationOption func(*depreciationService)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) DepreciationOption {
	return func(s *depreciationService) {
		s.now = now
	}
}

// WithScheduleName selects the schedule row run metadata is written to.
func WithScheduleName(name string) DepreciationOption {
	return func(s *depreciationService) {
		s.scheduleName = name
	}
}

// WithAmountScale sets the number of decimal places amounts are rounded to.
func WithAmountScale(scale int32) DepreciationOption {
	return func(s *depreciationService) {
		s.scale = scale
	}
}

// WithConcurrency bounds how many assets are processed in parallel.
func WithConcurrency(n int) DepreciationOption {
	return func(s *depreciationService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithLocation sets the zone used to decide the current period when the
// schedule row is missing or carries an unusable timezone.
func WithLocation(loc *time.Location) DepreciationOption {
	return func(s *depreciationService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewDepreciationService creates a new depreciation service with the provided options
func NewDepreciationService(
	assetRepo portsrepo.AssetRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
	options ...DepreciationOption,
) portssvc.DepreciationSvcFacade {
	svc := &depreciationService{
		assetRepo:    assetRepo,
		ledgerRepo:   ledgerRepo,
		scheduleRepo: scheduleRepo,
		scheduleName: domain.DefaultScheduleName,
		scale:        depreciation.DefaultScale,
		concurrency:  1,
		location:     time.UTC,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DepreciationSvcFacade = (*depreciationService)(nil)

func (s *depreciationService) RunOnce(ctx context.Context, mode domain.RunMode) (*domain.RunResult, error) {
	if _, err := domain.ParseRunMode(string(mode)); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	startedAt := s.Now()
	result := &domain.RunResult{
		RunID:     uuid.NewString(),
		Mode:      mode,
		StartedAt: startedAt,
		Details:   []domain.AssetOutcome{},
	}
	ctx = s.withRunLogger(ctx, result)

	schedule, err := s.loadSchedule(ctx)
	if err != nil {
		return s.fail(ctx, result, nil, err)
	}
	asOf := startedAt.In(s.periodLocation(ctx, schedule))

	assets, err := s.assetRepo.ListDepreciableAssets(ctx)
	if err != nil {
		return s.fail(ctx, result, schedule, fmt.Errorf("failed to list depreciable assets: %w", err))
	}
	s.LogInfo(ctx, "Depreciation run started",
		slog.Int("asset_count", len(assets)),
		slog.String("as_of_period", domain.PeriodOf(asOf).String()))

	details := make([]domain.AssetOutcome, len(assets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, asset := range assets {
		g.Go(func() error {
			outcome, err := s.processAsset(gctx, result.RunID, mode, asset, asOf)
			details[i] = outcome
			return err
		})
	}
	runErr := g.Wait()

	result.TotalAssets = len(assets)
	for _, d := range details {
		if d.AssetID == "" {
			continue // never reached after a run-level failure
		}
		result.Details = append(result.Details, d)
		result.TotalPeriodsProcessed += d.PeriodsProcessed
		if d.NewEntries > 0 {
			result.AssetsWithNewEntries++
		}
		if d.Failed() {
			result.FailedAssets++
		}
	}

	if runErr != nil {
		return s.fail(ctx, result, schedule, runErr)
	}

	result.Success = true
	result.FinishedAt = s.Now()
	result.Timestamp = result.FinishedAt
	s.persist(ctx, schedule, result)

	s.LogInfo(ctx, "Depreciation run completed",
		slog.Int("total_assets", result.TotalAssets),
		slog.Int("periods_processed", result.TotalPeriodsProcessed),
		slog.Int("assets_with_new_entries", result.AssetsWithNewEntries),
		slog.Int("failed_assets", result.FailedAssets))
	return result, nil
}

// processAsset records every outstanding period for one asset. Data-integrity
// problems end up in the outcome; store errors are returned and abort the run.
func (s *depreciationService) processAsset(ctx context.Context, runID string, mode domain.RunMode, asset domain.Asset, asOf time.Time) (domain.AssetOutcome, error) {
	outcome := domain.AssetOutcome{AssetID: asset.AssetID, AssetTag: asset.AssetTag}

	periods, err := depreciation.OutstandingPeriods(asset, asOf)
	if err != nil {
		return s.assetFailure(ctx, outcome, err)
	}
	outstanding := len(periods)
	if mode == domain.CurrentPeriodOnly {
		periods = depreciation.LatestOnly(periods)
	}

	horizon := asset.HorizonPeriod()
	fullyDepreciated := false
	for _, period := range periods {
		amount, err := depreciation.ComputeAmount(asset, period, s.scale)
		if err != nil {
			outcome.PeriodsPending = outstanding - outcome.PeriodsProcessed
			return s.assetFailure(ctx, outcome, err)
		}

		entry := domain.LedgerEntry{
			EntryID:    uuid.NewString(),
			AssetID:    asset.AssetID,
			Period:     period,
			Amount:     amount,
			RunID:      runID,
			ComputedAt: s.Now(),
		}
		recorded, err := s.ledgerRepo.RecordEntry(ctx, entry)
		if err != nil {
			return outcome, fmt.Errorf("failed to record depreciation for asset %s period %s: %w", asset.AssetTag, period, err)
		}
		if recorded == domain.Recorded {
			outcome.NewEntries++
		} else {
			s.LogDebug(ctx, "Ledger entry already present",
				slog.String("asset_id", asset.AssetID),
				slog.String("period", period.String()))
		}

		if err := s.assetRepo.AdvanceLastDepreciatedPeriod(ctx, asset.AssetID, period); err != nil {
			return outcome, fmt.Errorf("failed to advance last depreciated period for asset %s to %s: %w", asset.AssetTag, period, err)
		}
		outcome.PeriodsProcessed++

		if period == horizon {
			if err := s.assetRepo.MarkFullyDepreciated(ctx, asset.AssetID, s.Now()); err != nil {
				return outcome, fmt.Errorf("failed to mark asset %s fully depreciated: %w", asset.AssetTag, err)
			}
			fullyDepreciated = true
		}
	}

	outcome.PeriodsPending = outstanding - outcome.PeriodsProcessed
	outcome.Message = outcomeMessage(mode, outcome, periods, fullyDepreciated)
	return outcome, nil
}

func outcomeMessage(mode domain.RunMode, outcome domain.AssetOutcome, periods []domain.Period, fullyDepreciated bool) string {
	if outcome.PeriodsProcessed == 0 {
		return "up to date"
	}
	msg := fmt.Sprintf("processed %d period(s) through %s", outcome.PeriodsProcessed, periods[len(periods)-1])
	if mode == domain.CurrentPeriodOnly && outcome.PeriodsPending > 0 {
		msg += fmt.Sprintf("; %d earlier period(s) not processed in current-period mode", outcome.PeriodsPending)
	}
	if fullyDepreciated {
		msg += "; fully depreciated"
	}
	return msg
}

func (s *depreciationService) assetFailure(ctx context.Context, outcome domain.AssetOutcome, err error) (domain.AssetOutcome, error) {
	if !errors.Is(err, apperrors.ErrDataIntegrity) {
		return outcome, err
	}
	failedAt := s.Now()
	outcome.Error = err.Error()
	outcome.FailedAt = &failedAt
	outcome.Message = "skipped: asset data cannot be depreciated"
	s.LogWarn(ctx, "Asset skipped during depreciation run",
		slog.String("asset_id", outcome.AssetID),
		slog.String("asset_tag", outcome.AssetTag),
		slog.String("error", err.Error()))
	return outcome, nil
}

func (s *depreciationService) loadSchedule(ctx context.Context) (*domain.ScheduleConfig, error) {
	schedule, err := s.scheduleRepo.GetSchedule(ctx, s.scheduleName)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Schedule row not found, run metadata will not be stored",
				slog.String("schedule", s.scheduleName))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read schedule %s: %w", s.scheduleName, err)
	}
	return schedule, nil
}

func (s *depreciationService) periodLocation(ctx context.Context, schedule *domain.ScheduleConfig) *time.Location {
	if schedule == nil || schedule.Timezone == "" {
		return s.location
	}
	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		s.LogWarn(ctx, "Schedule timezone unusable, falling back",
			slog.String("timezone", schedule.Timezone),
			slog.String("fallback", s.location.String()))
		return s.location
	}
	return loc
}

func (s *depreciationService) fail(ctx context.Context, result *domain.RunResult, schedule *domain.ScheduleConfig, err error) (*domain.RunResult, error) {
	result.Success = false
	result.Error = err.Error()
	result.FinishedAt = s.Now()
	result.Timestamp = result.FinishedAt
	s.LogError(ctx, err, "Depreciation run failed",
		slog.Int("periods_processed", result.TotalPeriodsProcessed))
	s.persist(ctx, schedule, result)
	return result, err
}

// persist writes the outcome to the schedule row. A failure here is logged only:
// the window was already claimed and recorded entries stay valid.
func (s *depreciationService) persist(ctx context.Context, schedule *domain.ScheduleConfig, result *domain.RunResult) {
	if schedule == nil {
		return
	}
	var nextRunAt *time.Time
	if next, err := recurrence.NextRunAt(*schedule, result.FinishedAt); err == nil {
		nextRunAt = &next
	} else {
		s.LogWarn(ctx, "Cannot compute next run for schedule",
			slog.String("schedule", schedule.Name),
			slog.String("error", err.Error()))
	}
	if err := s.scheduleRepo.UpdateRunMetadata(ctx, schedule.Name, result.StartedAt, nextRunAt, *result); err != nil {
		s.LogError(ctx, err, "Failed to store run metadata", slog.String("schedule", schedule.Name))
	}
}

func (s *depreciationService) withRunLogger(ctx context.Context, result *domain.RunResult) context.Context {
	logger := s.GetLogger(ctx).With(
		slog.String("run_id", result.RunID),
		slog.String("mode", string(result.Mode)),
	)
	return middleware.WithLogger(ctx, logger)
}

func (s *depreciationService) ListAssetEntries(ctx context.Context, assetID string) ([]domain.LedgerEntry, error) {
	if _, err := s.assetRepo.FindAssetByID(ctx, assetID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find asset", slog.String("asset_id", assetID))
		}
		return nil, err
	}

	entries, err := s.ledgerRepo.ListEntriesByAsset(ctx, assetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries", slog.String("asset_id", assetID))
		return nil, fmt.Errorf("failed to list ledger entries for asset %s: %w", assetID, err)
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}
