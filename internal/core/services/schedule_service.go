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
	"github.com/SscSPs/asset_depreciation/internal/utils/recurrence"
)

type scheduleService struct {
	BaseService
	scheduleRepo portsrepo.ScheduleRepositoryFacade
	runner       portssvc.DepreciationRunnerSvc
	evaluator    recurrence.Evaluator
}

// ScheduleOption is a functional option for configuring the schedule service
type ScheduleOption func(*scheduleService)

// WithScheduleClock overrides the clock used to evaluate due-ness.
func WithScheduleClock(now func() time.Time) ScheduleOption {
	return func(s *scheduleService) {
		s.now = now
	}
}

// WithEvaluator replaces the default one-minute evaluator.
func WithEvaluator(e recurrence.Evaluator) ScheduleOption {
	return func(s *scheduleService) {
		s.evaluator = e
	}
}

// NewScheduleService creates the service driven by the tick source.
func NewScheduleService(
	scheduleRepo portsrepo.ScheduleRepositoryFacade,
	runner portssvc.DepreciationRunnerSvc,
	options ...ScheduleOption,
) portssvc.ScheduleSvcFacade {
	svc := &scheduleService{
		scheduleRepo: scheduleRepo,
		runner:       runner,
		evaluator:    recurrence.NewEvaluator(time.Minute, time.Minute),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ScheduleSvcFacade = (*scheduleService)(nil)

// Tick re-reads the active schedule row, and when it is due claims the window
// and runs a catch-up pass. Losing the claim to another process is not an error.
func (s *scheduleService) Tick(ctx context.Context, name string) (*portssvc.TickOutcome, error) {
	now := s.Now()
	outcome := &portssvc.TickOutcome{ScheduleName: name}

	cfg, err := s.scheduleRepo.GetActiveSchedule(ctx, name)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Missing and inactive rows both mean there is nothing to run.
			outcome.Decision = recurrence.Decision{LocalNow: now, Reason: recurrence.ReasonInactive}
			s.LogDebug(ctx, "No active schedule", slog.String("schedule", name))
			return outcome, nil
		}
		s.LogError(ctx, err, "Failed to load schedule", slog.String("schedule", name))
		return outcome, err
	}

	decision, err := s.evaluator.Explain(*cfg, now)
	outcome.Decision = decision
	if err != nil {
		s.LogError(ctx, err, "Schedule misconfigured, skipping tick", slog.String("schedule", name))
		return outcome, err
	}
	if !decision.Due {
		s.LogDebug(ctx, "Schedule not due",
			slog.String("schedule", name),
			slog.String("reason", decision.Reason))
		return outcome, nil
	}

	claimed, err := s.scheduleRepo.ClaimRun(ctx, name, *decision.WindowStart, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to claim schedule window", slog.String("schedule", name))
		return outcome, fmt.Errorf("failed to claim window for schedule %s: %w", name, err)
	}
	if !claimed {
		s.LogInfo(ctx, "Schedule window already claimed",
			slog.String("schedule", name),
			slog.Time("window_start", *decision.WindowStart))
		return outcome, nil
	}
	outcome.Claimed = true

	s.LogInfo(ctx, "Scheduled depreciation run triggered",
		slog.String("schedule", name),
		slog.Time("window_start", *decision.WindowStart))
	result, err := s.runner.RunOnce(ctx, domain.CatchUp)
	outcome.Result = result
	if err != nil {
		return outcome, err
	}
	return outcome, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, name string) (*domain.ScheduleConfig, error) {
	cfg, err := s.scheduleRepo.GetSchedule(ctx, name)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Diagnose evaluates the schedule at the current instant without claiming anything.
func (s *scheduleService) Diagnose(ctx context.Context, name string) (*domain.ScheduleConfig, recurrence.Decision, error) {
	cfg, err := s.scheduleRepo.GetSchedule(ctx, name)
	if err != nil {
		return nil, recurrence.Decision{}, err
	}
	decision, err := s.evaluator.Explain(*cfg, s.Now())
	if err != nil {
		s.LogWarn(ctx, "Schedule diagnosis found a configuration error",
			slog.String("schedule", name),
			slog.String("error", err.Error()))
	}
	return cfg, decision, err
}
