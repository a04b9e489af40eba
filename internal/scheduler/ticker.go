package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/asset_depreciation/internal/core/ports/services"
	"github.com/SscSPs/asset_depreciation/internal/middleware"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Ticker is the polling loop that asks the schedule service whether a run is
// due. Overlapping ticks are skipped while a run is still in progress.
type Ticker struct {
	cron     *cron.Cron
	svc      portssvc.ScheduleTickerSvc
	schedule string
	timeout  time.Duration
	logger   *slog.Logger
}

// New registers a tick for the named schedule on tickSpec (a five-field cron
// expression, "* * * * *" for once a minute). timeout bounds a single tick.
func New(svc portssvc.ScheduleTickerSvc, schedule, tickSpec string, timeout time.Duration, logger *slog.Logger) (*Ticker, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cronLogger := cronLogAdapter{logger: logger.With(slog.String("component", "ticker"))}

	t := &Ticker{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		svc:      svc,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
	}
	if _, err := t.cron.AddFunc(tickSpec, func() { t.Tick(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid tick spec %q: %w", tickSpec, err)
	}
	return t, nil
}

func (t *Ticker) Start() {
	t.cron.Start()
	t.logger.Info("Ticker started", slog.String("schedule", t.schedule))
}

// Stop stops scheduling and waits for a running tick to finish.
func (t *Ticker) Stop() {
	ctx := t.cron.Stop()
	<-ctx.Done()
	t.logger.Info("Ticker stopped", slog.String("schedule", t.schedule))
}

// Tick runs one evaluation synchronously.
func (t *Ticker) Tick(parent context.Context) *portssvc.TickOutcome {
	ctx := parent
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(parent, t.timeout)
		defer cancel()
	}
	logger := t.logger.With(
		slog.String("tick_id", uuid.NewString()),
		slog.String("schedule", t.schedule),
	)
	ctx = middleware.WithLogger(ctx, logger)

	outcome, err := t.svc.Tick(ctx, t.schedule)
	if err != nil {
		logger.Error("Tick failed", slog.String("error", err.Error()))
		return outcome
	}
	if outcome != nil && outcome.Result != nil {
		logger.Info("Tick ran depreciation",
			slog.String("run_id", outcome.Result.RunID),
			slog.Bool("success", outcome.Result.Success))
	}
	return outcome
}

// cronLogAdapter routes robfig/cron's logging onto slog.
type cronLogAdapter struct {
	logger *slog.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Debug(msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)
	a.logger.Error(msg, args...)
}
