package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
)

// ScheduleReader defines read operations for schedule configuration
type ScheduleReader interface {
	// GetActiveSchedule retrieves the named schedule if it is active; ErrNotFound otherwise.
	GetActiveSchedule(ctx context.Context, name string) (*domain.ScheduleConfig, error)

	// GetSchedule retrieves the named schedule regardless of its active flag.
	GetSchedule(ctx context.Context, name string) (*domain.ScheduleConfig, error)
}

// ScheduleWriter defines the run bookkeeping written back to a schedule
type ScheduleWriter interface {
	// ClaimRun atomically sets last_run_at to at when the schedule is active and its
	// last_run_at is earlier than windowStart. It reports whether this caller won the window.
	ClaimRun(ctx context.Context, name string, windowStart, at time.Time) (bool, error)

	// UpdateRunMetadata stores the outcome of a run. last_run_at never moves backward.
	UpdateRunMetadata(ctx context.Context, name string, lastRunAt time.Time, nextRunAt *time.Time, result domain.RunResult) error
}

// ScheduleRepositoryFacade combines all schedule-related repository interfaces
type ScheduleRepositoryFacade interface {
	ScheduleReader
	ScheduleWriter
}

// ScheduleRepositoryWithTx extends ScheduleRepositoryFacade with transaction capabilities
type ScheduleRepositoryWithTx interface {
	ScheduleRepositoryFacade
	TransactionManager
}
