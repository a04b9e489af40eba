package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	portsrepo "github.com/SscSPs/asset_depreciation/internal/core/ports/repositories"
	"github.com/SscSPs/asset_depreciation/internal/models"
	"github.com/SscSPs/asset_depreciation/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxScheduleRepository struct {
	BaseRepository
}

// newPgxScheduleRepository creates a new repository for schedule configuration.
func newPgxScheduleRepository(pool *pgxpool.Pool) portsrepo.ScheduleRepositoryWithTx {
	return &PgxScheduleRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ScheduleRepositoryWithTx = (*PgxScheduleRepository)(nil)

const scheduleColumns = `name, is_active, frequency, execution_time, timezone, day_of_week, day_of_month, last_run_at, next_run_at, last_run_result, updated_at`

func scanSchedule(row pgx.Row) (models.ScheduleConfig, error) {
	var m models.ScheduleConfig
	err := row.Scan(
		&m.Name,
		&m.IsActive,
		&m.Frequency,
		&m.ExecutionTime,
		&m.Timezone,
		&m.DayOfWeek,
		&m.DayOfMonth,
		&m.LastRunAt,
		&m.NextRunAt,
		&m.LastRunResult,
		&m.UpdatedAt,
	)
	return m, err
}

// GetSchedule retrieves a schedule by name.
func (r *PgxScheduleRepository) GetSchedule(ctx context.Context, name string) (*domain.ScheduleConfig, error) {
	query := `SELECT ` + scheduleColumns + `
		FROM schedule_configs
		WHERE name = $1;
	`
	return r.getOne(ctx, query, name)
}

// GetActiveSchedule retrieves a schedule by name only when it is active.
func (r *PgxScheduleRepository) GetActiveSchedule(ctx context.Context, name string) (*domain.ScheduleConfig, error) {
	query := `SELECT ` + scheduleColumns + `
		FROM schedule_configs
		WHERE name = $1 AND is_active;
	`
	return r.getOne(ctx, query, name)
}

func (r *PgxScheduleRepository) getOne(ctx context.Context, query, name string) (*domain.ScheduleConfig, error) {
	m, err := scanSchedule(r.Pool.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find schedule %s: %w", name, err)
	}
	cfg := mapping.ToDomainScheduleConfig(m)
	return &cfg, nil
}

// ClaimRun locks the schedule row and sets last_run_at to at when the row is
// active and has not run since windowStart. Concurrent callers serialize on the
// row lock, so exactly one of them wins a given window.
func (r *PgxScheduleRepository) ClaimRun(ctx context.Context, name string, windowStart, at time.Time) (bool, error) {
	claimed := false
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var isActive bool
		var lastRunAt *time.Time
		err := tx.QueryRow(ctx, `
			SELECT is_active, last_run_at
			FROM schedule_configs
			WHERE name = $1
			FOR UPDATE;
		`, name).Scan(&isActive, &lastRunAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to lock schedule %s: %w", name, err)
		}

		if !isActive || (lastRunAt != nil && !lastRunAt.Before(windowStart)) {
			return nil
		}

		_, err = tx.Exec(ctx, `
			UPDATE schedule_configs
			SET last_run_at = $2, updated_at = $2
			WHERE name = $1;
		`, name, at)
		if err != nil {
			return fmt.Errorf("failed to claim schedule %s: %w", name, err)
		}
		claimed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return claimed, nil
}

// UpdateRunMetadata stores the run result and the advisory next_run_at.
// last_run_at only moves forward.
func (r *PgxScheduleRepository) UpdateRunMetadata(ctx context.Context, name string, lastRunAt time.Time, nextRunAt *time.Time, result domain.RunResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode run result for schedule %s: %w", name, err)
	}

	query := `
		UPDATE schedule_configs
		SET last_run_at = GREATEST(COALESCE(last_run_at, $2), $2),
			next_run_at = $3,
			last_run_result = $4,
			updated_at = NOW()
		WHERE name = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, name, lastRunAt, nextRunAt, payload)
	if err != nil {
		return fmt.Errorf("failed to update run metadata for schedule %s: %w", name, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
