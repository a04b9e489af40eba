package models

import "time"

// ScheduleConfig is the row shape of the schedule_configs table.
type ScheduleConfig struct {
	Name          string     `db:"name"`
	IsActive      bool       `db:"is_active"`
	Frequency     string     `db:"frequency"`
	ExecutionTime string     `db:"execution_time"`
	Timezone      string     `db:"timezone"`
	DayOfWeek     int        `db:"day_of_week"`
	DayOfMonth    int        `db:"day_of_month"`
	LastRunAt     *time.Time `db:"last_run_at"`
	NextRunAt     *time.Time `db:"next_run_at"`
	LastRunResult []byte     `db:"last_run_result"` // JSONB, nullable
	UpdatedAt     time.Time  `db:"updated_at"`
}
