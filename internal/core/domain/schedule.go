package domain

import (
	"encoding/json"
	"time"
)

// Frequency is the recurrence unit of a schedule.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// DefaultScheduleName is the schedule row driving automatic depreciation.
const DefaultScheduleName = "auto_depreciation"

// ScheduleConfig is one named, database-stored schedule.
// It is read fresh on every tick and never cached.
type ScheduleConfig struct {
	Name          string          `json:"name"`
	IsActive      bool            `json:"isActive"`
	Frequency     Frequency       `json:"frequency"`
	ExecutionTime string          `json:"executionTime"` // "HH:MM", interpreted in Timezone
	Timezone      string          `json:"timezone"`      // IANA zone name
	DayOfWeek     int             `json:"dayOfWeek"`     // 0=Sunday; weekly only
	DayOfMonth    int             `json:"dayOfMonth"`    // 1-28; monthly only
	LastRunAt     *time.Time      `json:"lastRunAt"`
	NextRunAt     *time.Time      `json:"nextRunAt"` // Advisory only
	LastRunResult json.RawMessage `json:"lastRunResult,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
