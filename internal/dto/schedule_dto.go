package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/SscSPs/asset_depreciation/internal/utils/recurrence"
)

// ScheduleResponse defines the data returned for a schedule configuration.
type ScheduleResponse struct {
	Name          string          `json:"name"`
	IsActive      bool            `json:"isActive"`
	Frequency     string          `json:"frequency" example:"daily"`
	ExecutionTime string          `json:"executionTime" example:"00:05"`
	Timezone      string          `json:"timezone" example:"Asia/Jakarta"`
	DayOfWeek     int             `json:"dayOfWeek"`
	DayOfMonth    int             `json:"dayOfMonth"`
	LastRunAt     *time.Time      `json:"lastRunAt"`
	NextRunAt     *time.Time      `json:"nextRunAt"`
	LastRunResult json.RawMessage `json:"lastRunResult,omitempty" swaggertype:"object"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// DueResponse explains whether a schedule would fire right now.
type DueResponse struct {
	Schedule    string     `json:"schedule"`
	Due         bool       `json:"due"`
	Reason      string     `json:"reason" example:"outside_window"`
	Error       string     `json:"error,omitempty"`
	LocalNow    time.Time  `json:"localNow"`
	WindowStart *time.Time `json:"windowStart,omitempty"`
	WindowEnd   *time.Time `json:"windowEnd,omitempty"`
	LastRunAt   *time.Time `json:"lastRunAt,omitempty"`
	NextRunAt   *time.Time `json:"nextRunAt,omitempty"`
}

// ToScheduleResponse converts a domain.ScheduleConfig to its response DTO
func ToScheduleResponse(s *domain.ScheduleConfig) ScheduleResponse {
	return ScheduleResponse{
		Name:          s.Name,
		IsActive:      s.IsActive,
		Frequency:     string(s.Frequency),
		ExecutionTime: s.ExecutionTime,
		Timezone:      s.Timezone,
		DayOfWeek:     s.DayOfWeek,
		DayOfMonth:    s.DayOfMonth,
		LastRunAt:     s.LastRunAt,
		NextRunAt:     s.NextRunAt,
		LastRunResult: s.LastRunResult,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToDueResponse converts an evaluator decision into the diagnostics DTO.
// evalErr is the configuration error, if any, that made the schedule not due.
func ToDueResponse(name string, d recurrence.Decision, evalErr error) DueResponse {
	res := DueResponse{
		Schedule:    name,
		Due:         d.Due,
		Reason:      d.Reason,
		LocalNow:    d.LocalNow,
		WindowStart: d.WindowStart,
		WindowEnd:   d.WindowEnd,
		LastRunAt:   d.LastRunAt,
		NextRunAt:   d.NextRunAt,
	}
	if evalErr != nil {
		res.Error = evalErr.Error()
	}
	return res
}
