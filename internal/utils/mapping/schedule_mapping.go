package mapping

import (
	"encoding/json"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/SscSPs/asset_depreciation/internal/models"
)

// ToDomainScheduleConfig converts a model ScheduleConfig to a domain ScheduleConfig
func ToDomainScheduleConfig(m models.ScheduleConfig) domain.ScheduleConfig {
	d := domain.ScheduleConfig{
		Name:          m.Name,
		IsActive:      m.IsActive,
		Frequency:     domain.Frequency(m.Frequency),
		ExecutionTime: m.ExecutionTime,
		Timezone:      m.Timezone,
		DayOfWeek:     m.DayOfWeek,
		DayOfMonth:    m.DayOfMonth,
		LastRunAt:     m.LastRunAt,
		NextRunAt:     m.NextRunAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if len(m.LastRunResult) > 0 {
		d.LastRunResult = json.RawMessage(m.LastRunResult)
	}
	return d
}

// ToModelScheduleConfig converts a domain ScheduleConfig to a model ScheduleConfig
func ToModelScheduleConfig(d domain.ScheduleConfig) models.ScheduleConfig {
	return models.ScheduleConfig{
		Name:          d.Name,
		IsActive:      d.IsActive,
		Frequency:     string(d.Frequency),
		ExecutionTime: d.ExecutionTime,
		Timezone:      d.Timezone,
		DayOfWeek:     d.DayOfWeek,
		DayOfMonth:    d.DayOfMonth,
		LastRunAt:     d.LastRunAt,
		NextRunAt:     d.NextRunAt,
		LastRunResult: []byte(d.LastRunResult),
		UpdatedAt:     d.UpdatedAt,
	}
}
