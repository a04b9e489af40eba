package services

import (
	"context"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/SscSPs/asset_depreciation/internal/utils/recurrence"
)

// TickOutcome reports what a single polling tick did for one schedule.
type TickOutcome struct {
	ScheduleName string              `json:"scheduleName"`
	Decision     recurrence.Decision `json:"decision"`
	Claimed      bool                `json:"claimed"`
	Result       *domain.RunResult   `json:"result,omitempty"`
}

// ScheduleTickerSvc is invoked by the tick source once per polling interval
type ScheduleTickerSvc interface {
	Tick(ctx context.Context, name string) (*TickOutcome, error)
}

// ScheduleDiagnosticsSvc explains scheduling decisions without side effects
type ScheduleDiagnosticsSvc interface {
	GetSchedule(ctx context.Context, name string) (*domain.ScheduleConfig, error)
	Diagnose(ctx context.Context, name string) (*domain.ScheduleConfig, recurrence.Decision, error)
}

// ScheduleSvcFacade combines all schedule service interfaces
type ScheduleSvcFacade interface {
	ScheduleTickerSvc
	ScheduleDiagnosticsSvc
}
