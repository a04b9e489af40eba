package domain

import (
	"fmt"
	"time"
)

// RunMode selects how much backlog one run clears per asset.
type RunMode string

const (
	// CatchUp processes every outstanding period.
	CatchUp RunMode = "catch_up"
	// CurrentPeriodOnly processes at most the most recent outstanding period.
	CurrentPeriodOnly RunMode = "current_period"
)

// ParseRunMode validates a mode string.
func ParseRunMode(s string) (RunMode, error) {
	switch RunMode(s) {
	case CatchUp, CurrentPeriodOnly:
		return RunMode(s), nil
	}
	return "", fmt.Errorf("unknown run mode %q", s)
}

// AssetOutcome is the per-asset line of a RunResult.
type AssetOutcome struct {
	AssetID          string     `json:"assetID"`
	AssetTag         string     `json:"assetTag"`
	PeriodsProcessed int        `json:"periodsProcessed"`
	PeriodsPending   int        `json:"periodsPending"`
	NewEntries       int        `json:"newEntries"`
	Message          string     `json:"message"`
	Error            string     `json:"error,omitempty"`
	FailedAt         *time.Time `json:"failedAt,omitempty"`
}

// Failed reports whether the asset hit a data-integrity error.
func (o AssetOutcome) Failed() bool {
	return o.Error != ""
}

// RunResult is the outcome of one Run Coordinator invocation.
// It is persisted into ScheduleConfig.LastRunResult.
type RunResult struct {
	RunID                 string         `json:"runID"`
	Mode                  RunMode        `json:"mode"`
	TotalAssets           int            `json:"totalAssets"`
	TotalPeriodsProcessed int            `json:"totalPeriodsProcessed"`
	AssetsWithNewEntries  int            `json:"assetsWithNewEntries"`
	FailedAssets          int            `json:"failedAssets"`
	Details               []AssetOutcome `json:"details"`
	Success               bool           `json:"success"`
	Error                 string         `json:"error,omitempty"`
	StartedAt             time.Time      `json:"startedAt"`
	FinishedAt            time.Time      `json:"finishedAt"`
	Timestamp             time.Time      `json:"timestamp"`
}
