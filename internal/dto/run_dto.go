package dto

import (
	"time"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
)

// CreateRunRequest triggers a manual depreciation run.
type CreateRunRequest struct {
	Mode string `json:"mode" binding:"required,runmode" example:"catch_up"`
}

// AssetOutcomeResponse is one asset's line in a run result.
type AssetOutcomeResponse struct {
	AssetID          string     `json:"assetID"`
	AssetTag         string     `json:"assetTag"`
	PeriodsProcessed int        `json:"periodsProcessed"`
	PeriodsPending   int        `json:"periodsPending"`
	NewEntries       int        `json:"newEntries"`
	Message          string     `json:"message"`
	Error            string     `json:"error,omitempty"`
	FailedAt         *time.Time `json:"failedAt,omitempty"`
}

// RunResultResponse defines the data returned for a depreciation run.
type RunResultResponse struct {
	RunID                 string                 `json:"runID"`
	Mode                  string                 `json:"mode"`
	Success               bool                   `json:"success"`
	Error                 string                 `json:"error,omitempty"`
	TotalAssets           int                    `json:"totalAssets"`
	TotalPeriodsProcessed int                    `json:"totalPeriodsProcessed"`
	AssetsWithNewEntries  int                    `json:"assetsWithNewEntries"`
	FailedAssets          int                    `json:"failedAssets"`
	Details               []AssetOutcomeResponse `json:"details"`
	StartedAt             time.Time              `json:"startedAt"`
	FinishedAt            time.Time              `json:"finishedAt"`
	Timestamp             time.Time              `json:"timestamp"`
}

// ToRunResultResponse converts a domain.RunResult to its response DTO
func ToRunResultResponse(r *domain.RunResult) RunResultResponse {
	details := make([]AssetOutcomeResponse, len(r.Details))
	for i, d := range r.Details {
		details[i] = AssetOutcomeResponse{
			AssetID:          d.AssetID,
			AssetTag:         d.AssetTag,
			PeriodsProcessed: d.PeriodsProcessed,
			PeriodsPending:   d.PeriodsPending,
			NewEntries:       d.NewEntries,
			Message:          d.Message,
			Error:            d.Error,
			FailedAt:         d.FailedAt,
		}
	}
	return RunResultResponse{
		RunID:                 r.RunID,
		Mode:                  string(r.Mode),
		Success:               r.Success,
		Error:                 r.Error,
		TotalAssets:           r.TotalAssets,
		TotalPeriodsProcessed: r.TotalPeriodsProcessed,
		AssetsWithNewEntries:  r.AssetsWithNewEntries,
		FailedAssets:          r.FailedAssets,
		Details:               details,
		StartedAt:             r.StartedAt,
		FinishedAt:            r.FinishedAt,
		Timestamp:             r.Timestamp,
	}
}
