package services

import (
	"context"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
)

// DepreciationRunnerSvc runs depreciation across the asset fleet
type DepreciationRunnerSvc interface {
	// RunOnce processes every eligible asset in the given mode. A run-level failure is
	// returned as an error together with the failed RunResult that was persisted.
	RunOnce(ctx context.Context, mode domain.RunMode) (*domain.RunResult, error)
}

// DepreciationLedgerSvc exposes the recorded ledger for inspection
type DepreciationLedgerSvc interface {
	ListAssetEntries(ctx context.Context, assetID string) ([]domain.LedgerEntry, error)
}

// DepreciationSvcFacade combines all depreciation service interfaces
type DepreciationSvcFacade interface {
	DepreciationRunnerSvc
	DepreciationLedgerSvc
}
