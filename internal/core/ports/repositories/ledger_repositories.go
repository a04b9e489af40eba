package repositories

import (
	"context"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
)

// LedgerWriter defines write operations for depreciation ledger entries
type LedgerWriter interface {
	// RecordEntry inserts the entry unless one already exists for (asset, period).
	RecordEntry(ctx context.Context, entry domain.LedgerEntry) (domain.RecordOutcome, error)
}

// LedgerReader defines read operations for depreciation ledger entries
type LedgerReader interface {
	// ListEntriesByAsset retrieves an asset's entries ordered by period.
	ListEntriesByAsset(ctx context.Context, assetID string) ([]domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
