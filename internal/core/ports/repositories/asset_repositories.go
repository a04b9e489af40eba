package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
)

// AssetReader defines read operations against the asset registry.
type AssetReader interface {
	// ListDepreciableAssets retrieves every asset whose lifecycle status allows depreciation.
	ListDepreciableAssets(ctx context.Context) ([]domain.Asset, error)

	// FindAssetByID retrieves a single asset.
	FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error)
}

// AssetWriter defines the registry mutations the depreciation engine performs.
type AssetWriter interface {
	// AdvanceLastDepreciatedPeriod moves the marker forward; it never moves backward.
	AdvanceLastDepreciatedPeriod(ctx context.Context, assetID string, period domain.Period) error

	// MarkFullyDepreciated flips an active asset to FULLY_DEPRECIATED.
	MarkFullyDepreciated(ctx context.Context, assetID string, at time.Time) error
}

// AssetRepositoryFacade combines all asset-related repository interfaces
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
}
