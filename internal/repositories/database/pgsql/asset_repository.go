package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	portsrepo "github.com/SscSPs/asset_depreciation/internal/core/ports/repositories"
	"github.com/SscSPs/asset_depreciation/internal/models"
	"github.com/SscSPs/asset_depreciation/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAssetRepository struct {
	BaseRepository
}

// newPgxAssetRepository creates a new repository for the asset registry.
func newPgxAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepositoryFacade {
	return &PgxAssetRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

const assetColumns = `asset_id, asset_tag, acquisition_date, value, useful_life_months, status, last_depreciated_period, fully_depreciated_at`

func scanAsset(row pgx.Row) (models.Asset, error) {
	var m models.Asset
	err := row.Scan(
		&m.AssetID,
		&m.AssetTag,
		&m.AcquisitionDate,
		&m.Value,
		&m.UsefulLifeMonths,
		&m.Status,
		&m.LastDepreciatedPeriod,
		&m.FullyDepreciatedAt,
	)
	return m, err
}

// ListDepreciableAssets retrieves all ACTIVE assets ordered by tag.
func (r *PgxAssetRepository) ListDepreciableAssets(ctx context.Context) ([]domain.Asset, error) {
	query := `SELECT ` + assetColumns + `
		FROM assets
		WHERE status = $1
		ORDER BY asset_tag, asset_id;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.AssetActive))
	if err != nil {
		return nil, fmt.Errorf("failed to query depreciable assets: %w", err)
	}
	defer rows.Close()

	modelAssets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Asset, error) {
		return scanAsset(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan depreciable assets: %w", err)
	}
	return mapping.ToDomainAssetSlice(modelAssets), nil
}

// FindAssetByID retrieves an asset by its ID.
func (r *PgxAssetRepository) FindAssetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + `
		FROM assets
		WHERE asset_id = $1;
	`
	m, err := scanAsset(r.Pool.QueryRow(ctx, query, assetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset by id %s: %w", assetID, err)
	}
	asset := mapping.ToDomainAsset(m)
	return &asset, nil
}

// AdvanceLastDepreciatedPeriod moves the marker to period unless it is already at or past it.
func (r *PgxAssetRepository) AdvanceLastDepreciatedPeriod(ctx context.Context, assetID string, period domain.Period) error {
	query := `
		UPDATE assets
		SET last_depreciated_period = GREATEST(COALESCE(last_depreciated_period, $2), $2)
		WHERE asset_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, assetID, period.FirstDay())
	if err != nil {
		return fmt.Errorf("failed to advance last depreciated period for asset %s: %w", assetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("asset " + assetID)
	}
	return nil
}

// MarkFullyDepreciated flips an ACTIVE asset to FULLY_DEPRECIATED. Other statuses are left alone.
func (r *PgxAssetRepository) MarkFullyDepreciated(ctx context.Context, assetID string, at time.Time) error {
	query := `
		UPDATE assets
		SET status = $2, fully_depreciated_at = $3
		WHERE asset_id = $1 AND status = $4;
	`
	_, err := r.Pool.Exec(ctx, query, assetID, string(domain.AssetFullyDepreciated), at, string(domain.AssetActive))
	if err != nil {
		return fmt.Errorf("failed to mark asset %s fully depreciated: %w", assetID, err)
	}
	return nil
}
