package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	portsrepo "github.com/SscSPs/asset_depreciation/internal/core/ports/repositories"
	"github.com/SscSPs/asset_depreciation/internal/models"
	"github.com/SscSPs/asset_depreciation/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for depreciation ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// RecordEntry inserts the entry unless (asset_id, period) already has one.
func (r *PgxLedgerRepository) RecordEntry(ctx context.Context, entry domain.LedgerEntry) (domain.RecordOutcome, error) {
	m := mapping.ToModelLedgerEntry(entry)

	query := `
		INSERT INTO depreciation_entries (entry_id, asset_id, period, amount, run_id, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (asset_id, period) DO NOTHING
		RETURNING entry_id;
	`
	var insertedID string
	err := r.Pool.QueryRow(ctx, query,
		m.EntryID,
		m.AssetID,
		m.Period,
		m.Amount,
		m.RunID,
		m.ComputedAt,
	).Scan(&insertedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AlreadyExists, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation on entry_id
				return domain.AlreadyExists, fmt.Errorf("%w: ledger entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
			}
			if pgErr.Code == "23503" { // Foreign key violation
				return domain.AlreadyExists, apperrors.NewNotFoundError("asset " + m.AssetID)
			}
		}
		return domain.AlreadyExists, fmt.Errorf("failed to record ledger entry for asset %s period %s: %w", m.AssetID, entry.Period, err)
	}
	return domain.Recorded, nil
}

// ListEntriesByAsset retrieves an asset's ledger ordered by period.
func (r *PgxLedgerRepository) ListEntriesByAsset(ctx context.Context, assetID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, asset_id, period, amount, run_id, computed_at
		FROM depreciation_entries
		WHERE asset_id = $1
		ORDER BY period;
	`
	rows, err := r.Pool.Query(ctx, query, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LedgerEntry, error) {
		var e models.LedgerEntry
		err := row.Scan(
			&e.EntryID,
			&e.AssetID,
			&e.Period,
			&e.Amount,
			&e.RunID,
			&e.ComputedAt,
		)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger entries: %w", err)
	}
	return mapping.ToDomainLedgerEntrySlice(modelEntries), nil
}
