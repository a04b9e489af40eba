package pgsql

import (
	portsrepo "github.com/SscSPs/asset_depreciation/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	assetRepo := newPgxAssetRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	scheduleRepo := newPgxScheduleRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AssetRepo:    assetRepo,
		LedgerRepo:   ledgerRepo,
		ScheduleRepo: scheduleRepo,
	}
}
