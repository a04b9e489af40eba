package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/asset_depreciation/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// TestDatabase represents a migrated PostgreSQL test container.
type TestDatabase struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	URL       string
}

// SetupTestDatabase starts a PostgreSQL container and applies the embedded
// migrations. It skips the test under -short.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database integration test in short mode")
	}
	ctx := context.Background()

	labels := map[string]string{
		"test":      "asset-depreciation-repository",
		"test-name": t.Name(),
		"timestamp": time.Now().Format("20060102-150405"),
		"cleanup":   "auto",
	}

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("depreciation_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(labels),
	)
	require.NoError(t, err)

	testDB := &TestDatabase{Container: container}
	t.Cleanup(func() {
		testDB.cleanup(t)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.MigrateUp(connStr))

	pool, err := database.NewPgxPool(ctx, connStr, true)
	require.NoError(t, err)

	testDB.Pool = pool
	testDB.URL = connStr
	return testDB
}

// InsertAsset seeds one ACTIVE asset row.
func (td *TestDatabase) InsertAsset(t *testing.T, assetID string, acquired time.Time, value string, lifeMonths int) {
	t.Helper()
	_, err := td.Pool.Exec(context.Background(), `
		INSERT INTO assets (asset_id, asset_tag, acquisition_date, value, useful_life_months, status)
		VALUES ($1, $2, $3, $4::numeric, $5, 'ACTIVE');
	`, assetID, "TAG-"+assetID, acquired, value, lifeMonths)
	require.NoError(t, err)
}

func (td *TestDatabase) cleanup(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Logf("Panic during container cleanup (recovered): %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database.ClosePgxPool(td.Pool)

	if td.Container != nil {
		if err := td.Container.Terminate(ctx); err != nil {
			t.Logf("Warning: Failed to terminate test container: %v", err)
		}
	}
}
