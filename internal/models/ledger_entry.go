package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the row shape of the depreciation_entries table.
type LedgerEntry struct {
	EntryID    string          `db:"entry_id"`
	AssetID    string          `db:"asset_id"`
	Period     time.Time       `db:"period"` // First day of the month
	Amount     decimal.Decimal `db:"amount"`
	RunID      string          `db:"run_id"`
	ComputedAt time.Time       `db:"computed_at"`
}
