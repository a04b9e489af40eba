package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is the row shape of the assets table.
// Periods are stored as the first day of their month.
type Asset struct {
	AssetID               string          `db:"asset_id"`
	AssetTag              string          `db:"asset_tag"`
	AcquisitionDate       time.Time       `db:"acquisition_date"`
	Value                 decimal.Decimal `db:"value"`
	UsefulLifeMonths      int             `db:"useful_life_months"`
	Status                string          `db:"status"`
	LastDepreciatedPeriod *time.Time      `db:"last_depreciated_period"` // Nullable
	FullyDepreciatedAt    *time.Time      `db:"fully_depreciated_at"`    // Nullable
}
