package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssetStatus is the lifecycle state of an asset in the registry.
type AssetStatus string

const (
	AssetActive           AssetStatus = "ACTIVE"
	AssetDisposed         AssetStatus = "DISPOSED"
	AssetLost             AssetStatus = "LOST"
	AssetFullyDepreciated AssetStatus = "FULLY_DEPRECIATED"
)

// Asset is the subset of the asset registry the depreciation engine reads.
type Asset struct {
	AssetID               string          `json:"assetID"`
	AssetTag              string          `json:"assetTag"`
	AcquisitionDate       time.Time       `json:"acquisitionDate"`
	Value                 decimal.Decimal `json:"value"`             // Capitalized value
	UsefulLifeMonths      int             `json:"usefulLifeMonths"`  // Useful life in periods
	Status                AssetStatus     `json:"status"`
	LastDepreciatedPeriod *Period         `json:"lastDepreciatedPeriod"` // Nil until the first entry is recorded
}

// AcquisitionPeriod is the period containing the acquisition date.
func (a Asset) AcquisitionPeriod() Period {
	return PeriodOf(a.AcquisitionDate)
}

// HorizonPeriod is the last period in which the asset may accrue depreciation.
func (a Asset) HorizonPeriod() Period {
	return a.AcquisitionPeriod().AddMonths(a.UsefulLifeMonths)
}

// IsDepreciable reports whether the lifecycle status allows new entries.
func (a Asset) IsDepreciable() bool {
	return a.Status == AssetActive
}
