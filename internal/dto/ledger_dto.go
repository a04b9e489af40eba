package dto

import (
	"time"

	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListLedgerParams narrows an asset's ledger to an inclusive period range.
type ListLedgerParams struct {
	From string `form:"from" binding:"omitempty,period" example:"2024-01"`
	To   string `form:"to" binding:"omitempty,period" example:"2024-12"`
}

// Includes reports whether p lies within the requested range.
// Bounds are assumed to have passed the period validator.
func (p ListLedgerParams) Includes(period domain.Period) bool {
	if from, err := domain.ParsePeriod(p.From); err == nil && period.Before(from) {
		return false
	}
	if to, err := domain.ParsePeriod(p.To); err == nil && period.After(to) {
		return false
	}
	return true
}

// LedgerEntryResponse defines the data returned for one depreciation entry.
type LedgerEntryResponse struct {
	EntryID    string          `json:"entryID"`
	Period     string          `json:"period" example:"2024-03"`
	Amount     decimal.Decimal `json:"amount" swaggertype:"string"`
	RunID      string          `json:"runID"`
	ComputedAt time.Time       `json:"computedAt"`
}

// AssetLedgerResponse is an asset's depreciation ledger with its running total.
type AssetLedgerResponse struct {
	AssetID string                `json:"assetID"`
	Total   decimal.Decimal       `json:"total" swaggertype:"string"`
	Entries []LedgerEntryResponse `json:"entries"`
}

// ToAssetLedgerResponse converts the entries that match params into the response DTO
func ToAssetLedgerResponse(assetID string, entries []domain.LedgerEntry, params ListLedgerParams) AssetLedgerResponse {
	res := AssetLedgerResponse{
		AssetID: assetID,
		Total:   decimal.Zero,
		Entries: []LedgerEntryResponse{},
	}
	for _, e := range entries {
		if !params.Includes(e.Period) {
			continue
		}
		res.Total = res.Total.Add(e.Amount)
		res.Entries = append(res.Entries, LedgerEntryResponse{
			EntryID:    e.EntryID,
			Period:     e.Period.String(),
			Amount:     e.Amount,
			RunID:      e.RunID,
			ComputedAt: e.ComputedAt,
		})
	}
	return res
}
