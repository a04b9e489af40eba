package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one depreciation amount recognized for an asset in a period.
// Entries are immutable; (AssetID, Period) is unique.
type LedgerEntry struct {
	EntryID    string          `json:"entryID"`
	AssetID    string          `json:"assetID"`
	Period     Period          `json:"period"`
	Amount     decimal.Decimal `json:"amount"`
	RunID      string          `json:"runID"`
	ComputedAt time.Time       `json:"computedAt"`
}

// RecordOutcome tells whether RecordEntry created a row or found one already there.
type RecordOutcome int

const (
	Recorded RecordOutcome = iota
	AlreadyExists
)

func (o RecordOutcome) String() string {
	if o == AlreadyExists {
		return "already_exists"
	}
	return "recorded"
}
