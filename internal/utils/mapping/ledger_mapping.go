package mapping

import (
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/SscSPs/asset_depreciation/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:    d.EntryID,
		AssetID:    d.AssetID,
		Period:     d.Period.FirstDay(),
		Amount:     d.Amount,
		RunID:      d.RunID,
		ComputedAt: d.ComputedAt,
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:    m.EntryID,
		AssetID:    m.AssetID,
		Period:     domain.PeriodOf(m.Period),
		Amount:     m.Amount,
		RunID:      m.RunID,
		ComputedAt: m.ComputedAt,
	}
}

// ToDomainLedgerEntrySlice converts a slice of model LedgerEntries to domain LedgerEntries
func ToDomainLedgerEntrySlice(ms []models.LedgerEntry) []domain.LedgerEntry {
	ds := make([]domain.LedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedgerEntry(m)
	}
	return ds
}
