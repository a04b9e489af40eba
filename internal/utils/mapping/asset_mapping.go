package mapping

import (
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/SscSPs/asset_depreciation/internal/models"
)

// ToDomainAsset converts a model Asset to a domain Asset
func ToDomainAsset(m models.Asset) domain.Asset {
	d := domain.Asset{
		AssetID:          m.AssetID,
		AssetTag:         m.AssetTag,
		AcquisitionDate:  m.AcquisitionDate,
		Value:            m.Value,
		UsefulLifeMonths: m.UsefulLifeMonths,
		Status:           domain.AssetStatus(m.Status),
	}
	if m.LastDepreciatedPeriod != nil {
		p := domain.PeriodOf(*m.LastDepreciatedPeriod)
		d.LastDepreciatedPeriod = &p
	}
	return d
}

// ToModelAsset converts a domain Asset to a model Asset
func ToModelAsset(d domain.Asset) models.Asset {
	m := models.Asset{
		AssetID:          d.AssetID,
		AssetTag:         d.AssetTag,
		AcquisitionDate:  d.AcquisitionDate,
		Value:            d.Value,
		UsefulLifeMonths: d.UsefulLifeMonths,
		Status:           string(d.Status),
	}
	if d.LastDepreciatedPeriod != nil {
		first := d.LastDepreciatedPeriod.FirstDay()
		m.LastDepreciatedPeriod = &first
	}
	return m
}

// ToDomainAssetSlice converts a slice of model Assets to a slice of domain Assets
func ToDomainAssetSlice(ms []models.Asset) []domain.Asset {
	ds := make([]domain.Asset, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAsset(m)
	}
	return ds
}
