package depreciation

import (
	"time"

	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
)

// ValidateAsset checks the fields depreciation is computed from.
// A failure is a data-integrity error isolated to this asset.
func ValidateAsset(asset domain.Asset) error {
	if asset.UsefulLifeMonths <= 0 {
		return apperrors.NewDataIntegrityError("asset %s has non-positive useful life %d", asset.AssetTag, asset.UsefulLifeMonths)
	}
	if asset.Value.IsNegative() {
		return apperrors.NewDataIntegrityError("asset %s has negative value %s", asset.AssetTag, asset.Value.String())
	}
	if asset.AcquisitionDate.IsZero() {
		return apperrors.NewDataIntegrityError("asset %s has no acquisition date", asset.AssetTag)
	}
	return nil
}

// OutstandingPeriods returns, in ascending order, every period owed for the asset
// after its last depreciated period (or after the acquisition period when nothing
// has been recorded) through the period containing asOf, capped at the
// useful-life horizon. Assets that are not active yield nothing.
func OutstandingPeriods(asset domain.Asset, asOf time.Time) ([]domain.Period, error) {
	if err := ValidateAsset(asset); err != nil {
		return nil, err
	}
	if !asset.IsDepreciable() {
		return nil, nil
	}

	target := domain.PeriodOf(asOf)
	acquired := asset.AcquisitionPeriod()
	if acquired.After(target) {
		return nil, apperrors.NewDataIntegrityError("asset %s acquired in %s, after target period %s", asset.AssetTag, acquired, target)
	}

	start := acquired.Next()
	if last := asset.LastDepreciatedPeriod; last != nil && !last.Before(acquired) {
		start = last.Next()
	}

	end := target
	if horizon := asset.HorizonPeriod(); horizon.Before(end) {
		end = horizon
	}

	if start.After(end) {
		return nil, nil
	}
	periods := make([]domain.Period, 0, start.MonthsUntil(end)+1)
	for p := start; !p.After(end); p = p.Next() {
		periods = append(periods, p)
	}
	return periods, nil
}

// LatestOnly keeps at most the most recent period of an ascending sequence.
func LatestOnly(periods []domain.Period) []domain.Period {
	if len(periods) <= 1 {
		return periods
	}
	return periods[len(periods)-1:]
}
