package depreciation

import (
	"github.com/SscSPs/asset_depreciation/internal/apperrors"
	"github.com/SscSPs/asset_depreciation/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultScale is the number of decimal places amounts are rounded to.
const DefaultScale int32 = 2

// PeriodBase returns the straight-line amount recognized in every period but the last.
// Banker's rounding is used, falling back to truncation when rounding up would
// leave a negative remainder for the final period (values smaller than one
// rounding unit per period).
func PeriodBase(value decimal.Decimal, lifeMonths int, scale int32) decimal.Decimal {
	life := decimal.NewFromInt(int64(lifeMonths))
	base := value.Div(life).RoundBank(scale)
	if base.Mul(decimal.NewFromInt(int64(lifeMonths - 1))).GreaterThan(value) {
		base = value.Div(life).RoundDown(scale)
	}
	return base
}

// ComputeAmount returns the depreciation recognized for the asset in period.
// The horizon period absorbs the rounding remainder so the lifetime total equals
// the asset value exactly.
func ComputeAmount(asset domain.Asset, period domain.Period, scale int32) (decimal.Decimal, error) {
	if err := ValidateAsset(asset); err != nil {
		return decimal.Zero, err
	}

	acquired := asset.AcquisitionPeriod()
	index := acquired.MonthsUntil(period)
	if index < 1 {
		return decimal.Zero, apperrors.NewDataIntegrityError("asset %s acquired in %s, cannot depreciate period %s", asset.AssetTag, acquired, period)
	}
	if index > asset.UsefulLifeMonths {
		return decimal.Zero, apperrors.NewDataIntegrityError("period %s is beyond the useful-life horizon %s of asset %s", period, asset.HorizonPeriod(), asset.AssetTag)
	}

	base := PeriodBase(asset.Value, asset.UsefulLifeMonths, scale)
	if index == asset.UsefulLifeMonths {
		return asset.Value.Sub(base.Mul(decimal.NewFromInt(int64(asset.UsefulLifeMonths - 1)))), nil
	}
	return base, nil
}
