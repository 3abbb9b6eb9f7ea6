package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/fundchain/x/fund/types"
)

// ValueOf converts an (asset, amount) pair into base-asset-equivalent value
// by quoting the fund's exchange portal. Base-asset amounts pass through
// unquoted. No retries, no caching; a portal failure propagates.
func (k *Keeper) ValueOf(ctx sdk.Context, fund *types.Fund, asset string, amount math.Int) (math.Int, error) {
	if asset == fund.BaseAsset {
		return amount, nil
	}
	if amount.IsZero() {
		return math.ZeroInt(), nil
	}
	value, err := k.exchangePortal.Quote(ctx, fund.ExchangePortal, asset, amount)
	if err != nil {
		return math.ZeroInt(), types.ErrExternalQuoteFailed.Wrapf("%s: %v", asset, err)
	}
	return value, nil
}

// CalculateFundValue computes the fund's NAV from live custody balances and
// live portal quotes: the raw base-asset balance plus the quoted value of
// every other held asset. Never cached across calls; O(|heldAssets|)
// external quotes.
func (k *Keeper) CalculateFundValue(ctx sdk.Context, fund *types.Fund) (math.Int, error) {
	total := fund.BalanceOf(fund.BaseAsset)
	for _, asset := range fund.HeldAssets {
		if asset == fund.BaseAsset {
			continue
		}
		value, err := k.ValueOf(ctx, fund, asset, fund.BalanceOf(asset))
		if err != nil {
			return math.ZeroInt(), err
		}
		total = total.Add(value)
	}
	return total, nil
}

// FundValue is the query-side entry point for NAV.
func (k *Keeper) FundValue(ctx sdk.Context, fundID string) (math.Int, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return math.ZeroInt(), types.ErrFundNotFound
	}
	return k.CalculateFundValue(ctx, fund)
}
