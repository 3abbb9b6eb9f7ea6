package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/fundchain/x/fund/types"
)

// WithdrawResult reports what a withdrawal paid out.
type WithdrawResult struct {
	SharesBurned math.Int
	Value        math.Int            // base-asset-equivalent value paid out
	Payouts      map[string]math.Int // asset -> amount transferred to the investor
}

// Withdraw redeems a percentage of the caller's shares for a pro-rata slice
// of every held asset. percentBps is in basis points of the caller's
// position; zero means the whole position. With convertToBase set,
// non-cryptocurrency slices are sold into the base asset before payout.
func (k *Keeper) Withdraw(ctx context.Context, investor, fundID string, percentBps int64, convertToBase bool) (*WithdrawResult, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	release, err := k.acquireLock(fundID)
	if err != nil {
		return nil, err
	}
	defer release()

	cacheCtx, write := sdkCtx.CacheContext()
	result, err := k.withdraw(cacheCtx, investor, fundID, percentBps, convertToBase)
	if err != nil {
		return nil, err
	}
	write()
	return result, nil
}

func (k *Keeper) withdraw(ctx sdk.Context, investor, fundID string, percentBps int64, convertToBase bool) (*WithdrawResult, error) {
	if percentBps < 0 || percentBps > types.TotalBps {
		return nil, types.ErrInvalidPercentage.Wrapf("%d bps", percentBps)
	}
	if percentBps == 0 {
		percentBps = types.TotalBps
	}

	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return nil, types.ErrFundNotFound
	}

	held := k.GetShares(ctx, fundID, investor)
	if held.IsZero() {
		return nil, types.ErrInsufficientShares
	}
	sharesToBurn := held.MulRaw(percentBps).QuoRaw(types.TotalBps)
	if sharesToBurn.IsZero() {
		return nil, types.ErrInsufficientShares.Wrap("position too small for requested percentage")
	}

	investorAddr, err := sdk.AccAddressFromBech32(investor)
	if err != nil {
		return nil, err
	}

	totalShares := fund.TotalShares
	payouts := make(map[string]math.Int)
	withdrawnValue := math.ZeroInt()

	// Slice every held asset by sharesToBurn/totalShares so the remaining
	// investors keep the same basket composition.
	assets := append([]string(nil), fund.HeldAssets...)
	for _, asset := range assets {
		balance := fund.BalanceOf(asset)
		if balance.IsZero() {
			continue
		}
		slice := balance.Mul(sharesToBurn).Quo(totalShares)
		if slice.IsZero() {
			continue
		}

		sliceValue, err := k.ValueOf(ctx, fund, asset, slice)
		if err != nil {
			return nil, err
		}

		payoutAsset := asset
		payoutAmount := slice
		if convertToBase && asset != fund.BaseAsset &&
			k.tokenTypes.Classify(ctx, asset) != types.AssetTypeCryptocurrency {
			received, err := k.exchangePortal.Trade(ctx, fund.ExchangePortal, asset, slice, fund.BaseAsset, math.ZeroInt(), nil)
			if err != nil {
				return nil, types.ErrExternalCallFailed.Wrapf("withdrawal conversion %s: %v", asset, err)
			}
			payoutAsset = fund.BaseAsset
			payoutAmount = received
		}

		fund.Debit(asset, slice)
		if payoutAmount.IsPositive() {
			coins := sdk.NewCoins(sdk.NewCoin(payoutAsset, payoutAmount))
			if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, investorAddr, coins); err != nil {
				return nil, err
			}
			prev, ok := payouts[payoutAsset]
			if !ok {
				prev = math.ZeroInt()
			}
			payouts[payoutAsset] = prev.Add(payoutAmount)
		}
		withdrawnValue = withdrawnValue.Add(sliceValue)
	}

	basis := k.GetCostBasis(ctx, fundID, investor)
	basisReduction := basis.Mul(sharesToBurn).Quo(held)

	k.SetShares(ctx, fundID, investor, held.Sub(sharesToBurn))
	k.SetCostBasis(ctx, fundID, investor, basis.Sub(basisReduction))

	fund.TotalShares = fund.TotalShares.Sub(sharesToBurn)
	fund.TotalCostBasis = fund.TotalCostBasis.Sub(basisReduction)
	fund.FeeHighWaterMark = fund.FeeHighWaterMark.Sub(withdrawnValue)
	if fund.FeeHighWaterMark.IsNegative() {
		fund.FeeHighWaterMark = math.ZeroInt()
	}
	fund.CumulativeWithdrawn = fund.CumulativeWithdrawn.Add(withdrawnValue)
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_withdraw",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("investor", investor),
			sdk.NewAttribute("percent_bps", math.NewInt(percentBps).String()),
			sdk.NewAttribute("shares_burned", sharesToBurn.String()),
			sdk.NewAttribute("value", withdrawnValue.String()),
		),
	)

	k.logger.Info("Withdrawal processed",
		"fund_id", fundID,
		"investor", investor,
		"shares_burned", sharesToBurn.String(),
		"value", withdrawnValue.String(),
	)

	return &WithdrawResult{
		SharesBurned: sharesToBurn,
		Value:        withdrawnValue,
		Payouts:      payouts,
	}, nil
}
