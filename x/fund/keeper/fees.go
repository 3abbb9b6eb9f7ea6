package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/fundchain/metrics"
	"github.com/openalpha/fundchain/x/fund/types"
)

// ManagerCut is the result of a performance-fee calculation.
type ManagerCut struct {
	FundValue    math.Int // current NAV
	TotalCut     math.Int // all-time accrued cut, withdrawn included
	RemainingCut math.Int // accrued but not yet withdrawn
}

// CalculateFundProfit returns fund value minus the summed per-investor cost
// bases. Negative when the fund is under water.
func (k *Keeper) CalculateFundProfit(ctx sdk.Context, fundID string) (math.Int, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return math.ZeroInt(), types.ErrFundNotFound
	}
	value, err := k.CalculateFundValue(ctx, fund)
	if err != nil {
		return math.ZeroInt(), err
	}
	return value.Sub(fund.TotalCostBasis), nil
}

// CalculateAddressProfit returns an investor's share of current NAV minus
// their cost basis. Negative when their position is under water.
func (k *Keeper) CalculateAddressProfit(ctx sdk.Context, fundID, investor string) (math.Int, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return math.ZeroInt(), types.ErrFundNotFound
	}
	shares := k.GetShares(ctx, fundID, investor)
	basis := k.GetCostBasis(ctx, fundID, investor)
	if fund.TotalShares.IsZero() || shares.IsZero() {
		return math.ZeroInt().Sub(basis), nil
	}
	value, err := k.CalculateFundValue(ctx, fund)
	if err != nil {
		return math.ZeroInt(), err
	}
	claim := shares.Mul(value).Quo(fund.TotalShares)
	return claim.Sub(basis), nil
}

// CalculateFundManagerCut computes the manager's accrued performance fee.
// Profit above the fee threshold (the greater of the adjusted high-water
// mark and the total cost basis) accrues successFeeBps of cut; losses clamp
// to zero. The total counter is monotonic: it equals the withdrawn cut plus
// whatever is currently accrued above the mark.
func (k *Keeper) CalculateFundManagerCut(ctx sdk.Context, fundID string) (*ManagerCut, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return nil, types.ErrFundNotFound
	}
	value, err := k.CalculateFundValue(ctx, fund)
	if err != nil {
		return nil, err
	}
	remaining := accruedCut(fund, value)
	return &ManagerCut{
		FundValue:    value,
		TotalCut:     fund.ManagerCutWithdrawn.Add(remaining),
		RemainingCut: remaining,
	}, nil
}

func accruedCut(fund *types.Fund, fundValue math.Int) math.Int {
	threshold := fund.FeeHighWaterMark
	if fund.TotalCostBasis.GT(threshold) {
		threshold = fund.TotalCostBasis
	}
	gain := fundValue.Sub(threshold)
	if !gain.IsPositive() {
		return math.ZeroInt()
	}
	return gain.MulRaw(fund.SuccessFeeBps).QuoRaw(types.TotalBps)
}

// WithdrawManagerFee pays out the remaining cut, split between manager and
// platform by platformFeeBps/successFeeBps, then advances the high-water
// mark to the post-payout fund value. Zero remaining cut is a no-op
// signalled with ErrNothingToWithdraw so the call stays idempotent.
func (k *Keeper) WithdrawManagerFee(ctx context.Context, manager, fundID string, convertToBase bool) (managerOut, platformOut math.Int, err error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	release, err := k.acquireLock(fundID)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	defer release()

	cacheCtx, write := sdkCtx.CacheContext()
	managerOut, platformOut, err = k.withdrawManagerFee(cacheCtx, manager, fundID, convertToBase)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	write()
	return managerOut, platformOut, nil
}

func (k *Keeper) withdrawManagerFee(ctx sdk.Context, manager, fundID string, convertToBase bool) (math.Int, math.Int, error) {
	zero := math.ZeroInt()

	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return zero, zero, types.ErrFundNotFound
	}
	if fund.Manager != manager {
		return zero, zero, types.ErrNotAuthorized
	}

	fundValue, err := k.CalculateFundValue(ctx, fund)
	if err != nil {
		return zero, zero, err
	}
	remaining := accruedCut(fund, fundValue)
	if remaining.IsZero() {
		return zero, zero, types.ErrNothingToWithdraw
	}

	managerAddr, err := sdk.AccAddressFromBech32(fund.Manager)
	if err != nil {
		return zero, zero, err
	}
	platformAddr, err := sdk.AccAddressFromBech32(fund.Platform)
	if err != nil {
		return zero, zero, err
	}

	managerTotal := zero
	platformTotal := zero

	// Pay the cut from every held asset pro-rata to its share of NAV, so
	// fee extraction does not skew the basket composition.
	held := append([]string(nil), fund.HeldAssets...)
	for _, asset := range held {
		balance := fund.BalanceOf(asset)
		if balance.IsZero() {
			continue
		}
		slice := balance.Mul(remaining).Quo(fundValue)
		if slice.IsZero() {
			continue
		}

		payoutAsset := asset
		payoutAmount := slice
		if convertToBase && asset != fund.BaseAsset &&
			k.tokenTypes.Classify(ctx, asset) != types.AssetTypeCryptocurrency {
			received, err := k.exchangePortal.Trade(ctx, fund.ExchangePortal, asset, slice, fund.BaseAsset, zero, nil)
			if err != nil {
				return zero, zero, types.ErrExternalCallFailed.Wrapf("fee conversion %s: %v", asset, err)
			}
			payoutAsset = fund.BaseAsset
			payoutAmount = received
		}

		platformPart := payoutAmount.MulRaw(fund.PlatformFeeBps).QuoRaw(fund.SuccessFeeBps)
		managerPart := payoutAmount.Sub(platformPart)

		fund.Debit(asset, slice)
		if managerPart.IsPositive() {
			coins := sdk.NewCoins(sdk.NewCoin(payoutAsset, managerPart))
			if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, managerAddr, coins); err != nil {
				return zero, zero, err
			}
			managerTotal = managerTotal.Add(managerPart)
		}
		if platformPart.IsPositive() {
			coins := sdk.NewCoins(sdk.NewCoin(payoutAsset, platformPart))
			if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, platformAddr, coins); err != nil {
				return zero, zero, err
			}
			platformTotal = platformTotal.Add(platformPart)
		}
	}

	fund.ManagerCutWithdrawn = fund.ManagerCutWithdrawn.Add(remaining)
	fund.FeeHighWaterMark = fundValue.Sub(remaining)
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)

	metrics.GetCollector().RecordFeePayout(fundID, metrics.IntToFloat(managerTotal), metrics.IntToFloat(platformTotal))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_manager_fee_withdrawn",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("remaining_cut", remaining.String()),
			sdk.NewAttribute("manager_payout", managerTotal.String()),
			sdk.NewAttribute("platform_payout", platformTotal.String()),
			sdk.NewAttribute("high_water_mark", fund.FeeHighWaterMark.String()),
		),
	)

	k.logger.Info("Manager fee withdrawn",
		"fund_id", fundID,
		"cut", remaining.String(),
		"manager_payout", managerTotal.String(),
		"platform_payout", platformTotal.String(),
	)

	return managerTotal, platformTotal, nil
}
