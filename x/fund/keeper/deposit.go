package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/fundchain/x/fund/types"
)

// Deposit credits base asset into a fund and mints shares against the
// pre-deposit NAV. Reentrancy-guarded; atomic.
func (k *Keeper) Deposit(ctx context.Context, investor, fundID string, amount math.Int) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	release, err := k.acquireLock(fundID)
	if err != nil {
		return math.ZeroInt(), err
	}
	defer release()

	cacheCtx, write := sdkCtx.CacheContext()
	minted, err := k.deposit(cacheCtx, investor, fundID, amount)
	if err != nil {
		return math.ZeroInt(), err
	}
	write()
	return minted, nil
}

func (k *Keeper) deposit(ctx sdk.Context, investor, fundID string, amount math.Int) (math.Int, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return math.ZeroInt(), types.ErrFundNotFound
	}
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt(), types.ErrZeroDeposit
	}
	if fund.WhitelistOnly && !k.IsInvestorAllowed(ctx, fundID, investor) {
		return math.ZeroInt(), types.ErrInvestorNotAllowed
	}

	// NAV snapshot before the incoming transfer is counted. Taking it after
	// would double-count the deposit in the share-pricing denominator.
	valueBefore, err := k.CalculateFundValue(ctx, fund)
	if err != nil {
		return math.ZeroInt(), err
	}

	investorAddr, err := sdk.AccAddressFromBech32(investor)
	if err != nil {
		return math.ZeroInt(), err
	}
	coins := sdk.NewCoins(sdk.NewCoin(fund.BaseAsset, amount))
	if err := k.bankKeeper.SendCoinsFromAccountToModule(ctx, investorAddr, types.ModuleName, coins); err != nil {
		return math.ZeroInt(), err
	}
	fund.Credit(fund.BaseAsset, amount)

	var minted math.Int
	if fund.TotalShares.IsZero() || valueBefore.IsZero() {
		minted = amount.Mul(types.ShareScale)
	} else {
		minted = amount.Mul(fund.TotalShares).Quo(valueBefore)
	}

	k.SetShares(ctx, fundID, investor, k.GetShares(ctx, fundID, investor).Add(minted))
	k.SetCostBasis(ctx, fundID, investor, k.GetCostBasis(ctx, fundID, investor).Add(amount))

	fund.TotalShares = fund.TotalShares.Add(minted)
	fund.TotalCostBasis = fund.TotalCostBasis.Add(amount)
	fund.FeeHighWaterMark = fund.FeeHighWaterMark.Add(amount)
	fund.CumulativeDeposited = fund.CumulativeDeposited.Add(amount)
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_deposit",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("investor", investor),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("shares_minted", minted.String()),
			sdk.NewAttribute("value_before", valueBefore.String()),
		),
	)

	k.logger.Info("Deposit processed",
		"fund_id", fundID,
		"investor", investor,
		"amount", amount.String(),
		"shares_minted", minted.String(),
	)

	return minted, nil
}

// TransferShares moves shares between investors. The proportional slice of
// the sender's cost basis travels with the shares so per-investor profit
// stays meaningful for transferees.
func (k *Keeper) TransferShares(ctx context.Context, from, to, fundID string, shares math.Int) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	release, err := k.acquireLock(fundID)
	if err != nil {
		return math.ZeroInt(), err
	}
	defer release()

	cacheCtx, write := sdkCtx.CacheContext()
	moved, err := k.transferShares(cacheCtx, from, to, fundID, shares)
	if err != nil {
		return math.ZeroInt(), err
	}
	write()
	return moved, nil
}

func (k *Keeper) transferShares(ctx sdk.Context, from, to, fundID string, shares math.Int) (math.Int, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return math.ZeroInt(), types.ErrFundNotFound
	}
	if shares.IsNil() || !shares.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientShares
	}

	fromShares := k.GetShares(ctx, fundID, from)
	if shares.GT(fromShares) {
		return math.ZeroInt(), types.ErrInsufficientShares
	}
	if fund.WhitelistOnly && !k.IsInvestorAllowed(ctx, fundID, to) {
		return math.ZeroInt(), types.ErrInvestorNotAllowed
	}

	fromBasis := k.GetCostBasis(ctx, fundID, from)
	basisMoved := fromBasis.Mul(shares).Quo(fromShares)

	k.SetShares(ctx, fundID, from, fromShares.Sub(shares))
	k.SetShares(ctx, fundID, to, k.GetShares(ctx, fundID, to).Add(shares))
	k.SetCostBasis(ctx, fundID, from, fromBasis.Sub(basisMoved))
	k.SetCostBasis(ctx, fundID, to, k.GetCostBasis(ctx, fundID, to).Add(basisMoved))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_shares_transferred",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("from", from),
			sdk.NewAttribute("to", to),
			sdk.NewAttribute("shares", shares.String()),
			sdk.NewAttribute("cost_basis_moved", basisMoved.String()),
		),
	)

	return basisMoved, nil
}

// SetWhitelistOnly toggles investor whitelisting (manager only).
func (k *Keeper) SetWhitelistOnly(ctx sdk.Context, manager, fundID string, enabled bool) error {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return types.ErrFundNotFound
	}
	if fund.Manager != manager {
		return types.ErrNotAuthorized
	}
	fund.WhitelistOnly = enabled
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)
	return nil
}

// AllowInvestor updates whitelist membership (manager only).
func (k *Keeper) AllowInvestor(ctx sdk.Context, manager, fundID, investor string, allowed bool) error {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return types.ErrFundNotFound
	}
	if fund.Manager != manager {
		return types.ErrNotAuthorized
	}
	k.SetInvestorAllowed(ctx, fundID, investor, allowed)
	return nil
}

// TransferManager hands fund control to a new manager (manager only).
func (k *Keeper) TransferManager(ctx sdk.Context, manager, fundID, newManager string) error {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return types.ErrFundNotFound
	}
	if fund.Manager != manager {
		return types.ErrNotAuthorized
	}
	fund.Manager = newManager
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_manager_transferred",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("previous_manager", manager),
			sdk.NewAttribute("new_manager", newManager),
		),
	)
	return nil
}
