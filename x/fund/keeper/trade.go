package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/fundchain/metrics"
	"github.com/openalpha/fundchain/x/fund/types"
)

// authorizeDestAsset validates a trade destination against the whitelist.
// With a merkle proof supplied the external verifier decides; without one
// the flat permission list does. Skipped entirely when the fund has trade
// verification disabled.
func (k *Keeper) authorizeDestAsset(ctx sdk.Context, fund *types.Fund, destAsset string, proof []string) error {
	if !fund.TradeVerificationEnabled {
		return nil
	}
	if len(proof) > 0 {
		if k.verifier.Verify(ctx, destAsset, proof) {
			return nil
		}
		return types.ErrAssetNotPermitted.Wrapf("%s: merkle proof rejected", destAsset)
	}
	if k.permissions.IsAllowed(ctx, destAsset, RoleTradeAsset) {
		return nil
	}
	return types.ErrAssetNotPermitted.Wrap(destAsset)
}

// Trade swaps a held asset for a whitelisted destination asset through the
// fund's exchange portal. The realized destination delta must meet the
// caller-supplied minimum return or the whole call rolls back.
func (k *Keeper) Trade(ctx context.Context, manager, fundID, srcAsset string, amount math.Int, destAsset string, minReturn math.Int, proof []string, routing []byte) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	release, err := k.acquireLock(fundID)
	if err != nil {
		return math.ZeroInt(), err
	}
	defer release()

	cacheCtx, write := sdkCtx.CacheContext()
	received, err := k.trade(cacheCtx, manager, fundID, srcAsset, amount, destAsset, minReturn, proof, routing)
	if err != nil {
		return math.ZeroInt(), err
	}
	write()
	return received, nil
}

func (k *Keeper) trade(ctx sdk.Context, manager, fundID, srcAsset string, amount math.Int, destAsset string, minReturn math.Int, proof []string, routing []byte) (math.Int, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return math.ZeroInt(), types.ErrFundNotFound
	}
	if fund.Manager != manager {
		return math.ZeroInt(), types.ErrNotAuthorized
	}
	if amount.IsNil() || !amount.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientBalance.Wrap("trade amount must be positive")
	}
	if amount.GT(fund.BalanceOf(srcAsset)) {
		return math.ZeroInt(), types.ErrInsufficientBalance.Wrapf("%s: have %s, want %s", srcAsset, fund.BalanceOf(srcAsset), amount)
	}
	if err := k.authorizeDestAsset(ctx, fund, destAsset, proof); err != nil {
		return math.ZeroInt(), err
	}

	collector := metrics.GetCollector()
	timer := metrics.NewTimer()
	received, err := k.exchangePortal.Trade(ctx, fund.ExchangePortal, srcAsset, amount, destAsset, minReturn, routing)
	if err != nil {
		collector.RecordPortalCall("exchange", "trade", "error", timer.ElapsedMs())
		return math.ZeroInt(), types.ErrExternalCallFailed.Wrapf("%s -> %s: %v", srcAsset, destAsset, err)
	}
	collector.RecordPortalCall("exchange", "trade", "ok", timer.ElapsedMs())
	if received.LT(minReturn) {
		return math.ZeroInt(), types.ErrMinimumReturnNotMet.Wrapf("received %s, minimum %s", received, minReturn)
	}

	fund.Debit(srcAsset, amount)
	fund.Credit(destAsset, received)
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)
	collector.RecordTrade(fundID, srcAsset, destAsset, metrics.IntToFloat(amount))

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_trade",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("source_asset", srcAsset),
			sdk.NewAttribute("dest_asset", destAsset),
			sdk.NewAttribute("amount", amount.String()),
			sdk.NewAttribute("received", received.String()),
		),
	)

	k.logger.Info("Trade executed",
		"fund_id", fundID,
		"source_asset", srcAsset,
		"dest_asset", destAsset,
		"amount", amount.String(),
		"received", received.String(),
	)

	return received, nil
}

// BuyPool spends base asset through the pool portal for pool tokens.
// Full funds only.
func (k *Keeper) BuyPool(ctx context.Context, manager, fundID, poolToken string, baseAmount math.Int, connectors []string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	release, err := k.acquireLock(fundID)
	if err != nil {
		return math.ZeroInt(), err
	}
	defer release()

	cacheCtx, write := sdkCtx.CacheContext()
	received, err := k.buyPool(cacheCtx, manager, fundID, poolToken, baseAmount, connectors)
	if err != nil {
		return math.ZeroInt(), err
	}
	write()
	return received, nil
}

func (k *Keeper) buyPool(ctx sdk.Context, manager, fundID, poolToken string, baseAmount math.Int, connectors []string) (math.Int, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return math.ZeroInt(), types.ErrFundNotFound
	}
	if fund.Manager != manager {
		return math.ZeroInt(), types.ErrNotAuthorized
	}
	if !fund.SupportsPortals() {
		return math.ZeroInt(), types.ErrFundTypeUnsupported.Wrap("pool operations require a full fund")
	}
	if baseAmount.IsNil() || !baseAmount.IsPositive() || baseAmount.GT(fund.BalanceOf(fund.BaseAsset)) {
		return math.ZeroInt(), types.ErrInsufficientBalance.Wrap(fund.BaseAsset)
	}

	collector := metrics.GetCollector()
	timer := metrics.NewTimer()
	received, err := k.poolPortal.Buy(ctx, fund.PoolPortal, poolToken, fund.BaseAsset, baseAmount, connectors)
	if err != nil {
		collector.RecordPortalCall("pool", "buy", "error", timer.ElapsedMs())
		return math.ZeroInt(), types.ErrExternalCallFailed.Wrapf("pool buy %s: %v", poolToken, err)
	}
	collector.RecordPortalCall("pool", "buy", "ok", timer.ElapsedMs())
	collector.PoolOpsTotal.WithLabelValues(fundID, "buy").Inc()

	fund.Debit(fund.BaseAsset, baseAmount)
	fund.Credit(poolToken, received)
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_pool_buy",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("pool_token", poolToken),
			sdk.NewAttribute("base_amount", baseAmount.String()),
			sdk.NewAttribute("pool_tokens_received", received.String()),
		),
	)

	return received, nil
}

// SellPool redeems pool tokens through the pool portal for their connector
// assets. Full funds only.
func (k *Keeper) SellPool(ctx context.Context, manager, fundID, poolToken string, poolAmount math.Int) (map[string]math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	release, err := k.acquireLock(fundID)
	if err != nil {
		return nil, err
	}
	defer release()

	cacheCtx, write := sdkCtx.CacheContext()
	received, err := k.sellPool(cacheCtx, manager, fundID, poolToken, poolAmount)
	if err != nil {
		return nil, err
	}
	write()
	return received, nil
}

func (k *Keeper) sellPool(ctx sdk.Context, manager, fundID, poolToken string, poolAmount math.Int) (map[string]math.Int, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return nil, types.ErrFundNotFound
	}
	if fund.Manager != manager {
		return nil, types.ErrNotAuthorized
	}
	if !fund.SupportsPortals() {
		return nil, types.ErrFundTypeUnsupported.Wrap("pool operations require a full fund")
	}
	if poolAmount.IsNil() || !poolAmount.IsPositive() || poolAmount.GT(fund.BalanceOf(poolToken)) {
		return nil, types.ErrInsufficientBalance.Wrap(poolToken)
	}

	collector := metrics.GetCollector()
	timer := metrics.NewTimer()
	received, err := k.poolPortal.Sell(ctx, fund.PoolPortal, poolToken, poolAmount)
	if err != nil {
		collector.RecordPortalCall("pool", "sell", "error", timer.ElapsedMs())
		return nil, types.ErrExternalCallFailed.Wrapf("pool sell %s: %v", poolToken, err)
	}
	collector.RecordPortalCall("pool", "sell", "ok", timer.ElapsedMs())
	collector.PoolOpsTotal.WithLabelValues(fundID, "sell").Inc()

	fund.Debit(poolToken, poolAmount)
	for asset, amt := range received {
		fund.Credit(asset, amt)
	}
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_pool_sell",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("pool_token", poolToken),
			sdk.NewAttribute("pool_amount", poolAmount.String()),
		),
	)

	return received, nil
}

// CallDefi executes an opaque generic-protocol interaction (wrapped position
// mint/redeem and the like) and re-syncs the reported balance deltas into
// the asset registry. Full funds only.
func (k *Keeper) CallDefi(ctx context.Context, manager, fundID string, targets []string, amounts []math.Int, selectors []string, params []byte) ([]byte, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	release, err := k.acquireLock(fundID)
	if err != nil {
		return nil, err
	}
	defer release()

	cacheCtx, write := sdkCtx.CacheContext()
	data, err := k.callDefi(cacheCtx, manager, fundID, targets, amounts, selectors, params)
	if err != nil {
		return nil, err
	}
	write()
	return data, nil
}

func (k *Keeper) callDefi(ctx sdk.Context, manager, fundID string, targets []string, amounts []math.Int, selectors []string, params []byte) ([]byte, error) {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return nil, types.ErrFundNotFound
	}
	if fund.Manager != manager {
		return nil, types.ErrNotAuthorized
	}
	if !fund.SupportsPortals() {
		return nil, types.ErrFundTypeUnsupported.Wrap("defi operations require a full fund")
	}
	if len(amounts) != len(targets) {
		return nil, types.ErrInvalidFundConfig.Wrapf("target assets and amounts length mismatch: %d vs %d", len(targets), len(amounts))
	}
	for i, target := range targets {
		if amounts[i].GT(fund.BalanceOf(target)) {
			return nil, types.ErrInsufficientBalance.Wrap(target)
		}
	}

	collector := metrics.GetCollector()
	timer := metrics.NewTimer()
	result, err := k.defiPortal.Call(ctx, fund.DefiPortal, targets, amounts, selectors, params)
	if err != nil {
		collector.RecordPortalCall("defi", "call", "error", timer.ElapsedMs())
		return nil, types.ErrExternalCallFailed.Wrapf("defi call: %v", err)
	}
	collector.RecordPortalCall("defi", "call", "ok", timer.ElapsedMs())
	collector.DefiOpsTotal.WithLabelValues(fundID).Inc()

	for asset, amt := range result.Spent {
		if amt.GT(fund.BalanceOf(asset)) {
			return nil, types.ErrInsufficientBalance.Wrapf("defi spent more %s than held", asset)
		}
		fund.Debit(asset, amt)
	}
	for asset, amt := range result.Received {
		fund.Credit(asset, amt)
	}
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_defi_call",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("targets", math.NewInt(int64(len(targets))).String()),
		),
	)

	return result.Data, nil
}

// SetTradeVerification toggles destination-asset whitelisting for trades.
func (k *Keeper) SetTradeVerification(ctx sdk.Context, manager, fundID string, enabled bool) error {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return types.ErrFundNotFound
	}
	if fund.Manager != manager {
		return types.ErrNotAuthorized
	}
	fund.TradeVerificationEnabled = enabled
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)
	return nil
}

// SetPortal repoints one of the fund's external collaborator addresses.
// Only values the permission registry currently allows are accepted.
func (k *Keeper) SetPortal(ctx sdk.Context, manager, fundID, role, addr string) error {
	fund := k.GetFund(ctx, fundID)
	if fund == nil {
		return types.ErrFundNotFound
	}
	if fund.Manager != manager {
		return types.ErrNotAuthorized
	}
	if !k.permissions.IsAllowed(ctx, addr, role) {
		return types.ErrPortalNotPermitted.Wrapf("%s portal %s", role, addr)
	}

	switch role {
	case types.PortalRoleExchange:
		fund.ExchangePortal = addr
	case types.PortalRolePool:
		fund.PoolPortal = addr
	case types.PortalRoleDefi:
		fund.DefiPortal = addr
	default:
		return types.ErrPortalNotPermitted.Wrapf("unknown role %s", role)
	}
	fund.UpdatedAt = time.Now().Unix()
	k.SetFund(ctx, fund)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_portal_updated",
			sdk.NewAttribute("fund_id", fundID),
			sdk.NewAttribute("role", role),
			sdk.NewAttribute("address", addr),
		),
	)
	return nil
}
