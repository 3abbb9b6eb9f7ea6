package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/fundchain/x/fund/types"
)

// TestTradeSwapsBalances checks the custody ledger after a fill
func TestTradeSwapsBalances(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	received, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(400), atomAsset, math.ZeroInt(), nil, nil)
	if err != nil {
		t.Fatalf("trade failed: %v", err)
	}
	if !received.Equal(math.NewInt(400)) {
		t.Errorf("expected 400 received at price 1, got %s", received)
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.BalanceOf(baseAsset).Equal(math.NewInt(600)) {
		t.Errorf("expected base balance 600, got %s", stored.BalanceOf(baseAsset))
	}
	if !stored.BalanceOf(atomAsset).Equal(math.NewInt(400)) {
		t.Errorf("expected uatom balance 400, got %s", stored.BalanceOf(atomAsset))
	}
	if !stored.Holds(atomAsset) {
		t.Errorf("uatom should be registered in the held set")
	}
}

// TestTradeRollsBackOnMinReturn checks that a failed fill leaves no trace
func TestTradeRollsBackOnMinReturn(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	f.exchange.prices[atomAsset] = 2

	// 400 base buys 200 uatom; demanding 300 must fail.
	_, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(400), atomAsset, math.NewInt(300), nil, nil)
	if !errors.Is(err, types.ErrMinimumReturnNotMet) {
		t.Fatalf("expected ErrMinimumReturnNotMet, got %v", err)
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.BalanceOf(baseAsset).Equal(math.NewInt(1000)) {
		t.Errorf("base balance should be untouched, got %s", stored.BalanceOf(baseAsset))
	}
	if stored.Holds(atomAsset) {
		t.Errorf("failed trade must not register the destination asset")
	}
}

// TestTradePortalFailureRollsBack checks rollback on venue errors
func TestTradePortalFailureRollsBack(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	f.exchange.tradeErr = errPortalDown

	_, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(400), atomAsset, math.ZeroInt(), nil, nil)
	if !errors.Is(err, types.ErrExternalCallFailed) {
		t.Fatalf("expected ErrExternalCallFailed, got %v", err)
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.BalanceOf(baseAsset).Equal(math.NewInt(1000)) {
		t.Errorf("base balance should be untouched, got %s", stored.BalanceOf(baseAsset))
	}
}

// TestTradeRequiresManager checks authorization
func TestTradeRequiresManager(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	_, err := f.keeper.Trade(f.ctx, testInvestor, fund.FundID, baseAsset, math.NewInt(100), atomAsset, math.ZeroInt(), nil, nil)
	if !errors.Is(err, types.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
}

// TestTradeSourceBalanceGuard checks overdraft rejection
func TestTradeSourceBalanceGuard(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	_, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(1001), atomAsset, math.ZeroInt(), nil, nil)
	if !errors.Is(err, types.ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}

// TestTradeVerificationGatesDestination checks both whitelist paths
func TestTradeVerificationGatesDestination(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	if err := f.keeper.SetTradeVerification(f.ctx, testManager, fund.FundID, true); err != nil {
		t.Fatalf("failed to enable trade verification: %v", err)
	}
	f.permissions.denied[atomAsset+"/"+RoleTradeAsset] = true

	// Flat list denies the destination.
	_, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(100), atomAsset, math.ZeroInt(), nil, nil)
	if !errors.Is(err, types.ErrAssetNotPermitted) {
		t.Fatalf("expected ErrAssetNotPermitted, got %v", err)
	}

	// A bad merkle proof is also rejected.
	_, err = f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(100), atomAsset, math.ZeroInt(), []string{"bogus"}, nil)
	if !errors.Is(err, types.ErrAssetNotPermitted) {
		t.Fatalf("expected ErrAssetNotPermitted for bad proof, got %v", err)
	}

	// A valid proof overrides the flat list.
	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(100), atomAsset, math.ZeroInt(), []string{"valid"}, nil); err != nil {
		t.Fatalf("trade with valid proof failed: %v", err)
	}
}

// TestBuyAndSellPool checks the pool portal round trip
func TestBuyAndSellPool(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	received, err := f.keeper.BuyPool(f.ctx, testManager, fund.FundID, poolAsset, math.NewInt(600), nil)
	if err != nil {
		t.Fatalf("pool buy failed: %v", err)
	}
	if !received.Equal(math.NewInt(600)) {
		t.Errorf("expected 600 pool tokens, got %s", received)
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.BalanceOf(baseAsset).Equal(math.NewInt(400)) {
		t.Errorf("expected base balance 400, got %s", stored.BalanceOf(baseAsset))
	}
	if !stored.BalanceOf(poolAsset).Equal(math.NewInt(600)) {
		t.Errorf("expected pool balance 600, got %s", stored.BalanceOf(poolAsset))
	}

	connectors, err := f.keeper.SellPool(f.ctx, testManager, fund.FundID, poolAsset, math.NewInt(600))
	if err != nil {
		t.Fatalf("pool sell failed: %v", err)
	}
	if !connectors[baseAsset].Equal(math.NewInt(300)) || !connectors[atomAsset].Equal(math.NewInt(300)) {
		t.Errorf("unexpected connector amounts: %v", connectors)
	}

	stored = f.keeper.GetFund(f.ctx, fund.FundID)
	if stored.Holds(poolAsset) {
		t.Errorf("pool token should be pruned after full redemption")
	}
	if !stored.BalanceOf(baseAsset).Equal(math.NewInt(700)) {
		t.Errorf("expected base balance 700, got %s", stored.BalanceOf(baseAsset))
	}
	if !stored.BalanceOf(atomAsset).Equal(math.NewInt(300)) {
		t.Errorf("expected uatom balance 300, got %s", stored.BalanceOf(atomAsset))
	}
}

// TestPoolOpsRequireFullFund checks the light-fund restriction
func TestPoolOpsRequireFullFund(t *testing.T) {
	f := setupKeeper(t)

	fund, err := f.keeper.CreateFund(f.ctx, types.FundConfig{
		Name:           "Light Fund",
		FundType:       types.FundTypeLight,
		Manager:        testManager,
		Platform:       testPlatform,
		BaseAsset:      baseAsset,
		SuccessFeeBps:  1000,
		ExchangePortal: portalAddr,
	})
	if err != nil {
		t.Fatalf("failed to create light fund: %v", err)
	}
	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	if _, err := f.keeper.BuyPool(f.ctx, testManager, fund.FundID, poolAsset, math.NewInt(100), nil); !errors.Is(err, types.ErrFundTypeUnsupported) {
		t.Errorf("expected ErrFundTypeUnsupported for buy, got %v", err)
	}
	if _, err := f.keeper.SellPool(f.ctx, testManager, fund.FundID, poolAsset, math.NewInt(100)); !errors.Is(err, types.ErrFundTypeUnsupported) {
		t.Errorf("expected ErrFundTypeUnsupported for sell, got %v", err)
	}
	if _, err := f.keeper.CallDefi(f.ctx, testManager, fund.FundID, []string{baseAsset}, []math.Int{math.NewInt(1)}, []string{"mint"}, nil); !errors.Is(err, types.ErrFundTypeUnsupported) {
		t.Errorf("expected ErrFundTypeUnsupported for defi, got %v", err)
	}

	// Light funds still trade through the exchange portal.
	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(100), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Errorf("light fund trade failed: %v", err)
	}
}

// TestCallDefiAppliesDeltas checks spent/received synchronization
func TestCallDefiAppliesDeltas(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	f.defi.result = &DefiResult{
		Spent:    map[string]math.Int{baseAsset: math.NewInt(500)},
		Received: map[string]math.Int{wrapAsset: math.NewInt(500)},
		Data:     []byte("ok"),
	}

	data, err := f.keeper.CallDefi(f.ctx, testManager, fund.FundID, []string{baseAsset}, []math.Int{math.NewInt(500)}, []string{"mint"}, nil)
	if err != nil {
		t.Fatalf("defi call failed: %v", err)
	}
	if string(data) != "ok" {
		t.Errorf("unexpected call data: %q", data)
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.BalanceOf(baseAsset).Equal(math.NewInt(500)) {
		t.Errorf("expected base balance 500, got %s", stored.BalanceOf(baseAsset))
	}
	if !stored.BalanceOf(wrapAsset).Equal(math.NewInt(500)) {
		t.Errorf("expected wrapped balance 500, got %s", stored.BalanceOf(wrapAsset))
	}
}

func TestCallDefiRejectsMismatchedAmounts(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	_, err := f.keeper.CallDefi(f.ctx, testManager, fund.FundID, []string{baseAsset, atomAsset}, []math.Int{math.NewInt(100)}, nil, nil)
	if !errors.Is(err, types.ErrInvalidFundConfig) {
		t.Errorf("expected ErrInvalidFundConfig, got %v", err)
	}

	_, err = f.keeper.CallDefi(f.ctx, testManager, fund.FundID, []string{baseAsset}, []math.Int{math.NewInt(100), math.NewInt(200)}, nil, nil)
	if !errors.Is(err, types.ErrInvalidFundConfig) {
		t.Errorf("expected ErrInvalidFundConfig, got %v", err)
	}
}

// TestSetPortal checks permission-gated repointing
func TestSetPortal(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	f.permissions.denied["cosmos1badportal/"+types.PortalRoleExchange] = true
	if err := f.keeper.SetPortal(f.ctx, testManager, fund.FundID, types.PortalRoleExchange, "cosmos1badportal"); !errors.Is(err, types.ErrPortalNotPermitted) {
		t.Errorf("expected ErrPortalNotPermitted, got %v", err)
	}

	if err := f.keeper.SetPortal(f.ctx, testInvestor, fund.FundID, types.PortalRoleExchange, "cosmos1newportal"); !errors.Is(err, types.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}

	if err := f.keeper.SetPortal(f.ctx, testManager, fund.FundID, types.PortalRoleExchange, "cosmos1newportal"); err != nil {
		t.Fatalf("repointing failed: %v", err)
	}
	if got := f.keeper.GetFund(f.ctx, fund.FundID).ExchangePortal; got != "cosmos1newportal" {
		t.Errorf("expected portal cosmos1newportal, got %s", got)
	}
}
