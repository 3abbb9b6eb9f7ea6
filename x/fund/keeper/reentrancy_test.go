package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/fundchain/x/fund/types"
)

// TestReentrantDepositDuringTradeRejected drives a deposit back into the
// keeper from inside a portal fill and checks that the lock rejects it and
// the outer call rolls back
func TestReentrantDepositDuringTradeRejected(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	var inner error
	f.exchange.onTrade = func(ctx sdk.Context) error {
		_, inner = f.keeper.Deposit(ctx, testInvestor, fund.FundID, math.NewInt(100))
		return inner
	}

	_, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(400), atomAsset, math.ZeroInt(), nil, nil)
	if err == nil {
		t.Fatalf("expected trade to fail on reentrant deposit")
	}
	if !errors.Is(inner, types.ErrReentrancyDetected) {
		t.Errorf("expected ErrReentrancyDetected inside the portal, got %v", inner)
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.BalanceOf(baseAsset).Equal(math.NewInt(1000)) {
		t.Errorf("custody must be untouched after rejected reentry, got %s", stored.BalanceOf(baseAsset))
	}
	if !stored.TotalShares.Equal(math.NewInt(1000).Mul(types.ShareScale)) {
		t.Errorf("share ledger must be untouched after rejected reentry")
	}
}

// TestReentrantWithdrawDuringQuoteRejected drives a withdrawal back into the
// keeper from inside a NAV quote
func TestReentrantWithdrawDuringQuoteRejected(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	minted := mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(500), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Fatalf("trade failed: %v", err)
	}

	var inner error
	f.exchange.onQuote = func(ctx sdk.Context) error {
		_, inner = f.keeper.Withdraw(ctx, testInvestor, fund.FundID, types.TotalBps, false)
		return inner
	}

	_, err := f.keeper.Withdraw(f.ctx, testInvestor, fund.FundID, types.TotalBps, false)
	if err == nil {
		t.Fatalf("expected withdrawal to fail on reentrant withdrawal")
	}
	if !errors.Is(inner, types.ErrReentrancyDetected) {
		t.Errorf("expected ErrReentrancyDetected inside the quote, got %v", inner)
	}

	if !f.keeper.GetShares(f.ctx, fund.FundID, testInvestor).Equal(minted) {
		t.Errorf("share ledger must be untouched after rejected reentry")
	}
}

// TestLockReleasesAfterFailure checks that a failed call does not wedge the
// fund
func TestLockReleasesAfterFailure(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	f.exchange.tradeErr = errPortalDown
	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(100), atomAsset, math.ZeroInt(), nil, nil); err == nil {
		t.Fatalf("expected trade to fail")
	}
	f.exchange.tradeErr = nil

	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(100), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Errorf("lock must release after a failed call: %v", err)
	}
}

// TestLocksAreScopedPerFund checks that one fund's lock does not block
// another fund
func TestLocksAreScopedPerFund(t *testing.T) {
	f := setupKeeper(t)
	fundA := createTestFund(t, f)

	fundB, err := f.keeper.CreateFund(f.ctx, types.FundConfig{
		Name:           "Second Fund",
		FundType:       types.FundTypeFull,
		Manager:        testManager,
		Platform:       testPlatform,
		BaseAsset:      baseAsset,
		SuccessFeeBps:  1000,
		ExchangePortal: portalAddr,
	})
	if err != nil {
		t.Fatalf("failed to create second fund: %v", err)
	}

	mustDeposit(t, f, testInvestor, fundA.FundID, 1000)

	// A portal call on fund A may legitimately touch fund B.
	var inner error
	f.exchange.onTrade = func(ctx sdk.Context) error {
		_, inner = f.keeper.Deposit(ctx, testInvestor, fundB.FundID, math.NewInt(100))
		return inner
	}

	if _, err := f.keeper.Trade(f.ctx, testManager, fundA.FundID, baseAsset, math.NewInt(100), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Fatalf("cross-fund call should not trip the lock: %v", err)
	}
	if inner != nil {
		t.Errorf("deposit into the other fund failed: %v", inner)
	}
}
