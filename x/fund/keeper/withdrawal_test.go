package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/fundchain/x/fund/types"
)

// TestFullWithdrawalReturnsDeposit checks the round trip with no profit
func TestFullWithdrawalReturnsDeposit(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	minted := mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	result, err := f.keeper.Withdraw(f.ctx, testInvestor, fund.FundID, types.TotalBps, false)
	if err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}
	if !result.SharesBurned.Equal(minted) {
		t.Errorf("expected all shares burned, got %s of %s", result.SharesBurned, minted)
	}
	if !result.Payouts[baseAsset].Equal(math.NewInt(1000)) {
		t.Errorf("expected 1000 base paid out, got %s", result.Payouts[baseAsset])
	}
	if !f.bank.received(testInvestor, baseAsset).Equal(math.NewInt(1000)) {
		t.Errorf("bank payout mismatch")
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.TotalShares.IsZero() {
		t.Errorf("expected zero total shares, got %s", stored.TotalShares)
	}
	if !stored.BalanceOf(baseAsset).IsZero() {
		t.Errorf("expected empty custody, got %s", stored.BalanceOf(baseAsset))
	}
	if !stored.TotalCostBasis.IsZero() {
		t.Errorf("expected zero cost basis, got %s", stored.TotalCostBasis)
	}
	if !stored.FeeHighWaterMark.IsZero() {
		t.Errorf("expected zero high water mark, got %s", stored.FeeHighWaterMark)
	}
	if !stored.CumulativeWithdrawn.Equal(math.NewInt(1000)) {
		t.Errorf("expected cumulative withdrawn 1000, got %s", stored.CumulativeWithdrawn)
	}
	if !f.keeper.GetShares(f.ctx, fund.FundID, testInvestor).IsZero() {
		t.Errorf("investor should hold no shares")
	}
}

// TestZeroPercentMeansWholePosition checks the 0-bps convention
func TestZeroPercentMeansWholePosition(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	minted := mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	result, err := f.keeper.Withdraw(f.ctx, testInvestor, fund.FundID, 0, false)
	if err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}
	if !result.SharesBurned.Equal(minted) {
		t.Errorf("0 bps should burn the whole position")
	}
}

// TestPartialWithdrawalHalvesPosition checks pro-rata accounting at 50%
func TestPartialWithdrawalHalvesPosition(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	minted := mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	result, err := f.keeper.Withdraw(f.ctx, testInvestor, fund.FundID, 5000, false)
	if err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}
	if !result.SharesBurned.Equal(minted.QuoRaw(2)) {
		t.Errorf("expected half the shares burned, got %s", result.SharesBurned)
	}
	if !result.Payouts[baseAsset].Equal(math.NewInt(500)) {
		t.Errorf("expected 500 base paid out, got %s", result.Payouts[baseAsset])
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.TotalShares.Equal(minted.QuoRaw(2)) {
		t.Errorf("expected half the total shares to remain")
	}
	if !stored.TotalCostBasis.Equal(math.NewInt(500)) {
		t.Errorf("expected cost basis 500, got %s", stored.TotalCostBasis)
	}
	if !stored.FeeHighWaterMark.Equal(math.NewInt(500)) {
		t.Errorf("expected high water mark 500, got %s", stored.FeeHighWaterMark)
	}
	if !f.keeper.GetCostBasis(f.ctx, fund.FundID, testInvestor).Equal(math.NewInt(500)) {
		t.Errorf("expected investor basis 500")
	}
}

// TestWithdrawalSlicesEveryAsset checks pro-rata payout across the basket
func TestWithdrawalSlicesEveryAsset(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(500), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Fatalf("trade failed: %v", err)
	}

	result, err := f.keeper.Withdraw(f.ctx, testInvestor, fund.FundID, types.TotalBps, false)
	if err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}
	if !result.Payouts[baseAsset].Equal(math.NewInt(500)) {
		t.Errorf("expected 500 base paid out, got %s", result.Payouts[baseAsset])
	}
	if !result.Payouts[atomAsset].Equal(math.NewInt(500)) {
		t.Errorf("expected 500 uatom paid out, got %s", result.Payouts[atomAsset])
	}
	if !result.Value.Equal(math.NewInt(1000)) {
		t.Errorf("expected withdrawal value 1000, got %s", result.Value)
	}
}

// TestWithdrawalConvertsNonCryptoSlices checks the conversion policy:
// cryptocurrency slices pay out in kind, everything else is sold into the
// base asset when conversion is requested
func TestWithdrawalConvertsNonCryptoSlices(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(400), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Fatalf("trade failed: %v", err)
	}
	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(300), wrapAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Fatalf("trade failed: %v", err)
	}

	result, err := f.keeper.Withdraw(f.ctx, testInvestor, fund.FundID, types.TotalBps, true)
	if err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}

	// 300 base remained, the 300 wrapped slice converts back into base, the
	// 400 uatom slice stays in kind.
	if !result.Payouts[baseAsset].Equal(math.NewInt(600)) {
		t.Errorf("expected 600 base paid out, got %s", result.Payouts[baseAsset])
	}
	if !result.Payouts[atomAsset].Equal(math.NewInt(400)) {
		t.Errorf("expected 400 uatom paid out, got %s", result.Payouts[atomAsset])
	}
	if _, ok := result.Payouts[wrapAsset]; ok {
		t.Errorf("wrapped asset should have been converted, payouts: %v", result.Payouts)
	}
}

// TestWithdrawalPercentBounds checks the percentage guard
func TestWithdrawalPercentBounds(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	if _, err := f.keeper.Withdraw(f.ctx, testInvestor, fund.FundID, types.TotalBps+1, false); !errors.Is(err, types.ErrInvalidPercentage) {
		t.Errorf("expected ErrInvalidPercentage above 10000, got %v", err)
	}
	if _, err := f.keeper.Withdraw(f.ctx, testInvestor, fund.FundID, -1, false); !errors.Is(err, types.ErrInvalidPercentage) {
		t.Errorf("expected ErrInvalidPercentage below 0, got %v", err)
	}
}

// TestWithdrawalWithoutShares checks the empty-position guard
func TestWithdrawalWithoutShares(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	if _, err := f.keeper.Withdraw(f.ctx, testOther, fund.FundID, types.TotalBps, false); !errors.Is(err, types.ErrInsufficientShares) {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}
}

// TestWithdrawalRollsBackOnQuoteFailure checks atomicity when pricing fails
// mid-payout
func TestWithdrawalRollsBackOnQuoteFailure(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	minted := mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(500), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Fatalf("trade failed: %v", err)
	}
	f.exchange.quoteErr = errPortalDown

	if _, err := f.keeper.Withdraw(f.ctx, testInvestor, fund.FundID, types.TotalBps, false); !errors.Is(err, types.ErrExternalQuoteFailed) {
		t.Fatalf("expected ErrExternalQuoteFailed, got %v", err)
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.TotalShares.Equal(minted) {
		t.Errorf("shares must survive a failed withdrawal")
	}
	if !stored.BalanceOf(baseAsset).Equal(math.NewInt(500)) || !stored.BalanceOf(atomAsset).Equal(math.NewInt(500)) {
		t.Errorf("custody must survive a failed withdrawal")
	}
}

// TestWithdrawalAfterAppreciation checks that leavers realize their profit
func TestWithdrawalAfterAppreciation(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(1000), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Fatalf("trade failed: %v", err)
	}
	f.exchange.prices[atomAsset] = 2

	result, err := f.keeper.Withdraw(f.ctx, testInvestor, fund.FundID, types.TotalBps, false)
	if err != nil {
		t.Fatalf("withdrawal failed: %v", err)
	}
	// The whole 1000 uatom position pays out; its value doubled to 2000.
	if !result.Payouts[atomAsset].Equal(math.NewInt(1000)) {
		t.Errorf("expected 1000 uatom paid out, got %s", result.Payouts[atomAsset])
	}
	if !result.Value.Equal(math.NewInt(2000)) {
		t.Errorf("expected withdrawal value 2000, got %s", result.Value)
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.FeeHighWaterMark.IsZero() {
		t.Errorf("high water mark should floor at zero, got %s", stored.FeeHighWaterMark)
	}
}
