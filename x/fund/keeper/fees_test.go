package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/fundchain/x/fund/types"
)

// tradeAll moves the fund's full base balance into uatom at price 1.
func tradeAll(t *testing.T, f *testFixture, fundID string, amount int64) {
	t.Helper()
	if _, err := f.keeper.Trade(f.ctx, testManager, fundID, baseAsset, math.NewInt(amount), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Fatalf("trade failed: %v", err)
	}
}

// TestManagerCutZeroWithoutProfit checks that deposits alone accrue no fee
func TestManagerCutZeroWithoutProfit(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	cut, err := f.keeper.CalculateFundManagerCut(f.ctx, fund.FundID)
	if err != nil {
		t.Fatalf("cut calculation failed: %v", err)
	}
	if !cut.RemainingCut.IsZero() || !cut.TotalCut.IsZero() {
		t.Errorf("expected zero cut, got remaining %s total %s", cut.RemainingCut, cut.TotalCut)
	}

	if _, _, err := f.keeper.WithdrawManagerFee(f.ctx, testManager, fund.FundID, false); !errors.Is(err, types.ErrNothingToWithdraw) {
		t.Errorf("expected ErrNothingToWithdraw, got %v", err)
	}
}

// TestManagerCutAccruesOnProfit checks the 15% cut on a doubled basket
func TestManagerCutAccruesOnProfit(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	tradeAll(t, f, fund.FundID, 1000)
	f.exchange.prices[atomAsset] = 2

	cut, err := f.keeper.CalculateFundManagerCut(f.ctx, fund.FundID)
	if err != nil {
		t.Fatalf("cut calculation failed: %v", err)
	}
	if !cut.FundValue.Equal(math.NewInt(2000)) {
		t.Errorf("expected fund value 2000, got %s", cut.FundValue)
	}
	// 15% of the 1000 gain above the mark.
	if !cut.RemainingCut.Equal(math.NewInt(150)) {
		t.Errorf("expected remaining cut 150, got %s", cut.RemainingCut)
	}
	if !cut.TotalCut.Equal(math.NewInt(150)) {
		t.Errorf("expected total cut 150, got %s", cut.TotalCut)
	}
}

// TestLossesAccrueNoCut checks the loss clamp
func TestLossesAccrueNoCut(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	tradeAll(t, f, fund.FundID, 1000)
	f.exchange.prices[atomAsset] = 0 // worthless basket

	cut, err := f.keeper.CalculateFundManagerCut(f.ctx, fund.FundID)
	if err != nil {
		t.Fatalf("cut calculation failed: %v", err)
	}
	if !cut.RemainingCut.IsZero() {
		t.Errorf("expected zero cut on losses, got %s", cut.RemainingCut)
	}

	profit, err := f.keeper.CalculateFundProfit(f.ctx, fund.FundID)
	if err != nil {
		t.Fatalf("profit calculation failed: %v", err)
	}
	if !profit.Equal(math.NewInt(-1000)) {
		t.Errorf("expected fund profit -1000, got %s", profit)
	}
}

// TestDepositsDoNotInflateCut checks that fresh principal is fee-exempt
func TestDepositsDoNotInflateCut(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	tradeAll(t, f, fund.FundID, 1000)
	f.exchange.prices[atomAsset] = 2

	// NAV 2000, cut 150. A second 1000 deposit lifts the mark by 1000, so
	// the cut must stay at 150.
	mustDeposit(t, f, testOther, fund.FundID, 1000)

	cut, err := f.keeper.CalculateFundManagerCut(f.ctx, fund.FundID)
	if err != nil {
		t.Fatalf("cut calculation failed: %v", err)
	}
	if !cut.RemainingCut.Equal(math.NewInt(150)) {
		t.Errorf("expected remaining cut 150 after deposit, got %s", cut.RemainingCut)
	}
}

// TestWithdrawManagerFeePayout checks the pro-rata payout, the platform
// split, and the high-water-mark advance
func TestWithdrawManagerFeePayout(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	tradeAll(t, f, fund.FundID, 1000)
	f.exchange.prices[atomAsset] = 2

	managerOut, platformOut, err := f.keeper.WithdrawManagerFee(f.ctx, testManager, fund.FundID, false)
	if err != nil {
		t.Fatalf("fee withdrawal failed: %v", err)
	}

	// Cut 150 against NAV 2000 takes 75 uatom; 500/1500 bps of it goes to
	// the platform.
	if !managerOut.Equal(math.NewInt(50)) {
		t.Errorf("expected manager payout 50, got %s", managerOut)
	}
	if !platformOut.Equal(math.NewInt(25)) {
		t.Errorf("expected platform payout 25, got %s", platformOut)
	}
	if !f.bank.received(testManager, atomAsset).Equal(math.NewInt(50)) {
		t.Errorf("manager bank payout mismatch")
	}
	if !f.bank.received(testPlatform, atomAsset).Equal(math.NewInt(25)) {
		t.Errorf("platform bank payout mismatch")
	}

	stored := f.keeper.GetFund(f.ctx, fund.FundID)
	if !stored.ManagerCutWithdrawn.Equal(math.NewInt(150)) {
		t.Errorf("expected withdrawn cut 150, got %s", stored.ManagerCutWithdrawn)
	}
	if !stored.FeeHighWaterMark.Equal(math.NewInt(1850)) {
		t.Errorf("expected high water mark 1850, got %s", stored.FeeHighWaterMark)
	}
	if !stored.BalanceOf(atomAsset).Equal(math.NewInt(925)) {
		t.Errorf("expected 925 uatom after payout, got %s", stored.BalanceOf(atomAsset))
	}

	// Without further gains a second withdrawal finds nothing.
	if _, _, err := f.keeper.WithdrawManagerFee(f.ctx, testManager, fund.FundID, false); !errors.Is(err, types.ErrNothingToWithdraw) {
		t.Errorf("expected ErrNothingToWithdraw on repeat, got %v", err)
	}
}

// TestWithdrawManagerFeeRequiresManager checks authorization
func TestWithdrawManagerFeeRequiresManager(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	if _, _, err := f.keeper.WithdrawManagerFee(f.ctx, testInvestor, fund.FundID, false); !errors.Is(err, types.ErrNotAuthorized) {
		t.Errorf("expected ErrNotAuthorized, got %v", err)
	}
}

// TestAddressProfit checks per-investor profit over cost basis
func TestAddressProfit(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)
	tradeAll(t, f, fund.FundID, 1000)
	f.exchange.prices[atomAsset] = 2

	profit, err := f.keeper.CalculateAddressProfit(f.ctx, fund.FundID, testInvestor)
	if err != nil {
		t.Fatalf("profit calculation failed: %v", err)
	}
	if !profit.Equal(math.NewInt(1000)) {
		t.Errorf("expected investor profit 1000, got %s", profit)
	}

	// An address with no shares has no claim and no basis.
	profit, err = f.keeper.CalculateAddressProfit(f.ctx, fund.FundID, testOther)
	if err != nil {
		t.Fatalf("profit calculation failed: %v", err)
	}
	if !profit.IsZero() {
		t.Errorf("expected zero profit for outsider, got %s", profit)
	}
}
