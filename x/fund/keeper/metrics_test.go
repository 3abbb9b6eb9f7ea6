package keeper

import (
	"testing"

	"cosmossdk.io/math"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/openalpha/fundchain/metrics"
)

// TestTradeRecordsMetrics checks that trade execution feeds the trade and
// portal counters. Fund IDs are random so the per-fund counters start fresh;
// the portal counters are global and are compared as deltas.
func TestTradeRecordsMetrics(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)
	collector := metrics.GetCollector()

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	okBefore := promtestutil.ToFloat64(collector.PortalCallsTotal.WithLabelValues("exchange", "trade", "ok"))
	errBefore := promtestutil.ToFloat64(collector.PortalCallsTotal.WithLabelValues("exchange", "trade", "error"))

	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(400), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Fatalf("trade failed: %v", err)
	}

	if got := promtestutil.ToFloat64(collector.TradesTotal.WithLabelValues(fund.FundID, baseAsset, atomAsset)); got != 1 {
		t.Errorf("trades counter = %v, want 1", got)
	}
	if got := promtestutil.ToFloat64(collector.TradeVolume.WithLabelValues(fund.FundID, baseAsset)); got != 400 {
		t.Errorf("trade volume = %v, want 400", got)
	}
	if got := promtestutil.ToFloat64(collector.PortalCallsTotal.WithLabelValues("exchange", "trade", "ok")); got != okBefore+1 {
		t.Errorf("ok portal calls = %v, want %v", got, okBefore+1)
	}

	f.exchange.tradeErr = errPortalDown
	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(100), atomAsset, math.ZeroInt(), nil, nil); err == nil {
		t.Fatal("expected trade to fail")
	}
	if got := promtestutil.ToFloat64(collector.PortalCallsTotal.WithLabelValues("exchange", "trade", "error")); got != errBefore+1 {
		t.Errorf("error portal calls = %v, want %v", got, errBefore+1)
	}
}

// TestPoolAndDefiOpsRecordMetrics checks the per-fund operation counters.
func TestPoolAndDefiOpsRecordMetrics(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)
	collector := metrics.GetCollector()

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	if _, err := f.keeper.BuyPool(f.ctx, testManager, fund.FundID, poolAsset, math.NewInt(300), nil); err != nil {
		t.Fatalf("pool buy failed: %v", err)
	}
	if _, err := f.keeper.SellPool(f.ctx, testManager, fund.FundID, poolAsset, math.NewInt(100)); err != nil {
		t.Fatalf("pool sell failed: %v", err)
	}
	if _, err := f.keeper.CallDefi(f.ctx, testManager, fund.FundID, []string{baseAsset}, []math.Int{math.NewInt(50)}, nil, nil); err != nil {
		t.Fatalf("defi call failed: %v", err)
	}

	if got := promtestutil.ToFloat64(collector.PoolOpsTotal.WithLabelValues(fund.FundID, "buy")); got != 1 {
		t.Errorf("pool buy counter = %v, want 1", got)
	}
	if got := promtestutil.ToFloat64(collector.PoolOpsTotal.WithLabelValues(fund.FundID, "sell")); got != 1 {
		t.Errorf("pool sell counter = %v, want 1", got)
	}
	if got := promtestutil.ToFloat64(collector.DefiOpsTotal.WithLabelValues(fund.FundID)); got != 1 {
		t.Errorf("defi counter = %v, want 1", got)
	}
}

// TestWithdrawManagerFeeRecordsPayouts checks the fee payout counters against
// the amounts the keeper reports paying.
func TestWithdrawManagerFeeRecordsPayouts(t *testing.T) {
	f := setupKeeper(t)
	fund := createTestFund(t, f)
	collector := metrics.GetCollector()

	mustDeposit(t, f, testInvestor, fund.FundID, 1000)

	if _, err := f.keeper.Trade(f.ctx, testManager, fund.FundID, baseAsset, math.NewInt(400), atomAsset, math.ZeroInt(), nil, nil); err != nil {
		t.Fatalf("trade failed: %v", err)
	}
	f.exchange.prices[atomAsset] = 2

	managerOut, platformOut, err := f.keeper.WithdrawManagerFee(f.ctx, testManager, fund.FundID, false)
	if err != nil {
		t.Fatalf("fee withdrawal failed: %v", err)
	}
	if !managerOut.IsPositive() || !platformOut.IsPositive() {
		t.Fatalf("expected positive payouts, got manager %s platform %s", managerOut, platformOut)
	}

	if got := promtestutil.ToFloat64(collector.ManagerFeePayouts.WithLabelValues(fund.FundID)); got != metrics.IntToFloat(managerOut) {
		t.Errorf("manager payout counter = %v, want %v", got, metrics.IntToFloat(managerOut))
	}
	if got := promtestutil.ToFloat64(collector.PlatformFeePayouts.WithLabelValues(fund.FundID)); got != metrics.IntToFloat(platformOut) {
		t.Errorf("platform payout counter = %v, want %v", got, metrics.IntToFloat(platformOut))
	}
}
