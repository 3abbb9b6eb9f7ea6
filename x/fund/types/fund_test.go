package types

import (
	"errors"
	"testing"

	"cosmossdk.io/math"
)

func validConfig() FundConfig {
	return FundConfig{
		FundID:         "fund-test",
		Name:           "Test Fund",
		FundType:       FundTypeFull,
		Manager:        "cosmos1manager",
		BaseAsset:      "uusdc",
		SuccessFeeBps:  1500,
		PlatformFeeBps: 500,
		ExchangePortal: "cosmos1portal",
	}
}

// TestValidateConfig exercises the creation guards
func TestValidateConfig(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*FundConfig)
		wantErr error
	}{
		{
			name:   "valid full fund",
			mutate: func(cfg *FundConfig) {},
		},
		{
			name:   "valid light fund",
			mutate: func(cfg *FundConfig) { cfg.FundType = FundTypeLight },
		},
		{
			name:    "empty name",
			mutate:  func(cfg *FundConfig) { cfg.Name = "" },
			wantErr: ErrInvalidFundConfig,
		},
		{
			name:    "empty base asset",
			mutate:  func(cfg *FundConfig) { cfg.BaseAsset = "" },
			wantErr: ErrInvalidFundConfig,
		},
		{
			name:    "unknown fund type",
			mutate:  func(cfg *FundConfig) { cfg.FundType = "hybrid" },
			wantErr: ErrInvalidFundConfig,
		},
		{
			name:    "success fee above cap",
			mutate:  func(cfg *FundConfig) { cfg.SuccessFeeBps = MaxSuccessFeeBps + 1 },
			wantErr: ErrInvalidFeeRate,
		},
		{
			name:    "negative success fee",
			mutate:  func(cfg *FundConfig) { cfg.SuccessFeeBps = -1 },
			wantErr: ErrInvalidFeeRate,
		},
		{
			name:    "platform fee above success fee",
			mutate:  func(cfg *FundConfig) { cfg.PlatformFeeBps = cfg.SuccessFeeBps + 1 },
			wantErr: ErrInvalidFeeRate,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			err := ValidateConfig(cfg)
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// TestNewFundStartsEmpty checks initial ledgers and the base-asset registry
func TestNewFundStartsEmpty(t *testing.T) {
	fund := NewFund(validConfig())

	if !fund.TotalShares.IsZero() {
		t.Errorf("expected zero total shares")
	}
	if !fund.TotalCostBasis.IsZero() || !fund.FeeHighWaterMark.IsZero() {
		t.Errorf("expected zero fee accounting state")
	}
	if len(fund.HeldAssets) != 1 || fund.HeldAssets[0] != "uusdc" {
		t.Errorf("base asset must be the sole initial held asset, got %v", fund.HeldAssets)
	}
	if !fund.BalanceOf("uusdc").IsZero() {
		t.Errorf("expected zero base balance")
	}
}

// TestCreditRegistersAsset checks held-set registration and dedup
func TestCreditRegistersAsset(t *testing.T) {
	fund := NewFund(validConfig())

	fund.Credit("uatom", math.NewInt(100))
	fund.Credit("uatom", math.NewInt(50))

	if !fund.Holds("uatom") {
		t.Errorf("uatom should be registered")
	}
	if len(fund.HeldAssets) != 2 {
		t.Errorf("held set must deduplicate, got %v", fund.HeldAssets)
	}
	if !fund.BalanceOf("uatom").Equal(math.NewInt(150)) {
		t.Errorf("expected balance 150, got %s", fund.BalanceOf("uatom"))
	}

	// Zero credits are ignored entirely.
	fund.Credit("ulp", math.ZeroInt())
	if fund.Holds("ulp") {
		t.Errorf("zero credit must not register an asset")
	}
}

// TestDebitPrunesAtZero checks pruning and the base-asset exemption
func TestDebitPrunesAtZero(t *testing.T) {
	fund := NewFund(validConfig())
	fund.Credit("uusdc", math.NewInt(100))
	fund.Credit("uatom", math.NewInt(100))

	fund.Debit("uatom", math.NewInt(40))
	if !fund.BalanceOf("uatom").Equal(math.NewInt(60)) {
		t.Errorf("expected balance 60, got %s", fund.BalanceOf("uatom"))
	}
	if !fund.Holds("uatom") {
		t.Errorf("asset with remaining balance must stay held")
	}

	fund.Debit("uatom", math.NewInt(60))
	if fund.Holds("uatom") {
		t.Errorf("zero-balance asset must be pruned")
	}

	fund.Debit("uusdc", math.NewInt(100))
	if !fund.Holds("uusdc") {
		t.Errorf("base asset must never be pruned")
	}
}

// TestSupportsPortals checks the fund-type gate
func TestSupportsPortals(t *testing.T) {
	full := NewFund(validConfig())
	if !full.SupportsPortals() {
		t.Errorf("full fund should support portals")
	}

	cfg := validConfig()
	cfg.FundType = FundTypeLight
	light := NewFund(cfg)
	if light.SupportsPortals() {
		t.Errorf("light fund should not support portals")
	}
}
