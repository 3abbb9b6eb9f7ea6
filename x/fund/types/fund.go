package types

import (
	"time"

	"cosmossdk.io/math"
)

// Module name and store key
const (
	ModuleName = "fund"
	StoreKey   = ModuleName
)

// Fund types
const (
	FundTypeFull  = "full"  // exchange + pool + defi portals
	FundTypeLight = "light" // exchange portal only
)

// Portal roles
const (
	PortalRoleExchange = "exchange"
	PortalRolePool     = "pool"
	PortalRoleDefi     = "defi"
)

// Asset classifications reported by the token type registry
const (
	AssetTypeCryptocurrency = "cryptocurrency"
	AssetTypeWrapped        = "wrapped"
	AssetTypePoolToken      = "pool_token"
	AssetTypeOther          = "other"
)

// TotalBps is the basis-point denominator for fee rates and withdrawal
// percentages.
const TotalBps = int64(10000)

// MaxSuccessFeeBps caps the performance fee at 50%.
const MaxSuccessFeeBps = int64(5000)

// ShareScale is the fixed-point unit for fund shares. The first deposit
// into an empty fund mints amount * ShareScale shares; later deposits are
// priced against the pre-deposit fund value.
var ShareScale = math.NewIntWithDecimal(1, 18)

// Fund is a deployed pooled-investment vehicle. One record per fund;
// the accounting algorithm is shared across all base assets and types.
type Fund struct {
	FundID   string `json:"fund_id"`
	Name     string `json:"name"`
	FundType string `json:"fund_type"`

	// Identities
	Manager  string `json:"manager"`
	Platform string `json:"platform"`

	// Denomination asset. Always a permanent member of HeldAssets.
	BaseAsset string `json:"base_asset"`

	// Fee rates in basis points, fixed at creation.
	SuccessFeeBps  int64 `json:"success_fee_bps"`
	PlatformFeeBps int64 `json:"platform_fee_bps"`

	// Share ledger aggregate. Invariant: TotalShares == sum of all
	// per-investor share balances.
	TotalShares math.Int `json:"total_shares"`

	// Asset registry: insertion-ordered, deduplicated, BaseAsset first.
	HeldAssets []string `json:"held_assets"`

	// Fund custody balances per asset, in native asset units.
	Balances map[string]math.Int `json:"balances"`

	// Reporting counters, base-asset-equivalent value. Not used by fee math.
	CumulativeDeposited math.Int `json:"cumulative_deposited"`
	CumulativeWithdrawn math.Int `json:"cumulative_withdrawn"`

	// Fee accounting. TotalCostBasis is the sum of per-investor cost bases.
	// FeeHighWaterMark is adjusted additively by deposits/withdrawals and
	// reset to fund value on manager fee payout.
	TotalCostBasis      math.Int `json:"total_cost_basis"`
	FeeHighWaterMark    math.Int `json:"fee_high_water_mark"`
	ManagerCutWithdrawn math.Int `json:"manager_cut_withdrawn"`

	// Authorization configuration
	WhitelistOnly            bool `json:"whitelist_only"`
	TradeVerificationEnabled bool `json:"trade_verification_enabled"`

	// External collaborator addresses, repointable by the manager subject
	// to the permission registry.
	ExchangePortal string `json:"exchange_portal"`
	PoolPortal     string `json:"pool_portal,omitempty"`
	DefiPortal     string `json:"defi_portal,omitempty"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// FundConfig defines parameters for creating a fund
type FundConfig struct {
	FundID         string
	Name           string
	FundType       string
	Manager        string
	Platform       string
	BaseAsset      string
	SuccessFeeBps  int64
	PlatformFeeBps int64
	ExchangePortal string
	PoolPortal     string
	DefiPortal     string
	WhitelistOnly  bool
	TradeVerify    bool
}

// NewFund creates a fund with empty ledgers. The base asset is registered
// in the held-asset set immediately and never pruned.
func NewFund(cfg FundConfig) *Fund {
	now := time.Now().Unix()
	return &Fund{
		FundID:                   cfg.FundID,
		Name:                     cfg.Name,
		FundType:                 cfg.FundType,
		Manager:                  cfg.Manager,
		Platform:                 cfg.Platform,
		BaseAsset:                cfg.BaseAsset,
		SuccessFeeBps:            cfg.SuccessFeeBps,
		PlatformFeeBps:           cfg.PlatformFeeBps,
		TotalShares:              math.ZeroInt(),
		HeldAssets:               []string{cfg.BaseAsset},
		Balances:                 map[string]math.Int{},
		CumulativeDeposited:      math.ZeroInt(),
		CumulativeWithdrawn:      math.ZeroInt(),
		TotalCostBasis:           math.ZeroInt(),
		FeeHighWaterMark:         math.ZeroInt(),
		ManagerCutWithdrawn:      math.ZeroInt(),
		WhitelistOnly:            cfg.WhitelistOnly,
		TradeVerificationEnabled: cfg.TradeVerify,
		ExchangePortal:           cfg.ExchangePortal,
		PoolPortal:               cfg.PoolPortal,
		DefiPortal:               cfg.DefiPortal,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
}

// BalanceOf returns the fund's custody balance for an asset.
func (f *Fund) BalanceOf(asset string) math.Int {
	bal, ok := f.Balances[asset]
	if !ok {
		return math.ZeroInt()
	}
	return bal
}

// Credit adds to an asset balance and registers the asset in the held set
// on first receipt.
func (f *Fund) Credit(asset string, amount math.Int) {
	if amount.IsZero() {
		return
	}
	f.Balances[asset] = f.BalanceOf(asset).Add(amount)
	f.registerAsset(asset)
}

// Debit subtracts from an asset balance and prunes the asset from the held
// set when the balance reaches zero. The base asset is never pruned.
func (f *Fund) Debit(asset string, amount math.Int) {
	remaining := f.BalanceOf(asset).Sub(amount)
	if remaining.IsZero() {
		delete(f.Balances, asset)
		f.pruneAsset(asset)
		return
	}
	f.Balances[asset] = remaining
}

// registerAsset appends an asset to the held set on first receipt.
func (f *Fund) registerAsset(asset string) {
	for _, held := range f.HeldAssets {
		if held == asset {
			return
		}
	}
	f.HeldAssets = append(f.HeldAssets, asset)
}

// pruneAsset removes an asset with verified zero balance. BaseAsset stays.
func (f *Fund) pruneAsset(asset string) {
	if asset == f.BaseAsset {
		return
	}
	for i, held := range f.HeldAssets {
		if held == asset {
			f.HeldAssets = append(f.HeldAssets[:i], f.HeldAssets[i+1:]...)
			return
		}
	}
}

// Holds reports whether an asset is in the held set.
func (f *Fund) Holds(asset string) bool {
	for _, held := range f.HeldAssets {
		if held == asset {
			return true
		}
	}
	return false
}

// SupportsPortals reports whether pool/defi operations are available.
func (f *Fund) SupportsPortals() bool {
	return f.FundType == FundTypeFull
}

// ValidateConfig checks fund creation parameters.
func ValidateConfig(cfg FundConfig) error {
	if cfg.FundID == "" || cfg.Name == "" {
		return ErrInvalidFundConfig
	}
	if cfg.BaseAsset == "" {
		return ErrInvalidFundConfig
	}
	if cfg.FundType != FundTypeFull && cfg.FundType != FundTypeLight {
		return ErrInvalidFundConfig
	}
	if cfg.SuccessFeeBps < 0 || cfg.SuccessFeeBps > MaxSuccessFeeBps {
		return ErrInvalidFeeRate
	}
	if cfg.PlatformFeeBps < 0 || cfg.PlatformFeeBps > cfg.SuccessFeeBps {
		return ErrInvalidFeeRate
	}
	return nil
}
