package keeper

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/codec"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/fundchain/x/fund/types"
)

// Store key prefixes
var (
	FundKeyPrefix          = []byte{0x01}
	ShareKeyPrefix         = []byte{0x02}
	CostBasisKeyPrefix     = []byte{0x03}
	AllowedInvestorPrefix  = []byte{0x04}
	ManagerFundsKeyPrefix  = []byte{0x05}
)

// Permission registry roles consulted by the keeper
const (
	RoleTradeAsset = "tradeable_asset"
)

// ExchangePortal is the expected interface of the external exchange
// collaborator: quoting and trade execution. The portal address is the
// per-fund venue the manager has pointed the fund at.
type ExchangePortal interface {
	Quote(ctx sdk.Context, portal, asset string, amount math.Int) (math.Int, error)
	Trade(ctx sdk.Context, portal, srcAsset string, amount math.Int, destAsset string, minReturn math.Int, routing []byte) (math.Int, error)
}

// PoolPortal is the expected interface of the external AMM pool collaborator.
type PoolPortal interface {
	Buy(ctx sdk.Context, portal, poolToken, baseAsset string, baseAmount math.Int, connectors []string) (math.Int, error)
	Sell(ctx sdk.Context, portal, poolToken string, poolAmount math.Int) (map[string]math.Int, error)
}

// DefiResult carries the balance deltas of a generic-protocol call.
type DefiResult struct {
	Spent    map[string]math.Int
	Received map[string]math.Int
	Data     []byte
}

// DefiPortal is the expected interface of the generic external-yield
// protocol collaborator.
type DefiPortal interface {
	Call(ctx sdk.Context, portal string, targets []string, amounts []math.Int, selectors []string, params []byte) (*DefiResult, error)
}

// WhitelistVerifier checks merkle-inclusion proofs for tradable assets.
type WhitelistVerifier interface {
	Verify(ctx sdk.Context, asset string, proof []string) bool
}

// PermissionRegistry is the expected interface of the global permission
// lists: portal candidates per role and the flat tradable-asset list.
type PermissionRegistry interface {
	IsAllowed(ctx sdk.Context, candidate, role string) bool
}

// TokenTypeRegistry classifies assets for the withdrawal conversion policy.
type TokenTypeRegistry interface {
	Classify(ctx sdk.Context, asset string) string
}

// BankKeeper defines the expected interface for the bank module
type BankKeeper interface {
	SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
}

// Keeper manages the fund module state
type Keeper struct {
	cdc      codec.BinaryCodec
	storeKey storetypes.StoreKey

	exchangePortal ExchangePortal
	poolPortal     PoolPortal
	defiPortal     DefiPortal
	verifier       WhitelistVerifier
	permissions    PermissionRegistry
	tokenTypes     TokenTypeRegistry
	bankKeeper     BankKeeper

	logger    log.Logger
	authority string

	// Per-fund reentrancy locks. Held for the full body of each mutating
	// entry point; lives outside the cache-context rollback scope so a
	// failed call still observes the lock while unwinding.
	locks map[string]bool
}

// NewKeeper creates a new fund keeper
func NewKeeper(
	cdc codec.BinaryCodec,
	storeKey storetypes.StoreKey,
	exchangePortal ExchangePortal,
	poolPortal PoolPortal,
	defiPortal DefiPortal,
	verifier WhitelistVerifier,
	permissions PermissionRegistry,
	tokenTypes TokenTypeRegistry,
	bankKeeper BankKeeper,
	authority string,
	logger log.Logger,
) *Keeper {
	return &Keeper{
		cdc:            cdc,
		storeKey:       storeKey,
		exchangePortal: exchangePortal,
		poolPortal:     poolPortal,
		defiPortal:     defiPortal,
		verifier:       verifier,
		permissions:    permissions,
		tokenTypes:     tokenTypes,
		bankKeeper:     bankKeeper,
		authority:      authority,
		logger:         logger.With("module", "x/fund"),
		locks:          make(map[string]bool),
	}
}

// Logger returns the module logger
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the governance authority address
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetStore returns the KVStore
func (k *Keeper) GetStore(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ============ Reentrancy guard ============

// acquireLock takes the per-fund reentrancy lock and returns its release.
// A second acquisition for the same fund while the lock is held fails with
// ErrReentrancyDetected; release must be deferred by the caller so the lock
// drops on every exit path.
func (k *Keeper) acquireLock(fundID string) (func(), error) {
	if k.locks[fundID] {
		return nil, types.ErrReentrancyDetected.Wrapf("fund %s", fundID)
	}
	k.locks[fundID] = true
	return func() { delete(k.locks, fundID) }, nil
}

// ============ Fund Operations ============

func fundKey(fundID string) []byte {
	return append(FundKeyPrefix, []byte(fundID)...)
}

// SetFund saves a fund to the store
func (k *Keeper) SetFund(ctx sdk.Context, fund *types.Fund) {
	store := k.GetStore(ctx)
	bz, _ := json.Marshal(fund)
	store.Set(fundKey(fund.FundID), bz)
}

// GetFund retrieves a fund from the store
func (k *Keeper) GetFund(ctx sdk.Context, fundID string) *types.Fund {
	store := k.GetStore(ctx)
	bz := store.Get(fundKey(fundID))
	if bz == nil {
		return nil
	}
	var fund types.Fund
	if err := json.Unmarshal(bz, &fund); err != nil {
		return nil
	}
	return &fund
}

// GetAllFunds returns all funds
func (k *Keeper) GetAllFunds(ctx sdk.Context) []*types.Fund {
	store := k.GetStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, FundKeyPrefix)
	defer iterator.Close()

	var funds []*types.Fund
	for ; iterator.Valid(); iterator.Next() {
		var fund types.Fund
		if err := json.Unmarshal(iterator.Value(), &fund); err != nil {
			continue
		}
		funds = append(funds, &fund)
	}
	return funds
}

// GetFundsByManager returns all funds run by a manager
func (k *Keeper) GetFundsByManager(ctx sdk.Context, manager string) []*types.Fund {
	var filtered []*types.Fund
	for _, fund := range k.GetAllFunds(ctx) {
		if fund.Manager == manager {
			filtered = append(filtered, fund)
		}
	}
	return filtered
}

// ============ Share Ledger Operations ============

func shareKey(fundID, investor string) []byte {
	return append(ShareKeyPrefix, []byte(fundID+":"+investor)...)
}

func costBasisKey(fundID, investor string) []byte {
	return append(CostBasisKeyPrefix, []byte(fundID+":"+investor)...)
}

// GetShares returns an investor's share balance in a fund
func (k *Keeper) GetShares(ctx sdk.Context, fundID, investor string) math.Int {
	return k.getInt(ctx, shareKey(fundID, investor))
}

// SetShares stores an investor's share balance; zero balances are deleted
// so the mapping stays sparse.
func (k *Keeper) SetShares(ctx sdk.Context, fundID, investor string, shares math.Int) {
	k.setInt(ctx, shareKey(fundID, investor), shares)
}

// GetCostBasis returns the base-asset value credited to an investor's
// current share balance.
func (k *Keeper) GetCostBasis(ctx sdk.Context, fundID, investor string) math.Int {
	return k.getInt(ctx, costBasisKey(fundID, investor))
}

// SetCostBasis stores an investor's cost basis
func (k *Keeper) SetCostBasis(ctx sdk.Context, fundID, investor string, basis math.Int) {
	k.setInt(ctx, costBasisKey(fundID, investor), basis)
}

// GetAllShareholders iterates every (investor, shares) pair of a fund.
func (k *Keeper) GetAllShareholders(ctx sdk.Context, fundID string) map[string]math.Int {
	store := k.GetStore(ctx)
	prefix := append(ShareKeyPrefix, []byte(fundID+":")...)
	iterator := storetypes.KVStorePrefixIterator(store, prefix)
	defer iterator.Close()

	holders := make(map[string]math.Int)
	for ; iterator.Valid(); iterator.Next() {
		investor := string(iterator.Key()[len(prefix):])
		var amt math.Int
		if err := amt.Unmarshal(iterator.Value()); err != nil {
			continue
		}
		holders[investor] = amt
	}
	return holders
}

func (k *Keeper) getInt(ctx sdk.Context, key []byte) math.Int {
	store := k.GetStore(ctx)
	bz := store.Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var amt math.Int
	if err := amt.Unmarshal(bz); err != nil {
		return math.ZeroInt()
	}
	return amt
}

func (k *Keeper) setInt(ctx sdk.Context, key []byte, amt math.Int) {
	store := k.GetStore(ctx)
	if amt.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := amt.Marshal()
	if err != nil {
		k.logger.Error("Failed to marshal amount", "error", err)
		return
	}
	store.Set(key, bz)
}

// ============ Investor Whitelist Operations ============

func allowedInvestorKey(fundID, investor string) []byte {
	return append(AllowedInvestorPrefix, []byte(fundID+":"+investor)...)
}

// SetInvestorAllowed records whitelist membership for an investor
func (k *Keeper) SetInvestorAllowed(ctx sdk.Context, fundID, investor string, allowed bool) {
	store := k.GetStore(ctx)
	key := allowedInvestorKey(fundID, investor)
	if !allowed {
		store.Delete(key)
		return
	}
	store.Set(key, []byte{0x01})
}

// IsInvestorAllowed reports whitelist membership for an investor
func (k *Keeper) IsInvestorAllowed(ctx sdk.Context, fundID, investor string) bool {
	store := k.GetStore(ctx)
	return store.Has(allowedInvestorKey(fundID, investor))
}

// ============ Fund Creation ============

// CreateFund validates the configuration against the permission registry
// and stores a new empty fund.
func (k *Keeper) CreateFund(ctx sdk.Context, cfg types.FundConfig) (*types.Fund, error) {
	if cfg.FundID == "" {
		cfg.FundID = generateFundID()
	}
	if err := types.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if k.GetFund(ctx, cfg.FundID) != nil {
		return nil, types.ErrFundExists
	}

	portals := map[string]string{
		types.PortalRoleExchange: cfg.ExchangePortal,
		types.PortalRolePool:     cfg.PoolPortal,
		types.PortalRoleDefi:     cfg.DefiPortal,
	}
	for role, addr := range portals {
		if addr == "" {
			continue
		}
		if !k.permissions.IsAllowed(ctx, addr, role) {
			return nil, types.ErrPortalNotPermitted.Wrapf("%s portal %s", role, addr)
		}
	}
	if cfg.ExchangePortal == "" {
		return nil, types.ErrInvalidFundConfig.Wrap("exchange portal required")
	}

	fund := types.NewFund(cfg)
	k.SetFund(ctx, fund)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"fund_created",
			sdk.NewAttribute("fund_id", fund.FundID),
			sdk.NewAttribute("manager", fund.Manager),
			sdk.NewAttribute("base_asset", fund.BaseAsset),
			sdk.NewAttribute("fund_type", fund.FundType),
		),
	)

	k.logger.Info("Fund created",
		"fund_id", fund.FundID,
		"manager", fund.Manager,
		"base_asset", fund.BaseAsset,
		"success_fee_bps", fund.SuccessFeeBps,
	)

	return fund, nil
}

// generateFundID generates a unique fund identifier
func generateFundID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "fund-00000000"
	}
	return "fund-" + hex.EncodeToString(buf)
}
