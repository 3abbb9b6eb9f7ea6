package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	fundkeeper "github.com/openalpha/fundchain/x/fund/keeper"
	fundtypes "github.com/openalpha/fundchain/x/fund/types"
)

// PortalBank is the slice of the bank keeper the simulated venues use to
// settle fills. The fund module account gives up what it sold and takes
// delivery of what it bought, so in-kind withdrawals and fee payouts stay
// backed by real coins.
type PortalBank interface {
	MintCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx context.Context, moduleName string, amt sdk.Coins) error
}

// SimExchangePortal is a table-driven exchange venue backing the fund
// keeper's ExchangePortal interface. Prices are per-unit base-asset rates
// seeded by the operator; unknown assets quote at par. Real venue
// integrations replace this the same way live oracle feeds replace a price
// simulator on trading chains.
type SimExchangePortal struct {
	bank PortalBank

	mu     sync.RWMutex
	prices map[string]math.LegacyDec
}

func NewSimExchangePortal(bank PortalBank) *SimExchangePortal {
	return &SimExchangePortal{
		bank:   bank,
		prices: make(map[string]math.LegacyDec),
	}
}

// SetPrice seeds the per-unit base-asset rate for an asset
func (p *SimExchangePortal) SetPrice(asset string, price math.LegacyDec) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prices[asset] = price
}

func (p *SimExchangePortal) priceOf(asset string) math.LegacyDec {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if price, ok := p.prices[asset]; ok {
		return price
	}
	return math.LegacyOneDec()
}

// Quote converts an asset amount into base-asset value at the table rate
func (p *SimExchangePortal) Quote(ctx sdk.Context, portal, asset string, amount math.Int) (math.Int, error) {
	if amount.IsNegative() {
		return math.ZeroInt(), fmt.Errorf("negative quote amount for %s", asset)
	}
	return p.priceOf(asset).MulInt(amount).TruncateInt(), nil
}

// Trade converts src into dest through the base asset at table rates and
// settles both legs against the fund module account.
func (p *SimExchangePortal) Trade(ctx sdk.Context, portal, srcAsset string, amount math.Int, destAsset string, minReturn math.Int, routing []byte) (math.Int, error) {
	destPrice := p.priceOf(destAsset)
	if destPrice.IsZero() {
		return math.ZeroInt(), fmt.Errorf("no liquidity for %s", destAsset)
	}
	value := p.priceOf(srcAsset).MulInt(amount)
	received := value.Quo(destPrice).TruncateInt()

	if amount.IsPositive() {
		sold := sdk.NewCoins(sdk.NewCoin(srcAsset, amount))
		if err := p.bank.BurnCoins(ctx, fundtypes.ModuleName, sold); err != nil {
			return math.ZeroInt(), err
		}
	}
	if received.IsPositive() {
		bought := sdk.NewCoins(sdk.NewCoin(destAsset, received))
		if err := p.bank.MintCoins(ctx, fundtypes.ModuleName, bought); err != nil {
			return math.ZeroInt(), err
		}
	}
	return received, nil
}

// SimPoolPortal is a constant-rate AMM pool venue backing the fund keeper's
// PoolPortal interface. Pool tokens mint one-for-one against base value and
// redeem into equal-value connector slices.
type SimPoolPortal struct {
	exchange *SimExchangePortal
	bank     PortalBank

	mu         sync.RWMutex
	connectors map[string][]string
}

func NewSimPoolPortal(exchange *SimExchangePortal, bank PortalBank) *SimPoolPortal {
	return &SimPoolPortal{
		exchange:   exchange,
		bank:       bank,
		connectors: make(map[string][]string),
	}
}

// Buy mints pool tokens against a base-asset amount
func (p *SimPoolPortal) Buy(ctx sdk.Context, portal, poolToken, baseAsset string, baseAmount math.Int, connectors []string) (math.Int, error) {
	if baseAmount.IsNil() || !baseAmount.IsPositive() {
		return math.ZeroInt(), fmt.Errorf("pool buy requires a positive base amount")
	}
	p.mu.Lock()
	if len(connectors) > 0 {
		p.connectors[poolToken] = append([]string(nil), connectors...)
	}
	p.mu.Unlock()

	spent := sdk.NewCoins(sdk.NewCoin(baseAsset, baseAmount))
	if err := p.bank.BurnCoins(ctx, fundtypes.ModuleName, spent); err != nil {
		return math.ZeroInt(), err
	}
	minted := sdk.NewCoins(sdk.NewCoin(poolToken, baseAmount))
	if err := p.bank.MintCoins(ctx, fundtypes.ModuleName, minted); err != nil {
		return math.ZeroInt(), err
	}
	return baseAmount, nil
}

// Sell redeems pool tokens into equal-value slices of the pool's connectors
func (p *SimPoolPortal) Sell(ctx sdk.Context, portal, poolToken string, poolAmount math.Int) (map[string]math.Int, error) {
	if poolAmount.IsNil() || !poolAmount.IsPositive() {
		return nil, fmt.Errorf("pool sell requires a positive amount")
	}

	p.mu.RLock()
	connectors := p.connectors[poolToken]
	p.mu.RUnlock()
	if len(connectors) == 0 {
		return nil, fmt.Errorf("unknown pool token %s", poolToken)
	}

	received := make(map[string]math.Int, len(connectors))
	share := poolAmount.QuoRaw(int64(len(connectors)))
	remainder := poolAmount.Sub(share.MulRaw(int64(len(connectors))))
	for i, connector := range connectors {
		value := share
		if i == 0 {
			value = value.Add(remainder)
		}
		price := p.exchange.priceOf(connector)
		if price.IsZero() {
			return nil, fmt.Errorf("no liquidity for connector %s", connector)
		}
		received[connector] = math.LegacyNewDecFromInt(value).Quo(price).TruncateInt()
	}

	redeemed := sdk.NewCoins(sdk.NewCoin(poolToken, poolAmount))
	if err := p.bank.BurnCoins(ctx, fundtypes.ModuleName, redeemed); err != nil {
		return nil, err
	}
	for connector, amt := range received {
		if !amt.IsPositive() {
			continue
		}
		if err := p.bank.MintCoins(ctx, fundtypes.ModuleName, sdk.NewCoins(sdk.NewCoin(connector, amt))); err != nil {
			return nil, err
		}
	}
	return received, nil
}

// SimDefiPortal rejects every generic-protocol call until a real yield
// integration lands. The keeper surfaces the error to the manager.
type SimDefiPortal struct{}

func NewSimDefiPortal() *SimDefiPortal {
	return &SimDefiPortal{}
}

func (p *SimDefiPortal) Call(ctx sdk.Context, portal string, targets []string, amounts []math.Int, selectors []string, params []byte) (*fundkeeper.DefiResult, error) {
	return nil, fmt.Errorf("no protocol integration registered for portal %s", portal)
}

// FlatPermissionRegistry keeps per-role allowlists in memory, seeded by the
// operator at startup. A role with no entries is open; the first entry
// closes it.
type FlatPermissionRegistry struct {
	mu      sync.RWMutex
	allowed map[string]map[string]bool
}

func NewFlatPermissionRegistry() *FlatPermissionRegistry {
	return &FlatPermissionRegistry{
		allowed: make(map[string]map[string]bool),
	}
}

// Allow adds a candidate to a role's allowlist
func (r *FlatPermissionRegistry) Allow(candidate, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.allowed[role] == nil {
		r.allowed[role] = make(map[string]bool)
	}
	r.allowed[role][candidate] = true
}

// Revoke removes a candidate from a role's allowlist
func (r *FlatPermissionRegistry) Revoke(candidate, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.allowed[role], candidate)
}

func (r *FlatPermissionRegistry) IsAllowed(ctx sdk.Context, candidate, role string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, ok := r.allowed[role]
	if !ok || len(list) == 0 {
		return true
	}
	return list[candidate]
}

// MerkleWhitelistVerifier checks tradable-asset inclusion proofs against a
// configured root. The proof is the sibling hash path from the asset leaf
// upward; an empty root disables proof-based checks.
type MerkleWhitelistVerifier struct {
	mu   sync.RWMutex
	root string
}

func NewMerkleWhitelistVerifier(root string) *MerkleWhitelistVerifier {
	return &MerkleWhitelistVerifier{root: strings.ToLower(root)}
}

// SetRoot replaces the whitelist root
func (v *MerkleWhitelistVerifier) SetRoot(root string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.root = strings.ToLower(root)
}

func (v *MerkleWhitelistVerifier) Verify(ctx sdk.Context, asset string, proof []string) bool {
	v.mu.RLock()
	root := v.root
	v.mu.RUnlock()
	if root == "" || len(proof) == 0 {
		return false
	}

	node := sha256.Sum256([]byte(asset))
	for _, sibling := range proof {
		siblingBytes, err := hex.DecodeString(strings.ToLower(sibling))
		if err != nil {
			return false
		}
		node = sha256.Sum256(append(node[:], siblingBytes...))
	}
	return hex.EncodeToString(node[:]) == root
}

// DenomClassifier maps denoms onto withdrawal conversion classes. Unlisted
// denoms are treated as plain cryptocurrency and pay out in kind.
type DenomClassifier struct {
	mu      sync.RWMutex
	classes map[string]string
}

func NewDenomClassifier() *DenomClassifier {
	return &DenomClassifier{
		classes: make(map[string]string),
	}
}

// SetClass records the conversion class for a denom
func (c *DenomClassifier) SetClass(denom, class string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes[denom] = class
}

func (c *DenomClassifier) Classify(ctx sdk.Context, denom string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if class, ok := c.classes[denom]; ok {
		return class
	}
	return fundtypes.AssetTypeCryptocurrency
}
