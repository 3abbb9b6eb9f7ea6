package keeper

import (
	"context"
	"errors"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/fundchain/x/fund/types"
)

// Test addresses, derived from fixed bytes so bech32 validation passes.
var (
	testManager  = sdk.AccAddress([]byte("manager_____________")).String()
	testPlatform = sdk.AccAddress([]byte("platform____________")).String()
	testInvestor = sdk.AccAddress([]byte("investor____________")).String()
	testOther    = sdk.AccAddress([]byte("other_______________")).String()
)

const (
	baseAsset  = "uusdc"
	atomAsset  = "uatom"
	poolAsset  = "ulp"
	wrapAsset  = "uwrapped"
	portalAddr = "cosmos1portal"
)

// mockExchangePortal quotes and fills against a fixed price table. Prices
// are base-asset units per unit of asset; the base asset itself is 1.
type mockExchangePortal struct {
	prices   map[string]int64
	quoteErr error
	tradeErr error

	// onTrade, when set, runs before the fill and may reenter the keeper.
	onTrade func(ctx sdk.Context) error
	// onQuote runs before each quote, for reentrancy during NAV reads.
	onQuote func(ctx sdk.Context) error
}

func (m *mockExchangePortal) priceOf(asset string) int64 {
	if p, ok := m.prices[asset]; ok {
		return p
	}
	return 1
}

func (m *mockExchangePortal) Quote(ctx sdk.Context, portal, asset string, amount math.Int) (math.Int, error) {
	if m.onQuote != nil {
		if err := m.onQuote(ctx); err != nil {
			return math.ZeroInt(), err
		}
	}
	if m.quoteErr != nil {
		return math.ZeroInt(), m.quoteErr
	}
	return amount.MulRaw(m.priceOf(asset)), nil
}

func (m *mockExchangePortal) Trade(ctx sdk.Context, portal, srcAsset string, amount math.Int, destAsset string, minReturn math.Int, routing []byte) (math.Int, error) {
	if m.onTrade != nil {
		if err := m.onTrade(ctx); err != nil {
			return math.ZeroInt(), err
		}
	}
	if m.tradeErr != nil {
		return math.ZeroInt(), m.tradeErr
	}
	value := amount.MulRaw(m.priceOf(srcAsset))
	return value.QuoRaw(m.priceOf(destAsset)), nil
}

// mockPoolPortal fills pool buys 1:1 against base value and sells back into
// a fixed pair of connector assets.
type mockPoolPortal struct {
	buyErr  error
	sellErr error
}

func (m *mockPoolPortal) Buy(ctx sdk.Context, portal, poolToken, baseAsset string, baseAmount math.Int, connectors []string) (math.Int, error) {
	if m.buyErr != nil {
		return math.ZeroInt(), m.buyErr
	}
	return baseAmount, nil
}

func (m *mockPoolPortal) Sell(ctx sdk.Context, portal, poolToken string, poolAmount math.Int) (map[string]math.Int, error) {
	if m.sellErr != nil {
		return nil, m.sellErr
	}
	half := poolAmount.QuoRaw(2)
	return map[string]math.Int{
		baseAsset: half,
		atomAsset: poolAmount.Sub(half),
	}, nil
}

// mockDefiPortal reports a fixed result set by the test.
type mockDefiPortal struct {
	result *DefiResult
	err    error
}

func (m *mockDefiPortal) Call(ctx sdk.Context, portal string, targets []string, amounts []math.Int, selectors []string, params []byte) (*DefiResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &DefiResult{
		Spent:    map[string]math.Int{},
		Received: map[string]math.Int{},
	}, nil
}

// mockVerifier accepts any proof whose first element is "valid".
type mockVerifier struct{}

func (m *mockVerifier) Verify(ctx sdk.Context, asset string, proof []string) bool {
	return len(proof) > 0 && proof[0] == "valid"
}

// mockPermissions allows everything unless the test narrows it.
type mockPermissions struct {
	denied map[string]bool // "candidate/role" pairs to reject
}

func (m *mockPermissions) IsAllowed(ctx sdk.Context, candidate, role string) bool {
	return !m.denied[candidate+"/"+role]
}

// mockTokenTypes classifies from a fixed table, defaulting to "other".
type mockTokenTypes struct {
	classes map[string]string
}

func (m *mockTokenTypes) Classify(ctx sdk.Context, asset string) string {
	if c, ok := m.classes[asset]; ok {
		return c
	}
	return types.AssetTypeOther
}

// mockBankKeeper records module transfers without moving real coins.
type mockBankKeeper struct {
	toModule  []sdk.Coins
	toAccount map[string]sdk.Coins
	sendErr   error
}

func newMockBankKeeper() *mockBankKeeper {
	return &mockBankKeeper{toAccount: make(map[string]sdk.Coins)}
}

func (m *mockBankKeeper) SendCoinsFromAccountToModule(ctx context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.toModule = append(m.toModule, amt)
	return nil
}

func (m *mockBankKeeper) SendCoinsFromModuleToAccount(ctx context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	key := recipientAddr.String()
	m.toAccount[key] = m.toAccount[key].Add(amt...)
	return nil
}

// received returns the total amount of one denom paid out to an address.
func (m *mockBankKeeper) received(addr, denom string) math.Int {
	return m.toAccount[addr].AmountOf(denom)
}

type testFixture struct {
	keeper      *Keeper
	ctx         sdk.Context
	exchange    *mockExchangePortal
	pool        *mockPoolPortal
	defi        *mockDefiPortal
	permissions *mockPermissions
	tokenTypes  *mockTokenTypes
	bank        *mockBankKeeper
}

// setupKeeper creates a test keeper backed by an in-memory IAVL store.
func setupKeeper(tb testing.TB) *testFixture {
	tb.Helper()

	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	if err := stateStore.LoadLatestVersion(); err != nil {
		tb.Fatalf("failed to load store: %v", err)
	}

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	interfaceRegistry := codectypes.NewInterfaceRegistry()
	cdc := codec.NewProtoCodec(interfaceRegistry)

	exchange := &mockExchangePortal{prices: map[string]int64{}}
	pool := &mockPoolPortal{}
	defi := &mockDefiPortal{}
	permissions := &mockPermissions{denied: map[string]bool{}}
	tokenTypes := &mockTokenTypes{classes: map[string]string{
		atomAsset: types.AssetTypeCryptocurrency,
		poolAsset: types.AssetTypePoolToken,
		wrapAsset: types.AssetTypeWrapped,
	}}
	bank := newMockBankKeeper()

	k := NewKeeper(cdc, storeKey, exchange, pool, defi, &mockVerifier{}, permissions, tokenTypes, bank, testManager, log.NewNopLogger())

	return &testFixture{
		keeper:      k,
		ctx:         ctx,
		exchange:    exchange,
		pool:        pool,
		defi:        defi,
		permissions: permissions,
		tokenTypes:  tokenTypes,
		bank:        bank,
	}
}

// createTestFund creates a full fund with a 15% success fee and a 5%
// platform slice.
func createTestFund(tb testing.TB, f *testFixture) *types.Fund {
	tb.Helper()

	fund, err := f.keeper.CreateFund(f.ctx, types.FundConfig{
		Name:           "Test Fund",
		FundType:       types.FundTypeFull,
		Manager:        testManager,
		Platform:       testPlatform,
		BaseAsset:      baseAsset,
		SuccessFeeBps:  1500,
		PlatformFeeBps: 500,
		ExchangePortal: portalAddr,
		PoolPortal:     portalAddr,
		DefiPortal:     portalAddr,
	})
	if err != nil {
		tb.Fatalf("failed to create fund: %v", err)
	}
	return fund
}

func mustDeposit(tb testing.TB, f *testFixture, investor, fundID string, amount int64) math.Int {
	tb.Helper()

	minted, err := f.keeper.Deposit(f.ctx, investor, fundID, math.NewInt(amount))
	if err != nil {
		tb.Fatalf("deposit failed: %v", err)
	}
	return minted
}

var errPortalDown = errors.New("portal unavailable")
