package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/fundchain/x/fund/types"
)

// MsgServer defines the fund MsgServer
type MsgServer struct {
	keeper *Keeper
}

// NewMsgServerImpl creates a new MsgServer instance
func NewMsgServerImpl(keeper *Keeper) *MsgServer {
	return &MsgServer{keeper: keeper}
}

func parseInt(s string) (math.Int, error) {
	amt, ok := math.NewIntFromString(s)
	if !ok {
		return math.ZeroInt(), errors.New("invalid integer amount: " + s)
	}
	return amt, nil
}

// CreateFund handles MsgCreateFund
func (m *MsgServer) CreateFund(ctx context.Context, msg *types.MsgCreateFund) (*types.MsgCreateFundResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	fund, err := m.keeper.CreateFund(sdkCtx, types.FundConfig{
		Name:           msg.Name,
		FundType:       msg.FundType,
		Manager:        msg.Manager,
		Platform:       msg.Platform,
		BaseAsset:      msg.BaseAsset,
		SuccessFeeBps:  msg.SuccessFeeBps,
		PlatformFeeBps: msg.PlatformFeeBps,
		ExchangePortal: msg.ExchangePortal,
		PoolPortal:     msg.PoolPortal,
		DefiPortal:     msg.DefiPortal,
		WhitelistOnly:  msg.WhitelistOnly,
		TradeVerify:    msg.TradeVerify,
	})
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateFundResponse{FundID: fund.FundID}, nil
}

// Deposit handles MsgDeposit
func (m *MsgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	amount, err := parseInt(msg.Amount)
	if err != nil {
		return nil, err
	}

	minted, err := m.keeper.Deposit(ctx, msg.Investor, msg.FundID, amount)
	if err != nil {
		return nil, err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	value, err := m.keeper.FundValue(sdkCtx, msg.FundID)
	if err != nil {
		return nil, err
	}

	return &types.MsgDepositResponse{
		SharesMinted: minted.String(),
		FundValue:    value.String(),
	}, nil
}

// Withdraw handles MsgWithdraw
func (m *MsgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	result, err := m.keeper.Withdraw(ctx, msg.Investor, msg.FundID, msg.PercentBps, msg.ConvertToBase)
	if err != nil {
		return nil, err
	}

	received := make(map[string]string, len(result.Payouts))
	for asset, amt := range result.Payouts {
		received[asset] = amt.String()
	}

	return &types.MsgWithdrawResponse{
		SharesBurned:   result.SharesBurned.String(),
		AssetsReceived: received,
	}, nil
}

// TransferShares handles MsgTransferShares
func (m *MsgServer) TransferShares(ctx context.Context, msg *types.MsgTransferShares) (*types.MsgTransferSharesResponse, error) {
	shares, err := parseInt(msg.Shares)
	if err != nil {
		return nil, err
	}

	basisMoved, err := m.keeper.TransferShares(ctx, msg.From, msg.To, msg.FundID, shares)
	if err != nil {
		return nil, err
	}

	return &types.MsgTransferSharesResponse{CostBasisMoved: basisMoved.String()}, nil
}

// Trade handles MsgTrade
func (m *MsgServer) Trade(ctx context.Context, msg *types.MsgTrade) (*types.MsgTradeResponse, error) {
	amount, err := parseInt(msg.Amount)
	if err != nil {
		return nil, err
	}
	minReturn, err := parseInt(msg.MinimumReturn)
	if err != nil {
		return nil, err
	}

	received, err := m.keeper.Trade(ctx, msg.Manager, msg.FundID, msg.SourceAsset, amount, msg.DestAsset, minReturn, msg.Proof, msg.RoutingData)
	if err != nil {
		return nil, err
	}

	return &types.MsgTradeResponse{AmountReceived: received.String()}, nil
}

// BuyPool handles MsgBuyPool
func (m *MsgServer) BuyPool(ctx context.Context, msg *types.MsgBuyPool) (*types.MsgBuyPoolResponse, error) {
	baseAmount, err := parseInt(msg.BaseAmount)
	if err != nil {
		return nil, err
	}

	received, err := m.keeper.BuyPool(ctx, msg.Manager, msg.FundID, msg.PoolToken, baseAmount, msg.Connectors)
	if err != nil {
		return nil, err
	}

	return &types.MsgBuyPoolResponse{PoolTokensReceived: received.String()}, nil
}

// SellPool handles MsgSellPool
func (m *MsgServer) SellPool(ctx context.Context, msg *types.MsgSellPool) (*types.MsgSellPoolResponse, error) {
	poolAmount, err := parseInt(msg.PoolAmount)
	if err != nil {
		return nil, err
	}

	received, err := m.keeper.SellPool(ctx, msg.Manager, msg.FundID, msg.PoolToken, poolAmount)
	if err != nil {
		return nil, err
	}

	connectors := make(map[string]string, len(received))
	for asset, amt := range received {
		connectors[asset] = amt.String()
	}

	return &types.MsgSellPoolResponse{ConnectorsReceived: connectors}, nil
}

// CallDefi handles MsgCallDefi
func (m *MsgServer) CallDefi(ctx context.Context, msg *types.MsgCallDefi) (*types.MsgCallDefiResponse, error) {
	amounts := make([]math.Int, len(msg.Amounts))
	for i, s := range msg.Amounts {
		amt, err := parseInt(s)
		if err != nil {
			return nil, err
		}
		amounts[i] = amt
	}

	data, err := m.keeper.CallDefi(ctx, msg.Manager, msg.FundID, msg.TargetAssets, amounts, msg.Selectors, msg.EncodedParams)
	if err != nil {
		return nil, err
	}

	return &types.MsgCallDefiResponse{Result: data}, nil
}

// WithdrawManagerFee handles MsgWithdrawManagerFee. A zero remaining cut is
// reported as a successful zero payout rather than an error.
func (m *MsgServer) WithdrawManagerFee(ctx context.Context, msg *types.MsgWithdrawManagerFee) (*types.MsgWithdrawManagerFeeResponse, error) {
	managerOut, platformOut, err := m.keeper.WithdrawManagerFee(ctx, msg.Manager, msg.FundID, msg.ConvertToBase)
	if err != nil {
		if errors.Is(err, types.ErrNothingToWithdraw) {
			zero := math.ZeroInt().String()
			return &types.MsgWithdrawManagerFeeResponse{ManagerPayout: zero, PlatformPayout: zero}, nil
		}
		return nil, err
	}

	return &types.MsgWithdrawManagerFeeResponse{
		ManagerPayout:  managerOut.String(),
		PlatformPayout: platformOut.String(),
	}, nil
}

// SetPortal handles MsgSetPortal
func (m *MsgServer) SetPortal(ctx context.Context, msg *types.MsgSetPortal) (*types.MsgSetPortalResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetPortal(sdkCtx, msg.Manager, msg.FundID, msg.Role, msg.Address); err != nil {
		return nil, err
	}
	return &types.MsgSetPortalResponse{}, nil
}

// SetWhitelistOnly handles MsgSetWhitelistOnly
func (m *MsgServer) SetWhitelistOnly(ctx context.Context, msg *types.MsgSetWhitelistOnly) (*types.MsgSetWhitelistOnlyResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetWhitelistOnly(sdkCtx, msg.Manager, msg.FundID, msg.Enabled); err != nil {
		return nil, err
	}
	return &types.MsgSetWhitelistOnlyResponse{}, nil
}

// SetInvestorAllowed handles MsgSetInvestorAllowed
func (m *MsgServer) SetInvestorAllowed(ctx context.Context, msg *types.MsgSetInvestorAllowed) (*types.MsgSetInvestorAllowedResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.AllowInvestor(sdkCtx, msg.Manager, msg.FundID, msg.Investor, msg.Allowed); err != nil {
		return nil, err
	}
	return &types.MsgSetInvestorAllowedResponse{}, nil
}

// SetTradeVerification handles MsgSetTradeVerification
func (m *MsgServer) SetTradeVerification(ctx context.Context, msg *types.MsgSetTradeVerification) (*types.MsgSetTradeVerificationResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.SetTradeVerification(sdkCtx, msg.Manager, msg.FundID, msg.Enabled); err != nil {
		return nil, err
	}
	return &types.MsgSetTradeVerificationResponse{}, nil
}

// TransferManager handles MsgTransferManager
func (m *MsgServer) TransferManager(ctx context.Context, msg *types.MsgTransferManager) (*types.MsgTransferManagerResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := m.keeper.TransferManager(sdkCtx, msg.Manager, msg.FundID, msg.NewManager); err != nil {
		return nil, err
	}
	return &types.MsgTransferManagerResponse{}, nil
}
