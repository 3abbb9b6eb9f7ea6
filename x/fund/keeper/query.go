package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/openalpha/fundchain/x/fund/types"
)

// QueryServer defines the fund QueryServer
type QueryServer struct {
	keeper *Keeper
}

// NewQueryServerImpl creates a new QueryServer instance
func NewQueryServerImpl(keeper *Keeper) *QueryServer {
	return &QueryServer{keeper: keeper}
}

// Fund returns a fund by ID
func (q *QueryServer) Fund(ctx context.Context, fundID string) (*types.Fund, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	fund := q.keeper.GetFund(sdkCtx, fundID)
	if fund == nil {
		return nil, types.ErrFundNotFound
	}
	return fund, nil
}

// Funds returns all funds
func (q *QueryServer) Funds(ctx context.Context, offset, limit uint64) ([]*types.Fund, uint64, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	allFunds := q.keeper.GetAllFunds(sdkCtx)

	total := uint64(len(allFunds))

	// Apply pagination
	if offset >= total {
		return []*types.Fund{}, total, nil
	}

	end := offset + limit
	if end > total || limit == 0 {
		end = total
	}

	return allFunds[offset:end], total, nil
}

// FundsByManager returns funds run by a manager
func (q *QueryServer) FundsByManager(ctx context.Context, manager string) ([]*types.Fund, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.GetFundsByManager(sdkCtx, manager), nil
}

// FundValue returns a fund's live NAV in base-asset units
func (q *QueryServer) FundValue(ctx context.Context, fundID string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.FundValue(sdkCtx, fundID)
}

// FundProfit returns the fund-level profit over total cost basis
func (q *QueryServer) FundProfit(ctx context.Context, fundID string) (math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.CalculateFundProfit(sdkCtx, fundID)
}

// InvestorPosition describes one investor's stake in a fund.
type InvestorPosition struct {
	FundID    string   `json:"fund_id"`
	Investor  string   `json:"investor"`
	Shares    math.Int `json:"shares"`
	CostBasis math.Int `json:"cost_basis"`
	Claim     math.Int `json:"claim"`  // current base-asset value of the shares
	Profit    math.Int `json:"profit"` // claim minus cost basis, may be negative
}

// InvestorShares returns an investor's position in a fund
func (q *QueryServer) InvestorShares(ctx context.Context, fundID, investor string) (*InvestorPosition, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	fund := q.keeper.GetFund(sdkCtx, fundID)
	if fund == nil {
		return nil, types.ErrFundNotFound
	}

	shares := q.keeper.GetShares(sdkCtx, fundID, investor)
	basis := q.keeper.GetCostBasis(sdkCtx, fundID, investor)

	claim := math.ZeroInt()
	if !fund.TotalShares.IsZero() && !shares.IsZero() {
		value, err := q.keeper.CalculateFundValue(sdkCtx, fund)
		if err != nil {
			return nil, err
		}
		claim = shares.Mul(value).Quo(fund.TotalShares)
	}

	return &InvestorPosition{
		FundID:    fundID,
		Investor:  investor,
		Shares:    shares,
		CostBasis: basis,
		Claim:     claim,
		Profit:    claim.Sub(basis),
	}, nil
}

// Shareholders returns every investor position in a fund
func (q *QueryServer) Shareholders(ctx context.Context, fundID string) (map[string]math.Int, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if q.keeper.GetFund(sdkCtx, fundID) == nil {
		return nil, types.ErrFundNotFound
	}
	return q.keeper.GetAllShareholders(sdkCtx, fundID), nil
}

// ManagerCut returns the manager's accrued performance fee for a fund
func (q *QueryServer) ManagerCut(ctx context.Context, fundID string) (*ManagerCut, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return q.keeper.CalculateFundManagerCut(sdkCtx, fundID)
}
