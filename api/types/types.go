package types

import "time"

// FundSummary is the list view of a fund
type FundSummary struct {
	FundID        string `json:"fund_id"`
	Name          string `json:"name"`
	FundType      string `json:"fund_type"`
	Manager       string `json:"manager"`
	BaseAsset     string `json:"base_asset"`
	SuccessFeeBps int64  `json:"success_fee_bps"`
	Value         string `json:"value"`
	TotalShares   string `json:"total_shares"`
}

// FundDetail is the full view of a fund
type FundDetail struct {
	FundSummary
	PlatformFeeBps      int64             `json:"platform_fee_bps"`
	WhitelistOnly       bool              `json:"whitelist_only"`
	TradeVerification   bool              `json:"trade_verification"`
	TotalCostBasis      string            `json:"total_cost_basis"`
	FeeHighWaterMark    string            `json:"fee_high_water_mark"`
	CumulativeWithdrawn string            `json:"cumulative_withdrawn"`
	Holdings            map[string]string `json:"holdings"`
}

// NavSample is one NAV observation
type NavSample struct {
	Height int64     `json:"height"`
	Time   time.Time `json:"time"`
	Value  string    `json:"value"`
}

// ShareholderPosition is one investor's stake in a fund
type ShareholderPosition struct {
	Investor  string `json:"investor"`
	Shares    string `json:"shares"`
	CostBasis string `json:"cost_basis"`
	Claim     string `json:"claim"`
	Profit    string `json:"profit"`
}

// LeaderboardEntry is one fund's standing by lifetime profit
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	FundID string `json:"fund_id"`
	Name   string `json:"name"`
	Profit string `json:"profit"`
	Value  string `json:"value"`
}

// FundService exposes fund data to the API layer
type FundService interface {
	ListFunds() []*FundSummary
	GetFund(fundID string) *FundDetail
	GetFundValue(fundID string) (string, bool)
	GetNavHistory(fundID string, limit int) []*NavSample
	GetShareholders(fundID string) []*ShareholderPosition
	GetPosition(fundID, investor string) *ShareholderPosition
	Leaderboard(limit int) []*LeaderboardEntry
}
