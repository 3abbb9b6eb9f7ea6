package api

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openalpha/fundchain/api/types"
)

// mockFund is the in-memory backing record for the mock service
type mockFund struct {
	detail   *types.FundDetail
	nav      []*types.NavSample
	holders  []*types.ShareholderPosition
	profit   int64
	rawValue int64
}

// MockService serves deterministic sample data for development and UI work
// against a node-less API.
type MockService struct {
	mu    sync.RWMutex
	funds map[string]*mockFund
	order []string
}

// NewMockService creates a mock service seeded with sample funds
func NewMockService() *MockService {
	s := &MockService{
		funds: make(map[string]*mockFund),
	}

	s.seedFund("Genesis Growth", "full", 1500, 1250000, 250000, map[string]string{
		"uusdc": "400000",
		"uatom": "60000",
		"ulp":   "120000",
	})
	s.seedFund("Stable Yield", "full", 1000, 530000, 30000, map[string]string{
		"uusdc": "500000",
		"ulp":   "30000",
	})
	s.seedFund("Light Basket", "light", 2000, 98000, -2000, map[string]string{
		"uusdc": "48000",
		"uatom": "50000",
	})

	return s
}

func (s *MockService) seedFund(name, fundType string, feeBps, value, profit int64, holdings map[string]string) {
	fundID := "fund-" + uuid.New().String()[:8]
	manager := fmt.Sprintf("cosmos1manager%s", uuid.New().String()[:6])

	detail := &types.FundDetail{
		FundSummary: types.FundSummary{
			FundID:        fundID,
			Name:          name,
			FundType:      fundType,
			Manager:       manager,
			BaseAsset:     "uusdc",
			SuccessFeeBps: feeBps,
			Value:         strconv.FormatInt(value, 10),
			TotalShares:   strconv.FormatInt(value, 10) + "000000000000000000",
		},
		PlatformFeeBps:      feeBps / 3,
		TotalCostBasis:      strconv.FormatInt(value-profit, 10),
		FeeHighWaterMark:    strconv.FormatInt(value-profit, 10),
		CumulativeWithdrawn: "0",
		Holdings:            holdings,
	}

	// A short synthetic NAV walk ending at the current value
	nav := make([]*types.NavSample, 0, 10)
	for i := 0; i < 10; i++ {
		step := value - profit + profit*int64(i+1)/10
		nav = append(nav, &types.NavSample{
			Height: int64(100 + i*50),
			Time:   time.Now().Add(-time.Duration(10-i) * time.Hour),
			Value:  strconv.FormatInt(step, 10),
		})
	}

	holders := []*types.ShareholderPosition{
		{
			Investor:  fmt.Sprintf("cosmos1investor%s", uuid.New().String()[:6]),
			Shares:    detail.TotalShares,
			CostBasis: detail.TotalCostBasis,
			Claim:     detail.Value,
			Profit:    strconv.FormatInt(profit, 10),
		},
	}

	s.funds[fundID] = &mockFund{
		detail:   detail,
		nav:      nav,
		holders:  holders,
		profit:   profit,
		rawValue: value,
	}
	s.order = append(s.order, fundID)
}

// ListFunds returns all sample funds
func (s *MockService) ListFunds() []*types.FundSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]*types.FundSummary, 0, len(s.order))
	for _, fundID := range s.order {
		summaries = append(summaries, &s.funds[fundID].detail.FundSummary)
	}
	return summaries
}

// GetFund returns one sample fund, or nil
func (s *MockService) GetFund(fundID string) *types.FundDetail {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fund, ok := s.funds[fundID]
	if !ok {
		return nil
	}
	return fund.detail
}

// GetFundValue returns a fund's current NAV
func (s *MockService) GetFundValue(fundID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fund, ok := s.funds[fundID]
	if !ok {
		return "", false
	}
	return fund.detail.Value, true
}

// GetNavHistory returns up to limit recent NAV samples
func (s *MockService) GetNavHistory(fundID string, limit int) []*types.NavSample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fund, ok := s.funds[fundID]
	if !ok {
		return nil
	}
	nav := fund.nav
	if limit > 0 && len(nav) > limit {
		nav = nav[len(nav)-limit:]
	}
	return nav
}

// GetShareholders returns the fund's share register
func (s *MockService) GetShareholders(fundID string) []*types.ShareholderPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fund, ok := s.funds[fundID]
	if !ok {
		return nil
	}
	return fund.holders
}

// GetPosition returns one investor's stake, or nil
func (s *MockService) GetPosition(fundID, investor string) *types.ShareholderPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fund, ok := s.funds[fundID]
	if !ok {
		return nil
	}
	for _, holder := range fund.holders {
		if holder.Investor == investor {
			return holder
		}
	}
	return nil
}

// Leaderboard ranks sample funds by profit
func (s *MockService) Leaderboard(limit int) []*types.LeaderboardEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*types.LeaderboardEntry, 0, len(s.funds))
	for _, fundID := range s.order {
		fund := s.funds[fundID]
		entries = append(entries, &types.LeaderboardEntry{
			FundID: fundID,
			Name:   fund.detail.Name,
			Profit: strconv.FormatInt(fund.profit, 10),
			Value:  fund.detail.Value,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		pi, _ := strconv.ParseInt(entries[i].Profit, 10, 64)
		pj, _ := strconv.ParseInt(entries[j].Profit, 10, 64)
		return pi > pj
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i, entry := range entries {
		entry.Rank = i + 1
	}
	return entries
}
