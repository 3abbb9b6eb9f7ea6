package navmonitor

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/huandu/skiplist"
)

// Standing is one fund's leaderboard entry
type Standing struct {
	FundID string
	Profit math.Int
	Value  math.Int
}

// profitKey orders standings by profit descending, fund ID ascending as the
// tiebreaker so keys stay unique per fund
type profitKey struct {
	profit math.Int
	fundID string
}

// profitKeyDesc is the skiplist comparator for leaderboard keys
type profitKeyDesc struct{}

func (k profitKeyDesc) Compare(lhs, rhs interface{}) int {
	l := lhs.(profitKey)
	r := rhs.(profitKey)
	// Reverse order for descending profit
	if l.profit.GT(r.profit) {
		return -1
	}
	if l.profit.LT(r.profit) {
		return 1
	}
	if l.fundID < r.fundID {
		return -1
	}
	if l.fundID > r.fundID {
		return 1
	}
	return 0
}

func (k profitKeyDesc) CalcScore(key interface{}) float64 {
	f, _ := new(big.Float).SetInt(key.(profitKey).profit.BigInt()).Float64()
	return -f // Negative for descending
}

// Leaderboard ranks funds by lifetime profit. Updates are O(log n) and the
// top-N scan is O(n) over list entries in rank order.
type Leaderboard struct {
	list *skiplist.SkipList
	keys map[string]profitKey
	mu   sync.RWMutex
}

// NewLeaderboard creates an empty leaderboard
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{
		list: skiplist.New(profitKeyDesc{}),
		keys: make(map[string]profitKey),
	}
}

// Update replaces a fund's standing
func (l *Leaderboard) Update(fundID string, profit, value math.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if old, ok := l.keys[fundID]; ok {
		l.list.Remove(old)
	}
	key := profitKey{profit: profit, fundID: fundID}
	l.list.Set(key, &Standing{FundID: fundID, Profit: profit, Value: value})
	l.keys[fundID] = key
}

// Remove drops a fund from the leaderboard
func (l *Leaderboard) Remove(fundID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if old, ok := l.keys[fundID]; ok {
		l.list.Remove(old)
		delete(l.keys, fundID)
	}
}

// Top returns the n best standings in rank order
func (l *Leaderboard) Top(n int) []*Standing {
	l.mu.RLock()
	defer l.mu.RUnlock()

	standings := make([]*Standing, 0, n)
	for elem := l.list.Front(); elem != nil && len(standings) < n; elem = elem.Next() {
		standings = append(standings, elem.Value.(*Standing))
	}
	return standings
}

// Rank returns a fund's 1-based rank, or 0 if absent
func (l *Leaderboard) Rank(fundID string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rank := 1
	for elem := l.list.Front(); elem != nil; elem = elem.Next() {
		if elem.Value.(*Standing).FundID == fundID {
			return rank
		}
		rank++
	}
	return 0
}

// Get returns a fund's standing, or nil
func (l *Leaderboard) Get(fundID string) *Standing {
	l.mu.RLock()
	defer l.mu.RUnlock()

	key, ok := l.keys[fundID]
	if !ok {
		return nil
	}
	elem := l.list.Get(key)
	if elem == nil {
		return nil
	}
	return elem.Value.(*Standing)
}

// Len returns the number of ranked funds
func (l *Leaderboard) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.list.Len()
}
