package navmonitor

import (
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/google/btree"
)

// NavPoint is one observed NAV sample for a fund
type NavPoint struct {
	FundID      string
	Height      int64
	Time        time.Time
	Value       math.Int
	TotalShares math.Int
}

// navItem wraps a NavPoint for use in btree
// Implements btree.Item interface
type navItem struct {
	point *NavPoint
}

// Less implements btree.Item interface - ascending by (fundID, height)
func (a *navItem) Less(b btree.Item) bool {
	other := b.(*navItem)
	if a.point.FundID != other.point.FundID {
		return a.point.FundID < other.point.FundID
	}
	return a.point.Height < other.point.Height
}

const historyBTreeDegree = 32

// NavHistory is a thread-safe NAV time series indexed by fund and height.
// Range queries are O(log n + k), which keeps per-fund chart lookups cheap
// as the series grows.
type NavHistory struct {
	tree *btree.BTree
	mu   sync.RWMutex
}

// NewNavHistory creates a new NAV history index
func NewNavHistory() *NavHistory {
	return &NavHistory{
		tree: btree.New(historyBTreeDegree),
	}
}

// Record stores a NAV sample, replacing any sample at the same height
func (h *NavHistory) Record(point *NavPoint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.tree.ReplaceOrInsert(&navItem{point: point})
}

// Latest returns the most recent sample for a fund, or nil
func (h *NavHistory) Latest(fundID string) *NavPoint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var latest *NavPoint
	pivot := &navItem{point: &NavPoint{FundID: fundID + "\x00"}}
	h.tree.DescendLessOrEqual(pivot, func(item btree.Item) bool {
		p := item.(*navItem).point
		if p.FundID != fundID {
			return false
		}
		latest = p
		return false
	})
	return latest
}

// Range returns samples for a fund between fromHeight and toHeight inclusive
func (h *NavHistory) Range(fundID string, fromHeight, toHeight int64) []*NavPoint {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var points []*NavPoint
	pivot := &navItem{point: &NavPoint{FundID: fundID, Height: fromHeight}}
	h.tree.AscendGreaterOrEqual(pivot, func(item btree.Item) bool {
		p := item.(*navItem).point
		if p.FundID != fundID || p.Height > toHeight {
			return false
		}
		points = append(points, p)
		return true
	})
	return points
}

// PruneBefore drops samples of a fund older than the given height and
// returns how many were removed
func (h *NavHistory) PruneBefore(fundID string, height int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	var stale []*navItem
	pivot := &navItem{point: &NavPoint{FundID: fundID}}
	h.tree.AscendGreaterOrEqual(pivot, func(item btree.Item) bool {
		it := item.(*navItem)
		if it.point.FundID != fundID || it.point.Height >= height {
			return false
		}
		stale = append(stale, it)
		return true
	})
	for _, item := range stale {
		h.tree.Delete(item)
	}
	return len(stale)
}

// Len returns the total number of stored samples across all funds
func (h *NavHistory) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tree.Len()
}

// Funds returns the distinct fund IDs present in the history
func (h *NavHistory) Funds() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var funds []string
	last := ""
	h.tree.Ascend(func(item btree.Item) bool {
		p := item.(*navItem).point
		if p.FundID != last {
			funds = append(funds, p.FundID)
			last = p.FundID
		}
		return true
	})
	return funds
}
