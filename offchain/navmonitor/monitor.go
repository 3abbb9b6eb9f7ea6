package navmonitor

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"cosmossdk.io/math"

	"github.com/openalpha/fundchain/metrics"
)

// Config holds the monitor configuration
type Config struct {
	WebSocketURL   string        // WebSocket URL for event listening
	ReportInterval time.Duration // Time interval between reports
	MetricsAddr    string        // Listen address for the Prometheus endpoint
	HistoryDepth   int64         // Blocks of NAV history to retain per fund
	TopN           int           // Leaderboard entries per report
}

// DefaultConfig returns the default monitor configuration
func DefaultConfig() *Config {
	return &Config{
		WebSocketURL:   "ws://localhost:26657/websocket",
		ReportInterval: 30 * time.Second,
		MetricsAddr:    ":9091",
		HistoryDepth:   100000,
		TopN:           10,
	}
}

// fundFlows accumulates a fund's observed in and out flows
type fundFlows struct {
	deposited math.Int
	withdrawn math.Int
	lastValue math.Int
}

// Monitor consumes fund events, maintains the NAV history and leaderboard,
// and publishes periodic reports plus Prometheus metrics.
type Monitor struct {
	config      *Config
	tracker     *ChainTracker
	history     *NavHistory
	leaderboard *Leaderboard

	mu    sync.RWMutex
	flows map[string]*fundFlows

	lastReport *Report

	metricsSrv *http.Server
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// NewMonitor creates a new monitor instance
func NewMonitor(config *Config) *Monitor {
	if config == nil {
		config = DefaultConfig()
	}

	return &Monitor{
		config:      config,
		tracker:     NewChainTracker(config.WebSocketURL),
		history:     NewNavHistory(),
		leaderboard: NewLeaderboard(),
		flows:       make(map[string]*fundFlows),
		stopCh:      make(chan struct{}),
	}
}

// Tracker returns the underlying chain tracker
func (m *Monitor) Tracker() *ChainTracker {
	return m.tracker
}

// History returns the NAV history index
func (m *Monitor) History() *NavHistory {
	return m.history
}

// Leaderboard returns the fund profit leaderboard
func (m *Monitor) Leaderboard() *Leaderboard {
	return m.leaderboard
}

// Start starts the monitor
func (m *Monitor) Start(ctx context.Context) error {
	log.Println("Starting NAV monitor...")

	m.tracker.Start(ctx)

	m.wg.Add(1)
	go m.eventLoop(ctx)

	m.wg.Add(1)
	go m.reportLoop(ctx)

	if m.config.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		m.metricsSrv = &http.Server{Addr: m.config.MetricsAddr, Handler: mux}
		go func() {
			if err := m.metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("Metrics server error: %v", err)
			}
		}()
	}

	log.Println("NAV monitor started")
	return nil
}

// Stop stops the monitor
func (m *Monitor) Stop() error {
	log.Println("Stopping NAV monitor...")
	close(m.stopCh)
	m.tracker.Stop()
	if m.metricsSrv != nil {
		_ = m.metricsSrv.Close()
	}
	m.wg.Wait()
	log.Println("NAV monitor stopped")
	return nil
}

// eventLoop processes incoming events
func (m *Monitor) eventLoop(ctx context.Context) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case event := <-m.tracker.Events():
			m.handleEvent(event)
		}
	}
}

// handleEvent folds one event into the monitor state
func (m *Monitor) handleEvent(event *FundEvent) {
	m.mu.Lock()
	flows, ok := m.flows[event.FundID]
	if !ok {
		flows = &fundFlows{
			deposited: math.ZeroInt(),
			withdrawn: math.ZeroInt(),
			lastValue: math.ZeroInt(),
		}
		m.flows[event.FundID] = flows
	}

	collector := metrics.GetCollector()
	switch event.Type {
	case EventFundDeposit:
		flows.deposited = flows.deposited.Add(event.Value)
		flows.lastValue = flows.lastValue.Add(event.Value)
		collector.RecordDeposit(event.FundID, metrics.IntToFloat(event.Value))
	case EventFundWithdraw:
		flows.withdrawn = flows.withdrawn.Add(event.Value)
		flows.lastValue = flows.lastValue.Sub(event.Value)
		if flows.lastValue.IsNegative() {
			flows.lastValue = math.ZeroInt()
		}
		collector.RecordWithdrawal(event.FundID, metrics.IntToFloat(event.Value))
	case EventFundFee:
		flows.withdrawn = flows.withdrawn.Add(event.Value)
	}

	// Lifetime profit: everything taken out plus what remains, less what
	// was put in.
	profit := flows.lastValue.Add(flows.withdrawn).Sub(flows.deposited)
	value := flows.lastValue
	m.mu.Unlock()

	m.history.Record(&NavPoint{
		FundID:      event.FundID,
		Height:      event.Height,
		Time:        event.Timestamp,
		Value:       value,
		TotalShares: math.ZeroInt(),
	})
	m.leaderboard.Update(event.FundID, profit, value)

	if m.config.HistoryDepth > 0 && event.Height > m.config.HistoryDepth {
		m.history.PruneBefore(event.FundID, event.Height-m.config.HistoryDepth)
	}
}

// reportLoop periodically publishes a leaderboard report
func (m *Monitor) reportLoop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.config.ReportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stopCh:
			return
		case <-ticker.C:
			report := m.buildReport()
			m.mu.Lock()
			m.lastReport = report
			m.mu.Unlock()
			report.Log()
		}
	}
}

// LastReport returns the most recent report, or nil
func (m *Monitor) LastReport() *Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastReport
}

// Stats returns monitor statistics
type Stats struct {
	FundCount    int
	SamplesCount int
	Connected    bool
}

// GetStats returns current monitor statistics
func (m *Monitor) GetStats() Stats {
	return Stats{
		FundCount:    m.leaderboard.Len(),
		SamplesCount: m.history.Len(),
		Connected:    m.tracker.IsConnected(),
	}
}
