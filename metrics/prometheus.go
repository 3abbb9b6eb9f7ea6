package metrics

import (
	"math/big"
	"net/http"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Fundchain Metrics Collector
// Provides comprehensive metrics for monitoring

var (
	// Singleton collector
	collector     *Collector
	collectorOnce sync.Once
)

// Collector holds all Fundchain metrics
type Collector struct {
	// Fund metrics
	FundsTotal      prometheus.Gauge
	FundValue       *prometheus.GaugeVec
	FundTotalShares *prometheus.GaugeVec
	FundAssetsHeld  *prometheus.GaugeVec

	// Flow metrics
	DepositsTotal    *prometheus.CounterVec
	DepositValue     *prometheus.CounterVec
	WithdrawalsTotal *prometheus.CounterVec
	WithdrawalValue  *prometheus.CounterVec

	// Trade metrics
	TradesTotal  *prometheus.CounterVec
	TradeVolume  *prometheus.CounterVec
	PoolOpsTotal *prometheus.CounterVec
	DefiOpsTotal *prometheus.CounterVec

	// Fee metrics
	ManagerCutAccrued   *prometheus.GaugeVec
	ManagerFeePayouts   *prometheus.CounterVec
	PlatformFeePayouts  *prometheus.CounterVec

	// NAV metrics
	NavComputeLatency *prometheus.HistogramVec
	NavQuoteFailures  *prometheus.CounterVec

	// Portal metrics
	PortalCallsTotal  *prometheus.CounterVec
	PortalCallLatency *prometheus.HistogramVec

	// WebSocket metrics
	WSConnectionsActive *prometheus.GaugeVec
	WSMessagesTotal     *prometheus.CounterVec
	WSReconnectsTotal   *prometheus.CounterVec

	// System metrics
	BlockHeight prometheus.Gauge
	BlockTime   *prometheus.HistogramVec
}

// GetCollector returns the singleton metrics collector
func GetCollector() *Collector {
	collectorOnce.Do(func() {
		collector = newCollector()
	})
	return collector
}

// newCollector creates a new metrics collector
func newCollector() *Collector {
	c := &Collector{}

	// Fund metrics
	c.FundsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fundchain",
			Subsystem: "funds",
			Name:      "total",
			Help:      "Number of funds on the chain",
		},
	)

	c.FundValue = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fundchain",
			Subsystem: "funds",
			Name:      "value",
			Help:      "Fund net asset value in base-asset units",
		},
		[]string{"fund_id"},
	)

	c.FundTotalShares = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fundchain",
			Subsystem: "funds",
			Name:      "total_shares",
			Help:      "Outstanding fund shares",
		},
		[]string{"fund_id"},
	)

	c.FundAssetsHeld = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fundchain",
			Subsystem: "funds",
			Name:      "assets_held",
			Help:      "Number of distinct assets in fund custody",
		},
		[]string{"fund_id"},
	)

	// Flow metrics
	c.DepositsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "flows",
			Name:      "deposits_total",
			Help:      "Total number of deposits",
		},
		[]string{"fund_id"},
	)

	c.DepositValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "flows",
			Name:      "deposit_value",
			Help:      "Cumulative deposited value in base-asset units",
		},
		[]string{"fund_id"},
	)

	c.WithdrawalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "flows",
			Name:      "withdrawals_total",
			Help:      "Total number of withdrawals",
		},
		[]string{"fund_id"},
	)

	c.WithdrawalValue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "flows",
			Name:      "withdrawal_value",
			Help:      "Cumulative withdrawn value in base-asset units",
		},
		[]string{"fund_id"},
	)

	// Trade metrics
	c.TradesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "trades",
			Name:      "total",
			Help:      "Total number of manager trades executed",
		},
		[]string{"fund_id", "source", "dest"},
	)

	c.TradeVolume = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "trades",
			Name:      "volume",
			Help:      "Cumulative traded amount in source-asset units",
		},
		[]string{"fund_id", "source"},
	)

	c.PoolOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "trades",
			Name:      "pool_ops_total",
			Help:      "Total number of pool buy and sell operations",
		},
		[]string{"fund_id", "op"},
	)

	c.DefiOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "trades",
			Name:      "defi_ops_total",
			Help:      "Total number of generic protocol calls",
		},
		[]string{"fund_id"},
	)

	// Fee metrics
	c.ManagerCutAccrued = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fundchain",
			Subsystem: "fees",
			Name:      "manager_cut_accrued",
			Help:      "Accrued unwithdrawn performance fee in base-asset units",
		},
		[]string{"fund_id"},
	)

	c.ManagerFeePayouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "fees",
			Name:      "manager_payouts",
			Help:      "Cumulative performance fee paid to managers",
		},
		[]string{"fund_id"},
	)

	c.PlatformFeePayouts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "fees",
			Name:      "platform_payouts",
			Help:      "Cumulative platform share of performance fees",
		},
		[]string{"fund_id"},
	)

	// NAV metrics
	c.NavComputeLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fundchain",
			Subsystem: "nav",
			Name:      "compute_latency_seconds",
			Help:      "NAV computation latency",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"fund_id"},
	)

	c.NavQuoteFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "nav",
			Name:      "quote_failures_total",
			Help:      "Total number of failed NAV refreshes",
		},
		[]string{"fund_id"},
	)

	// Portal metrics
	c.PortalCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "portals",
			Name:      "calls_total",
			Help:      "Total number of external venue calls",
		},
		[]string{"portal", "op", "status"},
	)

	c.PortalCallLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fundchain",
			Subsystem: "portals",
			Name:      "call_latency_ms",
			Help:      "External venue call latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"portal", "op"},
	)

	// WebSocket metrics
	c.WSConnectionsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fundchain",
			Subsystem: "websocket",
			Name:      "connections_active",
			Help:      "Number of active WebSocket connections",
		},
		[]string{},
	)

	c.WSMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "websocket",
			Name:      "messages_total",
			Help:      "Total number of WebSocket messages processed",
		},
		[]string{"channel"},
	)

	c.WSReconnectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fundchain",
			Subsystem: "websocket",
			Name:      "reconnects_total",
			Help:      "Total number of WebSocket reconnects",
		},
		[]string{"endpoint"},
	)

	// System metrics
	c.BlockHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "fundchain",
			Subsystem: "system",
			Name:      "block_height",
			Help:      "Current block height",
		},
	)

	c.BlockTime = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "fundchain",
			Subsystem: "system",
			Name:      "block_time_ms",
			Help:      "Block time in milliseconds",
			Buckets:   []float64{100, 250, 500, 1000, 2000, 5000},
		},
		[]string{},
	)

	// Register all metrics
	c.registerAll()

	return c
}

// registerAll registers all metrics with Prometheus
func (c *Collector) registerAll() {
	// Fund metrics
	prometheus.MustRegister(c.FundsTotal)
	prometheus.MustRegister(c.FundValue)
	prometheus.MustRegister(c.FundTotalShares)
	prometheus.MustRegister(c.FundAssetsHeld)

	// Flow metrics
	prometheus.MustRegister(c.DepositsTotal)
	prometheus.MustRegister(c.DepositValue)
	prometheus.MustRegister(c.WithdrawalsTotal)
	prometheus.MustRegister(c.WithdrawalValue)

	// Trade metrics
	prometheus.MustRegister(c.TradesTotal)
	prometheus.MustRegister(c.TradeVolume)
	prometheus.MustRegister(c.PoolOpsTotal)
	prometheus.MustRegister(c.DefiOpsTotal)

	// Fee metrics
	prometheus.MustRegister(c.ManagerCutAccrued)
	prometheus.MustRegister(c.ManagerFeePayouts)
	prometheus.MustRegister(c.PlatformFeePayouts)

	// NAV metrics
	prometheus.MustRegister(c.NavComputeLatency)
	prometheus.MustRegister(c.NavQuoteFailures)

	// Portal metrics
	prometheus.MustRegister(c.PortalCallsTotal)
	prometheus.MustRegister(c.PortalCallLatency)

	// WebSocket metrics
	prometheus.MustRegister(c.WSConnectionsActive)
	prometheus.MustRegister(c.WSMessagesTotal)
	prometheus.MustRegister(c.WSReconnectsTotal)

	// System metrics
	prometheus.MustRegister(c.BlockHeight)
	prometheus.MustRegister(c.BlockTime)
}

// ============ Recording Helpers ============

// IntToFloat converts a chain integer into a float64 for gauge export.
// Precision above 2^53 degrades, which is acceptable for dashboards.
func IntToFloat(amount sdkmath.Int) float64 {
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}

// ObserveFundState refreshes the per-fund NAV and share gauges
func (c *Collector) ObserveFundState(fundID string, value, totalShares sdkmath.Int) {
	c.FundValue.WithLabelValues(fundID).Set(IntToFloat(value))
	c.FundTotalShares.WithLabelValues(fundID).Set(IntToFloat(totalShares))
}

// RecordDeposit records a deposit event
func (c *Collector) RecordDeposit(fundID string, value float64) {
	c.DepositsTotal.WithLabelValues(fundID).Inc()
	c.DepositValue.WithLabelValues(fundID).Add(value)
}

// RecordWithdrawal records a withdrawal event
func (c *Collector) RecordWithdrawal(fundID string, value float64) {
	c.WithdrawalsTotal.WithLabelValues(fundID).Inc()
	c.WithdrawalValue.WithLabelValues(fundID).Add(value)
}

// RecordTrade records a manager trade event
func (c *Collector) RecordTrade(fundID, source, dest string, volume float64) {
	c.TradesTotal.WithLabelValues(fundID, source, dest).Inc()
	c.TradeVolume.WithLabelValues(fundID, source).Add(volume)
}

// RecordFeePayout records a performance fee payout
func (c *Collector) RecordFeePayout(fundID string, managerPart, platformPart float64) {
	c.ManagerFeePayouts.WithLabelValues(fundID).Add(managerPart)
	if platformPart > 0 {
		c.PlatformFeePayouts.WithLabelValues(fundID).Add(platformPart)
	}
}

// RecordPortalCall records an external venue call
func (c *Collector) RecordPortalCall(portal, op, status string, latencyMs float64) {
	c.PortalCallsTotal.WithLabelValues(portal, op, status).Inc()
	c.PortalCallLatency.WithLabelValues(portal, op).Observe(latencyMs)
}

// RecordWSConnection records WebSocket connection changes
func (c *Collector) RecordWSConnection(delta int) {
	c.WSConnectionsActive.WithLabelValues().Add(float64(delta))
}

// RecordWSMessage records a WebSocket message
func (c *Collector) RecordWSMessage(channel string) {
	c.WSMessagesTotal.WithLabelValues(channel).Inc()
}

// ============ HTTP Handler ============

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer is a helper for measuring latency
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ElapsedMs returns the elapsed time in milliseconds
func (t *Timer) ElapsedMs() float64 {
	return float64(time.Since(t.start).Microseconds()) / 1000.0
}
