package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cosmossdk.io/math"
	"github.com/openalpha/fundchain/offchain/navmonitor"
)

// Config holds the application configuration
type Config struct {
	WebSocketURL   string        `json:"websocket_url"`
	ReportInterval time.Duration `json:"report_interval"`
	MetricsAddr    string        `json:"metrics_addr"`
	HistoryDepth   int64         `json:"history_depth"`
	TopN           int           `json:"top_n"`
	Demo           bool          `json:"demo"` // run demo mode
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		WebSocketURL:   "ws://localhost:26657/websocket",
		ReportInterval: 30 * time.Second,
		MetricsAddr:    ":9091",
		HistoryDepth:   100000,
		TopN:           10,
		Demo:           false,
	}
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to config file")
	wsURL := flag.String("ws", "", "WebSocket URL")
	reportInterval := flag.Duration("report-interval", 0, "Time interval between reports")
	metricsAddr := flag.String("metrics", "", "Prometheus listen address")
	topN := flag.Int("top", 0, "Leaderboard entries per report")
	demo := flag.Bool("demo", false, "Run demo mode with sample events")
	flag.Parse()

	// Load configuration
	config, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Override with command line flags
	if *wsURL != "" {
		config.WebSocketURL = *wsURL
	}
	if *reportInterval > 0 {
		config.ReportInterval = *reportInterval
	}
	if *metricsAddr != "" {
		config.MetricsAddr = *metricsAddr
	}
	if *topN > 0 {
		config.TopN = *topN
	}
	if *demo {
		config.Demo = true
	}

	// Print configuration
	log.Println("=== Fundchain NAV Monitor ===")
	log.Printf("WebSocket: %s", config.WebSocketURL)
	log.Printf("Report Interval: %v", config.ReportInterval)
	log.Printf("Metrics: %s", config.MetricsAddr)
	log.Printf("Leaderboard Size: %d", config.TopN)
	log.Println("=============================")

	// Create monitor
	monitorConfig := &navmonitor.Config{
		WebSocketURL:   config.WebSocketURL,
		ReportInterval: config.ReportInterval,
		MetricsAddr:    config.MetricsAddr,
		HistoryDepth:   config.HistoryDepth,
		TopN:           config.TopN,
	}
	m := navmonitor.NewMonitor(monitorConfig)

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the monitor
	if err := m.Start(ctx); err != nil {
		log.Fatalf("Failed to start monitor: %v", err)
	}

	// Run demo if requested
	if config.Demo {
		go runDemo(m)
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Periodic stats logging
	statsTicker := time.NewTicker(10 * time.Second)
	defer statsTicker.Stop()

	log.Println("Monitor is running. Press Ctrl+C to stop.")

	for {
		select {
		case sig := <-sigCh:
			log.Printf("Received signal: %v", sig)
			cancel()
			if err := m.Stop(); err != nil {
				log.Printf("Error stopping monitor: %v", err)
			}
			log.Println("Monitor stopped")
			return
		case <-statsTicker.C:
			stats := m.GetStats()
			log.Printf("Stats: Funds=%d, Samples=%d, Connected=%v",
				stats.FundCount, stats.SamplesCount, stats.Connected)
		}
	}
}

// runDemo feeds sample fund activity into the monitor
func runDemo(m *navmonitor.Monitor) {
	log.Println("Starting demo mode...")
	time.Sleep(time.Second)

	funds := []struct {
		id       string
		deposit  int64
		withdraw int64
	}{
		{"fund-alpha", 100000, 40000},
		{"fund-beta", 50000, 60000},
		{"fund-gamma", 200000, 150000},
	}

	height := int64(1)
	for _, fund := range funds {
		m.Tracker().Inject(&navmonitor.FundEvent{
			Type:      navmonitor.EventFundDeposit,
			FundID:    fund.id,
			Value:     math.NewInt(fund.deposit),
			Height:    height,
			Timestamp: time.Now(),
		})
		height++
		time.Sleep(100 * time.Millisecond)

		m.Tracker().Inject(&navmonitor.FundEvent{
			Type:      navmonitor.EventFundWithdraw,
			FundID:    fund.id,
			Value:     math.NewInt(fund.withdraw),
			Height:    height,
			Timestamp: time.Now(),
		})
		height++
		time.Sleep(100 * time.Millisecond)
	}

	time.Sleep(500 * time.Millisecond)

	log.Println("=== Demo Leaderboard ===")
	for i, standing := range m.Leaderboard().Top(10) {
		log.Printf("  #%d %s profit=%s value=%s",
			i+1, standing.FundID, standing.Profit.String(), standing.Value.String())
	}

	log.Println("Demo completed!")
}
