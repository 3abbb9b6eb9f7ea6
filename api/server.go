package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/openalpha/fundchain/api/middleware"
	"github.com/openalpha/fundchain/api/types"
	"github.com/openalpha/fundchain/api/websocket"
)

// Server represents the fund data API server
type Server struct {
	httpServer *http.Server
	wsServer   *websocket.Server
	config     *Config
	mockMode   bool

	fundService types.FundService

	rateLimiter *middleware.RateLimiter
}

// Config contains server configuration
type Config struct {
	Host             string
	Port             int
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	MockMode         bool
	DisableRateLimit bool // for testing

	RateLimitPerSec float64
	RateLimitBurst  int
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    30 * time.Second,
		MockMode:        false,
		RateLimitPerSec: 100,
		RateLimitBurst:  200,
	}
}

// NewServer creates an API server backed by the mock data service
func NewServer(config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return NewServerWithService(config, NewMockService())
}

// NewServerWithService creates an API server backed by a custom fund service
func NewServerWithService(config *Config, fundService types.FundService) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	wsConfig := websocket.DefaultServerConfig()
	wsConfig.Port = config.Port

	return &Server{
		config:      config,
		wsServer:    websocket.NewServer(wsConfig),
		mockMode:    config.MockMode,
		fundService: fundService,
		rateLimiter: middleware.NewRateLimiter(config.RateLimitPerSec, config.RateLimitBurst),
	}
}

// Start starts the API server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/v1/health", s.handleHealth)

	mux.HandleFunc("/v1/funds", s.handleFunds)
	mux.HandleFunc("/v1/funds/", s.handleFund)

	mux.HandleFunc("/v1/leaderboard", s.handleLeaderboard)

	mux.HandleFunc("/ws", s.wsServer.GetHub().ServeWS)

	// Middleware chain: CORS -> RateLimit -> Handler
	var handler http.Handler = mux
	if !s.config.DisableRateLimit {
		handler = s.rateLimiter.Middleware(handler)
	}
	handler = corsMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	go s.wsServer.GetHub().Run()
	go s.broadcastLoop()

	log.Printf("API server starting on %s (mock mode: %v)", addr, s.mockMode)
	if s.config.DisableRateLimit {
		log.Printf("Rate limiting DISABLED (for testing)")
	} else {
		log.Printf("Rate limiting enabled: %.0f req/s per IP", s.config.RateLimitPerSec)
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Hub returns the WebSocket hub for publishing updates
func (s *Server) Hub() *websocket.Hub {
	return s.wsServer.GetHub()
}

// broadcastLoop feeds current fund data into the WebSocket buffers
func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now().Unix()
		for _, fund := range s.fundService.ListFunds() {
			s.wsServer.BroadcastNav(&websocket.NavMessage{
				FundID:      fund.FundID,
				Value:       fund.Value,
				TotalShares: fund.TotalShares,
				Timestamp:   now,
			})
		}

		entries := s.fundService.Leaderboard(0)
		s.wsServer.BroadcastStandings(&websocket.StandingsMessage{
			Entries:   entries,
			Timestamp: now,
		})
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	mode := "real"
	if s.mockMode {
		mode = "mock"
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"mode":      mode,
	})
}

// handleFunds handles /v1/funds
func (s *Server) handleFunds(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"funds": s.fundService.ListFunds(),
	})
}

// handleFund handles /v1/funds/{id}/* endpoints
func (s *Server) handleFund(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Parse path: /v1/funds/{id} or /v1/funds/{id}/{endpoint}
	path := r.URL.Path[len("/v1/funds/"):]

	fundID := path
	endpoint := ""
	for i, c := range path {
		if c == '/' {
			fundID = path[:i]
			endpoint = path[i+1:]
			break
		}
	}

	if fundID == "" {
		writeError(w, http.StatusBadRequest, "Fund ID required")
		return
	}

	switch {
	case endpoint == "":
		fund := s.fundService.GetFund(fundID)
		if fund == nil {
			writeError(w, http.StatusNotFound, "Fund not found")
			return
		}
		writeJSON(w, http.StatusOK, fund)

	case endpoint == "value":
		value, ok := s.fundService.GetFundValue(fundID)
		if !ok {
			writeError(w, http.StatusNotFound, "Fund not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"fund_id": fundID,
			"value":   value,
		})

	case endpoint == "nav":
		limit := 100
		if l := r.URL.Query().Get("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		samples := s.fundService.GetNavHistory(fundID, limit)
		if samples == nil {
			writeError(w, http.StatusNotFound, "Fund not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"fund_id": fundID,
			"samples": samples,
		})

	case endpoint == "shareholders":
		holders := s.fundService.GetShareholders(fundID)
		if holders == nil {
			writeError(w, http.StatusNotFound, "Fund not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"fund_id":      fundID,
			"shareholders": holders,
		})

	case len(endpoint) > len("position/") && endpoint[:len("position/")] == "position/":
		investor := endpoint[len("position/"):]
		position := s.fundService.GetPosition(fundID, investor)
		if position == nil {
			writeError(w, http.StatusNotFound, "Position not found")
			return
		}
		writeJSON(w, http.StatusOK, position)

	default:
		writeError(w, http.StatusNotFound, "Endpoint not found")
	}
}

// handleLeaderboard handles /v1/leaderboard
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := 10
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": s.fundService.Leaderboard(limit),
	})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
