package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openalpha/fundchain/api/types"
	"github.com/openalpha/fundchain/metrics"
)

// Hub maintains the set of active clients and broadcasts fund updates
type Hub struct {
	clients  map[*Client]bool
	channels map[string]map[*Client]bool // channel -> clients

	register   chan *Client
	unregister chan *Client

	subscribe   chan *SubscriptionRequest
	unsubscribe chan *SubscriptionRequest

	// Latest NAV per fund, broadcast on the nav interval
	navBuffer map[string]*NavMessage

	// Latest leaderboard snapshot, broadcast on the standings interval
	standingsBuffer *StandingsMessage

	mu sync.RWMutex

	config *HubConfig
}

// HubConfig contains hub configuration
type HubConfig struct {
	NavInterval       time.Duration
	StandingsInterval time.Duration

	MaxClientsPerIP  int
	MaxSubscriptions int

	MessageRateLimit int // messages per second per client
}

// DefaultHubConfig returns default hub configuration
func DefaultHubConfig() *HubConfig {
	return &HubConfig{
		NavInterval:       time.Second,
		StandingsInterval: 5 * time.Second,
		MaxClientsPerIP:   10,
		MaxSubscriptions:  50,
		MessageRateLimit:  100,
	}
}

// SubscriptionRequest represents a channel subscription change
type SubscriptionRequest struct {
	Client  *Client
	Channel string
	Action  string // "subscribe" or "unsubscribe"
}

// NewHub creates a new Hub
func NewHub(config *HubConfig) *Hub {
	if config == nil {
		config = DefaultHubConfig()
	}

	return &Hub{
		clients:     make(map[*Client]bool),
		channels:    make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan *SubscriptionRequest, 256),
		unsubscribe: make(chan *SubscriptionRequest, 256),
		navBuffer:   make(map[string]*NavMessage),
		config:      config,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	navTicker := time.NewTicker(h.config.NavInterval)
	standingsTicker := time.NewTicker(h.config.StandingsInterval)

	defer navTicker.Stop()
	defer standingsTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case req := <-h.subscribe:
			h.handleSubscription(req)

		case req := <-h.unsubscribe:
			h.handleUnsubscription(req)

		case <-navTicker.C:
			h.broadcastNavs()

		case <-standingsTicker.C:
			h.broadcastStandings()
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	metrics.GetCollector().RecordWSConnection(1)
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)

		for channel, clients := range h.channels {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.channels, channel)
			}
		}

		close(client.send)
		metrics.GetCollector().RecordWSConnection(-1)
	}
}

func (h *Hub) handleSubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if _, ok := h.channels[channel]; !ok {
		h.channels[channel] = make(map[*Client]bool)
	}
	h.channels[channel][client] = true

	confirmation := &WSMessage{
		Type:    "subscribed",
		Channel: channel,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

func (h *Hub) handleUnsubscription(req *SubscriptionRequest) {
	h.mu.Lock()
	defer h.mu.Unlock()

	channel := req.Channel
	client := req.Client

	if clients, ok := h.channels[channel]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.channels, channel)
		}
	}

	confirmation := &WSMessage{
		Type:    "unsubscribed",
		Channel: channel,
	}
	data, _ := json.Marshal(confirmation)
	client.send <- data
}

// BroadcastToChannel sends a message to all clients subscribed to a channel
func (h *Hub) BroadcastToChannel(channel string, message interface{}) {
	h.mu.RLock()
	clients, ok := h.channels[channel]
	if !ok {
		h.mu.RUnlock()
		return
	}

	// Copy so the lock is not held during sends
	clientList := make([]*Client, 0, len(clients))
	for client := range clients {
		clientList = append(clientList, client)
	}
	h.mu.RUnlock()

	data, err := json.Marshal(message)
	if err != nil {
		return
	}

	for _, client := range clientList {
		select {
		case client.send <- data:
		default:
			// Client buffer is full, skip
		}
	}
	metrics.GetCollector().RecordWSMessage(channel)
}

// ============ Channel-specific broadcasts ============

// UpdateNav updates the buffered NAV for a fund
func (h *Hub) UpdateNav(fundID string, nav *NavMessage) {
	h.mu.Lock()
	h.navBuffer[fundID] = nav
	h.mu.Unlock()
}

// UpdateStandings replaces the buffered leaderboard snapshot
func (h *Hub) UpdateStandings(standings *StandingsMessage) {
	h.mu.Lock()
	h.standingsBuffer = standings
	h.mu.Unlock()
}

func (h *Hub) broadcastNavs() {
	h.mu.RLock()
	navs := make(map[string]*NavMessage, len(h.navBuffer))
	for k, v := range h.navBuffer {
		navs[k] = v
	}
	h.mu.RUnlock()

	for fundID, nav := range navs {
		channel := "nav:" + fundID
		msg := &WSMessage{
			Type:    "nav",
			Channel: channel,
			Data:    nav,
		}
		h.BroadcastToChannel(channel, msg)
	}
}

func (h *Hub) broadcastStandings() {
	h.mu.RLock()
	standings := h.standingsBuffer
	h.mu.RUnlock()

	if standings == nil {
		return
	}
	msg := &WSMessage{
		Type:    "standings",
		Channel: "standings",
		Data:    standings,
	}
	h.BroadcastToChannel("standings", msg)
}

// BroadcastFlow broadcasts a deposit or withdrawal to fund subscribers
func (h *Hub) BroadcastFlow(fundID string, flow *FlowMessage) {
	channel := "flows:" + fundID
	msg := &WSMessage{
		Type:    "flow",
		Channel: channel,
		Data:    flow,
	}
	h.BroadcastToChannel(channel, msg)
}

// BroadcastPosition broadcasts a share position update to one investor
func (h *Hub) BroadcastPosition(investor string, position *types.ShareholderPosition) {
	channel := "positions:" + investor
	msg := &WSMessage{
		Type:    "position",
		Channel: channel,
		Data:    position,
	}
	h.BroadcastToChannel(channel, msg)
}

// ============ Message Types ============

// WSMessage represents a WebSocket frame
type WSMessage struct {
	Type    string      `json:"type"`
	Channel string      `json:"channel"`
	Data    interface{} `json:"data,omitempty"`
}

// NavMessage carries one fund's current valuation
type NavMessage struct {
	FundID      string `json:"fund_id"`
	Value       string `json:"value"`
	TotalShares string `json:"total_shares"`
	Height      int64  `json:"height"`
	Timestamp   int64  `json:"timestamp"`
}

// FlowMessage carries a deposit or withdrawal against a fund
type FlowMessage struct {
	FundID    string `json:"fund_id"`
	Kind      string `json:"kind"` // "deposit" or "withdraw"
	Investor  string `json:"investor"`
	Amount    string `json:"amount"`
	Shares    string `json:"shares"`
	Timestamp int64  `json:"timestamp"`
}

// StandingsMessage carries a leaderboard snapshot
type StandingsMessage struct {
	Entries   []*types.LeaderboardEntry `json:"entries"`
	Timestamp int64                     `json:"timestamp"`
}

// GetClientCount returns the number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GetChannelCount returns the number of active channels
func (h *Hub) GetChannelCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.channels)
}

// GetChannelClientCount returns the number of clients in a channel
func (h *Hub) GetChannelClientCount(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if clients, ok := h.channels[channel]; ok {
		return len(clients)
	}
	return 0
}

// ServeWS handles WebSocket upgrade requests
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	clientID := r.URL.Query().Get("client_id")
	if clientID == "" {
		clientID = uuid.New().String()
	}

	investor := r.URL.Query().Get("investor")
	ip := getClientIPFromRequest(r)

	client := NewClient(h, conn, clientID, investor, ip)

	h.register <- client

	go client.writePump()
	go client.readPump()
}

func getClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for i := 0; i < len(xff); i++ {
			if xff[i] == ',' {
				return xff[:i]
			}
		}
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	for i := len(ip) - 1; i >= 0; i-- {
		if ip[i] == ':' {
			return ip[:i]
		}
	}
	return ip
}
