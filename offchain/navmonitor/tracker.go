package navmonitor

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"sync"
	"time"

	"cosmossdk.io/math"
	"github.com/gorilla/websocket"

	"github.com/openalpha/fundchain/metrics"
)

// Event kinds emitted by the fund module that the monitor consumes
const (
	EventFundCreated  = "fund_created"
	EventFundDeposit  = "fund_deposit"
	EventFundWithdraw = "fund_withdraw"
	EventFundTrade    = "fund_trade"
	EventFundFee      = "fund_manager_fee_withdrawn"
)

// FundEvent is a chain event normalized for the monitor
type FundEvent struct {
	Type      string
	FundID    string
	Value     math.Int
	Height    int64
	Timestamp time.Time
}

// ChainTracker subscribes to fund events over the CometBFT WebSocket
// endpoint and feeds them to the monitor. It reconnects with backoff when
// the connection drops.
type ChainTracker struct {
	wsURL   string
	eventCh chan *FundEvent

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool

	stopCh chan struct{}
	wg     sync.WaitGroup
}

const (
	trackerEventBuffer  = 1000
	reconnectBaseDelay  = time.Second
	reconnectMaxDelay   = 30 * time.Second
	trackerReadDeadline = 90 * time.Second
)

// NewChainTracker creates a tracker for the given WebSocket URL
func NewChainTracker(wsURL string) *ChainTracker {
	return &ChainTracker{
		wsURL:   wsURL,
		eventCh: make(chan *FundEvent, trackerEventBuffer),
		stopCh:  make(chan struct{}),
	}
}

// Events returns the channel of normalized fund events
func (t *ChainTracker) Events() <-chan *FundEvent {
	return t.eventCh
}

// Inject feeds an event directly, bypassing the WebSocket. Used by demo
// mode and tests.
func (t *ChainTracker) Inject(event *FundEvent) {
	select {
	case t.eventCh <- event:
	default:
		// Buffer is full, event dropped
	}
}

// Start begins the subscription loop
func (t *ChainTracker) Start(ctx context.Context) {
	t.wg.Add(1)
	go t.run(ctx)
}

// Stop disconnects and stops the tracker
func (t *ChainTracker) Stop() {
	close(t.stopCh)
	t.mu.Lock()
	if t.conn != nil {
		t.conn.Close()
	}
	t.mu.Unlock()
	t.wg.Wait()
}

// IsConnected reports whether the WebSocket is currently up
func (t *ChainTracker) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

func (t *ChainTracker) run(ctx context.Context) {
	defer t.wg.Done()

	delay := reconnectBaseDelay
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.stopCh:
			return
		default:
		}

		if err := t.connectAndListen(ctx); err != nil {
			log.Printf("Tracker connection lost: %v", err)
			metrics.GetCollector().WSReconnectsTotal.WithLabelValues(t.wsURL).Inc()
		}

		select {
		case <-ctx.Done():
			return
		case <-t.stopCh:
			return
		case <-time.After(delay):
		}
		delay *= 2
		if delay > reconnectMaxDelay {
			delay = reconnectMaxDelay
		}
	}
}

// subscribeRequest is the CometBFT JSON-RPC subscription message
type subscribeRequest struct {
	Jsonrpc string            `json:"jsonrpc"`
	ID      int               `json:"id"`
	Method  string            `json:"method"`
	Params  map[string]string `json:"params"`
}

func (t *ChainTracker) connectAndListen(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, t.wsURL, nil)
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.conn = conn
	t.connected = true
	t.mu.Unlock()
	metrics.GetCollector().RecordWSConnection(1)

	defer func() {
		conn.Close()
		t.mu.Lock()
		t.conn = nil
		t.connected = false
		t.mu.Unlock()
		metrics.GetCollector().RecordWSConnection(-1)
	}()

	sub := subscribeRequest{
		Jsonrpc: "2.0",
		ID:      1,
		Method:  "subscribe",
		Params:  map[string]string{"query": "tm.event='Tx'"},
	}
	if err := conn.WriteJSON(sub); err != nil {
		return err
	}

	log.Printf("Tracker subscribed to %s", t.wsURL)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(trackerReadDeadline))
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		metrics.GetCollector().RecordWSMessage("tx")
		t.handleMessage(message)
	}
}

// txResultEnvelope covers the part of the CometBFT subscription payload the
// monitor cares about
type txResultEnvelope struct {
	Result struct {
		Data struct {
			Value struct {
				TxResult struct {
					Height string `json:"height"`
					Result struct {
						Events []abciEvent `json:"events"`
					} `json:"result"`
				} `json:"TxResult"`
			} `json:"value"`
		} `json:"data"`
	} `json:"result"`
}

type abciEvent struct {
	Type       string `json:"type"`
	Attributes []struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	} `json:"attributes"`
}

func (t *ChainTracker) handleMessage(message []byte) {
	var envelope txResultEnvelope
	if err := json.Unmarshal(message, &envelope); err != nil {
		return
	}

	height, _ := strconv.ParseInt(envelope.Result.Data.Value.TxResult.Height, 10, 64)
	now := time.Now()

	for _, raw := range envelope.Result.Data.Value.TxResult.Result.Events {
		event := normalizeEvent(raw, height, now)
		if event == nil {
			continue
		}
		t.Inject(event)
	}
}

// normalizeEvent maps a fund module ABCI event onto a FundEvent
func normalizeEvent(raw abciEvent, height int64, now time.Time) *FundEvent {
	switch raw.Type {
	case EventFundCreated, EventFundDeposit, EventFundWithdraw, EventFundTrade, EventFundFee:
	default:
		return nil
	}

	event := &FundEvent{
		Type:      raw.Type,
		Value:     math.ZeroInt(),
		Height:    height,
		Timestamp: now,
	}
	for _, attr := range raw.Attributes {
		switch attr.Key {
		case "fund_id":
			event.FundID = attr.Value
		case "value", "amount", "manager_payout":
			if v, ok := math.NewIntFromString(attr.Value); ok {
				event.Value = v
			}
		}
	}
	if event.FundID == "" {
		return nil
	}
	return event
}
