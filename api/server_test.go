package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/openalpha/fundchain/api/types"
)

func testServer() *Server {
	config := DefaultConfig()
	config.DisableRateLimit = true
	return NewServerWithService(config, NewMockService())
}

func doRequest(t *testing.T, s *Server, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/funds", s.handleFunds)
	mux.HandleFunc("/v1/funds/", s.handleFund)
	mux.HandleFunc("/v1/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("/health", s.handleHealth)
	mux.ServeHTTP(rec, req)

	var body map[string]interface{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
	}
	return rec, body
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer()

	rec, body := doRequest(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", body["status"])
	}
}

func TestListFunds(t *testing.T) {
	s := testServer()

	rec, body := doRequest(t, s, "/v1/funds")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	funds, ok := body["funds"].([]interface{})
	if !ok || len(funds) != 3 {
		t.Fatalf("expected 3 sample funds, got %v", body["funds"])
	}
}

func TestGetFundEndpoints(t *testing.T) {
	s := testServer()
	fundID := s.fundService.ListFunds()[0].FundID

	rec, body := doRequest(t, s, "/v1/funds/"+fundID)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["fund_id"] != fundID {
		t.Errorf("expected fund %s, got %v", fundID, body["fund_id"])
	}

	rec, body = doRequest(t, s, "/v1/funds/"+fundID+"/value")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for value, got %d", rec.Code)
	}
	if body["value"] == "" {
		t.Error("expected a value")
	}

	rec, body = doRequest(t, s, "/v1/funds/"+fundID+"/nav?limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for nav, got %d", rec.Code)
	}
	samples, ok := body["samples"].([]interface{})
	if !ok || len(samples) != 5 {
		t.Errorf("expected 5 nav samples, got %v", body["samples"])
	}

	rec, _ = doRequest(t, s, "/v1/funds/"+fundID+"/shareholders")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for shareholders, got %d", rec.Code)
	}
}

func TestGetFundNotFound(t *testing.T) {
	s := testServer()

	rec, _ := doRequest(t, s, "/v1/funds/does-not-exist")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	s := testServer()

	rec, body := doRequest(t, s, "/v1/leaderboard?limit=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	entries, ok := body["entries"].([]interface{})
	if !ok || len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %v", body["entries"])
	}

	first := entries[0].(map[string]interface{})
	if first["rank"].(float64) != 1 {
		t.Errorf("expected rank 1 first, got %v", first["rank"])
	}
}

func TestMockServiceLeaderboardOrder(t *testing.T) {
	svc := NewMockService()

	entries := svc.Leaderboard(0)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	// Seeded profits are 250000, 30000, -2000
	if entries[0].Name != "Genesis Growth" {
		t.Errorf("expected Genesis Growth first, got %s", entries[0].Name)
	}
	if entries[2].Name != "Light Basket" {
		t.Errorf("expected Light Basket last, got %s", entries[2].Name)
	}
}

func TestMockServicePosition(t *testing.T) {
	svc := NewMockService()
	fundID := svc.ListFunds()[0].FundID

	holders := svc.GetShareholders(fundID)
	if len(holders) != 1 {
		t.Fatalf("expected 1 shareholder, got %d", len(holders))
	}

	position := svc.GetPosition(fundID, holders[0].Investor)
	if position == nil {
		t.Fatal("expected position for seeded investor")
	}
	if position.Shares != holders[0].Shares {
		t.Error("position and register disagree on shares")
	}

	if svc.GetPosition(fundID, "cosmos1nobody") != nil {
		t.Error("expected nil for unknown investor")
	}
}

var _ types.FundService = (*MockService)(nil)

func TestNavHistoryLimitZero(t *testing.T) {
	svc := NewMockService()
	fundID := svc.ListFunds()[0].FundID

	samples := svc.GetNavHistory(fundID, 0)
	if len(samples) != 10 {
		t.Fatalf("expected full history, got %d", len(samples))
	}
	if samples[0].Time.After(time.Now()) {
		t.Error("sample timestamps should be in the past")
	}
}
