package navmonitor

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// Report is a point-in-time leaderboard snapshot
type Report struct {
	ReportID    string      `json:"report_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	FundCount   int         `json:"fund_count"`
	Standings   []*Standing `json:"standings"`
}

// buildReport snapshots the leaderboard into a report
func (m *Monitor) buildReport() *Report {
	return &Report{
		ReportID:    uuid.New().String(),
		GeneratedAt: time.Now(),
		FundCount:   m.leaderboard.Len(),
		Standings:   m.leaderboard.Top(m.config.TopN),
	}
}

// Log writes the report to the process log
func (r *Report) Log() {
	log.Printf("Report %s: %d funds tracked", r.ReportID, r.FundCount)
	for i, standing := range r.Standings {
		log.Printf("  #%d %s profit=%s value=%s",
			i+1, standing.FundID, standing.Profit.String(), standing.Value.String())
	}
}
