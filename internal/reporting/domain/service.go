package domain

import "context"

// SponsorPerformance is one row of the supervisor performance table. Earnings
// are grouped by sponsor ID; the name is display-only.
type SponsorPerformance struct {
	SponsorID     string `json:"sponsor_id"`
	SponsorName   string `json:"sponsor_name"`
	TotalLeads    int64  `json:"total_leads"`
	Installs      int    `json:"installs"`
	EarningsEuros int64  `json:"earnings_euros"`
	// DAS2 flags earnings strictly above the declaration ceiling.
	DAS2 bool `json:"das2"`
}

type Overview struct {
	PipelineCounts map[string]int64     `json:"pipeline_counts"`
	TotalLeads     int64                `json:"total_leads"`
	TotalInstalls  int64                `json:"total_installs"`
	Performance    []SponsorPerformance `json:"performance"`
}

type Service interface {
	Overview(ctx context.Context) (Overview, error)
	// ExportCSV renders every referral as CSV with RFC 4180 quoting.
	ExportCSV(ctx context.Context) ([]byte, error)
}
