package domain

import (
	"context"
	"errors"

	"github.com/freeenergie/parrainage/internal/rewards"
	"github.com/freeenergie/parrainage/internal/share"
)

// Dashboard is the sponsor home view: every figure on it is derived on read.
type Dashboard struct {
	SponsorID       string                `json:"sponsor_id"`
	Name            string                `json:"name"`
	TokenBalance    int64                 `json:"token_balance"`
	EuroBalance     int64                 `json:"euro_balance"`
	Rank            rewards.RankEvaluation `json:"rank"`
	CycleProgress   rewards.CycleProgress  `json:"cycle_progress"`
	PipelineCounts  map[string]int64      `json:"pipeline_counts"`
	DirectInstalls  int                   `json:"direct_installs"`
	NetworkInstalls int                   `json:"network_installs"`
	Share           share.Kit             `json:"share"`
}

type Service interface {
	Get(ctx context.Context) (Dashboard, error)
}

var ErrUnauthenticated = errors.New("unauthenticated")
