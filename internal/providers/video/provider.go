package video

import (
	"context"
	"errors"
)

// Operation is one long-running video generation job on the remote backend.
type Operation struct {
	ID       string `json:"id"`
	Done     bool   `json:"done"`
	VideoURL string `json:"video_url,omitempty"`
	Error    string `json:"error,omitempty"`
}

type Request struct {
	Prompt string
}

type Provider interface {
	Start(ctx context.Context, req Request) (Operation, error)
	Poll(ctx context.Context, operationID string) (Operation, error)
}

var ErrNotConfigured = errors.New("video provider not configured")

type NoOpProvider struct{}

func (p *NoOpProvider) Start(ctx context.Context, req Request) (Operation, error) {
	return Operation{}, ErrNotConfigured
}

func (p *NoOpProvider) Poll(ctx context.Context, operationID string) (Operation, error) {
	return Operation{}, ErrNotConfigured
}
