package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type Config struct {
	Endpoint string
	APIKey   string
}

type HTTPProvider struct {
	cfg    Config
	client *http.Client
}

func NewHTTP(cfg Config) *HTTPProvider {
	return &HTTPProvider{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *HTTPProvider) Start(ctx context.Context, req Request) (Operation, error) {
	body, err := json.Marshal(map[string]string{"prompt": req.Prompt})
	if err != nil {
		return Operation{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint+"/operations", bytes.NewReader(body))
	if err != nil {
		return Operation{}, err
	}
	return p.do(httpReq)
}

func (p *HTTPProvider) Poll(ctx context.Context, operationID string) (Operation, error) {
	endpoint := p.cfg.Endpoint + "/operations/" + url.PathEscape(operationID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Operation{}, err
	}
	return p.do(httpReq)
}

func (p *HTTPProvider) do(req *http.Request) (Operation, error) {
	req.Header.Set("Content-Type", "application/json")
	if p.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Operation{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Operation{}, fmt.Errorf("video provider returned status %d", resp.StatusCode)
	}

	var op Operation
	if err := json.NewDecoder(resp.Body).Decode(&op); err != nil {
		return Operation{}, err
	}
	return op, nil
}
