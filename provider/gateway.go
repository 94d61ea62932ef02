package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mogen/model"
)

// GatewayProvider talks to a generation gateway service that owns prompting
// and tool execution server-side and streams responses in the line protocol
// decoded by StreamDecoder.
type GatewayProvider struct {
	client  *http.Client
	baseURL string
	model   string
}

// NewGatewayProvider creates a gateway provider instance.
//
// baseURL is the gateway's root URL (default "http://localhost:8787"); model
// selects the upstream model the gateway should use (default "default").
func NewGatewayProvider(baseURL, modelName string) (*GatewayProvider, error) {
	if baseURL == "" {
		baseURL = "http://localhost:8787"
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid gateway URL: %w", err)
	}
	if modelName == "" {
		modelName = "default"
	}

	return &GatewayProvider{
		// No overall timeout: responses stream for as long as generation runs.
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   modelName,
	}, nil
}

// Generate implements model.Provider by POSTing the request to /generate and
// feeding the chunked response body through the line-protocol decoder.
func (p *GatewayProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to encode generation request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gateway returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	decoder := NewStreamDecoder()
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			for _, ev := range decoder.Feed(buf[:n]) {
				if callback != nil {
					if err := callback(ev); err != nil {
						return err
					}
				}
			}
		}
		if readErr == io.EOF {
			decoder.Flush()
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("gateway stream error: %w", readErr)
		}
	}
}

// GetModel implements model.Provider.GetModel.
func (p *GatewayProvider) GetModel() string {
	return p.model
}

// GetDisplayName implements model.Provider.GetDisplayName.
func (p *GatewayProvider) GetDisplayName() string {
	return p.model
}

// SetModel implements model.Provider.SetModel.
func (p *GatewayProvider) SetModel(modelName string) {
	p.model = modelName
}

// Ping implements model.Provider.Ping against the gateway health endpoint.
func (p *GatewayProvider) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}
	resp, err := p.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("gateway ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway ping returned %s", resp.Status)
	}
	return nil
}
