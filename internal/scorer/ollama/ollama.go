// Package ollama scores event importance through a local Ollama model.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/glowgo/scheduler/internal/jsonx"
	"github.com/glowgo/scheduler/internal/model"
	"github.com/glowgo/scheduler/internal/scorer"
)

type Provider struct {
	client *resty.Client
	model  string
}

// New creates a Provider against the given Ollama base URL.
func New(baseURL, model string) *Provider {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)

	return &Provider{client: c, model: model}
}

// generateRequest / generateResponse structs for JSON binding

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// ScoreEvents asks the model which events are important appearance events.
// The model's output may arrive fenced or slightly malformed; parsing goes
// through the lenient extractor and any failure is returned to the caller,
// which degrades to an empty result.
func (p *Provider) ScoreEvents(ctx context.Context, events []scorer.EventSummary) ([]model.ScoredEvent, error) {
	if len(events) == 0 {
		return nil, nil
	}

	reqBody := generateRequest{
		Model:  p.model,
		Prompt: scorer.BuildPrompt(events),
		Stream: false,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/api/generate")
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("ollama status %d: %s", resp.StatusCode(), resp.String())
	}

	var gr generateResponse
	if err := json.Unmarshal(resp.Body(), &gr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if gr.Error != "" {
		return nil, fmt.Errorf("ollama error: %s", gr.Error)
	}

	var scored []model.ScoredEvent
	if err := jsonx.Unmarshal(gr.Response, &scored); err != nil {
		return nil, fmt.Errorf("parse scored events: %w", err)
	}
	return scored, nil
}

// HealthPing checks /api/tags for reachability of the Ollama server.
func (p *Provider) HealthPing(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("ollama status %d", resp.StatusCode())
	}
	return nil
}
