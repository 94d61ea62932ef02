package model

import "context"

// Provider abstracts generation backends (the line-protocol gateway, OpenAI,
// OpenRouter, Anthropic) behind provider-agnostic types.
//
// The interface lives in the model package rather than the provider package
// to avoid import cycles: provider implementations import model, and the
// conversation logic uses Provider without importing them.
type Provider interface {
	// Generate sends a request and streams decoded events back via callback
	// until the response stream ends.
	Generate(ctx context.Context, req GenerationRequest, callback StreamCallback) error

	// GetModel returns the currently selected model identifier.
	GetModel() string

	// GetDisplayName returns the model name formatted for display.
	GetDisplayName() string

	// SetModel changes the active model.
	SetModel(model string)

	// Ping checks if the provider is reachable.
	Ping(ctx context.Context) error
}

// StreamCallback receives each decoded event in stream order. Returning an
// error aborts the stream.
type StreamCallback func(ev StreamEvent) error

// EventType discriminates StreamEvent.
type EventType string

const (
	EventTextDelta  EventType = "text-delta"
	EventToolCall   EventType = "tool-call"
	EventToolResult EventType = "tool-result"
)

// StreamEvent is one decoded unit of the generation stream, normalized
// across providers. Text is set for text deltas; CallID plus ToolName/Args
// for tool invocations; CallID plus Result for tool results.
type StreamEvent struct {
	Type     EventType
	Text     string
	CallID   string
	ToolName string
	Args     map[string]any
	Result   any
}

// Turn is one prior transcript item mapped to the neutral role vocabulary
// providers understand.
type Turn struct {
	Role  string     `json:"role"` // "user" or "assistant"
	Text  string     `json:"text"`
	Media []MediaRef `json:"media,omitempty"`
}

// GenerationRequest is everything a provider needs for one turn: the mapped
// prior transcript, the program being refined (empty for a fresh overlay),
// the model selector, and optional brand assets to bias generation.
type GenerationRequest struct {
	Turns          []Turn       `json:"turns"`
	CurrentProgram string       `json:"currentProgram,omitempty"`
	Model          string       `json:"model"`
	Brand          *BrandAssets `json:"brand,omitempty"`
}
