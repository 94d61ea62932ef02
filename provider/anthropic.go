package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"mogen/model"
	"mogen/tools"
)

// AnthropicProvider implements model.Provider using Anthropic's official API
// via the official Go SDK.
type AnthropicProvider struct {
	client  *anthropic.Client
	model   anthropic.Model
	baseURL string
	apiKey  string
}

// NewAnthropicProvider creates a new Anthropic provider instance.
//
// Parameters:
//   - baseURL: Anthropic API base URL (default: "https://api.anthropic.com")
//   - apiKey: Anthropic API key (required)
//   - model: Initial model to use (default: "claude-sonnet-4-5-20250929")
//
// Returns an error if the API key is missing.
func NewAnthropicProvider(baseURL, apiKey, modelName string) (*AnthropicProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.anthropic.com"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Anthropic API key is required")
	}

	anthropicModel := anthropic.ModelClaudeSonnet4_5_20250929
	if modelName != "" {
		anthropicModel = anthropic.Model(modelName)
	}

	client := anthropic.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &AnthropicProvider{
		client:  &client,
		model:   anthropicModel,
		baseURL: baseURL,
		apiKey:  apiKey,
	}, nil
}

// Generate implements model.Provider with streaming support. Text deltas are
// forwarded as they arrive; tool-use blocks only carry complete input once
// the message finishes accumulating, so those events are emitted at the end.
func (p *AnthropicProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	params := anthropic.MessageNewParams{
		Model:     p.model,
		Messages:  convertToAnthropicMessages(req),
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: buildSystemPrompt(req)},
		},
		Tools: tools.ConvertToAnthropicFormat(tools.All()),
	}

	stream := p.client.Messages.NewStreaming(ctx, params)
	msg := anthropic.Message{}

	for stream.Next() {
		event := stream.Current()
		if err := msg.Accumulate(event); err != nil {
			return fmt.Errorf("error accumulating message: %w", err)
		}

		switch eventVariant := event.AsAny().(type) {
		case anthropic.ContentBlockDeltaEvent:
			switch deltaVariant := eventVariant.Delta.AsAny().(type) {
			case anthropic.TextDelta:
				if callback != nil {
					ev := model.StreamEvent{Type: model.EventTextDelta, Text: deltaVariant.Text}
					if err := callback(ev); err != nil {
						return err
					}
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("Anthropic streaming error: %w", err)
	}

	if callback != nil {
		for _, ev := range extractToolEvents(msg.Content) {
			if err := callback(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetModel implements model.Provider.GetModel.
func (p *AnthropicProvider) GetModel() string {
	return string(p.model)
}

// GetDisplayName implements model.Provider.GetDisplayName.
func (p *AnthropicProvider) GetDisplayName() string {
	return string(p.model)
}

// SetModel implements model.Provider.SetModel.
func (p *AnthropicProvider) SetModel(modelName string) {
	p.model = anthropic.Model(modelName)
}

// Ping implements model.Provider.Ping. Anthropic has no health endpoint, so
// this makes a minimal one-token request.
func (p *AnthropicProvider) Ping(ctx context.Context) error {
	_, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     p.model,
		MaxTokens: 1,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock("ping")),
		},
	})
	if err != nil {
		return fmt.Errorf("Anthropic ping failed: %w", err)
	}
	return nil
}

// convertToAnthropicMessages maps request turns to Anthropic messages. The
// system prompt travels separately in the request params.
func convertToAnthropicMessages(req model.GenerationRequest) []anthropic.MessageParam {
	msgs := make([]anthropic.MessageParam, 0, len(req.Turns))
	for _, turn := range req.Turns {
		text := turn.Text
		for _, media := range turn.Media {
			text += fmt.Sprintf("\n[attached media: %s]", media.URL)
		}
		if turn.Role == "assistant" {
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(text)))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
		}
	}
	return msgs
}

// extractToolEvents converts tool-use blocks from the accumulated message
// into tool-call events. Blocks with unparseable input are skipped.
func extractToolEvents(content []anthropic.ContentBlockUnion) []model.StreamEvent {
	var events []model.StreamEvent
	for _, block := range content {
		toolUse, ok := block.AsAny().(anthropic.ToolUseBlock)
		if !ok {
			continue
		}
		var args map[string]any
		if err := json.Unmarshal(toolUse.Input, &args); err != nil {
			continue
		}
		callID := toolUse.ID
		if callID == "" {
			callID = uuid.New().String()
		}
		events = append(events, model.StreamEvent{
			Type:     model.EventToolCall,
			CallID:   callID,
			ToolName: toolUse.Name,
			Args:     args,
		})
	}
	return events
}
