package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"mogen/model"
	"mogen/tools"
)

// OpenAIProvider implements model.Provider using OpenAI's official API via
// the official Go SDK.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	baseURL string
	apiKey  string
}

// NewOpenAIProvider creates a new OpenAI provider instance.
//
// Parameters:
//   - baseURL: OpenAI API base URL (default: "https://api.openai.com/v1")
//   - apiKey: OpenAI API key (required)
//   - model: Initial model to use (default: "gpt-4o-mini")
//
// Returns an error if the API key is missing.
func NewOpenAIProvider(baseURL, apiKey, modelName string) (*OpenAIProvider, error) {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &OpenAIProvider{
		client:  client,
		model:   modelName,
		baseURL: baseURL,
		apiKey:  apiKey,
	}, nil
}

// Generate implements model.Provider with streaming support. Text deltas are
// forwarded as they arrive; tool invocations are emitted when the
// accumulator sees their arguments complete.
func (p *OpenAIProvider) Generate(ctx context.Context, req model.GenerationRequest, callback model.StreamCallback) error {
	messages := convertToOpenAIMessages(req)

	params := openai.ChatCompletionNewParams{
		Messages: messages,
		Model:    openai.ChatModel(p.model),
		Tools:    tools.ConvertToOpenAIFormat(tools.All()),
	}

	stream := p.client.Chat.Completions.NewStreaming(ctx, params)
	acc := openai.ChatCompletionAccumulator{}

	for stream.Next() {
		chunk := stream.Current()
		acc.AddChunk(chunk)

		if tool, ok := acc.JustFinishedToolCall(); ok {
			if callback != nil {
				ev := model.StreamEvent{
					Type:     model.EventToolCall,
					CallID:   uuid.New().String(),
					ToolName: tool.Name,
					Args:     parseToolArguments(tool.Arguments),
				}
				if err := callback(ev); err != nil {
					return err
				}
			}
		}

		if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
			if callback != nil {
				ev := model.StreamEvent{
					Type: model.EventTextDelta,
					Text: chunk.Choices[0].Delta.Content,
				}
				if err := callback(ev); err != nil {
					return err
				}
			}
		}
	}

	if err := stream.Err(); err != nil {
		return fmt.Errorf("OpenAI streaming error: %w", err)
	}
	return nil
}

// GetModel implements model.Provider.GetModel.
func (p *OpenAIProvider) GetModel() string {
	return p.model
}

// GetDisplayName implements model.Provider.GetDisplayName.
func (p *OpenAIProvider) GetDisplayName() string {
	return p.model
}

// SetModel implements model.Provider.SetModel.
func (p *OpenAIProvider) SetModel(modelName string) {
	p.model = modelName
}

// Ping implements model.Provider.Ping by attempting to list models.
func (p *OpenAIProvider) Ping(ctx context.Context) error {
	_, err := p.client.Models.List(ctx)
	if err != nil {
		return fmt.Errorf("OpenAI ping failed: %w", err)
	}
	return nil
}

// convertToOpenAIMessages maps a generation request to OpenAI chat messages,
// with the system prompt first.
func convertToOpenAIMessages(req model.GenerationRequest) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Turns)+1)
	messages = append(messages, openai.SystemMessage(buildSystemPrompt(req)))

	for _, turn := range req.Turns {
		text := turn.Text
		for _, media := range turn.Media {
			text += fmt.Sprintf("\n[attached media: %s]", media.URL)
		}
		if turn.Role == "assistant" {
			messages = append(messages, openai.AssistantMessage(text))
		} else {
			messages = append(messages, openai.UserMessage(text))
		}
	}
	return messages
}

// parseToolArguments decodes a tool call's JSON arguments, tolerating
// malformed output by returning an empty map.
func parseToolArguments(raw string) map[string]any {
	args := map[string]any{}
	if raw == "" {
		return args
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return map[string]any{}
	}
	return args
}
