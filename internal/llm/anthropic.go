package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rs/zerolog/log"
)

// anthropicClient implements ChatClient against the Anthropic Messages API.
//
// Anthropic's wire format differs from the OpenAI-compatible vendors:
//   - the system instruction lives in a dedicated request slot, not the
//     message list
//   - assistant tool calls are "tool_use" content blocks with structured
//     (non-string) input
//   - tool results for one turn are folded into a single user-role message
//     of "tool_result" blocks
type anthropicClient struct {
	client      *anthropic.Client
	model       string
	temperature float64
	maxTokens   int
}

func newAnthropicClient(cfg ClientConfig) *anthropicClient {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &anthropicClient{
		client:      anthropic.NewClient(opts...),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (c *anthropicClient) Provider() Provider { return ProviderAnthropic }
func (c *anthropicClient) Model() string      { return c.model }

func (c *anthropicClient) Chat(ctx context.Context, messages []Message, system string, tools []ToolDefinition) (*Response, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.F(anthropic.Model(c.model)),
		MaxTokens:   anthropic.F(int64(c.maxTokens)),
		Temperature: anthropic.F(c.temperature),
		Messages:    anthropic.F(toAnthropicMessages(messages)),
	}
	if system != "" {
		params.System = anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(system),
		})
	}
	if len(tools) > 0 {
		toolParams := make([]anthropic.ToolUnionUnionParam, len(tools))
		for i, t := range tools {
			toolParams[i] = anthropic.ToolParam{
				Name:        anthropic.String(t.Name),
				Description: anthropic.String(t.Description),
				InputSchema: anthropic.F[interface{}](t.schemaObject()),
			}
		}
		params.Tools = anthropic.F(toolParams)
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic chat: %w", err)
	}
	return fromAnthropicResponse(resp), nil
}

func toAnthropicMessages(messages []Message) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			out = append(out, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))

		case RoleAssistant:
			blocks := make([]anthropic.ContentBlockParamUnion, 0, 1+len(m.ToolCalls))
			if m.Content != "" {
				blocks = append(blocks, anthropic.NewTextBlock(m.Content))
			}
			for _, tc := range m.ToolCalls {
				blocks = append(blocks, anthropic.ToolUseBlockParam{
					Type:  anthropic.F(anthropic.ToolUseBlockParamTypeToolUse),
					ID:    anthropic.F(tc.ID),
					Name:  anthropic.F(tc.Name),
					Input: anthropic.F[interface{}](tc.Arguments),
				})
			}
			// The API rejects assistant messages with no content.
			if len(blocks) == 0 {
				blocks = append(blocks, anthropic.NewTextBlock(""))
			}
			out = append(out, anthropic.NewAssistantMessage(blocks...))

		case RoleToolResult:
			blocks := make([]anthropic.ContentBlockParamUnion, len(m.ToolResults))
			for i, tr := range m.ToolResults {
				blocks[i] = anthropic.NewToolResultBlock(tr.ToolCallID, tr.Content, tr.IsError)
			}
			out = append(out, anthropic.NewUserMessage(blocks...))
		}
	}
	return out
}

func fromAnthropicResponse(resp *anthropic.Message) *Response {
	out := &Response{
		StopReason: string(resp.StopReason),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
	}
	for _, block := range resp.Content {
		switch b := block.AsUnion().(type) {
		case anthropic.TextBlock:
			out.Content += b.Text
		case anthropic.ToolUseBlock:
			var args map[string]interface{}
			if err := json.Unmarshal(b.Input, &args); err != nil {
				log.Warn().Err(err).Str("tool", b.Name).Msg("failed to parse tool input")
				args = map[string]interface{}{}
			}
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:        b.ID,
				Name:      b.Name,
				Arguments: args,
			})
		}
	}
	return out
}
