package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	goopenai "github.com/sashabaranov/go-openai"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// openRouterClient implements ChatClient against OpenRouter's
// OpenAI-compatible chat completions endpoint. The same translation is
// shared with the DashScope adapter: system text as a leading message,
// assistant tool calls as a tool_calls array with JSON-encoded argument
// strings, one standalone "tool" message per tool result.
type openRouterClient struct {
	client      *goopenai.Client
	provider    Provider
	model       string
	temperature float64
	maxTokens   int
}

func newOpenRouterClient(cfg ClientConfig) *openRouterClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = openRouterBaseURL
	}
	return newCompatClient(cfg, ProviderOpenRouter, baseURL)
}

func newCompatClient(cfg ClientConfig, provider Provider, baseURL string) *openRouterClient {
	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = baseURL
	return &openRouterClient{
		client:      goopenai.NewClientWithConfig(apiCfg),
		provider:    provider,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (c *openRouterClient) Provider() Provider { return c.provider }
func (c *openRouterClient) Model() string      { return c.model }

func (c *openRouterClient) Chat(ctx context.Context, messages []Message, system string, tools []ToolDefinition) (*Response, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages, system),
		Temperature: float32(c.temperature),
		MaxTokens:   c.maxTokens,
	}
	if len(tools) > 0 {
		req.Tools = make([]goopenai.Tool, len(tools))
		for i, t := range tools {
			req.Tools[i] = goopenai.Tool{
				Type: goopenai.ToolTypeFunction,
				Function: &goopenai.FunctionDefinition{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  t.schemaObject(),
				},
			}
		}
		req.ToolChoice = "auto"
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s chat: %w", c.provider, err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New(string(c.provider) + " chat: no choices returned")
	}
	return fromOpenAIResponse(&resp), nil
}

func toOpenAIMessages(messages []Message, system string) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages)+1)
	if system != "" {
		out = append(out, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: system,
		})
	}

	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			out = append(out, goopenai.ChatCompletionMessage{
				Role:    goopenai.ChatMessageRoleUser,
				Content: m.Content,
			})

		case RoleAssistant:
			msg := goopenai.ChatCompletionMessage{
				Role:    goopenai.ChatMessageRoleAssistant,
				Content: m.Content,
			}
			for _, tc := range m.ToolCalls {
				args, err := json.Marshal(tc.Arguments)
				if err != nil {
					log.Warn().Err(err).Str("tool", tc.Name).Msg("failed to encode tool arguments")
					args = []byte("{}")
				}
				msg.ToolCalls = append(msg.ToolCalls, goopenai.ToolCall{
					ID:   tc.ID,
					Type: goopenai.ToolTypeFunction,
					Function: goopenai.FunctionCall{
						Name:      tc.Name,
						Arguments: string(args),
					},
				})
			}
			out = append(out, msg)

		case RoleToolResult:
			// One standalone tool message per result.
			for _, tr := range m.ToolResults {
				out = append(out, goopenai.ChatCompletionMessage{
					Role:       goopenai.ChatMessageRoleTool,
					ToolCallID: tr.ToolCallID,
					Content:    tr.Content,
				})
			}
		}
	}
	return out
}

func fromOpenAIResponse(resp *goopenai.ChatCompletionResponse) *Response {
	choice := resp.Choices[0]
	out := &Response{
		Content:    choice.Message.Content,
		StopReason: string(choice.FinishReason),
	}
	if resp.Usage.PromptTokens > 0 || resp.Usage.CompletionTokens > 0 {
		out.Usage = &Usage{
			InputTokens:  int64(resp.Usage.PromptTokens),
			OutputTokens: int64(resp.Usage.CompletionTokens),
		}
	}
	for _, tc := range choice.Message.ToolCalls {
		var args map[string]interface{}
		if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
			log.Warn().Err(err).Str("tool", tc.Function.Name).Msg("failed to parse tool arguments")
			args = map[string]interface{}{}
		}
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: args,
		})
	}
	return out
}
