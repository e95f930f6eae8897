package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// geminiClient implements ChatClient against the Gemini API.
//
// Gemini's wire format is the most distant from the conversation model:
// roles are "user"/"model", tool calls are FunctionCall parts without any
// vendor identifier, and tool results go back as FunctionResponse parts
// correlated by function name. The adapter assigns a uuid to each
// FunctionCall so the rest of the system can keep its id-based contract,
// and resolves ids back to names from the preceding assistant turn when
// translating tool results.
type geminiClient struct {
	client      *genai.Client
	model       string
	temperature float64
	maxTokens   int
}

func newGeminiClient(ctx context.Context, cfg ClientConfig) (*geminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &geminiClient{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

func (c *geminiClient) Provider() Provider { return ProviderGemini }
func (c *geminiClient) Model() string      { return c.model }

func (c *geminiClient) Chat(ctx context.Context, messages []Message, system string, tools []ToolDefinition) (*Response, error) {
	if len(messages) == 0 {
		return nil, errors.New("gemini chat: empty conversation")
	}

	gm := c.client.GenerativeModel(c.model)
	gm.SetTemperature(float32(c.temperature))
	if c.maxTokens > 0 {
		gm.SetMaxOutputTokens(int32(c.maxTokens))
	}
	if system != "" {
		gm.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	if len(tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, len(tools))
		for i, t := range tools {
			decls[i] = &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  toGeminiSchema(t),
			}
		}
		gm.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	contents := toGeminiContents(messages)
	last := contents[len(contents)-1]

	cs := gm.StartChat()
	cs.History = contents[:len(contents)-1]

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini chat: %w", err)
	}
	return fromGeminiResponse(resp), nil
}

func toGeminiContents(messages []Message) []*genai.Content {
	out := make([]*genai.Content, 0, len(messages))
	// Function names of the most recent assistant turn's calls, keyed by the
	// ids this adapter assigned to them.
	callNames := map[string]string{}

	for _, m := range messages {
		switch m.Role {
		case RoleUser:
			out = append(out, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(m.Content)},
			})

		case RoleAssistant:
			parts := make([]genai.Part, 0, 1+len(m.ToolCalls))
			if m.Content != "" {
				parts = append(parts, genai.Text(m.Content))
			}
			callNames = map[string]string{}
			for _, tc := range m.ToolCalls {
				callNames[tc.ID] = tc.Name
				parts = append(parts, genai.FunctionCall{
					Name: tc.Name,
					Args: tc.Arguments,
				})
			}
			if len(parts) == 0 {
				parts = append(parts, genai.Text(""))
			}
			out = append(out, &genai.Content{Role: "model", Parts: parts})

		case RoleToolResult:
			parts := make([]genai.Part, 0, len(m.ToolResults))
			for _, tr := range m.ToolResults {
				parts = append(parts, genai.FunctionResponse{
					Name: callNames[tr.ToolCallID],
					Response: map[string]interface{}{
						"content":  tr.Content,
						"is_error": tr.IsError,
					},
				})
			}
			out = append(out, &genai.Content{Role: "user", Parts: parts})
		}
	}
	return out
}

func fromGeminiResponse(resp *genai.GenerateContentResponse) *Response {
	out := &Response{}
	if resp.UsageMetadata != nil {
		out.Usage = &Usage{
			InputTokens:  int64(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	if len(resp.Candidates) == 0 {
		out.StopReason = "other"
		return out
	}

	cand := resp.Candidates[0]
	out.StopReason = geminiStopReason(cand.FinishReason)
	if cand.Content == nil {
		return out
	}
	for _, part := range cand.Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			out.Content += string(p)
		case genai.FunctionCall:
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:        uuid.NewString(),
				Name:      p.Name,
				Arguments: p.Args,
			})
		}
	}
	return out
}

func geminiStopReason(r genai.FinishReason) string {
	switch r {
	case genai.FinishReasonStop:
		return "stop"
	case genai.FinishReasonMaxTokens:
		return "length"
	case genai.FinishReasonSafety:
		return "safety"
	case genai.FinishReasonRecitation:
		return "recitation"
	default:
		return "other"
	}
}

func toGeminiSchema(t ToolDefinition) *genai.Schema {
	schema := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
	}
	for _, p := range t.Parameters {
		prop := &genai.Schema{
			Type:        geminiType(p.Type),
			Description: p.Description,
		}
		if p.Items != nil {
			prop.Items = fragmentToGeminiSchema(p.Items)
		}
		if p.Properties != nil {
			prop.Properties = fragmentProperties(p.Properties)
		}
		schema.Properties[p.Name] = prop
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}

// fragmentToGeminiSchema converts a nested JSON-schema fragment (the Items
// or Properties maps of a ToolParameter) into the SDK's typed schema.
func fragmentToGeminiSchema(fragment map[string]interface{}) *genai.Schema {
	schema := &genai.Schema{Type: genai.TypeString}
	if typ, ok := fragment["type"].(string); ok {
		schema.Type = geminiType(typ)
	}
	if desc, ok := fragment["description"].(string); ok {
		schema.Description = desc
	}
	if props, ok := fragment["properties"].(map[string]interface{}); ok {
		schema.Properties = fragmentProperties(props)
	}
	if items, ok := fragment["items"].(map[string]interface{}); ok {
		schema.Items = fragmentToGeminiSchema(items)
	}
	return schema
}

func fragmentProperties(props map[string]interface{}) map[string]*genai.Schema {
	out := make(map[string]*genai.Schema, len(props))
	for name, raw := range props {
		if sub, ok := raw.(map[string]interface{}); ok {
			out[name] = fragmentToGeminiSchema(sub)
		}
	}
	return out
}

func geminiType(t string) genai.Type {
	switch t {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}
