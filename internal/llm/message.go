// Package llm normalizes the wire protocols of the supported LLM vendors
// into one provider-agnostic conversation model. Adapters live side by side,
// one file per vendor, behind the ChatClient interface.
package llm

// Role identifies who authored a conversation turn.
type Role string

const (
	RoleUser       Role = "user"
	RoleAssistant  Role = "assistant"
	RoleToolResult Role = "tool_result"
)

// ToolCall is a tool invocation requested by the model. ID is the opaque
// vendor-assigned identifier and must be echoed back in the matching
// ToolResult.
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]interface{}
}

// ToolResult is the outcome of executing one ToolCall.
type ToolResult struct {
	ToolCallID string
	Content    string
	IsError    bool
}

// Message is a single conversation turn. A user turn carries Content, an
// assistant turn carries Content plus any ToolCalls, a tool_result turn
// carries ToolResults only.
type Message struct {
	Role        Role
	Content     string
	ToolCalls   []ToolCall
	ToolResults []ToolResult
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

func AssistantMessage(content string, toolCalls []ToolCall) Message {
	return Message{Role: RoleAssistant, Content: content, ToolCalls: toolCalls}
}

func ToolResultMessage(results []ToolResult) Message {
	return Message{Role: RoleToolResult, ToolResults: results}
}

// Usage carries vendor-reported token counts when available.
type Usage struct {
	InputTokens  int64 `json:"input_tokens"`
	OutputTokens int64 `json:"output_tokens"`
}

// Response is the normalized result of one chat completion call. StopReason
// is the vendor's finish signal copied verbatim ("end_turn", "stop",
// "tool_calls", "tool_use", ...).
type Response struct {
	Content    string
	ToolCalls  []ToolCall
	StopReason string
	Usage      *Usage
}
