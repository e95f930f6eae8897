// Package tools defines the tool schema the optimizer agent exposes to the
// LLM and the executor that backs the non-terminal tools with the
// documentation store.
package tools

import (
	"github.com/bethneyQQ/prompt-forge/internal/llm"
)

// Tool names. SubmitTool is the terminal submission: the agent loop
// intercepts it before it ever reaches the Executor.
const (
	ListDocsTool = "list_provider_docs"
	ReadDocTool  = "read_provider_doc"
	SubmitTool   = "submit_optimization"
)

// Definitions returns the three optimizer tools. The slice is built once at
// startup and shared read-only across adapters.
func Definitions() []llm.ToolDefinition {
	return []llm.ToolDefinition{
		{
			Name:        ListDocsTool,
			Description: "List available documentation files for a provider. Call this first to see what docs are available.",
			Parameters: []llm.ToolParameter{
				llm.Param("provider", "string", "The provider name (e.g., 'openai', 'anthropic', 'google', 'kimi')"),
			},
		},
		{
			Name:        ReadDocTool,
			Description: "Read a specific documentation file for a provider. Use this to read prompting guidelines.",
			Parameters: []llm.ToolParameter{
				llm.Param("provider", "string", "The provider name"),
				llm.Param("doc_name", "string", "The document filename (e.g., 'prompting.md')"),
			},
		},
		{
			Name:        SubmitTool,
			Description: "Submit the final optimized prompt. Call this when you have read the guidelines and are ready to submit.",
			Parameters: []llm.ToolParameter{
				llm.Param("optimized_prompt", "string", "The complete optimized prompt text"),
				llm.Param("changes", "array", "List of changes made to the prompt").Optional().WithItems(map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"category": map[string]interface{}{
							"type":        "string",
							"description": "Change category (e.g., 'structure', 'clarity', 'formatting')",
						},
						"description": map[string]interface{}{
							"type":        "string",
							"description": "Description of what was changed",
						},
					},
				}),
			},
		},
	}
}
