// Package agent drives a bounded, stateful tool-calling conversation that
// optimizes a prompt for a target provider. The loop alternates between one
// LLM call and local tool execution until the model submits a result, the
// iteration budget runs out, or the backend fails.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/bethneyQQ/prompt-forge/internal/llm"
	"github.com/bethneyQQ/prompt-forge/internal/models"
	"github.com/bethneyQQ/prompt-forge/internal/tools"
	"github.com/rs/zerolog/log"
)

// maxIterations caps the number of LLM calls per run. It is the only bound
// on runaway execution besides the caller's context.
const maxIterations = 8

const systemPrompt = `You are a prompt optimization expert. You have access to tools to read documentation and submit your optimized prompt.

## YOUR WORKFLOW

1. Call list_provider_docs to see available docs for the target provider
2. Call read_provider_doc to read the prompting guidelines
3. Study the guidelines carefully
4. Call submit_optimization with your optimized prompt and changes

## RULES

- You MUST read documentation before optimizing
- Write the ACTUAL optimized prompt, not placeholders like "<optimized_prompt_here>"
- List SPECIFIC changes you made in the changes array
- Each change should describe: what was changed, why, based on which guideline

START by listing docs for the target provider.`

// Optimizer runs agentic prompt optimization against one LLM backend. The
// backend client and tool executor are shared and stateless per call; each
// Optimize invocation owns its own conversation history, so distinct runs
// may execute concurrently.
type Optimizer struct {
	client  llm.ChatClient
	exec    *tools.Executor
	tools   []llm.ToolDefinition
	logsDir string
}

func NewOptimizer(client llm.ChatClient, exec *tools.Executor, logsDir string) *Optimizer {
	return &Optimizer{
		client:  client,
		exec:    exec,
		tools:   tools.Definitions(),
		logsDir: logsDir,
	}
}

// Optimize runs one optimization for the target provider. Failures of every
// kind come back as a result value with Success=false and the original
// prompt unchanged; the method itself never returns an error.
func (o *Optimizer) Optimize(ctx context.Context, prompt, provider string) *models.OptimizedPrompt {
	runLog := NewRunLog(provider)
	fileLog := NewFileLogger(o.logsDir, provider)

	runLog.Log("system", fmt.Sprintf("Starting optimization for %s", strings.ToUpper(provider)), map[string]interface{}{
		"original_prompt_length": len(prompt),
		"model":                  o.client.Model(),
		"llm_provider":           string(o.client.Provider()),
	})
	fileLog.Log("system", fmt.Sprintf("Starting optimization for %s\nModel: %s\nLLM Provider: %s\nOriginal prompt length: %d chars",
		strings.ToUpper(provider), o.client.Model(), o.client.Provider(), len(prompt)))
	fileLog.Log("system_prompt", systemPrompt)

	task := fmt.Sprintf(`## TASK: Optimize for %s

ORIGINAL PROMPT:
`+"```"+`
%s
`+"```"+`

Length: %d chars

## STEPS
1. Call list_provider_docs with provider=%s
2. Call read_provider_doc to read prompting.md
3. Read and understand the guidelines
4. Call submit_optimization with your result

BEGIN NOW.`, strings.ToUpper(provider), prompt, len(prompt), provider)

	runLog.Log("input", "Task assigned to agent", map[string]interface{}{"task_length": len(task)})
	fileLog.Log("task_input", task)

	result, err := o.runLoop(ctx, task, provider, prompt, runLog, fileLog)
	if err != nil {
		runLog.Log("error", err.Error(), nil)
		fileLog.Log("error", err.Error())
		fileLog.Close(false, "Error: "+err.Error())

		result = &models.OptimizedPrompt{
			Provider: provider,
			Prompt:   prompt,
			Changes:  []models.PromptChange{{Category: "error", Description: err.Error()}},
			Success:  false,
			Error:    err.Error(),
		}
		result.AgentLogs = runLog.Entries()
		return result
	}

	result.AgentLogs = runLog.Entries()

	runLog.Log("complete", "Optimization finished", map[string]interface{}{
		"success":       result.Success,
		"changes_count": len(result.Changes),
		"output_length": len(result.Prompt),
	})
	fileLog.Close(result.Success, fmt.Sprintf("Changes: %d\nOutput Length: %d chars", len(result.Changes), len(result.Prompt)))

	return result
}

// runLoop is the state machine of one run. The returned error is reserved
// for backend failures; every agent-level outcome (submission, exhaustion,
// rejected submission) is a result value.
func (o *Optimizer) runLoop(ctx context.Context, task, provider, original string, runLog *RunLog, fileLog *FileLogger) (*models.OptimizedPrompt, error) {
	history := []llm.Message{llm.UserMessage(task)}
	var docsRead []string

	for iteration := 1; iteration <= maxIterations; iteration++ {
		runLog.Log("llm_call", fmt.Sprintf("Iteration %d: Calling LLM", iteration), map[string]interface{}{"iteration": iteration})
		fileLog.Log("llm_call", fmt.Sprintf("=== ITERATION %d ===\n\nSending %d messages to LLM", iteration, len(history)))

		resp, err := o.client.Chat(ctx, history, systemPrompt, o.tools)
		if err != nil {
			return nil, err
		}

		runLog.Log("llm_response", resp.Content, map[string]interface{}{
			"response_length":  len(resp.Content),
			"tool_calls_count": len(resp.ToolCalls),
			"iteration":        iteration,
		})
		fileLog.Log("llm_response", fmt.Sprintf("Content: %s\nTool calls: %d\nStop reason: %s",
			resp.Content, len(resp.ToolCalls), resp.StopReason))

		if len(resp.ToolCalls) > 0 {
			history = append(history, llm.AssistantMessage(resp.Content, resp.ToolCalls))

			// Execute the batch in the order the provider returned it. A
			// submission ends the run immediately; calls after it in the
			// same batch are discarded.
			var results []llm.ToolResult
			for _, call := range resp.ToolCalls {
				runLog.Log("tool_call", "Calling: "+call.Name, call.Arguments)
				fileLog.Log("tool_call", fmt.Sprintf("Tool: %s\nArgs: %v", call.Name, call.Arguments))

				if call.Name == tools.SubmitTool {
					result := ValidateSubmission(call.Arguments, provider, original, docsRead)
					if result.Success {
						runLog.Log("submit", fmt.Sprintf("Optimization submitted (%d chars, %d changes)",
							len(result.Prompt), len(result.Changes)), nil)
					} else {
						runLog.Log("parse_error", result.Error, nil)
					}
					return result, nil
				}

				out := o.exec.Execute(call.Name, call.Arguments)

				runLog.Log("tool_result", out, map[string]interface{}{
					"tool":          call.Name,
					"result_length": len(out),
				})
				fileLog.Log("tool_result", fmt.Sprintf("Tool: %s\nResult (%d chars):\n%s", call.Name, len(out), out))

				if call.Name == tools.ReadDocTool {
					docKey := stringArg(call.Arguments, "provider") + "/" + stringArg(call.Arguments, "doc_name")
					docsRead = append(docsRead, docKey)
				}

				results = append(results, llm.ToolResult{ToolCallID: call.ID, Content: out})
			}
			history = append(history, llm.ToolResultMessage(results))
			continue
		}

		// Natural completion without a submission: keep the assistant's
		// text and push the model back toward the submission tool. Does not
		// count as a terminal state.
		if resp.StopReason == "end_turn" || resp.StopReason == "stop" {
			runLog.Log("warning", "LLM ended without submitting - prompting to use tools", nil)
			fileLog.Log("warning", fmt.Sprintf("LLM ended with stop_reason=%s without tool call", resp.StopReason))
			history = append(history, llm.AssistantMessage(resp.Content, nil))
			history = append(history, llm.UserMessage("Please use the submit_optimization tool to submit your optimized prompt."))
		}
	}

	runLog.Log("error", "Max iterations reached without completion", nil)
	log.Warn().Str("provider", provider).Int("max_iterations", maxIterations).Msg("optimization exhausted iteration budget")

	return &models.OptimizedPrompt{
		Provider: provider,
		Prompt:   original,
		Changes:  []models.PromptChange{{Category: "error", Description: "Optimization did not complete"}},
		Success:  false,
		Error:    "Max iterations reached",
	}, nil
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
