package agent

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethneyQQ/prompt-forge/internal/models"
)

// minPromptLength is the shortest submission accepted as a real prompt,
// in runes, so non-ASCII text is measured the same as ASCII.
const minPromptLength = 15

// placeholderMarkers reject submissions where the model echoed a template
// instead of writing the actual prompt. Matched against the lower-cased,
// trimmed text.
var placeholderMarkers = []string{
	"<optimized_prompt_here>",
	"[your prompt here]",
	"placeholder",
	"insert your",
}

// ValidateSubmission inspects a submit_optimization call's arguments and
// turns them into the run result. Rejections keep the original prompt and
// carry a specific error; they are result values, never errors. The
// function is pure: validating the same arguments twice yields the same
// result.
func ValidateSubmission(args map[string]interface{}, provider, original string, docsRead []string) *models.OptimizedPrompt {
	optimized, _ := args["optimized_prompt"].(string)

	if utf8.RuneCountInString(optimized) < minPromptLength {
		return &models.OptimizedPrompt{
			Provider: provider,
			Prompt:   original,
			Changes:  []models.PromptChange{{Category: "error", Description: "Empty optimization submitted"}},
			Success:  false,
			Error:    "Empty or too short output",
		}
	}

	lowered := strings.TrimSpace(strings.ToLower(optimized))
	for _, marker := range placeholderMarkers {
		if strings.Contains(lowered, marker) {
			return &models.OptimizedPrompt{
				Provider: provider,
				Prompt:   original,
				Changes:  []models.PromptChange{{Category: "error", Description: "Agent submitted placeholder"}},
				Success:  false,
				Error:    "Placeholder output detected",
			}
		}
	}

	changes := parseChanges(args["changes"])

	// No usable change entries: synthesize one per distinct doc read, and
	// failing that a single generic entry naming the target.
	if len(changes) == 0 {
		for _, doc := range dedupe(docsRead) {
			changes = append(changes, models.PromptChange{
				Category:    "provider_pattern",
				Description: "Applied guidelines from " + doc,
			})
		}
		if len(changes) == 0 {
			changes = append(changes, models.PromptChange{
				Category:    "optimization",
				Description: fmt.Sprintf("Optimized for %s", strings.ToUpper(provider)),
			})
		}
	}

	return &models.OptimizedPrompt{
		Provider: provider,
		Prompt:   optimized,
		Changes:  changes,
		Success:  true,
	}
}

// parseChanges keeps every change entry that is a well-formed mapping,
// defaulting absent fields.
func parseChanges(raw interface{}) []models.PromptChange {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var changes []models.PromptChange
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		change := models.PromptChange{Category: "optimization", Description: "Applied optimization"}
		if c, ok := entry["category"].(string); ok && c != "" {
			change.Category = c
		}
		if d, ok := entry["description"].(string); ok && d != "" {
			change.Description = d
		}
		changes = append(changes, change)
	}
	return changes
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	var out []string
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
