package tools

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bethneyQQ/prompt-forge/internal/docs"
)

// Executor maps tool names to their implementations. It never fails the
// run: unknown tools, providers and documents all come back as descriptive
// strings the model can recover from.
type Executor struct {
	store *docs.Store
}

func NewExecutor(store *docs.Store) *Executor {
	return &Executor{store: store}
}

// Execute runs a single tool call and returns its textual result.
func (e *Executor) Execute(name string, args map[string]interface{}) string {
	switch name {
	case ListDocsTool:
		return e.listDocs(stringArg(args, "provider"))
	case ReadDocTool:
		return e.readDoc(stringArg(args, "provider"), stringArg(args, "doc_name"))
	case SubmitTool:
		// Intercepted by the agent loop; reaching here means a caller
		// bypassed the loop.
		return "SUBMIT"
	default:
		return fmt.Sprintf("Unknown tool: %s", name)
	}
}

func (e *Executor) listDocs(provider string) string {
	names, err := e.store.List(provider)
	if err != nil {
		if errors.Is(err, docs.ErrProviderNotFound) {
			return fmt.Sprintf("Error: Provider %q not found. Available providers: %s",
				provider, strings.Join(e.store.Providers(), ", "))
		}
		return fmt.Sprintf("Error listing docs for %q: %v", provider, err)
	}
	if len(names) == 0 {
		return fmt.Sprintf("No documentation found for %q.", provider)
	}
	return fmt.Sprintf("Available docs for %s: %s. Call read_provider_doc to read them.",
		strings.ToUpper(provider), strings.Join(names, ", "))
}

func (e *Executor) readDoc(provider, docName string) string {
	content, err := e.store.Read(provider, docName)
	if err != nil {
		if errors.Is(err, docs.ErrDocNotFound) {
			if available, listErr := e.store.List(provider); listErr == nil {
				return fmt.Sprintf("Document %q not found. Available files: %s",
					docName, strings.Join(available, ", "))
			}
			return fmt.Sprintf("Provider %q not found. Available: %s",
				provider, strings.Join(e.store.Providers(), ", "))
		}
		if errors.Is(err, docs.ErrProviderNotFound) {
			return fmt.Sprintf("Provider %q not found. Available: %s",
				provider, strings.Join(e.store.Providers(), ", "))
		}
		return fmt.Sprintf("Error reading %s/%s: %v", provider, docName, err)
	}
	return content
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}
