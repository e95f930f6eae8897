package tools

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethneyQQ/prompt-forge/internal/docs"
)

func testStore(t *testing.T) *docs.Store {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "openai")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "prompting.md"), []byte("Be direct."), 0o644); err != nil {
		t.Fatal(err)
	}
	return docs.NewStore(root)
}

func TestExecuteListDocs(t *testing.T) {
	exec := NewExecutor(testStore(t))

	out := exec.Execute(ListDocsTool, map[string]interface{}{"provider": "openai"})
	if !strings.Contains(out, "prompting.md") {
		t.Errorf("listing should name the doc: %q", out)
	}
	if !strings.Contains(out, "read_provider_doc") {
		t.Errorf("listing should point at the read tool: %q", out)
	}
}

func TestExecuteListDocsUnknownProvider(t *testing.T) {
	exec := NewExecutor(testStore(t))

	out := exec.Execute(ListDocsTool, map[string]interface{}{"provider": "mistral"})
	if !strings.Contains(out, "Error") || !strings.Contains(out, "openai") {
		t.Errorf("should report the error and the known providers: %q", out)
	}
}

func TestExecuteReadDoc(t *testing.T) {
	exec := NewExecutor(testStore(t))

	out := exec.Execute(ReadDocTool, map[string]interface{}{
		"provider": "openai",
		"doc_name": "prompting",
	})
	if !strings.Contains(out, "Be direct.") {
		t.Errorf("doc body missing: %q", out)
	}
}

func TestExecuteReadDocUnknownDoc(t *testing.T) {
	exec := NewExecutor(testStore(t))

	out := exec.Execute(ReadDocTool, map[string]interface{}{
		"provider": "openai",
		"doc_name": "missing",
	})
	if !strings.Contains(out, "not found") || !strings.Contains(out, "prompting.md") {
		t.Errorf("should suggest the available files: %q", out)
	}
}

func TestExecuteUnknownTool(t *testing.T) {
	exec := NewExecutor(testStore(t))

	out := exec.Execute("drop_tables", nil)
	if out != "Unknown tool: drop_tables" {
		t.Errorf("unexpected reply: %q", out)
	}
}
