package agent_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bethneyQQ/prompt-forge/internal/agent"
)

func TestRunLogTruncatesPreviewOnRuneBoundary(t *testing.T) {
	l := agent.NewRunLog("openai")
	l.Log("tool_result", strings.Repeat("é", 600), nil)

	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	content := entries[0].Content
	if !utf8.ValidString(content) {
		t.Error("preview truncation must not cut a rune in half")
	}
	if !strings.HasSuffix(content, "...") {
		t.Errorf("truncated preview should end with ellipsis, got %q", content[len(content)-10:])
	}
	if got := strings.Count(content, "é"); got != 500 {
		t.Errorf("preview should keep 500 characters, got %d", got)
	}
}

func TestRunLogKeepsShortContentVerbatim(t *testing.T) {
	l := agent.NewRunLog("openai")
	l.Log("system", "short entry", nil)

	if got := l.Entries()[0].Content; got != "short entry" {
		t.Errorf("content = %q", got)
	}
}
