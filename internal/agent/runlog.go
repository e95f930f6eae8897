package agent

import (
	"time"
	"unicode/utf8"

	"github.com/bethneyQQ/prompt-forge/internal/models"
)

// contentPreviewLen bounds log entry content in the API view, in runes.
// Full text goes to the per-run file log instead.
const contentPreviewLen = 500

// RunLog captures the activity of one optimization run in memory. It is
// owned by a single run and is not safe for concurrent use.
type RunLog struct {
	provider string
	start    time.Time
	entries  []models.LogEntry
}

func NewRunLog(provider string) *RunLog {
	return &RunLog{provider: provider, start: time.Now()}
}

// Log appends one entry. Content longer than the preview limit is truncated.
func (l *RunLog) Log(eventType, content string, metadata map[string]interface{}) {
	if utf8.RuneCountInString(content) > contentPreviewLen {
		content = string([]rune(content)[:contentPreviewLen]) + "..."
	}
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	now := time.Now()
	l.entries = append(l.entries, models.LogEntry{
		Timestamp: now.Format(time.RFC3339Nano),
		ElapsedMS: now.Sub(l.start).Milliseconds(),
		Type:      eventType,
		Content:   content,
		Metadata:  metadata,
	})
}

// Entries returns the accumulated log for attachment to the run result.
func (l *RunLog) Entries() []models.LogEntry {
	return l.entries
}
