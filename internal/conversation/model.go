// Package conversation implements multi-turn threading: thread persistence in
// a TTL'd key-value store and budget-aware history reconstruction.
package conversation

import (
	"time"
)

// Turn is one immutable conversation entry.
type Turn struct {
	// Role is "user" or "assistant".
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`

	// ToolName and ModelName record which tool produced the turn and which
	// model served it.
	ToolName  string `json:"tool_name,omitempty"`
	ModelName string `json:"model_name,omitempty"`

	// Files and Images are absolute paths referenced by the turn.
	Files  []string `json:"files,omitempty"`
	Images []string `json:"images,omitempty"`

	InputTokens  int `json:"input_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
}

// Thread is a conversation identified by an opaque id, oldest turn first.
// Turn 0 is the seed and survives every trim.
type Thread struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	InitialTool   string    `json:"initial_tool"`
	Turns         []Turn    `json:"turns"`
}

func (t *Thread) TotalTurns() int {
	return len(t.Turns)
}

func (t *Thread) TotalTokens() int {
	total := 0
	for _, turn := range t.Turns {
		total += turn.InputTokens + turn.OutputTokens
	}

	return total
}

// Files returns every file path referenced across turns, deduplicated with
// the newest reference winning, newest first.
func (t *Thread) Files() []string {
	return dedupNewestFirst(t.Turns, func(turn *Turn) []string { return turn.Files })
}

// Images is the image-path counterpart of Files.
func (t *Thread) Images() []string {
	return dedupNewestFirst(t.Turns, func(turn *Turn) []string { return turn.Images })
}

func dedupNewestFirst(turns []Turn, pick func(*Turn) []string) []string {
	var out []string

	seen := map[string]struct{}{}

	for i := len(turns) - 1; i >= 0; i-- {
		for _, path := range pick(&turns[i]) {
			if _, ok := seen[path]; ok {
				continue
			}

			seen[path] = struct{}{}

			out = append(out, path)
		}
	}

	return out
}
