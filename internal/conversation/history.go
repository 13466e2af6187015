package conversation

import (
	"fmt"
	"strings"

	"github.com/neuromux/neuromux/internal/tokens"
)

// History is the reconstructed transcript handed to prompt assembly.
type History struct {
	Text   string
	Tokens int
}

// BuildHistory renders the thread into a chronological transcript that fits
// the history budget. Turns are packed newest-first so recency wins; a turn
// too large for the remaining budget is skipped while older turns are still
// considered. The returned token estimate, including the trailing reference
// index, never exceeds the budget.
func BuildHistory(thread *Thread, historyBudget int) History {
	if thread == nil || len(thread.Turns) == 0 || historyBudget <= 0 {
		return History{}
	}

	turns := thread.Turns
	rendered := make([]string, len(turns))
	included := make([]bool, len(turns))
	total := 0

	for i := len(turns) - 1; i >= 0; i-- {
		r := renderTurn(i, &turns[i])

		cost := tokens.Estimate(r)
		if total+cost > historyBudget {
			continue
		}

		rendered[i] = r
		included[i] = true
		total += cost
	}

	// The reference index costs tokens too. If it pushes past the budget,
	// shed the oldest included turns until the whole text fits.
	for {
		text, any := assemble(turns, rendered, included)
		if !any {
			return History{}
		}

		estimated := tokens.Estimate(text)
		if estimated <= historyBudget {
			return History{Text: text, Tokens: estimated}
		}

		for i := range included {
			if included[i] {
				included[i] = false
				break
			}
		}
	}
}

func assemble(turns []Turn, rendered []string, included []bool) (string, bool) {
	var sb strings.Builder

	var kept []Turn

	for i := range turns {
		if !included[i] {
			continue
		}

		sb.WriteString(rendered[i])

		kept = append(kept, turns[i])
	}

	if len(kept) == 0 {
		return "", false
	}

	files := dedupNewestFirst(kept, func(t *Turn) []string { return t.Files })
	images := dedupNewestFirst(kept, func(t *Turn) []string { return t.Images })

	if len(files) > 0 || len(images) > 0 {
		sb.WriteString("---\n")

		if len(files) > 0 {
			sb.WriteString("REFERENCED FILES (newest first):\n")

			for _, f := range files {
				sb.WriteString(f)
				sb.WriteString("\n")
			}
		}

		if len(images) > 0 {
			sb.WriteString("REFERENCED IMAGES (newest first):\n")

			for _, img := range images {
				sb.WriteString(img)
				sb.WriteString("\n")
			}
		}
	}

	return sb.String(), true
}

func renderTurn(index int, turn *Turn) string {
	var sb strings.Builder

	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("Turn %d (%s", index, turn.Role))

	if turn.ToolName != "" {
		sb.WriteString(", tool: " + turn.ToolName)
	}

	if turn.ModelName != "" {
		sb.WriteString(", model: " + turn.ModelName)
	}

	sb.WriteString(")\n")

	if len(turn.Files) > 0 {
		sb.WriteString("Files: " + strings.Join(turn.Files, ", ") + "\n")
	}

	if len(turn.Images) > 0 {
		sb.WriteString("Images: " + strings.Join(turn.Images, ", ") + "\n")
	}

	sb.WriteString(turn.Content)
	sb.WriteString("\n")

	return sb.String()
}
