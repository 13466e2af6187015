package conversation

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuromux/neuromux/internal/tokens"
)

func turn(role, content string) Turn {
	return Turn{Role: role, Content: content}
}

func TestBuildHistory_AllTurnsFit(t *testing.T) {
	thread := &Thread{ID: "t1"}
	for i := 0; i < 10; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}

		thread.Turns = append(thread.Turns, turn(role, fmt.Sprintf("message number %d with some padding text", i)))
	}

	h := BuildHistory(thread, 90_000)
	require.NotEmpty(t, h.Text)
	assert.LessOrEqual(t, h.Tokens, 90_000)

	// Every turn appears, in chronological order.
	last := -1
	for i := 0; i < 10; i++ {
		pos := strings.Index(h.Text, fmt.Sprintf("message number %d ", i))
		require.GreaterOrEqual(t, pos, 0, "turn %d missing", i)
		assert.Greater(t, pos, last)
		last = pos
	}
}

func TestBuildHistory_OversizedMiddleTurnSkipped(t *testing.T) {
	huge := strings.Repeat("x", 4000)

	thread := &Thread{Turns: []Turn{
		turn("user", "small one"),
		turn("assistant", "small two"),
		turn("user", huge),
		turn("assistant", "small three"),
		turn("user", "small four"),
	}}

	// Budget fits the four small turns but not the huge one.
	h := BuildHistory(thread, 200)
	require.NotEmpty(t, h.Text)
	assert.NotContains(t, h.Text, huge)
	assert.LessOrEqual(t, h.Tokens, 200)

	for _, want := range []string{"small one", "small two", "small three", "small four"} {
		assert.Contains(t, h.Text, want)
	}

	// Chronological order preserved around the gap.
	assert.Less(t, strings.Index(h.Text, "small two"), strings.Index(h.Text, "small three"))
}

func TestBuildHistory_RecencyWinsUnderPressure(t *testing.T) {
	thread := &Thread{Turns: []Turn{
		turn("user", strings.Repeat("old ", 40)),
		turn("assistant", strings.Repeat("mid ", 40)),
		turn("user", "the newest turn"),
	}}

	h := BuildHistory(thread, 20)
	assert.Contains(t, h.Text, "the newest turn")
	assert.NotContains(t, h.Text, "old old")
}

func TestBuildHistory_ExactBudgetBoundary(t *testing.T) {
	thread := &Thread{Turns: []Turn{turn("user", "only message here")}}

	full := BuildHistory(thread, 1_000_000)
	require.NotEmpty(t, full.Text)

	atBudget := BuildHistory(thread, full.Tokens)
	assert.Equal(t, full.Text, atBudget.Text)

	underBudget := BuildHistory(thread, full.Tokens-1)
	assert.Empty(t, underBudget.Text)
	assert.Zero(t, underBudget.Tokens)
}

func TestBuildHistory_ReferencedFilesIndex(t *testing.T) {
	thread := &Thread{Turns: []Turn{
		{Role: "user", Content: "first", Files: []string{"/a.go", "/b.go"}},
		{Role: "assistant", Content: "second"},
		{Role: "user", Content: "third", Files: []string{"/a.go"}, Images: []string{"/shot.png"}},
	}}

	h := BuildHistory(thread, 10_000)
	require.Contains(t, h.Text, "REFERENCED FILES (newest first):")
	require.Contains(t, h.Text, "REFERENCED IMAGES (newest first):")

	// /a.go appears once in the index, from its newest reference.
	idx := strings.Index(h.Text, "REFERENCED FILES")
	index := h.Text[idx:]
	assert.Equal(t, 1, strings.Count(index, "/a.go\n"))
	assert.Less(t, strings.Index(index, "/a.go"), strings.Index(index, "/b.go"))
}

func TestBuildHistory_Empty(t *testing.T) {
	assert.Zero(t, BuildHistory(nil, 100).Tokens)
	assert.Zero(t, BuildHistory(&Thread{}, 100).Tokens)
	assert.Zero(t, BuildHistory(&Thread{Turns: []Turn{turn("user", "hi")}}, 0).Tokens)
}

func TestBuildHistory_TokensMatchEstimate(t *testing.T) {
	thread := &Thread{Turns: []Turn{
		turn("user", "alpha"),
		turn("assistant", "beta"),
	}}

	h := BuildHistory(thread, 5_000)
	assert.Equal(t, tokens.Estimate(h.Text), h.Tokens)
}
