package conversation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuromux/neuromux/internal/pkg/xcache"
	"github.com/neuromux/neuromux/internal/provider"
)

func memoryStore(t *testing.T, maxTurns int) *Store {
	t.Helper()

	return NewStore(xcache.NewMemoryWithOptions[Thread](time.Hour, time.Hour), 3*time.Hour, maxTurns)
}

func userTurn(content string) Turn {
	return Turn{Role: "user", Content: content, At: time.Now().UTC()}
}

func TestCreateThenLoad(t *testing.T) {
	ctx := context.Background()
	s := memoryStore(t, 20)

	created, err := s.Create(ctx, "chat", userTurn("hello"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	loaded, err := s.Load(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, created.CreatedAt, loaded.CreatedAt)
	assert.Equal(t, "chat", loaded.InitialTool)
	require.Len(t, loaded.Turns, 1)
	assert.Equal(t, "hello", loaded.Turns[0].Content)
}

func TestAppendThenLoad(t *testing.T) {
	ctx := context.Background()
	s := memoryStore(t, 20)

	created, err := s.Create(ctx, "chat", userTurn("hello"))
	require.NoError(t, err)

	appended := Turn{Role: "assistant", Content: "hi there", OutputTokens: 3}
	_, err = s.Append(ctx, created.ID, appended)
	require.NoError(t, err)

	loaded, err := s.Load(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Turns, 2)
	assert.Equal(t, appended.Content, loaded.Turns[1].Content)
	assert.Equal(t, 3, loaded.TotalTokens())
}

func TestLoad_Missing(t *testing.T) {
	s := memoryStore(t, 20)

	_, err := s.Load(context.Background(), "no-such-id")
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.KindThreadNotFound))
}

func TestAppend_CapKeepsSeedAndNewest(t *testing.T) {
	ctx := context.Background()
	s := memoryStore(t, 5)

	created, err := s.Create(ctx, "chat", userTurn("seed"))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		_, err = s.Append(ctx, created.ID, userTurn(fmt.Sprintf("turn-%d", i)))
		require.NoError(t, err)
	}

	loaded, err := s.Load(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Turns, 5)
	assert.Equal(t, "seed", loaded.Turns[0].Content)
	assert.Equal(t, "turn-9", loaded.Turns[4].Content)
	assert.Equal(t, "turn-6", loaded.Turns[1].Content)
	assert.Equal(t, 0, s.RemainingTurns(loaded))
}

func TestRedisBacked_TTLRenewalOnAppend(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewStore(xcache.NewRedis[Thread](client), 3*time.Hour, 20)

	created, err := s.Create(ctx, "debug", userTurn("seed"))
	require.NoError(t, err)

	// Two hours in, an append renews the TTL; two more hours later the
	// thread must still be alive.
	mr.FastForward(2 * time.Hour)

	_, err = s.Append(ctx, created.ID, userTurn("follow-up"))
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	loaded, err := s.Load(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Turns, 2)
}

func TestRedisBacked_ExpiredThreadIsNotFound(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewStore(xcache.NewRedis[Thread](client), 3*time.Hour, 20)

	created, err := s.Create(ctx, "chat", userTurn("seed"))
	require.NoError(t, err)

	mr.FastForward(4 * time.Hour)

	_, err = s.Load(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, provider.IsKind(err, provider.KindThreadNotFound))

	_, err = s.Append(ctx, created.ID, userTurn("too late"))
	assert.True(t, provider.IsKind(err, provider.KindThreadNotFound))
}

func TestTurnsAreStampedOnWrite(t *testing.T) {
	ctx := context.Background()
	s := memoryStore(t, 20)

	created, err := s.Create(ctx, "chat", Turn{Role: "user", Content: "hello"})
	require.NoError(t, err)

	_, err = s.Append(ctx, created.ID, Turn{Role: "assistant", Content: "hi there"})
	require.NoError(t, err)

	loaded, err := s.Load(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Turns, 2)

	for i, turn := range loaded.Turns {
		assert.False(t, turn.At.IsZero(), "turn %d has zero timestamp", i)
	}
}

func TestCallerTimestampIsKept(t *testing.T) {
	ctx := context.Background()
	s := memoryStore(t, 20)
	at := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	created, err := s.Create(ctx, "chat", Turn{Role: "user", Content: "hello", At: at})
	require.NoError(t, err)

	loaded, err := s.Load(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Turns[0].At.Equal(at))
}

func TestThreadFileDedup_NewestWins(t *testing.T) {
	thread := &Thread{Turns: []Turn{
		{Role: "user", Content: "a", Files: []string{"/src/main.go", "/src/util.go"}},
		{Role: "assistant", Content: "b"},
		{Role: "user", Content: "c", Files: []string{"/src/main.go", "/src/new.go"}},
	}}

	assert.Equal(t, []string{"/src/main.go", "/src/new.go", "/src/util.go"}, thread.Files())
}
