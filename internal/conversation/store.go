package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/neuromux/neuromux/internal/log"
	"github.com/neuromux/neuromux/internal/pkg/xcache"
	"github.com/neuromux/neuromux/internal/provider"
)

const keyPrefix = "thread:"

// Store persists threads in a TTL'd key-value cache. Appends are
// read-modify-write with last-write-wins; the stdio client is single-threaded
// per session, so contention on one id does not occur in practice.
type Store struct {
	cache    xcache.Cache[Thread]
	ttl      time.Duration
	maxTurns int
}

func NewStore(cache xcache.Cache[Thread], ttl time.Duration, maxTurns int) *Store {
	return &Store{cache: cache, ttl: ttl, maxTurns: maxTurns}
}

func threadKey(id string) string {
	return keyPrefix + id
}

// Create writes a fresh thread seeded with one turn and returns it.
func (s *Store) Create(ctx context.Context, initialTool string, seed Turn) (*Thread, error) {
	now := time.Now().UTC()
	if seed.At.IsZero() {
		seed.At = now
	}

	thread := Thread{
		ID:            uuid.NewString(),
		CreatedAt:     now,
		LastUpdatedAt: now,
		InitialTool:   initialTool,
		Turns:         []Turn{seed},
	}

	if err := s.cache.Set(ctx, threadKey(thread.ID), thread, xcache.WithExpiration(s.ttl)); err != nil {
		return nil, provider.NewError(provider.KindInternal, "persist conversation: %v", err)
	}

	log.Debug(ctx, "conversation created",
		log.String("thread_id", thread.ID),
		log.String("tool", initialTool))

	return &thread, nil
}

// Load returns the thread or a threadNotFound error when the key is absent
// (expired or never existed).
func (s *Store) Load(ctx context.Context, id string) (*Thread, error) {
	thread, err := s.cache.Get(ctx, threadKey(id))
	if err != nil {
		if xcache.IsNotFound(err) {
			return nil, provider.NewError(provider.KindThreadNotFound,
				"conversation %s was not found or has expired", id)
		}

		return nil, provider.NewError(provider.KindInternal, "load conversation: %v", err)
	}

	return &thread, nil
}

// Append adds turns to an existing thread, trims to the turn cap keeping the
// seed plus the most recent entries, and renews the TTL.
func (s *Store) Append(ctx context.Context, id string, turns ...Turn) (*Thread, error) {
	thread, err := s.Load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	for i := range turns {
		if turns[i].At.IsZero() {
			turns[i].At = now
		}
	}

	thread.Turns = append(thread.Turns, turns...)
	thread.Turns = trimTurns(thread.Turns, s.maxTurns)
	thread.LastUpdatedAt = now

	if err := s.cache.Set(ctx, threadKey(id), *thread, xcache.WithExpiration(s.ttl)); err != nil {
		return nil, provider.NewError(provider.KindInternal, "persist conversation: %v", err)
	}

	return thread, nil
}

// RemainingTurns reports how many more turns the thread may take.
func (s *Store) RemainingTurns(thread *Thread) int {
	remaining := s.maxTurns - len(thread.Turns)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// trimTurns keeps the seed turn and the most recent max-1 turns.
func trimTurns(turns []Turn, max int) []Turn {
	if max <= 0 || len(turns) <= max {
		return turns
	}

	trimmed := make([]Turn, 0, max)
	trimmed = append(trimmed, turns[0])
	trimmed = append(trimmed, turns[len(turns)-(max-1):]...)

	return trimmed
}
