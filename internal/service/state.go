package service

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// SignInStateTTL bounds how long a sign-in may take at the provider.
const SignInStateTTL = 10 * time.Minute

// StateStore keeps the OAuth state parameter and the post-sign-in destination
// between the redirect to the provider and the callback.
type StateStore interface {
	Put(ctx context.Context, state, redirectTo string) error
	// Take returns the destination and forgets the state. ok is false for an
	// unknown or expired state.
	Take(ctx context.Context, state string) (redirectTo string, ok bool, err error)
}

// RedisStateStore stores sign-in states in redis with a TTL.
type RedisStateStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{client: client, prefix: "auth:state:"}
}

func (s *RedisStateStore) Put(ctx context.Context, state, redirectTo string) error {
	if err := s.client.Set(ctx, s.prefix+state, redirectTo, SignInStateTTL).Err(); err != nil {
		return errors.Wrap(err, "store sign-in state")
	}
	return nil
}

func (s *RedisStateStore) Take(ctx context.Context, state string) (string, bool, error) {
	value, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "load sign-in state")
	}
	return value, true, nil
}

// MemoryStateStore is a single-process StateStore used when redis is not configured.
type MemoryStateStore struct {
	mu      sync.Mutex
	entries map[string]memoryState
	now     func() time.Time
}

type memoryState struct {
	redirectTo string
	expires    time.Time
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{entries: map[string]memoryState{}, now: time.Now}
}

func (s *MemoryStateStore) Put(_ context.Context, state, redirectTo string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for key, entry := range s.entries {
		if now.After(entry.expires) {
			delete(s.entries, key)
		}
	}
	s.entries[state] = memoryState{redirectTo: redirectTo, expires: now.Add(SignInStateTTL)}
	return nil
}

func (s *MemoryStateStore) Take(_ context.Context, state string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[state]
	if !ok {
		return "", false, nil
	}
	delete(s.entries, state)
	if s.now().After(entry.expires) {
		return "", false, nil
	}
	return entry.redirectTo, true, nil
}
