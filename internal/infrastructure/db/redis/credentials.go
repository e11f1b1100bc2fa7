package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// CredentialStore keeps the bearer credential in a single Redis string.
// Entries never expire; the backend owns token lifetime.
type CredentialStore struct {
	client *redis.Client
	key    string
}

// Option configures a CredentialStore.
type Option func(*CredentialStore)

// WithKeyPrefix namespaces the key, for Redis instances shared with other
// services.
func WithKeyPrefix(prefix string) Option {
	return func(s *CredentialStore) { s.key = prefix + s.key }
}

// NewCredentialStore stores the credential under name, "access_token" by
// default.
func NewCredentialStore(client *redis.Client, name string, opts ...Option) *CredentialStore {
	s := &CredentialStore{client: client, key: name}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CredentialStore) Save(ctx context.Context, token string) error {
	if err := s.client.Set(ctx, s.key, token, 0).Err(); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Load(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load credential: %w", err)
	}
	return token, true, nil
}

func (s *CredentialStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

func (s *CredentialStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
