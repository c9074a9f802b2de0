package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/plated/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/plated/internal/common"
)

// ErrNoToken is returned by TokenStore.Read when the user is logged out.
var ErrNoToken = errors.New("no session token")

// TokenStore persists the raw session token. It performs no expiry or
// validity checks of its own.
type TokenStore interface {
	Read(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// MetadataTokenStore keeps the token under a single key of the local
// metadata table, so it survives restarts until cleared.
type MetadataTokenStore struct {
	repo metadata.Repository
	key  string
}

func NewMetadataTokenStore(repo metadata.Repository) *MetadataTokenStore {
	return &MetadataTokenStore{repo: repo, key: common.TokenMetadataKey}
}

func (s *MetadataTokenStore) Read(ctx context.Context) (string, error) {
	token, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, metadata.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *MetadataTokenStore) Save(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, s.key, token); err != nil {
		return fmt.Errorf("save session token: %w", err)
	}
	return nil
}

func (s *MetadataTokenStore) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// MemoryTokenStore is a process-local TokenStore, handy for tests and
// one-shot commands that must not touch the durable store.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (s *MemoryTokenStore) Read(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryTokenStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
