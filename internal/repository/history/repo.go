package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/sigimsae/internal/db"
)

// DefaultKey is the storage key for the search history list.
const DefaultKey = "ornaments_search_history"

// store is the consumer interface for history persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Repo implements usecase/history.Repository over a key-value store.
type Repo struct {
	store store
	key   string
}

// New creates a history repository. An empty key falls back to DefaultKey.
func New(s store, key string) *Repo {
	if key == "" {
		key = DefaultKey
	}
	return &Repo{store: s, key: key}
}

// Key returns the storage key.
func (r *Repo) Key() string { return r.key }

// Load returns the stored entries. A missing key yields an empty list.
func (r *Repo) Load(ctx context.Context) ([]string, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}

	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.key, err)
	}
	if entries == nil {
		entries = []string{}
	}
	return entries, nil
}

// Save replaces the stored entries.
func (r *Repo) Save(ctx context.Context, entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("set %s: %w", r.key, err)
	}
	return nil
}

// Clear removes the stored entries.
func (r *Repo) Clear(ctx context.Context) error {
	if err := r.store.Del(ctx, r.key); err != nil {
		return fmt.Errorf("del %s: %w", r.key, err)
	}
	return nil
}
