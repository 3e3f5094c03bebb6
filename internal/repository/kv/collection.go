// Package kv implements the repositories on top of a kvstore.Store.
// Each collection is one JSON value under a fixed key.
package kv

import (
	"alcyxob/coach-studio/internal/kvstore"
	"alcyxob/coach-studio/internal/repository"
	"context"
	"encoding/json"
	"fmt"
)

// collection reads and writes a whole JSON encoded value of type T under one key.
type collection[T any] struct {
	store kvstore.Store
	key   string
}

func newCollection[T any](store kvstore.Store, key string) collection[T] {
	return collection[T]{store: store, key: key}
}

// load returns the zero value of T when the key was never written.
func (c collection[T]) load(ctx context.Context) (T, error) {
	var value T
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		return value, fmt.Errorf("read %s: %w", c.key, err)
	}
	if !ok || raw == "" {
		return value, nil
	}
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, fmt.Errorf("%w: %s: %v", repository.ErrCorruptCollection, c.key, err)
	}
	return value, nil
}

func (c collection[T]) save(ctx context.Context, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", repository.ErrEncodeFailed, c.key, err)
	}
	if err := c.store.Set(ctx, c.key, string(raw)); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}
