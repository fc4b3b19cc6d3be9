// Copyright (c) 2025-2026 Vegaplay Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package filestore is the flat-file fallback backend: each collection
// is a single JSON array rewritten wholesale on every mutation. It
// exists so the API stays readable and writable when the primary
// database is unavailable.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// collection serializes access to one JSON-array file. The mutex
// serializes the read-modify-write cycle within this process; writers
// in other processes are not coordinated.
type collection[T any] struct {
	path string
	mu   sync.Mutex
}

func newCollection[T any](path string) *collection[T] {
	return &collection[T]{path: path}
}

// load reads the whole collection, treating a missing file as empty.
func (c *collection[T]) load() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", c.path, err)
	}
	return items, nil
}

// save rewrites the whole collection through a temp file and rename so
// a crash mid-write never leaves a truncated array behind.
func (c *collection[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replacing %s: %w", c.path, err)
	}
	return nil
}

// mutate runs fn over the loaded collection and persists its result.
func (c *collection[T]) mutate(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load()
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		return err
	}
	return c.save(updated)
}

// snapshot returns a loaded copy under the lock.
func (c *collection[T]) snapshot() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}
