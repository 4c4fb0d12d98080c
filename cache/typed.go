package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Namespace groups related entity lookups under one key prefix, so two
// entity kinds sharing an id (unlikely, but cheap to rule out) never
// collide in a shared Cache.
type Namespace string

// NamespaceFilePreset caches store.FilePreset reads keyed by principal and
// preset id; presets are immutable once created, so entries only need to
// expire to pick up out-of-band edits.
const NamespaceFilePreset Namespace = "file_preset"

// defaultTTL is used by NewTyped when ttl <= 0 is passed at construction.
const defaultTTL = 10 * time.Minute

// Key builds the cache key for an entity within ns, scoped by owner (the
// principal or tenant id) so cached values never leak across owners.
func Key(ns Namespace, owner, id string) string {
	return string(ns) + ":" + owner + ":" + id
}

// Typed wraps a byte-oriented Cache with JSON encode/decode for one
// namespace, so callers work with FilePreset/SystemAiAgent values directly
// instead of hand-marshaling on every call site.
type Typed[T any] struct {
	cache Cache
	ns    Namespace
	ttl   time.Duration
}

// NewTyped builds a namespaced, typed view over c. ttl <= 0 uses defaultTTL.
func NewTyped[T any](c Cache, ns Namespace, ttl time.Duration) *Typed[T] {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Typed[T]{cache: c, ns: ns, ttl: ttl}
}

// Get fetches and decodes the value stored for owner/id. A cache miss or a
// decode failure both return found=false so a corrupted entry degrades to a
// store read rather than surfacing as an error.
func (t *Typed[T]) Get(ctx context.Context, owner, id string) (value T, found bool, err error) {
	raw, found, err := t.cache.Get(ctx, Key(t.ns, owner, id))
	if err != nil {
		return value, false, err
	}
	if !found {
		return value, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, nil
	}
	return value, true, nil
}

// Set encodes value as JSON and stores it for owner/id under this
// namespace's TTL.
func (t *Typed[T]) Set(ctx context.Context, owner, id string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrEncoding, err)
	}
	return t.cache.Set(ctx, Key(t.ns, owner, id), raw, t.ttl)
}

// Invalidate removes the cached entry for owner/id, e.g. after an update to
// the underlying FilePreset or SystemAiAgent row.
func (t *Typed[T]) Invalidate(ctx context.Context, owner, id string) error {
	_, err := t.cache.Delete(ctx, Key(t.ns, owner, id))
	return err
}
