package store

import (
	"context"
	"time"

	"github.com/aurorah/streamcore/cache"
)

// CachedStore decorates a Store with a read-through cache for FilePreset
// lookups, which are effectively static per preset_id and are read once per
// translation run.
type CachedStore struct {
	Store
	presets cache.Typed[FilePreset]
}

// NewCachedStore wraps inner with c, caching FilePreset reads for ttl;
// ttl <= 0 falls back to 10m.
func NewCachedStore(inner Store, c cache.Cache, ttl time.Duration) *CachedStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedStore{
		Store:   inner,
		presets: *cache.NewTyped[FilePreset](c, cache.NamespaceFilePreset, ttl),
	}
}

func (s *CachedStore) GetFilePreset(ctx context.Context, principal, presetID string) (*FilePreset, error) {
	if preset, found, err := s.presets.Get(ctx, principal, presetID); err == nil && found {
		return &preset, nil
	}

	preset, err := s.Store.GetFilePreset(ctx, principal, presetID)
	if err != nil {
		return nil, err
	}

	_ = s.presets.Set(ctx, principal, presetID, *preset)
	return preset, nil
}
