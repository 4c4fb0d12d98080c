package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// defaultBackfillTTL bounds how long a value promoted from L2 into L1 stays
// hot there. It is intentionally shorter than most store TTLs (FilePreset
// reads use 10m, see store.NewCachedStore) so a stale L1 entry can't outlive
// a few run cycles.
const defaultBackfillTTL = 2 * time.Minute

// LayeredCache fronts a slower, shared cache (l2, normally Redis so every
// server/host process sees the same FilePreset and SystemAiAgent lookups)
// with a faster process-local one (l1, normally an LRUAdapter). Reads check
// l1 first; a miss falls through to l2 and backfills l1 on the way out.
// Writes go to both layers so a later read from either process is warm.
type LayeredCache struct {
	l1          Cache
	l2          Cache
	backfillTTL time.Duration
	log         *slog.Logger
}

// NewLayeredCache pairs a local cache (l1) with a shared one (l2). backfillTTL
// overrides how long values promoted from l2 live in l1; zero uses
// defaultBackfillTTL.
func NewLayeredCache(l1, l2 Cache, backfillTTL time.Duration, log *slog.Logger) (*LayeredCache, error) {
	if l1 == nil || l2 == nil {
		return nil, errors.New("cache: both L1 and L2 caches must be provided")
	}
	if backfillTTL <= 0 {
		backfillTTL = defaultBackfillTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &LayeredCache{l1: l1, l2: l2, backfillTTL: backfillTTL, log: log}, nil
}

// Get retrieves an item, checking L1 then L2.
// If found in L2 but not L1, it's added to L1 before returning.
func (lc *LayeredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, found, err := lc.l1.Get(ctx, key)
	if err != nil {
		lc.log.Warn("layered cache: l1 get failed, falling through to l2", "key", key, "error", err)
	}
	if found {
		return val, true, nil
	}

	val, found, err = lc.l2.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("layered cache: l2 get failed for key %q: %w", key, err)
	}
	if !found {
		return nil, false, nil
	}

	if setErr := lc.l1.Set(ctx, key, val, lc.backfillTTL); setErr != nil {
		lc.log.Warn("layered cache: l1 backfill failed", "key", key, "error", setErr)
	}

	return val, true, nil
}

// Set adds an item to both L1 and L2 caches concurrently.
func (lc *LayeredCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	eg, childCtx := errgroup.WithContext(ctx)

	// Set in L1
	eg.Go(func() error {
		// Use a potentially shorter TTL for L1 if needed, or the same TTL.
		// Using the same TTL for now.
		err := lc.l1.Set(childCtx, key, value, ttl)
		if err != nil {
			// Log L1 set error? Return it to potentially signal partial failure.
			lc.log.Warn("layered cache: l1 set failed", "key", key, "error", err)
			return fmt.Errorf("L1 set failed: %w", err)
		}
		return nil
	})

	// Set in L2
	eg.Go(func() error {
		err := lc.l2.Set(childCtx, key, value, ttl)
		if err != nil {
			lc.log.Warn("layered cache: l2 set failed", "key", key, "error", err)
			return fmt.Errorf("L2 set failed: %w", err)
		}
		return nil
	})

	// Wait for both operations
	if err := eg.Wait(); err != nil {
		// Return the combined/first error
		return errors.Join(ErrOperationFailed, err)
	}

	return nil
}

// Delete removes an item from both L1 and L2 caches concurrently.
// Returns true if the item was deleted from L2 (considered the source of truth).
func (lc *LayeredCache) Delete(ctx context.Context, key string) (bool, error) {
	eg, childCtx := errgroup.WithContext(ctx)
	var deletedL2 bool
	var deleteL2Err error

	// Delete from L1 (best effort)
	eg.Go(func() error {
		_, err := lc.l1.Delete(childCtx, key)
		if err != nil {
			lc.log.Warn("layered cache: l1 delete failed", "key", key, "error", err)
			// Don't return error here, L2 is the source of truth for deletion status
		}
		return nil // L1 deletion is best effort
	})

	// Delete from L2
	eg.Go(func() error {
		var err error
		deletedL2, err = lc.l2.Delete(childCtx, key)
		if err != nil {
			lc.log.Warn("layered cache: l2 delete failed", "key", key, "error", err)
			deleteL2Err = fmt.Errorf("L2 delete failed: %w", err)
			return deleteL2Err // Propagate L2 error
		}
		return nil
	})

	// Wait for both operations
	waitErr := eg.Wait() // This will capture deleteL2Err if it occurred

	if waitErr != nil {
		return false, errors.Join(ErrOperationFailed, waitErr)
	}

	return deletedL2, nil // Return L2 deletion status
}

// Exists checks if an item exists, checking L1 then L2.
func (lc *LayeredCache) Exists(ctx context.Context, key string) (bool, error) {
	// 1. Check L1
	exists, err := lc.l1.Exists(ctx, key)
	if err != nil {
		lc.log.Warn("layered cache: l1 exists check failed", "key", key, "error", err)
		// Proceed to check L2 even if L1 fails
	}
	if exists {
		return true, nil
	}

	// 2. Check L2
	exists, err = lc.l2.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("layered cache: l2 exists check failed for key %q: %w", key, err)
	}

	// If it exists in L2 but not L1, we don't backfill on Exists call.
	return exists, nil
}

// Flush removes all items from both L1 and L2 caches concurrently.
func (lc *LayeredCache) Flush(ctx context.Context) error {
	eg, childCtx := errgroup.WithContext(ctx)

	// Flush L1
	eg.Go(func() error {
		err := lc.l1.Flush(childCtx)
		if err != nil {
			lc.log.Warn("layered cache: l1 flush failed", "error", err)
			return fmt.Errorf("L1 flush failed: %w", err)
		}
		return nil
	})

	// Flush L2
	eg.Go(func() error {
		err := lc.l2.Flush(childCtx)
		if err != nil {
			lc.log.Warn("layered cache: l2 flush failed", "error", err)
			return fmt.Errorf("L2 flush failed: %w", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return errors.Join(ErrOperationFailed, err)
	}

	return nil
}

// Close closes both L1 and L2 cache connections concurrently.
func (lc *LayeredCache) Close() error {
	// Use a simple WaitGroup as context isn't directly applicable here
	var wg sync.WaitGroup
	var closeErrs []error
	var mu sync.Mutex

	wg.Add(2)

	// Close L1
	go func() {
		defer wg.Done()
		if err := lc.l1.Close(); err != nil {
			lc.log.Warn("layered cache: l1 close failed", "error", err)
			mu.Lock()
			closeErrs = append(closeErrs, fmt.Errorf("L1 close failed: %w", err))
			mu.Unlock()
		}
	}()

	// Close L2
	go func() {
		defer wg.Done()
		if err := lc.l2.Close(); err != nil {
			lc.log.Warn("layered cache: l2 close failed", "error", err)
			mu.Lock()
			closeErrs = append(closeErrs, fmt.Errorf("L2 close failed: %w", err))
			mu.Unlock()
		}
	}()

	wg.Wait()

	if len(closeErrs) > 0 {
		return errors.Join(closeErrs...)
	}

	return nil
}
