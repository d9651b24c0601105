package commands

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"imgtag/internal/domain"
	"imgtag/internal/ports"
)

// DefaultWorkers bounds the per-file worker pool of batch commands.
const DefaultWorkers = 4

// runBatch processes assets across a bounded worker pool. fn is called
// once per asset; its outcome is recorded by the caller, so fn never
// returns an error and a failing file never aborts the batch. The only
// early exit is context cancellation, and files already processed at
// that point keep their committed state.
func runBatch(ctx context.Context, assets []*domain.ImageAsset, workers int, fn func(*domain.ImageAsset)) error {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, asset := range assets {
		if err := gctx.Err(); err != nil {
			break
		}
		asset := asset
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn(asset)
			return nil
		})
	}

	// gctx is canceled as a side effect of Wait returning, so the
	// caller's context decides whether the batch was interrupted.
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// lockedStore serializes access to a tag store that is not safe for
// concurrent use (the exiftool adapter drives a single subprocess).
// Workers still overlap on tokenization and planning; only the
// metadata I/O itself is serialized.
type lockedStore struct {
	mu    sync.Mutex
	inner ports.TagStore
}

// LockStore wraps a store for shared use by batch workers.
func LockStore(store ports.TagStore) ports.TagStore {
	return &lockedStore{inner: store}
}

func (s *lockedStore) ReadTags(path string) (domain.TagSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.ReadTags(path)
}

func (s *lockedStore) WriteTags(path string, tags domain.TagSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.WriteTags(path, tags)
}

func (s *lockedStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Close()
}
