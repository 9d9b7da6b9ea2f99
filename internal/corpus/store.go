package corpus

import (
	"context"
	"sync"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/sanjayganatra/satsang-qa-portal/internal/model"
)

// Snapshot is an immutable view of the loaded corpus. EmbedTexts is aligned
// with Records by index and is the exact tuple the embedding index is keyed
// on.
type Snapshot struct {
	Records    []*model.Record
	EmbedTexts []string
	BuiltAt    time.Time
}

// Store caches the latest snapshot with a TTL. The build path runs under a
// mutex so concurrent requests racing on a cold or expired cache trigger a
// single fetch; everyone else waits and reuses the result. Reads of a fresh
// snapshot only take the lock long enough to copy the pointer.
type Store struct {
	mu      sync.Mutex
	loader  *Loader
	ttl     time.Duration
	snap    *Snapshot
	expires time.Time
}

func NewStore(loader *Loader, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Store{loader: loader, ttl: ttl}
}

// Get returns the cached snapshot, rebuilding it when expired.
func (s *Store) Get(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap != nil && time.Now().Before(s.expires) {
		return s.snap, nil
	}
	return s.rebuildLocked(ctx)
}

// Refresh forces a rebuild regardless of TTL. The scheduler uses it so user
// requests rarely pay the fetch cost.
func (s *Store) Refresh(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuildLocked(ctx)
}

func (s *Store) rebuildLocked(ctx context.Context) (*Snapshot, error) {
	records, err := s.loader.Load(ctx)
	if err != nil {
		// Serve the stale snapshot if one exists; a transient fetch
		// failure should not take search down mid-flight.
		if s.snap != nil {
			logutil.GetLogger(ctx).Warn("corpus refresh failed, serving stale snapshot", zap.Error(err))
			return s.snap, nil
		}
		return nil, err
	}
	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = rec.EmbedText
	}
	s.snap = &Snapshot{Records: records, EmbedTexts: texts, BuiltAt: time.Now()}
	s.expires = s.snap.BuiltAt.Add(s.ttl)
	logutil.GetLogger(ctx).Info("corpus snapshot rebuilt", zap.Int("records", len(records)))
	return s.snap, nil
}
