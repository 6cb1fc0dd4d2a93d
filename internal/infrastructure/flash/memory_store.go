package flash

import (
	"context"
	"sync"
	"time"

	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
	"github.com/mumanal/actualizacion-datos/internal/domain/repository"
)

type memoryEntry struct {
	banner  entity.Banner
	expires time.Time
}

// MemoryStore is the single-process fallback used when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Set(_ context.Context, sessionID string, b entity.Banner) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)
	s.entries[sessionID] = memoryEntry{banner: b, expires: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, sessionID string) (entity.Banner, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionID]
	if !ok {
		return entity.Banner{}, false, nil
	}
	delete(s.entries, sessionID)
	if !s.now().Before(e.expires) {
		return entity.Banner{}, false, nil
	}
	return e.banner, true, nil
}

// sweep drops expired entries; callers hold mu.
func (s *MemoryStore) sweep(now time.Time) {
	for k, e := range s.entries {
		if !now.Before(e.expires) {
			delete(s.entries, k)
		}
	}
}

var _ repository.BannerStore = (*MemoryStore)(nil)
