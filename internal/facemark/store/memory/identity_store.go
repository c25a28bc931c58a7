package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/presencelabs/facemark/internal/facemark/store"
	"github.com/presencelabs/facemark/internal/facemark/types"
)

// IdentityStore is an in-memory identity table for tests and dev runs.
type IdentityStore struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]types.Identity
	byExt  map[string]int64
}

func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		nextID: 1,
		byID:   make(map[int64]types.Identity),
		byExt:  make(map[string]int64),
	}
}

func (s *IdentityStore) Add(_ context.Context, externalID, displayName string, enrolledAt time.Time) (types.Identity, error) {
	externalID = strings.TrimSpace(externalID)
	displayName = strings.TrimSpace(displayName)
	if enrolledAt.IsZero() {
		enrolledAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byExt[externalID]; ok {
		return types.Identity{}, store.ErrDuplicateExternalID
	}

	ident := types.Identity{
		ID:          s.nextID,
		ExternalID:  externalID,
		DisplayName: displayName,
		EnrolledAt:  enrolledAt.UTC(),
	}
	s.nextID++
	s.byID[ident.ID] = ident
	s.byExt[externalID] = ident.ID
	return ident, nil
}

func (s *IdentityStore) GetByExternalID(_ context.Context, externalID string) (types.Identity, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byExt[strings.TrimSpace(externalID)]
	if !ok {
		return types.Identity{}, false, nil
	}
	return s.byID[id], true, nil
}

func (s *IdentityStore) ListAll(_ context.Context) ([]types.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Identity, 0, len(s.byID))
	for _, ident := range s.byID {
		out = append(out, ident)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}
