package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/presencelabs/facemark/internal/facemark/types"
)

type dayKey struct {
	identityID int64
	day        string
}

// AttendanceStore is an in-memory ledger with the same insert-if-absent
// semantics as the SQLite store.  Tests use it directly; the Inserts
// counter lets them assert how many write attempts actually reached the
// ledger.
type AttendanceStore struct {
	mu         sync.Mutex
	identities *IdentityStore
	records    map[dayKey]types.AttendanceRecord
	inserts    int
}

func NewAttendanceStore(identities *IdentityStore) *AttendanceStore {
	return &AttendanceStore{
		identities: identities,
		records:    make(map[dayKey]types.AttendanceRecord),
	}
}

func (s *AttendanceStore) InsertIfAbsent(_ context.Context, rec types.AttendanceRecord) (bool, error) {
	if rec.Status == "" {
		rec.Status = types.StatusPresent
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.inserts++

	k := dayKey{identityID: rec.IdentityID, day: rec.Day}
	if _, ok := s.records[k]; ok {
		return false, nil
	}
	s.records[k] = rec
	return true, nil
}

func (s *AttendanceStore) ListByDate(ctx context.Context, day string) ([]types.AttendanceRow, error) {
	s.mu.Lock()
	var recs []types.AttendanceRecord
	for k, rec := range s.records {
		if k.day == day {
			recs = append(recs, rec)
		}
	}
	s.mu.Unlock()

	sort.Slice(recs, func(i, j int) bool { return recs[i].Clock < recs[j].Clock })
	return s.join(ctx, recs)
}

func (s *AttendanceStore) ListAll(ctx context.Context) ([]types.AttendanceRow, error) {
	s.mu.Lock()
	recs := make([]types.AttendanceRecord, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	s.mu.Unlock()

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Day != recs[j].Day {
			return recs[i].Day > recs[j].Day
		}
		return recs[i].Clock > recs[j].Clock
	})
	return s.join(ctx, recs)
}

func (s *AttendanceStore) CountForIdentity(_ context.Context, identityID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for k := range s.records {
		if k.identityID == identityID {
			n++
		}
	}
	return n, nil
}

// InsertAttempts returns how many InsertIfAbsent calls were made, including
// ones rejected as duplicates.  Test-only helper.
func (s *AttendanceStore) InsertAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inserts
}

func (s *AttendanceStore) join(_ context.Context, recs []types.AttendanceRecord) ([]types.AttendanceRow, error) {
	s.identities.mu.RLock()
	defer s.identities.mu.RUnlock()

	out := make([]types.AttendanceRow, 0, len(recs))
	for _, rec := range recs {
		ident := s.identities.byID[rec.IdentityID]
		out = append(out, types.AttendanceRow{
			DisplayName: ident.DisplayName,
			ExternalID:  ident.ExternalID,
			Day:         rec.Day,
			Clock:       rec.Clock,
			Status:      rec.Status,
		})
	}
	return out, nil
}
