package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/presencelabs/facemark/internal/db"
	"github.com/presencelabs/facemark/internal/facemark/types"
)

type AttendanceStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewAttendanceStore(db *sql.DB, writer *dbpkg.Worker) *AttendanceStore {
	return &AttendanceStore{db: db, writer: writer}
}

// InsertIfAbsent relies on the UNIQUE(identity_id, day) constraint: INSERT
// OR IGNORE either writes the row or touches nothing, in one statement.
// There is deliberately no SELECT-then-INSERT here.
func (s *AttendanceStore) InsertIfAbsent(ctx context.Context, rec types.AttendanceRecord) (bool, error) {
	if rec.Status == "" {
		rec.Status = types.StatusPresent
	}
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now().UTC()
	}

	var inserted bool
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO attendance(identity_id, day, clock, status, recorded_at_ms)
VALUES (?, ?, ?, ?, ?);
`, rec.IdentityID, rec.Day, rec.Clock, string(rec.Status), rec.RecordedAt.UTC().UnixMilli())
		if err != nil {
			return fmt.Errorf("InsertIfAbsent insert: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("InsertIfAbsent rows affected: %w", err)
		}
		inserted = n > 0
		return nil
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}

func (s *AttendanceStore) ListByDate(ctx context.Context, day string) ([]types.AttendanceRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT i.display_name, i.external_id, a.day, a.clock, a.status
FROM attendance a
JOIN identities i ON a.identity_id = i.identity_id
WHERE a.day = ?
ORDER BY a.clock;
`, day)
	if err != nil {
		return nil, fmt.Errorf("ListByDate query: %w", err)
	}
	defer rows.Close()

	return scanRows(rows, "ListByDate")
}

func (s *AttendanceStore) ListAll(ctx context.Context) ([]types.AttendanceRow, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT i.display_name, i.external_id, a.day, a.clock, a.status
FROM attendance a
JOIN identities i ON a.identity_id = i.identity_id
ORDER BY a.day DESC, a.clock DESC;
`)
	if err != nil {
		return nil, fmt.Errorf("ListAll query: %w", err)
	}
	defer rows.Close()

	return scanRows(rows, "ListAll")
}

func (s *AttendanceStore) CountForIdentity(ctx context.Context, identityID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance WHERE identity_id = ?;`, identityID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountForIdentity query: %w", err)
	}
	return n, nil
}

func scanRows(rows *sql.Rows, op string) ([]types.AttendanceRow, error) {
	var out []types.AttendanceRow
	for rows.Next() {
		var (
			r      types.AttendanceRow
			status string
		)
		if err := rows.Scan(&r.DisplayName, &r.ExternalID, &r.Day, &r.Clock, &status); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		r.Status = types.Status(status)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return out, nil
}
