package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	dbpkg "github.com/presencelabs/facemark/internal/db"
	"github.com/presencelabs/facemark/internal/facemark/store"
	"github.com/presencelabs/facemark/internal/facemark/types"
)

type IdentityStore struct {
	db     *sql.DB
	writer *dbpkg.Worker
}

func NewIdentityStore(db *sql.DB, writer *dbpkg.Worker) *IdentityStore {
	return &IdentityStore{db: db, writer: writer}
}

func (s *IdentityStore) Add(ctx context.Context, externalID, displayName string, enrolledAt time.Time) (types.Identity, error) {
	externalID = strings.TrimSpace(externalID)
	displayName = strings.TrimSpace(displayName)
	if enrolledAt.IsZero() {
		enrolledAt = time.Now().UTC()
	}

	var id int64
	err := s.writer.Do(ctx, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO identities(external_id, display_name, enrolled_at_ms)
VALUES (?, ?, ?);
`, externalID, displayName, enrolledAt.UTC().UnixMilli())
		if err != nil {
			return fmt.Errorf("Add insert: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("Add rows affected: %w", err)
		}
		if n == 0 {
			return store.ErrDuplicateExternalID
		}

		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("Add last insert id: %w", err)
		}
		return nil
	})
	if err != nil {
		return types.Identity{}, err
	}

	return types.Identity{
		ID:          id,
		ExternalID:  externalID,
		DisplayName: displayName,
		EnrolledAt:  enrolledAt.UTC(),
	}, nil
}

func (s *IdentityStore) GetByExternalID(ctx context.Context, externalID string) (types.Identity, bool, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return types.Identity{}, false, nil
	}

	var (
		ident      types.Identity
		enrolledMs int64
	)
	err := s.db.QueryRowContext(ctx, `
SELECT identity_id, external_id, display_name, enrolled_at_ms
FROM identities
WHERE external_id = ?;
`, externalID).Scan(&ident.ID, &ident.ExternalID, &ident.DisplayName, &enrolledMs)
	if err == sql.ErrNoRows {
		return types.Identity{}, false, nil
	}
	if err != nil {
		return types.Identity{}, false, fmt.Errorf("GetByExternalID query: %w", err)
	}

	ident.EnrolledAt = time.UnixMilli(enrolledMs).UTC()
	return ident, true, nil
}

func (s *IdentityStore) ListAll(ctx context.Context) ([]types.Identity, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT identity_id, external_id, display_name, enrolled_at_ms
FROM identities
ORDER BY display_name;
`)
	if err != nil {
		return nil, fmt.Errorf("ListAll query: %w", err)
	}
	defer rows.Close()

	var out []types.Identity
	for rows.Next() {
		var (
			ident      types.Identity
			enrolledMs int64
		)
		if err := rows.Scan(&ident.ID, &ident.ExternalID, &ident.DisplayName, &enrolledMs); err != nil {
			return nil, fmt.Errorf("ListAll scan: %w", err)
		}
		ident.EnrolledAt = time.UnixMilli(enrolledMs).UTC()
		out = append(out, ident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListAll rows: %w", err)
	}
	return out, nil
}
