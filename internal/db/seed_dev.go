package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SeedDev inserts a couple of identities so a fresh dev database has
// something to recognize against.  INSERT OR IGNORE keeps it re-runnable.
func SeedDev(ctx context.Context, db *sql.DB) error {
	now := time.Now().UTC().UnixMilli()

	seed := []struct {
		externalID string
		name       string
	}{
		{"R100", "Alice Demo"},
		{"R101", "Bob Demo"},
	}

	for _, s := range seed {
		if _, err := db.ExecContext(ctx, `
INSERT OR IGNORE INTO identities(external_id, display_name, enrolled_at_ms)
VALUES (?, ?, ?);
`, s.externalID, s.name, now); err != nil {
			return fmt.Errorf("seed identity %s: %w", s.externalID, err)
		}
	}

	return nil
}
