package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/presencelabs/facemark/internal/facemark/store"
)

// ErrDirectoryUnavailable means no identities are enrolled, so a session
// has nothing to recognize against and must refuse to start.
var ErrDirectoryUnavailable = errors.New("identity directory unavailable: no identities enrolled")

// IdentityInfo is the enrollment metadata the session needs per label.
type IdentityInfo struct {
	ExternalID  string
	DisplayName string
}

// Directory is an immutable label→identity snapshot built once at session
// start.  Identities enrolled while a session is running are not visible
// until the next session loads a fresh snapshot; that staleness window is
// accepted, not a bug.
type Directory struct {
	byLabel map[int64]IdentityInfo
}

func LoadDirectory(ctx context.Context, identities store.IdentityStore) (*Directory, error) {
	all, err := identities.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load directory: %w", err)
	}
	if len(all) == 0 {
		return nil, ErrDirectoryUnavailable
	}

	byLabel := make(map[int64]IdentityInfo, len(all))
	for _, ident := range all {
		byLabel[ident.ID] = IdentityInfo{
			ExternalID:  ident.ExternalID,
			DisplayName: ident.DisplayName,
		}
	}
	return &Directory{byLabel: byLabel}, nil
}

func (d *Directory) Lookup(label int64) (IdentityInfo, bool) {
	info, ok := d.byLabel[label]
	return info, ok
}

func (d *Directory) Size() int { return len(d.byLabel) }
