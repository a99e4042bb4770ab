// Package linkage implements reference-counted cleanup for resources shared
// between groups through association rows.
package linkage

import (
	"context"
	"errors"
)

var ErrLinkNotFound = errors.New("resource is not linked to group")

// Links is the association table of one resource kind. Implementations are
// expected to be bound to the caller's transaction.
type Links interface {
	Unlink(ctx context.Context, resourceID int64, groupID string) (bool, error)
	CountLinks(ctx context.Context, resourceID int64) (int64, error)
	DeleteResource(ctx context.Context, resourceID int64) error
}

// Release removes the association between resourceID and groupID and deletes
// the resource once no group references it. It reports whether the resource
// row was deleted.
func Release(ctx context.Context, links Links, resourceID int64, groupID string) (bool, error) {
	removed, err := links.Unlink(ctx, resourceID, groupID)
	if err != nil {
		return false, err
	}
	if !removed {
		return false, ErrLinkNotFound
	}

	remaining, err := links.CountLinks(ctx, resourceID)
	if err != nil {
		return false, err
	}
	if remaining > 0 {
		return false, nil
	}

	if err := links.DeleteResource(ctx, resourceID); err != nil {
		return false, err
	}
	return true, nil
}

// UniqueIDs drops repeated ids, keeping first-seen order.
func UniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
