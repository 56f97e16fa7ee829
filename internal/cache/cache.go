package cache

import (
	"context"
	"errors"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

// SnapshotCache holds the most recent available-inventory snapshot so
// repeated checkout-screen loads do not hammer the upstream API.
type SnapshotCache interface {
	Get(ctx context.Context) ([]domain.InventoryItem, error)
	Set(ctx context.Context, items []domain.InventoryItem) error
	Invalidate(ctx context.Context) error
}
