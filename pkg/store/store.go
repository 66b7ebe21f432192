package store

import (
	"context"
	"time"

	"github.com/wardenlock/warden/pkg/types"
)

// Store is the lease store: atomic create-if-absent, compare-and-renew and
// compare-and-delete on lock records keyed by resource. The store is the
// single serialization point; all operations are atomic with respect to each
// other for the same resource.
type Store interface {
	// TryCreate claims the resource for owner if no live record exists.
	// Returns the fencing token for the new grant, or ErrBusy if the
	// resource is held. An expired record is replaced in place.
	TryCreate(ctx context.Context, resource, owner string, ttl time.Duration) (uint64, error)

	// Renew extends the record's expiry by ttl from now.
	// Returns ErrNotOwner if owner does not hold the record and ErrExpired
	// if the record already lapsed.
	Renew(ctx context.Context, resource, owner string, ttl time.Duration) (time.Duration, error)

	// Release deletes the record if owner holds it, ErrNotOwner otherwise.
	Release(ctx context.Context, resource, owner string) error

	// Get returns the live record for resource, if any.
	Get(ctx context.Context, resource string) (*types.Record, bool, error)

	// Sweep reclaims every expired record and reports how many were removed.
	// The check-then-delete is atomic against Renew: a record renewed in the
	// meantime is never removed.
	Sweep(ctx context.Context) (int, error)

	Stats(ctx context.Context) (Stats, error)

	Close() error
}

// current store stats
type Stats struct {
	Records        int
	FencingCounter uint64
}
