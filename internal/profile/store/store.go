// Package store persists resident profile records. Implementations: an
// in-memory map for tests and single-node runs, and PostgreSQL for
// durable deployments.
package store

import (
	"context"

	condomodels "condogov/internal/condo/models"
	"condogov/internal/profile/models"
	dErrors "condogov/pkg/domain-errors"
)

var (
	// ErrNotFound keeps storage-specific 404s consistent across
	// implementations.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "profile not found")
	// ErrDuplicate signals a profile already exists for the wallet.
	ErrDuplicate = dErrors.New(dErrors.CodeDuplicate, "profile already exists")
)

// Store is the profile persistence surface.
type Store interface {
	Create(ctx context.Context, record models.Record) error
	Find(ctx context.Context, wallet condomodels.Address) (models.Record, error)
	Update(ctx context.Context, record models.Record) error
	Delete(ctx context.Context, wallet condomodels.Address) error
}
