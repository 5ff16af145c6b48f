// Package store holds the durable governance state: residences, residents,
// topics, votes, the treasury and the process-wide singletons (manager,
// monthly quota). The store carries no business rules; it enforces only
// storage-level uniqueness. The governance engine is its only writer.
package store

import (
	"context"
	"time"

	"condogov/internal/condo/models"
	dErrors "condogov/pkg/domain-errors"
)

var (
	// ErrNotFound keeps storage-level 404s consistent across
	// implementations.
	ErrNotFound = dErrors.New(dErrors.CodeNotFound, "record not found")
	// ErrDuplicate signals a uniqueness violation (wallet, title or
	// residence vote already present).
	ErrDuplicate = dErrors.New(dErrors.CodeDuplicate, "record already exists")
)

// Ledger is the storage surface the governance engine mutates. Every
// mutating engine call runs under the engine's lock, so implementations
// only need to be individually safe for concurrent use.
type Ledger interface {
	// Residences (fixed set, decided at construction).
	ResidenceExists(ctx context.Context, id int) bool
	Residences(ctx context.Context) []int

	// Residents. CreateResident fails ErrDuplicate on a known wallet;
	// UpdateResident and DeleteResident fail ErrNotFound. Deletion is
	// physical (swap-and-truncate), so listing order is not stable
	// across removals.
	CreateResident(ctx context.Context, r models.Resident) error
	FindResident(ctx context.Context, wallet models.Address) (models.Resident, error)
	UpdateResident(ctx context.Context, r models.Resident) error
	DeleteResident(ctx context.Context, wallet models.Address) error
	ListResidents(ctx context.Context) []models.Resident

	// Topics. Deletion is logical (the engine flips status to DELETED
	// via UpdateTopic), so listing order and indices stay stable.
	CreateTopic(ctx context.Context, t models.Topic) error
	FindTopic(ctx context.Context, title string) (models.Topic, error)
	UpdateTopic(ctx context.Context, t models.Topic) error
	ListTopics(ctx context.Context) []models.Topic

	// Votes, keyed by (topic title, residence).
	CreateVote(ctx context.Context, title string, v models.Vote) error
	ListVotes(ctx context.Context, title string) []models.Vote

	// Quota payments, keyed by residence id. A zero time means the
	// residence never paid.
	NextPayment(ctx context.Context, residenceID int) time.Time
	SetNextPayment(ctx context.Context, residenceID int, t time.Time)

	// Singletons and balances.
	Manager(ctx context.Context) models.Address
	SetManager(ctx context.Context, wallet models.Address)
	MonthlyQuota(ctx context.Context) int64
	SetMonthlyQuota(ctx context.Context, amount int64)
	TreasuryBalance(ctx context.Context) int64
	SetTreasuryBalance(ctx context.Context, amount int64)
	BalanceOf(ctx context.Context, wallet models.Address) int64
	SetBalance(ctx context.Context, wallet models.Address, amount int64)
}
