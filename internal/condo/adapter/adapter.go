// Package adapter is the stable façade external callers talk to. It holds
// an atomic reference to the currently active governance engine so the
// implementation can be swapped without callers learning a new surface,
// and computes the paginated reads the engine does not expose directly.
package adapter

import (
	"context"
	"sync/atomic"

	"condogov/internal/condo/models"
	dErrors "condogov/pkg/domain-errors"
	"condogov/pkg/requestcontext"
)

// Implementation is the governance surface the adapter forwards to.
// *engine.Engine satisfies it; tests may substitute fakes.
type Implementation interface {
	AddResident(ctx context.Context, wallet models.Address, residenceID int) error
	RemoveResident(ctx context.Context, wallet models.Address) error
	SetCounselor(ctx context.Context, wallet models.Address, enable bool) error
	SetManager(ctx context.Context, newManager models.Address) (models.Receipt, error)

	AddTopic(ctx context.Context, title, description string, category models.Category, amount int64, responsible models.Address) (models.Receipt, error)
	EditTopic(ctx context.Context, title, description string, amount int64, responsible models.Address) error
	RemoveTopic(ctx context.Context, title string) (models.Receipt, error)
	OpenVoting(ctx context.Context, title string) (models.Receipt, error)
	CloseVoting(ctx context.Context, title string) (models.Receipt, error)
	Vote(ctx context.Context, title string, option models.Option) error
	Transfer(ctx context.Context, title string, amount int64) (models.Receipt, error)
	PayQuota(ctx context.Context, residenceID int, amount int64) error

	ResidenceExists(ctx context.Context, residenceID int) bool
	IsResident(ctx context.Context, wallet models.Address) bool
	GetResident(ctx context.Context, wallet models.Address) (models.Resident, error)
	Residents(ctx context.Context) []models.Resident
	TopicExists(ctx context.Context, title string) bool
	GetTopic(ctx context.Context, title string) (models.Topic, error)
	Topics(ctx context.Context) []models.Topic
	NumberOfVotes(ctx context.Context, title string) int
	GetVotes(ctx context.Context, title string) []models.Vote
	MonthlyQuota(ctx context.Context) int64
	Manager(ctx context.Context) models.Address
	TreasuryBalance(ctx context.Context) int64
	BalanceOf(ctx context.Context, wallet models.Address) int64
}

// implRef wraps the interface value so atomic.Value never sees two
// inconsistently typed stores.
type implRef struct {
	impl Implementation
}

// Adapter forwards every call to the active implementation. Its manager
// is fixed at construction to the deployer and is the only wallet allowed
// to upgrade.
type Adapter struct {
	manager models.Address
	current atomic.Value // implRef
}

// New builds an adapter owned by manager with no active implementation.
// Every forwarding call fails NotUpgraded until Upgrade succeeds.
func New(manager models.Address) *Adapter {
	return &Adapter{manager: manager.Normalized()}
}

// errNotUpgraded is returned by every forwarding call made before the
// first upgrade.
func errNotUpgraded() error {
	return dErrors.New(dErrors.CodeNotUpgraded, "you must upgrade first")
}

// Upgrade atomically replaces the active implementation. Only the
// adapter's own manager may call it.
func (a *Adapter) Upgrade(ctx context.Context, impl Implementation) error {
	if !requestcontext.Wallet(ctx).Equal(a.manager) {
		return dErrors.New(dErrors.CodeForbidden, "you do not have permission to upgrade")
	}
	if impl == nil {
		return dErrors.New(dErrors.CodeInvalidAddress, "the implementation must not be empty")
	}
	a.current.Store(implRef{impl: impl})
	return nil
}

// Current returns the active implementation, or nil before any upgrade.
func (a *Adapter) Current() Implementation {
	if ref, ok := a.current.Load().(implRef); ok {
		return ref.impl
	}
	return nil
}

// AdapterManager returns the wallet allowed to upgrade this adapter.
func (a *Adapter) AdapterManager() models.Address {
	return a.manager
}

func (a *Adapter) AddResident(ctx context.Context, wallet models.Address, residenceID int) error {
	impl := a.Current()
	if impl == nil {
		return errNotUpgraded()
	}
	return impl.AddResident(ctx, wallet, residenceID)
}

func (a *Adapter) RemoveResident(ctx context.Context, wallet models.Address) error {
	impl := a.Current()
	if impl == nil {
		return errNotUpgraded()
	}
	return impl.RemoveResident(ctx, wallet)
}

func (a *Adapter) SetCounselor(ctx context.Context, wallet models.Address, enable bool) error {
	impl := a.Current()
	if impl == nil {
		return errNotUpgraded()
	}
	return impl.SetCounselor(ctx, wallet, enable)
}

func (a *Adapter) SetManager(ctx context.Context, newManager models.Address) (models.Receipt, error) {
	impl := a.Current()
	if impl == nil {
		return models.Receipt{}, errNotUpgraded()
	}
	return impl.SetManager(ctx, newManager)
}

func (a *Adapter) AddTopic(ctx context.Context, title, description string, category models.Category, amount int64, responsible models.Address) (models.Receipt, error) {
	impl := a.Current()
	if impl == nil {
		return models.Receipt{}, errNotUpgraded()
	}
	return impl.AddTopic(ctx, title, description, category, amount, responsible)
}

func (a *Adapter) EditTopic(ctx context.Context, title, description string, amount int64, responsible models.Address) error {
	impl := a.Current()
	if impl == nil {
		return errNotUpgraded()
	}
	return impl.EditTopic(ctx, title, description, amount, responsible)
}

func (a *Adapter) RemoveTopic(ctx context.Context, title string) (models.Receipt, error) {
	impl := a.Current()
	if impl == nil {
		return models.Receipt{}, errNotUpgraded()
	}
	return impl.RemoveTopic(ctx, title)
}

func (a *Adapter) OpenVoting(ctx context.Context, title string) (models.Receipt, error) {
	impl := a.Current()
	if impl == nil {
		return models.Receipt{}, errNotUpgraded()
	}
	return impl.OpenVoting(ctx, title)
}

func (a *Adapter) CloseVoting(ctx context.Context, title string) (models.Receipt, error) {
	impl := a.Current()
	if impl == nil {
		return models.Receipt{}, errNotUpgraded()
	}
	return impl.CloseVoting(ctx, title)
}

func (a *Adapter) Vote(ctx context.Context, title string, option models.Option) error {
	impl := a.Current()
	if impl == nil {
		return errNotUpgraded()
	}
	return impl.Vote(ctx, title, option)
}

func (a *Adapter) Transfer(ctx context.Context, title string, amount int64) (models.Receipt, error) {
	impl := a.Current()
	if impl == nil {
		return models.Receipt{}, errNotUpgraded()
	}
	return impl.Transfer(ctx, title, amount)
}

func (a *Adapter) PayQuota(ctx context.Context, residenceID int, amount int64) error {
	impl := a.Current()
	if impl == nil {
		return errNotUpgraded()
	}
	return impl.PayQuota(ctx, residenceID, amount)
}

func (a *Adapter) ResidenceExists(ctx context.Context, residenceID int) (bool, error) {
	impl := a.Current()
	if impl == nil {
		return false, errNotUpgraded()
	}
	return impl.ResidenceExists(ctx, residenceID), nil
}

func (a *Adapter) IsResident(ctx context.Context, wallet models.Address) (bool, error) {
	impl := a.Current()
	if impl == nil {
		return false, errNotUpgraded()
	}
	return impl.IsResident(ctx, wallet), nil
}

func (a *Adapter) GetResident(ctx context.Context, wallet models.Address) (models.Resident, error) {
	impl := a.Current()
	if impl == nil {
		return models.Resident{}, errNotUpgraded()
	}
	return impl.GetResident(ctx, wallet)
}

func (a *Adapter) TopicExists(ctx context.Context, title string) (bool, error) {
	impl := a.Current()
	if impl == nil {
		return false, errNotUpgraded()
	}
	return impl.TopicExists(ctx, title), nil
}

func (a *Adapter) GetTopic(ctx context.Context, title string) (models.Topic, error) {
	impl := a.Current()
	if impl == nil {
		return models.Topic{}, errNotUpgraded()
	}
	return impl.GetTopic(ctx, title)
}

func (a *Adapter) NumberOfVotes(ctx context.Context, title string) (int, error) {
	impl := a.Current()
	if impl == nil {
		return 0, errNotUpgraded()
	}
	return impl.NumberOfVotes(ctx, title), nil
}

// GetVotes lists the votes cast on a topic through the active
// implementation.
func (a *Adapter) GetVotes(ctx context.Context, title string) ([]models.Vote, error) {
	impl := a.Current()
	if impl == nil {
		return nil, errNotUpgraded()
	}
	return impl.GetVotes(ctx, title), nil
}

func (a *Adapter) MonthlyQuota(ctx context.Context) (int64, error) {
	impl := a.Current()
	if impl == nil {
		return 0, errNotUpgraded()
	}
	return impl.MonthlyQuota(ctx), nil
}

func (a *Adapter) Manager(ctx context.Context) (models.Address, error) {
	impl := a.Current()
	if impl == nil {
		return "", errNotUpgraded()
	}
	return impl.Manager(ctx), nil
}

func (a *Adapter) TreasuryBalance(ctx context.Context) (int64, error) {
	impl := a.Current()
	if impl == nil {
		return 0, errNotUpgraded()
	}
	return impl.TreasuryBalance(ctx), nil
}

func (a *Adapter) BalanceOf(ctx context.Context, wallet models.Address) (int64, error) {
	impl := a.Current()
	if impl == nil {
		return 0, errNotUpgraded()
	}
	return impl.BalanceOf(ctx, wallet), nil
}

// GetResidents returns one page of the resident collection. Pages are
// 1-based; a page past the end returns exactly pageSize zero records and
// the true total, never an error.
func (a *Adapter) GetResidents(ctx context.Context, page, pageSize int) (models.ResidentPage, error) {
	impl := a.Current()
	if impl == nil {
		return models.ResidentPage{}, errNotUpgraded()
	}
	if page < 1 || pageSize < 1 {
		return models.ResidentPage{}, dErrors.New(dErrors.CodeBadRequest, "page and page size must be positive")
	}
	all := impl.Residents(ctx)
	out := models.ResidentPage{
		Residents: make([]models.Resident, pageSize),
		Total:     len(all),
	}
	copy(out.Residents, slice(all, page, pageSize))
	return out, nil
}

// GetTopics returns one page of the topic collection, DELETED topics
// included so the total reflects every topic ever created.
func (a *Adapter) GetTopics(ctx context.Context, page, pageSize int) (models.TopicPage, error) {
	impl := a.Current()
	if impl == nil {
		return models.TopicPage{}, errNotUpgraded()
	}
	if page < 1 || pageSize < 1 {
		return models.TopicPage{}, dErrors.New(dErrors.CodeBadRequest, "page and page size must be positive")
	}
	all := impl.Topics(ctx)
	out := models.TopicPage{
		Topics: make([]models.Topic, pageSize),
		Total:  len(all),
	}
	copy(out.Topics, slice(all, page, pageSize))
	return out, nil
}

// slice cuts the 1-based page out of the full collection, empty when the
// page starts past the end.
func slice[T any](all []T, page, pageSize int) []T {
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}
