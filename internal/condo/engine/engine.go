// Package engine implements the condominium governance state machine:
// resident and role lifecycle, topic lifecycle, vote casting and tallying,
// quota payment and treasury transfers. Caller identity and the current
// time come from the request context; every mutating call either fully
// applies its transition and side effects or fails leaving state unchanged.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	condometrics "condogov/internal/condo/metrics"
	"condogov/internal/condo/models"
	"condogov/internal/condo/store"
	dErrors "condogov/pkg/domain-errors"
	"condogov/pkg/requestcontext"
)

// paymentCycle is the length of one paid-for period. Accrual is strictly
// additive: paying late never shortens the next cycle.
const paymentCycle = 30 * 24 * time.Hour

// quorum is the minimum number of cast votes required to close a voting
// round, per topic category.
var quorum = map[models.Category]int{
	models.CategoryDecision:      5,
	models.CategorySpent:         10,
	models.CategoryChangeManager: 15,
	models.CategoryChangeQuota:   20,
}

// EventSink receives domain events emitted by successful mutating calls.
// Delivery is best-effort and must never block the caller.
type EventSink interface {
	Emit(ctx context.Context, event models.Event)
}

// Engine is the governance state machine. A single mutex serializes all
// mutating calls so check-then-act sequences are atomic over the ledger.
type Engine struct {
	mu      sync.Mutex
	ledger  store.Ledger
	logger  *slog.Logger
	metrics *condometrics.Metrics
	events  EventSink
}

// Option configures optional engine collaborators.
type Option func(*Engine)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics attaches governance metrics.
func WithMetrics(m *condometrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithEventSink attaches a sink for emitted domain events.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) { e.events = sink }
}

// New builds an engine over the given ledger and installs owner as the
// initial manager.
func New(ledger store.Ledger, owner models.Address, opts ...Option) *Engine {
	e := &Engine{ledger: ledger, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	ledger.SetManager(context.Background(), owner)
	return e
}

func (e *Engine) caller(ctx context.Context) models.Address {
	return requestcontext.Wallet(ctx)
}

func (e *Engine) isManager(ctx context.Context, wallet models.Address) bool {
	return !wallet.IsZero() && wallet.Equal(e.ledger.Manager(ctx))
}

func (e *Engine) isResident(ctx context.Context, wallet models.Address) bool {
	_, err := e.ledger.FindResident(ctx, wallet)
	return err == nil
}

func (e *Engine) isCounselor(ctx context.Context, wallet models.Address) bool {
	r, err := e.ledger.FindResident(ctx, wallet)
	return err == nil && r.IsCounselor
}

// defaulted reports whether the residence's paid-for period has lapsed.
// A residence that never paid has a zero NextPayment and is in default.
func (e *Engine) defaulted(ctx context.Context, residenceID int, now time.Time) bool {
	return now.After(e.ledger.NextPayment(ctx, residenceID))
}

func (e *Engine) emit(ctx context.Context, events ...models.Event) models.Receipt {
	if e.events != nil {
		for _, ev := range events {
			e.events.Emit(ctx, ev)
		}
	}
	return models.Receipt{Events: events}
}

// AddResident registers a wallet as the occupant of a residence. Only the
// manager or a counselor may call it.
func (e *Engine) AddResident(ctx context.Context, wallet models.Address, residenceID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	caller := e.caller(ctx)
	if !e.isManager(ctx, caller) && !e.isCounselor(ctx, caller) {
		return dErrors.New(dErrors.CodeForbidden, "only the manager or the counselors can do this")
	}
	if wallet.IsZero() {
		return dErrors.New(dErrors.CodeInvalidAddress, "the resident wallet must be a valid address")
	}
	if !e.ledger.ResidenceExists(ctx, residenceID) {
		return dErrors.New(dErrors.CodeUnknownResidence, "this residence does not exist")
	}
	err := e.ledger.CreateResident(ctx, models.Resident{
		Wallet:    wallet,
		Residence: residenceID,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return dErrors.New(dErrors.CodeDuplicate, "this wallet is already a resident")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to add resident")
	}
	return nil
}

// RemoveResident deletes a resident record. Counselors are protected and
// must be demoted first.
func (e *Engine) RemoveResident(ctx context.Context, wallet models.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isManager(ctx, e.caller(ctx)) {
		return dErrors.New(dErrors.CodeForbidden, "only the manager can do this")
	}
	if wallet.IsZero() {
		return dErrors.New(dErrors.CodeInvalidAddress, "the resident wallet must be a valid address")
	}
	resident, err := e.ledger.FindResident(ctx, wallet)
	if err != nil {
		return dErrors.New(dErrors.CodeNotFound, "this wallet is not a resident")
	}
	if resident.IsCounselor {
		return dErrors.New(dErrors.CodeProtectedRole, "a counselor cannot be removed")
	}
	if err := e.ledger.DeleteResident(ctx, wallet); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove resident")
	}
	return nil
}

// SetCounselor toggles the counselor flag on a resident.
func (e *Engine) SetCounselor(ctx context.Context, wallet models.Address, enable bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isManager(ctx, e.caller(ctx)) {
		return dErrors.New(dErrors.CodeForbidden, "only the manager can do this")
	}
	if wallet.IsZero() {
		return dErrors.New(dErrors.CodeInvalidAddress, "the counselor wallet must be a valid address")
	}
	resident, err := e.ledger.FindResident(ctx, wallet)
	if enable {
		if err != nil {
			return dErrors.New(dErrors.CodeNotFound, "the counselor must be an existing resident")
		}
		resident.IsCounselor = true
	} else {
		if err != nil || !resident.IsCounselor {
			return dErrors.New(dErrors.CodeNotFound, "this wallet is not a counselor")
		}
		resident.IsCounselor = false
	}
	if err := e.ledger.UpdateResident(ctx, resident); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update counselor flag")
	}
	return nil
}

// SetManager replaces the manager directly, without a vote. The approved
// CHANGE_MANAGER path goes through CloseVoting.
func (e *Engine) SetManager(ctx context.Context, newManager models.Address) (models.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isManager(ctx, e.caller(ctx)) {
		return models.Receipt{}, dErrors.New(dErrors.CodeForbidden, "only the manager can do this")
	}
	if newManager.IsZero() {
		return models.Receipt{}, dErrors.New(dErrors.CodeInvalidAddress, "the manager wallet must be a valid address")
	}
	e.ledger.SetManager(ctx, newManager)
	return e.emit(ctx, models.Event{
		Kind:    models.EventManagerChanged,
		Manager: newManager.Normalized(),
		At:      requestcontext.Now(ctx),
	}), nil
}

// AddTopic creates a proposal in IDLE. The caller must be the manager or a
// resident whose quota payments are up to date. An amount is only legal
// for SPENT and CHANGE_QUOTA topics. An empty responsible defaults to the
// caller.
func (e *Engine) AddTopic(ctx context.Context, title, description string, category models.Category, amount int64, responsible models.Address) (models.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	caller := e.caller(ctx)
	now := requestcontext.Now(ctx)
	if !e.isManager(ctx, caller) {
		resident, err := e.ledger.FindResident(ctx, caller)
		if err != nil {
			return models.Receipt{}, dErrors.New(dErrors.CodeForbidden, "only the manager or the residents can do this")
		}
		if e.defaulted(ctx, resident.Residence, now) {
			return models.Receipt{}, dErrors.New(dErrors.CodeMustHavePaid, "the resident must be up to date with the quota")
		}
	}
	if title == "" {
		return models.Receipt{}, dErrors.New(dErrors.CodeBadRequest, "the topic title is required")
	}
	if !category.Valid() {
		return models.Receipt{}, dErrors.New(dErrors.CodeBadRequest, "unknown topic category")
	}
	if amount < 0 {
		return models.Receipt{}, dErrors.New(dErrors.CodeInvalidAmount, "the amount must not be negative")
	}
	if amount > 0 && category != models.CategorySpent && category != models.CategoryChangeQuota {
		return models.Receipt{}, dErrors.New(dErrors.CodeInvalidAmount, "wrong category for an amount")
	}
	if responsible.IsZero() {
		responsible = caller
	}
	topic := models.Topic{
		Title:       title,
		Description: description,
		Category:    category,
		Amount:      amount,
		Responsible: responsible.Normalized(),
		Status:      models.StatusIdle,
		CreatedDate: now,
	}
	if err := e.ledger.CreateTopic(ctx, topic); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return models.Receipt{}, dErrors.New(dErrors.CodeDuplicate, "this topic already exists")
		}
		return models.Receipt{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to add topic")
	}
	e.metrics.IncrementTopicsCreated()
	return e.emit(ctx, models.Event{
		Kind:   models.EventTopicChanged,
		Title:  title,
		Status: models.StatusIdle,
		At:     now,
	}), nil
}

// EditTopic updates an IDLE topic. Empty description, zero amount and a
// zero responsible mean "leave unchanged"; genuinely clearing a field is
// not expressible, a known ambiguity kept for compatibility with the
// original interface.
func (e *Engine) EditTopic(ctx context.Context, title, description string, amount int64, responsible models.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isManager(ctx, e.caller(ctx)) {
		return dErrors.New(dErrors.CodeForbidden, "only the manager can do this")
	}
	topic, err := e.ledger.FindTopic(ctx, title)
	if err != nil {
		return dErrors.New(dErrors.CodeUnknownTopic, "this topic does not exist")
	}
	if topic.Status != models.StatusIdle {
		return dErrors.New(dErrors.CodeIllegalState, "only IDLE topics can be edited")
	}
	if amount < 0 {
		return dErrors.New(dErrors.CodeInvalidAmount, "the amount must not be negative")
	}
	if amount > 0 && topic.Category != models.CategorySpent && topic.Category != models.CategoryChangeQuota {
		return dErrors.New(dErrors.CodeInvalidAmount, "wrong category for an amount")
	}
	if description != "" {
		topic.Description = description
	}
	if amount > 0 {
		topic.Amount = amount
	}
	if !responsible.IsZero() {
		topic.Responsible = responsible.Normalized()
	}
	if err := e.ledger.UpdateTopic(ctx, topic); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to edit topic")
	}
	return nil
}

// RemoveTopic logically deletes an IDLE topic. The record is retained with
// status DELETED so pagination indices stay stable.
func (e *Engine) RemoveTopic(ctx context.Context, title string) (models.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isManager(ctx, e.caller(ctx)) {
		return models.Receipt{}, dErrors.New(dErrors.CodeForbidden, "only the manager can do this")
	}
	topic, err := e.ledger.FindTopic(ctx, title)
	if err != nil {
		return models.Receipt{}, dErrors.New(dErrors.CodeUnknownTopic, "this topic does not exist")
	}
	if topic.Status != models.StatusIdle {
		return models.Receipt{}, dErrors.New(dErrors.CodeIllegalState, "only IDLE topics can be removed")
	}
	topic.Status = models.StatusDeleted
	if err := e.ledger.UpdateTopic(ctx, topic); err != nil {
		return models.Receipt{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove topic")
	}
	return e.emit(ctx, models.Event{
		Kind:   models.EventTopicChanged,
		Title:  title,
		Status: models.StatusDeleted,
		At:     requestcontext.Now(ctx),
	}), nil
}

// OpenVoting moves an IDLE topic into VOTING.
func (e *Engine) OpenVoting(ctx context.Context, title string) (models.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isManager(ctx, e.caller(ctx)) {
		return models.Receipt{}, dErrors.New(dErrors.CodeForbidden, "only the manager can do this")
	}
	topic, err := e.ledger.FindTopic(ctx, title)
	if err != nil {
		return models.Receipt{}, dErrors.New(dErrors.CodeUnknownTopic, "this topic does not exist")
	}
	if topic.Status != models.StatusIdle {
		return models.Receipt{}, dErrors.New(dErrors.CodeIllegalState, "only IDLE topics can be opened for voting")
	}
	now := requestcontext.Now(ctx)
	topic.Status = models.StatusVoting
	topic.StartDate = now
	if err := e.ledger.UpdateTopic(ctx, topic); err != nil {
		return models.Receipt{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to open voting")
	}
	return e.emit(ctx, models.Event{
		Kind:   models.EventTopicChanged,
		Title:  title,
		Status: models.StatusVoting,
		At:     now,
	}), nil
}

// Vote records the caller's residence choice on a VOTING topic. A
// residence votes at most once per topic; a non-resident manager votes
// under residence 0 and is exempt from the defaulter check.
func (e *Engine) Vote(ctx context.Context, title string, option models.Option) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	caller := e.caller(ctx)
	now := requestcontext.Now(ctx)
	resident, residentErr := e.ledger.FindResident(ctx, caller)
	if !e.isManager(ctx, caller) && residentErr != nil {
		return dErrors.New(dErrors.CodeForbidden, "only the manager or the residents can do this")
	}
	topic, err := e.ledger.FindTopic(ctx, title)
	if err != nil {
		return dErrors.New(dErrors.CodeUnknownTopic, "this topic does not exist")
	}
	if topic.Status != models.StatusVoting {
		return dErrors.New(dErrors.CodeIllegalState, "only VOTING topics can be voted")
	}
	if !option.Valid() {
		return dErrors.New(dErrors.CodeBadRequest, "unknown vote option")
	}
	if option == models.OptionEmpty {
		return dErrors.New(dErrors.CodeEmptyOption, "the vote option cannot be EMPTY")
	}
	residenceID := 0
	if residentErr == nil {
		residenceID = resident.Residence
		if e.defaulted(ctx, residenceID, now) {
			return dErrors.New(dErrors.CodeMustHavePaid, "the resident must be up to date with the quota to vote")
		}
	}
	err = e.ledger.CreateVote(ctx, title, models.Vote{
		Resident:  caller,
		Residence: residenceID,
		Timestamp: now,
		Option:    option,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return dErrors.New(dErrors.CodeDuplicateVote, "this residence already voted on this topic")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record vote")
	}
	e.metrics.IncrementVotesCast()
	return nil
}

// CloseVoting tallies a VOTING topic. The round needs the category's
// minimum number of cast votes; abstentions count toward that minimum but
// not toward the YES/NO comparison. On approval the category side effect
// (manager change, quota change) applies atomically with the status
// change.
func (e *Engine) CloseVoting(ctx context.Context, title string) (models.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	start := time.Now()

	if !e.isManager(ctx, e.caller(ctx)) {
		return models.Receipt{}, dErrors.New(dErrors.CodeForbidden, "only the manager can do this")
	}
	topic, err := e.ledger.FindTopic(ctx, title)
	if err != nil {
		return models.Receipt{}, dErrors.New(dErrors.CodeUnknownTopic, "this topic does not exist")
	}
	if topic.Status != models.StatusVoting {
		return models.Receipt{}, dErrors.New(dErrors.CodeIllegalState, "only VOTING topics can be closed")
	}
	votes := e.ledger.ListVotes(ctx, title)
	if len(votes) < quorum[topic.Category] {
		return models.Receipt{}, dErrors.New(dErrors.CodeQuorumNotMet, "the minimum number of votes has not been reached")
	}

	yes, no := 0, 0
	for _, v := range votes {
		switch v.Option {
		case models.OptionYes:
			yes++
		case models.OptionNo:
			no++
		}
	}

	now := requestcontext.Now(ctx)
	topic.EndDate = now
	if yes > no {
		topic.Status = models.StatusApproved
	} else {
		topic.Status = models.StatusDenied
	}

	events := []models.Event{{
		Kind:   models.EventTopicChanged,
		Title:  title,
		Status: topic.Status,
		At:     now,
	}}
	if topic.Status == models.StatusApproved {
		switch topic.Category {
		case models.CategoryChangeManager:
			e.ledger.SetManager(ctx, topic.Responsible)
			events = append(events, models.Event{
				Kind:    models.EventManagerChanged,
				Manager: topic.Responsible,
				At:      now,
			})
		case models.CategoryChangeQuota:
			e.ledger.SetMonthlyQuota(ctx, topic.Amount)
			events = append(events, models.Event{
				Kind:  models.EventQuotaChanged,
				Quota: topic.Amount,
				At:    now,
			})
		}
	}
	if err := e.ledger.UpdateTopic(ctx, topic); err != nil {
		return models.Receipt{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to close voting")
	}
	e.metrics.ObserveCloseVoting(topic.Status.String(), start)
	e.logger.InfoContext(ctx, "voting closed",
		"topic", title,
		"outcome", topic.Status.String(),
		"yes", yes,
		"no", no,
		"votes", len(votes),
	)
	return e.emit(ctx, events...), nil
}

// Transfer pays out an APPROVED SPENT topic, debiting the treasury and
// crediting the responsible wallet, up to the approved amount.
func (e *Engine) Transfer(ctx context.Context, title string, amount int64) (models.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.isManager(ctx, e.caller(ctx)) {
		return models.Receipt{}, dErrors.New(dErrors.CodeForbidden, "only the manager can do this")
	}
	if amount <= 0 {
		return models.Receipt{}, dErrors.New(dErrors.CodeInvalidAmount, "the amount must be positive")
	}
	if amount > e.ledger.TreasuryBalance(ctx) {
		return models.Receipt{}, dErrors.New(dErrors.CodeInsufficientFunds, "the treasury does not hold enough funds")
	}
	topic, err := e.ledger.FindTopic(ctx, title)
	if err != nil {
		return models.Receipt{}, dErrors.New(dErrors.CodeUnknownTopic, "this topic does not exist")
	}
	if topic.Status != models.StatusApproved || topic.Category != models.CategorySpent {
		return models.Receipt{}, dErrors.New(dErrors.CodeIllegalState, "only APPROVED SPENT topics can be paid")
	}
	if amount > topic.Amount {
		return models.Receipt{}, dErrors.New(dErrors.CodeAmountExceeded, "the amount exceeds the approved topic amount")
	}

	now := requestcontext.Now(ctx)
	e.ledger.SetTreasuryBalance(ctx, e.ledger.TreasuryBalance(ctx)-amount)
	e.ledger.SetBalance(ctx, topic.Responsible, e.ledger.BalanceOf(ctx, topic.Responsible)+amount)
	topic.Status = models.StatusSpent
	topic.EndDate = now
	if err := e.ledger.UpdateTopic(ctx, topic); err != nil {
		return models.Receipt{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record transfer")
	}
	e.metrics.IncrementTransfersExecuted()
	return e.emit(ctx, models.Event{
		Kind:   models.EventTopicChanged,
		Title:  title,
		Status: models.StatusSpent,
		At:     now,
	}), nil
}

// PayQuota receives one monthly quota payment for a residence. The paid
// amount must equal the current quota exactly. Accrual is additive: a
// first payment sets NextPayment to now + 30 days, later payments extend
// the previous NextPayment by 30 days however late they arrive.
func (e *Engine) PayQuota(ctx context.Context, residenceID int, amount int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.ledger.ResidenceExists(ctx, residenceID) {
		return dErrors.New(dErrors.CodeUnknownResidence, "this residence does not exist")
	}
	if amount != e.ledger.MonthlyQuota(ctx) {
		return dErrors.New(dErrors.CodeWrongValue, "the paid amount must equal the monthly quota")
	}
	now := requestcontext.Now(ctx)
	next := e.ledger.NextPayment(ctx, residenceID)
	if !next.IsZero() && now.Before(next) {
		return dErrors.New(dErrors.CodeAlreadyPaid, "this residence's current period is already paid")
	}
	if next.IsZero() {
		next = now.Add(paymentCycle)
	} else {
		next = next.Add(paymentCycle)
	}
	e.ledger.SetNextPayment(ctx, residenceID, next)
	e.ledger.SetTreasuryBalance(ctx, e.ledger.TreasuryBalance(ctx)+amount)
	e.metrics.IncrementQuotaPayments()
	return nil
}

// ResidenceExists is a pure membership test against the fixed residence
// set.
func (e *Engine) ResidenceExists(ctx context.Context, residenceID int) bool {
	return e.ledger.ResidenceExists(ctx, residenceID)
}

// IsResident reports whether the wallet has a resident record.
func (e *Engine) IsResident(ctx context.Context, wallet models.Address) bool {
	return e.isResident(ctx, wallet)
}

// GetResident returns a resident with the derived fields (manager flag,
// next payment) filled in. The auth collaborator consults this.
func (e *Engine) GetResident(ctx context.Context, wallet models.Address) (models.Resident, error) {
	resident, err := e.ledger.FindResident(ctx, wallet)
	if err != nil {
		return models.Resident{}, dErrors.New(dErrors.CodeNotFound, "this wallet is not a resident")
	}
	return e.decorate(ctx, resident), nil
}

// decorate fills the derived resident fields from the singletons and the
// payment ledger.
func (e *Engine) decorate(ctx context.Context, r models.Resident) models.Resident {
	r.IsManager = r.Wallet.Equal(e.ledger.Manager(ctx))
	r.NextPayment = e.ledger.NextPayment(ctx, r.Residence)
	return r
}

// Residents lists all resident records in index order.
func (e *Engine) Residents(ctx context.Context) []models.Resident {
	residents := e.ledger.ListResidents(ctx)
	for i := range residents {
		residents[i] = e.decorate(ctx, residents[i])
	}
	return residents
}

// TopicExists reports whether a live (non-DELETED) topic holds the title.
func (e *Engine) TopicExists(ctx context.Context, title string) bool {
	topic, err := e.ledger.FindTopic(ctx, title)
	return err == nil && topic.Status != models.StatusDeleted
}

// GetTopic returns a topic by title, DELETED ones included for historical
// lookup.
func (e *Engine) GetTopic(ctx context.Context, title string) (models.Topic, error) {
	topic, err := e.ledger.FindTopic(ctx, title)
	if err != nil {
		return models.Topic{}, dErrors.New(dErrors.CodeUnknownTopic, "this topic does not exist")
	}
	return topic, nil
}

// Topics lists all ever-created topics in creation order, DELETED
// included.
func (e *Engine) Topics(ctx context.Context) []models.Topic {
	return e.ledger.ListTopics(ctx)
}

// NumberOfVotes counts the votes cast on a topic.
func (e *Engine) NumberOfVotes(ctx context.Context, title string) int {
	return len(e.ledger.ListVotes(ctx, title))
}

// GetVotes lists the votes cast on a topic.
func (e *Engine) GetVotes(ctx context.Context, title string) []models.Vote {
	return e.ledger.ListVotes(ctx, title)
}

// MonthlyQuota returns the current monthly quota.
func (e *Engine) MonthlyQuota(ctx context.Context) int64 {
	return e.ledger.MonthlyQuota(ctx)
}

// Manager returns the current manager wallet.
func (e *Engine) Manager(ctx context.Context) models.Address {
	return e.ledger.Manager(ctx)
}

// TreasuryBalance returns the treasury's current balance.
func (e *Engine) TreasuryBalance(ctx context.Context) int64 {
	return e.ledger.TreasuryBalance(ctx)
}

// BalanceOf returns the amount credited to a wallet by transfers.
func (e *Engine) BalanceOf(ctx context.Context, wallet models.Address) int64 {
	return e.ledger.BalanceOf(ctx, wallet)
}
