package store

import (
	"context"
	"sync"
	"time"

	"condogov/internal/condo/models"
)

// Memory is the in-memory ledger. One RWMutex covers every collection so
// readers that need a consistent snapshot (pagination totals, tallies)
// never observe a half-applied write. The trust model is a single global
// sequential log; the engine serializes writers on top of this.
type Memory struct {
	mu sync.RWMutex

	residences   map[int]struct{}
	residenceIDs []int

	residents   map[models.Address]models.Resident
	residentIdx []models.Address

	topics   map[string]models.Topic
	topicIdx []string

	votes map[string]map[int]models.Vote

	payments map[int]time.Time

	manager  models.Address
	quota    int64
	treasury int64
	balances map[models.Address]int64
}

// NewMemory builds the ledger with the condominium's fixed residence set:
// blocks 1-2, floors 1-5, units 1-5 (id = block*1000 + floor*100 + unit).
func NewMemory(initialQuota int64) *Memory {
	m := &Memory{
		residences: make(map[int]struct{}),
		residents:  make(map[models.Address]models.Resident),
		topics:     make(map[string]models.Topic),
		votes:      make(map[string]map[int]models.Vote),
		payments:   make(map[int]time.Time),
		balances:   make(map[models.Address]int64),
		quota:      initialQuota,
	}
	for block := 1; block <= 2; block++ {
		for floor := 1; floor <= 5; floor++ {
			for unit := 1; unit <= 5; unit++ {
				id := models.ResidenceID(block, floor, unit)
				m.residences[id] = struct{}{}
				m.residenceIDs = append(m.residenceIDs, id)
			}
		}
	}
	return m
}

func (m *Memory) ResidenceExists(_ context.Context, id int) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.residences[id]
	return ok
}

func (m *Memory) Residences(_ context.Context) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]int, len(m.residenceIDs))
	copy(ids, m.residenceIDs)
	return ids
}

func (m *Memory) CreateResident(_ context.Context, r models.Resident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	wallet := r.Wallet.Normalized()
	if _, ok := m.residents[wallet]; ok {
		return ErrDuplicate
	}
	r.Wallet = wallet
	m.residents[wallet] = r
	m.residentIdx = append(m.residentIdx, wallet)
	return nil
}

func (m *Memory) FindResident(_ context.Context, wallet models.Address) (models.Resident, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.residents[wallet.Normalized()]; ok {
		return r, nil
	}
	return models.Resident{}, ErrNotFound
}

func (m *Memory) UpdateResident(_ context.Context, r models.Resident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	wallet := r.Wallet.Normalized()
	if _, ok := m.residents[wallet]; !ok {
		return ErrNotFound
	}
	r.Wallet = wallet
	m.residents[wallet] = r
	return nil
}

// DeleteResident removes the record and swap-truncates the index slice,
// trading stable listing order for O(1) removal.
func (m *Memory) DeleteResident(_ context.Context, wallet models.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	wallet = wallet.Normalized()
	if _, ok := m.residents[wallet]; !ok {
		return ErrNotFound
	}
	delete(m.residents, wallet)
	for i, w := range m.residentIdx {
		if w == wallet {
			last := len(m.residentIdx) - 1
			m.residentIdx[i] = m.residentIdx[last]
			m.residentIdx = m.residentIdx[:last]
			break
		}
	}
	return nil
}

func (m *Memory) ListResidents(_ context.Context) []models.Resident {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Resident, 0, len(m.residentIdx))
	for _, w := range m.residentIdx {
		out = append(out, m.residents[w])
	}
	return out
}

func (m *Memory) CreateTopic(_ context.Context, t models.Topic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.topics[t.Title]; ok {
		return ErrDuplicate
	}
	m.topics[t.Title] = t
	m.topicIdx = append(m.topicIdx, t.Title)
	return nil
}

func (m *Memory) FindTopic(_ context.Context, title string) (models.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.topics[title]; ok {
		return t, nil
	}
	return models.Topic{}, ErrNotFound
}

func (m *Memory) UpdateTopic(_ context.Context, t models.Topic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.topics[t.Title]; !ok {
		return ErrNotFound
	}
	m.topics[t.Title] = t
	return nil
}

// ListTopics returns topics in creation order. DELETED topics stay in
// place so page indices survive removals.
func (m *Memory) ListTopics(_ context.Context) []models.Topic {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Topic, 0, len(m.topicIdx))
	for _, title := range m.topicIdx {
		out = append(out, m.topics[title])
	}
	return out
}

func (m *Memory) CreateVote(_ context.Context, title string, v models.Vote) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byResidence, ok := m.votes[title]
	if !ok {
		byResidence = make(map[int]models.Vote)
		m.votes[title] = byResidence
	}
	if _, ok := byResidence[v.Residence]; ok {
		return ErrDuplicate
	}
	v.Resident = v.Resident.Normalized()
	byResidence[v.Residence] = v
	return nil
}

func (m *Memory) ListVotes(_ context.Context, title string) []models.Vote {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byResidence := m.votes[title]
	out := make([]models.Vote, 0, len(byResidence))
	for _, v := range byResidence {
		out = append(out, v)
	}
	return out
}

func (m *Memory) NextPayment(_ context.Context, residenceID int) time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.payments[residenceID]
}

func (m *Memory) SetNextPayment(_ context.Context, residenceID int, t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[residenceID] = t
}

func (m *Memory) Manager(_ context.Context) models.Address {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.manager
}

func (m *Memory) SetManager(_ context.Context, wallet models.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.manager = wallet.Normalized()
}

func (m *Memory) MonthlyQuota(_ context.Context) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quota
}

func (m *Memory) SetMonthlyQuota(_ context.Context, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quota = amount
}

func (m *Memory) TreasuryBalance(_ context.Context) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.treasury
}

func (m *Memory) SetTreasuryBalance(_ context.Context, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.treasury = amount
}

func (m *Memory) BalanceOf(_ context.Context, wallet models.Address) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[wallet.Normalized()]
}

func (m *Memory) SetBalance(_ context.Context, wallet models.Address, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[wallet.Normalized()] = amount
}
