package store

import (
	"context"
	"sync"

	condomodels "condogov/internal/condo/models"
	"condogov/internal/profile/models"
)

// MemoryStore keeps profiles in a map. It favors clarity over
// performance and is the default when no Postgres URL is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[condomodels.Address]models.Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[condomodels.Address]models.Record)}
}

func (s *MemoryStore) Create(_ context.Context, record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallet := record.Wallet.Normalized()
	if _, ok := s.records[wallet]; ok {
		return ErrDuplicate
	}
	record.Wallet = wallet
	s.records[wallet] = record
	return nil
}

func (s *MemoryStore) Find(_ context.Context, wallet condomodels.Address) (models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if record, ok := s.records[wallet.Normalized()]; ok {
		return record, nil
	}
	return models.Record{}, ErrNotFound
}

func (s *MemoryStore) Update(_ context.Context, record models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallet := record.Wallet.Normalized()
	if _, ok := s.records[wallet]; !ok {
		return ErrNotFound
	}
	record.Wallet = wallet
	s.records[wallet] = record
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, wallet condomodels.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wallet = wallet.Normalized()
	if _, ok := s.records[wallet]; !ok {
		return ErrNotFound
	}
	delete(s.records, wallet)
	return nil
}
