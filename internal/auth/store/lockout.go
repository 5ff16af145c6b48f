package store

import (
	"context"
	"sync"
	"time"
)

// Lockout policy: repeated signature failures for one wallet lock the
// wallet out of login for a cooldown period.
const (
	maxLoginFailures = 5
	failureWindow    = 15 * time.Minute
	lockoutDuration  = 15 * time.Minute
)

// LockoutStore tracks failed login attempts per wallet.
type LockoutStore interface {
	// RecordFailure counts one failed attempt and returns the lockout
	// expiry when the failure threshold has been crossed.
	RecordFailure(ctx context.Context, wallet string, now time.Time) time.Time
	// ClearFailures forgets a wallet's failures after a successful login.
	ClearFailures(ctx context.Context, wallet string)
	// LockedUntil returns the lockout expiry, zero when not locked.
	LockedUntil(ctx context.Context, wallet string, now time.Time) time.Time
}

type lockoutRecord struct {
	failures    int
	firstAt     time.Time
	lockedUntil time.Time
}

// MemoryLockouts is an in-process LockoutStore.
type MemoryLockouts struct {
	mu      sync.Mutex
	records map[string]*lockoutRecord
}

func NewMemoryLockouts() *MemoryLockouts {
	return &MemoryLockouts{records: make(map[string]*lockoutRecord)}
}

func (m *MemoryLockouts) RecordFailure(_ context.Context, wallet string, now time.Time) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.records[wallet]
	if rec == nil || now.Sub(rec.firstAt) > failureWindow {
		rec = &lockoutRecord{firstAt: now}
		m.records[wallet] = rec
	}
	rec.failures++
	if rec.failures >= maxLoginFailures {
		rec.lockedUntil = now.Add(lockoutDuration)
	}
	return rec.lockedUntil
}

func (m *MemoryLockouts) ClearFailures(_ context.Context, wallet string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, wallet)
}

func (m *MemoryLockouts) LockedUntil(_ context.Context, wallet string, now time.Time) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.records[wallet]
	if rec == nil || now.After(rec.lockedUntil) {
		return time.Time{}
	}
	return rec.lockedUntil
}
