package otp

import (
	"sync"
	"time"

	"github.com/eduport/eduport-backend/internal/model"
)

// Entry is one staged one-time code. For registrations Payload carries the
// full staged account (password already hashed); for password-reset and
// admin-login entries Payload is nil and only the code matters.
type Entry struct {
	Code      string
	Payload   model.Account
	ExpiresAt time.Time
}

// Expired reports whether the entry's TTL has elapsed at the given instant.
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Store holds pending registrations keyed by email. It lives in process
// memory only: in-flight registrations do not survive a restart. The mutex
// protects the map itself; concurrent Put calls for the same email race on
// last-writer-wins, which is accepted behavior for this workflow.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
	now     func() time.Time
}

// NewStore creates an empty pending store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]Entry),
		now:     time.Now,
	}
}

// Put inserts or overwrites the entry for email, stamping its expiry at
// now + ttl. A second registration start for the same email replaces the
// first one entirely.
func (s *Store) Put(email, code string, payload model.Account, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = Entry{
		Code:      code,
		Payload:   payload,
		ExpiresAt: s.now().Add(ttl),
	}
}

// Get returns the entry for email, if any.
func (s *Store) Get(email string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[email]
	return e, ok
}

// Delete removes the entry for email. Deleting an absent entry is a no-op.
func (s *Store) Delete(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
}

// Len reports the number of staged entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Now returns the store's current time. The workflow uses the same clock as
// the store so expiry decisions in tests are deterministic.
func (s *Store) Now() time.Time {
	return s.now()
}

// SetClock overrides the store's time source. Tests only.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}
