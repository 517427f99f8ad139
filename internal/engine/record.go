// Package engine implements the dual-role protocol engine of spec.md
// §4.6: it stores per-reference-id payment records, routes inbound
// requests, schedules follow-up actions on a background queue, and
// retries failed sends.
package engine

import (
	"sync"

	"github.com/travelrule/engine/internal/payment"
)

// Record is the engine's internal per-reference-id state: the last
// accepted command in canonical form, the cid it arrived (or was sent)
// with, and which role this engine plays for the exchange.
type Record struct {
	ReferenceID string
	Cid         string
	Role        payment.Role
	CmdJSON     []byte
}

// Store holds one Record per reference_id, guarded by a per-reference-id
// lock so concurrent inbound handlers validating against the same prior
// state cannot race to persist (spec.md §5, §9 "the source code
// acknowledges... find_offchain_record_for_update should lock per
// reference_id. A production implementation MUST introduce this lock").
type Store struct {
	mu      sync.Mutex
	records map[string]*Record
	locks   map[string]*sync.Mutex
}

// NewStore builds an empty Store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]*Record),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Lock acquires the per-reference-id lock, creating it on first use.
// Callers must call the returned unlock function exactly once.
func (s *Store) Lock(referenceID string) func() {
	s.mu.Lock()
	l, ok := s.locks[referenceID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[referenceID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Get returns the record for referenceID, or (nil, false). Callers that
// intend to mutate must hold the per-reference-id lock first.
func (s *Store) Get(referenceID string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[referenceID]
	return r, ok
}

// Put replaces (or inserts) the record for r.ReferenceID.
func (s *Store) Put(r *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ReferenceID] = r
}
