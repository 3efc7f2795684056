package history

import (
	"context"
	"sync"
)

// MemoryStore is the default in-process store. Each buyer's list has its own
// lock, so concurrent requests for different buyers never contend and writes
// for the same buyer are serialized.
type MemoryStore struct {
	cap int

	mu      sync.RWMutex
	byBuyer map[string]*buyerHistory
}

type buyerHistory struct {
	mu      sync.Mutex
	records []Record
}

// NewMemoryStore creates a memory store keeping at most cap records per
// buyer. A non-positive cap falls back to the default.
func NewMemoryStore(cap int) *MemoryStore {
	if cap <= 0 {
		cap = DefaultCap
	}
	return &MemoryStore{
		cap:     cap,
		byBuyer: make(map[string]*buyerHistory),
	}
}

// Append stores the record, evicting the oldest entries beyond the cap.
func (s *MemoryStore) Append(_ context.Context, rec Record) error {
	h := s.forBuyer(rec.BuyerID)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append([]Record{rec}, h.records...)
	if len(h.records) > s.cap {
		h.records = h.records[:s.cap]
	}

	return nil
}

// Recent returns up to n most recent records for the buyer, newest first.
func (s *MemoryStore) Recent(_ context.Context, buyerID string, n int) ([]Record, error) {
	s.mu.RLock()
	h, ok := s.byBuyer[buyerID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || n > len(h.records) {
		n = len(h.records)
	}

	out := make([]Record, n)
	copy(out, h.records[:n])
	return out, nil
}

func (s *MemoryStore) forBuyer(buyerID string) *buyerHistory {
	s.mu.RLock()
	h, ok := s.byBuyer[buyerID]
	s.mu.RUnlock()
	if ok {
		return h
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok = s.byBuyer[buyerID]; ok {
		return h
	}
	h = &buyerHistory{}
	s.byBuyer[buyerID] = h
	return h
}
