package marketdata

import (
	"sync"

	"WealthSim/internal/domain/models"
)

// SnapshotStore keeps the latest signal per symbol. Reads return
// signals in the configured symbol order so valuation output is stable.
type SnapshotStore struct {
	mu      sync.RWMutex
	order   []string
	signals map[string]models.MarketSignal
}

// NewSnapshotStore creates a store tracking the given symbols in order.
// Signals for unlisted symbols are kept too, appended after the
// configured ones.
func NewSnapshotStore(symbols []string) *SnapshotStore {
	return &SnapshotStore{
		order:   append([]string(nil), symbols...),
		signals: make(map[string]models.MarketSignal),
	}
}

// Put stores or replaces the latest signal for its symbol.
func (s *SnapshotStore) Put(sig models.MarketSignal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.signals[sig.Symbol]; !seen {
		if !s.listed(sig.Symbol) {
			s.order = append(s.order, sig.Symbol)
		}
	}
	s.signals[sig.Symbol] = sig
}

func (s *SnapshotStore) listed(symbol string) bool {
	for _, sym := range s.order {
		if sym == symbol {
			return true
		}
	}
	return false
}

// Snapshot returns the current signal set in symbol order. Symbols
// without an observation yet are omitted.
func (s *SnapshotStore) Snapshot() models.SignalSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := make(models.SignalSnapshot, 0, len(s.signals))
	for _, sym := range s.order {
		if sig, ok := s.signals[sym]; ok {
			snap = append(snap, sig)
		}
	}
	return snap
}

// Len reports how many symbols have an observation.
func (s *SnapshotStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.signals)
}
