package schemac

import (
	"sort"
	"sync"
)

// Symbols resolves identifier values (for example `default: MAX_RETRIES`) to
// literals at serialization time. It is safe for concurrent use; serializers
// only take the read lock.
type Symbols struct {
	mu   sync.RWMutex
	vals map[string]Value
}

// NewSymbols returns an empty table.
func NewSymbols() *Symbols { return &Symbols{vals: map[string]Value{}} }

// Define binds name to v, replacing any earlier binding. Idents inside v are
// not resolved further.
func (s *Symbols) Define(name string, v Value) {
	s.mu.Lock()
	if s.vals == nil {
		s.vals = map[string]Value{}
	}
	s.vals[name] = v
	s.mu.Unlock()
}

// Lookup returns the binding for name.
func (s *Symbols) Lookup(name string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	s.mu.RLock()
	v, ok := s.vals[name]
	s.mu.RUnlock()
	return v, ok
}

// Names returns the bound names in sorted order.
func (s *Symbols) Names() []string {
	s.mu.RLock()
	out := make([]string, 0, len(s.vals))
	for k := range s.vals {
		out = append(out, k)
	}
	s.mu.RUnlock()
	sort.Strings(out)
	return out
}
