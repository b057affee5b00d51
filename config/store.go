package config

import "sync/atomic"

// Snapshot is a versioned CompileOptions value published by a Store.
type Snapshot struct {
	Version uint64
	Options CompileOptions
}

// Store holds the current compile options. Readers take a snapshot and
// keep using it; a reload publishes a new snapshot instead of mutating the
// one in use.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore returns a store whose first snapshot is opts at version 1.
func NewStore(opts CompileOptions) *Store {
	s := &Store{}
	s.current.Store(&Snapshot{Version: 1, Options: opts})
	return s
}

// Load returns the current snapshot.
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Swap publishes opts as the next version and returns the new snapshot.
func (s *Store) Swap(opts CompileOptions) *Snapshot {
	for {
		old := s.current.Load()
		next := &Snapshot{Version: old.Version + 1, Options: opts}
		if s.current.CompareAndSwap(old, next) {
			return next
		}
	}
}
