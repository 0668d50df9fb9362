// Package prefs holds the user's boolean-membership preference sets.
//
// Each set (favorites, starred authors, excluded works, not-based, hidden,
// viewed, book-author overrides) is a flat membership list persisted in the
// shared store and mirrored in memory for cheap lookups. Quote sets key on
// stable quote IDs, author sets on stable author IDs, excluded works on the
// work title.
package prefs

import (
	"quotedeck/internal/logging"
	"quotedeck/internal/store"
)

var allSets = []string{
	store.SetFavorites,
	store.SetStarred,
	store.SetExcludedWorks,
	store.SetNotBased,
	store.SetHidden,
	store.SetViewed,
	store.SetBookAuthors,
}

// Sets is the in-memory view of all preference sets, write-through to the
// store. Mutated only from discrete user actions.
type Sets struct {
	st  *store.Store
	mem map[string]map[string]bool
}

// Load reads every set from the store. A set that has never been written
// simply loads empty.
func Load(st *store.Store) (*Sets, error) {
	s := &Sets{st: st, mem: make(map[string]map[string]bool, len(allSets))}
	for _, name := range allSets {
		members, err := st.Members(name)
		if err != nil {
			return nil, err
		}
		s.mem[name] = members
	}
	return s, nil
}

// Has reports membership.
func (s *Sets) Has(set, member string) bool {
	return s.mem[set][member]
}

// Members returns the in-memory membership map for a set. The map is shared;
// callers must not mutate it.
func (s *Sets) Members(set string) map[string]bool {
	return s.mem[set]
}

// Toggle flips membership and returns the new state. Toggling twice always
// restores the original membership. Persistence failures are logged and the
// in-memory flip kept; the sets resync from the store on next launch.
func (s *Sets) Toggle(set, member string) bool {
	m := s.mem[set]
	if m == nil {
		m = make(map[string]bool)
		s.mem[set] = m
	}
	if m[member] {
		delete(m, member)
		if err := s.st.RemoveMember(set, member); err != nil {
			logging.Warn("failed to persist set removal", "set", set, "error", err)
		}
		return false
	}
	m[member] = true
	if err := s.st.AddMember(set, member); err != nil {
		logging.Warn("failed to persist set addition", "set", set, "error", err)
	}
	return true
}

// Add inserts a member. Idempotent: adding an existing member is a no-op,
// which is what makes marking a quote viewed safe to repeat.
func (s *Sets) Add(set, member string) {
	m := s.mem[set]
	if m == nil {
		m = make(map[string]bool)
		s.mem[set] = m
	}
	if m[member] {
		return
	}
	m[member] = true
	if err := s.st.AddMember(set, member); err != nil {
		logging.Warn("failed to persist set addition", "set", set, "error", err)
	}
}

// Count returns the size of a set.
func (s *Sets) Count(set string) int {
	return len(s.mem[set])
}
