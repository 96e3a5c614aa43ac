// Package intern deduplicates textual data into a shared store. The store
// hands out lightweight Symbol handles; two Symbols from the same store are
// equal exactly when their text is equal, so handle comparison replaces
// string comparison everywhere downstream. The store must outlive every
// token and AST node holding one of its handles.
package intern

import "sync"

// Symbol is a handle to one canonical string in a Store. The zero Symbol is
// valid and refers to the empty string.
type Symbol struct {
	s *string
}

func (s Symbol) Text() string {
	if s.s == nil {
		return ""
	}
	return *s.s
}

func (s Symbol) Len() int {
	if s.s == nil {
		return 0
	}
	return len(*s.s)
}

func (s Symbol) String() string {
	return s.Text()
}

// Store owns the canonical copies. Insert and lookup are safe for
// concurrent use; this is the only synchronization point a parallel parse
// would need.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*string
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*string)}
}

// Intern returns the Symbol for text, inserting it on first use.
func (st *Store) Intern(text string) Symbol {
	st.mu.RLock()
	entry, ok := st.entries[text]
	st.mu.RUnlock()
	if ok {
		return Symbol{s: entry}
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if entry, ok := st.entries[text]; ok {
		return Symbol{s: entry}
	}
	canonical := text
	st.entries[canonical] = &canonical
	return Symbol{s: &canonical}
}

// Len returns the number of distinct strings held by the store.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.entries)
}
