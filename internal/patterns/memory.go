package patterns

// MemoryLibrary is an immutable, in-memory Library snapshot. It is the
// shape every backing store (sqlite, postgres, YAML seed) ultimately
// produces, and the shape the Loader swaps atomically on hot reload. Being
// immutable and holding no mutex, it is safe to share by reference across
// worker goroutines (§5 — "no locking required").
type MemoryLibrary struct {
	byKind map[Kind][]Pattern
}

// NewMemoryLibrary validates raw and, on success, returns a ready-to-serve
// snapshot.
func NewMemoryLibrary(raw []Pattern) (*MemoryLibrary, error) {
	grouped, err := Validate(raw)
	if err != nil {
		return nil, err
	}
	return &MemoryLibrary{byKind: grouped}, nil
}

// PatternsOf implements Library.
func (m *MemoryLibrary) PatternsOf(kind Kind) []Pattern {
	if m == nil {
		return []Pattern{}
	}
	patterns := m.byKind[kind]
	if patterns == nil {
		return []Pattern{}
	}
	// Defensive copy: callers must never be able to mutate the snapshot.
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}
