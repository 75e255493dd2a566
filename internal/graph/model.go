package graph

import (
	"sync"
)

// Model holds the current graph. The only mutation is a whole-graph Replace;
// readers always see either the old or the new graph, never a mix.
type Model struct {
	mu      sync.RWMutex
	g       Graph
	version uint64
}

// NewModel creates a model holding an empty graph.
func NewModel() *Model {
	return &Model{g: Empty()}
}

// Replace validates candidate and, only if validation passes, installs a deep
// copy of it. On error the previous graph stays live. A nil validate installs
// unconditionally.
func (m *Model) Replace(candidate Graph, validate func(Graph) error) error {
	if validate != nil {
		if err := validate(candidate); err != nil {
			return err
		}
	}
	next := candidate.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.g = next
	m.version++
	return nil
}

// Current returns a deep copy of the installed graph.
func (m *Model) Current() Graph {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.g.Clone()
}

// Version increments on every successful Replace. Zero means nothing has been
// installed yet.
func (m *Model) Version() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version
}
