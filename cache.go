package gocas

import "sync"

// memoKey identifies a cached result. The hash only narrows the bucket;
// entries are confirmed with Equal before use.
type memoKey struct {
	op      string
	varName string
	hash    uint64
}

type memoEntry struct {
	in, out Expr
}

// memo is a process-local result cache holding at most limit entries; the
// oldest insertion is evicted first. It is populated lazily, may be cleared
// at any time, and is never required for correctness.
type memo struct {
	mu      sync.RWMutex
	limit   int
	n       int
	entries map[memoKey][]memoEntry
	// order lists the bucket of every live entry in insertion order.
	order []memoKey
}

func newMemo(limit int) *memo {
	return &memo{limit: limit, entries: make(map[memoKey][]memoEntry)}
}

func (m *memo) get(op, varName string, in Expr) (Expr, bool) {
	if m == nil {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.entries[memoKey{op, varName, in.Hash()}] {
		if e.in.Equal(in) {
			return e.out, true
		}
	}
	return nil, false
}

func (m *memo) put(op, varName string, in, out Expr) {
	if m == nil {
		return
	}
	k := memoKey{op, varName, in.Hash()}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries[k] {
		if e.in.Equal(in) {
			return
		}
	}
	m.entries[k] = append(m.entries[k], memoEntry{in: in, out: out})
	m.order = append(m.order, k)
	m.n++
	for m.n > m.limit {
		m.evictOldest()
	}
}

// evictOldest drops the first entry of the oldest bucket. Buckets append in
// insertion order, so that entry is the oldest overall.
func (m *memo) evictOldest() {
	k := m.order[0]
	m.order[0] = memoKey{}
	m.order = m.order[1:]
	if b := m.entries[k][1:]; len(b) > 0 {
		m.entries[k] = b
	} else {
		delete(m.entries, k)
	}
	m.n--
}

func (m *memo) clear() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	n := m.n
	m.entries = make(map[memoKey][]memoEntry)
	m.order = nil
	m.n = 0
	return n
}

func (m *memo) len() int {
	if m == nil {
		return 0
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.n
}
