package jar

import (
	"container/list"
	"context"
	"sync"
)

// MemoryStore keeps records in process memory in creation order.
type MemoryStore struct {
	items map[Key]*list.Element
	order *list.List
	mu    sync.Mutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[Key]*list.Element),
		order: list.New(),
	}
}

// NewMemory returns a Jar over a fresh MemoryStore.
func NewMemory(opts ...Option) *Jar {
	return New(NewMemoryStore(), opts...)
}

func (m *MemoryStore) Load(_ context.Context) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Record, 0, m.order.Len())
	for e := m.order.Front(); e != nil; e = e.Next() {
		out = append(out, *e.Value.(*Record))
	}
	return out, nil
}

func (m *MemoryStore) Save(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := rec.Key()
	if e, ok := m.items[key]; ok {
		prev := e.Value.(*Record)
		rec.Created = prev.Created
		*prev = rec
		return nil
	}

	m.items[key] = m.order.PushBack(&rec)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.items[key]; ok {
		m.order.Remove(e)
		delete(m.items, key)
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
