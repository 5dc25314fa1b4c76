package storage

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore is an in-process Store. Setting FailWrites makes every
// write return that error, which lets callers exercise persistence
// failures.
type MemoryStore struct {
	mu         sync.Mutex
	data       map[string]string
	FailWrites error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	return m.Update(ctx, func(ctx context.Context, w Writer) error { return w.Set(ctx, key, value) })
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	return m.Update(ctx, func(ctx context.Context, w Writer) error { return w.Remove(ctx, key) })
}

func (m *MemoryStore) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}
	m.data = make(map[string]string)
	return nil
}

// Update stages writes and applies them only when fn succeeds.
func (m *MemoryStore) Update(ctx context.Context, fn func(ctx context.Context, w Writer) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites != nil {
		return m.FailWrites
	}

	staged := &memoryBatch{}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	for _, op := range staged.ops {
		if op.remove {
			delete(m.data, op.key)
		} else {
			m.data[op.key] = op.value
		}
	}
	return nil
}

type memoryOp struct {
	key, value string
	remove     bool
}

type memoryBatch struct {
	ops []memoryOp
}

func (b *memoryBatch) Set(_ context.Context, key, value string) error {
	b.ops = append(b.ops, memoryOp{key: key, value: value})
	return nil
}

func (b *memoryBatch) Remove(_ context.Context, key string) error {
	b.ops = append(b.ops, memoryOp{key: key, remove: true})
	return nil
}
