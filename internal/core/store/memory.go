package store

import "sync"

// MemoryBackend 进程内实现，每个集合一把读写锁，测试用
type MemoryBackend struct {
	mu   sync.Mutex
	cols map[string]*memCollection
}

type memCollection struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{cols: make(map[string]*memCollection)}
}

func (b *MemoryBackend) col(name string) *memCollection {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.cols[name]
	if !ok {
		c = &memCollection{}
		b.cols[name] = c
	}
	return c
}

func (b *MemoryBackend) Read(name string) ([]byte, error) {
	c := b.col(name)
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]byte(nil), c.data...), nil
}

func (b *MemoryBackend) Write(name string, data []byte) error {
	c := b.col(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) Update(name string, fn func(current []byte) ([]byte, error)) error {
	c := b.col(name)
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := fn(append([]byte(nil), c.data...))
	if err != nil {
		return err
	}
	c.data = append([]byte(nil), next...)
	return nil
}
