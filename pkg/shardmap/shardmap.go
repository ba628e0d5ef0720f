package shardmap

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const defaultShardCount = 32

// Map 分片并发安全map，按key的xxhash选择分片，不同分片之间互不阻塞
type Map[V any] struct {
	shards []*shard[V]
	mask   uint64
}

type shard[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// New 创建分片map，shardCount会向上取整为2的幂，<=0时使用默认值
func New[V any](shardCount int) *Map[V] {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}
	n := 1
	for n < shardCount {
		n <<= 1
	}

	m := &Map[V]{
		shards: make([]*shard[V], n),
		mask:   uint64(n - 1),
	}
	for i := range m.shards {
		m.shards[i] = &shard[V]{items: make(map[string]V)}
	}
	return m
}

func (m *Map[V]) shardFor(key string) *shard[V] {
	return m.shards[xxhash.Sum64String(key)&m.mask]
}

// Load 读取key对应的值
func (m *Map[V]) Load(key string) (V, bool) {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

// Update 在分片写锁内读改写key对应的值，fn的返回值会被存回
func (m *Map[V]) Update(key string, fn func(v V, ok bool) V) V {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.items[key]
	nv := fn(v, ok)
	s.items[key] = nv
	return nv
}

// View 在分片读锁内访问key对应的值，fn内不得修改值
func (m *Map[V]) View(key string, fn func(v V, ok bool)) {
	s := m.shardFor(key)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	fn(v, ok)
}

// Delete 删除key，返回key是否存在
func (m *Map[V]) Delete(key string) bool {
	s := m.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[key]
	delete(s.items, key)
	return ok
}

// Len 所有分片的元素总数
func (m *Map[V]) Len() int {
	total := 0
	for _, s := range m.shards {
		s.mu.RLock()
		total += len(s.items)
		s.mu.RUnlock()
	}
	return total
}
