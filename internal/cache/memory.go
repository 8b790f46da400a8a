package cache

import (
	"context"
	"sync"
	"time"

	"github.com/bilgisen/resourcehub/internal/models"
)

// MemoryCache is an in-process Cache used when Redis is disabled and in tests.
// TTLs are ignored.
type MemoryCache struct {
	mu        sync.RWMutex
	resources map[string]models.Resource
	lists     map[string][]models.Resource
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		resources: make(map[string]models.Resource),
		lists:     make(map[string][]models.Resource),
	}
}

func (m *MemoryCache) Close() error {
	return nil
}

func (m *MemoryCache) GetResource(_ context.Context, slug string) (*models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.resources[resourceKey(slug)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *MemoryCache) SetResource(_ context.Context, r models.Resource, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources[resourceKey(r.Slug)] = r
	return nil
}

func (m *MemoryCache) GetList(_ context.Context, name string) ([]models.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list, ok := m.lists[listKey(name)]
	if !ok {
		return nil, nil
	}
	return append([]models.Resource(nil), list...), nil
}

func (m *MemoryCache) SetList(_ context.Context, name string, list []models.Resource, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[listKey(name)] = append([]models.Resource(nil), list...)
	return nil
}

func (m *MemoryCache) Invalidate(_ context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.resources, resourceKey(slug))
	m.lists = make(map[string][]models.Resource)
	return nil
}

func (m *MemoryCache) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources = make(map[string]models.Resource)
	m.lists = make(map[string][]models.Resource)
	return nil
}
