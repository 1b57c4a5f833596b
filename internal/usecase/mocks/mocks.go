package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/finbook/internal/domain"
)

// SequentialIDGenerator yields deterministic ids for tests.
type SequentialIDGenerator struct {
	mu      sync.Mutex
	counter int
	Prefix  string
}

// NewSequentialIDGenerator creates a generator producing "id-1", "id-2", ...
func NewSequentialIDGenerator() *SequentialIDGenerator {
	return &SequentialIDGenerator{Prefix: "id"}
}

func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++

	return fmt.Sprintf("%s-%d", g.Prefix, g.counter)
}

// MockAccountRepository is a func-field mock of usecase.AccountRepository.
type MockAccountRepository struct {
	CreateFunc  func(ctx context.Context, account *domain.Account) error
	GetByIDFunc func(ctx context.Context, id string) (*domain.Account, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	ArchiveFunc func(ctx context.Context, id string, updatedAt time.Time) error
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}

	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}

	return nil, nil
}

func (m *MockAccountRepository) Archive(ctx context.Context, id string, updatedAt time.Time) error {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, id, updatedAt)
	}

	return nil
}

// MockRecordRepository is a func-field mock of usecase.RecordRepository.
type MockRecordRepository struct {
	GetByIDFunc       func(ctx context.Context, id string) (*domain.DomainRecord, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.DomainRecord, error)
	UpdateDetailsFunc func(ctx context.Context, id string, date time.Time, categoryRef, notes string, updatedAt time.Time) error
}

func (m *MockRecordRepository) GetByID(ctx context.Context, id string) (*domain.DomainRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}

	return nil, domain.ErrRecordNotFound
}

func (m *MockRecordRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.DomainRecord, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}

	return nil, nil
}

func (m *MockRecordRepository) UpdateDetails(ctx context.Context, id string, date time.Time, categoryRef, notes string, updatedAt time.Time) error {
	if m.UpdateDetailsFunc != nil {
		return m.UpdateDetailsFunc(ctx, id, date, categoryRef, notes, updatedAt)
	}

	return nil
}

// MockCache is a map-backed mock of usecase.Cache.
type MockCache struct {
	mu    sync.Mutex
	items map[string]string

	GetFunc    func(ctx context.Context, key string) (string, error)
	SetFunc    func(ctx context.Context, key, value string, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

// NewMockCache creates an empty MockCache.
func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.items[key]
	if !ok {
		return "", fmt.Errorf("cache miss: %s", key)
	}

	return value, nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)

	return nil
}
