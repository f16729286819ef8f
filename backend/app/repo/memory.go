package repo

import (
	"context"
	"sync"

	"smart-pantry/backend/app/models"
)

type MemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]models.User
	emailOf map[string]string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{byEmail: map[string]models.User{}, emailOf: map[string]string{}}
}

func (s *MemoryUserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrDuplicate
	}
	s.byEmail[u.Email] = *u
	s.emailOf[u.ID] = u.Email
	return nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email, ok := s.emailOf[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.byEmail[email]
	return &u, nil
}

// itemBucket is one user's collection with its own lock, so writers for
// different users never wait on each other.
type itemBucket struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

type MemoryItemStore struct {
	mu      sync.Mutex
	buckets map[string]*itemBucket
}

func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{buckets: map[string]*itemBucket{}}
}

func (s *MemoryItemStore) bucket(userID string, create bool) *itemBucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.buckets[userID]
	if !ok && create {
		b = &itemBucket{items: map[string]models.Item{}}
		s.buckets[userID] = b
	}
	return b
}

func (s *MemoryItemStore) List(_ context.Context, userID string) ([]models.Item, error) {
	b := s.bucket(userID, false)
	if b == nil {
		return []models.Item{}, nil
	}
	b.mu.RLock()
	items := make([]models.Item, 0, len(b.items))
	for _, it := range b.items {
		items = append(items, it)
	}
	b.mu.RUnlock()
	sortItems(items)
	return items, nil
}

func (s *MemoryItemStore) Get(_ context.Context, userID, id string) (*models.Item, error) {
	b := s.bucket(userID, false)
	if b == nil {
		return nil, ErrNotFound
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	it, ok := b.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (s *MemoryItemStore) Create(_ context.Context, item *models.Item) error {
	b := s.bucket(item.UserID, true)
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.items[item.ID]; ok {
		return ErrDuplicate
	}
	b.items[item.ID] = *item
	return nil
}

func (s *MemoryItemStore) Update(_ context.Context, userID, id string, mutate func(*models.Item) error) (*models.Item, error) {
	b := s.bucket(userID, false)
	if b == nil {
		return nil, ErrNotFound
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	it, ok := b.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if err := mutate(&it); err != nil {
		return nil, err
	}
	// ownership never moves
	it.ID, it.UserID = id, userID
	b.items[id] = it
	return &it, nil
}

func (s *MemoryItemStore) Delete(_ context.Context, userID, id string) error {
	b := s.bucket(userID, false)
	if b == nil {
		return ErrNotFound
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.items[id]; !ok {
		return ErrNotFound
	}
	delete(b.items, id)
	return nil
}
