package notifications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]Notification
}

// NewMemoryStorage creates a new in-memory notification storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]Notification)}
}

func (s *MemoryStorage) Create(ctx context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	s.items[n.ID] = n
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, id string) (*Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.items[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}
	// Copy to prevent external mutation of stored data.
	out := n
	return &out, nil
}

func (s *MemoryStorage) List(ctx context.Context, filter Filter, page, limit int) ([]Notification, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]Notification, 0, len(s.items))
	for _, n := range s.items {
		if filter.Type != nil && n.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && n.Status != *filter.Status {
			continue
		}
		matched = append(matched, n)
	}

	// Newest first; ID as tiebreaker for a stable order.
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)

	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if limit <= 0 || start >= total {
		return []Notification{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}

	return matched[start:end], total, nil
}

func (s *MemoryStorage) ListDue(ctx context.Context, before time.Time) ([]Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var due []Notification
	for _, n := range s.items {
		if n.Status == StatusScheduled && n.ScheduledFor != nil && !n.ScheduledFor.After(before) {
			due = append(due, n)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].ScheduledFor.Before(*due[j].ScheduledFor)
	})
	return due, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return ErrNotificationNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *MemoryStorage) MarkSent(ctx context.Context, id string, sentCount int, sentAt time.Time) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.items[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}
	if n.Status.Terminal() {
		return nil, ErrInvalidStatus
	}

	n.Status = StatusSent
	n.SentCount = sentCount
	n.SentAt = &sentAt
	s.items[id] = n

	out := n
	return &out, nil
}

func (s *MemoryStorage) MarkCancelled(ctx context.Context, id string) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.items[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}
	if n.Status.Terminal() {
		return nil, ErrInvalidStatus
	}

	n.Status = StatusCancelled
	s.items[id] = n

	out := n
	return &out, nil
}

func (s *MemoryStorage) MarkScheduled(ctx context.Context, id string, at time.Time) (*Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.items[id]
	if !ok {
		return nil, ErrNotificationNotFound
	}
	if n.Status.Terminal() {
		return nil, ErrInvalidStatus
	}

	n.Status = StatusScheduled
	n.ScheduledFor = &at
	s.items[id] = n

	out := n
	return &out, nil
}

func (s *MemoryStorage) IncrementReadCount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.items[id]
	if !ok {
		return ErrNotificationNotFound
	}
	n.ReadCount++
	s.items[id] = n
	return nil
}

var _ Storage = (*MemoryStorage)(nil)
