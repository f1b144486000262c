package notifications

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryInboxStore is an in-memory InboxStore for tests and single-node
// development setups.
type MemoryInboxStore struct {
	mu      sync.RWMutex
	entries []InboxEntry
}

// NewMemoryInboxStore creates an empty in-memory inbox store.
func NewMemoryInboxStore() *MemoryInboxStore {
	return &MemoryInboxStore{}
}

func (s *MemoryInboxStore) Add(ctx context.Context, entry InboxEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *MemoryInboxStore) ListByAccount(ctx context.Context, accountID string, unreadOnly bool) ([]InboxEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []InboxEntry{}
	for _, e := range s.entries {
		if e.AccountID != accountID {
			continue
		}
		if unreadOnly && e.Read {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *MemoryInboxStore) MarkRead(ctx context.Context, accountID, notificationID string, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx := range s.entries {
		e := &s.entries[idx]
		if e.AccountID != accountID || e.NotificationID != notificationID {
			continue
		}
		if e.Read {
			return false, nil
		}
		e.Read = true
		readAt := at
		e.ReadAt = &readAt
		return true, nil
	}
	return false, ErrInboxEntryNotFound
}

func (s *MemoryInboxStore) CountUnread(ctx context.Context, accountID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, e := range s.entries {
		if e.AccountID == accountID && !e.Read {
			count++
		}
	}
	return count, nil
}

var _ InboxStore = (*MemoryInboxStore)(nil)
