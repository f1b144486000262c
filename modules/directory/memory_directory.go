package directory

import (
	"context"
	"sync"
)

// MemoryDirectory is an in-memory Directory implementation.
// Suitable for development and testing.
type MemoryDirectory struct {
	mu       sync.RWMutex
	accounts map[string]Account
	order    []string
}

// NewMemoryDirectory creates a directory seeded with the given accounts.
func NewMemoryDirectory(accounts ...Account) *MemoryDirectory {
	d := &MemoryDirectory{accounts: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		d.put(a)
	}
	return d
}

// Add registers or replaces an account.
func (d *MemoryDirectory) Add(a Account) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.put(a)
}

func (d *MemoryDirectory) put(a Account) {
	if _, exists := d.accounts[a.ID]; !exists {
		d.order = append(d.order, a.ID)
	}
	d.accounts[a.ID] = a
}

func (d *MemoryDirectory) ListAccounts(ctx context.Context, filter RoleFilter) ([]Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]Account, 0, len(d.order))
	for _, id := range d.order {
		a := d.accounts[id]
		if filter.Role != "" && a.Role != filter.Role {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (d *MemoryDirectory) FindAccounts(ctx context.Context, ids []string) ([]Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]Account, 0, len(ids))
	for _, id := range ids {
		if a, ok := d.accounts[id]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

var _ Directory = (*MemoryDirectory)(nil)
