package directory

import (
	"context"
	"errors"
)

// Role classifies a console account.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// RoleFilter narrows ListAccounts. The zero value matches every account.
type RoleFilter struct {
	Role Role // empty = no filter
}

// Account is the directory's view of a registered console account.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

var (
	// ErrAccountNotFound is returned when a requested account does not exist.
	ErrAccountNotFound = errors.New("account not found")
)

// Directory resolves registered accounts. The notification subsystem treats
// user storage as an external collaborator and only talks to it through
// this interface, evaluated fresh at send time so current roles apply.
type Directory interface {
	// ListAccounts returns accounts matching the filter.
	ListAccounts(ctx context.Context, filter RoleFilter) ([]Account, error)

	// FindAccounts returns the accounts with the given IDs. Unknown IDs are
	// skipped rather than treated as an error; the caller decides whether an
	// empty result is acceptable.
	FindAccounts(ctx context.Context, ids []string) ([]Account, error)
}
