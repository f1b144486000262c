package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/waqfpal/console/modules/directory"
)

// Resolver maps an audience selector to the concrete recipient set at send
// time, so role changes between creation and send are always reflected.
type Resolver struct {
	dir directory.Directory
}

// NewResolver creates an audience resolver backed by the account directory.
func NewResolver(dir directory.Directory) *Resolver {
	return &Resolver{dir: dir}
}

// Resolve returns the recipients for the notification's audience.
//
// An empty result is a resolution failure for every audience except
// AudienceAll: sending "all users" to an empty installation is a no-op,
// while "admins" resolving to nobody means the selector is pointless and
// the send must not proceed.
func (r *Resolver) Resolve(ctx context.Context, n Notification) ([]directory.Account, error) {
	var (
		accounts []directory.Account
		err      error
	)

	switch n.Audience {
	case AudienceAll:
		accounts, err = r.dir.ListAccounts(ctx, directory.RoleFilter{})
	case AudienceAdmins:
		accounts, err = r.dir.ListAccounts(ctx, directory.RoleFilter{Role: directory.RoleAdmin})
	case AudienceUsers:
		accounts, err = r.dir.ListAccounts(ctx, directory.RoleFilter{Role: directory.RoleUser})
	case AudienceSpecific:
		if len(n.TargetAccountIDs) == 0 {
			return nil, errors.Join(ErrEmptyAudience, errors.New("no target accounts selected"))
		}
		accounts, err = r.dir.FindAccounts(ctx, n.TargetAccountIDs)
	default:
		return nil, fmt.Errorf("unknown audience %q", n.Audience)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve audience %q: %w", n.Audience, err)
	}

	if len(accounts) == 0 && n.Audience != AudienceAll {
		return nil, errors.Join(ErrEmptyAudience, fmt.Errorf("audience %q matched no accounts", n.Audience))
	}

	return accounts, nil
}
