package notifications

import (
	"context"
	"errors"

	"github.com/waqfpal/console/modules/directory"
)

// Deliverer hands a notification to a single recipient. Implementations
// must be safe for concurrent use; the broadcast engine fans out across
// recipients from multiple goroutines.
type Deliverer interface {
	Deliver(ctx context.Context, n Notification, recipient directory.Account) error
}

// DelivererFunc adapts a function to the Deliverer interface.
type DelivererFunc func(ctx context.Context, n Notification, recipient directory.Account) error

func (f DelivererFunc) Deliver(ctx context.Context, n Notification, recipient directory.Account) error {
	return f(ctx, n, recipient)
}

// NoOpDeliverer accepts every delivery without doing anything. Useful in
// tests and in deployments where the count of reachable recipients is all
// that matters.
type NoOpDeliverer struct{}

func (NoOpDeliverer) Deliver(ctx context.Context, n Notification, recipient directory.Account) error {
	return nil
}

// MultiDeliverer fans a single delivery out to several channels. The
// recipient counts as delivered only when every channel succeeds, so a
// partial failure keeps the recipient out of the sent count.
type MultiDeliverer []Deliverer

func (m MultiDeliverer) Deliver(ctx context.Context, n Notification, recipient directory.Account) error {
	var errs []error
	for _, d := range m {
		if err := d.Deliver(ctx, n, recipient); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
