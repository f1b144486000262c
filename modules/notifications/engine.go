package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/waqfpal/console/core"
	"github.com/waqfpal/console/modules/directory"
	"github.com/waqfpal/console/pkg/logger"
)

const (
	defaultFanoutWorkers   = 8
	defaultDeliveryTimeout = 10 * time.Second
)

// Engine drives the broadcast lifecycle: it resolves the audience, fans the
// notification out to every recipient, and commits the status transition.
// The commit is a compare-and-set in storage, so a notification is sent at
// most once even when two processes race.
type Engine struct {
	storage   Storage
	resolver  *Resolver
	deliverer Deliverer
	dir       directory.Directory
	log       *slog.Logger
	now       func() time.Time

	workers         int
	deliveryTimeout time.Duration

	// inflight serializes concurrent sends of the same notification within
	// this process, so at most one of them pays the fan-out cost. Entries
	// are reference counted and removed once the last holder releases.
	mu       sync.Mutex
	inflight map[string]*inflightLock
}

type inflightLock struct {
	sync.Mutex
	refs int
}

// EngineOption customizes the broadcast engine.
type EngineOption func(*Engine)

// WithFanoutWorkers sets how many deliveries run concurrently. Panics on a
// non-positive count.
func WithFanoutWorkers(n int) EngineOption {
	if n < 1 {
		panic("notifications: fanout workers must be positive")
	}
	return func(e *Engine) { e.workers = n }
}

// WithDeliveryTimeout bounds each individual delivery attempt. Panics on a
// non-positive duration.
func WithDeliveryTimeout(d time.Duration) EngineOption {
	if d <= 0 {
		panic("notifications: delivery timeout must be positive")
	}
	return func(e *Engine) { e.deliveryTimeout = d }
}

// NewEngine creates a broadcast engine.
func NewEngine(storage Storage, dir directory.Directory, deliverer Deliverer, log *slog.Logger, opts ...EngineOption) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if deliverer == nil {
		deliverer = NoOpDeliverer{}
	}
	e := &Engine{
		storage:         storage,
		resolver:        NewResolver(dir),
		deliverer:       deliverer,
		dir:             dir,
		log:             log.With(logger.Component("notifications.engine")),
		now:             time.Now,
		workers:         defaultFanoutWorkers,
		deliveryTimeout: defaultDeliveryTimeout,
		inflight:        make(map[string]*inflightLock),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SendResult reports the outcome of a broadcast.
type SendResult struct {
	Notification *Notification `json:"notification"`
	SentCount    int           `json:"sent_count"`
	FailedCount  int           `json:"failed_count"`
}

type sendConfig struct {
	recipientIDs []string
}

// SendOption customizes a single Send call.
type SendOption func(*sendConfig)

// WithRecipients overrides the stored audience with an explicit recipient
// set for this send only. The stored audience selector is left untouched.
func WithRecipients(ids []string) SendOption {
	return func(c *sendConfig) { c.recipientIDs = ids }
}

// Send broadcasts the notification to its resolved audience and marks it
// sent. Individual delivery failures are logged and excluded from the sent
// count but never abort the broadcast. Sending a notification that is
// already sent or cancelled returns ErrInvalidStatus without touching any
// recipient.
func (e *Engine) Send(ctx context.Context, id string, opts ...SendOption) (*SendResult, error) {
	var cfg sendConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	unlock := e.lock(id)
	defer unlock()

	n, err := e.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Status.Terminal() {
		return nil, ErrInvalidStatus
	}

	recipients, err := e.resolveRecipients(ctx, *n, cfg)
	if err != nil {
		return nil, err
	}

	sent, failed := e.fanOut(ctx, *n, recipients)

	sentAt := e.now().UTC()
	updated, err := e.storage.MarkSent(ctx, id, sent, sentAt)
	if err != nil {
		return nil, err
	}

	e.log.InfoContext(ctx, "notification sent",
		logger.NotificationID(id),
		logger.Audience(string(n.Audience)),
		slog.Int("sent_count", sent),
		slog.Int("failed_count", failed),
	)

	return &SendResult{Notification: updated, SentCount: sent, FailedCount: failed}, nil
}

// Schedule moves a draft (or already scheduled) notification to the
// scheduled status with a new fire time. The time must be in the future.
func (e *Engine) Schedule(ctx context.Context, id string, at time.Time) (*Notification, error) {
	if !at.After(e.now()) {
		verr := core.NewValidationError()
		verr.Add("scheduled_for", "must be in the future")
		return nil, verr
	}
	n, err := e.storage.MarkScheduled(ctx, id, at.UTC())
	if err != nil {
		return nil, err
	}
	e.log.InfoContext(ctx, "notification scheduled",
		logger.NotificationID(id),
		slog.Time("scheduled_for", at.UTC()),
	)
	return n, nil
}

// Cancel moves a draft or scheduled notification to the cancelled status.
// Cancelled is terminal; the notification can never be sent afterwards.
func (e *Engine) Cancel(ctx context.Context, id string) (*Notification, error) {
	n, err := e.storage.MarkCancelled(ctx, id)
	if err != nil {
		return nil, err
	}
	e.log.InfoContext(ctx, "notification cancelled", logger.NotificationID(id))
	return n, nil
}

func (e *Engine) resolveRecipients(ctx context.Context, n Notification, cfg sendConfig) ([]directory.Account, error) {
	if len(cfg.recipientIDs) > 0 {
		accounts, err := e.dir.FindAccounts(ctx, cfg.recipientIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve recipients: %w", err)
		}
		if len(accounts) == 0 {
			return nil, ErrEmptyAudience
		}
		return accounts, nil
	}
	return e.resolver.Resolve(ctx, n)
}

// fanOut delivers to every recipient with bounded concurrency and returns
// the success and failure counts.
func (e *Engine) fanOut(ctx context.Context, n Notification, recipients []directory.Account) (sent, failed int) {
	if len(recipients) == 0 {
		return 0, 0
	}

	sem := make(chan struct{}, e.workers)
	results := make(chan error, len(recipients))

	var wg sync.WaitGroup
	for _, recipient := range recipients {
		wg.Add(1)
		go func(acc directory.Account) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			dctx, cancel := context.WithTimeout(ctx, e.deliveryTimeout)
			defer cancel()

			err := e.deliverer.Deliver(dctx, n, acc)
			if err != nil {
				e.log.WarnContext(ctx, "delivery failed",
					logger.NotificationID(n.ID),
					logger.AccountID(acc.ID),
					logger.Error(err),
				)
			}
			results <- err
		}(recipient)
	}
	wg.Wait()
	close(results)

	for err := range results {
		if err != nil {
			failed++
		} else {
			sent++
		}
	}
	return sent, failed
}

// lock acquires the per-notification mutex and returns its release func.
func (e *Engine) lock(id string) func() {
	e.mu.Lock()
	l, ok := e.inflight[id]
	if !ok {
		l = &inflightLock{}
		e.inflight[id] = l
	}
	l.refs++
	e.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()

		e.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(e.inflight, id)
		}
		e.mu.Unlock()
	}
}
