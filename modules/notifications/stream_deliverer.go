package notifications

import (
	"context"
	"log/slog"
	"sync"

	"github.com/waqfpal/console/modules/directory"
	"github.com/waqfpal/console/pkg/broadcast"
	"github.com/waqfpal/console/pkg/cache"
	"github.com/waqfpal/console/pkg/logger"
)

const (
	defaultStreamBuffer = 16
	defaultMaxStreams   = 10000
)

// StreamDeliverer pushes sent notifications to connected clients in real
// time. Each account gets its own broadcaster; a bounded LRU keeps the
// per-account broadcasters from growing without limit, closing the least
// recently active one on eviction.
type StreamDeliverer struct {
	streams    *cache.LRUCache[string, broadcast.Broadcaster[Notification]]
	bufferSize int
	log        *slog.Logger
	mu         sync.Mutex
}

// StreamDelivererOption configures a StreamDeliverer.
type StreamDelivererOption func(*streamConfig)

type streamConfig struct {
	bufferSize int
	maxStreams int
	log        *slog.Logger
}

// WithStreamBuffer sets the per-subscriber channel capacity. Panics on a
// non-positive size.
func WithStreamBuffer(n int) StreamDelivererOption {
	if n < 1 {
		panic("notifications: stream buffer must be positive")
	}
	return func(c *streamConfig) { c.bufferSize = n }
}

// WithMaxStreams caps how many per-account broadcasters are kept alive.
// Panics on a non-positive limit.
func WithMaxStreams(n int) StreamDelivererOption {
	if n < 1 {
		panic("notifications: max streams must be positive")
	}
	return func(c *streamConfig) { c.maxStreams = n }
}

// WithStreamLogger sets the logger.
func WithStreamLogger(log *slog.Logger) StreamDelivererOption {
	return func(c *streamConfig) { c.log = log }
}

// NewStreamDeliverer creates a realtime stream deliverer.
func NewStreamDeliverer(opts ...StreamDelivererOption) *StreamDeliverer {
	cfg := &streamConfig{
		bufferSize: defaultStreamBuffer,
		maxStreams: defaultMaxStreams,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	d := &StreamDeliverer{
		streams:    cache.NewLRUCache[string, broadcast.Broadcaster[Notification]](cfg.maxStreams),
		bufferSize: cfg.bufferSize,
		log:        cfg.log.With(logger.Component("notifications.stream")),
	}
	d.streams.SetEvictCallback(func(accountID string, b broadcast.Broadcaster[Notification]) {
		if err := b.Close(); err != nil {
			d.log.Error("failed to close evicted stream",
				logger.AccountID(accountID),
				logger.Error(err),
			)
		}
	})
	return d
}

// Deliver pushes the notification onto the recipient's live stream. An
// account with no connected subscribers still counts as delivered; the
// inbox copy is the durable record, the stream is best effort on top.
func (d *StreamDeliverer) Deliver(ctx context.Context, n Notification, recipient directory.Account) error {
	return d.broadcaster(recipient.ID).Broadcast(ctx, broadcast.Message[Notification]{Data: n})
}

// Subscribe returns a live subscription to the account's notifications,
// torn down when the context is cancelled. Used by the SSE endpoint.
func (d *StreamDeliverer) Subscribe(ctx context.Context, accountID string) broadcast.Subscriber[Notification] {
	return d.broadcaster(accountID).Subscribe(ctx)
}

// Close shuts down every per-account broadcaster.
func (d *StreamDeliverer) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.streams.Clear()
	return nil
}

func (d *StreamDeliverer) broadcaster(accountID string) broadcast.Broadcaster[Notification] {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.streams.Get(accountID)
	if !ok {
		b = broadcast.NewMemoryBroadcaster[Notification](d.bufferSize)
		d.streams.Put(accountID, b)
	}
	return b
}

var _ Deliverer = (*StreamDeliverer)(nil)
