package broadcast

import "context"

// Message wraps a payload of type T for type-safe fan-out.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster. Implementations must be
// safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the channel messages arrive on. The channel is closed
	// when the subscriber or its broadcaster is closed.
	Receive(ctx context.Context) <-chan Message[T]

	// Close releases the subscription. Safe to call repeatedly.
	Close() error
}

// Broadcaster fans messages out to all current subscribers. Slow consumers
// have messages dropped rather than blocking the publisher.
type Broadcaster[T any] interface {
	// Subscribe registers a new subscriber. Cancelling the context tears the
	// subscription down.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast sends the message to every active subscriber.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Close shuts the broadcaster down and closes every subscriber.
	Close() error
}
