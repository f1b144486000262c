// Package broadcast provides type-safe in-process publish/subscribe fan-out.
//
// A Broadcaster sends each message to every current Subscriber. Delivery is
// best effort: a subscriber whose buffer is full has the message dropped so
// one slow consumer never blocks the publisher. Subscriptions are scoped to
// a context and torn down automatically when it is cancelled.
package broadcast
