package gateway

import (
	"context"

	"github.com/emberchat/ember/internal/bus"
)

// subscriptionRouter owns a connection's bus subscriber and tracks which
// topics it holds. It is used only by the goroutine servicing that
// connection, so it needs no locking.
type subscriptionRouter struct {
	sub    bus.Subscription
	topics map[string]struct{}
}

func newSubscriptionRouter(sub bus.Subscription, initial []string) *subscriptionRouter {
	r := &subscriptionRouter{sub: sub, topics: make(map[string]struct{}, len(initial))}
	for _, t := range initial {
		r.topics[t] = struct{}{}
	}
	return r
}

// Subscribe adds a topic. Additive only; re-subscribing to a held topic
// is a no-op, so subsequent events are never delivered twice.
func (r *subscriptionRouter) Subscribe(ctx context.Context, topic string) error {
	if _, ok := r.topics[topic]; ok {
		return nil
	}
	if err := r.sub.Add(ctx, topic); err != nil {
		return err
	}
	r.topics[topic] = struct{}{}
	return nil
}

// Messages exposes the underlying subscriber stream.
func (r *subscriptionRouter) Messages() <-chan bus.Message { return r.sub.Messages() }

// Close tears down the bus subscriber, releasing all topics.
func (r *subscriptionRouter) Close() error { return r.sub.Close() }
