package bus

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis implements Bus over Redis pub/sub.
type Redis struct {
	client *redis.Client
}

// NewRedis wraps an existing Redis client. The client is shared and
// thread-safe; each Subscribe opens its own pub/sub connection.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Publish sends the payload to one topic.
func (b *Redis) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.client.Publish(ctx, topic, payload).Err()
}

// Subscribe opens a dedicated pub/sub connection for the topics.
func (b *Redis) Subscribe(ctx context.Context, topics ...string) (Subscription, error) {
	ps := b.client.Subscribe(ctx, topics...)
	// Wait for the server to confirm before reporting success.
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, err
	}

	sub := &redisSubscription{ps: ps, out: make(chan Message)}
	go sub.pump()
	return sub, nil
}

type redisSubscription struct {
	ps  *redis.PubSub
	out chan Message
}

// pump converts driver messages into bus messages until Close.
func (s *redisSubscription) pump() {
	defer close(s.out)
	for m := range s.ps.Channel() {
		s.out <- Message{Topic: m.Channel, Payload: []byte(m.Payload)}
	}
}

func (s *redisSubscription) Add(ctx context.Context, topics ...string) error {
	return s.ps.Subscribe(ctx, topics...)
}

func (s *redisSubscription) Messages() <-chan Message { return s.out }

func (s *redisSubscription) Close() error { return s.ps.Close() }
