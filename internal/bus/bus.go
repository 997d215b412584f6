// Package bus provides the publish/subscribe transport used to fan
// events out to gateway connections.
package bus

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

// Message is one payload received from a subscribed topic.
type Message struct {
	Topic   string
	Payload []byte
}

// Subscription is one consumer's handle on a set of topics. A gateway
// connection owns exactly one.
type Subscription interface {
	// Add subscribes additional topics. Adding a topic already held is a
	// no-op at the bus level; callers still see each payload once.
	Add(ctx context.Context, topics ...string) error
	// Messages yields received payloads in per-topic publish order. The
	// channel closes when the subscription is closed.
	Messages() <-chan Message
	// Close tears down the subscription and releases all topics.
	Close() error
}

// Bus is the only contract the messaging core needs from its transport.
type Bus interface {
	// Publish sends a payload to every current subscriber of the topic.
	Publish(ctx context.Context, topic string, payload []byte) error
	// Subscribe opens a new subscription on the given topics.
	Subscribe(ctx context.Context, topics ...string) (Subscription, error)
}

// UserTopic names the personal topic for targeted delivery to one user.
func UserTopic(userID uuid.UUID) string { return "user:" + userID.String() }

// ChannelTopic names the broadcast topic for one channel's subscribers.
func ChannelTopic(channelID uuid.UUID) string { return "channel:" + channelID.String() }
