package bus

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/emberchat/ember/internal/model"
)

// Publisher is the bridge between the write path and the bus. It is
// called synchronously after a state-changing operation has been
// persisted; failures are logged and swallowed because event delivery is
// best-effort and never part of the write's atomicity.
type Publisher struct {
	bus Bus
	log *zap.Logger
}

// NewPublisher constructs a publish bridge.
func NewPublisher(b Bus, log *zap.Logger) *Publisher {
	return &Publisher{bus: b, log: log}
}

// Publish serializes the event and pushes it onto the topic.
func (p *Publisher) Publish(ctx context.Context, topic string, ev model.ServerEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("encode event", zap.String("topic", topic), zap.Error(err))
		return
	}
	if err := p.bus.Publish(ctx, topic, payload); err != nil {
		p.log.Error("publish event", zap.String("topic", topic), zap.Error(err))
	}
}
