package bus

import (
	"context"
	"sync"
)

// memorySubBuffer bounds undelivered messages per subscription before
// Publish blocks on that subscriber.
const memorySubBuffer = 64

// Memory implements Bus in-process. Used by tests and single-node
// development runs where Redis is not available.
type Memory struct {
	mu   sync.Mutex
	subs map[*memorySubscription]struct{}
}

// NewMemory constructs an empty in-process bus.
func NewMemory() *Memory {
	return &Memory{subs: make(map[*memorySubscription]struct{})}
}

// Publish delivers to every subscription currently holding the topic.
func (b *Memory) Publish(_ context.Context, topic string, payload []byte) error {
	msg := Message{Topic: topic, Payload: append([]byte(nil), payload...)}

	b.mu.Lock()
	targets := make([]*memorySubscription, 0, len(b.subs))
	for s := range b.subs {
		if s.holds(topic) {
			targets = append(targets, s)
		}
	}
	b.mu.Unlock()

	for _, s := range targets {
		s.deliver(msg)
	}
	return nil
}

// Subscribe opens a subscription on the given topics.
func (b *Memory) Subscribe(_ context.Context, topics ...string) (Subscription, error) {
	s := &memorySubscription{
		bus:    b,
		topics: make(map[string]struct{}, len(topics)),
		in:     make(chan Message, memorySubBuffer),
		out:    make(chan Message),
		done:   make(chan struct{}),
	}
	for _, t := range topics {
		s.topics[t] = struct{}{}
	}
	go s.pump()

	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s, nil
}

type memorySubscription struct {
	bus *Memory

	// in is fed by Publish; pump moves messages to out so that only the
	// pump goroutine ever closes out.
	in   chan Message
	out  chan Message
	done chan struct{}

	mu     sync.Mutex
	topics map[string]struct{}

	closeOnce sync.Once
}

func (s *memorySubscription) pump() {
	defer close(s.out)
	for {
		select {
		case m := <-s.in:
			select {
			case s.out <- m:
			case <-s.done:
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *memorySubscription) holds(topic string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.topics[topic]
	return ok
}

// deliver blocks on a full buffer unless the subscription closes first.
func (s *memorySubscription) deliver(msg Message) {
	select {
	case s.in <- msg:
	case <-s.done:
	}
}

func (s *memorySubscription) Add(_ context.Context, topics ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range topics {
		s.topics[t] = struct{}{}
	}
	return nil
}

func (s *memorySubscription) Messages() <-chan Message { return s.out }

func (s *memorySubscription) Close() error {
	s.closeOnce.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		s.bus.mu.Unlock()
		close(s.done)
	})
	return nil
}
