package bus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryBus_FanOut(t *testing.T) {
	t.Parallel()
	b := NewMemory()
	ctx := context.Background()

	sub1, err := b.Subscribe(ctx, "channel:x")
	require.NoError(t, err)
	defer sub1.Close()
	sub2, err := b.Subscribe(ctx, "channel:x")
	require.NoError(t, err)
	defer sub2.Close()
	bystander, err := b.Subscribe(ctx, "channel:y")
	require.NoError(t, err)
	defer bystander.Close()

	require.NoError(t, b.Publish(ctx, "channel:x", []byte("hi")))

	for _, sub := range []Subscription{sub1, sub2} {
		m := recvMessage(t, sub)
		require.Equal(t, "channel:x", m.Topic)
		require.Equal(t, "hi", string(m.Payload))
	}

	select {
	case m := <-bystander.Messages():
		t.Fatalf("bystander received %q on %q", m.Payload, m.Topic)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBus_AddAndOrdering(t *testing.T) {
	t.Parallel()
	b := NewMemory()
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, "user:a")
	require.NoError(t, err)
	defer sub.Close()
	require.NoError(t, sub.Add(ctx, "channel:b"))
	// re-adding a held topic must not double deliveries
	require.NoError(t, sub.Add(ctx, "channel:b"))

	require.NoError(t, b.Publish(ctx, "channel:b", []byte("one")))
	require.NoError(t, b.Publish(ctx, "channel:b", []byte("two")))

	require.Equal(t, "one", string(recvMessage(t, sub).Payload))
	require.Equal(t, "two", string(recvMessage(t, sub).Payload))

	select {
	case m := <-sub.Messages():
		t.Fatalf("unexpected extra message %q", m.Payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemoryBus_CloseStopsDelivery(t *testing.T) {
	t.Parallel()
	b := NewMemory()
	ctx := context.Background()

	sub, err := b.Subscribe(ctx, "channel:x")
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	// Publish after close must not block or panic.
	require.NoError(t, b.Publish(ctx, "channel:x", []byte("late")))

	select {
	case _, ok := <-sub.Messages():
		require.False(t, ok, "stream should be closed")
	case <-time.After(time.Second):
		t.Fatalf("messages channel did not close")
	}
}
