package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-foundation/framework/container"
	"github.com/km-arc/go-foundation/framework/events"
)

func TestDispatch_ListenersRunInRegistrationOrder(t *testing.T) {
	d := events.New()

	var order []string
	d.Listen("user.created", func(string, any) error {
		order = append(order, "first")
		return nil
	})
	d.Listen("user.created", func(string, any) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, d.Dispatch("user.created", nil))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDispatch_PayloadAndEventNameDelivered(t *testing.T) {
	d := events.New()

	var gotEvent string
	var gotPayload any
	d.Listen("cache.flushed", func(event string, payload any) error {
		gotEvent, gotPayload = event, payload
		return nil
	})

	require.NoError(t, d.Dispatch("cache.flushed", 42))
	assert.Equal(t, "cache.flushed", gotEvent)
	assert.Equal(t, 42, gotPayload)
}

func TestDispatch_StopsAtFirstListenerError(t *testing.T) {
	d := events.New()
	boom := errors.New("boom")

	var secondRan bool
	d.Listen("deploy", func(string, any) error { return boom })
	d.Listen("deploy", func(string, any) error {
		secondRan = true
		return nil
	})

	err := d.Dispatch("deploy", nil)
	require.ErrorIs(t, err, boom)
	assert.False(t, secondRan)
}

func TestDispatch_NoListenersIsNoop(t *testing.T) {
	d := events.New()
	require.NoError(t, d.Dispatch("nobody.cares", nil))
}

func TestHasListeners_And_Forget(t *testing.T) {
	d := events.New()
	d.Listen("user.created", func(string, any) error { return nil })

	require.True(t, d.HasListeners("user.created"))

	d.Forget("user.created")
	require.False(t, d.HasListeners("user.created"))
}

// ── Subscribers ───────────────────────────────────────────────────────────────

type auditSubscriber struct {
	events []string
}

func (s *auditSubscriber) Subscribe(d *events.Dispatcher) {
	d.Listen("user.created", func(event string, _ any) error {
		s.events = append(s.events, event)
		return nil
	})
}

func TestSubscribe_ResolvesSubscriberFromRegistry(t *testing.T) {
	r := container.New()
	sub := &auditSubscriber{}
	r.Instance("audit", sub)

	d := events.NewWithRegistry(r)
	require.NoError(t, d.Subscribe("audit"))

	require.NoError(t, d.Dispatch("user.created", nil))
	assert.Equal(t, []string{"user.created"}, sub.events)
}

func TestSubscribe_NonSubscriberFails(t *testing.T) {
	r := container.New()
	r.Instance("not-a-subscriber", 42)

	d := events.NewWithRegistry(r)
	err := d.Subscribe("not-a-subscriber")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a Subscriber")
}

func TestSubscribe_StandaloneDispatcherFails(t *testing.T) {
	d := events.New()
	require.Error(t, d.Subscribe("anything"))
}
