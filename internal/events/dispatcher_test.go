package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_PublishReachesSubscribers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var seen []Event
	d.Subscribe(EventLicitationCreated, func(_ context.Context, event Event) error {
		seen = append(seen, event)
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventLicitationCreated, SubjectID: "lic-1"})
	require.NoError(t, err)
	require.Len(t, seen, 1)
	assert.Equal(t, "lic-1", seen[0].SubjectID)
}

func TestDispatcher_UnsubscribedTypeIgnored(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	called := false
	d.Subscribe(EventLicitationDeleted, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventUserRegistered}))
	assert.False(t, called)
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	t.Parallel()

	d := NewInMemoryDispatcher()
	var order []string
	d.Subscribe(EventLicitationUpdated, func(context.Context, Event) error {
		order = append(order, "first")
		return errors.New("boom")
	})
	d.Subscribe(EventLicitationUpdated, func(context.Context, Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventLicitationUpdated}))
	assert.Equal(t, []string{"first", "second"}, order)
}
