package inspect_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comalice/storex"
	"github.com/comalice/storex/inspect"
)

func TestChannelPublisher_Delivers(t *testing.T) {
	ch := make(chan inspect.BuiltEvent, 4)
	p := inspect.NewChannelPublisher("counter", ch)

	_, store := mountCounter(t)
	require.NoError(t, p.Publish(context.Background(), *store))

	event := <-ch
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, "counter", event.Snapshot.Name)
	assert.Len(t, event.Snapshot.Modules, 2)
	assert.False(t, event.Timestamp.IsZero())
}

func TestChannelPublisher_DropsWhenFull(t *testing.T) {
	ch := make(chan inspect.BuiltEvent, 1)
	p := inspect.NewChannelPublisher("counter", ch)

	// Two builders report on the first render; the second event is dropped.
	mountCounter(t, storex.WithOnBuilt(p.Hook()))
	assert.Len(t, ch, 1)
	assert.Equal(t, 1, p.Dropped())
}

func TestChannelPublisher_UniqueIDs(t *testing.T) {
	ch := make(chan inspect.BuiltEvent, 2)
	p := inspect.NewChannelPublisher("counter", ch)
	mountCounter(t, storex.WithOnBuilt(p.Hook()))

	first, second := <-ch, <-ch
	assert.NotEqual(t, first.ID, second.ID)
	_, isChild := first.Snapshot.Module("child")
	assert.True(t, isChild)
	assert.Len(t, second.Snapshot.Modules, 2)
}

func TestChannelPublisher_Close(t *testing.T) {
	ch := make(chan inspect.BuiltEvent, 1)
	p := inspect.NewChannelPublisher("counter", ch)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	_, open := <-ch
	assert.False(t, open)

	assert.NoError(t, p.Publish(context.Background(), storex.NewStore()))
	assert.Zero(t, p.Dropped())
}

func TestChannelPublisher_CanceledContext(t *testing.T) {
	ch := make(chan inspect.BuiltEvent)
	p := inspect.NewChannelPublisher("counter", ch)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Publish(ctx, storex.NewStore())
	// Either the cancellation or the drop branch may win the select.
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	} else {
		assert.Equal(t, 1, p.Dropped())
	}
}
