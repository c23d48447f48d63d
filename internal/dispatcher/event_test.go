package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/MiLista/internal/eventbus"
	"github.com/Rorical/MiLista/internal/update"
)

func TestListenForCoreEvents(t *testing.T) {
	eb := eventbus.NewEventBus()
	defer eb.Close()
	ed := NewEventDispatcher(eb)
	defer ed.Stop()

	require.NoError(t, eb.SendToUI(eventbus.ConfirmationRequestEvent{ID: "abc", Code: "7501234567890"}))

	msg := ed.ListenForCoreEvents()()
	coreMsg, ok := msg.(update.CoreEventMsg)
	require.True(t, ok)
	assert.Equal(t, eventbus.ConfirmationRequestEvent{ID: "abc", Code: "7501234567890"}, coreMsg.Event)
}

func TestListenForCoreEvents_StopAndClose(t *testing.T) {
	eb := eventbus.NewEventBus()
	ed := NewEventDispatcher(eb)

	ed.Stop()
	assert.Nil(t, ed.ListenForCoreEvents()())

	ed = NewEventDispatcher(eb)
	defer ed.Stop()
	eb.Close()
	assert.Nil(t, ed.ListenForCoreEvents()())
}
