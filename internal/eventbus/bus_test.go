package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_RoundTrip(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(ManualEntryEvent{Input: "7501234567890"}))
	require.NoError(t, eb.SendToUI(ConfirmationRequestEvent{ID: "x", Code: "7501234567890"}))

	assert.Equal(t, ManualEntryEvent{Input: "7501234567890"}, <-eb.UIToCore())
	assert.Equal(t, ConfirmationRequestEvent{ID: "x", Code: "7501234567890"}, <-eb.CoreToUI())
}

func TestEventBus_FullChannelOpensCircuit(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(e EventBusError) { reported = append(reported, e) })

	for i := 0; i < 100; i++ {
		require.NoError(t, eb.SendToUI(StateUpdateEvent{}))
	}
	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrCoreToUI)
	}

	assert.Equal(t, CircuitOpen, eb.GetCircuitBreakerState())
	assert.ErrorIs(t, eb.SendToCore(ToggleScannerEvent{}), ErrCircuitOpen)
	assert.Len(t, reported, 6)
	assert.Equal(t, "SendToUI", reported[0].Operation)
}

func TestCircuitBreaker_HalfOpenAfterTimeout(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)
	now := time.Now()
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.False(t, cb.IsOpen())
	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	now = now.Add(2 * time.Minute)
	assert.False(t, cb.IsOpen())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestEventBus_SendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	assert.ErrorIs(t, eb.SendToCore(ToggleScannerEvent{}), ErrClosed)
	assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrClosed)
}
