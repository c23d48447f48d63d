package scan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/MiLista/internal/barcode"
	"github.com/Rorical/MiLista/internal/cart"
	"github.com/Rorical/MiLista/internal/decoder"
	"github.com/Rorical/MiLista/internal/models"
)

type fakeStream struct {
	events chan decoder.Event
	closed int
}

func (s *fakeStream) Events() <-chan decoder.Event { return s.events }

func (s *fakeStream) Close() error {
	s.closed++
	return nil
}

type fakeDevice struct {
	opened  int
	streams []*fakeStream
	err     error
}

func (d *fakeDevice) Open(ctx context.Context) (decoder.Stream, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.opened++
	s := &fakeStream{events: make(chan decoder.Event, 8)}
	d.streams = append(d.streams, s)
	return s, nil
}

func (d *fakeDevice) last() *fakeStream {
	return d.streams[len(d.streams)-1]
}

func ean(code string) decoder.Detected {
	return decoder.Detected{Code: code, Format: decoder.EAN13, At: time.Now()}
}

func newTestController(t *testing.T) (*Controller, *fakeDevice, *cart.List) {
	t.Helper()
	dev := &fakeDevice{}
	list := cart.NewList()
	c := NewController(dev, list, nil)
	require.NoError(t, c.Start(context.Background()))
	return c, dev, list
}

func TestController_StartStop(t *testing.T) {
	dev := &fakeDevice{}
	c := NewController(dev, nil, nil)
	assert.Equal(t, models.Idle, c.State())
	assert.Nil(t, c.Events())

	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, models.Active, c.State())
	assert.NotNil(t, c.Events())
	assert.Equal(t, 1, dev.opened)

	// Start while active does not reacquire.
	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, 1, dev.opened)

	require.NoError(t, c.Stop())
	assert.Equal(t, models.Idle, c.State())
	assert.Nil(t, c.Events())
	assert.Equal(t, 1, dev.last().closed)

	// Stop while idle is harmless.
	require.NoError(t, c.Stop())
	assert.Equal(t, 1, dev.last().closed)
}

func TestController_StartFailureStaysIdle(t *testing.T) {
	boom := errors.New("camera busy")
	c := NewController(&fakeDevice{err: boom}, nil, nil)

	err := c.Start(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	var failure *models.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, models.DecoderInitFailure, failure.Kind)
	assert.Equal(t, models.Idle, c.State())
}

func TestController_NoDevice(t *testing.T) {
	c := NewController(nil, nil, nil)
	err := c.Start(context.Background())
	assert.ErrorIs(t, err, decoder.ErrNoDevice)
	assert.True(t, errors.Is(err, &models.Failure{Kind: models.DecoderInitFailure}))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   decoder.Detected
		ok   bool
	}{
		{"valid", ean("7501234567890"), true},
		{"short", ean("12345"), false},
		{"letters", ean("75012345678ab"), false},
		{"long", ean("75012345678901"), false},
		{"wrong symbology", decoder.Detected{Code: "7501234567890", Format: decoder.Code128}, false},
		{"unknown symbology", decoder.Detected{Code: "7501234567890"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Validate(tt.in)
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, barcode.Code(tt.in.Code), code)
				return
			}
			assert.True(t, errors.Is(err, &models.Failure{Kind: models.InvalidDetection}))
		})
	}
}

func TestController_InvalidDetectionDropped(t *testing.T) {
	c, _, _ := newTestController(t)

	assert.Nil(t, c.Handle(ean("12345")))
	assert.Nil(t, c.Handle(decoder.Detected{Code: "7501234567890", Format: decoder.QR}))
	assert.Equal(t, models.Active, c.State())
	_, pending := c.Pending()
	assert.False(t, pending)
}

func TestController_FramesCounted(t *testing.T) {
	c, _, _ := newTestController(t)
	for i := 0; i < 5; i++ {
		c.Handle(decoder.FrameProcessed{At: time.Now()})
	}
	assert.Equal(t, uint64(5), c.Frames())
}

func TestController_ValidDetectionRaisesGate(t *testing.T) {
	c, _, _ := newTestController(t)

	gate := c.Handle(ean("7501234567890"))

	require.NotNil(t, gate)
	assert.Equal(t, models.AwaitingConfirmation, c.State())
	p, ok := c.Pending()
	require.True(t, ok)
	assert.Equal(t, barcode.Code("7501234567890"), p.Code)
	assert.Equal(t, p.ID, gate.ID())
	assert.NotEmpty(t, gate.ID())
}

func TestController_DetectionsIgnoredWhileAwaiting(t *testing.T) {
	c, _, _ := newTestController(t)
	gate := c.Handle(ean("7501234567890"))
	require.NotNil(t, gate)

	assert.Nil(t, c.Handle(ean("7401000000017")))
	assert.Nil(t, c.Handle(ean("7501234567890")))

	p, _ := c.Pending()
	assert.Equal(t, barcode.Code("7501234567890"), p.Code, "pending scan unchanged")
	assert.Equal(t, models.AwaitingConfirmation, c.State())
}

func TestController_IdleDropsEvents(t *testing.T) {
	c := NewController(&fakeDevice{}, nil, nil)
	assert.Nil(t, c.Handle(ean("7501234567890")))
	assert.Equal(t, models.Idle, c.State())
}

func TestGate_ConfirmAddsAndResumes(t *testing.T) {
	c, _, list := newTestController(t)
	gate := c.Handle(ean("7501234567890"))

	code, err := gate.Confirm()

	require.NoError(t, err)
	assert.Equal(t, barcode.Code("7501234567890"), code)
	assert.Equal(t, models.Active, c.State())
	assert.Equal(t, 1, list.Len())
	_, pending := c.Pending()
	assert.False(t, pending)
}

func TestGate_CancelResumesWithoutMutation(t *testing.T) {
	c, _, list := newTestController(t)
	gate := c.Handle(ean("7501234567890"))

	require.NoError(t, gate.Cancel())

	assert.Equal(t, models.Active, c.State())
	assert.Equal(t, 0, list.Len())
}

func TestGate_SingleDecision(t *testing.T) {
	c, _, list := newTestController(t)
	gate := c.Handle(ean("7501234567890"))

	_, err := gate.Confirm()
	require.NoError(t, err)
	_, err = gate.Confirm()
	assert.ErrorIs(t, err, ErrGateClosed)
	assert.ErrorIs(t, gate.Cancel(), ErrGateClosed)

	item, _ := list.Get("7501234567890")
	assert.Equal(t, 1, item.Quantity)
}

func TestGate_StaleAfterStop(t *testing.T) {
	c, dev, list := newTestController(t)
	gate := c.Handle(ean("7501234567890"))
	require.NotNil(t, gate)

	require.NoError(t, c.Stop())
	assert.Equal(t, 1, dev.last().closed)

	_, err := gate.Confirm()
	assert.ErrorIs(t, err, ErrStaleGate)
	assert.Equal(t, 0, list.Len())
	assert.Equal(t, models.Idle, c.State(), "a stale gate does not resume scanning")
}

func TestGate_StaleAfterRestart(t *testing.T) {
	c, _, list := newTestController(t)
	gate := c.Handle(ean("7501234567890"))
	require.NoError(t, c.Stop())
	require.NoError(t, c.Start(context.Background()))

	assert.ErrorIs(t, gate.Cancel(), ErrStaleGate)
	assert.Equal(t, models.Active, c.State())
	assert.Equal(t, 0, list.Len())
}

func TestScenario_ScanConfirmTwice(t *testing.T) {
	c, _, list := newTestController(t)

	for i := 0; i < 2; i++ {
		gate := c.Handle(ean("7501234567890"))
		require.NotNil(t, gate)
		_, err := gate.Confirm()
		require.NoError(t, err)
	}

	require.Equal(t, 1, list.Len())
	item, _ := list.Get("7501234567890")
	assert.Equal(t, 2, item.Quantity)
}

func TestSinkFunc(t *testing.T) {
	var got []barcode.Code
	c := NewController(&fakeDevice{}, SinkFunc(func(code barcode.Code) {
		got = append(got, code)
	}), nil)
	require.NoError(t, c.Start(context.Background()))

	gate := c.Handle(ean("7501234567890"))
	_, err := gate.Confirm()
	require.NoError(t, err)
	assert.Equal(t, []barcode.Code{"7501234567890"}, got)
}
