// Package scan runs the scanner session state machine: it owns the device
// handle, filters raw detections and raises one confirmation at a time.
package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Rorical/MiLista/internal/barcode"
	"github.com/Rorical/MiLista/internal/decoder"
	"github.com/Rorical/MiLista/internal/models"
)

// PendingScan is a validated detection awaiting the user's decision.
type PendingScan struct {
	ID         string
	Code       barcode.Code
	Format     decoder.Symbology
	DetectedAt time.Time
}

// Sink receives codes the user confirmed.
type Sink interface {
	Accept(code barcode.Code)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(code barcode.Code)

func (f SinkFunc) Accept(code barcode.Code) { f(code) }

// Controller is not safe for concurrent use; the core loop is its only caller.
type Controller struct {
	device  decoder.Device
	sink    Sink
	logger  *zap.Logger
	state   models.ScannerState
	stream  decoder.Stream
	events  <-chan decoder.Event
	pending *PendingScan
	gate    *Gate
	session uint64
	frames  uint64
}

func NewController(device decoder.Device, sink Sink, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		device: device,
		sink:   sink,
		logger: logger,
		state:  models.Idle,
	}
}

func (c *Controller) State() models.ScannerState {
	return c.state
}

// Pending returns the scan awaiting confirmation, if any.
func (c *Controller) Pending() (PendingScan, bool) {
	if c.pending == nil {
		return PendingScan{}, false
	}
	return *c.pending, true
}

// Frames counts decoding attempts in the current session.
func (c *Controller) Frames() uint64 {
	return c.frames
}

// Events is the live event stream of the open session. It is nil while
// Idle, so selecting on it blocks.
func (c *Controller) Events() <-chan decoder.Event {
	return c.events
}

// Start acquires the device and moves Idle → Active. A failure to open is a
// DecoderInitFailure and leaves the controller Idle.
func (c *Controller) Start(ctx context.Context) error {
	if c.state != models.Idle {
		return nil
	}
	if c.device == nil {
		return models.NewFailure(models.DecoderInitFailure, "scan.start", decoder.ErrNoDevice)
	}

	stream, err := c.device.Open(ctx)
	if err != nil {
		c.logger.Warn("scanner init failed", zap.Error(err))
		return models.NewFailure(models.DecoderInitFailure, "scan.start", err)
	}

	c.session++
	c.stream = stream
	c.events = stream.Events()
	c.frames = 0
	c.state = models.Active
	c.logger.Info("scanner started", zap.Uint64("session", c.session))
	return nil
}

// Stop releases the device from any state. A pending scan is discarded and
// its gate goes stale. No event of the closed session is handled afterwards.
func (c *Controller) Stop() error {
	stream := c.stream
	wasActive := c.state != models.Idle

	c.state = models.Idle
	c.stream = nil
	c.events = nil
	c.pending = nil
	c.gate = nil
	c.session++

	if stream == nil {
		return nil
	}
	if wasActive {
		c.logger.Info("scanner stopped", zap.Uint64("frames", c.frames))
	}
	if err := stream.Close(); err != nil {
		return fmt.Errorf("scan: release device: %w", err)
	}
	return nil
}

// Handle consumes one decoder event. It returns a Gate when a valid EAN-13
// detection moves the controller to AwaitingConfirmation, nil otherwise.
func (c *Controller) Handle(ev decoder.Event) *Gate {
	if c.state != models.Active {
		if d, ok := ev.(decoder.Detected); ok {
			c.logger.Debug("detection ignored",
				zap.String("state", c.state.String()),
				zap.String("code", d.Code))
		}
		return nil
	}

	switch e := ev.(type) {
	case decoder.FrameProcessed:
		c.frames++
		return nil
	case decoder.Detected:
		code, err := Validate(e)
		if err != nil {
			c.logger.Debug("invalid detection dropped",
				zap.String("code", e.Code),
				zap.String("format", string(e.Format)),
				zap.Error(err))
			return nil
		}

		c.pending = &PendingScan{
			ID:         uuid.NewString(),
			Code:       code,
			Format:     e.Format,
			DetectedAt: e.At,
		}
		c.gate = &Gate{ctrl: c, scan: *c.pending, session: c.session}
		c.state = models.AwaitingConfirmation
		c.logger.Debug("awaiting confirmation",
			zap.String("id", c.pending.ID),
			zap.String("code", code.String()))
		return c.gate
	}
	return nil
}

// Validate accepts a detection only if it is 13 ASCII digits reported as EAN-13.
func Validate(d decoder.Detected) (barcode.Code, error) {
	if d.Format != decoder.EAN13 {
		return "", models.NewFailure(models.InvalidDetection, "scan.validate",
			fmt.Errorf("symbology %q is not %s", d.Format, decoder.EAN13))
	}
	code, err := barcode.Parse(d.Code)
	if err != nil {
		return "", models.NewFailure(models.InvalidDetection, "scan.validate", err)
	}
	return code, nil
}

func (c *Controller) owns(g *Gate) bool {
	return c.gate == g && g.session == c.session && c.state == models.AwaitingConfirmation
}

func (c *Controller) resume() {
	c.pending = nil
	c.gate = nil
	c.state = models.Active
}
