// Package decoder adapts barcode scanner hardware to a stream of detection
// events. Decoding itself happens in the scanner; this package only frames
// its output and reports which symbology produced it.
package decoder

import (
	"context"
	"errors"
	"time"
)

// ErrNoDevice is returned when a session is started without a scanner configured.
var ErrNoDevice = errors.New("decoder: no scanner device configured")

// Symbology identifies the barcode encoding reported alongside a code.
type Symbology string

const (
	Unknown Symbology = ""
	EAN13   Symbology = "ean_13"
	EAN8    Symbology = "ean_8"
	UPCE    Symbology = "upc_e"
	Code128 Symbology = "code_128"
	Code39  Symbology = "code_39"
	QR      Symbology = "qr_code"
	Matrix  Symbology = "data_matrix"
)

// ParseSymbology maps a configured format name to a Symbology.
func ParseSymbology(s string) (Symbology, bool) {
	switch Symbology(s) {
	case EAN13, EAN8, UPCE, Code128, Code39, QR, Matrix:
		return Symbology(s), true
	case Unknown:
		return Unknown, true
	}
	return Unknown, false
}

// Event is emitted by an open Stream. It is either Detected or FrameProcessed.
type Event interface {
	decoderEvent()
}

// Detected carries one decoded read. Code is raw and unvalidated.
type Detected struct {
	Code   string
	Format Symbology
	At     time.Time
}

// FrameProcessed marks one decoding attempt, successful or not.
type FrameProcessed struct {
	At time.Time
}

func (Detected) decoderEvent()       {}
func (FrameProcessed) decoderEvent() {}

// Stream is an acquired scanner. Events is closed once the stream ends,
// either because the device went away or because Close was called.
type Stream interface {
	Events() <-chan Event
	Close() error
}

// Device opens scanner sessions. Each Open acquires the hardware until
// the returned Stream is closed.
type Device interface {
	Open(ctx context.Context) (Stream, error)
}
