package decoder

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseAIM(t *testing.T) {
	tests := []struct {
		line       string
		wantCode   string
		wantFormat Symbology
	}{
		{"]E07501234567890", "7501234567890", EAN13},
		{"]E475012345", "75012345", EAN8},
		{"]C1ABC-123", "ABC-123", Code128},
		{"]A0HELLO", "HELLO", Code39},
		{"]Q1https://example.com", "https://example.com", QR},
		{"]Z9whatever", "whatever", Unknown},
		{"7501234567890", "7501234567890", EAN13},
		{"]E", "]E", EAN13},
	}
	for _, tt := range tests {
		code, format := ParseAIM(tt.line, EAN13)
		assert.Equal(t, tt.wantCode, code, tt.line)
		assert.Equal(t, tt.wantFormat, format, tt.line)
	}
}

func TestParseSymbology(t *testing.T) {
	s, ok := ParseSymbology("ean_13")
	assert.True(t, ok)
	assert.Equal(t, EAN13, s)

	_, ok = ParseSymbology("pdf417")
	assert.False(t, ok)
}

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("stream did not end")
			return out
		}
	}
}

func TestLineDevice_EmitsFramesAndDetections(t *testing.T) {
	src := "]E07501234567890\r\n\nABC\n"
	dev := NewLineDevice(func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(src)), nil
	}, Options{AssumeFormat: Code128})

	stream, err := dev.Open(context.Background())
	require.NoError(t, err)
	defer stream.Close()

	events := collect(t, stream.Events())

	var detections []Detected
	frames := 0
	for _, ev := range events {
		switch e := ev.(type) {
		case Detected:
			detections = append(detections, e)
		case FrameProcessed:
			frames++
		}
	}
	assert.Equal(t, 3, frames, "one frame per line, empty lines included")
	require.Len(t, detections, 2)
	assert.Equal(t, "7501234567890", detections[0].Code)
	assert.Equal(t, EAN13, detections[0].Format)
	assert.Equal(t, "ABC", detections[1].Code)
	assert.Equal(t, Code128, detections[1].Format)
}

func TestLineDevice_FrequencyThrottles(t *testing.T) {
	src := strings.Repeat("7501234567890\n", 3)
	dev := NewLineDevice(func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(src)), nil
	}, Options{Frequency: 20, AssumeFormat: EAN13})

	start := time.Now()
	stream, err := dev.Open(context.Background())
	require.NoError(t, err)
	defer stream.Close()
	collect(t, stream.Events())

	assert.GreaterOrEqual(t, time.Since(start), 140*time.Millisecond)
}

func TestLineDevice_CloseUnblocksReader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	dev := NewLineDevice(func() (io.ReadCloser, error) { return pr, nil }, Options{AssumeFormat: EAN13})

	stream, err := dev.Open(context.Background())
	require.NoError(t, err)

	go func() { _, _ = pw.Write([]byte("7501234567890\n")) }()
	ev := <-stream.Events()
	assert.IsType(t, FrameProcessed{}, ev)

	require.NoError(t, stream.Close())
	for range stream.Events() {
		// drain what was buffered before Close
	}
	// Second close is a no-op.
	assert.NoError(t, stream.Close())
}

func TestLineDevice_NoDevice(t *testing.T) {
	dev := NewFileDevice("", Options{})
	_, err := dev.Open(context.Background())
	assert.ErrorIs(t, err, ErrNoDevice)
}

func TestLineDevice_OpenError(t *testing.T) {
	boom := errors.New("permission denied")
	dev := NewLineDevice(func() (io.ReadCloser, error) { return nil, boom }, Options{})
	_, err := dev.Open(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestFileDevice_MissingPath(t *testing.T) {
	dev := NewFileDevice("/nonexistent/milista-scanner", Options{})
	_, err := dev.Open(context.Background())
	assert.Error(t, err)
}
