package decoder

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// OpenFunc acquires the raw byte source of a scanner.
type OpenFunc func() (io.ReadCloser, error)

// Options tune a LineDevice.
type Options struct {
	// Frequency caps decoding attempts per second. Zero disables the cap.
	Frequency int
	// AssumeFormat is reported for lines that carry no AIM identifier.
	AssumeFormat Symbology
	Logger       *zap.Logger
}

// LineDevice reads newline-terminated codes, the output format of serial
// and USB-CDC scanners.
type LineDevice struct {
	open OpenFunc
	opts Options
}

// NewLineDevice returns a device reading from whatever open yields.
func NewLineDevice(open OpenFunc, opts Options) *LineDevice {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &LineDevice{open: open, opts: opts}
}

// NewFileDevice opens path (a tty, fifo or plain file) for each session.
// An empty path yields a device whose Open always fails with ErrNoDevice.
func NewFileDevice(path string, opts Options) *LineDevice {
	if path == "" {
		return NewLineDevice(nil, opts)
	}
	return NewLineDevice(func() (io.ReadCloser, error) {
		return os.OpenFile(path, os.O_RDONLY, 0)
	}, opts)
}

func (d *LineDevice) Open(ctx context.Context) (Stream, error) {
	if d.open == nil {
		return nil, ErrNoDevice
	}
	src, err := d.open()
	if err != nil {
		return nil, err
	}

	s := &lineStream{
		src:    src,
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		logger: d.opts.Logger,
	}
	var interval time.Duration
	if d.opts.Frequency > 0 {
		interval = time.Second / time.Duration(d.opts.Frequency)
	}
	s.wg.Add(1)
	go s.run(ctx, interval, d.opts.AssumeFormat)
	return s, nil
}

type lineStream struct {
	src       io.ReadCloser
	events    chan Event
	done      chan struct{}
	logger    *zap.Logger
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

func (s *lineStream) Events() <-chan Event {
	return s.events
}

// Close releases the source and waits for the reader goroutine, so no
// event is delivered after it returns.
func (s *lineStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.closeErr = s.src.Close()
		s.wg.Wait()
	})
	return s.closeErr
}

func (s *lineStream) run(ctx context.Context, interval time.Duration, assume Symbology) {
	defer s.wg.Done()
	defer close(s.events)

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	scanner := bufio.NewScanner(s.src)
	for scanner.Scan() {
		if tick != nil {
			select {
			case <-tick:
			case <-s.done:
				return
			case <-ctx.Done():
				return
			}
		}

		now := time.Now()
		if !s.emit(ctx, FrameProcessed{At: now}) {
			return
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		code, format := ParseAIM(line, assume)
		if !s.emit(ctx, Detected{Code: code, Format: format, At: now}) {
			return
		}
	}

	select {
	case <-s.done:
		// Read errors after Close are expected.
	default:
		if err := scanner.Err(); err != nil {
			s.logger.Warn("scanner read failed", zap.Error(err))
		} else {
			s.logger.Info("scanner stream ended")
		}
	}
}

func (s *lineStream) emit(ctx context.Context, ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	case <-ctx.Done():
		return false
	}
}
