package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/Rorical/MiLista/internal/models"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// ToggleScannerEvent - UI asks core to start or stop the scanner
type ToggleScannerEvent struct{}

func (e ToggleScannerEvent) UIEvent() {}

// ManualEntryEvent - UI submits a typed code
type ManualEntryEvent struct {
	Input string
}

func (e ManualEntryEvent) UIEvent() {}

// AdjustQuantityEvent - UI changes an item's quantity by Delta
type AdjustQuantityEvent struct {
	Code  string
	Delta int
}

func (e AdjustQuantityEvent) UIEvent() {}

// RemoveItemEvent - UI removes an item from the list
type RemoveItemEvent struct {
	Code string
}

func (e RemoveItemEvent) UIEvent() {}

// StateUpdateEvent - Core pushes state changes to UI
type StateUpdateEvent struct {
	Snapshot models.Snapshot
}

func (e StateUpdateEvent) CoreEvent() {}

// ConfirmationRequestEvent - Core asks the user whether a scanned code is right
type ConfirmationRequestEvent struct {
	ID   string // Unique identifier for this confirmation request
	Code string // The 13-digit code that was read
}

func (e ConfirmationRequestEvent) CoreEvent() {}

// ConfirmationResponseEvent - UI sends user's confirmation decision back to Core
type ConfirmationResponseEvent struct {
	ID       string // Must match the ID from ConfirmationRequestEvent
	Approved bool   // true = add to list, false = scan again
}

func (e ConfirmationResponseEvent) UIEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

var (
	ErrCircuitOpen = errors.New("circuit breaker is open")
	ErrUIToCore    = errors.New("UI to Core channel is full")
	ErrCoreToUI    = errors.New("Core to UI channel is full")
	ErrClosed      = errors.New("event bus is closed")
)

// CircuitBreakerState represents the state of circuit breaker
type CircuitBreakerState int

const (
	CircuitClosed CircuitBreakerState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker implements circuit breaker pattern. Both sides of the bus
// record into it, so it is guarded by a mutex.
type CircuitBreaker struct {
	mu              sync.Mutex
	maxFailures     int
	resetTimeout    time.Duration
	failureCount    int
	lastFailureTime time.Time
	state           CircuitBreakerState
	now             func() time.Time
}

func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
		now:          time.Now,
	}
}

func (cb *CircuitBreaker) IsOpen() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CircuitOpen {
		// Check if we should transition to half-open
		if cb.now().Sub(cb.lastFailureTime) > cb.resetTimeout {
			cb.state = CircuitHalfOpen
		}
	}
	return cb.state == CircuitOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount = 0
	cb.state = CircuitClosed
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.failureCount++
	cb.lastFailureTime = cb.now()

	if cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *CircuitBreaker
	closeOnce      sync.Once
	closed         chan struct{}
	mu             sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore:       make(chan UIEvent, 100),
		coreToUI:       make(chan CoreEvent, 100),
		circuitBreaker: NewCircuitBreaker(5, 30*time.Second),
		closed:         make(chan struct{}),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	busError := EventBusError{
		Operation: operation,
		Err:       err,
		Timestamp: time.Now(),
	}

	eb.circuitBreaker.RecordFailure()

	if eb.errorCallback != nil {
		eb.errorCallback(busError)
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.isClosed() {
		return ErrClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToCore", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.uiToCore <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToCore", ErrUIToCore)
		return ErrUIToCore
	}
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	if eb.isClosed() {
		return ErrClosed
	}
	if eb.circuitBreaker.IsOpen() {
		eb.reportError("SendToUI", ErrCircuitOpen)
		return ErrCircuitOpen
	}

	select {
	case eb.coreToUI <- event:
		eb.circuitBreaker.RecordSuccess()
		return nil
	default:
		eb.reportError("SendToUI", ErrCoreToUI)
		return ErrCoreToUI
	}
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() CircuitBreakerState {
	return eb.circuitBreaker.State()
}

func (eb *EventBus) isClosed() bool {
	select {
	case <-eb.closed:
		return true
	default:
		return false
	}
}

// Close closes both channels. Sends after Close return ErrClosed.
func (eb *EventBus) Close() {
	eb.closeOnce.Do(func() {
		eb.mu.Lock()
		defer eb.mu.Unlock()
		close(eb.closed)
		close(eb.uiToCore)
		close(eb.coreToUI)
	})
}
