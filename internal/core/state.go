package core

import (
	"sync"

	"github.com/Rorical/MiLista/internal/models"
)

// SessionState holds what the core reports about itself besides the cart:
// status line, last error, in-flight lookups and compare offers.
type SessionState struct {
	mu        sync.RWMutex
	status    string
	lastError error
	inFlight  int
	offers    map[string]map[string]models.Product // code -> store id -> product
}

func NewSessionState() *SessionState {
	return &SessionState{
		status: "Ready",
		offers: make(map[string]map[string]models.Product),
	}
}

func (ss *SessionState) SetStatus(status string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.status = status
}

func (ss *SessionState) Status() string {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.status
}

func (ss *SessionState) SetError(err error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.lastError = err
}

func (ss *SessionState) GetLastError() error {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.lastError
}

func (ss *SessionState) ClearError() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.lastError = nil
}

// Report sets status and error together so the UI never sees one without the other.
func (ss *SessionState) Report(status string, err error) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.status = status
	ss.lastError = err
}

func (ss *SessionState) BeginLookup() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.inFlight++
}

func (ss *SessionState) EndLookup() {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.inFlight > 0 {
		ss.inFlight--
	}
}

func (ss *SessionState) InFlight() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return ss.inFlight
}

func (ss *SessionState) SetOffers(code string, byStore map[string]models.Product) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.offers[code] = byStore
}

func (ss *SessionState) DropOffers(code string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.offers, code)
}

// Offers returns a shallow copy of the offer map.
func (ss *SessionState) Offers() map[string]map[string]models.Product {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	out := make(map[string]map[string]models.Product, len(ss.offers))
	for code, byStore := range ss.offers {
		out[code] = byStore
	}
	return out
}
