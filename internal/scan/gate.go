package scan

import (
	"errors"

	"github.com/Rorical/MiLista/internal/barcode"
)

var (
	// ErrGateClosed is returned once a decision has been made.
	ErrGateClosed = errors.New("scan: confirmation already decided")
	// ErrStaleGate is returned when the scanner was stopped while waiting.
	ErrStaleGate = errors.New("scan: pending scan was discarded")
)

// Gate resolves one PendingScan. It accepts a single decision.
type Gate struct {
	ctrl    *Controller
	scan    PendingScan
	session uint64
	decided bool
}

func (g *Gate) ID() string {
	return g.scan.ID
}

func (g *Gate) Code() barcode.Code {
	return g.scan.Code
}

// Confirm hands the code to the controller's sink and resumes scanning.
func (g *Gate) Confirm() (barcode.Code, error) {
	if err := g.decide(); err != nil {
		return "", err
	}
	if g.ctrl.sink != nil {
		g.ctrl.sink.Accept(g.scan.Code)
	}
	g.ctrl.resume()
	return g.scan.Code, nil
}

// Cancel drops the code and resumes scanning without touching the sink.
func (g *Gate) Cancel() error {
	if err := g.decide(); err != nil {
		return err
	}
	g.ctrl.resume()
	return nil
}

func (g *Gate) decide() error {
	if g.decided {
		return ErrGateClosed
	}
	g.decided = true
	if !g.ctrl.owns(g) {
		return ErrStaleGate
	}
	return nil
}
