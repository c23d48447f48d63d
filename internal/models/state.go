package models

// Mode selects which flow the core runs.
type Mode int

const (
	// ModeList builds a shopping list priced at a single store.
	ModeList Mode = iota
	// ModeCompare shows every store's offer for each scanned code.
	ModeCompare
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeCompare:
		return "compare"
	default:
		return "unknown"
	}
}

// ScannerState is the lifecycle state of a scan session.
// Exactly one of these holds at any time.
type ScannerState int

const (
	Idle ScannerState = iota
	Active
	AwaitingConfirmation
)

func (s ScannerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	default:
		return "unknown"
	}
}

// Snapshot is the full core state pushed to the UI after every change.
type Snapshot struct {
	Mode        Mode
	StoreID     string
	StoreName   string
	Scanner     ScannerState
	PendingCode string
	Items       []LineItem
	Total       Money
	Comparisons []Comparison
	InFlight    int
	Status      string
	Error       error
}
