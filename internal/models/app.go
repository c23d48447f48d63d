package models

import "github.com/shopspring/decimal"

// ConfirmationRequest is the pending scan the UI asks the user about
type ConfirmationRequest struct {
	ID   string // Matches the ID of the ConfirmationRequestEvent
	Code string // 13-digit code awaiting a decision
}

// AppModel represents the UI state - only local UI concerns
type AppModel struct {
	Mode                Mode
	StoreName           string
	Scanner             ScannerState
	Items               []LineItem
	Total               decimal.Decimal
	Comparisons         []Comparison
	Input               string               // Manual entry field
	Selected            int                  // Cursor in the item list
	Status              string               // Status bar text
	Loading             bool                 // At least one lookup in flight
	LoadingDots         int                  // Animation counter for loading dots
	Width               int                  // Terminal width
	Height              int                  // Terminal height
	PendingConfirmation *ConfirmationRequest // Current confirmation request
}

// SelectedItem returns the item under the cursor, if any.
func (m *AppModel) SelectedItem() (LineItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return LineItem{}, false
	}
	return m.Items[m.Selected], true
}

// ClampSelection keeps the cursor inside the item list after it changes size.
func (m *AppModel) ClampSelection() {
	if m.Selected >= len(m.Items) {
		m.Selected = len(m.Items) - 1
	}
	if m.Selected < 0 {
		m.Selected = 0
	}
}
