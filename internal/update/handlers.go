package update

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/MiLista/internal/barcode"
	"github.com/Rorical/MiLista/internal/eventbus"
	"github.com/Rorical/MiLista/internal/models"
)

// HandleKeyMsgWithEventBus handles keyboard input using event bus
func HandleKeyMsgWithEventBus(appModel *models.AppModel, keyMsg tea.KeyMsg, eb *eventbus.EventBus) tea.Cmd {
	if key.Matches(keyMsg, Keys.Quit) {
		return tea.Quit
	}

	// A pending scan takes every key until it is answered.
	if appModel.PendingConfirmation != nil {
		switch {
		case key.Matches(keyMsg, Keys.Confirm):
			respond(appModel, eb, true)
		case key.Matches(keyMsg, Keys.Cancel):
			respond(appModel, eb, false)
		}
		return nil
	}

	switch {
	case key.Matches(keyMsg, Keys.Toggle):
		send(appModel, eb, eventbus.ToggleScannerEvent{})
	case key.Matches(keyMsg, Keys.Submit):
		submitManualEntry(appModel, eb)
	case key.Matches(keyMsg, Keys.Clear):
		appModel.Input = ""
	case key.Matches(keyMsg, Keys.Up):
		appModel.Selected--
		appModel.ClampSelection()
	case key.Matches(keyMsg, Keys.Down):
		appModel.Selected++
		appModel.ClampSelection()
	case key.Matches(keyMsg, Keys.Increase):
		adjustSelected(appModel, eb, 1)
	case key.Matches(keyMsg, Keys.Decrease):
		adjustSelected(appModel, eb, -1)
	case key.Matches(keyMsg, Keys.Remove):
		if item, ok := appModel.SelectedItem(); ok {
			send(appModel, eb, eventbus.RemoveItemEvent{Code: item.Code})
		}
	case keyMsg.Type == tea.KeyBackspace:
		if len(appModel.Input) > 0 {
			appModel.Input = appModel.Input[:len(appModel.Input)-1]
		}
	default:
		// Only digits reach the field, and never more than a full code.
		if keyMsg.Type == tea.KeyRunes {
			appModel.Input = barcode.SanitizeManual(appModel.Input + string(keyMsg.Runes))
		}
	}
	return nil
}

func send(appModel *models.AppModel, eb *eventbus.EventBus, event eventbus.UIEvent) bool {
	if err := eb.SendToCore(event); err != nil {
		appModel.Status = "Error: " + err.Error()
		return false
	}
	return true
}

func respond(appModel *models.AppModel, eb *eventbus.EventBus, approved bool) {
	req := appModel.PendingConfirmation
	if send(appModel, eb, eventbus.ConfirmationResponseEvent{ID: req.ID, Approved: approved}) {
		appModel.PendingConfirmation = nil
	}
}

func submitManualEntry(appModel *models.AppModel, eb *eventbus.EventBus) {
	if appModel.Input == "" {
		return
	}
	// The core validates and drops bad input; the hint is local.
	valid := barcode.Valid(appModel.Input)
	if send(appModel, eb, eventbus.ManualEntryEvent{Input: appModel.Input}) {
		appModel.Input = ""
		if !valid {
			appModel.Status = "A code has 13 digits"
		}
	}
}

func adjustSelected(appModel *models.AppModel, eb *eventbus.EventBus, delta int) {
	item, ok := appModel.SelectedItem()
	if !ok {
		return
	}
	send(appModel, eb, eventbus.AdjustQuantityEvent{Code: item.Code, Delta: delta})
}

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.StateUpdateEvent:
		s := event.Snapshot
		appModel.Mode = s.Mode
		appModel.StoreName = s.StoreName
		appModel.Scanner = s.Scanner
		appModel.Items = s.Items
		appModel.Total = s.Total
		appModel.Comparisons = s.Comparisons
		appModel.Loading = s.InFlight > 0
		appModel.ClampSelection()

		if s.Scanner != models.AwaitingConfirmation {
			appModel.PendingConfirmation = nil
		}

		switch {
		case s.Status != "":
			appModel.Status = s.Status
		case s.Error != nil:
			appModel.Status = "Error: " + s.Error.Error()
		}
	case eventbus.ConfirmationRequestEvent:
		appModel.PendingConfirmation = &models.ConfirmationRequest{
			ID:   event.ID,
			Code: event.Code,
		}
	}

	return nil
}

type TickMsg time.Time

func TickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

func HandleTickMsg(appModel *models.AppModel) tea.Cmd {
	// Only handle UI animations - loading dots
	if appModel.Loading {
		appModel.LoadingDots = (appModel.LoadingDots + 1) % 4
	}
	return TickCmd()
}
