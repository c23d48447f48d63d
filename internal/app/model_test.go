package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/MiLista/internal/config"
	"github.com/Rorical/MiLista/internal/dispatcher"
	"github.com/Rorical/MiLista/internal/eventbus"
	"github.com/Rorical/MiLista/internal/lookup"
	"github.com/Rorical/MiLista/internal/models"
	"github.com/Rorical/MiLista/internal/update"
)

func newTestModel(t *testing.T, mode models.Mode) (*AppModel, *eventbus.EventBus) {
	t.Helper()
	eb := eventbus.NewEventBus()
	disp := dispatcher.NewEventDispatcher(eb)
	t.Cleanup(func() {
		disp.Stop()
		eb.Close()
	})
	store, _ := lookup.FindStore("paiz")
	return newAppModel(disp, mode, store), eb
}

func TestView_ListAndConfirmation(t *testing.T) {
	m, _ := newTestModel(t, models.ModeList)

	m.Update(update.CoreEventMsg{Event: eventbus.StateUpdateEvent{Snapshot: models.Snapshot{
		StoreName: "Paiz",
		Scanner:   models.Active,
		Items: []models.LineItem{{
			Code: "7501234567890", Name: "Leche", Quantity: 1,
			UnitPrice: decimal.RequireFromString("12.50"), Subtotal: decimal.RequireFromString("12.50"), Resolved: true,
		}},
		Total:  decimal.RequireFromString("12.50"),
		Status: "Scanning",
	}}})
	view := m.View()
	assert.Contains(t, view, "Paiz")
	assert.Contains(t, view, "Leche")
	assert.Contains(t, view, "Total Q12.50")

	m.Update(update.CoreEventMsg{Event: eventbus.ConfirmationRequestEvent{ID: "r1", Code: "7401000000017"}})
	view = m.View()
	assert.Contains(t, view, "7401000000017")
	assert.Contains(t, view, "Add it to the list?")
	assert.NotContains(t, view, "Leche")
}

func TestView_Compare(t *testing.T) {
	m, _ := newTestModel(t, models.ModeCompare)
	assert.Contains(t, m.View(), "compare")
}

func TestUpdate_KeysReachBus(t *testing.T) {
	m, eb := newTestModel(t, models.ModeList)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	assert.Nil(t, cmd)

	select {
	case ev := <-eb.UIToCore():
		assert.Equal(t, eventbus.ToggleScannerEvent{}, ev)
	default:
		t.Fatal("toggle event not sent")
	}
}

func TestNewApplication(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.UseProfile("development"))

	application, err := NewApplication(cfg, Options{Mode: models.ModeList})
	require.NoError(t, err)
	assert.Equal(t, "walmart", application.service.Store().ID)
	application.Stop()

	cfg.SetStore("nowhere")
	_, err = NewApplication(cfg, Options{})
	assert.Error(t, err)
}
