package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/MiLista/internal/models"
	"github.com/Rorical/MiLista/internal/update"
	"github.com/Rorical/MiLista/ui/components"
)

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(
		update.TickCmd(),
		m.spinner.Tick,
		m.dispatcher.ListenForCoreEvents(),
	)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle core events and continue listening
	if coreEvent, ok := msg.(update.CoreEventMsg); ok {
		cmd := update.HandleCoreEvent(&m.appModel, coreEvent)
		return m, tea.Batch(cmd, m.dispatcher.ListenForCoreEvents())
	}

	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.help.Width = size.Width
	}

	cmd := update.HandleUpdateWithEventBus(&m.appModel, msg, m.dispatcher.GetEventBus())
	return m, cmd
}

func (m *AppModel) View() string {
	var b strings.Builder
	am := &m.appModel

	b.WriteString(components.RenderHeader(am.StoreName, am.Mode, am.Scanner))
	if am.Loading {
		b.WriteString(" " + m.spinner.View())
	}
	b.WriteString("\n\n")

	if am.PendingConfirmation != nil {
		b.WriteString(components.RenderConfirmation(am.PendingConfirmation, am.Width))
		b.WriteString("\n")
		b.WriteString(m.help.ShortHelpView(update.Keys.ConfirmHelp()))
		return b.String()
	}

	if am.Mode == models.ModeCompare {
		b.WriteString(components.RenderComparisons(am.Comparisons))
	} else {
		b.WriteString(components.RenderCart(am.Items, am.Selected, am.Total))
	}
	b.WriteString("\n")
	b.WriteString(components.RenderInput(am.Input, am.Width))
	b.WriteString("\n")
	b.WriteString(components.RenderStatus(am.Status, am.Loading, am.LoadingDots, am.Width))
	b.WriteString("\n")
	b.WriteString(m.help.View(update.Keys))

	return b.String()
}
