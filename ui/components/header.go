package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/MiLista/internal/models"
	"github.com/Rorical/MiLista/ui/styles"
)

func RenderHeader(storeName string, mode models.Mode, scanner models.ScannerState) string {
	title := "MiLista"
	switch mode {
	case models.ModeCompare:
		title += " · compare prices"
	default:
		if storeName != "" {
			title += " · " + storeName
		}
	}

	badge := "scanner off"
	switch scanner {
	case models.Active:
		badge = "● scanning"
	case models.AwaitingConfirmation:
		badge = "● waiting for you"
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		styles.HeaderStyle().Render(title),
		styles.ScannerBadgeStyle(scanner != models.Idle).Render(badge),
	)
}
