package components

import (
	"strings"

	"github.com/Rorical/MiLista/ui/styles"
)

func RenderStatus(status string, loading bool, loadingDots int, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if loading {
		statusContent += " · looking up prices" + strings.Repeat(".", loadingDots)
	}

	return statusStyle.Render(statusContent)
}
