package components

import (
	"github.com/Rorical/MiLista/internal/models"
	"github.com/Rorical/MiLista/ui/styles"
)

func RenderConfirmation(req *models.ConfirmationRequest, width int) string {
	if req == nil {
		return ""
	}
	body := "Scanned code\n\n" + req.Code + "\n\nAdd it to the list?  [y] yes   [n] no"
	return styles.ModalStyle(width).Render(body) + "\n"
}
