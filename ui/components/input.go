package components

import (
	"github.com/Rorical/MiLista/ui/styles"
)

const inputPlaceholder = "type a 13-digit code and press enter"

func RenderInput(input string, width int) string {
	inputStyle := styles.InputStyle(width)
	if input == "" {
		return inputStyle.Render(styles.PlaceholderStyle().Render(inputPlaceholder))
	}
	return inputStyle.Render(input)
}
