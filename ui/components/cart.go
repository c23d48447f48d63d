package components

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Rorical/MiLista/internal/models"
	"github.com/Rorical/MiLista/ui/styles"
)

// RenderCart lists the items with quantity, unit price and subtotal,
// followed by the total.
func RenderCart(items []models.LineItem, selected int, total decimal.Decimal) string {
	if len(items) == 0 {
		return styles.EmptyStyle().Render("Your list is empty. Press s to scan or type a code.") + "\n"
	}

	var b strings.Builder
	for i, item := range items {
		name := item.Name
		if !item.Resolved {
			name = styles.PlaceholderStyle().Render(name)
		}
		line := fmt.Sprintf("%-3dx %s  %s  %s",
			item.Quantity, name, FormatMoney(item.UnitPrice), FormatMoney(item.Subtotal))
		detail := styles.PlaceholderStyle().Render(item.Code)

		style := styles.ItemStyle()
		if i == selected {
			style = styles.SelectedItemStyle()
		}
		b.WriteString(style.Render(line+"\n"+detail) + "\n")
	}
	b.WriteString(styles.TotalStyle().Render("Total " + FormatMoney(total)))
	b.WriteString("\n")
	return b.String()
}
