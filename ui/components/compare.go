package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/MiLista/internal/models"
	"github.com/Rorical/MiLista/ui/styles"
)

// RenderComparisons shows one row of store cards per code. Cards holding
// the lowest price carry a badge.
func RenderComparisons(comparisons []models.Comparison) string {
	if len(comparisons) == 0 {
		return styles.EmptyStyle().Render("Scan or type a code to compare stores.") + "\n"
	}

	var b strings.Builder
	for _, cmp := range comparisons {
		b.WriteString(styles.ItemStyle().Render(cmp.Code) + "\n")
		if len(cmp.Offers) == 0 {
			b.WriteString(styles.EmptyStyle().Render("No store has this product yet.") + "\n")
			continue
		}

		cards := make([]string, 0, len(cmp.Offers))
		for _, offer := range cmp.Offers {
			cards = append(cards, renderOffer(offer))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n")
	}
	return b.String()
}

func renderOffer(offer models.Offer) string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(offer.StoreName),
		offer.Product.Name,
		FormatMoney(offer.Product.Price),
	}
	style := styles.CardStyle()
	if offer.Best {
		lines = append(lines, styles.BestBadgeStyle().Render("Best price"))
		style = styles.BestCardStyle()
	}
	return style.Render(strings.Join(lines, "\n"))
}
