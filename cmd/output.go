package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Rorical/MiLista/internal/barcode"
	"github.com/Rorical/MiLista/internal/cart"
	"github.com/Rorical/MiLista/internal/lookup"
	"github.com/Rorical/MiLista/internal/models"
	"github.com/Rorical/MiLista/ui/components"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("42")).Bold(true)
)

// parseCodes validates command-line codes the way manual entry does.
func parseCodes(args []string) ([]barcode.Code, error) {
	codes := make([]barcode.Code, 0, len(args))
	for _, arg := range args {
		code, err := barcode.ParseManual(arg)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", arg, err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func priceTable(store lookup.Store, results []lookup.Result) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CODE", "PRODUCT", store.Name).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range results {
		if r.Err != nil {
			t.Row(r.Code.String(), cart.DefaultName, "not found")
			continue
		}
		t.Row(r.Code.String(), r.Product.Name, components.FormatMoney(r.Product.Price))
	}
	return t.Render()
}

// comparisonTable has one row per code and one column per store. Cells at
// the lowest price are highlighted.
func comparisonTable(comparisons []models.Comparison, stores []cart.StoreRef) string {
	headers := []string{"CODE"}
	for _, s := range stores {
		headers = append(headers, s.Name)
	}

	best := make(map[[2]int]bool)
	rows := make([][]string, 0, len(comparisons))
	for i, cmp := range comparisons {
		row := []string{cmp.Code}
		for j, s := range stores {
			cell := "-"
			for _, offer := range cmp.Offers {
				if offer.StoreID != s.ID {
					continue
				}
				cell = components.FormatMoney(offer.Product.Price)
				if offer.Best {
					cell += " *"
					best[[2]int{i, j + 1}] = true
				}
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case best[[2]int{row, col}]:
				return bestStyle
			default:
				return cellStyle
			}
		}).
		Render()
}
