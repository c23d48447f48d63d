package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Rorical/MiLista/internal/models"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "Q12.50", FormatMoney(decimal.RequireFromString("12.5")))
	assert.Equal(t, "Q0.00", FormatMoney(decimal.Zero))
}

func TestRenderCart(t *testing.T) {
	assert.Contains(t, RenderCart(nil, 0, decimal.Zero), "empty")

	out := RenderCart([]models.LineItem{
		{Code: "7501234567890", Name: "Leche", Quantity: 2,
			UnitPrice: decimal.RequireFromString("12.50"), Subtotal: decimal.RequireFromString("25"), Resolved: true},
	}, 0, decimal.RequireFromString("25"))
	assert.Contains(t, out, "Leche")
	assert.Contains(t, out, "7501234567890")
	assert.Contains(t, out, "Total Q25.00")
}

func TestRenderComparisons_BadgeOnBestOnly(t *testing.T) {
	out := RenderComparisons([]models.Comparison{{
		Code: "7501234567890",
		Offers: []models.Offer{
			{StoreName: "Walmart", Product: models.Product{Name: "Leche", Price: decimal.RequireFromString("12.50")}},
			{StoreName: "Paiz", Product: models.Product{Name: "Leche", Price: decimal.RequireFromString("11.95")}, Best: true},
		},
		Lowest:    decimal.RequireFromString("11.95"),
		HasLowest: true,
	}})
	assert.Contains(t, out, "Walmart")
	assert.Contains(t, out, "Q11.95")
	assert.Equal(t, 1, strings.Count(out, "Best price"))
}

func TestRenderConfirmation(t *testing.T) {
	assert.Empty(t, RenderConfirmation(nil, 80))
	assert.Contains(t, RenderConfirmation(&models.ConfirmationRequest{ID: "1", Code: "7501234567890"}, 80), "7501234567890")
}
