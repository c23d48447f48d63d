package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/MiLista/internal/barcode"
	"github.com/Rorical/MiLista/internal/cart"
	"github.com/Rorical/MiLista/internal/lookup"
	"github.com/Rorical/MiLista/internal/models"
)

func TestParseCodes(t *testing.T) {
	codes, err := parseCodes([]string{" 7501234567890 ", "7401000000017"})
	require.NoError(t, err)
	assert.Equal(t, []barcode.Code{"7501234567890", "7401000000017"}, codes)

	_, err = parseCodes([]string{"7501234567890", "12345"})
	assert.ErrorIs(t, err, barcode.ErrInvalidCode)
}

func TestPriceTable(t *testing.T) {
	store, _ := lookup.FindStore("paiz")
	out := priceTable(store, []lookup.Result{
		{Code: "7501234567890", Product: models.Product{Name: "Leche", Price: decimal.RequireFromString("12.5")}},
		{Code: "7401000000017", Err: errors.New("404")},
	})

	assert.Contains(t, out, "Paiz")
	assert.Contains(t, out, "Q12.50")
	assert.Contains(t, out, "not found")
}

func TestComparisonTable_MarksEveryLowest(t *testing.T) {
	stores := lookup.CompareStores()
	offers := map[string]map[string]models.Product{
		"7501234567890": {
			"walmart": {Name: "Leche", Price: decimal.RequireFromString("11.95")},
			"paiz":    {Name: "Leche", Price: decimal.RequireFromString("11.95")},
			"latorre": {Name: "Leche", Price: decimal.RequireFromString("13")},
		},
	}
	out := comparisonTable(cart.Compare([]string{"7501234567890", "7401000000017"}, offers, stores), stores)

	assert.Equal(t, 2, strings.Count(out, "Q11.95 *"))
	assert.Contains(t, out, "Q13.00")
	assert.Contains(t, out, "Maxidespensa")
	assert.Contains(t, out, "7401000000017")
}

func TestValidateBaseURL(t *testing.T) {
	assert.NoError(t, validateBaseURL("http://localhost:4000"))
	assert.Error(t, validateBaseURL("localhost"))
}
