package cart

import (
	"github.com/Rorical/MiLista/internal/models"
)

// StoreRef names a store taking part in a comparison.
type StoreRef struct {
	ID   string
	Name string
}

// Compare builds one Comparison per code, in the given order. offers maps
// code → store id → product; stores fixes which stores are considered and
// in what order. Every offer at the minimum price is flagged Best. A code
// with no store data gets no Lowest and no flagged offer.
func Compare(codes []string, offers map[string]map[string]models.Product, stores []StoreRef) []models.Comparison {
	out := make([]models.Comparison, 0, len(codes))
	for _, code := range codes {
		cmp := models.Comparison{Code: code}
		byStore := offers[code]

		for _, store := range stores {
			p, ok := byStore[store.ID]
			if !ok {
				continue
			}
			cmp.Offers = append(cmp.Offers, models.Offer{
				StoreID:   store.ID,
				StoreName: store.Name,
				Product:   p,
			})
			if !cmp.HasLowest || p.Price.LessThan(cmp.Lowest) {
				cmp.Lowest = p.Price
				cmp.HasLowest = true
			}
		}

		for i := range cmp.Offers {
			cmp.Offers[i].Best = cmp.Offers[i].Product.Price.Equal(cmp.Lowest)
		}
		out = append(out, cmp)
	}
	return out
}
