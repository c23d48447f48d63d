package lookup

import (
	"strings"

	"github.com/Rorical/MiLista/internal/cart"
)

// Store is a supermarket the price API knows about.
type Store struct {
	ID   string
	Name string
}

// DefaultStoreID is used when nothing else selects a store.
const DefaultStoreID = "walmart"

var catalog = []Store{
	{ID: "paiz", Name: "Paiz"},
	{ID: "walmart", Name: "Walmart"},
	{ID: "maxidespensa", Name: "Maxidespensa"},
	{ID: "latorre", Name: "La Torre"},
}

// compareOrder is the column order of the compare view.
var compareOrder = []string{"maxidespensa", "walmart", "latorre", "paiz"}

// Stores returns the catalog in picker order.
func Stores() []Store {
	out := make([]Store, len(catalog))
	copy(out, catalog)
	return out
}

// FindStore resolves an id or a display name, case-insensitively.
func FindStore(key string) (Store, bool) {
	key = strings.TrimSpace(key)
	for _, s := range catalog {
		if strings.EqualFold(s.ID, key) || strings.EqualFold(s.Name, key) {
			return s, true
		}
	}
	return Store{}, false
}

// CompareStores returns the stores taking part in a comparison, in display order.
func CompareStores() []cart.StoreRef {
	out := make([]cart.StoreRef, 0, len(compareOrder))
	for _, id := range compareOrder {
		s, _ := FindStore(id)
		out = append(out, cart.StoreRef{ID: s.ID, Name: s.Name})
	}
	return out
}
