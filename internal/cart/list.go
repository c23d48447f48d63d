// Package cart holds the in-memory shopping list and the price comparison
// logic built on top of lookup results.
package cart

import (
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Rorical/MiLista/internal/barcode"
	"github.com/Rorical/MiLista/internal/models"
)

// DefaultName is shown until lookup data arrives, or forever if it fails.
const DefaultName = "unnamed"

var ErrItemNotFound = errors.New("cart: item not in list")

// Item is one distinct code in the list.
type Item struct {
	ID        barcode.Code
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	ImageRef  string
	Resolved  bool // lookup data has been applied
}

// Subtotal is UnitPrice × Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// List is the set of items keyed by code, kept in insertion order.
type List struct {
	mu    sync.RWMutex
	items map[barcode.Code]*Item
	order []barcode.Code
	total decimal.Decimal
}

func NewList() *List {
	return &List{
		items: make(map[barcode.Code]*Item),
		total: decimal.Zero,
	}
}

// AddOrIncrement creates the item with quantity 1 on first sight, using
// product when given. A repeat only bumps the quantity; product is ignored.
// The returned bool reports whether the item was created.
func (l *List) AddOrIncrement(code barcode.Code, product *models.Product) (Item, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if item, ok := l.items[code]; ok {
		item.Quantity++
		l.recalculate()
		return *item, false
	}

	item := &Item{
		ID:        code,
		Name:      DefaultName,
		UnitPrice: decimal.Zero,
		Quantity:  1,
	}
	if product != nil {
		applyProduct(item, *product)
	}
	l.items[code] = item
	l.order = append(l.order, code)
	l.recalculate()
	return *item, true
}

// Accept adds a confirmed code without product data.
func (l *List) Accept(code barcode.Code) {
	l.AddOrIncrement(code, nil)
}

// SetQuantity applies delta to the item's quantity. A result below 1 leaves
// the item unchanged.
func (l *List) SetQuantity(code barcode.Code, delta int) (Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[code]
	if !ok {
		return Item{}, ErrItemNotFound
	}
	if item.Quantity+delta < 1 {
		return *item, nil
	}
	item.Quantity += delta
	l.recalculate()
	return *item, nil
}

// Remove deletes the item regardless of quantity.
func (l *List) Remove(code barcode.Code) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.items[code]; !ok {
		return false
	}
	delete(l.items, code)
	for i, c := range l.order {
		if c == code {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	l.recalculate()
	return true
}

// Apply enriches an existing item with lookup data. It reports false when
// the item has been removed in the meantime.
func (l *List) Apply(code barcode.Code, product models.Product) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[code]
	if !ok {
		return false
	}
	applyProduct(item, product)
	l.recalculate()
	return true
}

func (l *List) Get(code barcode.Code) (Item, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	item, ok := l.items[code]
	if !ok {
		return Item{}, false
	}
	return *item, true
}

// Items returns a copy of the list in insertion order.
func (l *List) Items() []Item {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Item, 0, len(l.order))
	for _, code := range l.order {
		out = append(out, *l.items[code])
	}
	return out
}

// Codes returns the codes in insertion order.
func (l *List) Codes() []barcode.Code {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]barcode.Code, len(l.order))
	copy(out, l.order)
	return out
}

func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.order)
}

func (l *List) Total() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.total
}

// must hold l.mu
func (l *List) recalculate() {
	total := decimal.Zero
	for _, item := range l.items {
		total = total.Add(item.Subtotal())
	}
	l.total = total
}

func applyProduct(item *Item, p models.Product) {
	if p.Name != "" {
		item.Name = p.Name
	}
	if p.Price.IsNegative() {
		item.UnitPrice = decimal.Zero
	} else {
		item.UnitPrice = p.Price
	}
	item.ImageRef = CleanImage(p.Image)
	item.Resolved = true
}

// CleanImage strips the stray quotes and spaces the price API leaves in
// image URLs.
func CleanImage(ref string) string {
	return strings.NewReplacer(`"`, "", " ", "").Replace(ref)
}
