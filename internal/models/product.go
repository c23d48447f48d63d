package models

import "github.com/shopspring/decimal"

// Money is an amount in quetzales.
type Money = decimal.Decimal

// Product is what the price API knows about a code at one store.
type Product struct {
	Name  string
	Price Money
	Image string
}

// LineItem is a read-only view of one cart entry.
type LineItem struct {
	Code      string
	Name      string
	UnitPrice Money
	Quantity  int
	Subtotal  Money
	Image     string
	Resolved  bool
}

// Offer is one store's product data for a code in compare mode.
type Offer struct {
	StoreID   string
	StoreName string
	Product   Product
	Best      bool
}

// Comparison groups the offers for one code. Lowest is only meaningful
// when HasLowest is set, i.e. at least one store returned data.
type Comparison struct {
	Code      string
	Offers    []Offer
	Lowest    Money
	HasLowest bool
}
