package engine

import "sort"

// Book holds the resting orders for one side of the market, sorted by price.
// Bids sort descending (best bid first), asks ascending (best ask first).
type Book struct {
	side   Side
	orders []*Order
}

// NewBook creates an empty book for the given side
func NewBook(side Side) *Book {
	return &Book{
		side:   side,
		orders: make([]*Order, 0),
	}
}

// Insert appends the order and re-sorts the side. The sort is stable, so
// orders at an equal price keep their arrival order: FIFO within a price
// level.
func (b *Book) Insert(order *Order) {
	b.orders = append(b.orders, order)

	if b.side == BUY {
		sort.SliceStable(b.orders, func(i, j int) bool {
			return b.orders[i].Price > b.orders[j].Price
		})
	} else {
		sort.SliceStable(b.orders, func(i, j int) bool {
			return b.orders[i].Price < b.orders[j].Price
		})
	}
}

// Cleanup removes every fully filled order. It runs after each matching
// pass so that zero-quantity orders never survive into a readable state.
func (b *Book) Cleanup() {
	kept := b.orders[:0]
	for _, order := range b.orders {
		if order.Quantity > 0 {
			kept = append(kept, order)
		}
	}
	b.orders = kept
}

// Len returns the number of resting orders
func (b *Book) Len() int {
	return len(b.orders)
}

// Orders returns a copy of the resting orders in priority order
func (b *Book) Orders() []Order {
	out := make([]Order, len(b.orders))
	for i, order := range b.orders {
		out[i] = *order
	}
	return out
}
