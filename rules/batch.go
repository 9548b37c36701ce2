package rules

import (
	"slices"

	"github.com/nstehr/brood/model"
)

// Batch collects the orders of one step. It is append-only while commands
// run and is flushed and reset by the step driver.
type Batch struct {
	orders []model.Order
}

func (b *Batch) Add(orders ...model.Order) {
	b.orders = append(b.orders, orders...)
}

// Orders returns a copy of the collected orders.
func (b *Batch) Orders() []model.Order {
	return slices.Clone(b.orders)
}

func (b *Batch) Len() int { return len(b.orders) }

func (b *Batch) Reset() { b.orders = b.orders[:0] }

// truncate drops everything appended after the first n orders.
func (b *Batch) truncate(n int) {
	if n < len(b.orders) {
		b.orders = b.orders[:n]
	}
}
