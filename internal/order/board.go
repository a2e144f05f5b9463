package order

// Board is the session's local copy of the last order listing.
type Board struct {
	orders []Order
}

func NewBoard() *Board { return &Board{} }

// Replace swaps in a fresh listing from the service.
func (b *Board) Replace(orders []Order) {
	b.orders = make([]Order, len(orders))
	copy(b.orders, orders)
}

// Find returns a pointer into the board so a confirmed transition updates
// the listing in place.
func (b *Board) Find(id string) *Order {
	for i := range b.orders {
		if b.orders[i].ID == id {
			return &b.orders[i]
		}
	}
	return nil
}

func (b *Board) Orders() []Order {
	out := make([]Order, len(b.orders))
	copy(out, b.orders)
	return out
}

func (b *Board) Len() int { return len(b.orders) }
