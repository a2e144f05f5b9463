package cart

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/menu"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/money"
)

// MaxQuantity caps a single line so a merged quantity can never overflow.
const MaxQuantity = 99

var ErrInvalidQuantity = fmt.Errorf("quantity must be between 1 and %d", MaxQuantity)

// Line is one selected menu item. Name and unit price are copied when the
// line is created so later catalog changes do not touch an open cart.
type Line struct {
	ID           string      `json:"id"`
	MenuItemID   string      `json:"menuItemId"`
	MenuItemName string      `json:"menuItemName"`
	Quantity     int         `json:"quantity"`
	Price        money.Money `json:"price"`
	Notes        string      `json:"notes,omitempty"`
}

// Subtotal is unit price times quantity.
func (l Line) Subtotal() money.Money { return l.Price.Mul(l.Quantity) }

// Cart holds the lines of one shopping session in insertion order. It holds
// at most one line per menu item and every line has quantity >= 1.
//
// A Cart is not safe for concurrent use; callers serialize access per session.
type Cart struct {
	lines []Line
	newID func() string
}

type Option func(*Cart)

// WithIDGenerator replaces the line id generator (uuid v4 by default).
func WithIDGenerator(gen func() string) Option {
	return func(c *Cart) { c.newID = gen }
}

func New(opts ...Option) *Cart {
	c := &Cart{newID: uuid.NewString}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddItem adds quantity units of item. If a line for the item already exists
// its quantity grows and its note is kept; otherwise a new line is appended.
// Availability is not checked here.
func (c *Cart) AddItem(item menu.Item, quantity int, notes string) (Line, error) {
	if quantity < 1 || quantity > MaxQuantity {
		return Line{}, fmt.Errorf("add %q x%d: %w", item.ID, quantity, ErrInvalidQuantity)
	}

	if i := c.indexByMenuItem(item.ID); i >= 0 {
		if c.lines[i].Quantity > MaxQuantity-quantity {
			return Line{}, fmt.Errorf("add %q x%d to %d: %w", item.ID, quantity, c.lines[i].Quantity, ErrInvalidQuantity)
		}
		c.lines[i].Quantity += quantity
		return c.lines[i], nil
	}

	line := Line{
		ID:           c.newID(),
		MenuItemID:   item.ID,
		MenuItemName: item.Name,
		Quantity:     quantity,
		Price:        item.Price,
		Notes:        notes,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// RemoveItem drops the line. Unknown ids are ignored.
func (c *Cart) RemoveItem(lineID string) {
	if i := c.indexByLine(lineID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
// Unknown ids are ignored, same as RemoveItem. Above MaxQuantity the cart is
// left unchanged.
func (c *Cart) UpdateQuantity(lineID string, quantity int) error {
	if quantity > MaxQuantity {
		return fmt.Errorf("set %q x%d: %w", lineID, quantity, ErrInvalidQuantity)
	}
	if quantity <= 0 {
		c.RemoveItem(lineID)
		return nil
	}
	if i := c.indexByLine(lineID); i >= 0 {
		c.lines[i].Quantity = quantity
	}
	return nil
}

// UpdateNotes replaces the free-text note of a line. Unknown ids are ignored.
func (c *Cart) UpdateNotes(lineID, notes string) {
	if i := c.indexByLine(lineID); i >= 0 {
		c.lines[i].Notes = notes
	}
}

// Total is recomputed on every call.
func (c *Cart) Total() money.Money {
	total := money.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Clear() { c.lines = nil }

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line looks a line up by id.
func (c *Cart) Line(lineID string) (Line, bool) {
	if i := c.indexByLine(lineID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// ItemCount is the sum of all line quantities.
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) indexByLine(lineID string) int {
	for i := range c.lines {
		if c.lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

func (c *Cart) indexByMenuItem(menuItemID string) int {
	for i := range c.lines {
		if c.lines[i].MenuItemID == menuItemID {
			return i
		}
	}
	return -1
}
