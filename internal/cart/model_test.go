package cart

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/menu"
	"github.com/AgustinVitali/Frontend-Cafeteria/internal/money"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("line-%d", n)
	})
}

func item(id, price string) menu.Item {
	return menu.Item{ID: id, Name: "item " + id, Price: money.MustParse(price), Available: true}
}

func TestAddItemDistinctItemsOneLineEach(t *testing.T) {
	c := New(sequentialIDs())
	items := []menu.Item{item("a", "3.50"), item("b", "1.25"), item("c", "0.10")}
	qtys := []int{2, 1, 7}

	want := money.Zero
	for i, it := range items {
		_, err := c.AddItem(it, qtys[i], "")
		require.NoError(t, err)
		want = want.Add(it.Price.Mul(qtys[i]))
	}

	lines := c.Lines()
	require.Len(t, lines, 3)
	seen := map[string]bool{}
	for i, l := range lines {
		assert.False(t, seen[l.MenuItemID], "duplicate line for %s", l.MenuItemID)
		seen[l.MenuItemID] = true
		assert.Equal(t, items[i].ID, l.MenuItemID, "insertion order")
	}
	assert.True(t, want.Equal(c.Total()), "want %s got %s", want, c.Total())
}

func TestAddSameItemTwiceMergesQuantity(t *testing.T) {
	c := New(sequentialIDs())

	first, err := c.AddItem(item("a", "3.50"), 2, "sin azúcar")
	require.NoError(t, err)
	second, err := c.AddItem(item("a", "3.50"), 3, "con azúcar")
	require.NoError(t, err)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)
	assert.Equal(t, "sin azúcar", second.Notes, "note is only replaced by an explicit update")
}

func TestAddItemRejectsQuantityBelowOne(t *testing.T) {
	c := New()
	for _, q := range []int{0, -1, -100} {
		_, err := c.AddItem(item("a", "1"), q, "")
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.True(t, c.IsEmpty())
}

func TestQuantityUpperBound(t *testing.T) {
	tests := []struct {
		name     string
		existing int
		add      int
		wantErr  bool
		wantQty  int
	}{
		{name: "new line at max", add: MaxQuantity, wantQty: MaxQuantity},
		{name: "new line above max", add: MaxQuantity + 1, wantErr: true},
		{name: "huge add", add: math.MaxInt, wantErr: true},
		{name: "merge up to max", existing: MaxQuantity - 1, add: 1, wantQty: MaxQuantity},
		{name: "merge past max", existing: MaxQuantity, add: 1, wantErr: true, wantQty: MaxQuantity},
		{name: "merge huge", existing: 1, add: math.MaxInt, wantErr: true, wantQty: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			if tc.existing > 0 {
				_, err := c.AddItem(item("a", "3.50"), tc.existing, "")
				require.NoError(t, err)
			}

			l, err := c.AddItem(item("a", "3.50"), tc.add, "")
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidQuantity)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.wantQty, l.Quantity)
			}
			assert.Equal(t, tc.wantQty, c.ItemCount())
			assert.False(t, c.Total().IsNegative())
		})
	}
}

func TestUpdateQuantityAboveMaxLeavesLine(t *testing.T) {
	c := New()
	l, err := c.AddItem(item("a", "1"), 2, "")
	require.NoError(t, err)

	assert.ErrorIs(t, c.UpdateQuantity(l.ID, MaxQuantity+1), ErrInvalidQuantity)
	assert.ErrorIs(t, c.UpdateQuantity(l.ID, math.MaxInt), ErrInvalidQuantity)
	require.NoError(t, c.UpdateQuantity(l.ID, MaxQuantity))
	assert.Equal(t, MaxQuantity, c.ItemCount())
}

func TestPriceIsCopiedAtInsertion(t *testing.T) {
	c := New()
	it := item("a", "2.00")
	_, err := c.AddItem(it, 1, "")
	require.NoError(t, err)

	it.Price = money.MustParse("9.99")
	_, err = c.AddItem(it, 1, "")
	require.NoError(t, err)

	assert.Equal(t, "4.00", c.Total().String())
}

func TestUpdateQuantityZeroOrNegativeRemoves(t *testing.T) {
	for _, q := range []int{0, -1} {
		t.Run(fmt.Sprint(q), func(t *testing.T) {
			c := New()
			l, err := c.AddItem(item("a", "1"), 2, "")
			require.NoError(t, err)

			require.NoError(t, c.UpdateQuantity(l.ID, q))

			assert.True(t, c.IsEmpty())
		})
	}
}

func TestUpdateQuantityUnknownLineIsNoop(t *testing.T) {
	c := New()
	_, err := c.AddItem(item("a", "1"), 2, "")
	require.NoError(t, err)

	require.NoError(t, c.UpdateQuantity("missing", 5))

	assert.Equal(t, 2, c.ItemCount())
}

func TestRemoveUnknownLineIsNoop(t *testing.T) {
	c := New()
	assert.NotPanics(t, func() { c.RemoveItem("missing") })

	_, err := c.AddItem(item("a", "1"), 1, "")
	require.NoError(t, err)
	c.RemoveItem("missing")
	assert.Equal(t, 1, c.Len())
}

func TestEmptyCartTotalIsZero(t *testing.T) {
	assert.True(t, New().Total().IsZero())
	assert.Equal(t, "0.00", New().Total().String())
}

func TestWorkedExample(t *testing.T) {
	c := New(sequentialIDs())
	a, err := c.AddItem(item("A", "3.50"), 2, "")
	require.NoError(t, err)
	b, err := c.AddItem(item("B", "1.25"), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "8.25", c.Total().String())

	require.NoError(t, c.UpdateQuantity(a.ID, 1))
	assert.Equal(t, "6.00", c.Total().String())

	c.RemoveItem(b.ID)
	assert.Equal(t, "3.50", c.Total().String())
}

func TestUpdateNotes(t *testing.T) {
	c := New()
	l, err := c.AddItem(item("a", "1"), 1, "")
	require.NoError(t, err)

	c.UpdateNotes(l.ID, "extra caliente")
	c.UpdateNotes("missing", "ignored")

	got, ok := c.Line(l.ID)
	require.True(t, ok)
	assert.Equal(t, "extra caliente", got.Notes)
}

func TestClearAndLinesCopy(t *testing.T) {
	c := New()
	_, err := c.AddItem(item("a", "1"), 1, "")
	require.NoError(t, err)

	lines := c.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, c.ItemCount(), "Lines must return a copy")

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}
