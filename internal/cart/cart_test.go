package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/create-and-design/storefront/internal/catalog"
)

func roses() catalog.Product {
	return catalog.Product{
		ID:        "1",
		Name:      "Ramo de Rosas con Fresas",
		Price:     400,
		ImageURLs: []string{"/flowers/strawberrysFlowers.jpeg"},
		Category:  "Rosas",
		Stock:     10,
	}
}

func balloon() catalog.Product {
	return catalog.Product{
		ID:        "3",
		Name:      "Globo Burbuja",
		Price:     550,
		ImageURLs: []string{"/flowers/globoBurbuja.jpg"},
		Category:  "Globo",
		Stock:     2,
	}
}

func TestAddMergesAndClampsToStock(t *testing.T) {
	c := New()

	c.Add(roses(), 4)
	c.Add(roses(), 4)
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 8, items[0].Quantity)

	// pushing past stock clamps silently
	c.Add(roses(), 5)
	items = c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].Quantity)

	// a fresh line above stock clamps on insert
	c.Add(balloon(), 99)
	items = c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestAddNonPositiveQuantityIsNoop(t *testing.T) {
	c := New()
	c.Add(roses(), 0)
	c.Add(roses(), -3)

	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	a := New()
	a.Add(roses(), 2)
	a.Add(balloon(), 1)
	a.UpdateQuantity("1", 0)

	b := New()
	b.Add(roses(), 2)
	b.Add(balloon(), 1)
	b.Remove("1")

	assert.Equal(t, b.Items(), a.Items())
}

func TestUpdateQuantityClampsAndIgnoresUnknownID(t *testing.T) {
	c := New()
	c.Add(roses(), 1)

	c.UpdateQuantity("1", 50)
	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 10, items[0].Quantity)

	c.UpdateQuantity("missing", 3)
	assert.Len(t, c.Items(), 1)
}

func TestTotalsReflectEveryMutationExactlyOnce(t *testing.T) {
	c := New()
	c.Add(roses(), 2)    // 2 x 400
	c.Add(balloon(), 1)  // 1 x 550
	c.Add(roses(), 1)    // 3 x 400
	c.UpdateQuantity("3", 2) // 2 x 550
	c.Remove("missing")

	assert.Equal(t, 5, c.TotalItems())
	assert.Equal(t, 3*400.0+2*550.0, c.TotalPrice())

	// invariant: totalItems always equals the sum of line quantities and no
	// line exceeds its product's stock
	sum := 0
	for _, line := range c.Items() {
		assert.LessOrEqual(t, line.Quantity, line.Product.Stock)
		sum += line.Quantity
	}
	assert.Equal(t, c.TotalItems(), sum)
}

func TestClearEmptiesAggregate(t *testing.T) {
	c := New()
	c.Add(roses(), 2)
	c.Clear()

	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.TotalItems())
}

func TestItemsReturnsCopyInInsertionOrder(t *testing.T) {
	c := New()
	c.Add(balloon(), 1)
	c.Add(roses(), 1)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "3", items[0].Product.ID)
	assert.Equal(t, "1", items[1].Product.ID)

	// mutating the copy must not touch the cart
	items[0].Quantity = 99
	assert.Equal(t, 1, c.Items()[0].Quantity)
}

func TestBuildOrderItems(t *testing.T) {
	c := New()
	c.Add(roses(), 2)

	items := c.BuildOrderItems()
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, "Ramo de Rosas con Fresas", items[0].Name)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 400.0, items[0].Price)
}
