package cart

import (
	"testing"

	"github.com/Bishesh-P/coffee-alpico-sub000/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func beans() models.Product {
	return models.Product{
		ID:    1,
		Name:  "Ilam Estate Beans",
		Price: price(900),
		Variants: []models.Variant{
			{ID: "a", Name: "250g", Price: price(100)},
			{ID: "b", Name: "500g", Price: price(180)},
		},
	}
}

func dripper() models.Product {
	return models.Product{ID: 2, Name: "V60 Dripper", Price: price(1200)}
}

func variant(p models.Product, id string) *models.Variant {
	v, _ := p.Variant(id)
	return &v
}

func TestAddSamePairSumsQuantity(t *testing.T) {
	c := New()
	p := beans()
	for _, q := range []int{1, 2, 3} {
		c.Add(p, q, "", variant(p, "a"))
	}

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 6, lines[0].Quantity)
}

func TestAddDifferentVariantsAreDistinct(t *testing.T) {
	c := New()
	p := beans()
	c.Add(p, 1, "", variant(p, "a"))
	c.Add(p, 1, "", variant(p, "b"))
	c.Add(p, 1, "", nil)

	assert.Len(t, c.Lines(), 3)
}

func TestAddMachineOnlyOverwrittenWhenGiven(t *testing.T) {
	c := New()
	p := dripper()
	c.Add(p, 1, "French Press", nil)
	c.Add(p, 1, "", nil)
	assert.Equal(t, "French Press", c.Lines()[0].Machine)

	c.Add(p, 1, "Moka Pot", nil)
	assert.Equal(t, "Moka Pot", c.Lines()[0].Machine)
}

func TestAddDefaultsQuantity(t *testing.T) {
	c := New()
	c.Add(dripper(), 0, "", nil)
	assert.Equal(t, 1, c.Count())
}

func TestUpdateQuantityNonPositiveRemoves(t *testing.T) {
	for _, q := range []int{0, -1, -7} {
		c := New()
		p := beans()
		c.Add(p, 2, "", variant(p, "a"))
		c.Add(dripper(), 1, "", nil)

		c.UpdateQuantity(p.ID, q, "a")

		removed := New()
		removed.Add(p, 2, "", variant(p, "a"))
		removed.Add(dripper(), 1, "", nil)
		removed.Remove(p.ID, "a")

		assert.Equal(t, removed.Lines(), c.Lines(), "quantity %d", q)
	}
}

func TestUpdateQuantityOverwrites(t *testing.T) {
	c := New()
	c.Add(dripper(), 2, "", nil)
	c.UpdateQuantity(2, 5, "")
	assert.Equal(t, 5, c.Count())

	c.UpdateQuantity(99, 5, "")
	assert.Equal(t, 5, c.Count())
}

func TestRemoveMissingIsNoop(t *testing.T) {
	c := New()
	c.Add(dripper(), 1, "", nil)
	c.Remove(2, "nope")
	c.Remove(42, "")
	assert.Len(t, c.Lines(), 1)
}

func TestSetVariantOnlyFillsUnsetLines(t *testing.T) {
	c := New()
	p := beans()
	c.Add(p, 1, "", variant(p, "b"))

	c.SetVariant(p.ID, *variant(p, "a"))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "b", lines[0].VariantID())
}

func TestSetVariantFillsUnsetLine(t *testing.T) {
	c := New()
	p := beans()
	c.Add(p, 2, "Aeropress", nil)
	require.True(t, c.NeedsVariants())

	c.SetVariant(p.ID, *variant(p, "a"))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "a", lines[0].VariantID())
	assert.Equal(t, "Aeropress", lines[0].Machine)
	assert.False(t, c.NeedsVariants())

	// A second call finds nothing unset and is a no-op.
	c.SetVariant(p.ID, *variant(p, "b"))
	assert.Equal(t, "a", c.Lines()[0].VariantID())
}

func TestSetVariantMergesIntoExistingLine(t *testing.T) {
	c := New()
	p := beans()
	c.Add(p, 1, "", variant(p, "a"))
	c.Add(p, 2, "", nil)

	c.SetVariant(p.ID, *variant(p, "a"))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestSetMachine(t *testing.T) {
	c := New()
	p := beans()
	c.Add(p, 1, "", variant(p, "a"))
	c.SetMachine(p.ID, "Espresso", "a")
	c.SetMachine(p.ID, "ignored", "b")
	assert.Equal(t, "Espresso", c.Lines()[0].Machine)
}

func TestTotalAcrossOperations(t *testing.T) {
	c := New()
	p := beans()
	c.Add(p, 2, "", nil)
	assert.True(t, c.Total().Equal(price(1800)), "product price applies until a variant is chosen")

	c.SetVariant(p.ID, *variant(p, "a"))
	c.Add(dripper(), 1, "", nil)
	c.Add(p, 1, "", variant(p, "b"))
	c.UpdateQuantity(dripper().ID, 3, "")
	c.Remove(p.ID, "b")

	want := decimal.Zero
	for _, l := range c.Lines() {
		want = want.Add(l.UnitPrice().Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	assert.True(t, c.Total().Equal(want))
	assert.True(t, c.Total().Equal(price(200+3600)))
	assert.Equal(t, 5, c.Count())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(dripper(), 3, "", nil)
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
	assert.Zero(t, c.Count())
}
