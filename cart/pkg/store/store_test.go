package store

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dress(size string) Line {
	return Line{ProductID: "p1", Name: "Dress", UnitPrice: decimal.NewFromInt(100), Size: size}
}

func TestAddToCart(t *testing.T) {
	tests := []struct {
		name             string
		adds             []Line
		quantities       []int
		expectedLines    int
		expectedOutcomes []Outcome
		expectedQuantity map[Key]int
	}{
		{
			name:             "given same product and size twice should merge into one line",
			adds:             []Line{dress("M"), dress("M")},
			quantities:       []int{2, 3},
			expectedLines:    1,
			expectedOutcomes: []Outcome{OutcomeAdded, OutcomeUpdated},
			expectedQuantity: map[Key]int{{"p1", "M"}: 5},
		},
		{
			name:             "given same product in two sizes should keep two lines",
			adds:             []Line{dress("M"), dress("L")},
			quantities:       []int{1, 1},
			expectedLines:    2,
			expectedOutcomes: []Outcome{OutcomeAdded, OutcomeAdded},
			expectedQuantity: map[Key]int{{"p1", "M"}: 1, {"p1", "L"}: 1},
		},
		{
			name:             "given zero quantity should add one",
			adds:             []Line{dress("")},
			quantities:       []int{0},
			expectedLines:    1,
			expectedOutcomes: []Outcome{OutcomeAdded},
			expectedQuantity: map[Key]int{{"p1", ""}: 1},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := New()
			for i, l := range test.adds {
				res := s.AddToCart(l, test.quantities[i])
				assert.Equal(t, test.expectedOutcomes[i], res.Outcome)
			}
			lines := s.Lines()
			require.Len(t, lines, test.expectedLines)
			for _, l := range lines {
				assert.Equal(t, test.expectedQuantity[l.Key()], l.Quantity)
			}
		})
	}
}

func TestAddToCartMessages(t *testing.T) {
	s := New()
	assert.Equal(t, "Added Dress to cart", s.AddToCart(dress("M"), 1).Message)
	assert.Equal(t, "Updated Dress quantity in cart", s.AddToCart(dress("M"), 1).Message)
}

func TestMergeKeepsPosition(t *testing.T) {
	s := New()
	s.AddToCart(dress("M"), 1)
	s.AddToCart(Line{ProductID: "p2", Name: "Scarf", UnitPrice: decimal.NewFromInt(20)}, 1)
	s.AddToCart(dress("M"), 4)

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, "p2", lines[1].ProductID)
}

func TestUpdateQuantity(t *testing.T) {
	tests := []struct {
		name          string
		quantity      int
		expectedLines int
	}{
		{name: "given zero should remove line", quantity: 0, expectedLines: 0},
		{name: "given negative should remove line", quantity: -1, expectedLines: 0},
		{name: "given positive should set absolute quantity", quantity: 7, expectedLines: 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := New()
			s.AddToCart(dress("M"), 3)

			assert.True(t, s.UpdateQuantity("p1", "M", test.quantity))

			lines := s.Lines()
			require.Len(t, lines, test.expectedLines)
			if test.expectedLines == 1 {
				assert.Equal(t, test.quantity, lines[0].Quantity)
			}
		})
	}
}

func TestRemoveMissingLineIsNoop(t *testing.T) {
	s := New()
	s.AddToCart(dress("M"), 1)

	assert.False(t, s.RemoveFromCart("p1", "XL"))
	assert.False(t, s.UpdateQuantity("p9", "", 3))
	assert.Len(t, s.Lines(), 1)
}

func TestClear(t *testing.T) {
	s := New()
	s.AddToCart(dress("M"), 1)
	s.AddToCart(dress("L"), 1)
	s.Clear()

	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.TotalItems())
	assert.True(t, decimal.Zero.Equal(s.TotalPrice()))
}

func TestConsume(t *testing.T) {
	s := New()
	s.AddToCart(dress("M"), 2)
	s.AddToCart(dress("L"), 1)
	ordered := s.Lines()

	s.AddToCart(dress("M"), 3)
	s.AddToCart(dress("S"), 1)
	s.RemoveFromCart("p1", "L")
	s.Consume(ordered)

	lines := s.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, Key{ProductID: "p1", Size: "M"}, lines[0].Key())
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, Key{ProductID: "p1", Size: "S"}, lines[1].Key())

	s.Consume(s.Lines())
	assert.True(t, s.IsEmpty())
}

func TestLinesAreCopies(t *testing.T) {
	s := New()
	item := dress("M")
	item.CustomMeasurements = map[string]string{"bust": "90"}
	s.AddToCart(item, 1)

	lines := s.Lines()
	lines[0].Quantity = 99
	lines[0].CustomMeasurements["bust"] = "100"
	item.CustomMeasurements["bust"] = "110"

	fresh := s.Lines()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.Equal(t, "90", fresh[0].CustomMeasurements["bust"])
}

func TestTotalsMatchIndependentSum(t *testing.T) {
	products := []Line{
		{ProductID: "p1", Name: "Dress", UnitPrice: decimal.RequireFromString("100.00")},
		{ProductID: "p2", Name: "Scarf", UnitPrice: decimal.RequireFromString("19.99")},
		{ProductID: "p3", Name: "Hat", UnitPrice: decimal.RequireFromString("5.50")},
	}
	sizes := []string{"", "S", "M"}

	r := rand.New(rand.NewSource(42))
	s := New()
	for range 500 {
		p := products[r.Intn(len(products))]
		p.Size = sizes[r.Intn(len(sizes))]
		switch r.Intn(3) {
		case 0:
			s.AddToCart(p, r.Intn(4)+1)
		case 1:
			s.UpdateQuantity(p.ProductID, p.Size, r.Intn(6)-1)
		case 2:
			s.RemoveFromCart(p.ProductID, p.Size)
		}

		expectedItems := 0
		expectedPrice := decimal.Zero
		seen := map[Key]bool{}
		for _, l := range s.Lines() {
			require.GreaterOrEqual(t, l.Quantity, 1)
			require.False(t, seen[l.Key()], "duplicate key %v", l.Key())
			seen[l.Key()] = true
			expectedItems += l.Quantity
			expectedPrice = expectedPrice.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		require.Equal(t, expectedItems, s.TotalItems())
		require.True(t, expectedPrice.Equal(s.TotalPrice()))
	}
}
