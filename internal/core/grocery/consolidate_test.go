package grocery

import (
	"errors"
	"math"
	"testing"

	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onionSources() []PlanSource {
	return []PlanSource{
		{PlanName: "Adults", Ingredients: []RawIngredientLine{
			{Name: "Onion", Amount: 1, Unit: "each", Category: "produce"},
		}},
		{PlanName: "Kids", Ingredients: []RawIngredientLine{
			{Name: "onion", Amount: 2, Unit: "each", Category: "produce"},
		}},
	}
}

func TestConsolidateOnionExample(t *testing.T) {
	agg := NewAggregator(FixedPriceEstimator(3))

	items, err := agg.Consolidate(onionSources())
	require.NoError(t, err)
	require.Len(t, items, 1)

	onion := items[0]
	assert.Equal(t, "Onion", onion.Name)
	assert.Equal(t, 3.0, onion.TotalAmount)
	assert.Equal(t, "each", onion.Unit)
	assert.Equal(t, "produce", onion.Category)
	assert.Equal(t, []string{"Adults", "Kids"}, onion.UsedInPlans)
	assert.Equal(t, 3.0, onion.EstimatedPrice)

	opt := NewOptimizationCalculator(DefaultSavingsPerShared).ComputeOptimization(items)
	assert.Equal(t, []string{"Onion"}, opt.SharedIngredients)
	assert.Equal(t, 2.5, opt.TotalSavings)
	assert.Equal(t, 100.0, opt.OverlapPercentage)
	assert.Contains(t, opt.WasteReductionNote, "100%")
}

func TestConsolidateMergeCorrectness(t *testing.T) {
	sources := []PlanSource{
		{PlanName: "A", Ingredients: []RawIngredientLine{
			{Name: "Garlic", Amount: 2, Unit: "cloves", Category: "Produce"},
			{Name: "Rice", Amount: 1, Unit: "cup", Category: "grains"},
		}},
		{PlanName: "B", Ingredients: []RawIngredientLine{
			{Name: " GARLIC ", Amount: math.NaN(), Unit: "head"},
			{Name: "rice", Amount: 2.5, Unit: "lb"},
			{Name: "Milk", Amount: -1, Unit: "cup", Category: "dairy"},
		}},
		{PlanName: "A", Ingredients: []RawIngredientLine{
			{Name: "garlic", Amount: 1, Unit: "cloves"},
		}},
	}

	items, err := NewAggregator(FixedPriceEstimator(1)).Consolidate(sources)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Garlic", items[0].Name)
	assert.Equal(t, 3.0, items[0].TotalAmount)
	assert.Equal(t, "cloves", items[0].Unit, "first unit wins")
	assert.Equal(t, "produce", items[0].Category)
	assert.Equal(t, []string{"A", "B"}, items[0].UsedInPlans)

	// 不同單位直接相加
	assert.Equal(t, "Rice", items[1].Name)
	assert.Equal(t, 3.5, items[1].TotalAmount)
	assert.Equal(t, "cup", items[1].Unit)

	assert.Equal(t, "Milk", items[2].Name)
	assert.Equal(t, 0.0, items[2].TotalAmount)
	assert.Equal(t, []string{"B"}, items[2].UsedInPlans)
}

func TestConsolidateOrderingIsIdempotent(t *testing.T) {
	sources := []PlanSource{
		{PlanName: "Week 1", Ingredients: []RawIngredientLine{
			{Name: "Tomato", Amount: 2}, {Name: "Basil", Amount: 1}, {Name: "Pasta", Amount: 1},
		}},
		{PlanName: "Week 2", Ingredients: []RawIngredientLine{
			{Name: "pasta", Amount: 2}, {Name: "tomatoes", Amount: 3}, {Name: "basil", Amount: 1},
		}},
	}
	agg := NewAggregator(FixedPriceEstimator(2))

	first, err := agg.Consolidate(sources)
	require.NoError(t, err)
	second, err := agg.Consolidate(sources)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	names := make([]string, 0, len(first))
	for _, item := range first {
		names = append(names, item.Name)
	}
	assert.Equal(t, []string{"Tomato", "Basil", "Pasta", "Tomatoes"}, names)
}

func TestConsolidateEmpty(t *testing.T) {
	items, err := NewAggregator(nil).Consolidate(nil)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestConsolidateMissingName(t *testing.T) {
	sources := []PlanSource{{PlanName: "Kids", Ingredients: []RawIngredientLine{
		{Name: "Carrot", Amount: 1},
		{Name: "   ", Amount: 2},
	}}}

	_, err := NewAggregator(nil).Consolidate(sources)
	require.Error(t, err)

	var inputErr *InputDataError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "Kids", inputErr.Plan)
	assert.Equal(t, 1, inputErr.Index)
	assert.True(t, errors.Is(err, common.ErrInvalidRequest))
}

func TestRandomPriceEstimatorBounds(t *testing.T) {
	est := NewRandomPriceEstimator(DefaultPriceMin, DefaultPriceMax)
	for i := 0; i < 1000; i++ {
		p := est.EstimatePrice(ConsolidatedIngredient{Name: "Onion"})
		assert.GreaterOrEqual(t, p, 1.0)
		assert.Less(t, p, 6.0)
	}

	fallback := NewRandomPriceEstimator(5, 2)
	assert.Equal(t, DefaultPriceMin, fallback.Min)
	assert.Equal(t, DefaultPriceMax, fallback.Max)
}

func TestTotalCost(t *testing.T) {
	items := []ConsolidatedIngredient{{EstimatedPrice: 1.111}, {EstimatedPrice: 2.222}}
	assert.Equal(t, 3.33, TotalCost(items))
	assert.Equal(t, 0.0, TotalCost(nil))
}
