package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"meal-planner/internal/core/grocery"
	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New(config.DatabaseConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	assert.NoError(t, s.Ping(context.Background()))

	_, err = New(config.DatabaseConfig{Driver: "sqlite"})
	assert.Error(t, err)
}

func TestMemoryStoreMealPlans(t *testing.T) {
	s := NewMemoryStore()
	s.AddMealPlan(grocery.MealPlan{ID: "p1", UserID: "u1", Name: "Adults"},
		grocery.Meal{ID: "m1", RecipeID: "r1"},
	)
	ctx := context.Background()

	plan, err := s.GetMealPlan(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "Adults", plan.Name)

	_, err = s.GetMealPlan(ctx, "p1", "u2")
	assert.True(t, errors.Is(err, common.ErrNotFound), "plans are scoped to their owner")

	meals, err := s.GetMealsForPlan(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "p1", meals[0].PlanID)

	meals, err = s.GetMealsForPlan(ctx, "unknown")
	require.NoError(t, err)
	assert.Empty(t, meals)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	s.AddRecipe("r1", grocery.RawIngredientLine{Name: "Onion", Amount: 1})
	ctx := context.Background()

	lines, err := s.GetRecipeIngredients(ctx, "r1")
	require.NoError(t, err)
	lines[0].Name = "changed"

	lines, err = s.GetRecipeIngredients(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "Onion", lines[0].Name)
}

func TestMemoryStoreGroupsAndLists(t *testing.T) {
	s := NewMemoryStore()
	s.SeedDemo()
	ctx := context.Background()

	group, err := s.GetMealPlanGroup(ctx, "group-family", DemoUserID)
	require.NoError(t, err)
	assert.Equal(t, []string{"plan-adults", "plan-kids"}, group.PlanIDs)

	_, err = s.GetMealPlanGroup(ctx, "group-family", "intruder")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	now := time.Now()
	require.NoError(t, s.SaveGroceryList(ctx, &grocery.GroceryList{ID: "l2", UserID: DemoUserID, CreatedAt: now.Add(time.Minute)}))
	require.NoError(t, s.SaveGroceryList(ctx, &grocery.GroceryList{ID: "l1", UserID: DemoUserID, CreatedAt: now}))
	require.NoError(t, s.SaveGroceryList(ctx, &grocery.GroceryList{ID: "l3", UserID: "other", CreatedAt: now}))

	lists := s.GroceryLists(DemoUserID)
	require.Len(t, lists, 2)
	assert.Equal(t, "l1", lists[0].ID)

	assert.Error(t, s.SaveGroceryList(ctx, &grocery.GroceryList{}))
}

func TestSeedDemoConsolidates(t *testing.T) {
	s := NewMemoryStore()
	s.SeedDemo()

	svc := grocery.NewService(s, grocery.Options{Pricer: grocery.FixedPriceEstimator(1)})
	got, err := svc.ConsolidateGroup(context.Background(), DemoUserID, "group-family")
	require.NoError(t, err)

	assert.Equal(t, 3, got.Result.Metadata.RecipeCount)
	assert.Contains(t, got.Optimization.SharedIngredients, "Onion")
	assert.Contains(t, got.Optimization.SharedIngredients, "Vegetable broth")
	assert.Contains(t, got.Optimization.SharedIngredients, "Chicken breast")
}
