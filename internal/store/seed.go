package store

import (
	"meal-planner/internal/core/grocery"
)

// DemoUserID 示範資料的使用者
const DemoUserID = "demo-user"

// SeedDemo 寫入兩份餐單（大人、小孩）與一個群組，方便本機試用
func (s *MemoryStore) SeedDemo() {
	s.AddRecipe("tomato-soup",
		grocery.RawIngredientLine{Name: "Onion", Amount: 1, Unit: "each", Category: "produce"},
		grocery.RawIngredientLine{Name: "Tomato", Amount: 4, Unit: "each", Category: "produce"},
		grocery.RawIngredientLine{Name: "Heavy cream", Amount: 0.5, Unit: "cup", Category: "dairy"},
		grocery.RawIngredientLine{Name: "Vegetable broth", Amount: 2, Unit: "cups", Category: "canned goods"},
	)
	s.AddRecipe("veggie-stew",
		grocery.RawIngredientLine{Name: "onion", Amount: 2, Unit: "each", Category: "produce"},
		grocery.RawIngredientLine{Name: "Carrot", Amount: 3, Unit: "each", Category: "produce"},
		grocery.RawIngredientLine{Name: "Potato", Amount: 2, Unit: "lbs", Category: "produce"},
		grocery.RawIngredientLine{Name: "vegetable broth", Amount: 4, Unit: "cups", Category: "canned goods"},
	)
	s.AddRecipe("chicken-tacos",
		grocery.RawIngredientLine{Name: "Chicken breast", Amount: 1.5, Unit: "lbs", Category: "poultry"},
		grocery.RawIngredientLine{Name: "Tortillas", Amount: 8, Unit: "each", Category: "bakery"},
		grocery.RawIngredientLine{Name: "Cheddar", Amount: 1, Unit: "cup", Category: "cheese"},
		grocery.RawIngredientLine{Name: "Frozen corn", Amount: 1, Unit: "bag", Category: "frozen"},
	)

	s.AddMealPlan(
		grocery.MealPlan{ID: "plan-adults", UserID: DemoUserID, Name: "Adults", Goals: "balanced", TargetGroup: "adults"},
		grocery.Meal{ID: "meal-1", RecipeID: "tomato-soup", RecipeName: "Tomato Soup", Day: 1, MealType: "dinner", Servings: 2},
		grocery.Meal{ID: "meal-2", RecipeID: "chicken-tacos", RecipeName: "Chicken Tacos", Day: 2, MealType: "dinner", Servings: 2},
	)
	s.AddMealPlan(
		grocery.MealPlan{ID: "plan-kids", UserID: DemoUserID, Name: "Kids", Goals: "picky eaters", TargetGroup: "kids"},
		grocery.Meal{ID: "meal-3", RecipeID: "veggie-stew", RecipeName: "Veggie Stew", Day: 1, MealType: "dinner", Servings: 2},
		grocery.Meal{ID: "meal-4", RecipeID: "chicken-tacos", RecipeName: "Chicken Tacos", Day: 3, MealType: "lunch", Servings: 2},
	)
	s.AddMealPlanGroup(grocery.MealPlanGroup{
		ID:      "group-family",
		UserID:  DemoUserID,
		Name:    "Family week",
		PlanIDs: []string{"plan-adults", "plan-kids"},
	})
}
