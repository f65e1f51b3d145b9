package grocery

import (
	"context"
	"time"
)

// MealPlan 餐單
type MealPlan struct {
	ID          string `json:"id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	Name        string `json:"name" db:"name"`
	Goals       string `json:"goals" db:"goals"`
	TargetGroup string `json:"target_group" db:"target_group"`
}

// Meal 餐單中的一餐
type Meal struct {
	ID         string `json:"id" db:"id"`
	PlanID     string `json:"plan_id" db:"plan_id"`
	RecipeID   string `json:"recipe_id" db:"recipe_id"`
	RecipeName string `json:"recipe_name" db:"recipe_name"`
	Day        int    `json:"day" db:"day"`
	MealType   string `json:"meal_type" db:"meal_type"`
	Servings   int    `json:"servings" db:"servings"`
}

// MealPlanGroup 共用採買的餐單群組
type MealPlanGroup struct {
	ID      string   `json:"id"`
	UserID  string   `json:"user_id"`
	Name    string   `json:"name"`
	PlanIDs []string `json:"plan_ids"`
}

// GroceryListItem 採買清單項目
type GroceryListItem struct {
	Name           string  `json:"name"`
	Amount         float64 `json:"amount"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category"`
	Aisle          string  `json:"aisle"`
	EstimatedPrice float64 `json:"estimated_price"`
	Checked        bool    `json:"checked"`
}

// GroceryList 儲存下來的採買清單
type GroceryList struct {
	ID        string            `json:"id"`
	UserID    string            `json:"user_id"`
	Name      string            `json:"name"`
	StoreName string            `json:"store_name"`
	TotalCost float64           `json:"total_cost"`
	Items     []GroceryListItem `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
}

// Repository 儲存層協作者；找不到資料時回傳包裝 common.ErrNotFound 的錯誤
type Repository interface {
	GetRecipeIngredients(ctx context.Context, recipeID string) ([]RawIngredientLine, error)
	GetMealPlan(ctx context.Context, id, userID string) (*MealPlan, error)
	GetMealsForPlan(ctx context.Context, planID string) ([]Meal, error)
	GetMealPlanGroup(ctx context.Context, id, userID string) (*MealPlanGroup, error)
	SaveGroceryList(ctx context.Context, list *GroceryList) error
}
