package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"meal-planner/internal/core/grocery"
	"meal-planner/internal/pkg/common"
)

// MemoryStore 記憶體儲存，用於開發與測試
type MemoryStore struct {
	mu      sync.RWMutex
	recipes map[string][]grocery.RawIngredientLine
	plans   map[string]grocery.MealPlan
	meals   map[string][]grocery.Meal
	groups  map[string]grocery.MealPlanGroup
	lists   map[string]grocery.GroceryList
}

// NewMemoryStore 創建空的記憶體儲存
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recipes: make(map[string][]grocery.RawIngredientLine),
		plans:   make(map[string]grocery.MealPlan),
		meals:   make(map[string][]grocery.Meal),
		groups:  make(map[string]grocery.MealPlanGroup),
		lists:   make(map[string]grocery.GroceryList),
	}
}

// AddRecipe 設定食譜的食材
func (s *MemoryStore) AddRecipe(recipeID string, lines ...grocery.RawIngredientLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipes[recipeID] = append([]grocery.RawIngredientLine(nil), lines...)
}

// AddMealPlan 新增餐單與其餐點
func (s *MemoryStore) AddMealPlan(plan grocery.MealPlan, meals ...grocery.Meal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[plan.ID] = plan
	for i := range meals {
		meals[i].PlanID = plan.ID
	}
	s.meals[plan.ID] = append([]grocery.Meal(nil), meals...)
}

// AddMealPlanGroup 新增餐單群組
func (s *MemoryStore) AddMealPlanGroup(group grocery.MealPlanGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	group.PlanIDs = append([]string(nil), group.PlanIDs...)
	s.groups[group.ID] = group
}

// GetRecipeIngredients 實現 grocery.Repository
func (s *MemoryStore) GetRecipeIngredients(ctx context.Context, recipeID string) ([]grocery.RawIngredientLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]grocery.RawIngredientLine(nil), s.recipes[recipeID]...), nil
}

// GetMealPlan 實現 grocery.Repository
func (s *MemoryStore) GetMealPlan(ctx context.Context, id, userID string) (*grocery.MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[id]
	if !ok || plan.UserID != userID {
		return nil, common.ErrNotFound.Wrap(fmt.Errorf("meal plan %s not found", id))
	}
	return &plan, nil
}

// GetMealsForPlan 實現 grocery.Repository
func (s *MemoryStore) GetMealsForPlan(ctx context.Context, planID string) ([]grocery.Meal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]grocery.Meal(nil), s.meals[planID]...), nil
}

// GetMealPlanGroup 實現 grocery.Repository
func (s *MemoryStore) GetMealPlanGroup(ctx context.Context, id, userID string) (*grocery.MealPlanGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	group, ok := s.groups[id]
	if !ok || group.UserID != userID {
		return nil, common.ErrNotFound.Wrap(fmt.Errorf("meal plan group %s not found", id))
	}
	group.PlanIDs = append([]string(nil), group.PlanIDs...)
	return &group, nil
}

// SaveGroceryList 實現 grocery.Repository
func (s *MemoryStore) SaveGroceryList(ctx context.Context, list *grocery.GroceryList) error {
	if list == nil || list.ID == "" {
		return common.ErrInvalidRequest.Wrap(fmt.Errorf("grocery list id is required"))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *list
	saved.Items = append([]grocery.GroceryListItem(nil), list.Items...)
	s.lists[list.ID] = saved
	return nil
}

// GroceryLists 列出使用者的採買清單（依建立時間）
func (s *MemoryStore) GroceryLists(userID string) []grocery.GroceryList {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]grocery.GroceryList, 0)
	for _, l := range s.lists {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// Ping 實現 Store
func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Close 實現 Store
func (s *MemoryStore) Close() error {
	return nil
}
