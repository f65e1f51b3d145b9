package grocery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/pkg/common"
	"meal-planner/internal/pkg/metrics"

	"go.uber.org/zap"
)

// Options 採買服務的可調參數
type Options struct {
	Pricer           PriceEstimator
	Completer        provider.Completer
	AITimeout        time.Duration
	SavingsPerShared float64
}

// Service 採買清單服務：整併、走道分組、Instacart 訊息與跨餐單分析
type Service struct {
	repo       Repository
	aggregator *Aggregator
	organizer  *AisleOrganizer
	formatter  *InstacartFormatter
	optimizer  *OptimizationCalculator
	now        func() time.Time
}

// NewService 創建採買清單服務
func NewService(repo Repository, opts Options) *Service {
	return &Service{
		repo:       repo,
		aggregator: NewAggregator(opts.Pricer),
		organizer:  NewAisleOrganizer(opts.Completer, opts.AITimeout),
		formatter:  NewInstacartFormatter(opts.Completer, opts.AITimeout),
		optimizer:  NewOptimizationCalculator(opts.SavingsPerShared),
		now:        time.Now,
	}
}

// ConsolidateMealPlans 讀取餐單與其食譜食材並整併；餐單名稱即來源名稱
func (s *Service) ConsolidateMealPlans(ctx context.Context, userID string, planIDs []string, name string) (*ConsolidationResult, error) {
	ids := uniqueIDs(planIDs)
	if len(ids) == 0 {
		return nil, common.ErrInvalidRequest.Wrap(fmt.Errorf("at least one meal plan id is required"))
	}

	// 同一請求內相同食譜只讀取一次
	recipeIngredients := make(map[string][]RawIngredientLine)
	sources := make([]PlanSource, 0, len(ids))
	planNames := make([]string, 0, len(ids))

	for _, id := range ids {
		plan, err := s.repo.GetMealPlan(ctx, id, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load meal plan %s: %w", id, err)
		}
		meals, err := s.repo.GetMealsForPlan(ctx, plan.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load meals for plan %s: %w", id, err)
		}

		planName := strings.TrimSpace(plan.Name)
		if planName == "" {
			planName = plan.ID
		}
		planNames = append(planNames, planName)

		src := PlanSource{PlanName: planName}
		for _, meal := range meals {
			if meal.RecipeID == "" {
				continue
			}
			lines, ok := recipeIngredients[meal.RecipeID]
			if !ok {
				lines, err = s.repo.GetRecipeIngredients(ctx, meal.RecipeID)
				if err != nil {
					return nil, fmt.Errorf("failed to load ingredients for recipe %s: %w", meal.RecipeID, err)
				}
				recipeIngredients[meal.RecipeID] = lines
			}
			src.Ingredients = append(src.Ingredients, lines...)
		}
		sources = append(sources, src)
	}

	if strings.TrimSpace(name) == "" {
		name = defaultListName(planNames)
	}

	result, err := s.build(name, sources, len(ids), len(recipeIngredients))
	if err != nil {
		return nil, err
	}

	common.LogInfo("食材整併完成",
		zap.String("user_id", userID),
		zap.Int("meal_plans", result.Metadata.MealPlanCount),
		zap.Int("recipes", result.Metadata.RecipeCount),
		zap.Int("items", result.Metadata.TotalItems),
	)
	return result, nil
}

// ConsolidateGroup 整併群組內所有餐單並附上共用食材分析
func (s *Service) ConsolidateGroup(ctx context.Context, userID, groupID string) (*GroupConsolidation, error) {
	group, err := s.repo.GetMealPlanGroup(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan group %s: %w", groupID, err)
	}

	result, err := s.ConsolidateMealPlans(ctx, userID, group.PlanIDs, group.Name)
	if err != nil {
		return nil, err
	}

	return &GroupConsolidation{
		GroupID:      group.ID,
		Result:       result,
		Optimization: s.optimizer.ComputeOptimization(result.Ingredients),
	}, nil
}

// ConsolidateIngredients 直接整併呼叫端已取得的食材；每個 PlanSource 視為一份食譜
func (s *Service) ConsolidateIngredients(name string, sources []PlanSource) (*ConsolidationResult, error) {
	plans := make(map[string]struct{})
	names := make([]string, 0)
	for _, src := range sources {
		if _, ok := plans[src.PlanName]; !ok {
			plans[src.PlanName] = struct{}{}
			names = append(names, src.PlanName)
		}
	}
	if strings.TrimSpace(name) == "" {
		name = defaultListName(names)
	}
	return s.build(name, sources, len(plans), len(sources))
}

func (s *Service) build(name string, sources []PlanSource, planCount, recipeCount int) (*ConsolidationResult, error) {
	items, err := s.aggregator.Consolidate(sources)
	if err != nil {
		return nil, err
	}
	metrics.ConsolidatedItems.Observe(float64(len(items)))

	return &ConsolidationResult{
		ID:          common.GenerateUUID(),
		Name:        name,
		TotalCost:   TotalCost(items),
		Ingredients: items,
		Metadata: ConsolidationMetadata{
			MealPlanCount: planCount,
			RecipeCount:   recipeCount,
			TotalItems:    len(items),
		},
	}, nil
}

// OrganizeByStore 依賣場走道分組
func (s *Service) OrganizeByStore(ctx context.Context, items []ConsolidatedIngredient, storeName string) AisleLayout {
	return s.organizer.OrganizeByStore(ctx, items, storeName)
}

// FormatForInstacart 產生 Instacart 訊息
func (s *Service) FormatForInstacart(ctx context.Context, items []ConsolidatedIngredient) string {
	return s.formatter.FormatForInstacart(ctx, items)
}

// ComputeOptimization 跨餐單共用食材分析
func (s *Service) ComputeOptimization(items []ConsolidatedIngredient) Optimization {
	return s.optimizer.ComputeOptimization(items)
}

// SaveGroceryList 將整併結果存成採買清單，未分組的食材以分類對照表決定走道
func (s *Service) SaveGroceryList(ctx context.Context, userID string, result *ConsolidationResult, storeName string) (*GroceryList, error) {
	if result == nil {
		return nil, common.ErrInvalidRequest.Wrap(fmt.Errorf("nothing to save"))
	}

	list := &GroceryList{
		ID:        result.ID,
		UserID:    userID,
		Name:      result.Name,
		StoreName: storeName,
		TotalCost: result.TotalCost,
		Items:     make([]GroceryListItem, 0, len(result.Ingredients)),
		CreatedAt: s.now().UTC(),
	}
	if list.ID == "" {
		list.ID = common.GenerateUUID()
	}

	for _, item := range result.Ingredients {
		aisle := item.Aisle
		if aisle == "" {
			aisle = AisleForCategory(item.Category)
		}
		list.Items = append(list.Items, GroceryListItem{
			Name:           item.Name,
			Amount:         item.TotalAmount,
			Unit:           item.Unit,
			Category:       item.Category,
			Aisle:          aisle,
			EstimatedPrice: item.EstimatedPrice,
		})
	}

	if err := s.repo.SaveGroceryList(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save grocery list: %w", err)
	}

	common.LogInfo("採買清單已儲存",
		zap.String("list_id", list.ID),
		zap.String("user_id", userID),
		zap.Int("items", len(list.Items)),
	)
	return list, nil
}

func defaultListName(planNames []string) string {
	if len(planNames) == 1 {
		return "Shopping list: " + planNames[0]
	}
	return fmt.Sprintf("Consolidated shopping list (%d meal plans)", len(planNames))
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
