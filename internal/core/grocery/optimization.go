package grocery

import (
	"fmt"
	"math"
)

// DefaultSavingsPerShared 每個共用食材的預估節省金額（暫定常數，非實際估算）
const DefaultSavingsPerShared = 2.5

// OptimizationCalculator 跨餐單共用食材計算
type OptimizationCalculator struct {
	SavingsPerShared float64
}

// NewOptimizationCalculator 負數時使用預設值
func NewOptimizationCalculator(savingsPerShared float64) *OptimizationCalculator {
	if savingsPerShared < 0 || math.IsNaN(savingsPerShared) {
		savingsPerShared = DefaultSavingsPerShared
	}
	return &OptimizationCalculator{SavingsPerShared: savingsPerShared}
}

// ComputeOptimization 找出被兩份以上餐單使用的食材並估算節省
func (c *OptimizationCalculator) ComputeOptimization(items []ConsolidatedIngredient) Optimization {
	shared := make([]string, 0)
	for _, item := range items {
		if len(item.UsedInPlans) > 1 {
			shared = append(shared, item.Name)
		}
	}

	overlap := 0.0
	if len(items) > 0 {
		overlap = float64(len(shared)) / float64(len(items)) * 100
		overlap = math.Max(0, math.Min(100, overlap))
	}

	note := fmt.Sprintf("Consolidating shared ingredients reduces waste by about %d%% across your meal plans.",
		int(math.Round(overlap)))

	return Optimization{
		SharedIngredients:  shared,
		TotalSavings:       roundCents(float64(len(shared)) * c.SavingsPerShared),
		WasteReductionNote: note,
		OverlapPercentage:  overlap,
	}
}
