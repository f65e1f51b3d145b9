package grocery

import (
	"strings"
)

// Aggregator 合併多份食譜的食材
type Aggregator struct {
	pricer PriceEstimator
}

// NewAggregator 創建整併器，pricer 為 nil 時使用預設隨機估價
func NewAggregator(pricer PriceEstimator) *Aggregator {
	if pricer == nil {
		pricer = NewRandomPriceEstimator(DefaultPriceMin, DefaultPriceMax)
	}
	return &Aggregator{pricer: pricer}
}

// Consolidate 依 Key 合併食材並加總數量，輸出順序為首次出現順序。
// 不同單位直接相加，不做換算。
func (a *Aggregator) Consolidate(sources []PlanSource) ([]ConsolidatedIngredient, error) {
	for _, src := range sources {
		for i, line := range src.Ingredients {
			if strings.TrimSpace(line.Name) == "" {
				return nil, &InputDataError{Plan: src.PlanName, Index: i, Field: "name"}
			}
		}
	}

	index := make(map[string]int)
	out := make([]ConsolidatedIngredient, 0)

	for _, src := range sources {
		for _, line := range src.Ingredients {
			key := Key(line.Name)
			amount := sanitizeAmount(line.Amount)

			pos, ok := index[key]
			if !ok {
				item := ConsolidatedIngredient{
					Name:        DisplayName(line.Name),
					TotalAmount: amount,
					Unit:        strings.TrimSpace(line.Unit),
					Category:    NormalizeCategory(line.Category),
					UsedInPlans: []string{src.PlanName},
				}
				item.EstimatedPrice = a.pricer.EstimatePrice(item)
				index[key] = len(out)
				out = append(out, item)
				continue
			}

			existing := &out[pos]
			existing.TotalAmount += amount
			if !containsString(existing.UsedInPlans, src.PlanName) {
				existing.UsedInPlans = append(existing.UsedInPlans, src.PlanName)
			}
		}
	}

	return out, nil
}

// TotalCost 估價總和
func TotalCost(items []ConsolidatedIngredient) float64 {
	total := 0.0
	for _, item := range items {
		total += item.EstimatedPrice
	}
	return roundCents(total)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
