package grocery

import (
	"math/rand"
)

// PriceEstimator 估價策略
type PriceEstimator interface {
	EstimatePrice(item ConsolidatedIngredient) float64
}

// 預設價格區間 [1, 6)
const (
	DefaultPriceMin = 1.0
	DefaultPriceMax = 6.0
)

// RandomPriceEstimator 在 [Min, Max) 內均勻取值，尚未串接真實價格來源前的預設策略
type RandomPriceEstimator struct {
	Min float64
	Max float64
}

// NewRandomPriceEstimator 創建隨機估價器，區間無效時使用預設值
func NewRandomPriceEstimator(min, max float64) *RandomPriceEstimator {
	if min <= 0 || max <= min {
		min, max = DefaultPriceMin, DefaultPriceMax
	}
	return &RandomPriceEstimator{Min: min, Max: max}
}

// EstimatePrice 實現 PriceEstimator 介面
func (e *RandomPriceEstimator) EstimatePrice(ConsolidatedIngredient) float64 {
	return e.Min + rand.Float64()*(e.Max-e.Min)
}

// FixedPriceEstimator 固定價格
type FixedPriceEstimator float64

// EstimatePrice 實現 PriceEstimator 介面
func (f FixedPriceEstimator) EstimatePrice(ConsolidatedIngredient) float64 {
	return float64(f)
}
