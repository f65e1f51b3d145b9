package grocery

// RawIngredientLine 食譜上的一筆食材
type RawIngredientLine struct {
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Category string  `json:"category"`
}

// PlanSource 一個來源（餐單）與其全部食材
type PlanSource struct {
	PlanName    string              `json:"plan_name"`
	Ingredients []RawIngredientLine `json:"ingredients"`
}

// ConsolidatedIngredient 合併去重後的食材
type ConsolidatedIngredient struct {
	Name           string   `json:"name"`
	TotalAmount    float64  `json:"total_amount"`
	Unit           string   `json:"unit"`
	Category       string   `json:"category"`
	EstimatedPrice float64  `json:"estimated_price"`
	UsedInPlans    []string `json:"used_in_plans"`
	Aisle          string   `json:"aisle,omitempty"`
}

// ConsolidationMetadata 整併統計
type ConsolidationMetadata struct {
	MealPlanCount int `json:"meal_plan_count"`
	RecipeCount   int `json:"recipe_count"`
	TotalItems    int `json:"total_items"`
}

// ConsolidationResult 整併結果
type ConsolidationResult struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	TotalCost   float64                  `json:"total_cost"`
	Ingredients []ConsolidatedIngredient `json:"ingredients"`
	Metadata    ConsolidationMetadata    `json:"metadata"`
}

// AisleGroup 一個走道與其食材
type AisleGroup struct {
	Aisle string                   `json:"aisle"`
	Items []ConsolidatedIngredient `json:"items"`
}

// 走道分組來源
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// AisleLayout 依走道分組的結果，Aisles 保留分組順序
type AisleLayout struct {
	Store  string       `json:"store"`
	Source string       `json:"source"`
	Aisles []AisleGroup `json:"aisles"`
}

// ByAisle 以走道名稱為 key 的檢視
func (l AisleLayout) ByAisle() map[string][]ConsolidatedIngredient {
	out := make(map[string][]ConsolidatedIngredient, len(l.Aisles))
	for _, g := range l.Aisles {
		out[g.Aisle] = append(out[g.Aisle], g.Items...)
	}
	return out
}

// ItemCount 所有走道的食材總數
func (l AisleLayout) ItemCount() int {
	n := 0
	for _, g := range l.Aisles {
		n += len(g.Items)
	}
	return n
}

// Optimization 跨餐單共用食材分析
type Optimization struct {
	SharedIngredients  []string `json:"shared_ingredients"`
	TotalSavings       float64  `json:"total_savings"`
	WasteReductionNote string   `json:"waste_reduction_note"`
	OverlapPercentage  float64  `json:"overlap_percentage"`
}

// GroupConsolidation 餐單群組的整併結果
type GroupConsolidation struct {
	GroupID      string               `json:"group_id"`
	Result       *ConsolidationResult `json:"result"`
	Optimization Optimization         `json:"optimization"`
}
