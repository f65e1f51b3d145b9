package grocery

// 走道名稱
const (
	AisleProduce = "Produce"
	AisleMeat    = "Meat & Seafood"
	AisleDairy   = "Dairy"
	AislePantry  = "Pantry"
	AisleFrozen  = "Frozen"
	AisleBakery  = "Bakery"
	AisleOther   = "Other"
)

// aisleOrder 走道宣告順序，備援分組依此排列
var aisleOrder = []string{
	AisleProduce,
	AisleMeat,
	AisleDairy,
	AislePantry,
	AisleFrozen,
	AisleBakery,
	AisleOther,
}

// categoryAisles 分類 → 走道對照表，整個專案共用
var categoryAisles = map[string]string{
	"produce":    AisleProduce,
	"vegetable":  AisleProduce,
	"vegetables": AisleProduce,
	"fruit":      AisleProduce,
	"fruits":     AisleProduce,
	"herbs":      AisleProduce,

	"meat":    AisleMeat,
	"poultry": AisleMeat,
	"seafood": AisleMeat,
	"fish":    AisleMeat,
	"protein": AisleMeat,

	"dairy":  AisleDairy,
	"eggs":   AisleDairy,
	"cheese": AisleDairy,

	"pantry":       AislePantry,
	"dry goods":    AislePantry,
	"grains":       AislePantry,
	"pasta":        AislePantry,
	"canned":       AislePantry,
	"canned goods": AislePantry,
	"spices":       AislePantry,
	"baking":       AislePantry,
	"condiments":   AislePantry,
	"oils":         AislePantry,
	"sauces":       AislePantry,
	"snacks":       AislePantry,

	"frozen": AisleFrozen,

	"bakery": AisleBakery,
	"bread":  AisleBakery,
}

// AisleForCategory 查詢分類對應的走道，未知分類歸為 Other
func AisleForCategory(category string) string {
	if aisle, ok := categoryAisles[NormalizeCategory(category)]; ok {
		return aisle
	}
	return AisleOther
}
