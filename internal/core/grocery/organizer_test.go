package grocery

import (
	"context"
	"errors"
	"testing"
	"time"

	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replying(content string) provider.Completer {
	return provider.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return content, nil
	})
}

func failing(err error) provider.Completer {
	return provider.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", err
	})
}

func sampleItems() []ConsolidatedIngredient {
	return []ConsolidatedIngredient{
		{Name: "Onion", TotalAmount: 3, Unit: "each", Category: "produce", UsedInPlans: []string{"Adults", "Kids"}},
		{Name: "Milk", TotalAmount: 1, Unit: "gallon", Category: "dairy", UsedInPlans: []string{"Kids"}},
		{Name: "Chicken breast", TotalAmount: 2, Unit: "lbs", Category: "poultry", UsedInPlans: []string{"Adults"}},
		{Name: "Mystery spice", TotalAmount: 1, Unit: "jar", Category: "unknown-category", UsedInPlans: []string{"Adults"}},
		{Name: "Frozen peas", TotalAmount: 1, Unit: "bag", Category: "frozen", UsedInPlans: []string{"Kids"}},
	}
}

func TestOrganizeByStoreAI(t *testing.T) {
	var gotPrompt string
	completer := provider.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		gotPrompt = prompt
		return "```json\n" + `{"Vegetables":["onion","Frozen Peas"],"Dairy & Eggs":["MILK","Unicorn"],"Meat":["Chicken Breast","onion"],"Empty":[]}` + "\n```", nil
	})
	org := NewAisleOrganizer(completer, time.Second)

	layout := org.OrganizeByStore(context.Background(), sampleItems(), "Trader Joe's")

	assert.Contains(t, gotPrompt, "Trader Joe's")
	assert.Contains(t, gotPrompt, "- Onion (3 each)")

	assert.Equal(t, SourceAI, layout.Source)
	assert.Equal(t, "Trader Joe's", layout.Store)
	require.Len(t, layout.Aisles, 3)

	assert.Equal(t, "Vegetables", layout.Aisles[0].Aisle)
	require.Len(t, layout.Aisles[0].Items, 2)
	assert.Equal(t, "Onion", layout.Aisles[0].Items[0].Name)
	assert.Equal(t, "Vegetables", layout.Aisles[0].Items[0].Aisle)
	assert.Equal(t, "Frozen peas", layout.Aisles[0].Items[1].Name)

	assert.Equal(t, "Dairy & Eggs", layout.Aisles[1].Aisle)
	require.Len(t, layout.Aisles[1].Items, 1, "unknown names are dropped")

	assert.Equal(t, "Meat", layout.Aisles[2].Aisle)
	require.Len(t, layout.Aisles[2].Items, 1, "an item is only placed once")
	assert.Equal(t, "Chicken breast", layout.Aisles[2].Items[0].Name)

	// AI 路徑可以遺漏食材
	assert.Equal(t, 4, layout.ItemCount())
}

func TestOrganizeByStoreDoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	org := NewAisleOrganizer(replying(`{"Produce":["Onion"]}`), time.Second)

	layout := org.OrganizeByStore(context.Background(), items, "Store")
	require.Equal(t, SourceAI, layout.Source)

	layout.Aisles[0].Items[0].UsedInPlans[0] = "changed"
	assert.Equal(t, "", items[0].Aisle)
	assert.Equal(t, "Adults", items[0].UsedInPlans[0])
}

func TestOrganizeByStoreFallsBack(t *testing.T) {
	tests := []struct {
		name      string
		completer provider.Completer
	}{
		{"no completer", nil},
		{"transport error", failing(errors.New("connection refused"))},
		{"not json", replying("Sure! Here is your list: onions go in produce.")},
		{"wrong value shape", replying(`{"Produce":"Onion"}`)},
		{"nested object", replying(`{"Produce":{"items":["Onion"]}}`)},
		{"nothing matched", replying(`{"Produce":["Dragonfruit"]}`)},
		{"truncated", replying(`{"Produce":["Onion"], "Dairy": [`)},
		{"timeout", provider.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := sampleItems()
			org := NewAisleOrganizer(tt.completer, 20*time.Millisecond)

			layout := org.OrganizeByStore(context.Background(), items, "Store")

			assert.Equal(t, SourceFallback, layout.Source)
			assert.Equal(t, FallbackLayout(items, "Store"), layout)
		})
	}
}

func TestFallbackLayoutIsLossless(t *testing.T) {
	items := sampleItems()
	items = append(items,
		ConsolidatedIngredient{Name: "Bagel", Category: "bread"},
		ConsolidatedIngredient{Name: "Olive oil", Category: "OILS"},
		ConsolidatedIngredient{Name: "Salmon", Category: "fish"},
		ConsolidatedIngredient{Name: "Water", Category: ""},
	)

	layout := FallbackLayout(items, "Store")

	seen := make(map[string]int)
	for _, g := range layout.Aisles {
		assert.NotEmpty(t, g.Items, "empty aisles are omitted")
		for _, item := range g.Items {
			assert.Equal(t, g.Aisle, item.Aisle)
			seen[item.Name]++
		}
	}
	assert.Len(t, seen, len(items))
	for _, item := range items {
		assert.Equal(t, 1, seen[item.Name], item.Name)
	}
	assert.Equal(t, len(items), layout.ItemCount())

	// 依走道宣告順序
	var order []string
	for _, g := range layout.Aisles {
		order = append(order, g.Aisle)
	}
	assert.Equal(t, []string{AisleProduce, AisleMeat, AisleDairy, AislePantry, AisleFrozen, AisleBakery, AisleOther}, order)
}

func TestFallbackDairyAndUnknown(t *testing.T) {
	items := []ConsolidatedIngredient{
		{Name: "Yogurt", Category: "dairy"},
		{Name: "Thing", Category: "unknown-category"},
	}

	byAisle := FallbackLayout(items, "").ByAisle()

	require.Len(t, byAisle[AisleDairy], 1)
	assert.Equal(t, "Yogurt", byAisle[AisleDairy][0].Name)
	require.Len(t, byAisle[AisleOther], 1)
	assert.Equal(t, "Thing", byAisle[AisleOther][0].Name)
}

func TestOrganizeByStoreEmpty(t *testing.T) {
	called := false
	org := NewAisleOrganizer(provider.CompleterFunc(func(ctx context.Context, prompt string) (string, error) {
		called = true
		return "{}", nil
	}), time.Second)

	layout := org.OrganizeByStore(context.Background(), nil, "Store")
	assert.False(t, called)
	assert.Empty(t, layout.Aisles)
}

func TestParseAisleResponseKeepsKeyOrder(t *testing.T) {
	got, err := parseAisleResponse(`{"Zeta":["a"],"Alpha":null,"Mid":["b","c"]}`)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Zeta", got[0].Aisle)
	assert.Equal(t, "Alpha", got[1].Aisle)
	assert.Empty(t, got[1].Names)
	assert.Equal(t, []string{"b", "c"}, got[2].Names)
}

func TestAisleForCategory(t *testing.T) {
	assert.Equal(t, AisleProduce, AisleForCategory("Vegetables"))
	assert.Equal(t, AisleMeat, AisleForCategory("seafood"))
	assert.Equal(t, AislePantry, AisleForCategory("dry goods"))
	assert.Equal(t, AisleBakery, AisleForCategory("bakery"))
	assert.Equal(t, AisleOther, AisleForCategory(""))
	assert.Equal(t, AisleOther, AisleForCategory("household"))
	assert.Equal(t, AisleProduce, aisleOrder[0])
	assert.Equal(t, AisleOther, aisleOrder[len(aisleOrder)-1])
}

func TestOrganizeByStoreRecordsFallback(t *testing.T) {
	before := testutil.ToFloat64(metrics.FallbacksTotal.WithLabelValues(opOrganize))

	NewAisleOrganizer(failing(errors.New("down")), time.Second).OrganizeByStore(context.Background(), sampleItems(), "Store")

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.FallbacksTotal.WithLabelValues(opOrganize)))
}
