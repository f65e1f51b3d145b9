package grocery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"meal-planner/internal/core/ai/provider"
	"meal-planner/internal/pkg/common"
	"meal-planner/internal/pkg/metrics"

	"go.uber.org/zap"
)

const opOrganize = "organize_by_store"

// DefaultAITimeout 單次 AI 呼叫的上限
const DefaultAITimeout = 20 * time.Second

// AisleOrganizer 將食材依賣場走道分組：先嘗試 AI，失敗時改用分類對照表
type AisleOrganizer struct {
	completer provider.Completer
	timeout   time.Duration
}

// NewAisleOrganizer 創建走道分組器，completer 可為 nil（一律使用備援）
func NewAisleOrganizer(completer provider.Completer, timeout time.Duration) *AisleOrganizer {
	if timeout <= 0 {
		timeout = DefaultAITimeout
	}
	return &AisleOrganizer{completer: completer, timeout: timeout}
}

// OrganizeByStore 永遠回傳可用的分組結果，AI 錯誤不會往外傳
func (o *AisleOrganizer) OrganizeByStore(ctx context.Context, items []ConsolidatedIngredient, storeName string) AisleLayout {
	if len(items) == 0 {
		return FallbackLayout(items, storeName)
	}

	layout, err := o.tryAI(ctx, items, storeName)
	if err == nil {
		metrics.ObserveAIRequest(opOrganize, metrics.ResultSuccess)
		return layout
	}

	metrics.ObserveAIRequest(opOrganize, metrics.ResultError)
	metrics.ObserveFallback(opOrganize)
	common.LogWarn("AI aisle organization failed, using category table",
		zap.String("store", storeName),
		zap.Int("items", len(items)),
		zap.Error(err),
	)
	return FallbackLayout(items, storeName)
}

func (o *AisleOrganizer) tryAI(ctx context.Context, items []ConsolidatedIngredient, storeName string) (AisleLayout, error) {
	if o.completer == nil {
		return AisleLayout{}, common.ErrAICredentials
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	content, err := o.completer.Complete(ctx, buildAislePrompt(items, storeName))
	common.LogAICall(opOrganize, time.Since(start), err)
	if err != nil {
		return AisleLayout{}, err
	}

	assignments, err := parseAisleResponse(content)
	if err != nil {
		return AisleLayout{}, err
	}

	groups := matchAssignments(items, assignments)
	if len(groups) == 0 {
		return AisleLayout{}, common.ErrAIMalformed.Wrap(fmt.Errorf("no returned ingredient matched the input"))
	}

	return AisleLayout{Store: storeName, Source: SourceAI, Aisles: groups}, nil
}

// aisleAssignment AI 回覆中的一個走道
type aisleAssignment struct {
	Aisle string
	Names []string
}

// parseAisleResponse 解析 {"aisle": ["name", ...]}，保留 key 順序；其他形狀一律視為錯誤
func parseAisleResponse(content string) ([]aisleAssignment, error) {
	raw, err := common.ExtractJSONObject(content)
	if err != nil {
		return nil, common.ErrAIMalformed.Wrap(err)
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, common.ErrAIMalformed.Wrap(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, common.ErrAIMalformed.Wrap(fmt.Errorf("expected JSON object"))
	}

	var out []aisleAssignment
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, common.ErrAIMalformed.Wrap(err)
		}
		aisle, ok := tok.(string)
		if !ok {
			return nil, common.ErrAIMalformed.Wrap(fmt.Errorf("expected aisle name"))
		}

		var names []string
		if err := dec.Decode(&names); err != nil {
			return nil, common.ErrAIMalformed.Wrap(fmt.Errorf("aisle %q: %w", aisle, err))
		}
		out = append(out, aisleAssignment{Aisle: strings.TrimSpace(aisle), Names: names})
	}

	if _, err := dec.Token(); err != nil {
		return nil, common.ErrAIMalformed.Wrap(err)
	}
	return out, nil
}

// matchAssignments 以不分大小寫的名稱比對輸入食材；未知名稱略過，重複指派只保留第一次
func matchAssignments(items []ConsolidatedIngredient, assignments []aisleAssignment) []AisleGroup {
	index := make(map[string]int, len(items))
	for i, item := range items {
		if _, ok := index[Key(item.Name)]; !ok {
			index[Key(item.Name)] = i
		}
	}

	assigned := make(map[int]bool, len(items))
	groupPos := make(map[string]int)
	var groups []AisleGroup

	for _, a := range assignments {
		aisle := a.Aisle
		if aisle == "" {
			aisle = AisleOther
		}
		for _, name := range a.Names {
			i, ok := index[Key(name)]
			if !ok || assigned[i] {
				continue
			}
			assigned[i] = true

			item := items[i]
			item.Aisle = aisle
			item.UsedInPlans = append([]string(nil), item.UsedInPlans...)

			pos, ok := groupPos[aisle]
			if !ok {
				pos = len(groups)
				groupPos[aisle] = pos
				groups = append(groups, AisleGroup{Aisle: aisle})
			}
			groups[pos].Items = append(groups[pos].Items, item)
		}
	}
	return groups
}

// FallbackLayout 依分類對照表分組，每個食材恰好出現在一個走道
func FallbackLayout(items []ConsolidatedIngredient, storeName string) AisleLayout {
	buckets := make(map[string][]ConsolidatedIngredient)
	for _, item := range items {
		aisle := AisleForCategory(item.Category)
		item.Aisle = aisle
		item.UsedInPlans = append([]string(nil), item.UsedInPlans...)
		buckets[aisle] = append(buckets[aisle], item)
	}

	groups := make([]AisleGroup, 0, len(buckets))
	for _, aisle := range aisleOrder {
		if len(buckets[aisle]) == 0 {
			continue
		}
		groups = append(groups, AisleGroup{Aisle: aisle, Items: buckets[aisle]})
	}

	return AisleLayout{Store: storeName, Source: SourceFallback, Aisles: groups}
}
