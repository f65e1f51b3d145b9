package grocery

import (
	"fmt"

	"meal-planner/internal/pkg/common"
)

// InputDataError 食材資料結構錯誤（例如缺少名稱），會回傳給呼叫端
type InputDataError struct {
	Plan  string
	Index int
	Field string
}

func (e *InputDataError) Error() string {
	return fmt.Sprintf("invalid ingredient #%d in %q: missing %s", e.Index, e.Plan, e.Field)
}

// Unwrap 讓 HTTP 層以 400 回應
func (e *InputDataError) Unwrap() error {
	return common.ErrInvalidRequest
}
