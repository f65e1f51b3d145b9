package provider

import (
	"context"
)

// Completer 文字生成協作者：輸入 prompt，回傳模型輸出的文字
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc 讓一般函式實作 Completer
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete 實現 Completer 介面
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
