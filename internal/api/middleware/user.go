package middleware

import (
	"fmt"
	"strings"

	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// UserIDHeader 呼叫端身分（驗證由上游處理）
const UserIDHeader = "X-User-ID"

const userIDKey = "user_id"

// RequireUser 要求請求帶有 X-User-ID
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			common.RespondError(c, common.ErrUnauthorized.Wrap(fmt.Errorf("missing %s header", UserIDHeader)))
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID 取得 RequireUser 設定的使用者
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
