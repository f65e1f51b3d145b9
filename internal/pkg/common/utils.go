package common

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// RespondError 依錯誤類型寫入錯誤響應
func RespondError(c *gin.Context, err error) {
	var ce *CustomError
	if !errors.As(err, &ce) {
		ce = ErrInternalError
	}
	resp := ErrorResponse{
		Code:    ce.Code,
		Message: ce.Message,
	}
	if gin.Mode() == gin.DebugMode && err != nil {
		resp.Details = err.Error()
	}
	c.AbortWithStatusJSON(statusOf(ce), resp)
}

func statusOf(ce *CustomError) int {
	if ce.Status == 0 {
		return http.StatusInternalServerError
	}
	return ce.Status
}
