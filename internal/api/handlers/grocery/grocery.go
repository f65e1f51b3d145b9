package grocery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"meal-planner/internal/api/middleware"
	core "meal-planner/internal/core/grocery"
	"meal-planner/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Service handler 需要的採買清單操作
type Service interface {
	ConsolidateMealPlans(ctx context.Context, userID string, planIDs []string, name string) (*core.ConsolidationResult, error)
	ConsolidateGroup(ctx context.Context, userID, groupID string) (*core.GroupConsolidation, error)
	ConsolidateIngredients(name string, sources []core.PlanSource) (*core.ConsolidationResult, error)
	OrganizeByStore(ctx context.Context, items []core.ConsolidatedIngredient, storeName string) core.AisleLayout
	FormatForInstacart(ctx context.Context, items []core.ConsolidatedIngredient) string
	ComputeOptimization(items []core.ConsolidatedIngredient) core.Optimization
	SaveGroceryList(ctx context.Context, userID string, result *core.ConsolidationResult, storeName string) (*core.GroceryList, error)
}

// ConsolidateRequest 整併多份餐單
type ConsolidateRequest struct {
	MealPlanIDs []string `json:"meal_plan_ids" binding:"required,min=1"`
	Name        string   `json:"name,omitempty"`
	Save        bool     `json:"save,omitempty"`
	StoreName   string   `json:"store_name,omitempty"`
}

// ConsolidateResponse 整併結果，Save 時附上清單 ID
type ConsolidateResponse struct {
	*core.ConsolidationResult
	GroceryListID string `json:"grocery_list_id,omitempty"`
}

// SourcesConsolidateRequest 直接整併呼叫端提供的食材
type SourcesConsolidateRequest struct {
	Name      string            `json:"name,omitempty"`
	Sources   []core.PlanSource `json:"sources" binding:"required,min=1"`
	Save      bool              `json:"save,omitempty"`
	StoreName string            `json:"store_name,omitempty"`
}

// GroupConsolidateRequest 群組整併的選項（可省略）
type GroupConsolidateRequest struct {
	Save      bool   `json:"save,omitempty"`
	StoreName string `json:"store_name,omitempty"`
}

// OrganizeRequest 依賣場走道分組
type OrganizeRequest struct {
	StoreName   string                        `json:"store_name,omitempty"`
	Ingredients []core.ConsolidatedIngredient `json:"ingredients" binding:"required"`
}

// IngredientsRequest 只帶食材清單的請求
type IngredientsRequest struct {
	Ingredients []core.ConsolidatedIngredient `json:"ingredients" binding:"required"`
}

// InstacartResponse Instacart 訊息
type InstacartResponse struct {
	Message string `json:"message"`
}

// Handler 採買清單處理程序
type Handler struct {
	service      Service
	defaultStore string
}

// NewHandler 創建採買清單處理程序
func NewHandler(service Service, defaultStore string) *Handler {
	return &Handler{service: service, defaultStore: defaultStore}
}

// Register 註冊路由
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/consolidate", h.HandleConsolidate)
	rg.POST("/groups/:id/consolidate", h.HandleConsolidateGroup)
	rg.POST("/ingredients/consolidate", h.HandleConsolidateIngredients)
	rg.POST("/organize", h.HandleOrganize)
	rg.POST("/instacart", h.HandleInstacart)
	rg.POST("/optimize", h.HandleOptimize)
}

// HandleConsolidate 整併多份餐單的食材
func (h *Handler) HandleConsolidate(c *gin.Context) {
	var req ConsolidateRequest
	if !bind(c, &req) {
		return
	}
	userID := middleware.UserID(c)

	result, err := h.service.ConsolidateMealPlans(c.Request.Context(), userID, req.MealPlanIDs, req.Name)
	if err != nil {
		respondServiceError(c, "整併餐單失敗", err)
		return
	}

	resp := ConsolidateResponse{ConsolidationResult: result}
	if req.Save {
		list, err := h.service.SaveGroceryList(c.Request.Context(), userID, result, h.store(req.StoreName))
		if err != nil {
			respondServiceError(c, "儲存採買清單失敗", err)
			return
		}
		resp.GroceryListID = list.ID
	}

	c.JSON(http.StatusOK, resp)
}

// HandleConsolidateGroup 整併餐單群組並計算共用食材
func (h *Handler) HandleConsolidateGroup(c *gin.Context) {
	var req GroupConsolidateRequest
	// 請求體可省略
	if !bindOptional(c, &req) {
		return
	}
	userID := middleware.UserID(c)

	group, err := h.service.ConsolidateGroup(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondServiceError(c, "整併餐單群組失敗", err)
		return
	}

	if req.Save {
		if _, err := h.service.SaveGroceryList(c.Request.Context(), userID, group.Result, h.store(req.StoreName)); err != nil {
			respondServiceError(c, "儲存採買清單失敗", err)
			return
		}
	}

	c.JSON(http.StatusOK, group)
}

// HandleConsolidateIngredients 整併請求中直接帶入的食材
func (h *Handler) HandleConsolidateIngredients(c *gin.Context) {
	var req SourcesConsolidateRequest
	if !bind(c, &req) {
		return
	}

	result, err := h.service.ConsolidateIngredients(req.Name, req.Sources)
	if err != nil {
		respondServiceError(c, "整併食材失敗", err)
		return
	}

	resp := ConsolidateResponse{ConsolidationResult: result}
	if req.Save {
		list, err := h.service.SaveGroceryList(c.Request.Context(), middleware.UserID(c), result, h.store(req.StoreName))
		if err != nil {
			respondServiceError(c, "儲存採買清單失敗", err)
			return
		}
		resp.GroceryListID = list.ID
	}

	c.JSON(http.StatusOK, resp)
}

// HandleOrganize 依賣場走道分組，AI 失敗時自動改用分類表
func (h *Handler) HandleOrganize(c *gin.Context) {
	var req OrganizeRequest
	if !bind(c, &req) {
		return
	}
	if !validItems(c, req.Ingredients) {
		return
	}

	c.JSON(http.StatusOK, h.service.OrganizeByStore(c.Request.Context(), req.Ingredients, h.store(req.StoreName)))
}

// HandleInstacart 產生 Instacart 採買訊息
func (h *Handler) HandleInstacart(c *gin.Context) {
	var req IngredientsRequest
	if !bind(c, &req) {
		return
	}
	if !validItems(c, req.Ingredients) {
		return
	}

	c.JSON(http.StatusOK, InstacartResponse{Message: h.service.FormatForInstacart(c.Request.Context(), req.Ingredients)})
}

// HandleOptimize 計算跨餐單共用食材與節省
func (h *Handler) HandleOptimize(c *gin.Context) {
	var req IngredientsRequest
	if !bind(c, &req) {
		return
	}
	if !validItems(c, req.Ingredients) {
		return
	}

	c.JSON(http.StatusOK, h.service.ComputeOptimization(req.Ingredients))
}

func (h *Handler) store(name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	return h.defaultStore
}

func bind(c *gin.Context, req interface{}) bool {
	return checkBind(c, c.ShouldBindJSON(req))
}

// bindOptional 空的請求體（含 chunked）視為沒有選項
func bindOptional(c *gin.Context, req interface{}) bool {
	if c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	err := c.ShouldBindJSON(req)
	if errors.Is(err, io.EOF) {
		return true
	}
	return checkBind(c, err)
}

func checkBind(c *gin.Context, err error) bool {
	if err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		common.RespondError(c, common.ErrInvalidRequest.Wrap(err))
		return false
	}
	return true
}

// validItems 已整併的食材也必須有名稱
func validItems(c *gin.Context, items []core.ConsolidatedIngredient) bool {
	for i, item := range items {
		if strings.TrimSpace(item.Name) == "" {
			common.RespondError(c, common.ErrInvalidRequest.Wrap(fmt.Errorf("ingredient #%d is missing a name", i)))
			return false
		}
	}
	return true
}

func respondServiceError(c *gin.Context, msg string, err error) {
	common.LogError(msg,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("user_id", middleware.UserID(c)),
	)
	common.RespondError(c, err)
}
