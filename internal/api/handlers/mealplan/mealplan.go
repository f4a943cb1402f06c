package mealplan

import (
	"errors"
	"net/http"

	mealplanService "mealmate-api/internal/core/mealplan"
	"mealmate-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 餐點計畫處理程序
type Handler struct {
	service *mealplanService.Service
}

// NewHandler 創建餐點計畫處理程序
func NewHandler(service *mealplanService.Service) *Handler {
	return &Handler{service: service}
}

// CreateRequest 排定餐點請求
type CreateRequest struct {
	RecipeName string         `json:"recipe_name"`
	MealTime   string         `json:"meal_time" binding:"required"`
	Date       string         `json:"date" binding:"required"` // yyyyMMdd
	Recipe     *common.Recipe `json:"recipe,omitempty"`
}

// HandleList 列出餐點計畫快照
func (h *Handler) HandleList(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	entries, err := h.service.Snapshot(c.Request.Context(), userID, c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meal_plans": entries,
		"count":      len(entries),
	})
}

// HandleCreate 排定一筆餐點
func (h *Handler) HandleCreate(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	plan := &common.MealPlan{
		RecipeName: req.RecipeName,
		MealTime:   req.MealTime,
		Date:       req.Date,
		UserID:     userID,
		Recipe:     req.Recipe,
	}
	if plan.Recipe != nil {
		plan.ImageURL = plan.Recipe.ImageURL
		plan.CookingTime = plan.Recipe.Duration
	}

	if err := h.service.Add(c.Request.Context(), plan); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// HandleDelete 取消一筆排程
func (h *Handler) HandleDelete(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	if err := h.service.Remove(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// respondError 依錯誤類型對應 HTTP 回應
func respondError(c *gin.Context, err error) {
	var customErr *common.CustomError
	if errors.As(err, &customErr) {
		c.JSON(customErr.Status, gin.H{"error": customErr.Message, "code": customErr.Code})
		return
	}
	if common.IsValidationError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": common.ErrCodeInvalidRequest})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "code": common.ErrCodeInternalError})
}
