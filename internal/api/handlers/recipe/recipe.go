package recipe

import (
	"errors"
	"net/http"

	recipeService "mealmate-api/internal/core/recipe"
	"mealmate-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理程序
type Handler struct {
	service *recipeService.Service
}

// NewHandler 創建食譜處理程序
func NewHandler(service *recipeService.Service) *Handler {
	return &Handler{service: service}
}

// HandleList 列出所有食譜
func (h *Handler) HandleList(c *gin.Context) {
	recipes, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
		"count":   len(recipes),
	})
}

// HandleGet 取得單一食譜
func (h *Handler) HandleGet(c *gin.Context) {
	r, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, r)
}

// HandleCreate 建立食譜
func (h *Handler) HandleCreate(c *gin.Context) {
	var r common.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.service.Create(c.Request.Context(), &r); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, r)
}

// HandleDelete 刪除食譜
func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}

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
