package store

import (
	"errors"
	"net/http"

	"mealmate-api/internal/core/grocerystore"
	"mealmate-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 商店處理程序
type Handler struct {
	manager *grocerystore.Manager
}

// NewHandler 創建商店處理程序
func NewHandler(manager *grocerystore.Manager) *Handler {
	return &Handler{manager: manager}
}

// StoreRequest 商店建立與更新請求
type StoreRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	StoreType string  `json:"store_type"`
	Notes     string  `json:"notes"`
}

// HandleList 列出所有商店
func (h *Handler) HandleList(c *gin.Context) {
	stores, err := h.manager.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stores": stores,
		"count":  len(stores),
	})
}

// HandleGet 取得單一商店
func (h *Handler) HandleGet(c *gin.Context) {
	s, err := h.manager.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

// HandleCreate 建立商店
func (h *Handler) HandleCreate(c *gin.Context) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s := &common.Store{
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		StoreType: req.StoreType,
		Notes:     req.Notes,
	}
	if err := h.manager.Save(c.Request.Context(), s); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, s)
}

// HandleUpdate 更新商店
func (h *Handler) HandleUpdate(c *gin.Context) {
	var req StoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	s := &common.Store{
		ID:        c.Param("id"),
		Name:      req.Name,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		StoreType: req.StoreType,
		Notes:     req.Notes,
	}
	if err := h.manager.Update(c.Request.Context(), s); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

// HandleDelete 刪除商店
func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.manager.Delete(c.Request.Context(), c.Param("id")); err != nil {
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
