package shopping

import (
	"errors"
	"net/http"

	shoppingService "mealmate-api/internal/core/shopping"
	"mealmate-api/internal/core/sms"
	"mealmate-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler 購物清單處理程序
type Handler struct {
	service    *shoppingService.Service
	dispatcher *sms.Dispatcher
}

// NewHandler 創建購物清單處理程序
func NewHandler(service *shoppingService.Service, dispatcher *sms.Dispatcher) *Handler {
	return &Handler{
		service:    service,
		dispatcher: dispatcher,
	}
}

// ListResponse 清單響應：分組列、顯示列與空清單旗標
type ListResponse struct {
	Groups     []shoppingService.CategoryGroup `json:"groups"`
	Rows       []shoppingService.Row           `json:"rows"`
	TotalPrice float64                         `json:"total_price"`
	Empty      bool                            `json:"empty"`
	IssueCount int                             `json:"issue_count"`
}

// SaveListRequest 儲存清單請求
type SaveListRequest struct {
	Items []common.ShoppingItem `json:"items" binding:"required"`
}

// UpdateItemRequest 編輯項目請求（數量與價格擇一或同時）
type UpdateItemRequest struct {
	Amount *float64 `json:"amount"`
	Price  *float64 `json:"price"`
}

// ShareRequest 簡訊分享請求
type ShareRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	DateFrom    string `json:"date_from,omitempty"`
	DateTo      string `json:"date_to,omitempty"`
}

// HandleBuildList 從餐點計畫快照重建購物清單
func (h *Handler) HandleBuildList(c *gin.Context) {
	requestID := requestID(c)
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	common.LogInfo("開始重建購物清單",
		zap.String("request_id", requestID),
		zap.String("user_id", userID),
	)

	result, err := h.service.BuildList(c.Request.Context(), userID, c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Groups:     result.Groups,
		Rows:       result.Rows,
		TotalPrice: result.TotalPrice,
		Empty:      result.Empty,
		IssueCount: len(result.Issues),
	})
}

// HandleSaveList 將清單存回資料庫
func (h *Handler) HandleSaveList(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	var req SaveListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID(c)),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.service.SaveList(c.Request.Context(), userID, req.Items); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"saved":       len(req.Items),
		"total_price": shoppingService.TotalPrice(req.Items),
	})
}

// HandleSavedList 讀取已儲存的清單
func (h *Handler) HandleSavedList(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	items, err := h.service.SavedList(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondItems(c, items)
}

// HandleToggleItem 切換項目的已購買狀態
func (h *Handler) HandleToggleItem(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	items, err := h.service.ToggleItem(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondItems(c, items)
}

// HandleUpdateItem 編輯項目的數量與價格
func (h *Handler) HandleUpdateItem(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Amount == nil && req.Price == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount or price is required"})
		return
	}

	items, err := h.service.UpdateItem(c.Request.Context(), userID, c.Param("id"), req.Amount, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondItems(c, items)
}

// HandleDeleteItem 刪除項目
func (h *Handler) HandleDeleteItem(c *gin.Context) {
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	items, err := h.service.DeleteItem(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	h.respondItems(c, items)
}

// HandleShare 以簡訊分享購物清單
func (h *Handler) HandleShare(c *gin.Context) {
	requestID := requestID(c)
	userID := c.GetHeader("X-User-ID")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "X-User-ID header is required"})
		return
	}

	var req ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	result, err := h.service.BuildList(c.Request.Context(), userID, req.DateFrom, req.DateTo)
	if err != nil {
		respondError(c, err)
		return
	}

	message := sms.Message{
		To:   req.PhoneNumber,
		Body: h.service.SMSText(result),
	}

	resultCh, err := h.dispatcher.Enqueue(c.Request.Context(), message)
	if err != nil {
		respondError(c, err)
		return
	}

	select {
	case res := <-resultCh:
		if res.Error != nil {
			common.LogError("簡訊分享失敗",
				zap.Error(res.Error),
				zap.String("request_id", requestID),
			)
			respondError(c, res.Error)
			return
		}
	case <-c.Request.Context().Done():
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Request timeout", "code": common.ErrCodeRequestTimeout})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sent":  true,
		"items": len(result.Items),
	})
}

// respondItems 回傳項目清單與重新計算後的總價
func (h *Handler) respondItems(c *gin.Context, items []common.ShoppingItem) {
	c.JSON(http.StatusOK, gin.H{
		"items":       items,
		"total_price": shoppingService.TotalPrice(items),
		"empty":       len(items) == 0,
	})
}

// requestID 取得或產生請求 ID
func requestID(c *gin.Context) string {
	id := c.GetHeader("X-Request-ID")
	if id == "" {
		id = uuid.New().String()
		c.Header("X-Request-ID", id)
	}
	return id
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
