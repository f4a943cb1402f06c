package sms

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mealmate-api/internal/infrastructure/config"
	"mealmate-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// Message 待發送的簡訊
type Message struct {
	To   string `json:"to"`
	From string `json:"from"`
	Body string `json:"body"`
}

// Gateway 簡訊閘道客戶端
// 將清單文字送往設定的外部簡訊服務 webhook；閘道未啟用時
// 所有發送都回傳 ErrSMSDisabled
type Gateway struct {
	config *config.SMSConfig
	client *resty.Client
}

// NewGateway 創建簡訊閘道客戶端
func NewGateway(cfg *config.SMSConfig) *Gateway {
	client := resty.New().
		SetBaseURL(cfg.GatewayURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &Gateway{
		config: cfg,
		client: client,
	}
}

// Send 發送單則簡訊
func (g *Gateway) Send(ctx context.Context, msg Message) error {
	if !g.config.Enabled {
		return common.ErrSMSDisabled
	}
	if msg.To == "" {
		return common.NewValidationError("sms recipient is required")
	}
	if msg.From == "" {
		msg.From = g.config.Sender
	}

	start := time.Now()
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(msg).
		Post("")

	requestID := ""
	if resp != nil {
		requestID = resp.Header().Get("X-Request-ID")
	}
	common.LogSMSDelivery(time.Since(start), err, requestID)

	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusAccepted {
		return fmt.Errorf("%w: gateway returned %d", common.ErrSMSGatewayError, resp.StatusCode())
	}

	return nil
}
