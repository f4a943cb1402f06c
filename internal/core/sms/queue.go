package sms

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"mealmate-api/internal/infrastructure/config"
	"mealmate-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Request 隊列中的發送請求
type Request struct {
	Context context.Context
	Message Message
	Result  chan Result
}

// Result 發送結果
type Result struct {
	Error error
}

// Status 隊列狀態
type Status struct {
	QueueLength    int `json:"queue_length"`
	ProcessedCount int `json:"processed_count"`
	MaxQueueSize   int `json:"max_queue_size"`
	Workers        int `json:"workers"`
}

// Dispatcher 簡訊發送隊列
// 固定數量的 worker 依序將隊列中的訊息交給閘道發送，
// 避免分享清單的尖峰直接打爆外部服務
type Dispatcher struct {
	config    *config.Config
	gateway   *Gateway
	queue     chan *Request
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
	processed int64
}

// NewDispatcher 創建簡訊發送隊列並啟動 worker
func NewDispatcher(cfg *config.Config, gateway *Gateway) *Dispatcher {
	d := &Dispatcher{
		config:  cfg,
		gateway: gateway,
		queue:   make(chan *Request, cfg.Queue.MaxSize),
		done:    make(chan struct{}),
	}

	for i := 0; i < cfg.Queue.Workers; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	common.LogInfo("簡訊發送隊列已啟動",
		zap.Int("workers", cfg.Queue.Workers),
		zap.Int("max_queue_size", cfg.Queue.MaxSize),
	)
	return d
}

// worker 依序處理隊列中的發送請求
func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for {
		select {
		case req, ok := <-d.queue:
			if !ok {
				return
			}
			err := d.gateway.Send(req.Context, req.Message)
			atomic.AddInt64(&d.processed, 1)
			req.Result <- Result{Error: err}
		case <-d.done:
			return
		}
	}
}

// Enqueue 將發送請求加入隊列，回傳結果通道
func (d *Dispatcher) Enqueue(ctx context.Context, msg Message) (chan Result, error) {
	// 檢查隊列容量
	if len(d.queue) >= d.config.Queue.MaxSize {
		return nil, fmt.Errorf("sms queue is full")
	}

	req := &Request{
		Context: ctx,
		Message: msg,
		Result:  make(chan Result, 1),
	}

	select {
	case d.queue <- req:
		common.LogInfo("簡訊已加入發送隊列",
			zap.Int("queue_length", len(d.queue)),
			zap.Int("max_queue_size", d.config.Queue.MaxSize),
		)
		return req.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.done:
		return nil, fmt.Errorf("sms dispatcher is closed")
	}
}

// GetStatus 獲取隊列狀態
func (d *Dispatcher) GetStatus() *Status {
	return &Status{
		QueueLength:    len(d.queue),
		ProcessedCount: int(atomic.LoadInt64(&d.processed)),
		MaxQueueSize:   d.config.Queue.MaxSize,
		Workers:        d.config.Queue.Workers,
	}
}

// Close 關閉隊列並等待 worker 結束
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
		d.wg.Wait()
	})
}
