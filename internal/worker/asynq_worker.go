package worker

import (
	"context"
	"encoding/json"

	"github.com/fleischwerk-next/internal/logger"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/provider"
	"github.com/fleischwerk-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks. It writes the append-only order status
// feed; the workflow engine itself never waits on the broker.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register attaches the handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEvent, c.handleOrderStatusEvent)
}

func (c *Consumer) handleOrderStatusEvent(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_event_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEventPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_event_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 || payload.Axis == "" || payload.Status == "" {
		logger.Debugw("worker_order_status_event_skip_invalid_payload",
			"order_id", payload.OrderID,
			"axis", payload.Axis,
			"status", payload.Status,
		)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_event_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_event_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	err = c.OrderEventRepo.Create(&models.OrderEvent{
		OrderID: payload.OrderID,
		Axis:    payload.Axis,
		Status:  payload.Status,
		ActorID: payload.ActorID,
	})
	if err != nil {
		logger.Warnw("worker_order_status_event_write_failed", "order_id", payload.OrderID, "error", err)
		return err
	}

	logger.Infow("worker_order_status_event_recorded",
		"order_id", payload.OrderID,
		"axis", payload.Axis,
		"status", payload.Status,
	)
	return nil
}
