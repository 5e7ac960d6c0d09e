package queue

import (
	"encoding/json"

	"github.com/fleischwerk-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusEvent records a workflow transition in the order
	// status feed.
	TaskOrderStatusEvent = constants.TaskOrderStatusEvent
)

// OrderStatusEventPayload is the feed task payload.
type OrderStatusEventPayload struct {
	OrderID uint   `json:"order_id"`
	Axis    string `json:"axis"`
	Status  string `json:"status"`
	ActorID uint   `json:"actor_id"`
}

// NewOrderStatusEventTask creates a feed task.
func NewOrderStatusEventTask(payload OrderStatusEventPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusEvent, body), nil
}
