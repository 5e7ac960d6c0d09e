package models

import "time"

// OrderEvent is one entry of the append-only status feed per order,
// written by the queue worker on workflow transitions. Read-only for
// callers; the engine never derives state from it.
type OrderEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	OrderID   uint      `gorm:"index;not null" json:"order_id"`
	Axis      string    `gorm:"type:varchar(50);index;not null" json:"axis"`
	Status    string    `gorm:"type:varchar(50);not null" json:"status"`
	ActorID   uint      `gorm:"index" json:"actor_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (OrderEvent) TableName() string {
	return "order_events"
}
