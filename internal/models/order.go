package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is an Auftrag moving through picking and control. The sales
// status axis is owned by the external sales flow; the picking and
// control axes are owned by this service and only ever move forward.
type Order struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	OrderNo      string     `gorm:"uniqueIndex;not null" json:"order_no"`
	CustomerID   uint       `gorm:"index;not null" json:"customer_id"`
	Status       string     `gorm:"index;not null" json:"status"`
	DeliveryDate *time.Time `gorm:"index" json:"delivery_date"`

	KommissioniertStatus    string     `gorm:"index;not null;default:offen" json:"kommissioniert_status"`
	KommissioniertBy        *uint      `gorm:"index" json:"kommissioniert_by,omitempty"`
	KommissioniertStartTime *time.Time `json:"kommissioniert_start_time,omitempty"`
	KommissioniertEndTime   *time.Time `json:"kommissioniert_end_time,omitempty"`

	KontrolliertStatus string     `gorm:"index;not null;default:offen" json:"kontrolliert_status"`
	KontrolliertBy     *uint      `gorm:"index" json:"kontrolliert_by,omitempty"`
	KontrolliertTime   *time.Time `json:"kontrolliert_time,omitempty"`

	TotalPallets int    `gorm:"not null;default:0" json:"total_pallets"`
	TotalWeight  Weight `gorm:"type:decimal(20,3);not null;default:0" json:"total_weight"`
	TotalPrice   Money  `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	Remarks      string `gorm:"type:text" json:"remarks,omitempty"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Positions []OrderPosition `gorm:"foreignKey:OrderID" json:"positions,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
