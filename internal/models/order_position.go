package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderPosition is one article line on an Auftrag. UnitPrice is a
// snapshot of the effective price at ordering time; LineWeight and
// LinePrice are derived by the pricing engine and never written by hand.
type OrderPosition struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	OrderID    uint   `gorm:"index;not null" json:"order_id"`
	ArticleID  uint   `gorm:"index;not null" json:"article_id"`
	OrderedQty Weight `gorm:"type:decimal(20,3);not null;default:0" json:"ordered_qty"`
	Unit       string `gorm:"type:varchar(20);not null" json:"unit"`
	UnitPrice  Money  `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	LineWeight Weight `gorm:"type:decimal(20,3);not null;default:0" json:"line_weight"`
	LinePrice  Money  `gorm:"type:decimal(20,2);not null;default:0" json:"line_price"`

	PickedQty    *Weight        `gorm:"type:decimal(20,3)" json:"picked_qty,omitempty"`
	PickedUnit   string         `gorm:"type:varchar(20)" json:"picked_unit,omitempty"`
	PickedAt     *time.Time     `gorm:"index" json:"picked_at,omitempty"`
	GrossWeight  *Weight        `gorm:"type:decimal(20,3)" json:"gross_weight,omitempty"`
	EmptyGoods   EmptyGoodsList `gorm:"type:json" json:"empty_goods,omitempty"`
	BatchNumbers StringArray    `gorm:"type:json" json:"batch_numbers,omitempty"`
	Remark       string         `gorm:"type:text" json:"remark,omitempty"`

	NeedsDisassembly bool `gorm:"not null;default:false" json:"needs_disassembly"`
	NeedsVacuum      bool `gorm:"not null;default:false" json:"needs_vacuum"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (OrderPosition) TableName() string {
	return "order_positions"
}
