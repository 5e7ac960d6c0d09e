package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is a product master record. Master data is maintained by an
// external catalog flow; this service reads it for pricing and picking.
type Article struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Name            string         `gorm:"type:varchar(200);not null" json:"name"`
	Number          string         `gorm:"uniqueIndex;type:varchar(50);not null" json:"number"`
	Category        string         `gorm:"type:varchar(100);index" json:"category"`
	BasePrice       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"base_price"`
	WeightPerPiece  Weight         `gorm:"type:decimal(20,3);not null;default:0" json:"weight_per_piece"`
	WeightPerCarton Weight         `gorm:"type:decimal(20,3);not null;default:0" json:"weight_per_carton"`
	WeightPerCrate  Weight         `gorm:"type:decimal(20,3);not null;default:0" json:"weight_per_crate"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Article) TableName() string {
	return "articles"
}
