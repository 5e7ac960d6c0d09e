package models

import (
	"time"

	"gorm.io/gorm"
)

// CustomerSurcharge is a per-customer price adjustment on top of an
// article's base price. Exact (article, customer) rows are the only
// resolved form; mass rules materialize into these rows on write.
type CustomerSurcharge struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	ArticleID       uint           `gorm:"index:idx_surcharge_article_customer,unique;not null" json:"article_id"`
	CustomerID      uint           `gorm:"index:idx_surcharge_article_customer,unique;not null" json:"customer_id"`
	SurchargeAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"surcharge_amount"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (CustomerSurcharge) TableName() string {
	return "customer_surcharges"
}
