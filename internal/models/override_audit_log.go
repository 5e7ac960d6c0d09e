package models

import "time"

// OverrideAuditLog records every admin override of the normally guarded
// workflow (completing picking with open positions, direct status edits,
// deleting picked positions). Written in the same transaction as the
// override itself.
type OverrideAuditLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OperatorStaffID  uint      `gorm:"index;not null" json:"operator_staff_id"`
	OperatorUsername string    `gorm:"type:varchar(100);index;not null;default:''" json:"operator_username"`
	OrderID          uint      `gorm:"index;not null" json:"order_id"`
	PositionID       *uint     `gorm:"index" json:"position_id,omitempty"`
	Action           string    `gorm:"type:varchar(100);index;not null" json:"action"`
	RequestID        string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	DetailJSON       JSON      `gorm:"type:json" json:"detail"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (OverrideAuditLog) TableName() string {
	return "override_audit_logs"
}
