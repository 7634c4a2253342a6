package models

import (
	"time"
)

// Reward is a grant of points to a user. TransactionId is nil for manual
// admin grants; at most one reward may reference a given transaction,
// enforced by the accrual engine.
type Reward struct {
	ID            int       `gorm:"column:reward_id;primaryKey;autoIncrement" json:"reward_id"`
	UserId        int       `gorm:"column:user_id;not null;index" json:"user_id"`
	TransactionId *int      `gorm:"column:transaction_id;index" json:"transaction_id"`
	Points        int       `gorm:"column:points;not null;default:0" json:"points"`
	EarnedDate    time.Time `gorm:"column:earned_date;autoCreateTime" json:"earned_date"`
}

func (Reward) TableName() string {
	return "rewards"
}
