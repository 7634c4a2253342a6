package models

import (
	"time"
)

// Transaction statuses. A transaction starts pending; completed and
// rejected are terminal.
const (
	StatusPending   = "pending"
	StatusVerified  = "verified"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)

// legalTransitions holds every allowed (from -> to) pair. Same-state
// requests are handled upstream as no-ops and are not listed here.
var legalTransitions = map[string][]string{
	StatusPending:  {StatusVerified, StatusCompleted, StatusRejected},
	StatusVerified: {StatusCompleted, StatusRejected},
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusVerified, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusRejected
}

type Transaction struct {
	ID                int       `gorm:"column:transaction_id;primaryKey;autoIncrement" json:"transaction_id"`
	UserId            int       `gorm:"column:user_id;not null;index" json:"user_id"`
	CollectionPointId int       `gorm:"column:collection_point_id;not null;index" json:"collection_point_id"`
	WasteTypeId       int       `gorm:"column:waste_type_id;not null;index" json:"waste_type_id"`
	Quantity          float64   `gorm:"column:quantity;type:decimal(10,2);not null" json:"quantity"`
	Unit              string    `gorm:"column:unit;size:20;default:kg" json:"unit"`
	Status            string    `gorm:"column:status;size:20;default:pending;index" json:"status"`
	ProofImageUrl     *string   `gorm:"column:proof_image_url;size:255" json:"proof_image_url"`
	TransactionDate   time.Time `gorm:"column:transaction_date;autoCreateTime" json:"transaction_date"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// TransactionHistory is the append-only audit trail of status changes.
// Rows are only ever inserted, and only deleted together with a still
// pending transaction.
type TransactionHistory struct {
	ID            int       `gorm:"column:history_id;primaryKey;autoIncrement" json:"history_id"`
	TransactionId int       `gorm:"column:transaction_id;not null;index" json:"transaction_id"`
	Status        string    `gorm:"column:status;size:20;not null" json:"status"`
	ChangedAt     time.Time `gorm:"column:changed_at;autoCreateTime" json:"changed_at"`
}

func (TransactionHistory) TableName() string {
	return "transaction_history"
}
