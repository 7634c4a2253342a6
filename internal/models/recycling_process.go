package models

import (
	"time"
)

// Recycling process statuses. A process is opened when a completed
// transaction's material is received by a facility.
const (
	ProcessReceived   = "received"
	ProcessProcessing = "processing"
	ProcessProcessed  = "processed"
)

var legalProcessTransitions = map[string][]string{
	ProcessReceived:   {ProcessProcessing, ProcessProcessed},
	ProcessProcessing: {ProcessProcessed},
}

func ValidProcessStatus(s string) bool {
	switch s {
	case ProcessReceived, ProcessProcessing, ProcessProcessed:
		return true
	}
	return false
}

func CanTransitionProcess(from, to string) bool {
	for _, next := range legalProcessTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RecyclingProcess tracks downstream processing of a completed
// transaction's material. One process per transaction.
type RecyclingProcess struct {
	ID                int       `gorm:"column:process_id;primaryKey;autoIncrement" json:"process_id"`
	TransactionId     int       `gorm:"column:transaction_id;not null;index" json:"transaction_id"`
	Status            string    `gorm:"column:status;size:20;default:received;index" json:"status"`
	ProcessedQuantity float64   `gorm:"column:processed_quantity;type:decimal(10,2);default:0" json:"processed_quantity"`
	Facility          string    `gorm:"column:facility;size:255" json:"facility"`
	Notes             string    `gorm:"column:notes;type:text" json:"notes"`
	StartedAt         time.Time `gorm:"column:started_at;autoCreateTime" json:"started_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RecyclingProcess) TableName() string {
	return "recycling_processes"
}
