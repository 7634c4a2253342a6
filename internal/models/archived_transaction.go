package models

import (
	"time"
)

// ArchivedTransaction is a terminal transaction moved out of the live
// ledger by the archive scheduler. HistoryJson carries the full status
// history snapshot so the audit trail survives the move.
type ArchivedTransaction struct {
	ID                int       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TransactionId     int       `gorm:"column:transaction_id;not null;index" json:"transaction_id"`
	UserId            int       `gorm:"column:user_id;not null;index" json:"user_id"`
	CollectionPointId int       `gorm:"column:collection_point_id" json:"collection_point_id"`
	WasteTypeId       int       `gorm:"column:waste_type_id" json:"waste_type_id"`
	Quantity          float64   `gorm:"column:quantity;type:decimal(10,2)" json:"quantity"`
	Unit              string    `gorm:"column:unit;size:20" json:"unit"`
	Status            string    `gorm:"column:status;size:20" json:"status"`
	ProofImageUrl     *string   `gorm:"column:proof_image_url;size:255" json:"proof_image_url"`
	TransactionDate   time.Time `gorm:"column:transaction_date" json:"transaction_date"`
	HistoryJson       string    `gorm:"column:history_json;type:text" json:"history_json"`
	ArchivedAt        time.Time `gorm:"column:archived_at;autoCreateTime" json:"archived_at"`
}

func (ArchivedTransaction) TableName() string {
	return "archived_transactions"
}
