package models

import (
	"time"
)

// WasteType is a directory entry describing a category of waste and the
// point value of one unit of it.
type WasteType struct {
	ID                   int       `gorm:"column:waste_type_id;primaryKey;autoIncrement" json:"waste_type_id"`
	Name                 string    `gorm:"column:name;size:100;not null" json:"name"`
	Description          string    `gorm:"column:description;type:text" json:"description"`
	Recyclable           bool      `gorm:"column:recyclable;default:true" json:"recyclable"`
	HandlingInstructions string    `gorm:"column:handling_instructions;type:text" json:"handling_instructions"`
	UnitPrice            float64   `gorm:"column:unit_price;type:decimal(10,2);default:0" json:"unit_price"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (WasteType) TableName() string {
	return "waste_types"
}
