package models

import (
	"time"
)

// Collection point statuses.
const (
	CollectionPointActive   = "active"
	CollectionPointInactive = "inactive"
)

type CollectionPoint struct {
	ID             int       `gorm:"column:collection_point_id;primaryKey;autoIncrement" json:"collection_point_id"`
	Name           string    `gorm:"column:name;size:100;not null" json:"name"`
	Address        string    `gorm:"column:address;size:255" json:"address"`
	Status         string    `gorm:"column:status;size:20;default:active;index" json:"status"`
	OperatingHours string    `gorm:"column:operating_hours;size:100" json:"operating_hours"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (CollectionPoint) TableName() string {
	return "collection_points"
}
