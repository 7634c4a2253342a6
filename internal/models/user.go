package models

import (
	"strings"
	"time"
)

// User is a read-only directory entry. Registration and authentication
// live in the identity service; this table is only consulted for
// ownership checks and reporting joins.
type User struct {
	ID        int       `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	Username  string    `gorm:"column:username;size:100;not null" json:"username"`
	FullName  string    `gorm:"column:full_name;size:255" json:"full_name"`
	Roles     string    `gorm:"column:roles;size:255;default:USER" json:"roles"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// HasRole checks the comma separated Roles column.
func (u User) HasRole(role string) bool {
	for _, r := range strings.Split(u.Roles, ",") {
		if strings.TrimSpace(r) == role {
			return true
		}
	}
	return false
}
