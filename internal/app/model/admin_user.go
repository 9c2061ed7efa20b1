package model

import (
	"time"

	"gorm.io/gorm"
)

type AdminRole string

const (
	RoleAdmin AdminRole = "admin"
)

// AdminUser is the authorization table for the admin console. Whether an
// identity may administer the store is a row lookup, not a compiled-in
// constant; removing a row revokes access on the next request.
type AdminUser struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Name         string         `json:"name"`
	Role         AdminRole      `gorm:"type:varchar(20);default:'admin'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
