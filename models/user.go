package models

import "time"

type Role string

const (
	RoleMasterAdmin     Role = "master_admin"
	RoleCollectionAgent Role = "collection_agent"
	RoleStaff           Role = "staff"
)

// DefaultSignupRole is applied to users created without an explicit role.
const DefaultSignupRole = RoleCollectionAgent

func (r Role) Valid() bool {
	switch r {
	case RoleMasterAdmin, RoleCollectionAgent, RoleStaff:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey"                     json:"id"`
	Email        string    `gorm:"uniqueIndex;size:120;not null"  json:"email"`
	Username     string    `gorm:"uniqueIndex;size:120;not null"  json:"username"`
	FullName     string    `gorm:"size:180"                       json:"full_name"`
	Phone        string    `gorm:"size:20"                        json:"phone"`
	Role         Role      `gorm:"size:20;not null;index"         json:"role"`
	PasswordHash string    `gorm:"size:255"                       json:"-"` // never sent to clients
	IsActive     bool      `gorm:"default:true"                   json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
