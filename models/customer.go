package models

import "time"

type Customer struct {
	ID           uint      `gorm:"primaryKey"                    json:"customer_id"`
	CustomerCode string    `gorm:"uniqueIndex;size:50;not null"  json:"customer_code"`
	FullName     string    `gorm:"size:150;not null"             json:"full_name"`
	Nickname     string    `gorm:"size:100"                      json:"nickname,omitempty"`
	Phone        string    `gorm:"size:20;not null"              json:"phone"`
	Email        string    `gorm:"size:120"                      json:"email,omitempty"`
	Address      string    `gorm:"type:text"                     json:"address,omitempty"`
	AadharNumber string    `gorm:"size:20"                       json:"aadhar_number,omitempty"`
	DocumentsURL []string  `gorm:"serializer:json;type:jsonb"    json:"documents_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
