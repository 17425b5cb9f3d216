package models

type LoanType struct {
	ID          uint   `gorm:"primaryKey"        json:"loan_type_id"`
	Name        string `gorm:"size:80;not null"  json:"name"`
	Description string `gorm:"type:text"         json:"description,omitempty"`
}
