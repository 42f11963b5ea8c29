package models

import "time"

// Closing is the terminal record of a social case
type Closing struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Date              time.Time `gorm:"not null" json:"date"`
	State             string    `gorm:"size:20;not null" json:"state"`
	ProfessionalID    uint      `gorm:"not null" json:"professionalId"`
	ProfessionalNames string    `gorm:"size:120;not null" json:"professionalNames"`
	Observations      string    `gorm:"size:900;not null" json:"observations"`

	CreatedBy uint      `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

func (Closing) TableName() string {
	return "social_case_close"
}
