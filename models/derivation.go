package models

import "time"

// Derivation assigns one or more professionals to a social case
type Derivation struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Date                time.Time `gorm:"not null" json:"date"`
	AssistanceTitularID uint      `gorm:"not null" json:"assistanceTitularId"`
	Observations        string    `gorm:"size:900;not null" json:"observations"`
	State               string    `gorm:"size:20;not null" json:"state"`
	Priority            string    `gorm:"size:5;not null" json:"priority"`

	Professionals []AssignedProfessional `gorm:"foreignKey:DerivationID" json:"professionals"`

	CreatedBy uint      `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

func (Derivation) TableName() string {
	return "social_case_derivation"
}

// AssignedProfessional binds a professional to a derivation
type AssignedProfessional struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UserID       uint   `gorm:"not null;index" json:"userId"`
	FullName     string `gorm:"column:fullname;size:120;not null" json:"fullName"`
	DerivationID uint   `gorm:"not null;index" json:"-"`

	CreatedBy uint      `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (AssignedProfessional) TableName() string {
	return "social_case_assistance"
}
