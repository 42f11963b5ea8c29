package models

import "time"

// InterventionPlan is a scheduled follow-up task for a social case
type InterventionPlan struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	NextDate          time.Time `gorm:"not null;index" json:"nextDate"`
	Frequency         string    `gorm:"size:15;not null" json:"frequency"`
	SocialCaseID      uint      `gorm:"not null;index" json:"socialCaseId"`
	ManagementID      uint      `gorm:"not null" json:"managementId"`
	ManagementName    string    `gorm:"size:120;not null" json:"managementName"`
	ProfessionalID    uint      `gorm:"not null;index" json:"professionalId"`
	ProfessionalNames string    `gorm:"size:200;not null" json:"professionalNames"`
	IsActive          bool      `gorm:"not null;default:true" json:"isActive"`
	IsCompleted       bool      `gorm:"not null;default:false" json:"isCompleted"`

	// Set by the reminder job once the professional has been emailed
	ReminderSentAt *time.Time `json:"-"`

	CreatedBy uint      `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

func (InterventionPlan) TableName() string {
	return "intervention_plan"
}
