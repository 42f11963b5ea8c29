package models

import (
	"time"
)

// Social case states. A case only moves forward through them.
const (
	SocialCaseStateRequested = "SOLICITADO"
	SocialCaseStateAssigned  = "ASIGNADO"
	SocialCaseStateClosed    = "CERRADO"
)

// DefaultRequestType is stored when a case is created without a request type
const DefaultRequestType = "Tipo de solicitud"

// SocialCase is a tracked welfare/assistance request for an employee
type SocialCase struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Date             time.Time `gorm:"not null;index" json:"date"`
	AssistanceID     uint      `gorm:"not null" json:"assistanceId"`
	EmployeeRut      string    `gorm:"size:12;not null;default:''" json:"employeeRut"`
	EmployeeID       uint      `gorm:"not null;index" json:"employeeId"`
	EmployeeNames    string    `gorm:"size:250;not null;default:''" json:"employeeNames"`
	BusinessID       uint      `gorm:"index" json:"businessId"`
	BusinessName     string    `gorm:"size:200" json:"businessName"`
	ConstructionID   *uint     `json:"constructionId"`
	ConstructionName *string   `gorm:"size:255" json:"constructionName"`
	AreaID           uint      `gorm:"not null;index" json:"areaId"`
	ProfessionalID   uint      `gorm:"not null;index" json:"professionalId"`
	RequestType      string    `gorm:"size:400;not null;default:'Tipo de solicitud'" json:"requestType"`
	State            string    `gorm:"size:25;not null;default:'SOLICITADO';index" json:"state"`
	IsActive         bool      `gorm:"not null;default:true" json:"isActive"`

	// References to the latest derivation and the closing record
	DerivationID *uint `gorm:"index" json:"derivationId"`
	ClosingID    *uint `gorm:"index" json:"closingId"`

	CreatedBy uint      `gorm:"not null" json:"createdBy"`
	CreatedAt time.Time `gorm:"index" json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

// TableName specifies the table name for SocialCase
func (SocialCase) TableName() string {
	return "social_case"
}

// IsClosed checks if the case reached its terminal state
func (c *SocialCase) IsClosed() bool {
	return c.State == SocialCaseStateClosed
}

// CanDerive reports whether professionals can still be assigned
func (c *SocialCase) CanDerive() bool {
	return c.State == SocialCaseStateRequested || c.State == SocialCaseStateAssigned
}

// IsValidSocialCaseState checks if the state is one of the lifecycle states
func IsValidSocialCaseState(state string) bool {
	switch state {
	case SocialCaseStateRequested, SocialCaseStateAssigned, SocialCaseStateClosed:
		return true
	}
	return false
}
