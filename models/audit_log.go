package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditAction represents the type of operation performed
type AuditAction string

const (
	AuditActionCreate   AuditAction = "CREATE"
	AuditActionUpdate   AuditAction = "UPDATE"
	AuditActionDelete   AuditAction = "DELETE"
	AuditActionDerive   AuditAction = "DERIVE"
	AuditActionClose    AuditAction = "CLOSE"
	AuditActionComplete AuditAction = "COMPLETE"
)

// Audited resource types
const (
	AuditResourceSocialCase       = "SocialCase"
	AuditResourceInterventionPlan = "InterventionPlan"
)

// AuditLog is an immutable record of a change made by a user
type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_audit_created_at" json:"createdDate"`

	UserID uint `gorm:"not null;index:idx_audit_user" json:"userId"`

	ResourceType string `gorm:"size:40;not null;index:idx_audit_resource" json:"resourceType"`
	ResourceID   uint   `gorm:"not null;index:idx_audit_resource" json:"resourceId"`

	Action      AuditAction `gorm:"size:20;not null" json:"action"`
	Description string      `gorm:"type:text" json:"description,omitempty"`
	NewValues   string      `gorm:"type:text" json:"newValues,omitempty"` // JSON encoded

	IPAddress string `json:"-"`
	RequestID string `json:"requestId,omitempty"`
}

// BeforeUpdate prevents modification of audit logs
func (a *AuditLog) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// BeforeDelete prevents deletion of audit logs
func (a *AuditLog) BeforeDelete(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
