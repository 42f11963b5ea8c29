package services

import (
	"encoding/json"

	"social_cases_go/logger"
	"social_cases_go/models"

	"gorm.io/gorm"
)

// Actor is the authenticated caller on whose behalf a change is made.
// Token is forwarded to sibling services.
type Actor struct {
	UserID    uint
	Token     string
	IPAddress string
	RequestID string
}

// LogAuditEvent records a change. Failures are logged and never fail the request.
func LogAuditEvent(
	db *gorm.DB,
	actor Actor,
	action models.AuditAction,
	resourceType string,
	resourceID uint,
	description string,
	newValues interface{},
) {
	var newJSON string
	if newValues != nil {
		if bytes, err := json.Marshal(newValues); err == nil {
			newJSON = string(bytes)
		}
	}

	entry := models.AuditLog{
		UserID:       actor.UserID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Action:       action,
		Description:  description,
		NewValues:    newJSON,
		IPAddress:    actor.IPAddress,
		RequestID:    actor.RequestID,
	}

	if err := db.Create(&entry).Error; err != nil {
		logger.Log.Errorw("Failed to create audit log",
			"resource_type", resourceType, "resource_id", resourceID, "action", action, "error", err)
	}
}

// GetResourceAuditHistory retrieves the audit history for a specific resource, newest first
func GetResourceAuditHistory(db *gorm.DB, resourceType string, resourceID uint) ([]models.AuditLog, error) {
	logs := make([]models.AuditLog, 0)
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&logs).Error
	return logs, err
}
