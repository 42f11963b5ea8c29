package services

import (
	"encoding/json"
	"testing"

	"social_cases_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAuditEvent(t *testing.T) {
	db := setupTestDB(t)

	newVals := map[string]interface{}{"state": models.SocialCaseStateAssigned}
	LogAuditEvent(db, testActor, models.AuditActionDerive, models.AuditResourceSocialCase, 12, "Social case derived", newVals)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, testActor.UserID, entry.UserID)
	assert.Equal(t, models.AuditResourceSocialCase, entry.ResourceType)
	assert.Equal(t, uint(12), entry.ResourceID)
	assert.Equal(t, models.AuditActionDerive, entry.Action)
	assert.Equal(t, "10.0.0.1", entry.IPAddress)
	assert.Equal(t, "req-1", entry.RequestID)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(entry.NewValues), &decoded))
	assert.Equal(t, models.SocialCaseStateAssigned, decoded["state"])
}

func TestAuditLogIsImmutable(t *testing.T) {
	db := setupTestDB(t)
	LogAuditEvent(db, testActor, models.AuditActionCreate, models.AuditResourceSocialCase, 1, "created", nil)

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Empty(t, entry.NewValues)

	assert.Error(t, db.Model(&entry).Update("description", "changed").Error)
	assert.Error(t, db.Delete(&entry).Error)
}

func TestGetResourceAuditHistory(t *testing.T) {
	db := setupTestDB(t)
	LogAuditEvent(db, testActor, models.AuditActionCreate, models.AuditResourceSocialCase, 1, "created", nil)
	LogAuditEvent(db, testActor, models.AuditActionCreate, models.AuditResourceSocialCase, 2, "other", nil)
	LogAuditEvent(db, testActor, models.AuditActionClose, models.AuditResourceSocialCase, 1, "closed", nil)

	logs, err := GetResourceAuditHistory(db, models.AuditResourceSocialCase, 1)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, models.AuditActionClose, logs[0].Action)
	assert.Equal(t, models.AuditActionCreate, logs[1].Action)

	logs, err = GetResourceAuditHistory(db, models.AuditResourceInterventionPlan, 1)
	require.NoError(t, err)
	assert.Empty(t, logs)
}
