package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"social_cases_go/config"
	"social_cases_go/models"
	"social_cases_go/services/enrichment"
	"social_cases_go/services/enrichment/enrichmenttest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRemindersTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

func createPlan(t *testing.T, db *gorm.DB, caseID, professionalID uint, next time.Time) models.InterventionPlan {
	plan := models.InterventionPlan{
		NextDate:          next,
		Frequency:         "SEMANAL",
		SocialCaseID:      caseID,
		ManagementID:      3,
		ManagementName:    "Visita domiciliaria",
		ProfessionalID:    professionalID,
		ProfessionalNames: "Ana Soto",
		IsActive:          true,
		CreatedBy:         1,
	}
	require.NoError(t, db.Create(&plan).Error)
	return plan
}

func TestSendPlanReminders(t *testing.T) {
	db := setupRemindersTestDB(t)
	cfg := &config.Config{EmailTestMode: true, ServiceToken: "svc-token"}
	now := time.Now().UTC()

	socialCase := models.SocialCase{
		Date: now, EmployeeID: 41, EmployeeNames: "Juan Perez", BusinessID: 11, AreaID: 2,
		ProfessionalID: 7, State: models.SocialCaseStateRequested, IsActive: true, CreatedBy: 1,
	}
	require.NoError(t, db.Create(&socialCase).Error)

	due := createPlan(t, db, socialCase.ID, 7, now.Add(3*time.Hour))
	later := createPlan(t, db, socialCase.ID, 7, now.Add(72*time.Hour))

	reminded := createPlan(t, db, socialCase.ID, 7, now.Add(2*time.Hour))
	remindedAt := now.Add(-time.Hour)
	require.NoError(t, db.Model(&reminded).Update("reminder_sent_at", remindedAt).Error)

	completed := createPlan(t, db, socialCase.ID, 7, now.Add(time.Hour))
	require.NoError(t, db.Model(&completed).Update("is_completed", true).Error)

	gw := new(enrichmenttest.MockGateway)
	gw.On("GetUser", mock.Anything, "svc-token", uint(7)).
		Return(&enrichment.User{ID: 7, Names: "Ana", PaternalSurname: "Soto", Email: "ana@example.cl"}, nil).Once()

	sent := SendPlanReminders(context.Background(), db, gw, cfg, now)
	assert.Equal(t, 1, sent)
	gw.AssertExpectations(t)

	var updatedDue models.InterventionPlan
	require.NoError(t, db.First(&updatedDue, due.ID).Error)
	assert.NotNil(t, updatedDue.ReminderSentAt)

	var updatedLater models.InterventionPlan
	require.NoError(t, db.First(&updatedLater, later.ID).Error)
	assert.Nil(t, updatedLater.ReminderSentAt)

	var updatedCompleted models.InterventionPlan
	require.NoError(t, db.First(&updatedCompleted, completed.ID).Error)
	assert.Nil(t, updatedCompleted.ReminderSentAt)

	// A second run finds nothing left to send
	assert.Equal(t, 0, SendPlanReminders(context.Background(), db, gw, cfg, now))
}

func TestSendPlanReminders_UserLookupFails(t *testing.T) {
	db := setupRemindersTestDB(t)
	cfg := &config.Config{EmailTestMode: true}
	now := time.Now().UTC()

	plan := createPlan(t, db, 1, 9, now.Add(time.Hour))

	gw := new(enrichmenttest.MockGateway)
	gw.On("GetUser", mock.Anything, "", uint(9)).
		Return(nil, &enrichment.UpstreamError{Service: enrichment.ServiceUsers, Err: errors.New("down")})

	assert.Equal(t, 0, SendPlanReminders(context.Background(), db, gw, cfg, now))

	var updated models.InterventionPlan
	require.NoError(t, db.First(&updated, plan.ID).Error)
	assert.Nil(t, updated.ReminderSentAt, "failed reminders are retried on the next run")
}

func TestStartScheduler_InvalidSchedule(t *testing.T) {
	db := setupRemindersTestDB(t)
	cfg := &config.Config{ReminderCron: "not a cron", Timezone: "America/Santiago"}

	c, err := StartScheduler(db, new(enrichmenttest.MockGateway), cfg)
	assert.Error(t, err)
	assert.Nil(t, c)
}
