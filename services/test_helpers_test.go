package services

import (
	"testing"
	"time"

	"social_cases_go/models"
	"social_cases_go/services/enrichment/enrichmenttest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testActor = Actor{UserID: 3, Token: "tok", IPAddress: "10.0.0.1", RequestID: "req-1"}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:mem_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	return db
}

func seedCase(t *testing.T, db *gorm.DB, mutate func(*models.SocialCase)) models.SocialCase {
	sc := models.SocialCase{
		Date:           time.Now().UTC(),
		EmployeeID:     41,
		EmployeeNames:  "Juan Perez",
		EmployeeRut:    "12345678-9",
		BusinessID:     11,
		BusinessName:   "Constructora Andes",
		AreaID:         2,
		ProfessionalID: 7,
		RequestType:    models.DefaultRequestType,
		State:          models.SocialCaseStateRequested,
		IsActive:       true,
		CreatedBy:      3,
	}
	if mutate != nil {
		mutate(&sc)
	}
	require.NoError(t, db.Create(&sc).Error)
	return sc
}

func newGateway() *enrichmenttest.MockGateway {
	return new(enrichmenttest.MockGateway)
}
