package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"social_cases_go/models"
	"social_cases_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsHandler(t *testing.T) {
	testDB := setupTestDB(t)
	now := time.Now().UTC()

	createCase(t, testDB, 41, "Juan Perez", now)
	assigned := createCase(t, testDB, 42, "Maria Lopez", now)
	require.NoError(t, testDB.Model(&assigned).Update("state", models.SocialCaseStateAssigned).Error)
	inactive := createCase(t, testDB, 43, "Pedro Rojas", now)
	require.NoError(t, testDB.Model(&inactive).Update("is_active", false).Error)

	_, c, rec := setupEcho(http.MethodGet, "/dashboard/stats", "")
	require.NoError(t, DashboardStatsHandler(c))

	var stats []services.Stat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, []services.Stat{
		{Label: services.TotalCasesLabel, Value: 2},
		{Label: models.SocialCaseStateRequested, Value: 1},
		{Label: models.SocialCaseStateAssigned, Value: 1},
		{Label: models.SocialCaseStateClosed, Value: 0},
	}, stats)
}

func TestHealthHandler(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/health", "")
	require.NoError(t, HealthHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
