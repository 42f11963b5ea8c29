package handlers

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"social_cases_go/db"
	"social_cases_go/middleware"
	"social_cases_go/models"
	"social_cases_go/services"
	"social_cases_go/services/enrichment/enrichmenttest"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testToken = "test-token"

var testActor = services.Actor{UserID: 3, Token: testToken, IPAddress: "127.0.0.1"}

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	assert.NoError(t, models.Migrate(testDB))

	// Set global DB
	db.DB = testDB
	return testDB
}

// setupGateway installs a fresh mock gateway as services.Enrichment
func setupGateway(t *testing.T) *enrichmenttest.MockGateway {
	gw := new(enrichmenttest.MockGateway)
	services.Enrichment = gw
	t.Cleanup(func() { services.Enrichment = nil })
	return gw
}

func setupEcho(method, path, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Set(middleware.ContextKeyActor, testActor)

	return e, c, rec
}

// assertHTTPError checks that err is an *echo.HTTPError with the given code
func assertHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	httpErr, ok := err.(*echo.HTTPError)
	if assert.True(t, ok, "expected *echo.HTTPError, got %v", err) {
		assert.Equal(t, code, httpErr.Code)
	}
}

func uintPtr(v uint) *uint {
	return &v
}
