package handlers

import (
	"net/http"

	"social_cases_go/db"
	"social_cases_go/services"

	"github.com/labstack/echo/v4"
)

// DashboardStatsHandler returns the case counters
func DashboardStatsHandler(c echo.Context) error {
	stats, err := services.GetDashboardStats(db.DB)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

// HealthHandler reports whether the database is reachable
func HealthHandler(c echo.Context) error {
	sqlDB, err := db.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
