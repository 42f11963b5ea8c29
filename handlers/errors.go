package handlers

import (
	"errors"
	"net/http"

	"social_cases_go/logger"
	"social_cases_go/services"
	"social_cases_go/services/enrichment"

	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors to HTTP errors
func toHTTPError(c echo.Context, err error) error {
	var validationErr *services.ValidationError
	var upstreamErr *enrichment.UpstreamError

	switch {
	case errors.As(err, &validationErr):
		return echo.NewHTTPError(http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, services.ErrSocialCaseNotFound),
		errors.Is(err, services.ErrDerivationNotFound),
		errors.Is(err, services.ErrPlanNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.As(err, &upstreamErr):
		logger.Log.Warnw("Upstream service failed",
			"service", upstreamErr.Service, "status", upstreamErr.StatusCode, "path", c.Path(), "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, upstreamErr.Error())
	default:
		logger.Log.Errorw("Request failed", "path", c.Path(), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
