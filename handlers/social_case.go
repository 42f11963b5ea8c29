package handlers

import (
	"fmt"
	"net/http"
	"time"

	"social_cases_go/db"
	"social_cases_go/middleware"
	"social_cases_go/models"
	"social_cases_go/services"

	"github.com/labstack/echo/v4"
)

// socialCaseFilters reads the list filters from the query string
func socialCaseFilters(c echo.Context) (services.SocialCaseFilters, error) {
	var f services.SocialCaseFilters
	var err error

	if f.BusinessID, err = queryID(c, "businessId"); err != nil {
		return f, err
	}
	if f.ProfessionalID, err = queryID(c, "professionalId"); err != nil {
		return f, err
	}
	if f.AreaID, err = queryID(c, "areaId"); err != nil {
		return f, err
	}
	if f.StartDate, err = queryDate(c, "startDate"); err != nil {
		return f, err
	}
	if f.EndDate, err = queryDate(c, "endDate"); err != nil {
		return f, err
	}

	f.Search = c.QueryParam("search")
	f.State = c.QueryParam("state")
	if f.State != "" && !models.IsValidSocialCaseState(f.State) {
		return f, echo.NewHTTPError(http.StatusBadRequest, "Invalid state")
	}
	return f, nil
}

// ListSocialCasesHandler returns a filtered page of social cases
func ListSocialCasesHandler(c echo.Context) error {
	filters, err := socialCaseFilters(c)
	if err != nil {
		return err
	}

	page, err := services.ListSocialCases(db.DB, filters, pageParams(c))
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// ExportSocialCasesHandler downloads the filtered social cases as XLSX
func ExportSocialCasesHandler(c echo.Context) error {
	filters, err := socialCaseFilters(c)
	if err != nil {
		return err
	}

	buf, err := services.ExportSocialCases(db.DB, filters)
	if err != nil {
		return toHTTPError(c, err)
	}

	filename := fmt.Sprintf("casos_sociales_%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// CreateSocialCaseHandler registers a new social case
func CreateSocialCaseHandler(c echo.Context) error {
	var in services.CreateSocialCaseInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	socialCase, err := services.CreateSocialCase(c.Request().Context(), db.DB, services.Enrichment, middleware.GetActor(c), in)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, socialCase)
}

// GetSocialCaseHandler returns a social case with its related records
func GetSocialCaseHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	details, err := services.GetSocialCaseDetails(c.Request().Context(), db.DB, services.Enrichment, middleware.GetActor(c), id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// DeriveSocialCaseHandler assigns professionals to a social case
func DeriveSocialCaseHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var in services.DeriveInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	result, err := services.DeriveSocialCase(db.DB, middleware.GetActor(c), id, in)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// GetDerivationHandler returns a derivation of a social case
func GetDerivationHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	derivationID, err := pathID(c, "derivationId")
	if err != nil {
		return err
	}

	details, err := services.GetDerivationDetails(c.Request().Context(), db.DB, services.Enrichment, middleware.GetActor(c), id, derivationID)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// CloseSocialCaseHandler closes a social case
func CloseSocialCaseHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var in services.CloseInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	result, err := services.CloseSocialCase(c.Request().Context(), db.DB, services.Enrichment, middleware.GetActor(c), id, in)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// DeleteSocialCaseHandler deactivates a social case
func DeleteSocialCaseHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	socialCase, err := services.DeleteSocialCase(db.DB, middleware.GetActor(c), id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, socialCase)
}

// PendingCasesByBusinessHandler lists the open cases of a business with their employees
func PendingCasesByBusinessHandler(c echo.Context) error {
	businessID, err := queryID(c, "businessId")
	if err != nil {
		return err
	}
	if businessID == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "businessId is required")
	}

	page, err := services.ListPendingCasesByBusiness(c.Request().Context(), db.DB, services.Enrichment,
		middleware.GetActor(c), *businessID, pageParams(c))
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// CollectEmployeeCasesHandler lists an employee's cases with their intervention plans
func CollectEmployeeCasesHandler(c echo.Context) error {
	employeeID, err := pathID(c, "employeeId")
	if err != nil {
		return err
	}

	summaries, err := services.CollectEmployeeCases(db.DB, employeeID)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// SocialCaseHistoryHandler returns the audit history of a social case
func SocialCaseHistoryHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if _, err := services.GetSocialCase(db.DB, id); err != nil {
		return toHTTPError(c, err)
	}

	logs, err := services.GetResourceAuditHistory(db.DB, models.AuditResourceSocialCase, id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
