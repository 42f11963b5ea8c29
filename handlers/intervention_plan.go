package handlers

import (
	"net/http"

	"social_cases_go/db"
	"social_cases_go/middleware"
	"social_cases_go/services"

	"github.com/labstack/echo/v4"
)

// ListInterventionPlansHandler returns a page of active intervention plans
func ListInterventionPlansHandler(c echo.Context) error {
	caseID, err := queryID(c, "socialCaseId")
	if err != nil {
		return err
	}

	filters := services.PlanFilters{SocialCaseID: caseID, Search: c.QueryParam("search")}
	page, err := services.ListInterventionPlans(db.DB, filters, pageParams(c))
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// InterventionPlanCalendarHandler returns the plans of some professionals within a date range
func InterventionPlanCalendarHandler(c echo.Context) error {
	users, err := queryIDList(c, "users")
	if err != nil {
		return err
	}
	userID, err := queryID(c, "userId")
	if err != nil {
		return err
	}
	if userID != nil {
		users = append(users, *userID)
	}

	var filters services.CalendarFilters
	filters.ProfessionalIDs = users
	if filters.StartDate, err = queryDate(c, "startDate"); err != nil {
		return err
	}
	if filters.EndDate, err = queryDate(c, "endDate"); err != nil {
		return err
	}

	plans, err := services.ListCalendarPlans(db.DB, filters)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, plans)
}

// CreateInterventionPlanHandler schedules a new plan for a social case
func CreateInterventionPlanHandler(c echo.Context) error {
	var in services.PlanInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	plan, err := services.CreateInterventionPlan(db.DB, middleware.GetActor(c), in)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusCreated, plan)
}

// GetInterventionPlanHandler returns a plan with its professional and case
func GetInterventionPlanHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	details, err := services.GetInterventionPlanDetails(c.Request().Context(), db.DB, services.Enrichment, middleware.GetActor(c), id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, details)
}

// UpdateInterventionPlanHandler replaces a plan's editable fields
func UpdateInterventionPlanHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var in services.PlanInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	plan, err := services.UpdateInterventionPlan(db.DB, middleware.GetActor(c), id, in)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// CompleteInterventionPlanHandler marks a plan as completed
func CompleteInterventionPlanHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	plan, err := services.CompleteInterventionPlan(db.DB, middleware.GetActor(c), id)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// DeleteInterventionPlanHandler deactivates a plan
func DeleteInterventionPlanHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := services.DeleteInterventionPlan(db.DB, middleware.GetActor(c), id); err != nil {
		return toHTTPError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
