package main

import (
	"social_cases_go/handlers"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes mounts the public endpoints and the bearer protected API
func registerRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	// Public routes
	e.GET("/health", handlers.HealthHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	socialCases := e.Group("/social-cases", auth)
	{
		socialCases.GET("", handlers.ListSocialCasesHandler)
		socialCases.POST("", handlers.CreateSocialCaseHandler)
		socialCases.GET("/export", handlers.ExportSocialCasesHandler)
		socialCases.GET("/employee", handlers.PendingCasesByBusinessHandler)
		socialCases.GET("/collect/:employeeId", handlers.CollectEmployeeCasesHandler)
		socialCases.GET("/:id", handlers.GetSocialCaseHandler)
		socialCases.DELETE("/:id", handlers.DeleteSocialCaseHandler)
		socialCases.GET("/:id/history", handlers.SocialCaseHistoryHandler)
		socialCases.POST("/:id/derivation", handlers.DeriveSocialCaseHandler)
		socialCases.GET("/:id/derivation/:derivationId", handlers.GetDerivationHandler)
		socialCases.POST("/:id/close", handlers.CloseSocialCaseHandler)
	}

	plans := e.Group("/intervention-plans", auth)
	{
		plans.GET("", handlers.ListInterventionPlansHandler)
		plans.POST("", handlers.CreateInterventionPlanHandler)
		plans.GET("/calendar", handlers.InterventionPlanCalendarHandler)
		plans.GET("/:id", handlers.GetInterventionPlanHandler)
		plans.PUT("/:id", handlers.UpdateInterventionPlanHandler)
		plans.POST("/:id/complete", handlers.CompleteInterventionPlanHandler)
		plans.DELETE("/:id", handlers.DeleteInterventionPlanHandler)
	}

	e.GET("/dashboard/stats", handlers.DashboardStatsHandler, auth)
}
