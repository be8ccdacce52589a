package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moa-team/moa-backend/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg           *config.Config
	userHandler   *User
	answerHandler *Answer
	reportHandler *Report
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, userHandler *User, answerHandler *Answer, reportHandler *Report) *Router {
	return &Router{
		cfg:           cfg,
		userHandler:   userHandler,
		answerHandler: answerHandler,
		reportHandler: reportHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupUserRoutes(v1)
	rt.setupAnswerRoutes(v1)
	rt.setupReportRoutes(v1)
}

func (rt *Router) setupUserRoutes(g *echo.Group) {
	userGroup := g.Group("/users")
	userGroup.POST("/onboarding", rt.userHandler.Onboard)
	userGroup.GET("/onboarding/:user_id", rt.userHandler.Status)
}

func (rt *Router) setupAnswerRoutes(g *echo.Group) {
	answerGroup := g.Group("/answers")
	answerGroup.POST("/audio", rt.answerHandler.SubmitAudio)
	answerGroup.GET("/questions", rt.answerHandler.Questions)
	answerGroup.GET("/questions/:number", rt.answerHandler.Question)
}

func (rt *Router) setupReportRoutes(g *echo.Group) {
	reportGroup := g.Group("/reports")
	reportGroup.GET("", rt.reportHandler.Monthly)
	reportGroup.GET("/daily", rt.reportHandler.Daily)
	reportGroup.POST("/regenerate", rt.reportHandler.Regenerate)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
