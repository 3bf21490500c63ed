// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eventgate/checkin/internal/config"
	"github.com/eventgate/checkin/internal/handler"
	"github.com/eventgate/checkin/internal/middleware"
)

// Register sets up the full route table. The public surface is the
// registration form plus health; everything behind /admin and /api is
// wrapped in the admin session guard. The rate limiter applies only to
// the two endpoints an anonymous client can hammer: registration and
// login.
func Register(e *echo.Echo, cfg config.Config,
	reg *handler.RegisterHandler, admin *handler.AdminHandler, gate *handler.CheckinHandler,
	limiter echo.MiddlewareFunc) {

	e.GET("/health", handler.Health)

	e.GET("/", reg.ShowForm)
	e.GET("/register", reg.ShowForm)
	e.POST("/register", reg.Submit, limiter)

	e.GET("/admin/login", admin.ShowLogin)
	e.POST("/admin/login", admin.Login, limiter)
	e.GET("/admin/logout", admin.Logout)

	guard := middleware.AdminSession(cfg.JWTSecret)

	pages := e.Group("/admin", guard)
	pages.GET("/checkin", admin.CheckinPage)
	pages.GET("/dashboard", admin.DashboardPage)

	api := e.Group("/api", guard)
	api.POST("/checkin", gate.Checkin)
	api.GET("/registrations/search", gate.Search)
	api.POST("/registrations/undo-checkin", gate.UndoCheckin)
	api.GET("/stats", gate.Stats)
	api.POST("/settings/capacity", gate.SetCapacity)
}
