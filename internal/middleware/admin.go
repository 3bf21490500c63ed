package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventgate/checkin/internal/utils"
)

// SessionCookie is the cookie that carries the admin session token.
const SessionCookie = "admin_session"

// AdminSession returns an Echo middleware guarding the gate operations
// (check-in, search, undo, stats, capacity). It extracts the session
// cookie and verifies it as an admin session token via the explicit
// utils.VerifyAdminSession check; the middleware only maps the typed
// result onto the transport. API routes get a 401 JSON body, page
// routes redirect to the login form.
func AdminSession(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return denyAdmin(c)
			}
			if err := utils.VerifyAdminSession(secret, cookie.Value); err != nil {
				return denyAdmin(c)
			}
			return next(c)
		}
	}
}

func denyAdmin(c echo.Context) error {
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return c.JSON(http.StatusUnauthorized, echo.Map{"ok": false, "message": "admin session required"})
	}
	return c.Redirect(http.StatusSeeOther, "/admin/login")
}
