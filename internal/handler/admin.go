package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventgate/checkin/internal/config"
	"github.com/eventgate/checkin/internal/middleware"
	"github.com/eventgate/checkin/internal/utils"
)

// AdminHandler implements the shared-credential admin login and serves
// the guarded admin pages. There is exactly one administrator identity;
// a successful login issues a signed session token in an HttpOnly
// cookie.
type AdminHandler struct {
	Cfg config.Config
}

func NewAdminHandler(cfg config.Config) *AdminHandler {
	return &AdminHandler{Cfg: cfg}
}

type loginReq struct {
	Password string `form:"password" json:"password"`
}

// ShowLogin serves the static login page.
func (h *AdminHandler) ShowLogin(c echo.Context) error {
	return c.File(filepath.Join(h.Cfg.ViewsDir, "admin-login.html"))
}

// Login verifies the shared password and sets the admin session cookie.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Missing password.")
	}
	if !utils.VerifyAdminPassword(req.Password, h.Cfg.AdminPasswordHash, h.Cfg.AdminPassword) {
		return c.String(http.StatusUnauthorized, "Invalid password.")
	}

	ttl := time.Duration(h.Cfg.SessionTTLDays) * 24 * time.Hour
	session, err := utils.NewAdminSession(h.Cfg.JWTSecret, ttl)
	if err != nil {
		c.Logger().Errorf("issue admin session: %v", err)
		return c.String(http.StatusInternalServerError, "Login failed.")
	}
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.Cfg.Env == "prod",
	})
	return c.Redirect(http.StatusSeeOther, "/admin/checkin")
}

// Logout clears the session cookie and returns to the login page.
func (h *AdminHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusSeeOther, "/admin/login")
}

// CheckinPage serves the guarded QR scanning page.
func (h *AdminHandler) CheckinPage(c echo.Context) error {
	return c.File(filepath.Join(h.Cfg.ViewsDir, "checkin.html"))
}

// DashboardPage serves the guarded stats/search page.
func (h *AdminHandler) DashboardPage(c echo.Context) error {
	return c.File(filepath.Join(h.Cfg.ViewsDir, "dashboard.html"))
}
