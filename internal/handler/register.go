package handler

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventgate/checkin/internal/config"
	"github.com/eventgate/checkin/internal/model"
	"github.com/eventgate/checkin/internal/repository"
	"github.com/eventgate/checkin/internal/utils"
)

// RegisterHandler serves the public registration form and turns a
// submission into a stored registration plus a signed QR code.
type RegisterHandler struct {
	Cfg  config.Config
	Regs RegistrationStore
}

func NewRegisterHandler(cfg config.Config, regs RegistrationStore) *RegisterHandler {
	return &RegisterHandler{Cfg: cfg, Regs: regs}
}

type registerReq struct {
	FamilyName         string `form:"family_name" json:"family_name"`
	PrimaryContactName string `form:"primary_contact_name" json:"primary_contact_name"`
	Phone              string `form:"phone" json:"phone"`
	Email              string `form:"email" json:"email"`
	Adults             string `form:"adults" json:"adults"`
	Kids               string `form:"kids" json:"kids"`
	Notes              string `form:"notes" json:"notes"`
}

// ShowForm serves the static registration page.
func (h *RegisterHandler) ShowForm(c echo.Context) error {
	return c.File(filepath.Join(h.Cfg.ViewsDir, "register.html"))
}

// Submit creates the registration, issues the admission token and
// renders the success page with the QR code embedded as a data URL. The
// QR content is the token and nothing else.
func (h *RegisterHandler) Submit(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Missing required fields.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Regs.Create(ctx, req.toModel())
	if err != nil {
		if errors.Is(err, repository.ErrValidation) {
			return c.String(http.StatusBadRequest, "Missing required fields.")
		}
		c.Logger().Errorf("create registration: %v", err)
		return c.String(http.StatusInternalServerError, "Server error creating registration.")
	}

	ttl := time.Duration(h.Cfg.AdmissionTTLDays) * 24 * time.Hour
	token, err := utils.NewAdmissionToken(h.Cfg.JWTSecret, id, ttl)
	if err != nil {
		c.Logger().Errorf("issue admission token: %v", err)
		return c.String(http.StatusInternalServerError, "Server error creating registration.")
	}
	qrURL, err := utils.QRDataURL(token, 320)
	if err != nil {
		c.Logger().Errorf("render qr: %v", err)
		return c.String(http.StatusInternalServerError, "Server error creating registration.")
	}

	page, err := os.ReadFile(filepath.Join(h.Cfg.ViewsDir, "success.html"))
	if err != nil {
		c.Logger().Errorf("read success page: %v", err)
		return c.String(http.StatusInternalServerError, "Server error creating registration.")
	}
	html := strings.ReplaceAll(string(page), "{{REG_ID}}", strconv.FormatUint(id, 10))
	html = strings.ReplaceAll(html, "{{QR_DATA_URL}}", qrURL)
	return c.HTML(http.StatusOK, html)
}

// toModel converts the raw form values; adult/kid counts that fail to
// parse default to zero rather than rejecting the submission.
func (r registerReq) toModel() model.NewRegistration {
	return model.NewRegistration{
		FamilyName:         r.FamilyName,
		PrimaryContactName: r.PrimaryContactName,
		Phone:              r.Phone,
		Email:              r.Email,
		Adults:             atoiOrZero(r.Adults),
		Kids:               atoiOrZero(r.Kids),
		Notes:              r.Notes,
	}
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
