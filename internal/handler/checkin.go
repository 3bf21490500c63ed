package handler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventgate/checkin/internal/config"
	"github.com/eventgate/checkin/internal/model"
	"github.com/eventgate/checkin/internal/queue"
	"github.com/eventgate/checkin/internal/repository"
	queue_publisher "github.com/eventgate/checkin/internal/service"
	"github.com/eventgate/checkin/internal/utils"
)

// CheckinHandler implements the admin-guarded gate API: scanning,
// search, undo, stats and the live capacity setting.
type CheckinHandler struct {
	Cfg       config.Config
	Regs      RegistrationStore
	Settings  SettingsStore
	Publisher queue_publisher.Publisher // nil disables event publishing
}

func NewCheckinHandler(cfg config.Config, regs RegistrationStore, settings SettingsStore, pub queue_publisher.Publisher) *CheckinHandler {
	return &CheckinHandler{Cfg: cfg, Regs: regs, Settings: settings, Publisher: pub}
}

type checkinReq struct {
	QRText string `json:"qrText" form:"qrText"`
}

type undoReq struct {
	ID int64 `json:"id"`
}

type capacityReq struct {
	CapacityLimit float64 `json:"capacityLimit"`
}

// Checkin admits one scanned QR token. Token verification happens
// before any store access, so a forged or expired code costs no I/O.
func (h *CheckinHandler) Checkin(c echo.Context) error {
	var req checkinReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.QRText) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "message": "Missing qrText"})
	}

	regID, err := utils.ParseAdmissionToken(h.Cfg.JWTSecret, strings.TrimSpace(req.QRText))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "message": "Invalid / tampered QR code"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reg, status, stats, err := h.Regs.CheckIn(ctx, regID)
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "message": "Registration not found"})
		}
		c.Logger().Errorf("checkin id=%d: %v", regID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "message": "Server error during check-in"})
	}

	switch status {
	case model.StatusAlready:
		return c.JSON(http.StatusOK, echo.Map{
			"ok":           true,
			"status":       model.StatusAlready,
			"message":      fmt.Sprintf("Already checked in: %s (ID %d)", reg.FamilyName, reg.ID),
			"registration": reg,
		})
	case model.StatusLocked:
		return c.JSON(http.StatusOK, echo.Map{
			"ok":      true,
			"status":  model.StatusLocked,
			"message": fmt.Sprintf("Entry is locked (capacity reached: %d). Ask admin to increase limit if needed.", stats.CapacityLimit),
			"stats":   stats,
		})
	}

	h.publishCheckin(c.Request().Context(), reg, stats)
	return c.JSON(http.StatusOK, echo.Map{
		"ok":           true,
		"status":       model.StatusCheckedIn,
		"message":      fmt.Sprintf("Checked in: %s (ID %d)", reg.FamilyName, reg.ID),
		"registration": reg,
	})
}

// Search returns up to 50 registrations matching the query. An empty
// query returns an empty result set instead of the whole table.
func (h *CheckinHandler) Search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return c.JSON(http.StatusOK, echo.Map{"ok": true, "results": []model.Registration{}})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	results, err := h.Regs.Search(ctx, q)
	if err != nil {
		c.Logger().Errorf("search %q: %v", q, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "message": "Search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "results": results})
}

// UndoCheckin is the administrator's correction path. It clears the
// flag and timestamp unconditionally, bypassing the capacity gate.
func (h *CheckinHandler) UndoCheckin(c echo.Context) error {
	var req undoReq
	if err := c.Bind(&req); err != nil || req.ID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "message": "Invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reg, err := h.Regs.UndoCheckin(ctx, uint64(req.ID))
	if err != nil {
		if errors.Is(err, repository.ErrRegistrationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"ok": false, "message": "Registration not found"})
		}
		c.Logger().Errorf("undo checkin id=%d: %v", req.ID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "message": "Undo failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "registration": reg})
}

// Stats reports the live counters the dashboard polls.
func (h *CheckinHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	limit, err := h.Settings.CapacityLimit(ctx)
	if err != nil {
		c.Logger().Errorf("read capacity: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "message": "Stats failed"})
	}
	checkedIn, err := h.Regs.CountCheckedIn(ctx)
	if err != nil {
		c.Logger().Errorf("count checked in: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "message": "Stats failed"})
	}
	total, err := h.Regs.CountTotal(ctx)
	if err != nil {
		c.Logger().Errorf("count total: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "message": "Stats failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ok":            true,
		"checkedIn":     checkedIn,
		"totalRegs":     total,
		"capacityLimit": limit,
		"locked":        !model.GateAllows(checkedIn, limit),
	})
}

// SetCapacity updates the admission limit. The very next gate
// evaluation reads the new value.
func (h *CheckinHandler) SetCapacity(c echo.Context) error {
	var req capacityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "message": "Invalid capacityLimit"})
	}
	n := int(math.Floor(req.CapacityLimit))
	if n < 1 || n > 100000 {
		return c.JSON(http.StatusBadRequest, echo.Map{"ok": false, "message": "Invalid capacityLimit"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Settings.SetCapacityLimit(ctx, n); err != nil {
		c.Logger().Errorf("set capacity: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"ok": false, "message": "Failed to update capacity"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "capacityLimit": n})
}

// publishCheckin emits the checkin.recorded event best-effort; a broker
// outage never affects the admission outcome.
func (h *CheckinHandler) publishCheckin(ctx context.Context, reg *model.Registration, stats model.GateStats) {
	if h.Publisher == nil || reg == nil {
		return
	}
	evt := queue.CheckinRecordedEvent{
		RegistrationID: reg.ID,
		FamilyName:     reg.FamilyName,
		Adults:         reg.Adults,
		Kids:           reg.Kids,
		CheckedIn:      stats.CheckedIn,
		CapacityLimit:  stats.CapacityLimit,
	}
	if reg.CheckedInAt != nil {
		evt.CheckedInAt = reg.CheckedInAt.UTC().Format(time.RFC3339)
	}
	_ = h.Publisher.PublishCheckinRecorded(ctx, evt)
}
