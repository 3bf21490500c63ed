package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func writeSuccessPage(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	page := `<p>ID {{REG_ID}}</p><img src="{{QR_DATA_URL}}">`
	if err := os.WriteFile(filepath.Join(dir, "success.html"), []byte(page), 0o644); err != nil {
		t.Fatalf("write success page: %v", err)
	}
	return dir
}

func submitForm(t *testing.T, h *RegisterHandler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	return rec
}

func TestRegisterSubmit(t *testing.T) {
	store := newFakeStore(10)
	cfg := testConfig()
	cfg.ViewsDir = writeSuccessPage(t)
	h := NewRegisterHandler(cfg, store)

	rec := submitForm(t, h, url.Values{
		"family_name":          {"  Sharma "},
		"primary_contact_name": {"Priya Sharma"},
		"phone":                {"555-0100"},
		"adults":               {"2"},
		"kids":                 {"not-a-number"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "ID 1") {
		t.Errorf("registration id not rendered: %s", body)
	}
	if !strings.Contains(body, "data:image/png;base64,") {
		t.Errorf("QR data URL not rendered: %s", body)
	}

	reg, err := store.GetByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("stored registration missing: %v", err)
	}
	if reg.FamilyName != "Sharma" {
		t.Errorf("family name not trimmed: %q", reg.FamilyName)
	}
	if reg.Adults != 2 || reg.Kids != 0 {
		t.Errorf("count normalization: adults=%d kids=%d", reg.Adults, reg.Kids)
	}
	if reg.CheckedIn {
		t.Errorf("new registration must start not checked in")
	}
}

func TestRegisterSubmitMissingRequired(t *testing.T) {
	store := newFakeStore(10)
	cfg := testConfig()
	cfg.ViewsDir = writeSuccessPage(t)
	h := NewRegisterHandler(cfg, store)

	rec := submitForm(t, h, url.Values{
		"family_name": {"Sharma"},
		// no contact, no phone
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if n, _ := store.CountTotal(context.Background()); n != 0 {
		t.Errorf("invalid submission stored a row")
	}
}
